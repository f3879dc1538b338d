package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStore()
	c.normalizeSources()
	c.normalizeNormalizer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = defaultStoreDriver
	}
	c.Store.URL = strings.TrimSpace(c.Store.URL)
	if value, ok := os.LookupEnv("NEWSWIRE_DB_URL"); ok && strings.TrimSpace(value) != "" {
		c.Store.URL = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeSources() {
	if len(c.Sources.Names) == 0 {
		c.Sources.Names = defaultSources()
		return
	}
	names := make([]string, 0, len(c.Sources.Names))
	seen := make(map[string]struct{}, len(c.Sources.Names))
	for _, name := range c.Sources.Names {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		names = append(names, normalized)
	}
	if len(names) == 0 {
		names = defaultSources()
	}
	c.Sources.Names = names
}

func (c *Config) normalizeNormalizer() {
	if c.Normalizer.BatchSize <= 0 {
		c.Normalizer.BatchSize = defaultNormalizerBatchSize
	}
	if c.Normalizer.Workers == 0 {
		c.Normalizer.Workers = defaultNormalizerWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
