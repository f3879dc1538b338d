package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateNormalizer(); err != nil {
		return err
	}
	if err := c.validateSimilarity(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case "sqlite":
	case "postgres":
		if c.Store.URL == "" {
			return errors.New("store.url is required for the postgres driver. Set NEWSWIRE_DB_URL or store.url")
		}
	default:
		return fmt.Errorf("store.driver must be \"sqlite\" or \"postgres\", got %q", c.Store.Driver)
	}
	return nil
}

func (c *Config) validateSources() error {
	if len(c.Sources.Names) == 0 {
		return errors.New("sources.names must include at least one source")
	}
	for _, name := range c.Sources.Names {
		if !validSourceName(name) {
			return fmt.Errorf("sources.names entry %q must contain only lowercase letters, digits, and underscores", name)
		}
	}
	return nil
}

func (c *Config) validateNormalizer() error {
	if c.Normalizer.Workers < -1 {
		return errors.New("normalizer.workers must be -1 (all CPUs) or a positive count")
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold >= 1 {
		return errors.New("similarity.threshold must satisfy 0 <= threshold < 1")
	}
	return nil
}

// validSourceName reports whether a source name is safe to use as a table
// name prefix.
func validSourceName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
