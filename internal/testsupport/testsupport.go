// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"newswire/internal/config"
	"newswire/internal/store"
)

// NewConfig returns a validated config rooted in a per-test temp directory,
// backed by SQLite and covering the given sources (the defaults when none
// are named).
func NewConfig(t *testing.T, sources ...string) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if len(sources) > 0 {
		cfg.Sources.Names = sources
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// MustOpenStore opens a store for the config and closes it when the test
// ends.
func MustOpenStore(t *testing.T, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
