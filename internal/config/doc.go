// Package config loads, normalizes, and validates newswire configuration
// from TOML files, with environment overrides for store credentials.
package config
