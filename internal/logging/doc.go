// Package logging builds slog loggers for console and JSON output with
// optional log-file mirroring.
package logging
