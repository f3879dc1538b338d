package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newswire/internal/config"
	"newswire/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello", "answer", 42)

	contents, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "newswire.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(contents), `"answer":42`) {
		t.Fatalf("expected structured attribute in log output, got %s", contents)
	}
}

func TestWithComponentTags(t *testing.T) {
	base := t.TempDir()
	logPath := filepath.Join(base, "out.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logging.WithComponent(logger, "encoder").Info("ready")

	contents, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(contents), `"component":"encoder"`) {
		t.Fatalf("expected component attribute, got %s", contents)
	}
}
