package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[sources]
names = ["wire"]

[similarity]
threshold = 0.05
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, configPath string, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddCommandStoresAndDeduplicates(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCommand(t, cfg, "Some article body about politics.", "add", "wire", "--url", "https://example.com/a")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Added article") {
		t.Fatalf("output = %q, want added confirmation", out)
	}

	out, err = runCommand(t, cfg, "Some article body about politics.", "add", "wire", "--url", "https://example.com/a")
	if err != nil {
		t.Fatalf("re-add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "already present") {
		t.Fatalf("output = %q, want duplicate notice", out)
	}
}

func TestAddCommandRejectsUnknownSource(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCommand(t, cfg, "body", "add", "nosuch", "--url", "https://example.com/a")
	if err == nil {
		t.Fatalf("expected error for unknown source, got output %q", out)
	}
	if !strings.Contains(err.Error(), "unknown source") {
		t.Fatalf("err = %v, want unknown source", err)
	}
}

func TestAddCommandRequiresURL(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCommand(t, cfg, "body", "add", "wire")
	if err == nil || !strings.Contains(err.Error(), "--url") {
		t.Fatalf("err = %v, want missing --url error", err)
	}
}

func TestRunAndStatusEndToEnd(t *testing.T) {
	cfg := writeTestConfig(t)

	articles := map[string]string{
		"https://example.com/1": "The senate passed the budget bill on Tuesday evening.",
		"https://example.com/2": "Senators passed a budget bill after a long debate.",
		"https://example.com/3": "Local football team wins the championship final.",
	}
	for url, body := range articles {
		if out, err := runCommand(t, cfg, body, "add", "wire", "--url", url); err != nil {
			t.Fatalf("add %s: %v\n%s", url, err, out)
		}
	}

	out, err := runCommand(t, cfg, "", "run", "--rebuild")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "normalized: 3") || !strings.Contains(out, "encoded:    3") {
		t.Fatalf("run output = %q, want 3 normalized and encoded", out)
	}

	out, err = runCommand(t, cfg, "", "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "wire") || !strings.Contains(out, "Encoded articles: 3 of 3") {
		t.Fatalf("status output = %q", out)
	}

	// A buffer is not a terminal, so pairs emits tab-separated rows.
	out, err = runCommand(t, cfg, "", "pairs")
	if err != nil {
		t.Fatalf("pairs: %v\n%s", err, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || len(strings.Split(lines[0], "\t")) != 3 {
		t.Fatalf("pairs output = %q, want tab-separated id/id/score rows", out)
	}
}

func TestSimilarCommandRejectsInvalidThreshold(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCommand(t, cfg, "", "similar", "--threshold", "1.5")
	if err == nil || !strings.Contains(err.Error(), "threshold") {
		t.Fatalf("err = %v, want threshold validation error", err)
	}
}

func TestEncodeWithoutVocabularySuggestsRebuild(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCommand(t, cfg, "", "encode")
	if err == nil || !strings.Contains(err.Error(), "--rebuild") {
		t.Fatalf("err = %v, want rebuild hint", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v\n%s", err, out.String())
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// A second init without --overwrite refuses to clobber the file.
	cmd = newRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v, want already exists", err)
	}
}
