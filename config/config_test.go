package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Format != "sexp" || cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Check.Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), cfg.Check.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cfg.toml", `
[output]
format = "json"
color = true

[parse]
keep_comments = true
max_errors = 10

[check]
workers = 2
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "json" || !cfg.Output.Color {
		t.Errorf("unexpected output section %+v", cfg.Output)
	}
	if !cfg.Parse.KeepComments || cfg.Parse.MaxErrors != 10 {
		t.Errorf("unexpected parse section %+v", cfg.Parse)
	}
	if cfg.Check.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Check.Workers)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cfg.yaml", "output:\n  format: yaml\nlog:\n  level: debug\n  format: json\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "yaml" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"missing", "", "", "not found"},
		{"extension", "cfg.ini", "x=1", "unsupported config format"},
		{"bad toml", "bad.toml", "[output\n", "failed to parse config"},
		{"bad format", "fmt.toml", "[output]\nformat = \"xml\"\n", "output.format"},
		{"negative workers", "w.yaml", "check:\n  workers: -1\n", "check.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, "absent.toml")
			if tt.file != "" {
				p = writeFile(t, dir, tt.file, tt.content)
			}
			_, err := Load(p)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg.Output.Format != "sexp" {
		t.Errorf("expected defaults, got %+v", cfg.Output)
	}

	writeFile(t, dir, ".orcaparse.yaml", "output:\n  format: json\n")
	cfg, err = Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected discovered format json, got %q", cfg.Output.Format)
	}
}
