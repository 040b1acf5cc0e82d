package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(*Default()); err != nil {
		t.Fatalf("Validate(Default()) error = %v", err)
	}
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
core:
  extensions: [".jpg", ".heic"]
  thumb_dir: small
  max_items: 50
exclude:
  globs: ["*_draft.*"]
  size:
    min: 1KB
ui:
  cell_width: 30
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !slices.Equal(cfg.Core.Extensions, []string{".jpg", ".heic"}) {
		t.Errorf("Extensions = %v", cfg.Core.Extensions)
	}
	if cfg.Core.ThumbDir != "small" || cfg.Core.MaxItems != 50 {
		t.Errorf("ThumbDir, MaxItems = %q, %d", cfg.Core.ThumbDir, cfg.Core.MaxItems)
	}
	if cfg.UI.CellWidth != 30 {
		t.Errorf("CellWidth = %d, want 30", cfg.UI.CellWidth)
	}
	if cfg.Exclude.Size.Min != "1KB" || len(cfg.Exclude.Globs) != 1 {
		t.Errorf("Exclude = %+v", cfg.Exclude)
	}

	// Unset keys keep their defaults
	def := Default()
	if cfg.Core.TempPrefix != def.Core.TempPrefix {
		t.Errorf("TempPrefix = %q, want default %q", cfg.Core.TempPrefix, def.Core.TempPrefix)
	}
	if cfg.Core.Backup != def.Core.Backup {
		t.Errorf("Backup = %+v, want default %+v", cfg.Core.Backup, def.Core.Backup)
	}
	if !cfg.Core.Confirm {
		t.Error("Confirm = false, want default true")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"extension without dot", "core:\n  extensions: [jpg]\n", "extensions"},
		{"no extensions", "core:\n  extensions: []\n", "extensions"},
		{"rank-like temp prefix", "core:\n  temp_prefix: \"01_\"\n", "temp_prefix"},
		{"temp prefix with separator", "core:\n  temp_prefix: a/b\n", "temp_prefix"},
		{"zero max items", "core:\n  max_items: 0\n", "max_items"},
		{"bad size", "exclude:\n  size:\n    max: huge\n", "max"},
		{"bad pattern", "exclude:\n  patterns: [\"(\"]\n", "patterns"},
		{"bad glob", "exclude:\n  globs: [\"[\"]\n", "globs"},
		{"negative period", "include:\n  period: -1\n", "period"},
		{"bad level", "logging:\n  level: loud\n", "level"},
		{"bad color", "ui:\n  style:\n    cursor: red\n", "cursor"},
		{"narrow cells", "ui:\n  cell_width: 2\n", "cell_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Parse() error = nil, want a validation error")
			}
			var perr parsingError
			if !errors.As(err, &perr) {
				t.Errorf("Parse() error = %T, want parsingError", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Parse() error = %q, want it to name %q", err, tt.field)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := Parse(path)

	var cerr configError
	if !errors.As(err, &cerr) {
		t.Fatalf("Parse() error = %v, want configError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Parse() error does not wrap os.ErrNotExist: %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error message does not name %s", path)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imgsort", "config.yaml")
	p := initParser()

	if err := p.ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile() error = %v", err)
	}
	cfg, err := p.readConfigFile(path)
	if err != nil {
		t.Fatalf("readConfigFile() error = %v", err)
	}
	if cfg.Core.TempPrefix != Default().Core.TempPrefix {
		t.Errorf("generated config TempPrefix = %q", cfg.Core.TempPrefix)
	}

	// An existing file is left alone
	if err := os.WriteFile(path, []byte("ui:\n  cell_width: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := p.ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile() error = %v", err)
	}
	cfg, err = p.readConfigFile(path)
	if err != nil {
		t.Fatalf("readConfigFile() error = %v", err)
	}
	if cfg.UI.CellWidth != 40 {
		t.Errorf("CellWidth = %d, want 40 from the existing file", cfg.UI.CellWidth)
	}
}
