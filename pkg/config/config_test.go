package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/export"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dotstitch.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
roster = "team.csv"

[templates]
front = "assets/front.png"
back = "assets/back.png"

[export]
format = "jpeg"
dpi = 150

[ratios]
name_top_ratio = 0.3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Roster != "team.csv" {
		t.Errorf("Roster = %q", cfg.Roster)
	}
	if cfg.Templates.Front != "assets/front.png" {
		t.Errorf("Templates.Front = %q", cfg.Templates.Front)
	}
	if cfg.Export.Format != "jpeg" || cfg.Export.DPI != 150 {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Ratios.NameTopRatio != 0.3 {
		t.Errorf("NameTopRatio = %v", cfg.Ratios.NameTopRatio)
	}
	// Untouched sections keep their defaults.
	if cfg.Ratios.NumberTopRatio != 0.52 {
		t.Errorf("NumberTopRatio = %v, want default 0.52", cfg.Ratios.NumberTopRatio)
	}
	if cfg.Export.Quality != export.DefaultJPEGQuality {
		t.Errorf("Quality = %d, want default", cfg.Export.Quality)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Store.Backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Export.DPI != 300 {
		t.Errorf("Export.DPI = %d, want 300", cfg.Export.DPI)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad format", "[export]\nformat = \"bmp\"\n"},
		{"bad backend", "[store]\nbackend = \"dynamo\"\n"},
		{"redis without addr", "[store]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n"},
		{"negative ratio", "[ratios]\nname_top_ratio = -0.1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.ExportOptions()
	if opts.Multiplier != 3.125 {
		t.Errorf("Multiplier = %v, want 3.125", opts.Multiplier)
	}
	if opts.Format != export.FormatPNG {
		t.Errorf("Format = %s", opts.Format)
	}
}

func TestOpenBackendMemoryAndFile(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Store.Backend = "memory"
	b, err := cfg.OpenBackend(ctx)
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	b.Close()

	cfg.Store.Backend = "file"
	cfg.Store.Dir = t.TempDir()
	b, err = cfg.OpenBackend(ctx)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	b.Close()
}
