package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Extensions) == 0 || cfg.Extensions[0] != ".ts" {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if cfg.Archive.Dir != "archived_orphan" {
		t.Errorf("Archive.Dir = %s, want archived_orphan", cfg.Archive.Dir)
	}
	if !cfg.Analysis.Barrels || !cfg.Analysis.Routes {
		t.Error("barrel and route passes should default on")
	}
	if cfg.Analysis.BarrelPasses != 10 {
		t.Errorf("BarrelPasses = %d, want 10", cfg.Analysis.BarrelPasses)
	}

	found := false
	for _, d := range cfg.Exclude.Dirs {
		if d == "node_modules" {
			found = true
		}
	}
	if !found {
		t.Error("node_modules should be excluded by default")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relic.toml")
	content := `
extensions = [".ts", ".tsx"]

[analysis]
barrel_passes = 5
dynamic_scan = false

[archive]
dir = "attic"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Extensions) != 2 {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if cfg.Analysis.BarrelPasses != 5 {
		t.Errorf("BarrelPasses = %d, want 5", cfg.Analysis.BarrelPasses)
	}
	if cfg.Analysis.DynamicScan {
		t.Error("DynamicScan should be disabled by the file")
	}
	if cfg.Archive.Dir != "attic" {
		t.Errorf("Archive.Dir = %s, want attic", cfg.Archive.Dir)
	}
	// Untouched sections keep their defaults.
	if !cfg.Analysis.Routes {
		t.Error("Routes default should survive partial config")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relic.yaml")
	content := "output:\n  format: json\n  verbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Format != "json" || !cfg.Output.Verbose {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing config file should error")
	}
}

func TestRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relic.toml")
	if err := os.WriteFile(path, []byte("[archive]\ndir = \"attic\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	raw, err := Raw(path)
	if err != nil {
		t.Fatalf("Raw() error: %v", err)
	}
	archive, ok := raw["archive"].(map[string]any)
	if !ok || archive["dir"] != "attic" {
		t.Errorf("raw = %v", raw)
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()
	cases := map[string]bool{
		"node_modules/react/index.js": true,
		"src/node_modules/x.ts":       true,
		"dist/bundle.js":              true,
		"src/app.min.js":              true,
		"src/app.js":                  false,
	}
	for p, want := range cases {
		if got := cfg.ShouldExclude(p); got != want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestHasExtension(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.HasExtension("src/a.tsx") {
		t.Error("tsx should match")
	}
	if cfg.HasExtension("src/a.py") {
		t.Error("py should not match")
	}
}
