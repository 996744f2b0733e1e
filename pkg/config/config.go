// Package config loads relic configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for relic.
type Config struct {
	// Extensions is the ordered list of source extensions to collect. The
	// same order drives extension probing during import resolution.
	Extensions []string `koanf:"extensions" toml:"extensions"`

	// File exclusion settings
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Allow lists filename patterns never classified as orphaned.
	Allow AllowConfig `koanf:"allow" toml:"allow"`

	// Analysis settings for the refinement passes
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Archive settings for relocating confirmed orphans
	Archive ArchiveConfig `koanf:"archive" toml:"archive"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ExcludeConfig defines which parts of the tree are never scanned.
type ExcludeConfig struct {
	Dirs      []string `koanf:"dirs" toml:"dirs"`
	Patterns  []string `koanf:"patterns" toml:"patterns"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"`
}

// AllowConfig extends the built-in never-orphan list.
type AllowConfig struct {
	Patterns []string `koanf:"patterns" toml:"patterns"`
	// Manifest controls whether package.json entry points are added to the
	// allow-list automatically.
	Manifest bool `koanf:"manifest" toml:"manifest"`
}

// AnalysisConfig controls the refinement passes.
type AnalysisConfig struct {
	Routes       bool   `koanf:"routes" toml:"routes"`
	Barrels      bool   `koanf:"barrels" toml:"barrels"`
	BarrelPasses int    `koanf:"barrel_passes" toml:"barrel_passes"`
	Duplicates   bool   `koanf:"duplicates" toml:"duplicates"`
	DynamicScan  bool   `koanf:"dynamic_scan" toml:"dynamic_scan"`
	BuildLog     string `koanf:"build_log" toml:"build_log"`
	MetricsTop   int    `koanf:"metrics_top" toml:"metrics_top"`
}

// ArchiveConfig controls the archive mover.
type ArchiveConfig struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".css", ".scss"},
		Exclude: ExcludeConfig{
			Dirs: []string{
				"node_modules",
				".git",
				"dist",
				"build",
				"coverage",
				".next",
				".relic",
				"archived_orphan",
			},
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Gitignore: true,
		},
		Allow: AllowConfig{
			Manifest: true,
		},
		Analysis: AnalysisConfig{
			Routes:       true,
			Barrels:      true,
			BarrelPasses: 10,
			Duplicates:   true,
			DynamicScan:  true,
			MetricsTop:   10,
		},
		Archive: ArchiveConfig{
			Dir: "archived_orphan",
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Raw parses a config file into a generic map without defaults or
// unmarshaling. Used for schema validation.
func Raw(path string) (map[string]any, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

// LoadOrDefault tries standard config locations or returns defaults. The
// second return is the path of the file actually used, empty for defaults.
func LoadOrDefault() (*Config, string) {
	configNames := []string{
		"relic.toml",
		"relic.yaml",
		"relic.yml",
		"relic.json",
		".relic.toml",
		".relic.yaml",
		".relic.yml",
		".relic.json",
	}
	searchDirs := []string{".", ".relic"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if cfg, err := Load(path); err == nil {
				return cfg, path
			}
		}
	}
	return DefaultConfig(), ""
}

// ShouldExclude checks a project-relative forward-slash path against the
// directory and pattern exclusions. Directory names match at any depth.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if path == dir || strings.HasPrefix(path, dir+"/") || strings.Contains(path, "/"+dir+"/") {
			return true
		}
	}
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// HasExtension reports whether the path carries one of the configured
// source extensions.
func (c *Config) HasExtension(path string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
