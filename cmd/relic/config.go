package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/relictool/relic/pkg/config"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validates a relic configuration file against the config schema.

Examples:
  relic config validate                  # Validates default config locations
  relic config validate -c relic.toml    # Validates specific file`,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Shows the merged configuration from defaults and config file.

Examples:
  relic config show               # Show effective config
  relic config show -c relic.toml # Show config from specific file`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// configSchema constrains the recognized keys and value types. Unknown keys
// are rejected so typos surface at validate time instead of being ignored.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "extensions": {"type": "array", "items": {"type": "string", "pattern": "^\\."}},
    "exclude": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "dirs": {"type": "array", "items": {"type": "string"}},
        "patterns": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "allow": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "patterns": {"type": "array", "items": {"type": "string"}},
        "manifest": {"type": "boolean"}
      }
    },
    "analysis": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "routes": {"type": "boolean"},
        "barrels": {"type": "boolean"},
        "barrel_passes": {"type": "integer", "minimum": 1},
        "duplicates": {"type": "boolean"},
        "dynamic_scan": {"type": "boolean"},
        "build_log": {"type": "string"},
        "metrics_top": {"type": "integer", "minimum": 0}
      }
    },
    "archive": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "dir": {"type": "string", "minLength": 1}
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format": {"enum": ["text", "json", "markdown"]},
        "color": {"type": "boolean"},
        "verbose": {"type": "boolean"}
      }
    }
  }
}`

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		_, path = config.LoadOrDefault()
	}
	if path == "" {
		color.Yellow("No config file found. Default configuration is valid.")
		return nil
	}

	raw, err := config.Raw(path)
	if err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	// Round-trip through JSON so TOML/YAML scalar types match what the
	// schema validator expects.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return err
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchema))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("relic-config.json", schemaDoc); err != nil {
		return err
	}
	schema, err := compiler.Compile("relic-config.json")
	if err != nil {
		return err
	}

	if err := schema.Validate(instance); err != nil {
		color.Red("Configuration validation failed: %s", path)
		fmt.Printf("  - %s\n", err)
		return err
	}

	color.Green("Configuration valid: %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	source := cfgFile
	if source != "" {
		loaded, err := config.Load(source)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg, source = config.LoadOrDefault()
	}

	if source != "" {
		fmt.Printf("# source: %s\n", source)
	} else {
		fmt.Println("# source: built-in defaults")
	}

	out, err := toml.Marshal(*cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
