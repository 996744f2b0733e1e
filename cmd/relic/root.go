package main

import (
	"github.com/fatih/color"
	"github.com/relictool/relic/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "relic",
	Short:   "Orphan file analysis for JS/TS projects",
	Version: version,
	Long: `Relic scans a JavaScript/TypeScript source tree, builds the import graph,
and reports files that nothing imports, re-exports, or references.

Detection is static and regex-based: results are candidates for review,
not deletion verdicts. Refinement passes (barrel re-exports, route
references, build-log cross-checks, dynamic-reference scanning) shrink
the candidate list before you archive anything.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write output to file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig resolves the effective configuration for a command run,
// honoring --config and the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg, _ = config.LoadOrDefault()
	}
	if f := getFormat(cmd); f != "" {
		cfg.Output.Format = f
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}
	return cfg, nil
}
