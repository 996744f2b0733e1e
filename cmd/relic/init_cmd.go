package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/relictool/relic/pkg/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new relic configuration file",
	Long: `Creates a new relic.toml configuration file in the current directory
with the built-in defaults. Use --output to specify a different location.

Examples:
  relic init                      # Creates relic.toml in current directory
  relic init -o .relic/relic.toml # Creates config in .relic directory
  relic init --force              # Overwrite existing config file`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("output", "o", "relic.toml", "Output file path")
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	content, err := toml.Marshal(*config.DefaultConfig())
	if err != nil {
		return err
	}

	header := "# relic configuration\n# See `relic config validate` to check edits.\n\n"
	if err := os.WriteFile(outputPath, append([]byte(header), content...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	color.Green("Created %s", outputPath)
	return nil
}
