package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/relictool/relic/internal/output"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/relictool/relic/pkg/config"
	"github.com/spf13/cobra"
)

// getRoot returns the project root from args, defaulting to ".".
func getRoot(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// getFormat returns the format flag value from the command.
func getFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return format
}

// getOutputFile returns the output file path from the command.
func getOutputFile(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("output")
	return path
}

// newFormatter builds a formatter from the resolved config and flags.
func newFormatter(cmd *cobra.Command, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(cfg.Output.Format), getOutputFile(cmd), cfg.Output.Color)
}

// newService builds an analysis service; warnings go to stderr when verbose.
func newService(cfg *config.Config) *analysis.Service {
	opts := []analysis.Option{analysis.WithConfig(cfg)}
	if cfg.Output.Verbose {
		opts = append(opts, analysis.WithWarnFunc(func(path string, err error) {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
		}))
	}
	return analysis.New(opts...)
}

// sanitizeID replaces non-alphanumeric characters for Mermaid diagram IDs.
func sanitizeID(id string) string {
	var result strings.Builder
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result.WriteRune(c)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
