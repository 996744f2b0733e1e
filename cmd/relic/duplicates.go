package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/relictool/relic/internal/output"
	"github.com/relictool/relic/internal/progress"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/spf13/cobra"
)

var duplicatesCmd = &cobra.Command{
	Use:     "duplicates [path]",
	Aliases: []string{"dup"},
	Short:   "Find same-named files with identical content",
	RunE:    runDuplicates,
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tracker := progress.NewSpinner("Hashing files...")
	result, err := newService(cfg).Run(getRoot(args), analysis.Options{
		SkipDynamicScan: true,
		OnProgress:      tracker.Tick,
	})
	if err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	formatter, err := newFormatter(cmd, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(result.Duplicates)
	}

	if len(result.Duplicates) == 0 {
		color.Green("No duplicate files found (%d files analyzed)", len(result.Files))
		return nil
	}

	var rows [][]string
	total := 0
	for _, g := range result.Duplicates {
		total += len(g.Paths)
		for i, p := range g.Paths {
			name, hash := "", ""
			if i == 0 {
				name = g.Basename
				hash = truncate(g.ContentHash, 12)
			}
			rows = append(rows, []string{name, p, hash})
		}
	}

	table := output.NewTable(
		"Duplicate Files",
		[]string{"Basename", "Path", "Content Hash"},
		rows,
		[]string{
			fmt.Sprintf("Groups: %d", len(result.Duplicates)),
			fmt.Sprintf("Duplicated files: %d", total),
		},
		result.Duplicates,
	)
	return formatter.Output(table)
}
