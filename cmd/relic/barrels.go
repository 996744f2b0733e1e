package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/relictool/relic/internal/output"
	"github.com/relictool/relic/internal/progress"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/spf13/cobra"
)

var barrelsCmd = &cobra.Command{
	Use:   "barrels [path]",
	Short: "List barrel files and the re-exports they forward",
	RunE:  runBarrels,
}

func init() {
	rootCmd.AddCommand(barrelsCmd)
}

func runBarrels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tracker := progress.NewSpinner("Resolving barrels...")
	result, err := newService(cfg).Run(getRoot(args), analysis.Options{
		SkipDynamicScan: true,
		SkipDuplicates:  true,
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
		return formatter.Output(result.Barrels)
	}

	if len(result.Barrels) == 0 {
		color.Green("No barrel re-exports found (%d files analyzed)", len(result.Files))
		return nil
	}

	var rows [][]string
	for _, b := range result.Barrels {
		rows = append(rows, []string{b.Barrel, b.Name, b.Source})
	}

	table := output.NewTable(
		"Barrel Re-Exports",
		[]string{"Barrel", "Export", "Source"},
		rows,
		[]string{fmt.Sprintf("Re-exports: %d", len(result.Barrels))},
		result.Barrels,
	)
	return formatter.Output(table)
}
