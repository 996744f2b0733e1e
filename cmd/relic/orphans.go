package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/relictool/relic/internal/output"
	"github.com/relictool/relic/internal/progress"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/spf13/cobra"
)

var orphansCmd = &cobra.Command{
	Use:     "orphans [path]",
	Aliases: []string{"find", "unused"},
	Short:   "Find files nothing imports or references",
	RunE:    runOrphans,
}

func init() {
	orphansCmd.Flags().String("build-log", "", "Cross-check candidates against a build log file")
	orphansCmd.Flags().Bool("no-dynamic", false, "Skip the dynamic-reference scan")

	rootCmd.AddCommand(orphansCmd)
}

func runOrphans(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	buildLog, _ := cmd.Flags().GetString("build-log")
	noDynamic, _ := cmd.Flags().GetBool("no-dynamic")

	tracker := progress.NewSpinner("Analyzing imports...")
	result, err := newService(cfg).Run(getRoot(args), analysis.Options{
		BuildLog:        buildLog,
		SkipDynamicScan: noDynamic,
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
		return formatter.Output(orphansReport(result))
	}

	if len(result.Orphans) == 0 {
		color.Green("No orphan candidates found (%d files analyzed)", len(result.Files))
		return nil
	}

	var rows [][]string
	for i, o := range result.Orphans {
		dynamic := ""
		if result.DynamicScan != nil && result.DynamicScan.Flagged(i) {
			dynamic = "possible"
		}
		rows = append(rows, []string{
			o.Path,
			fmt.Sprintf("%d", len(o.Imports)),
			fmt.Sprintf("%d", len(o.ReExports)),
			dynamic,
		})
	}

	footer := []string{
		fmt.Sprintf("Candidates: %d", len(result.Orphans)),
		fmt.Sprintf("Files analyzed: %d", len(result.Files)),
	}
	if len(result.Skipped) > 0 {
		footer = append(footer, fmt.Sprintf("Skipped (unreadable): %d", len(result.Skipped)))
	}
	if len(result.RemovedByBuildLog) > 0 {
		footer = append(footer, fmt.Sprintf("Cleared by build log: %d (%s)",
			len(result.RemovedByBuildLog), truncate(strings.Join(result.RemovedByBuildLog, ", "), 60)))
	}

	table := output.NewTable(
		"Orphan Candidates",
		[]string{"File", "Imports", "Re-Exports", "Dynamic Use"},
		rows,
		footer,
		orphansReport(result),
	)
	return formatter.Output(table)
}

type orphanEntry struct {
	Path       string   `json:"path"`
	Imports    []string `json:"imports,omitempty"`
	ReExports  []string `json:"re_exports,omitempty"`
	DynamicUse bool     `json:"possible_dynamic_use"`
}

type orphansJSON struct {
	Root              string        `json:"root"`
	FilesAnalyzed     int           `json:"files_analyzed"`
	FilesSkipped      []string      `json:"files_skipped,omitempty"`
	Orphans           []orphanEntry `json:"orphans"`
	RemovedByBuildLog []string      `json:"removed_by_build_log,omitempty"`
}

func orphansReport(result *analysis.Result) orphansJSON {
	out := orphansJSON{
		Root:              result.Root,
		FilesAnalyzed:     len(result.Files),
		FilesSkipped:      result.Skipped,
		Orphans:           []orphanEntry{},
		RemovedByBuildLog: result.RemovedByBuildLog,
	}
	for i, o := range result.Orphans {
		out.Orphans = append(out.Orphans, orphanEntry{
			Path:       o.Path,
			Imports:    o.Imports,
			ReExports:  o.ReExports,
			DynamicUse: result.DynamicScan != nil && result.DynamicScan.Flagged(i),
		})
	}
	return out
}
