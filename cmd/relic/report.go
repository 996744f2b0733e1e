package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/relictool/relic/internal/progress"
	"github.com/relictool/relic/internal/report"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Generate the full analysis report bundle",
	Long: `Runs the complete pipeline and writes a report bundle to --dir:

  report.md    Markdown summary (orphans, duplicates, dynamic annotations)
  graph.json   D3 force-graph document (nodes/links)
  graph.html   Self-contained interactive visualizer`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("dir", ".relic", "Directory for the report bundle")
	reportCmd.Flags().String("build-log", "", "Cross-check candidates against a build log file")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	buildLog, _ := cmd.Flags().GetString("build-log")
	root := getRoot(args)

	tracker := progress.NewSpinner("Running full analysis...")
	result, err := newService(cfg).Run(root, analysis.Options{
		BuildLog:   buildLog,
		OnProgress: tracker.Tick,
	})
	if err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	doc := result.D3()

	md, err := os.Create(filepath.Join(dir, "report.md"))
	if err != nil {
		return err
	}
	defer md.Close()
	if err := report.RenderMarkdown(md, result.ReportData()); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "graph.json"), payload, 0o644); err != nil {
		return err
	}

	html, err := os.Create(filepath.Join(dir, "graph.html"))
	if err != nil {
		return err
	}
	defer html.Close()
	if err := report.RenderHTML(html, root, doc); err != nil {
		return err
	}

	color.Green("Report written to %s", dir)
	fmt.Printf("  files analyzed: %d\n", len(result.Files))
	fmt.Printf("  orphan candidates: %d\n", len(result.Orphans))
	fmt.Printf("  duplicate groups: %d\n", len(result.Duplicates))
	return nil
}
