package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/relictool/relic/internal/archive"
	"github.com/relictool/relic/internal/progress"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [path] [file...]",
	Short: "Move orphan candidates into the archive directory",
	Long: `Moves files out of the active tree into the archive directory,
preserving their relative paths. Name collisions get a -1, -2 suffix;
nothing is ever overwritten or deleted.

With explicit file arguments only those files move. With --all, every
current orphan candidate moves after a confirmation prompt (--yes skips
the prompt). Files flagged with possible dynamic references are never
moved by --all.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().Bool("all", false, "Archive every current orphan candidate")
	archiveCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	archiveCmd.Flags().String("dest", "", "Archive directory (default from config)")
	archiveCmd.Flags().Bool("dry-run", false, "Show what would move without moving")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	dest, _ := cmd.Flags().GetString("dest")
	if dest == "" {
		dest = cfg.Archive.Dir
	}

	root := getRoot(args)
	var targets []string

	if all {
		tracker := progress.NewSpinner("Analyzing imports...")
		result, err := newService(cfg).Run(root, analysis.Options{
			SkipDuplicates: true,
			OnProgress:     tracker.Tick,
		})
		if err != nil {
			tracker.FinishError(err)
			return err
		}
		tracker.FinishSuccess()

		for i, o := range result.Orphans {
			if result.DynamicScan != nil && result.DynamicScan.Flagged(i) {
				color.Yellow("skipping %s: possible dynamic reference", o.Path)
				continue
			}
			targets = append(targets, o.Path)
		}
	} else {
		if len(args) < 2 {
			return fmt.Errorf("no files given (pass explicit files or use --all)")
		}
		targets = args[1:]
	}

	if len(targets) == 0 {
		color.Green("Nothing to archive")
		return nil
	}

	if dryRun {
		for _, t := range targets {
			fmt.Printf("would move %s\n", t)
		}
		return nil
	}

	if !yes {
		fmt.Printf("Move %d file(s) to %s? [y/N] ", len(targets), dest)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	mover := archive.NewMover(root, dest)
	moved := 0
	for _, t := range targets {
		to, err := mover.Move(t)
		if err != nil {
			color.Red("failed to move %s: %v", t, err)
			continue
		}
		fmt.Printf("moved %s -> %s\n", t, to)
		moved++
	}
	color.Green("Archived %d of %d file(s)", moved, len(targets))
	return nil
}
