package main

import (
	"fmt"

	"github.com/relictool/relic/internal/output"
	"github.com/relictool/relic/internal/progress"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:     "graph [path]",
	Aliases: []string{"deps"},
	Short:   "Build and emit the project import graph",
	Long: `Builds the import graph and emits it as a Mermaid diagram (text),
adjacency JSON, or a D3 force-graph document (--d3). Pair --d3 with
--format json and --output to feed external visualizers.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().Bool("d3", false, "Emit D3 force-graph nodes/links JSON")
	graphCmd.Flags().Bool("metrics", false, "Include component, cycle, and PageRank metrics")

	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	d3, _ := cmd.Flags().GetBool("d3")
	withMetrics, _ := cmd.Flags().GetBool("metrics")

	tracker := progress.NewSpinner("Building import graph...")
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

	if d3 {
		return formatter.Output(result.D3())
	}

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(graphReport(result, withMetrics))
	}

	w := formatter.Writer()
	fmt.Fprintln(w, "graph TD")
	for _, p := range result.Graph.Paths() {
		node := result.Graph.Node(p)
		if node.Imports.Len() == 0 && node.ImportedBy.Len() == 0 {
			fmt.Fprintf(w, "    %s[\"%s\"]\n", sanitizeID(p), p)
			continue
		}
		for _, imp := range node.Imports.Sorted() {
			fmt.Fprintf(w, "    %s[\"%s\"] --> %s[\"%s\"]\n", sanitizeID(p), p, sanitizeID(imp), imp)
		}
	}

	if withMetrics && result.Metrics != nil {
		m := result.Metrics
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%%%% nodes=%d edges=%d components=%d cycles=%d\n",
			m.TotalNodes, m.TotalEdges, m.Components, m.CyclicGroups)
		for _, r := range m.TopImported {
			fmt.Fprintf(w, "%%%% %.4f %s (in=%d out=%d)\n", r.PageRank, r.Path, r.InDegree, r.OutDegree)
		}
	}
	return nil
}

type graphNodeJSON struct {
	Path       string   `json:"path"`
	Imports    []string `json:"imports,omitempty"`
	ImportedBy []string `json:"imported_by,omitempty"`
}

type graphJSON struct {
	Root       string              `json:"root"`
	Nodes      []graphNodeJSON     `json:"nodes"`
	Unresolved map[string][]string `json:"unresolved,omitempty"`
	Metrics    any                 `json:"metrics,omitempty"`
}

func graphReport(result *analysis.Result, withMetrics bool) graphJSON {
	out := graphJSON{Root: result.Root, Nodes: []graphNodeJSON{}}
	for _, p := range result.Graph.Paths() {
		n := result.Graph.Node(p)
		out.Nodes = append(out.Nodes, graphNodeJSON{
			Path:       p,
			Imports:    n.Imports.Sorted(),
			ImportedBy: n.ImportedBy.Sorted(),
		})
	}
	if len(result.Graph.Unresolved) > 0 {
		out.Unresolved = result.Graph.Unresolved
	}
	if withMetrics {
		out.Metrics = result.Metrics
	}
	return out
}
