package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/relictool/relic/internal/service/analysis"
	"github.com/relictool/relic/pkg/graph"
	toon "github.com/toon-format/toon-go"
)

// AnalyzeInput is the base input for all relic tools.
type AnalyzeInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Project root to analyze. Defaults to current directory."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// FindOrphansInput configures orphan detection.
type FindOrphansInput struct {
	AnalyzeInput
	BuildLog string `json:"build_log,omitempty" jsonschema:"Path to a build log to cross-check candidates against."`
}

// DependencyGraphInput configures graph output.
type DependencyGraphInput struct {
	AnalyzeInput
	D3      bool `json:"d3,omitempty" jsonschema:"Emit D3 force-graph nodes/links instead of the adjacency form."`
	Metrics bool `json:"metrics,omitempty" jsonschema:"Include component, cycle, and PageRank metrics."`
}

// DuplicatesInput configures duplicate detection.
type DuplicatesInput struct {
	AnalyzeInput
}

// BarrelsInput configures barrel listing.
type BarrelsInput struct {
	AnalyzeInput
}

// DynamicRefsInput configures the dynamic-reference scan.
type DynamicRefsInput struct {
	AnalyzeInput
}

func getPath(input AnalyzeInput) string {
	if input.Path == "" {
		return "."
	}
	return input.Path
}

func formatOutput(data any, format string) (string, error) {
	if format == "json" {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func runPipeline(root string, opts analysis.Options) (*analysis.Result, error) {
	return analysis.New().Run(root, opts)
}

// Tool handlers

func handleFindOrphans(ctx context.Context, req *mcp.CallToolRequest, input FindOrphansInput) (*mcp.CallToolResult, any, error) {
	result, err := runPipeline(getPath(input.AnalyzeInput), analysis.Options{
		BuildLog:       input.BuildLog,
		SkipDuplicates: true,
	})
	if err != nil {
		return toolError(err.Error())
	}

	type orphan struct {
		Path       string   `json:"path" toon:"path"`
		Imports    []string `json:"imports,omitempty" toon:"imports,omitempty"`
		ReExports  []string `json:"re_exports,omitempty" toon:"re_exports,omitempty"`
		DynamicUse bool     `json:"possible_dynamic_use" toon:"possible_dynamic_use"`
	}
	out := struct {
		Root              string   `json:"root" toon:"root"`
		FilesAnalyzed     int      `json:"files_analyzed" toon:"files_analyzed"`
		FilesSkipped      int      `json:"files_skipped" toon:"files_skipped"`
		Orphans           []orphan `json:"orphans" toon:"orphans"`
		RemovedByBuildLog []string `json:"removed_by_build_log,omitempty" toon:"removed_by_build_log,omitempty"`
	}{
		Root:              result.Root,
		FilesAnalyzed:     len(result.Files),
		FilesSkipped:      len(result.Skipped),
		Orphans:           []orphan{},
		RemovedByBuildLog: result.RemovedByBuildLog,
	}
	for i, o := range result.Orphans {
		flagged := result.DynamicScan != nil && result.DynamicScan.Flagged(i)
		out.Orphans = append(out.Orphans, orphan{
			Path:       o.Path,
			Imports:    o.Imports,
			ReExports:  o.ReExports,
			DynamicUse: flagged,
		})
	}
	return toolResult(out, input.Format)
}

func handleDependencyGraph(ctx context.Context, req *mcp.CallToolRequest, input DependencyGraphInput) (*mcp.CallToolResult, any, error) {
	result, err := runPipeline(getPath(input.AnalyzeInput), analysis.Options{
		SkipDynamicScan: true,
	})
	if err != nil {
		return toolError(err.Error())
	}

	if input.D3 {
		return toolResult(result.D3(), input.Format)
	}

	type node struct {
		Path       string   `json:"path" toon:"path"`
		Imports    []string `json:"imports,omitempty" toon:"imports,omitempty"`
		ImportedBy []string `json:"imported_by,omitempty" toon:"imported_by,omitempty"`
	}
	out := struct {
		Root    string         `json:"root" toon:"root"`
		Nodes   []node         `json:"nodes" toon:"nodes"`
		Metrics *graph.Metrics `json:"metrics,omitempty" toon:"metrics,omitempty"`
	}{Root: result.Root, Nodes: []node{}}
	for _, p := range result.Graph.Paths() {
		n := result.Graph.Node(p)
		out.Nodes = append(out.Nodes, node{
			Path:       p,
			Imports:    n.Imports.Sorted(),
			ImportedBy: n.ImportedBy.Sorted(),
		})
	}
	if input.Metrics {
		out.Metrics = result.Metrics
	}
	return toolResult(out, input.Format)
}

func handleFindDuplicates(ctx context.Context, req *mcp.CallToolRequest, input DuplicatesInput) (*mcp.CallToolResult, any, error) {
	result, err := runPipeline(getPath(input.AnalyzeInput), analysis.Options{
		SkipDynamicScan: true,
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Root   string                 `json:"root" toon:"root"`
		Groups []graph.DuplicateGroup `json:"groups" toon:"groups"`
	}{Root: result.Root, Groups: result.Duplicates}
	if out.Groups == nil {
		out.Groups = []graph.DuplicateGroup{}
	}
	return toolResult(out, input.Format)
}

func handleListBarrels(ctx context.Context, req *mcp.CallToolRequest, input BarrelsInput) (*mcp.CallToolResult, any, error) {
	result, err := runPipeline(getPath(input.AnalyzeInput), analysis.Options{
		SkipDynamicScan: true,
		SkipDuplicates:  true,
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Root    string               `json:"root" toon:"root"`
		Barrels []graph.BarrelExport `json:"barrels" toon:"barrels"`
	}{Root: result.Root, Barrels: result.Barrels}
	if out.Barrels == nil {
		out.Barrels = []graph.BarrelExport{}
	}
	return toolResult(out, input.Format)
}

func handleScanDynamicRefs(ctx context.Context, req *mcp.CallToolRequest, input DynamicRefsInput) (*mcp.CallToolResult, any, error) {
	result, err := runPipeline(getPath(input.AnalyzeInput), analysis.Options{
		SkipDuplicates: true,
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		Root       string `json:"root" toon:"root"`
		Candidates int    `json:"candidates" toon:"candidates"`
		Flagged    int    `json:"flagged" toon:"flagged"`
		References any    `json:"references" toon:"references"`
	}{Root: result.Root, Candidates: len(result.Orphans)}
	if result.DynamicScan != nil {
		out.Flagged = result.DynamicScan.FlaggedCount()
		out.References = result.DynamicScan.References
	}
	return toolResult(out, input.Format)
}
