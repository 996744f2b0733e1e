package report

import (
	"fmt"
	"io"
	"time"

	"github.com/relictool/relic/pkg/graph"
	"github.com/relictool/relic/pkg/refine"
)

// Data holds everything the report renderers need. The analysis service
// fills it from a completed run.
type Data struct {
	Root              string
	GeneratedAt       time.Time
	TotalFiles        int
	SkippedFiles      []string
	Orphans           []graph.OrphanCandidate
	RemovedByBuildLog []string
	Duplicates        []graph.DuplicateGroup
	DynamicRefs       []refine.DynamicReference
	Barrels           []graph.BarrelExport
	Metrics           *graph.Metrics
}

// RenderMarkdown writes the full analysis report as Markdown.
func RenderMarkdown(w io.Writer, d *Data) error {
	fmt.Fprintf(w, "# Orphan File Analysis: %s\n\n", d.Root)
	fmt.Fprintf(w, "Generated: %s\n\n", d.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Files analyzed: %d\n", d.TotalFiles)
	fmt.Fprintf(w, "- Files skipped (unreadable): %d\n", len(d.SkippedFiles))
	fmt.Fprintf(w, "- Orphan candidates: %d\n", len(d.Orphans))
	fmt.Fprintf(w, "- Duplicate groups: %d\n", len(d.Duplicates))
	if len(d.RemovedByBuildLog) > 0 {
		fmt.Fprintf(w, "- Cleared by build log: %d\n", len(d.RemovedByBuildLog))
	}
	fmt.Fprintln(w)

	if d.Metrics != nil {
		fmt.Fprintln(w, "## Graph Metrics")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "- Nodes: %d\n", d.Metrics.TotalNodes)
		fmt.Fprintf(w, "- Edges: %d\n", d.Metrics.TotalEdges)
		fmt.Fprintf(w, "- Connected components: %d\n", d.Metrics.Components)
		if d.Metrics.IsCyclic {
			fmt.Fprintf(w, "- Import cycles: %d\n", d.Metrics.CyclicGroups)
		}
		if len(d.Metrics.TopImported) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "| File | PageRank | Imported By | Imports |")
			fmt.Fprintln(w, "| --- | --- | --- | --- |")
			for _, r := range d.Metrics.TopImported {
				fmt.Fprintf(w, "| `%s` | %.4f | %d | %d |\n", r.Path, r.PageRank, r.InDegree, r.OutDegree)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Orphan Candidates")
	fmt.Fprintln(w)
	if len(d.Orphans) == 0 {
		fmt.Fprintln(w, "No orphan candidates found.")
	} else {
		for _, o := range d.Orphans {
			fmt.Fprintf(w, "### `%s`\n\n", o.Path)
			writePathList(w, "Imports", o.Imports)
			writePathList(w, "Re-exports", o.ReExports)
			if refs := refsFor(d.DynamicRefs, o.Path); len(refs) > 0 {
				fmt.Fprintln(w, "Possible dynamic references:")
				fmt.Fprintln(w)
				for _, r := range refs {
					fmt.Fprintf(w, "- `%s:%d` (%s): `%s`\n", r.File, r.Line, r.Kind, r.Literal)
				}
				fmt.Fprintln(w)
			}
		}
	}

	if len(d.RemovedByBuildLog) > 0 {
		fmt.Fprintln(w, "## Cleared by Build Log")
		fmt.Fprintln(w)
		for _, p := range d.RemovedByBuildLog {
			fmt.Fprintf(w, "- `%s`\n", p)
		}
		fmt.Fprintln(w)
	}

	if len(d.Duplicates) > 0 {
		fmt.Fprintln(w, "## Duplicate Files")
		fmt.Fprintln(w)
		for _, g := range d.Duplicates {
			fmt.Fprintf(w, "- `%s` (%d copies, %s)\n", g.Basename, len(g.Paths), shortHash(g.ContentHash))
			for _, p := range g.Paths {
				fmt.Fprintf(w, "  - `%s`\n", p)
			}
		}
		fmt.Fprintln(w)
	}

	if len(d.Barrels) > 0 {
		fmt.Fprintln(w, "## Barrel Re-exports")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Barrel | Export | Source |")
		fmt.Fprintln(w, "| --- | --- | --- |")
		for _, b := range d.Barrels {
			fmt.Fprintf(w, "| `%s` | %s | `%s` |\n", b.Barrel, b.Name, b.Source)
		}
		fmt.Fprintln(w)
	}

	if len(d.SkippedFiles) > 0 {
		fmt.Fprintln(w, "## Skipped Files")
		fmt.Fprintln(w)
		for _, p := range d.SkippedFiles {
			fmt.Fprintf(w, "- `%s`\n", p)
		}
	}
	return nil
}

func writePathList(w io.Writer, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n\n", label)
	for _, p := range paths {
		fmt.Fprintf(w, "- `%s`\n", p)
	}
	fmt.Fprintln(w)
}

func refsFor(refs []refine.DynamicReference, candidate string) []refine.DynamicReference {
	var out []refine.DynamicReference
	for _, r := range refs {
		if r.Candidate == candidate {
			out = append(out, r)
		}
	}
	return out
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
