// Package report renders analysis results as Markdown, D3 graph JSON,
// and a self-contained HTML visualizer.
package report

import (
	"sort"
	"strings"

	"github.com/relictool/relic/pkg/graph"
)

// Link values in the D3 document.
const (
	linkImport    = 1
	linkReExport  = 2
	linkDuplicate = 3
)

// D3Node is a node in the force-graph document. ID is the project-relative
// file path; Group drives node coloring in the visualizer.
type D3Node struct {
	ID    string `json:"id"`
	Group int    `json:"group"`
}

// D3Link is a directed edge in the force-graph document.
type D3Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// D3Document is the JSON payload consumed by the HTML visualizer and by
// external D3 tooling.
type D3Document struct {
	Nodes []D3Node `json:"nodes"`
	Links []D3Link `json:"links"`
}

// GroupFor assigns a display group by extension first, then by directory.
func GroupFor(path string) int {
	switch {
	case strings.HasSuffix(path, ".ts"), strings.HasSuffix(path, ".tsx"):
		return 1
	case strings.HasSuffix(path, ".js"), strings.HasSuffix(path, ".jsx"):
		return 2
	case strings.HasSuffix(path, ".css"), strings.HasSuffix(path, ".scss"):
		return 3
	case strings.Contains(path, "/components/"):
		return 4
	case strings.Contains(path, "/pages/"), strings.Contains(path, "/views/"):
		return 5
	case strings.Contains(path, "/utils/"), strings.Contains(path, "/helpers/"):
		return 6
	default:
		return 0
	}
}

// BuildD3 converts a dependency graph and duplicate groups to the D3
// document format. Unresolved import targets become display-only nodes
// with group 0 so broken edges remain visible.
func BuildD3(g *graph.Graph, dups []graph.DuplicateGroup) *D3Document {
	doc := &D3Document{
		Nodes: make([]D3Node, 0, g.Len()),
		Links: []D3Link{},
	}
	seen := make(map[string]bool, g.Len())
	seenLink := make(map[[2]string]bool)

	addNode := func(id string, group int) {
		if seen[id] {
			return
		}
		seen[id] = true
		doc.Nodes = append(doc.Nodes, D3Node{ID: id, Group: group})
	}
	addLink := func(source, target string, value int) {
		key := [2]string{source, target}
		if seenLink[key] {
			return
		}
		seenLink[key] = true
		doc.Links = append(doc.Links, D3Link{Source: source, Target: target, Value: value})
	}

	for _, p := range g.Paths() {
		addNode(p, GroupFor(p))
	}

	for _, p := range g.Paths() {
		node := g.Node(p)
		for _, imp := range node.Imports.Sorted() {
			value := linkImport
			if kind, ok := g.EdgeKind(p, imp); ok && kind == graph.EdgeBarrelReExport {
				value = linkReExport
			}
			addLink(p, imp, value)
		}
		for _, target := range node.ReExports.Sorted() {
			addLink(p, target, linkReExport)
		}
		for _, target := range g.Unresolved[p] {
			addNode(target, 0)
			addLink(p, target, linkImport)
		}
	}

	for _, group := range dups {
		paths := append([]string(nil), group.Paths...)
		sort.Strings(paths)
		for i := 1; i < len(paths); i++ {
			addNode(paths[0], GroupFor(paths[0]))
			addNode(paths[i], GroupFor(paths[i]))
			addLink(paths[0], paths[i], linkDuplicate)
		}
	}

	return doc
}
