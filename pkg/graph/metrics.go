package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NodeRank is one file's position in the PageRank ordering.
type NodeRank struct {
	Path      string  `json:"path"`
	PageRank  float64 `json:"pagerank"`
	InDegree  int     `json:"in_degree"`
	OutDegree int     `json:"out_degree"`
}

// Metrics summarizes graph shape for the report.
type Metrics struct {
	TotalNodes   int        `json:"total_nodes"`
	TotalEdges   int        `json:"total_edges"`
	Components   int        `json:"components"`
	CyclicGroups int        `json:"cyclic_groups"`
	IsCyclic     bool       `json:"is_cyclic"`
	TopImported  []NodeRank `json:"top_imported,omitempty"`
}

// ComputeMetrics derives summary metrics from the final graph. Runs after
// all passes; read-only.
func ComputeMetrics(g *Graph, top int) *Metrics {
	m := &Metrics{TotalNodes: g.Len(), TotalEdges: g.EdgeCount()}
	if g.Len() == 0 {
		return m
	}
	if top <= 0 {
		top = 10
	}

	ids := make(map[string]int64, g.Len())
	paths := g.Paths()
	for i, p := range paths {
		ids[p] = int64(i)
	}

	directed := simple.NewDirectedGraph()
	undirected := simple.NewUndirectedGraph()
	for _, p := range paths {
		directed.AddNode(simple.Node(ids[p]))
		undirected.AddNode(simple.Node(ids[p]))
	}
	for _, node := range g.Nodes() {
		from := ids[node.Path]
		for _, imp := range node.Imports.Sorted() {
			to := ids[imp]
			directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
			undirected.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	m.Components = len(topo.ConnectedComponents(undirected))
	for _, scc := range topo.TarjanSCC(directed) {
		if len(scc) > 1 {
			m.CyclicGroups++
		}
	}
	m.IsCyclic = m.CyclicGroups > 0

	ranks := network.PageRank(directed, 0.85, 1e-6)
	all := make([]NodeRank, 0, len(paths))
	for _, p := range paths {
		node := g.Node(p)
		all = append(all, NodeRank{
			Path:      p,
			PageRank:  ranks[ids[p]],
			InDegree:  node.ImportedBy.Len(),
			OutDegree: node.Imports.Len(),
		})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].PageRank != all[j].PageRank {
			return all[i].PageRank > all[j].PageRank
		}
		return all[i].Path < all[j].Path
	})
	if len(all) > top {
		all = all[:top]
	}
	m.TopImported = all
	return m
}
