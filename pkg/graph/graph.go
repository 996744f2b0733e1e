// Package graph builds and refines a file-level import dependency graph for
// JavaScript/TypeScript projects. Import extraction is regex-based; extract.go
// defines the text-in, tagged-targets-out boundary a real parser could later
// slot into.
package graph

// edgeKey identifies a directed edge.
type edgeKey struct {
	from string
	to   string
}

// Graph is the dependency graph for one analysis run. A run constructs
// exactly one Graph, passes it through each refinement pass, and discards it
// after reporting. It is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]*FileNode
	order []string // discovery order

	kinds map[edgeKey]EdgeKind

	// Unresolved maps an importing file to the raw import strings that did
	// not resolve to a known file. These never become edges; they are kept
	// for the visualization layer, which synthesizes display-only nodes.
	Unresolved map[string][]string

	// Skipped lists files that could not be read during the build pass.
	Skipped []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]*FileNode),
		kinds:      make(map[edgeKey]EdgeKind),
		Unresolved: make(map[string][]string),
	}
}

// AddNode registers a file, creating its node if needed. Discovery order is
// preserved for deterministic iteration.
func (g *Graph) AddNode(path string) *FileNode {
	if n, ok := g.nodes[path]; ok {
		return n
	}
	n := newFileNode(path)
	g.nodes[path] = n
	g.order = append(g.order, path)
	return n
}

// Node returns the node for path, or nil.
func (g *Graph) Node(path string) *FileNode {
	return g.nodes[path]
}

// Contains reports whether path is a known file.
func (g *Graph) Contains(path string) bool {
	_, ok := g.nodes[path]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Paths returns all node paths in discovery order.
func (g *Graph) Paths() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Nodes returns all nodes in discovery order.
func (g *Graph) Nodes() []*FileNode {
	out := make([]*FileNode, 0, len(g.order))
	for _, p := range g.order {
		out = append(out, g.nodes[p])
	}
	return out
}

// AddImportEdge records from -> to with the given kind. Both endpoints must
// be known nodes; self-edges are rejected. Symmetry between Imports and
// ImportedBy is enforced here, at write time. Returns true if the edge was
// newly added.
func (g *Graph) AddImportEdge(from, to string, kind EdgeKind) bool {
	if from == to {
		return false
	}
	src, dst := g.nodes[from], g.nodes[to]
	if src == nil || dst == nil {
		return false
	}
	added := src.Imports.Add(to)
	dst.ImportedBy.Add(from)
	if added {
		g.kinds[edgeKey{from, to}] = kind
	}
	return added
}

// AddReExportEdge records that barrel re-exports source. Returns true if the
// edge was newly added.
func (g *Graph) AddReExportEdge(barrel, source string) bool {
	if barrel == source {
		return false
	}
	b, s := g.nodes[barrel], g.nodes[source]
	if b == nil || s == nil {
		return false
	}
	added := b.ReExports.Add(source)
	s.ReExportedBy.Add(barrel)
	if added {
		g.kinds[edgeKey{barrel, source}] = EdgeBarrelReExport
	}
	return added
}

// EdgeKind returns the kind recorded for the edge from -> to. The first pass
// to record an edge wins; later passes are strictly additive.
func (g *Graph) EdgeKind(from, to string) (EdgeKind, bool) {
	k, ok := g.kinds[edgeKey{from, to}]
	return k, ok
}

// EdgeCount returns the number of recorded edges of any kind.
func (g *Graph) EdgeCount() int {
	return len(g.kinds)
}

// AddUnresolved records a raw import string that did not resolve.
func (g *Graph) AddUnresolved(from, raw string) {
	for _, existing := range g.Unresolved[from] {
		if existing == raw {
			return
		}
	}
	g.Unresolved[from] = append(g.Unresolved[from], raw)
}
