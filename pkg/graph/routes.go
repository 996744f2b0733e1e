package graph

import "regexp"

// Route-table JSX patterns. A component wired up only through a routing
// table never appears in an import statement of the routing file in the
// relative-path form the extractor looks for, so these add synthetic edges
// keyed on the referenced component identifier.
//
// Identifiers must be capitalized and at least two characters long. The
// original heuristic matched single characters and produced spurious edges;
// the minimum length and word shape here are a deliberate tightening.
var routePatterns = []*regexp.Regexp{
	regexp.MustCompile(`element=\{\s*<([A-Z][A-Za-z0-9_]+)`),
	regexp.MustCompile(`component=\{\s*([A-Z][A-Za-z0-9_]+)\s*\}`),
	regexp.MustCompile(`render=\{[^}]*?<([A-Z][A-Za-z0-9_]+)`),
}

// ResolveRoutes scans every file for route-like JSX attributes and, for each
// referenced identifier, adds an edge to every known file whose basename
// (minus extension) equals the identifier. Multiple matches all get edges:
// over-approximating keeps real components out of the orphan list at the
// cost of the occasional extra edge.
func ResolveRoutes(g *Graph, sources map[string][]byte) int {
	// Basename stem -> file paths, built once.
	byStem := make(map[string][]string)
	for _, node := range g.Nodes() {
		stem := node.Stem()
		byStem[stem] = append(byStem[stem], node.Path)
	}

	added := 0
	for _, node := range g.Nodes() {
		content, ok := sources[node.Path]
		if !ok {
			continue
		}
		for _, re := range routePatterns {
			for _, m := range re.FindAllSubmatch(content, -1) {
				ident := string(m[1])
				for _, target := range byStem[ident] {
					if target == node.Path {
						continue
					}
					if g.AddImportEdge(node.Path, target, EdgeRouteReference) {
						added++
					}
				}
			}
		}
	}
	return added
}
