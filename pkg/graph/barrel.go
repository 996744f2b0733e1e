package graph

import (
	"regexp"
	"strings"
)

// DefaultMaxPropagationPasses bounds barrel propagation on pathological
// re-export cycles. Hitting the cap stops propagation silently; the result
// is incomplete, not wrong.
const DefaultMaxPropagationPasses = 10

var (
	// export { a, b } from './x'; export { default as X } from './x'
	reNamedReExport = regexp.MustCompile(`\bexport\s+(?:type\s+)?\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)

	// export * from './x'; export * as ns from './x'
	reWildcardReExport = regexp.MustCompile(`\bexport\s+(?:type\s+)?\*(?:\s+as\s+([\w$]+))?\s*from\s*['"]([^'"]+)['"]`)
)

// IsBarrel reports whether a path follows the index-file convention.
func IsBarrel(p string) bool {
	base := p
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base == "index"
}

// ReExportDecl is one re-export declaration as written in source, before the
// target is resolved.
type ReExportDecl struct {
	Name   string
	Target string
}

// ExtractReExports returns the re-export declarations in content, as written.
func ExtractReExports(content []byte) []ReExportDecl {
	var out []ReExportDecl

	for _, m := range reNamedReExport.FindAllSubmatch(content, -1) {
		target := string(m[2])
		for _, entry := range strings.Split(string(m[1]), ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			// "default as X" exposes the default export; "a as b" exposes a.
			name := entry
			if fields := strings.Fields(entry); len(fields) >= 1 {
				name = fields[0]
			}
			name = strings.TrimPrefix(name, "type ")
			out = append(out, ReExportDecl{Name: name, Target: target})
		}
	}
	for _, m := range reWildcardReExport.FindAllSubmatch(content, -1) {
		out = append(out, ReExportDecl{Name: "*", Target: string(m[2])})
	}
	return out
}

// ResolveBarrels finds barrel files, records their re-export edges, and
// propagates importers through them so a file reachable only via a barrel is
// not misclassified as orphaned.
//
// Propagation runs as an explicit fixed-point loop with a changed flag and a
// pass cap: for every barrel B re-exporting S, every importer F of B gains an
// implied edge F -> S. Each pass is strictly additive; a second run on a
// stable graph adds nothing.
func ResolveBarrels(g *Graph, sources map[string][]byte, r *Resolver, maxPasses int) []BarrelExport {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPropagationPasses
	}

	var exports []BarrelExport
	for _, node := range g.Nodes() {
		if !IsBarrel(node.Path) {
			continue
		}
		content, ok := sources[node.Path]
		if !ok {
			continue
		}
		for _, decl := range ExtractReExports(content) {
			source, ok := r.Resolve(decl.Target, node.Path)
			if !ok {
				continue
			}
			g.AddReExportEdge(node.Path, source)
			exports = append(exports, BarrelExport{
				Barrel: node.Path,
				Name:   decl.Name,
				Source: source,
			})
		}
	}

	PropagateBarrels(g, maxPasses)
	return exports
}

// PropagateBarrels runs only the fixed-point propagation step. Exposed
// separately so classification can re-run it after synthetic edges (route
// references) are added.
func PropagateBarrels(g *Graph, maxPasses int) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPropagationPasses
	}
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, barrel := range g.Nodes() {
			if barrel.ReExports.Len() == 0 {
				continue
			}
			for _, source := range barrel.ReExports.Sorted() {
				for _, importer := range barrel.ImportedBy.Sorted() {
					if importer == source {
						continue
					}
					if g.AddImportEdge(importer, source, EdgeBarrelReExport) {
						changed = true
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}
