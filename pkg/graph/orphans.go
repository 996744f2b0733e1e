package graph

import (
	"fmt"
	"path"

	"github.com/gobwas/glob"
)

// DefaultAllowPatterns are filenames that are never classified as orphaned
// regardless of incoming-edge count: entry points, framework conventions,
// and tool configuration. Patterns are matched against the basename and,
// when they contain a slash, against the full project-relative path.
var DefaultAllowPatterns = []string{
	"package.json",
	"package-lock.json",
	"tsconfig*.json",
	"index.ts",
	"index.tsx",
	"index.js",
	"index.jsx",
	"main.ts",
	"main.tsx",
	"main.js",
	"main.jsx",
	"App.ts",
	"App.tsx",
	"App.js",
	"App.jsx",
	"index.html",
	"index.css",
	"README.md",
	"vite.config.*",
	"next.config.*",
	"webpack.config.*",
	"babel.config.*",
	"jest.config.*",
	"*.d.ts",
	"setupTests.*",
	"reportWebVitals.*",
	"service-worker.*",
	"serviceWorker.*",
}

// AllowList holds compiled never-orphan patterns. Static configuration that
// is consulted at classification time only; it never removes graph edges.
type AllowList struct {
	globs []glob.Glob
	raw   []string
}

// NewAllowList compiles the given patterns. An invalid pattern is a
// configuration error and fails loudly rather than silently narrowing the
// protection the list provides.
func NewAllowList(patterns []string) (*AllowList, error) {
	a := &AllowList{raw: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("allow-list pattern %q: %w", p, err)
		}
		a.globs = append(a.globs, g)
	}
	return a, nil
}

// MustAllowList is NewAllowList for known-good static patterns.
func MustAllowList(patterns []string) *AllowList {
	a, err := NewAllowList(patterns)
	if err != nil {
		panic(err)
	}
	return a
}

// Patterns returns the raw patterns the list was built from.
func (a *AllowList) Patterns() []string {
	return a.raw
}

// Match reports whether the path or its basename matches any pattern.
func (a *AllowList) Match(p string) bool {
	base := path.Base(p)
	for _, g := range a.globs {
		if g.Match(base) || g.Match(p) {
			return true
		}
	}
	return false
}

// ClassifyOrphans returns every node with no incoming import edge and no
// incoming re-export edge, excluding allow-listed paths. Output order is
// discovery order: deterministic relative to the directory walk, not a sort
// guarantee across platforms.
func ClassifyOrphans(g *Graph, allow *AllowList) []OrphanCandidate {
	var out []OrphanCandidate
	for _, node := range g.Nodes() {
		if node.ImportedBy.Len() > 0 || node.ReExportedBy.Len() > 0 {
			continue
		}
		if allow != nil && allow.Match(node.Path) {
			continue
		}
		out = append(out, OrphanCandidate{
			Path:      node.Path,
			Imports:   node.Imports.Sorted(),
			ReExports: node.ReExports.Sorted(),
		})
	}
	return out
}
