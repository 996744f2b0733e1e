package graph

import (
	"os"
	"path/filepath"
)

// WarnFunc receives non-fatal per-file problems. If nil, warnings are dropped.
type WarnFunc func(path string, err error)

// Builder populates a Graph from a set of collected files.
type Builder struct {
	root   string
	exts   []string
	onWarn WarnFunc
	onTick func()
}

// BuilderOption is a functional option for configuring Builder.
type BuilderOption func(*Builder)

// WithExtensions sets the ordered extension list used for resolution probing.
func WithExtensions(exts []string) BuilderOption {
	return func(b *Builder) {
		b.exts = exts
	}
}

// WithWarnFunc sets the callback for per-file warnings.
func WithWarnFunc(fn WarnFunc) BuilderOption {
	return func(b *Builder) {
		b.onWarn = fn
	}
}

// WithProgress sets a callback invoked after each file is processed.
func WithProgress(fn func()) BuilderOption {
	return func(b *Builder) {
		b.onTick = fn
	}
}

// NewBuilder creates a builder rooted at the given project directory.
func NewBuilder(root string, opts ...BuilderOption) *Builder {
	b := &Builder{root: root, exts: DefaultExtensions}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build is the pipeline of one analysis run. Files are project-relative
// forward-slash paths in discovery order. Every file becomes a node first,
// so resolution can probe the full set; then each file is read, its raw
// imports extracted and resolved, and edges recorded. An unreadable file is
// skipped and counted, never fatal. The whole pass is sequential: the graph
// is exclusively owned by this run and no pass overlaps another.
type Build struct {
	Graph   *Graph
	Sources map[string][]byte
}

// Build constructs the dependency graph for the given files.
func (b *Builder) Build(files []string) *Build {
	g := New()
	for _, f := range files {
		g.AddNode(f)
	}

	resolver := NewResolver(g, b.exts)
	sources := make(map[string][]byte, len(files))

	for _, f := range files {
		content, err := os.ReadFile(filepath.Join(b.root, filepath.FromSlash(f)))
		if err != nil {
			g.Skipped = append(g.Skipped, f)
			if b.onWarn != nil {
				b.onWarn(f, err)
			}
			if b.onTick != nil {
				b.onTick()
			}
			continue
		}
		sources[f] = content

		for _, ri := range ExtractImports(content) {
			target, ok := resolver.Resolve(ri.Target, f)
			if !ok {
				g.AddUnresolved(f, ri.Target)
				continue
			}
			g.AddImportEdge(f, target, ri.Kind)
		}
		if b.onTick != nil {
			b.onTick()
		}
	}

	return &Build{Graph: g, Sources: sources}
}

// Resolver returns a resolver over the given graph using the builder's
// configured extensions. Refinement passes share it so that barrel re-export
// sources resolve under the same rules as ordinary imports.
func (b *Builder) Resolver(g *Graph) *Resolver {
	return NewResolver(g, b.exts)
}
