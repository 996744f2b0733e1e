package graph

import (
	"path"
	"sort"
	"strings"
)

// EdgeKind tags how a dependency edge was discovered.
type EdgeKind string

const (
	EdgeStaticImport   EdgeKind = "static-import"
	EdgeRequire        EdgeKind = "require"
	EdgeDynamicImport  EdgeKind = "dynamic-import"
	EdgeCSSImport      EdgeKind = "css-import"
	EdgeBarrelReExport EdgeKind = "barrel-re-export"
	EdgeRouteReference EdgeKind = "route-reference"
)

// String returns the string representation.
func (k EdgeKind) String() string {
	return string(k)
}

// StringSet is an unordered set of strings with deterministic iteration
// through Sorted.
type StringSet map[string]struct{}

// NewStringSet creates a set containing the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether it was newly added.
func (s StringSet) Add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Has reports membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FileNode is one file in the dependency graph. Paths are project-relative
// and forward-slash normalized.
type FileNode struct {
	Path         string    `json:"path"`
	Imports      StringSet `json:"-"`
	ImportedBy   StringSet `json:"-"`
	ReExports    StringSet `json:"-"`
	ReExportedBy StringSet `json:"-"`
}

func newFileNode(p string) *FileNode {
	return &FileNode{
		Path:         p,
		Imports:      make(StringSet),
		ImportedBy:   make(StringSet),
		ReExports:    make(StringSet),
		ReExportedBy: make(StringSet),
	}
}

// Basename returns the final path element.
func (n *FileNode) Basename() string {
	return path.Base(n.Path)
}

// Stem returns the basename without its extension.
func (n *FileNode) Stem() string {
	base := path.Base(n.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// BarrelExport records one re-export declaration found in a barrel file.
// Name is the exported identifier, "*" for wildcard re-exports, or "default"
// for `export { default as X } from '...'`.
type BarrelExport struct {
	Barrel string `json:"barrel"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// OrphanCandidate is a snapshot of a node with no incoming edges at
// classification time.
type OrphanCandidate struct {
	Path      string   `json:"path"`
	Imports   []string `json:"imports"`
	ReExports []string `json:"re_exports,omitempty"`
}

// DuplicateGroup is a set of files sharing both basename and content hash.
type DuplicateGroup struct {
	Basename    string   `json:"basename"`
	Paths       []string `json:"paths"`
	ContentHash string   `json:"content_hash"`
}
