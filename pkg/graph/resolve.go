package graph

import (
	"path"
	"strings"
)

// DefaultExtensions is the probing order used when none is configured. The
// order matters: the first extension that produces an existing file wins.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".css", ".scss"}

// FileSet answers existence queries during resolution. The graph itself is
// the usual implementation, so resolution only ever lands on collected files.
type FileSet interface {
	Contains(path string) bool
}

// Resolver maps raw relative import strings to project-relative paths.
type Resolver struct {
	files FileSet
	exts  []string
}

// NewResolver creates a resolver probing the given extensions in order.
func NewResolver(files FileSet, extensions []string) *Resolver {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Resolver{files: files, exts: extensions}
}

// Resolve turns a raw import target plus the importing file's path into a
// canonical project-relative path. Probe order, first match wins:
//
//  1. the joined path as written
//  2. joined path + each extension
//  3. joined path as a directory containing index.<ext>
//
// A miss is a normal outcome (external or aliased import), never an error.
func (r *Resolver) Resolve(raw, fromPath string) (string, bool) {
	joined := path.Clean(path.Join(path.Dir(fromPath), raw))
	if joined == "." || strings.HasPrefix(joined, "../") {
		// Escapes the project root; cannot be a project file.
		return "", false
	}

	if r.files.Contains(joined) {
		return joined, true
	}
	for _, ext := range r.exts {
		if candidate := joined + ext; r.files.Contains(candidate) {
			return candidate, true
		}
	}
	for _, ext := range r.exts {
		if candidate := joined + "/index" + ext; r.files.Contains(candidate) {
			return candidate, true
		}
	}
	return "", false
}
