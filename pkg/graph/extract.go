package graph

import "regexp"

// RawImport is an import target exactly as written in source, before
// resolution, tagged with the syntax that produced it.
type RawImport struct {
	Target string
	Kind   EdgeKind
}

// Textual patterns for relative import targets. Only targets beginning with
// ./ or ../ are captured; bare package imports never become graph edges.
// This is pattern matching, not parsing: the contract is file text in, tagged
// raw strings out, so a real parser could replace these without touching any
// other component.
var (
	// import X from './a'; import { a, b } from './a'; import * as ns from './a';
	// import './side-effect';
	reStaticImport = regexp.MustCompile(`(?m)\bimport\s+(?:type\s+)?(?:[\w$]+\s*,?\s*)?(?:\*\s+as\s+[\w$]+\s+)?(?:\{[^}]*\}\s+)?(?:from\s+)?['"](\.\.?/[^'"]+)['"]`)

	// export { a, b } from './a'; export * from './a'; export { default as X } from './a'
	reExportFrom = regexp.MustCompile(`\bexport\s+(?:type\s+)?(?:\*(?:\s+as\s+[\w$]+)?|\{[^}]*\})\s*from\s*['"](\.\.?/[^'"]+)['"]`)

	// const mod = require('./a')
	reRequire = regexp.MustCompile(`\brequire\(\s*['"](\.\.?/[^'"]+)['"]\s*\)`)

	// import('./a') with a literal target
	reDynamicImport = regexp.MustCompile(`\bimport\(\s*['"](\.\.?/[^'"]+)['"]\s*\)`)

	// @import './a.css'; @import url('./a.css')
	reCSSImport = regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]?(\.\.?/[^'")\s;]+)['"]?\s*\)?`)
)

// ExtractImports returns the relative import targets referenced by content.
// Matches are found in source order but returned deduplicated; only the
// presence of an edge matters downstream. A file with zero imports is valid.
func ExtractImports(content []byte) []RawImport {
	var out []RawImport
	seen := make(map[RawImport]struct{})

	add := func(target string, kind EdgeKind) {
		ri := RawImport{Target: target, Kind: kind}
		if _, dup := seen[ri]; dup {
			return
		}
		seen[ri] = struct{}{}
		out = append(out, ri)
	}

	for _, m := range reStaticImport.FindAllSubmatch(content, -1) {
		add(string(m[1]), EdgeStaticImport)
	}
	// Re-exports reference their source the same way an import does; the
	// barrel pass later adds the re-export relationship on top.
	for _, m := range reExportFrom.FindAllSubmatch(content, -1) {
		add(string(m[1]), EdgeStaticImport)
	}
	for _, m := range reRequire.FindAllSubmatch(content, -1) {
		add(string(m[1]), EdgeRequire)
	}
	for _, m := range reDynamicImport.FindAllSubmatch(content, -1) {
		add(string(m[1]), EdgeDynamicImport)
	}
	for _, m := range reCSSImport.FindAllSubmatch(content, -1) {
		add(string(m[1]), EdgeCSSImport)
	}

	return out
}
