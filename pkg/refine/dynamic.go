package refine

import (
	"bytes"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/relictool/relic/internal/fileproc"
	"github.com/relictool/relic/pkg/graph"
)

// ReferenceKind classifies how a possible dynamic reference was found.
type ReferenceKind string

const (
	RefDynamicImport ReferenceKind = "dynamic-import"
	RefLazy          ReferenceKind = "lazy"
	RefRequire       ReferenceKind = "require"
	RefStringLiteral ReferenceKind = "string-literal"
)

// DynamicReference annotates a candidate with a possible dynamic use. It is
// advisory: the candidate stays in the orphan list, flagged for human review.
// A file must never be archived based on this pass alone.
type DynamicReference struct {
	Candidate string        `json:"candidate"`
	File      string        `json:"file"`
	Line      int           `json:"line"`
	Literal   string        `json:"literal"`
	Kind      ReferenceKind `json:"kind"`
}

// minStemLength guards against spurious matches on short substrings. The
// original heuristic matched one- and two-character stems, which flagged
// nearly everything; requiring three characters plus word boundaries is a
// deliberate tightening.
const minStemLength = 3

var (
	reDynamicCall = regexp.MustCompile(`\bimport\(\s*([^)]{1,200}?)\s*\)`)
	reLazyCall    = regexp.MustCompile(`\blazy\(\s*([^)]{1,200}?)\s*\)`)
	reRequireCall = regexp.MustCompile(`\brequire\(\s*([^)]{1,200}?)\s*\)`)
	reStringLit   = regexp.MustCompile(`['"]([^'"\n]{3,200})['"]`)
)

type literal struct {
	value string
	line  int
	kind  ReferenceKind
}

// DynamicScan is the result of one dynamic-reference pass.
type DynamicScan struct {
	References []DynamicReference
	flagged    *roaring.Bitmap // candidate indices with at least one hit
}

// Flagged reports whether the candidate at index i had any possible dynamic
// reference.
func (s *DynamicScan) Flagged(i int) bool {
	return s.flagged != nil && i >= 0 && s.flagged.Contains(uint32(i))
}

// FlaggedCount returns how many candidates were annotated.
func (s *DynamicScan) FlaggedCount() int {
	if s.flagged == nil {
		return 0
	}
	return int(s.flagged.GetCardinality())
}

// ScanDynamicReferences re-scans all source text for dynamic-import, lazy,
// require, and generic string literals whose value could plausibly reference
// a candidate's path or basename. Matches annotate candidates; nothing is
// removed. Scanning is per-file independent and runs in parallel; the shared
// bitmap of flagged candidate indices is the only cross-file state.
func ScanDynamicReferences(sources map[string][]byte, candidates []graph.OrphanCandidate) *DynamicScan {
	scan := &DynamicScan{flagged: roaring.New()}
	if len(candidates) == 0 || len(sources) == 0 {
		return scan
	}

	type target struct {
		index int
		path  string
		stem  string
	}
	targets := make([]target, 0, len(candidates))
	indexByPath := make(map[string]int, len(candidates))
	for i, c := range candidates {
		indexByPath[c.Path] = i
		base := path.Base(c.Path)
		stem := strings.TrimSuffix(base, path.Ext(base))
		if len(stem) < minStemLength {
			stem = ""
		}
		targets = append(targets, target{index: i, path: c.Path, stem: stem})
	}

	paths := make([]string, 0, len(sources))
	for p := range sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var mu sync.Mutex
	fileproc.ForEachFile(paths, func(p string) (struct{}, error) {
		content := sources[p]
		lits := collectLiterals(content)
		if len(lits) == 0 {
			return struct{}{}, nil
		}
		var found []DynamicReference
		type refKey struct {
			candidate string
			line      int
			literal   string
		}
		seen := make(map[refKey]bool)
		for _, t := range targets {
			if t.path == p {
				continue
			}
			for _, lit := range lits {
				if !literalReferences(lit.value, t.path, t.stem) {
					continue
				}
				// Tagged call contexts run first, so a literal found both
				// inside import() and by the generic pass keeps the
				// stronger kind.
				key := refKey{t.path, lit.line, lit.value}
				if seen[key] {
					continue
				}
				seen[key] = true
				found = append(found, DynamicReference{
					Candidate: t.path,
					File:      p,
					Line:      lit.line,
					Literal:   lit.value,
					Kind:      lit.kind,
				})
			}
		}
		if len(found) > 0 {
			mu.Lock()
			scan.References = append(scan.References, found...)
			for _, ref := range found {
				scan.flagged.Add(uint32(indexByPath[ref.Candidate]))
			}
			mu.Unlock()
		}
		return struct{}{}, nil
	})

	sort.Slice(scan.References, func(i, j int) bool {
		a, b := scan.References[i], scan.References[j]
		if a.Candidate != b.Candidate {
			return a.Candidate < b.Candidate
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return scan
}

// collectLiterals extracts string literals, tagging those inside dynamic
// call contexts with the stronger kind.
func collectLiterals(content []byte) []literal {
	var out []literal

	tagged := func(re *regexp.Regexp, kind ReferenceKind) {
		for _, loc := range re.FindAllSubmatchIndex(content, -1) {
			arg := content[loc[2]:loc[3]]
			line := 1 + bytes.Count(content[:loc[0]], []byte{'\n'})
			for _, m := range reStringLit.FindAllSubmatch(arg, -1) {
				out = append(out, literal{value: string(m[1]), line: line, kind: kind})
			}
			// Non-literal arguments (template strings, variables) still
			// count as a possible reference site if they mention a stem.
			if !bytes.ContainsAny(arg, `'"`) {
				out = append(out, literal{value: string(arg), line: line, kind: kind})
			}
		}
	}
	tagged(reDynamicCall, RefDynamicImport)
	tagged(reLazyCall, RefLazy)
	tagged(reRequireCall, RefRequire)

	for _, loc := range reStringLit.FindAllSubmatchIndex(content, -1) {
		line := 1 + bytes.Count(content[:loc[0]], []byte{'\n'})
		out = append(out, literal{value: string(content[loc[2]:loc[3]]), line: line, kind: RefStringLiteral})
	}
	return out
}

// literalReferences reports whether the literal plausibly names the
// candidate: either it contains the full project-relative path, or it
// contains the basename stem bounded by non-identifier characters.
func literalReferences(lit, candidatePath, stem string) bool {
	if strings.Contains(lit, candidatePath) {
		return true
	}
	if stem == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(lit[start:], stem)
		if i < 0 {
			return false
		}
		i += start
		before := i - 1
		after := i + len(stem)
		boundedLeft := before < 0 || !isIdentChar(lit[before])
		boundedRight := after >= len(lit) || !isIdentChar(lit[after])
		if boundedLeft && boundedRight {
			return true
		}
		start = i + 1
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
