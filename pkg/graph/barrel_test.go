package graph

import "testing"

func TestIsBarrel(t *testing.T) {
	cases := map[string]bool{
		"index.ts":           true,
		"src/lib/index.tsx":  true,
		"index.js":           true,
		"src/indexes.ts":     false,
		"src/lib/reindex.ts": false,
		"main.ts":            false,
	}
	for p, want := range cases {
		if got := IsBarrel(p); got != want {
			t.Errorf("IsBarrel(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestExtractReExports(t *testing.T) {
	src := []byte(`
export { util, helper as h } from './util';
export { default as Widget } from './Widget';
export * from './everything';
export * as ns from './namespaced';
`)
	decls := ExtractReExports(src)
	if len(decls) != 5 {
		t.Fatalf("got %d decls, want 5: %v", len(decls), decls)
	}

	byName := make(map[string]string)
	for _, d := range decls {
		byName[d.Name+"|"+d.Target] = d.Target
	}
	for _, key := range []string{
		"util|./util",
		"helper|./util",
		"default|./Widget",
		"*|./everything",
		"*|./namespaced",
	} {
		if _, ok := byName[key]; !ok {
			t.Errorf("missing re-export %s in %v", key, decls)
		}
	}
}

func barrelFixture(t *testing.T) (*Graph, map[string][]byte, *Resolver) {
	t.Helper()
	g := New()
	for _, p := range []string{"main.ts", "lib/index.ts", "lib/util.ts"} {
		g.AddNode(p)
	}
	sources := map[string][]byte{
		"main.ts":      []byte("import { util } from './lib';\n"),
		"lib/index.ts": []byte("export { util } from './util';\n"),
		"lib/util.ts":  []byte("export const util = 1;\n"),
	}
	// Replay what the builder would have recorded.
	g.AddImportEdge("main.ts", "lib/index.ts", EdgeStaticImport)
	g.AddImportEdge("lib/index.ts", "lib/util.ts", EdgeStaticImport)
	return g, sources, NewResolver(g, nil)
}

func TestResolveBarrelsPropagation(t *testing.T) {
	g, sources, r := barrelFixture(t)
	exports := ResolveBarrels(g, sources, r, 0)

	if len(exports) != 1 {
		t.Fatalf("got %d barrel exports, want 1: %v", len(exports), exports)
	}
	e := exports[0]
	if e.Barrel != "lib/index.ts" || e.Name != "util" || e.Source != "lib/util.ts" {
		t.Errorf("export = %+v", e)
	}

	// main.ts gains an implied edge to the re-exported source.
	if !g.Node("main.ts").Imports.Has("lib/util.ts") {
		t.Error("propagation should add main.ts -> lib/util.ts")
	}
	if kind, _ := g.EdgeKind("main.ts", "lib/util.ts"); kind != EdgeBarrelReExport {
		t.Errorf("EdgeKind() = %s, want %s", kind, EdgeBarrelReExport)
	}
	if !g.Node("lib/util.ts").ReExportedBy.Has("lib/index.ts") {
		t.Error("lib/util.ts should record its re-exporting barrel")
	}
}

func TestPropagateBarrelsIdempotent(t *testing.T) {
	g, sources, r := barrelFixture(t)
	ResolveBarrels(g, sources, r, 0)
	edges := g.EdgeCount()

	PropagateBarrels(g, DefaultMaxPropagationPasses)
	if g.EdgeCount() != edges {
		t.Errorf("second propagation changed edge count: %d -> %d", edges, g.EdgeCount())
	}
}

func TestPropagateBarrelsChainTerminates(t *testing.T) {
	// index-a re-exports through index-b; both are each other's importers,
	// forming a re-export cycle. The pass cap must hold.
	g := New()
	for _, p := range []string{"a/index.ts", "b/index.ts"} {
		g.AddNode(p)
	}
	g.AddImportEdge("a/index.ts", "b/index.ts", EdgeStaticImport)
	g.AddImportEdge("b/index.ts", "a/index.ts", EdgeStaticImport)
	g.AddReExportEdge("a/index.ts", "b/index.ts")
	g.AddReExportEdge("b/index.ts", "a/index.ts")

	PropagateBarrels(g, 3) // must return, not spin
}

func TestResolveBarrelsRespectsPassCap(t *testing.T) {
	// Chain of barrels: entry -> i1 -> i2 -> leaf, all through re-exports.
	g := New()
	files := []string{"entry.ts", "l1/index.ts", "l2/index.ts", "leaf.ts"}
	for _, p := range files {
		g.AddNode(p)
	}
	g.AddImportEdge("entry.ts", "l1/index.ts", EdgeStaticImport)
	g.AddImportEdge("l1/index.ts", "l2/index.ts", EdgeStaticImport)
	g.AddImportEdge("l2/index.ts", "leaf.ts", EdgeStaticImport)
	g.AddReExportEdge("l1/index.ts", "l2/index.ts")
	g.AddReExportEdge("l2/index.ts", "leaf.ts")

	PropagateBarrels(g, DefaultMaxPropagationPasses)

	// entry reaches the leaf only through two levels of barrels.
	if !g.Node("entry.ts").Imports.Has("leaf.ts") {
		t.Error("multi-level propagation should reach the leaf")
	}
}
