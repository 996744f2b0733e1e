package graph

import "testing"

func TestAddImportEdgeSymmetry(t *testing.T) {
	g := New()
	g.AddNode("a.ts")
	g.AddNode("b.ts")

	if !g.AddImportEdge("a.ts", "b.ts", EdgeStaticImport) {
		t.Fatal("AddImportEdge() = false, want true for new edge")
	}
	if !g.Node("a.ts").Imports.Has("b.ts") {
		t.Error("a.ts should import b.ts")
	}
	if !g.Node("b.ts").ImportedBy.Has("a.ts") {
		t.Error("b.ts should be imported by a.ts")
	}
}

func TestAddImportEdgeDuplicate(t *testing.T) {
	g := New()
	g.AddNode("a.ts")
	g.AddNode("b.ts")

	g.AddImportEdge("a.ts", "b.ts", EdgeStaticImport)
	if g.AddImportEdge("a.ts", "b.ts", EdgeRequire) {
		t.Error("duplicate edge should return false")
	}
	// First recorded kind wins.
	if kind, _ := g.EdgeKind("a.ts", "b.ts"); kind != EdgeStaticImport {
		t.Errorf("EdgeKind() = %s, want %s", kind, EdgeStaticImport)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestAddImportEdgeRejectsSelfEdge(t *testing.T) {
	g := New()
	g.AddNode("a.ts")
	if g.AddImportEdge("a.ts", "a.ts", EdgeStaticImport) {
		t.Error("self-edge should be rejected")
	}
	if g.Node("a.ts").Imports.Len() != 0 {
		t.Error("self-edge must not mutate the node")
	}
}

func TestAddImportEdgeRejectsUnknownNodes(t *testing.T) {
	g := New()
	g.AddNode("a.ts")
	if g.AddImportEdge("a.ts", "ghost.ts", EdgeStaticImport) {
		t.Error("edge to unknown node should be rejected")
	}
	if g.AddImportEdge("ghost.ts", "a.ts", EdgeStaticImport) {
		t.Error("edge from unknown node should be rejected")
	}
}

func TestAddReExportEdgeSymmetry(t *testing.T) {
	g := New()
	g.AddNode("index.ts")
	g.AddNode("util.ts")

	if !g.AddReExportEdge("index.ts", "util.ts") {
		t.Fatal("AddReExportEdge() = false, want true")
	}
	if !g.Node("index.ts").ReExports.Has("util.ts") {
		t.Error("index.ts should re-export util.ts")
	}
	if !g.Node("util.ts").ReExportedBy.Has("index.ts") {
		t.Error("util.ts should be re-exported by index.ts")
	}
}

func TestPathsDiscoveryOrder(t *testing.T) {
	g := New()
	for _, p := range []string{"z.ts", "a.ts", "m.ts"} {
		g.AddNode(p)
	}
	g.AddNode("z.ts") // duplicate registration keeps original position

	want := []string{"z.ts", "a.ts", "m.ts"}
	got := g.Paths()
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAddUnresolvedDeduplicates(t *testing.T) {
	g := New()
	g.AddNode("a.ts")
	g.AddUnresolved("a.ts", "./missing")
	g.AddUnresolved("a.ts", "./missing")
	if len(g.Unresolved["a.ts"]) != 1 {
		t.Errorf("Unresolved = %v, want single entry", g.Unresolved["a.ts"])
	}
}
