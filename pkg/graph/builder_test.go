package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func TestBuildSimpleImport(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "import { b } from './b';\n",
		"b.ts": "export const b = 1;\n",
	})

	build := NewBuilder(root).Build([]string{"a.ts", "b.ts"})
	g := build.Graph

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	if !g.Node("a.ts").Imports.Has("b.ts") {
		t.Error("a.ts should import b.ts")
	}
	if !g.Node("b.ts").ImportedBy.Has("a.ts") {
		t.Error("b.ts should be imported by a.ts")
	}
	if kind, _ := g.EdgeKind("a.ts", "b.ts"); kind != EdgeStaticImport {
		t.Errorf("EdgeKind() = %s, want %s", kind, EdgeStaticImport)
	}
}

func TestBuildUnresolvedImport(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "import missing from './missing';\nimport React from 'react';\n",
	})

	build := NewBuilder(root).Build([]string{"a.ts"})
	g := build.Graph

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if got := g.Unresolved["a.ts"]; len(got) != 1 || got[0] != "./missing" {
		t.Errorf("Unresolved = %v, want [./missing]", got)
	}
}

func TestBuildUnreadableFileSkipped(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "import { b } from './b';\n",
		"b.ts": "export const b = 1;\n",
	})

	var warned []string
	builder := NewBuilder(root, WithWarnFunc(func(path string, err error) {
		warned = append(warned, path)
	}))
	// gone.ts is listed but does not exist on disk.
	build := builder.Build([]string{"a.ts", "b.ts", "gone.ts"})
	g := build.Graph

	if len(g.Skipped) != 1 || g.Skipped[0] != "gone.ts" {
		t.Errorf("Skipped = %v, want [gone.ts]", g.Skipped)
	}
	if len(warned) != 1 || warned[0] != "gone.ts" {
		t.Errorf("warned = %v, want [gone.ts]", warned)
	}
	// The rest of the build is unaffected.
	if !g.Node("a.ts").Imports.Has("b.ts") {
		t.Error("a.ts -> b.ts edge should survive the skip")
	}
}

func TestBuildSourcesReturned(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "const x = 1;\n",
	})
	build := NewBuilder(root).Build([]string{"a.ts"})
	if string(build.Sources["a.ts"]) != "const x = 1;\n" {
		t.Errorf("Sources[a.ts] = %q", build.Sources["a.ts"])
	}
}

func TestBuildProgressCallback(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "",
		"b.ts": "",
	})
	ticks := 0
	NewBuilder(root, WithProgress(func() { ticks++ })).Build([]string{"a.ts", "b.ts"})
	if ticks != 2 {
		t.Errorf("progress ticks = %d, want 2", ticks)
	}
}
