package refine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/relictool/relic/pkg/graph"
)

func candidates(paths ...string) []graph.OrphanCandidate {
	out := make([]graph.OrphanCandidate, 0, len(paths))
	for _, p := range paths {
		out = append(out, graph.OrphanCandidate{Path: p})
	}
	return out
}

func TestCrossCheckBuildLog(t *testing.T) {
	log := []byte(`
Compiling src/used.ts...
Bundling assets
warning in src/also-used.tsx: unused variable
`)
	res := CrossCheckBuildLog(log, candidates("src/used.ts", "src/also-used.tsx", "src/orphan.ts"))

	if len(res.Removed) != 2 {
		t.Fatalf("Removed = %v, want 2 entries", res.Removed)
	}
	if len(res.Kept) != 1 || res.Kept[0].Path != "src/orphan.ts" {
		t.Errorf("Kept = %v, want [src/orphan.ts]", res.Kept)
	}
}

func TestCrossCheckBuildLogLiteralMatchOnly(t *testing.T) {
	// Matching is a literal substring check, so a partial path mention
	// clears the candidate; that is the accepted trade-off.
	log := []byte("touched src/feature/helper.ts today")
	res := CrossCheckBuildLog(log, candidates("src/feature/helper.ts"))
	if len(res.Removed) != 1 {
		t.Errorf("Removed = %v, want the mentioned candidate", res.Removed)
	}
}

func TestCrossCheckBuildLogEmptyLog(t *testing.T) {
	res := CrossCheckBuildLog(nil, candidates("a.ts"))
	if len(res.Kept) != 1 || len(res.Removed) != 0 {
		t.Errorf("empty log should keep everything: %+v", res)
	}
}

func TestCrossCheckBuildLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "build.log")
	if err := os.WriteFile(logPath, []byte("emitted src/used.ts"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := CrossCheckBuildLogFile(logPath, candidates("src/used.ts", "src/orphan.ts"))
	if err != nil {
		t.Fatalf("CrossCheckBuildLogFile() error: %v", err)
	}
	if len(res.Removed) != 1 || res.Removed[0] != "src/used.ts" {
		t.Errorf("Removed = %v, want [src/used.ts]", res.Removed)
	}
}

func TestCrossCheckBuildLogFileMissing(t *testing.T) {
	if _, err := CrossCheckBuildLogFile(filepath.Join(t.TempDir(), "nope.log"), candidates("a.ts")); err == nil {
		t.Error("missing log file should be an error: the pass was requested explicitly")
	}
}
