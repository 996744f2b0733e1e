// Package refine holds the optional, best-effort passes that run after
// orphan classification. Both passes are textual matches: they accept false
// negatives (real dynamic usage can be missed) and false positives
// (unrelated substrings can match). That is a documented property of the
// approach, not a defect to patch around.
package refine

import (
	"bytes"
	"os"

	"github.com/relictool/relic/pkg/graph"
)

// BuildLogResult is the outcome of cross-checking candidates against a
// captured build-tool log.
type BuildLogResult struct {
	// Kept are the candidates whose paths never appear in the log.
	Kept []graph.OrphanCandidate
	// Removed are candidate paths found verbatim in the log; the build
	// touched them, so they are not orphans.
	Removed []string
}

// CrossCheckBuildLog removes every candidate whose literal path string
// appears anywhere in the log text.
func CrossCheckBuildLog(logText []byte, candidates []graph.OrphanCandidate) BuildLogResult {
	var res BuildLogResult
	for _, c := range candidates {
		if bytes.Contains(logText, []byte(c.Path)) {
			res.Removed = append(res.Removed, c.Path)
			continue
		}
		res.Kept = append(res.Kept, c)
	}
	return res
}

// CrossCheckBuildLogFile reads the log from disk and cross-checks. A missing
// or unreadable log is an error: the caller asked for the pass explicitly.
func CrossCheckBuildLogFile(path string, candidates []graph.OrphanCandidate) (BuildLogResult, error) {
	logText, err := os.ReadFile(path)
	if err != nil {
		return BuildLogResult{}, err
	}
	return CrossCheckBuildLog(logText, candidates), nil
}
