// Package manifest reads package.json to discover entry points that should
// never be classified as orphaned. Files are parsed tolerantly (comments and
// trailing commas accepted) since tool-adjacent JSON in JS projects is
// frequently JSONC in practice.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

type packageJSON struct {
	Main    string          `json:"main"`
	Module  string          `json:"module"`
	Types   string          `json:"types"`
	Browser string          `json:"browser"`
	Bin     json.RawMessage `json:"bin"`
}

// EntryPoints returns the project-relative entry-point paths declared in the
// project's package.json. A missing or unparsable manifest yields no entries
// and no error: the manifest is an optional allow-list source, not an input
// the analysis depends on.
func EntryPoints(root string) []string {
	content, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}

	var pkg packageJSON
	if err := json.Unmarshal(jsonc.ToJSON(content), &pkg); err != nil {
		return nil
	}

	var entries []string
	add := func(p string) {
		p = strings.TrimPrefix(strings.TrimSpace(p), "./")
		if p != "" {
			entries = append(entries, p)
		}
	}

	add(pkg.Main)
	add(pkg.Module)
	add(pkg.Types)
	add(pkg.Browser)

	if len(pkg.Bin) > 0 {
		// "bin" is either a single path or a name -> path map.
		var single string
		if err := json.Unmarshal(pkg.Bin, &single); err == nil {
			add(single)
		} else {
			var many map[string]string
			if err := json.Unmarshal(pkg.Bin, &many); err == nil {
				for _, p := range many {
					add(p)
				}
			}
		}
	}
	return entries
}
