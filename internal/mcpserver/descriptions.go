package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeFindOrphans() string {
	return `Finds source files that nothing in the project imports, re-exports, or references.

USE WHEN:
- Cleaning up a JS/TS codebase after refactors or feature removal
- Auditing a repository before archiving or deleting files
- Checking whether a specific file is still reachable from the import graph

INTERPRETING RESULTS:
- Orphans are CANDIDATES, not verdicts: detection is regex-based, so files
  loaded through computed paths or external tooling can still be in use
- possible_dynamic_use=true means a string literal elsewhere plausibly
  references the file; review those manually before removing anything
- removed_by_build_log lists candidates cleared because a build log mentioned
  them (pass build_log to enable)
- Entry points, config files, and type declarations are allow-listed and
  never reported

RESULTS RETURNED:
- Per-orphan: path, its own imports and re-exports, dynamic-use flag
- Totals: files analyzed, files skipped as unreadable`
}

func describeDependencyGraph() string {
	return `Builds the project import graph from static, require, dynamic, and CSS imports.

USE WHEN:
- Understanding how modules depend on each other
- Feeding a D3 force-graph visualization (d3=true)
- Finding heavily imported hub files or import cycles (metrics=true)

INTERPRETING RESULTS:
- Adjacency form: per-file imports and imported_by lists, project-relative paths
- D3 form: {nodes:[{id,group}],links:[{source,target,value}]} where value
  1=import, 2=re-export, 3=duplicate content
- Metrics: connected components, cycle groups, PageRank top-imported files`
}

func describeFindDuplicates() string {
	return `Finds files that share a basename and have byte-identical content.

USE WHEN:
- Hunting copy-pasted modules across directories
- Deciding which copy of a duplicated file to keep

INTERPRETING RESULTS:
- Files are grouped by basename first, then confirmed by content hash, so
  same-named files with different content are NOT reported
- Each group lists every path holding identical bytes plus the content hash`
}

func describeListBarrels() string {
	return `Lists barrel (index) files and the re-exports they forward.

USE WHEN:
- Tracing how a symbol imported from a directory index reaches its real file
- Auditing barrel files before restructuring a package

INTERPRETING RESULTS:
- Each entry names the barrel file, the exported name, and the source file
  the export resolves to
- Wildcard re-exports are reported with name "*"`
}

func describeScanDynamicRefs() string {
	return `Scans source text for dynamic imports, lazy loads, and string literals that may reference orphan candidates.

USE WHEN:
- Double-checking orphan candidates before archiving them
- Finding files loaded through import()/React.lazy()/require() with literal paths

INTERPRETING RESULTS:
- Matches are advisory annotations; a flagged candidate stays a candidate
- Each reference gives the referencing file, line, matched literal, and kind
  (dynamic-import, lazy, require, string-literal)
- Short basenames (under 3 characters) are never matched by name alone`
}
