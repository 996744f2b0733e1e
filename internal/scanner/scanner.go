// Package scanner walks a project tree and collects candidate source files.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/relictool/relic/pkg/config"
)

// Scanner finds source files under a project root.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
	onWarn   func(path string, err error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWarnFunc sets the callback for skipped unreadable entries.
func WithWarnFunc(fn func(path string, err error)) Option {
	return func(s *Scanner) {
		s.onWarn = fn
	}
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config, opts ...Option) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Scanner{config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// findGitRoot finds the enclosing git repository root, or "".
func findGitRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config exclude patterns with .gitignore files
// when gitignore support is enabled.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern
	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}
	if s.config.Exclude.Gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			fsys := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fsys, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}
	if len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

func (s *Scanner) isIgnored(relPath string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	parts := strings.Split(relPath, "/")
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

func (s *Scanner) isExcludedDir(name string) bool {
	for _, dir := range s.config.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}

// Collect walks the root and returns project-relative forward-slash paths of
// every regular file carrying a configured extension, in directory-walk
// order. Excluded directory names are skipped at any depth. An unreadable
// root is fatal; unreadable entries below it are skipped with a warning.
func (s *Scanner) Collect(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("project root %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("project root %s: not a directory", root)
	}

	s.loadExcludePatterns(absRoot)

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return fmt.Errorf("project root %s: %w", root, err)
			}
			if s.onWarn != nil {
				s.onWarn(path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(absRoot, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if s.isExcludedDir(d.Name()) || s.isIgnored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.isIgnored(rel, false) || s.config.ShouldExclude(rel) {
			return nil
		}
		if s.config.HasExtension(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}
