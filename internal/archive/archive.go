// Package archive relocates confirmed-orphan files into an archive
// directory. Moves are append-only: nothing in the archive is ever
// overwritten, and source content is preserved byte for byte.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Mover moves files into a destination directory with collision-safe naming.
type Mover struct {
	root    string
	destDir string
}

// NewMover creates a mover for the given project root and archive directory
// (relative to the root).
func NewMover(root, destDir string) *Mover {
	return &Mover{root: root, destDir: destDir}
}

// Dest returns the archive directory path relative to the project root.
func (m *Mover) Dest() string {
	return m.destDir
}

// Move relocates one project-relative file into the archive, preserving its
// directory structure beneath the archive root. On a name collision the
// destination gets a -1, -2, ... suffix before the extension; an existing
// file is never overwritten. Returns the project-relative destination path.
func (m *Mover) Move(relPath string) (string, error) {
	src := filepath.Join(m.root, filepath.FromSlash(relPath))
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("archive source %s: %w", relPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("archive source %s: is a directory", relPath)
	}

	destRel := filepath.ToSlash(filepath.Join(m.destDir, filepath.FromSlash(relPath)))
	destAbs := filepath.Join(m.root, filepath.FromSlash(destRel))
	if err := os.MkdirAll(filepath.Dir(destAbs), 0o755); err != nil {
		return "", fmt.Errorf("archive destination for %s: %w", relPath, err)
	}

	final, err := collisionFree(destAbs)
	if err != nil {
		return "", err
	}
	if err := moveFile(src, final); err != nil {
		return "", fmt.Errorf("archive %s: %w", relPath, err)
	}

	rel, err := filepath.Rel(m.root, final)
	if err != nil {
		return filepath.ToSlash(final), nil
	}
	return filepath.ToSlash(rel), nil
}

// collisionFree returns dest if unused, otherwise the first suffixed variant
// (name-1.ext, name-2.ext, ...) that does not exist yet.
func collisionFree(dest string) (string, error) {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest, nil
	}
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for i := 1; i < 10000; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("archive destination %s: no free name after 10000 attempts", dest)
}

// moveFile renames, falling back to copy-then-remove across filesystems.
// The source is always removed on success; archiving moves, it never leaves
// the original behind.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	// O_EXCL keeps the never-overwrite guarantee even if something raced
	// collisionFree.
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}
