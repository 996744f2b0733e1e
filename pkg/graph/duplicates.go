package graph

import (
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/relictool/relic/internal/fileproc"
	"github.com/zeebo/blake3"
)

// DuplicateDetector finds files sharing both basename and content.
type DuplicateDetector struct {
	root   string
	onWarn WarnFunc
}

// DuplicateOption is a functional option for configuring DuplicateDetector.
type DuplicateOption func(*DuplicateDetector)

// WithDuplicateWarnFunc sets the callback for per-file read failures.
func WithDuplicateWarnFunc(fn WarnFunc) DuplicateOption {
	return func(d *DuplicateDetector) {
		d.onWarn = fn
	}
}

// NewDuplicateDetector creates a detector rooted at the project directory.
func NewDuplicateDetector(root string, opts ...DuplicateOption) *DuplicateDetector {
	d := &DuplicateDetector{root: root}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type fileDigest struct {
	path   string
	quick  uint64 // xxhash prefilter
	digest string // blake3, authoritative group hash
}

// Detect groups files by basename, hashes the members of every multi-member
// group, and emits a DuplicateGroup for each hash sub-group with at least two
// members. A read failure on any member excludes that whole basename group
// from duplicate analysis (fail-soft, surfaced through the warn callback).
func (d *DuplicateDetector) Detect(files []string) []DuplicateGroup {
	byBase := make(map[string][]string)
	for _, f := range files {
		base := path.Base(f)
		byBase[base] = append(byBase[base], f)
	}

	var candidates []string
	for _, members := range byBase {
		if len(members) > 1 {
			candidates = append(candidates, members...)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Strings(candidates)

	// Hashing is pure per-file work, so it runs in parallel. The graph is
	// not touched here.
	digests, errs := fileproc.ForEachFileCollectErrors(candidates, func(p string) (fileDigest, error) {
		content, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(p)))
		if err != nil {
			return fileDigest{}, err
		}
		sum := blake3.Sum256(content)
		return fileDigest{
			path:   p,
			quick:  xxhash.Sum64(content),
			digest: hex.EncodeToString(sum[:]),
		}, nil
	})

	failedBase := make(map[string]bool)
	if errs != nil {
		for _, pe := range errs.Errors {
			failedBase[path.Base(pe.Path)] = true
			if d.onWarn != nil {
				d.onWarn(pe.Path, pe.Err)
			}
		}
	}

	digestByPath := make(map[string]fileDigest, len(digests))
	for _, fd := range digests {
		digestByPath[fd.path] = fd
	}

	var groups []DuplicateGroup
	bases := make([]string, 0, len(byBase))
	for base := range byBase {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	for _, base := range bases {
		members := byBase[base]
		if len(members) < 2 || failedBase[base] {
			continue
		}

		// Partition on the cheap 64-bit hash first, then confirm with the
		// full digest so a prefilter collision cannot merge distinct content.
		byQuick := make(map[uint64][]string)
		for _, m := range members {
			if fd, ok := digestByPath[m]; ok {
				byQuick[fd.quick] = append(byQuick[fd.quick], m)
			}
		}
		byDigest := make(map[string][]string)
		for _, bucket := range byQuick {
			if len(bucket) < 2 {
				continue
			}
			for _, m := range bucket {
				fd := digestByPath[m]
				byDigest[fd.digest] = append(byDigest[fd.digest], m)
			}
		}

		hashes := make([]string, 0, len(byDigest))
		for h := range byDigest {
			hashes = append(hashes, h)
		}
		sort.Strings(hashes)

		for _, h := range hashes {
			paths := byDigest[h]
			if len(paths) < 2 {
				continue
			}
			sort.Strings(paths)
			groups = append(groups, DuplicateGroup{
				Basename:    base,
				Paths:       paths,
				ContentHash: h,
			})
		}
	}
	return groups
}
