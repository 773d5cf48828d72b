// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
)

// DefaultMaxDepth bounds the recursive crawl when the caller does not give a
// limit.
const DefaultMaxDepth = 10

// WalkFunc is invoked once per visited entry with the entry's kind, its
// absolute path, and its path relative to the crawl root.
type WalkFunc func(isDir bool, absPath, relPath string) error

// Crawl recursively visits every entry under root, descending at most
// maxDepth directory levels (maxDepth <= 0 means DefaultMaxDepth). Entries
// below the depth bound are not visited. Directories are visited before
// their contents. It returns the number of non-directory entries visited.
func Crawl(root string, maxDepth int, fn WalkFunc) (int, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return 0, err
	}
	return crawl(abs, "", 1, maxDepth, fn)
}

func crawl(absRoot, rel string, depth, maxDepth int, fn WalkFunc) (int, error) {
	entries, err := os.ReadDir(filepath.Join(absRoot, rel))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())
		entryAbs := filepath.Join(absRoot, entryRel)

		if err := fn(entry.IsDir(), entryAbs, entryRel); err != nil {
			return count, err
		}

		if entry.IsDir() {
			if depth >= maxDepth {
				continue
			}
			n, err := crawl(absRoot, entryRel, depth+1, maxDepth, fn)
			count += n
			if err != nil {
				return count, err
			}
		} else {
			count++
		}
	}
	return count, nil
}
