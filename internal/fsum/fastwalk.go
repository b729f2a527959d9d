package fsum

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"lukechampine.com/uint128"
)

// fastTotal is the concurrently updated total of the fastwalk engine.
type fastTotal struct {
	mu  sync.Mutex
	sum uint128.Uint128
}

func (t *fastTotal) add(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sum = t.sum.Add64(n)
}

// runFastwalk sums paths using fastwalk for directory expansion.
// Classification and deduplication are shared with the queue engine.
func (w *walker) runFastwalk(paths []string, workers int) uint128.Uint128 {
	total := &fastTotal{}

	for _, path := range paths {
		switch c := w.resolve(path); c.kind {
		case leaf:
			total.add(c.size)
		case expand:
			w.walkTree(path, workers, total)
		case skipped:
		}
	}

	return total.sum
}

// walkTree walks a directory whose own identity has already been recorded.
// Symbolic links to directories found inside are walked by nested calls.
// Paths are reported under root as given, even when root is a link, so that
// exclusions and errors see the same paths as with the queue engine.
func (w *walker) walkTree(root string, workers int, total *fastTotal) {
	root = filepath.Clean(root)
	walkRoot := root

	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			w.fail(root, err)

			return
		}

		walkRoot = resolved
	}

	// display maps a path below walkRoot back under root.
	display := func(path string) string {
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}

		return filepath.Join(root, rel)
	}

	conf := &fastwalk.Config{
		Follow:     false, // Links are resolved by walker.resolve
		NumWorkers: workers,
	}

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, walkRoot, func(path string, d fs.DirEntry, err error) error {
		path = display(path)

		if err != nil {
			w.fail(path, err)

			return nil
		}

		if path == root {
			return nil
		}

		switch c := w.resolve(path); c.kind {
		case leaf:
			total.add(c.size)
		case expand:
			if d.Type()&fs.ModeSymlink != 0 {
				w.walkTree(path, workers, total)
			}
		case skipped:
			if d.IsDir() {
				return fastwalk.SkipDir
			}
		}

		return nil
	})
	if err != nil {
		w.fail(root, err)
	}
}
