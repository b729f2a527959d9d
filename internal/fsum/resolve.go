package fsum

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/fsum/internal/identity"
)

type contributionKind uint8

const (
	// skipped contributes nothing: an error, an exclusion or an object already counted.
	skipped contributionKind = iota
	// leaf contributes the size of a non-directory object.
	leaf
	// expand defers the path to a directory job.
	expand
)

// contribution is what a single path adds to the total.
type contribution struct {
	kind contributionKind
	size uint64
}

// walker holds the state shared by all workers of one traversal.
type walker struct {
	log      logrus.FieldLogger
	seen     *identity.Store
	excludes []*regexp.Regexp
	stats    *collector
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// fail records a path that could not be inspected.
func (w *walker) fail(path string, err error) {
	w.stats.errors.Add(1)
	w.log.WithField("path", path).Error(err)
}

// resolve classifies path and marks its object as seen.
// Directories are not listed here so that they can be expanded by any worker.
func (w *walker) resolve(path string) contribution {
	if re := shouldExcludeByPattern(path, w.excludes); re != nil {
		w.log.WithFields(logrus.Fields{"path": path, "pattern": re.String()}).Debug("excluding path")

		return contribution{}
	}

	info, err := os.Lstat(path)
	if err != nil {
		w.fail(path, err)

		return contribution{}
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil {
			// Dangling links are routine and not worth reporting.
			w.log.WithField("path", path).WithError(err).Debug("ignoring unresolvable symlink")

			return contribution{}
		}

		info = target
	}

	if id, ok := identity.FromFileInfo(info); ok && w.seen.MarkSeen(id) {
		w.stats.duplicates.Add(1)
		w.log.WithField("path", path).Debug("already counted")

		return contribution{}
	}

	if info.IsDir() {
		w.stats.dirs.Add(1)

		return contribution{kind: expand}
	}

	size := uint64(info.Size()) //nolint:gosec // Sizes reported by the OS are never negative
	w.stats.addFile(size)

	return contribution{kind: leaf, size: size}
}
