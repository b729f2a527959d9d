package fsum

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"lukechampine.com/uint128"
)

// Result holds the outcome of a traversal.
type Result struct {
	// Total is the aggregate size in bytes of all distinct objects.
	Total uint128.Uint128
	// Files is the number of distinct non-directory objects counted.
	Files int64
	// Dirs is the number of distinct directories expanded.
	Dirs int64
	// Duplicates is the number of paths skipped because their object was already counted.
	Duplicates int64
	// Errors is the number of paths that could not be inspected or listed.
	Errors int64
	// Workers is the number of concurrent workers used.
	Workers int
	// Engine is the traversal engine used.
	Engine string
	// Elapsed is the wall time of the traversal.
	Elapsed time.Duration
}

// Options configures a traversal and the CLI around it.
type Options struct {
	// Paths are the files or directories to sum. Empty means a total of zero.
	Paths []string
	// Workers is the size of the worker pool (0 = DefaultWorkers).
	Workers int
	// Engine selects the traversal engine (empty = EngineQueue).
	Engine string
	// Excludes contains regex patterns of paths to skip.
	Excludes []string
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (plain or json).
	Output string
	// Logger receives per-path errors. Defaults to a logger writing to stderr.
	Logger logrus.FieldLogger
}

// collector counts what the workers encounter. Totals are kept per worker;
// the byte counter here only feeds progress reporting.
type collector struct {
	files      atomic.Int64
	dirs       atomic.Int64
	duplicates atomic.Int64
	errors     atomic.Int64
	bytes      atomic.Uint64
}

func (c *collector) addFile(size uint64) {
	c.files.Add(1)
	c.bytes.Add(size)
}

// finalize produces a Result from the collected counters and the summed total.
func (c *collector) finalize(total uint128.Uint128) *Result {
	return &Result{
		Total:      total,
		Files:      c.files.Load(),
		Dirs:       c.dirs.Load(),
		Duplicates: c.duplicates.Load(),
		Errors:     c.errors.Load(),
	}
}
