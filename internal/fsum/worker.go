package fsum

import (
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"lukechampine.com/uint128"

	"github.com/idelchi/fsum/internal/queue"
)

type jobKind uint8

const (
	// pathJob is a path whose type is not known yet.
	pathJob jobKind = iota
	// dirJob is a path already confirmed to be a directory.
	dirJob
)

type job struct {
	kind jobKind
	path string
}

// runQueue seeds the queue with paths and sums the partial totals of a pool of workers.
func (w *walker) runQueue(paths []string, workers int) uint128.Uint128 {
	q := queue.New[job]()

	// Seeding before any worker starts keeps the outstanding count above zero
	// until the seeds themselves are done.
	for _, path := range paths {
		q.Submit(job{kind: pathJob, path: path})
	}

	partials := make([]uint128.Uint128, workers)

	var g errgroup.Group

	for i := range workers {
		g.Go(func() error {
			partials[i] = w.work(q)

			return nil
		})
	}

	_ = g.Wait() // Workers report failures per path, never as an error.

	total := uint128.Zero
	for _, partial := range partials {
		total = total.Add(partial)
	}

	return total
}

// work drains q and returns the bytes contributed by the jobs it processed.
func (w *walker) work(q *queue.Queue[job]) uint128.Uint128 {
	partial := uint128.Zero

	for {
		j, ok := q.Take()
		if !ok {
			return partial
		}

		partial = partial.Add(w.process(q, j))

		q.Complete()
	}
}

func (w *walker) process(q *queue.Queue[job], j job) uint128.Uint128 {
	switch j.kind {
	case pathJob:
		return w.fold(q, j.path, uint128.Zero)
	case dirJob:
		return w.listDir(q, j.path)
	default:
		panic("fsum: unknown job kind")
	}
}

// listDir lists dir and classifies its entries inline.
// Subdirectories become new jobs; a listing failure keeps the entries read so far.
func (w *walker) listDir(q *queue.Queue[job], dir string) uint128.Uint128 {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.fail(dir, err)
	}

	sum := uint128.Zero
	for _, entry := range entries {
		sum = w.fold(q, filepath.Join(dir, entry.Name()), sum)
	}

	return sum
}

// fold resolves path and adds its contribution to sum.
func (w *walker) fold(q *queue.Queue[job], path string, sum uint128.Uint128) uint128.Uint128 {
	c := w.resolve(path)

	switch c.kind {
	case leaf:
		return sum.Add64(c.size)
	case expand:
		q.Submit(job{kind: dirJob, path: path})
	case skipped:
	}

	return sum
}
