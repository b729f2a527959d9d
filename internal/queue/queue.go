// Package queue provides a multi-producer, multi-consumer work queue whose
// end of work is derived from an outstanding-job counter.
//
// The total amount of work is not known up front: consumers may submit new
// jobs while processing others. The queue therefore terminates when every
// submitted job has been completed, not when the job list is empty.
package queue

import (
	"sync"
	"sync/atomic"
)

// Queue distributes jobs of type T among concurrent consumers.
//
// Every job returned by Take must be followed by exactly one call to Complete,
// after any jobs derived from it have been submitted.
type Queue[T any] struct {
	outstanding atomic.Int64

	mu    sync.Mutex
	ready *sync.Cond
	jobs  []T
	done  bool
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.ready = sync.NewCond(&q.mu)

	return q
}

// Submit accounts for job and makes it visible to consumers.
func (q *Queue[T]) Submit(job T) {
	q.outstanding.Add(1)

	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()

	q.ready.Signal()
}

// Take blocks until a job is available or the queue has drained.
// It returns false once the queue has drained; it never blocks again after that.
func (q *Queue[T]) Take() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.done {
		q.ready.Wait()
	}

	var job T

	if len(q.jobs) == 0 {
		return job, false
	}

	last := len(q.jobs) - 1
	job = q.jobs[last]

	var zero T
	q.jobs[last] = zero
	q.jobs = q.jobs[:last]

	return job, true
}

// Complete marks one taken job as finished.
// When no job remains outstanding the queue drains and all consumers are released.
// It panics if called more often than Submit.
func (q *Queue[T]) Complete() {
	n := q.outstanding.Add(-1)

	switch {
	case n < 0:
		panic("queue: more jobs completed than submitted")
	case n > 0:
		return
	}

	q.mu.Lock()
	q.done = true
	q.mu.Unlock()

	q.ready.Broadcast()
}

// Outstanding returns the number of submitted jobs not yet completed.
func (q *Queue[T]) Outstanding() int64 {
	return q.outstanding.Load()
}
