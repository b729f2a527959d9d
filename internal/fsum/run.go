package fsum

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"lukechampine.com/uint128"

	"github.com/idelchi/fsum/internal/identity"
)

const (
	// DefaultProgressInterval is the default interval for progress updates.
	DefaultProgressInterval = 500 * time.Millisecond
	// DefaultWorkers is the default worker pool size. Traversal is I/O bound,
	// so it does not scale with the number of CPUs.
	DefaultWorkers = 8
)

const (
	// EngineQueue expands directories through a shared job queue.
	EngineQueue = "queue"
	// EngineFastwalk expands directories with fastwalk.
	EngineFastwalk = "fastwalk"
)

// Engines lists the supported traversal engines.
//
//nolint:gochecknoglobals // Config constant
var Engines = []string{EngineQueue, EngineFastwalk}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
// The returned function cancels reporting and waits until no hook call is in flight.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(
	ctx context.Context, c *collector, hook func(int64, uint64), interval time.Duration,
) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.files.Load(), c.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func defaultLogger(debug bool) logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// Run sums the sizes of opt.Paths and returns the aggregate.
//
// Directories are expanded recursively and symbolic links are followed. Each
// physical object is counted once. Paths that cannot be inspected are logged
// to opt.Logger and contribute nothing; they never fail the run. Run only
// returns an error for invalid options.
//
// The traversal always runs to completion. Progress updates are sent
// to progressHook if provided.
func Run(opt Options, progressHook func(int64, uint64)) (*Result, error) {
	if opt.Workers < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", opt.Workers)
	}

	if opt.Workers == 0 {
		opt.Workers = DefaultWorkers
	}

	if opt.Engine == "" {
		opt.Engine = EngineQueue
	}

	if !slices.Contains(Engines, opt.Engine) {
		return nil, fmt.Errorf("unknown engine %q: must be one of %v", opt.Engine, Engines)
	}

	if opt.Logger == nil {
		opt.Logger = defaultLogger(opt.Debug)
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	w := &walker{
		log:      opt.Logger,
		seen:     identity.New(),
		excludes: excludeRegexes,
		stats:    &collector{},
	}

	w.log.WithFields(logrus.Fields{
		"paths":    len(opt.Paths),
		"workers":  opt.Workers,
		"engine":   opt.Engine,
		"excludes": opt.Excludes,
	}).Debug("starting traversal")

	stopProgress := startProgressReporter(context.Background(), w.stats, progressHook, opt.ProgressInterval)
	defer stopProgress()

	start := time.Now()

	total := uint128.Zero

	switch {
	case len(opt.Paths) == 0:
		// Nothing to do; starting workers would leave them waiting for work that never comes.
	case opt.Engine == EngineFastwalk:
		total = w.runFastwalk(opt.Paths, opt.Workers)
	default:
		total = w.runQueue(opt.Paths, opt.Workers)
	}

	result := w.stats.finalize(total)

	result.Workers = opt.Workers
	result.Engine = opt.Engine
	result.Elapsed = time.Since(start)

	w.log.WithFields(logrus.Fields{
		"total":      total.String(),
		"identities": w.seen.Len(),
		"elapsed":    result.Elapsed,
	}).Debug("traversal finished")

	return result, nil
}
