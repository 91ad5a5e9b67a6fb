// SPDX-License-Identifier: MIT

// Package sparse: functional configuration of the power injection kernel.
// This file defines:
//   - DefaultParallelThreshold, the single source of truth for path selection,
//   - Option / Options with unexported state,
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - gatherOptions, the internal resolver used by PowerInjection.
//
// Notes:
//   - The threshold only selects the execution path. Both paths accumulate
//     nonzeros in storage order, so results do not depend on it.
//   - Workers defaults to GOMAXPROCS at resolution time, not at init.
package sparse

import "runtime"

// ---------- Defaults ----------

// DefaultParallelThreshold is the row count at and above which
// PowerInjection switches to the row-parallel path.
const DefaultParallelThreshold = 500

const (
	panicThresholdInvalid = "sparse: WithParallelThreshold: threshold must be > 0"
	panicWorkersInvalid   = "sparse: WithWorkers: workers must be > 0"
)

// Option configures PowerInjection.
type Option func(*Options)

// Options is the resolved kernel configuration.
type Options struct {
	threshold int // rows; DefaultParallelThreshold
	workers   int // goroutines for the parallel path; GOMAXPROCS
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		threshold: DefaultParallelThreshold,
		workers:   runtime.GOMAXPROCS(0),
	}
}

// WithParallelThreshold sets the row count from which the parallel path is used.
// Panics if n ≤ 0 (programmer error).
func WithParallelThreshold(n int) Option {
	if n <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = n }
}

// WithWorkers bounds the number of goroutines of the parallel path.
// Panics if n ≤ 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
