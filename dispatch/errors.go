// SPDX-License-Identifier: MIT

// Package dispatch: sentinel error set.
// Expected infeasibility is not an error: skipped islands and failed steps
// are reported through SkippedIslands, FailedSteps and warnings in nc.Log.
// ErrSolver only reaches callers inside a FailedStep reason or a warning.
package dispatch

import "errors"

var (
	// ErrNilCircuit indicates a Problem was requested without a compiled circuit.
	ErrNilCircuit = errors.New("dispatch: numerical circuit is nil")

	// ErrNotSolved indicates a result accessor was called before Solve completed.
	ErrNotSolved = errors.New("dispatch: problem not solved")

	// ErrSolver wraps a failure reported by the LP solver.
	ErrSolver = errors.New("dispatch: lp solver failed")
)
