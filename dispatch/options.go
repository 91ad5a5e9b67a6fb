// SPDX-License-Identifier: MIT

// Package dispatch: algorithm selection and solver configuration.
// This file defines Mode, the documented defaults and the WithX constructors.
//
// Notes:
//   - Tolerance is handed to the simplex unchanged for both the primal and
//     the dual solve.
//   - WithShadowPrices(false) skips the dual; prices then read zero.
//   - The progress logger is separate from the circuit's diagnostic log:
//     warnings always land in nc.Log, progress goes to the slog logger.
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvgrid/diag"
)

// Mode selects the dispatch algorithm.
type Mode int

const (
	// ModeLinear solves a DC optimal dispatch linear program.
	ModeLinear Mode = iota
	// ModeHeuristic shares demand in proportion to available capacity.
	ModeHeuristic
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeHeuristic:
		return "heuristic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ---------- Defaults ----------

const (
	DefaultMode         = ModeLinear
	DefaultTolerance    = 1e-10
	DefaultShadowPrices = true
)

const panicToleranceInvalid = "dispatch: WithTolerance: tol must be > 0"

// Option configures a Problem.
type Option func(*Options)

// Options is the resolved dispatch configuration.
type Options struct {
	mode         Mode
	tol          float64
	shadowPrices bool
	logger       *slog.Logger
}

// DefaultOptions returns linear mode with shadow prices.
func DefaultOptions() Options {
	return Options{
		mode:         DefaultMode,
		tol:          DefaultTolerance,
		shadowPrices: DefaultShadowPrices,
		logger:       diag.Discard(),
	}
}

// WithMode selects the algorithm.
func WithMode(m Mode) Option {
	return func(o *Options) { o.mode = m }
}

// WithTolerance sets the simplex tolerance. Panics if tol ≤ 0.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithShadowPrices toggles the dual solve that yields nodal prices.
func WithShadowPrices(on bool) Option {
	return func(o *Options) { o.shadowPrices = on }
}

// WithLogger sets the progress logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
