// SPDX-License-Identifier: MIT

// Package compile: functional options of Compile.
// This file defines the documented defaults, the snapshot/time-series Mode,
// the WithX constructors and PriorResults, the previous-stage dispatch that
// is netted out of raw injections.
//
// Notes:
//   - Snapshot mode ignores every profile and yields width-1 arrays.
//   - Time-series mode uses profiles where present and the scalar elsewhere.
//   - PriorResults tables may be ragged; uncovered cells are skipped.
package compile

import (
	"log/slog"

	"github.com/katalvlaran/lvgrid/model"
)

// ---------- Defaults ----------

const (
	// DefaultApplyTemperature leaves resistances at their nominal value.
	DefaultApplyTemperature = false

	// DefaultTolerance uses nominal impedances.
	DefaultTolerance = model.Nominal
)

const panicStepsInvalid = "compile: WithTimeSeries: steps must be > 0"

// Mode selects snapshot (one step) or time-series compilation.
type Mode struct {
	TimeSeries bool
	Steps      int // requested time steps; ignored in snapshot mode
}

// Width returns the profile width: Steps in time-series mode, 1 otherwise.
func (m Mode) Width() int {
	if !m.TimeSeries || m.Steps < 1 {
		return 1
	}

	return m.Steps
}

// Option configures Compile.
type Option func(*Options)

// Options is the resolved compile configuration.
type Options struct {
	mode             Mode
	applyTemperature bool
	tolerance        model.ToleranceMode
	prior            *PriorResults
	logger           *slog.Logger
}

// DefaultOptions returns snapshot mode, nominal impedances, no prior results.
func DefaultOptions() Options {
	return Options{
		mode:             Mode{Steps: 1},
		applyTemperature: DefaultApplyTemperature,
		tolerance:        DefaultTolerance,
	}
}

// WithTimeSeries compiles steps time steps from the device profiles.
// Panics if steps ≤ 0.
func WithTimeSeries(steps int) Option {
	if steps <= 0 {
		panic(panicStepsInvalid)
	}

	return func(o *Options) { o.mode = Mode{TimeSeries: true, Steps: steps} }
}

// WithTemperatureCorrection uses the temperature-corrected resistance of
// lines and DC lines as the starting point of tolerance scaling.
func WithTemperatureCorrection() Option {
	return func(o *Options) { o.applyTemperature = true }
}

// WithToleranceMode selects the impedance tolerance band end.
func WithToleranceMode(m model.ToleranceMode) Option {
	return func(o *Options) { o.tolerance = m }
}

// WithPriorResults nets a previous dispatch stage out of raw injections.
func WithPriorResults(p *PriorResults) Option {
	return func(o *Options) { o.prior = p }
}

// WithLogger mirrors diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// PriorResults carries a previous stage's dispatch in MW, laid out
// [step][device] in device enumeration order. Nil slices are ignored.
type PriorResults struct {
	GeneratorPower    [][]float64
	GeneratorShedding [][]float64
	BatteryPower      [][]float64
	LoadShedding      [][]float64
}

// at returns tbl[step][k] or (0,false) when the table does not cover it.
func at(tbl [][]float64, step, k int) (float64, bool) {
	if step >= len(tbl) || k >= len(tbl[step]) {
		return 0, false
	}

	return tbl[step][k], true
}
