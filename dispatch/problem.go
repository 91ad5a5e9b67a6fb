// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/topology"
)

// SkippedIsland records an island left out of the linear program.
type SkippedIsland struct {
	Step   int
	Buses  []int
	Reason string
}

// FailedStep records a time step whose linear program had no solution.
// Its outputs stay at zero and battery energy is carried over unchanged.
type FailedStep struct {
	Step   int
	Reason string
}

// Problem is one dispatch run over a compiled circuit.
type Problem struct {
	nc      *compile.NumericalCircuit
	opts    Options
	state   State
	skipped []SkippedIsland
	failed  []FailedStep
	res     *results
}

// NewProblem attaches nc and resolves opts. The Problem starts in Compiled.
func NewProblem(nc *compile.NumericalCircuit, opts ...Option) (*Problem, error) {
	if nc == nil {
		return nil, fmt.Errorf("NewProblem: %w", ErrNilCircuit)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Problem{nc: nc, opts: o, state: Compiled}, nil
}

// Solve is shorthand for NewProblem followed by (*Problem).Solve.
func Solve(nc *compile.NumericalCircuit, opts ...Option) (*Problem, error) {
	p, err := NewProblem(nc, opts...)
	if err != nil {
		return nil, err
	}
	if err = p.Solve(); err != nil {
		return nil, err
	}

	return p, nil
}

// Mode returns the configured algorithm.
func (p *Problem) Mode() Mode { return p.opts.mode }

// State returns the lifecycle stage.
func (p *Problem) State() State { return p.state }

// SkippedIslands lists the islands left out of the linear program, in step
// order. Always empty in ModeHeuristic.
func (p *Problem) SkippedIslands() []SkippedIsland {
	out := make([]SkippedIsland, len(p.skipped))
	copy(out, p.skipped)

	return out
}

// FailedSteps lists the steps whose linear program could not be solved,
// in step order. Always empty in ModeHeuristic.
func (p *Problem) FailedSteps() []FailedStep {
	out := make([]FailedStep, len(p.failed))
	copy(out, p.failed)

	return out
}

// Solve runs every time step in order and leaves the Problem in Extracted.
// Calling Solve again recomputes from scratch. A step whose linear program
// is infeasible is recorded in FailedSteps and does not stop the others.
// Stage 1 (Formulate): islands, variables and constraints of the step.
// Stage 2 (Solve): primal simplex, then the dual for shadow prices.
// Stage 3 (Extract): results in physical units; battery energy carried over.
func (p *Problem) Solve() error {
	nc := p.nc
	p.state, p.skipped, p.failed = Compiled, nil, nil
	p.res = newResults(nc)
	energy := initialEnergy(nc.Batteries)

	for t := 0; t < nc.Steps; t++ {
		if p.opts.mode == ModeHeuristic {
			p.state = Formulated
			p.heuristic(t)
			p.state = Solved
			continue
		}

		islands, err := topology.Islands(nc, t)
		if err != nil {
			return fmt.Errorf("Problem.Solve: %w", err)
		}
		f, err := p.formulate(t, islands, energy)
		if err != nil {
			return fmt.Errorf("Problem.Solve: %w", err)
		}
		if f == nil {
			p.keepEnergy(t, energy)
			continue
		}
		p.state = Formulated

		x, err := f.solvePrimal(p.opts.tol)
		if err != nil {
			p.fail(t, err)
			copy(p.res.energy[t], energy)
			continue
		}
		var prices []float64
		if p.opts.shadowPrices {
			if prices, err = f.solveDual(p.opts.tol); err != nil {
				nc.Log.Warn("", "dual solve failed, shadow prices left at zero",
					slog.Int("step", t),
					slog.String("error", err.Error()),
				)
			}
		}
		p.state = Solved
		if err = p.extract(f, x, prices, energy); err != nil {
			return fmt.Errorf("Problem.Solve: step %d: %w", t, err)
		}
		p.opts.logger.Debug("dispatch step solved",
			slog.Int("step", t),
			slog.Int("variables", f.nvar),
			slog.Int("equalities", len(f.eq.rhs)),
			slog.Int("inequalities", len(f.ineq.rhs)),
		)
	}
	p.state = Extracted
	p.opts.logger.Info("dispatch done",
		slog.String("mode", p.opts.mode.String()),
		slog.Int("steps", nc.Steps),
		slog.Int("skipped_islands", len(p.skipped)),
		slog.Int("failed_steps", len(p.failed)),
	)

	return nil
}

// skip records an island left out of step t.
func (p *Problem) skip(t int, is topology.Island, reason string) {
	p.skipped = append(p.skipped, SkippedIsland{Step: t, Buses: is.Buses, Reason: reason})
	p.nc.Log.Warn(p.nc.Buses.Names[is.Buses[0]], "island skipped by dispatch",
		slog.String("reason", reason),
		slog.Int("step", t),
		slog.Int("buses", len(is.Buses)),
	)
}

// fail records step t as unsolved.
func (p *Problem) fail(t int, err error) {
	p.failed = append(p.failed, FailedStep{Step: t, Reason: err.Error()})
	p.nc.Log.Warn("", "dispatch step has no solution, outputs left at zero",
		slog.Int("step", t),
		slog.String("error", err.Error()),
	)
}
