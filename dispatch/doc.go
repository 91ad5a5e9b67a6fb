// Package dispatch computes a DC optimal dispatch over a compiled circuit.
//
// Two modes share one accessor surface:
//
//   - ModeLinear (default): per time step, one linear program over every
//     island that has a reference bus and at least one free injection.
//     Variables are generator output Pg, battery output Pb, load shedding
//     LSlack, bus angles θ and two-sided branch overload slacks
//     FSlack1/FSlack2. The problem is built in general form and handed to
//     gonum's lp.Convert and lp.Simplex; nodal shadow prices come from the
//     dual program. Battery energy is carried from one step to the next.
//   - ModeHeuristic: total demand is shared among active generators in
//     proportion to Pmax. Angles, flows, battery dispatch and prices stay zero.
//
// Lifecycle of a Problem:
//
//	Compiled → Formulated → Solved → Extracted
//
// Accessors return ErrNotSolved until the Problem reaches Extracted. All
// results are in physical units (MW, MWh, rad, $/MWh) laid out [step][device].
//
// Islands without a reference bus, or without anything to dispatch, are
// skipped: they produce no constraints, are listed by SkippedIslands and are
// recorded as warnings in the circuit's diagnostic log. Devices in skipped
// islands report zero dispatch in ModeLinear.
//
// The LP call is synchronous and has no timeout; bound it from the caller.
package dispatch
