// Package compile turns a topological grid model (package model) into flat,
// index-addressable arrays and sparse incidence matrices ready for
// matrix-based analysis.
//
// What:
//
//   - Context: the per-compilation shared buffers (bus voltage seeds, bus
//     types, diagnostic log) with documented write permissions.
//   - Device array builders: one per device class, each producing parallel
//     slices in input order plus a devices×buses incidence matrix.
//   - AssembleBranches: stacks lines, transformers, converters and DC lines
//     (in that fixed order) into one BranchData and seeds regulated bus
//     voltages from branch control modes.
//   - Compile: runs every builder in a fixed order and returns a
//     NumericalCircuit; Admittance and SeriesSusceptance derive solver
//     matrices from it.
//
// Write permissions on Context:
//
//	BusTypes – BuildBuses (classification), BuildHVDC (forces PV).
//	Vbus     – BuildGenerators, BuildBatteries, AssembleBranches, always
//	           through SeedVoltage ("first wins").
//	Log      – every builder, append only.
//
// Errors:
//
//   - ErrUnknownBus: a device references a bus missing from the index map.
//     This is the only fatal builder condition; it aborts Compile.
//   - ErrNilCircuit: Compile called with a nil model.
//
// Everything else (conflicting set points, short profiles, zero
// impedances) is recorded in the diagnostic log and compilation continues.
//
// A Context must not be shared by two concurrent compilations; Compile
// creates a fresh one per call.
package compile
