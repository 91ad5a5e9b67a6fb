// Package lvgrid compiles topological power-grid models into flat numeric
// arrays and solves a DC optimal dispatch over them.
//
// Everything is organised in flat subpackages:
//
//	model/     input collaborator: buses, injection and branch devices, Circuit
//	diag/      append-only diagnostic log mirrored to log/slog
//	compile/   device array builders, unified branch stacking, Compile,
//	           nodal admittance and series susceptance
//	sparse/    CSR admittance storage, incidence matrices, power injection kernel
//	topology/  electrical islands and their reference buses
//	dispatch/  DC optimal dispatch (linear program or proportional heuristic)
//	config/    HCL run settings turned into functional options
//
// Typical flow:
//
//	nc, err := compile.Compile(circuit, compile.WithTimeSeries(24))
//	p, err := dispatch.Solve(nc)
//	pg, err := p.GeneratorPower()
//
// Compilation is single-threaded and creates its own context per call, so
// concurrent compilations of different circuits are safe. The injection
// kernel splits rows across goroutines above a threshold.
package lvgrid
