// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/topology"
)

const none = -1

// formulation is the general-form LP of one time step, in p.u.:
//
//	min cᵀx  s.t.  G·x ≤ h,  A·x = b
//
// Variable index maps hold -1 for devices outside solved islands.
type formulation struct {
	step int
	nvar int
	c    []float64
	eq   constraints // nodal balance, one row per attached bus of a solved island
	ineq constraints // bounds and thermal limits

	pg, pb, ls []int // per generator, battery, load
	theta      []int // per bus
	fs1, fs2   []int // per unified branch
	balance    []int // per bus: equality row

	b      []float64 // branch susceptance, p.u.
	demand []float64 // per load, MW
}

func (f *formulation) newVar(cost float64) int {
	f.c = append(f.c, cost)
	f.nvar++

	return f.nvar - 1
}

// bound adds lo ≤ x_j ≤ hi as two inequality rows.
func (f *formulation) bound(j int, lo, hi float64) {
	f.ineq.add(hi, term{j, 1})
	f.ineq.add(-lo, term{j, -1})
}

func indexSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = none
	}

	return s
}

// formulate builds the LP of step t. It returns nil when no island qualifies.
// Stage 1 (Select): keep islands with a reference bus and a free injection.
// Stage 2 (Variables): Pg, Pb, LSlack at buses of kept islands, θ for every
// kept bus except the reference buses (θ = 0), FSlack1/2 for rated branches
// of kept islands.
// Stage 3 (Constraints): bounds, nodal balance over the island susceptance
// matrix, thermal limits. Fixed injections reach their buses through the
// device incidence matrices.
// Complexity: O(Σ|island|² + m + devices) rows; the dense matrices cost
// O(rows·nvar).
func (p *Problem) formulate(t int, islands []topology.Island, energy []float64) (*formulation, error) {
	nc := p.nc
	sb := nc.Sbase
	n := nc.NBus()

	free, err := freeInjections(nc, t, energy)
	if err != nil {
		return nil, err
	}
	kept := make([]bool, n)
	anchor := make([]bool, n)
	var solved []topology.Island
	for _, is := range islands {
		switch {
		case !is.HasReference():
			p.skip(t, is, "no reference bus")
		case !anyAt(free, is.Buses):
			p.skip(t, is, "nothing to dispatch")
		default:
			for _, i := range is.Buses {
				kept[i] = true
			}
			for _, i := range is.Ref {
				anchor[i] = true
			}
			solved = append(solved, is)
		}
	}
	if len(solved) == 0 {
		return nil, nil
	}

	b, err := nc.SeriesSusceptance(t)
	if err != nil {
		return nil, err
	}
	f := &formulation{
		step:    t,
		pg:      indexSlice(nc.Generators.Len()),
		pb:      indexSlice(nc.Batteries.Len()),
		ls:      indexSlice(nc.Loads.Len()),
		theta:   indexSlice(n),
		fs1:     indexSlice(nc.Branches.Len()),
		fs2:     indexSlice(nc.Branches.Len()),
		balance: indexSlice(n),
		b:       b,
		demand:  make([]float64, nc.Loads.Len()),
	}
	inj := make([][]term, n) // injection terms per bus

	gen := nc.Generators
	for k := 0; k < gen.Len(); k++ {
		i := gen.Bus[k]
		if !kept[i] {
			continue
		}
		lo, hi := generatorWindow(gen, k, t)
		j := f.newVar(gen.Cost[k][t])
		f.pg[k] = j
		f.bound(j, lo/sb, hi/sb)
		inj[i] = append(inj[i], term{j, 1})
	}

	bat := nc.Batteries
	for k := 0; k < bat.Len(); k++ {
		i := bat.Bus[k]
		if !kept[i] {
			continue
		}
		lo, hi := batteryWindow(bat, k, t, energy[k])
		j := f.newVar(bat.Cost[k][t])
		f.pb[k] = j
		f.bound(j, lo/sb, hi/sb)
		inj[i] = append(inj[i], term{j, 1})
	}

	ld := nc.Loads
	for k := 0; k < ld.Len(); k++ {
		i := ld.Bus[k]
		pl := loadDemand(ld, k, t)
		f.demand[k] = pl
		if !kept[i] {
			continue
		}
		j := f.newVar(ld.Cost[k][t])
		f.ls[k] = j
		f.bound(j, 0, max(pl, 0)/sb)
		inj[i] = append(inj[i], term{j, 1})
	}

	rhs, err := fixedBalance(nc, t, f.demand)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		if kept[i] && !anchor[i] {
			f.theta[i] = f.newVar(0)
		}
	}

	// inj − B·θ = demand − fixed injections
	br := nc.Branches
	for _, is := range solved {
		bb := is.Susceptance(br.F, br.T, b)
		for r, i := range is.Buses {
			for c, j := range is.Buses {
				if v := bb.At(r, c); v != 0 && f.theta[j] != none {
					inj[i] = append(inj[i], term{f.theta[j], -v})
				}
			}
			if len(inj[i]) == 0 && rhs[i] == 0 {
				continue // bus with nothing attached and all angles fixed
			}
			f.balance[i] = f.eq.add(rhs[i]/sb, inj[i]...)
		}
	}

	// b(θf − θt) − FSlack1 ≤ rate,  b(θt − θf) − FSlack2 ≤ rate
	for _, is := range solved {
		for _, k := range is.Branches {
			rate := br.Rate[k][t]
			if rate <= 0 {
				continue
			}
			s1, s2 := f.newVar(br.Cost[k][t]), f.newVar(br.Cost[k][t])
			f.fs1[k], f.fs2[k] = s1, s2
			f.ineq.add(0, term{s1, -1})
			f.ineq.add(0, term{s2, -1})
			fwd := []term{{s1, -1}}
			bwd := []term{{s2, -1}}
			if j := f.theta[br.F[k]]; j != none {
				fwd = append(fwd, term{j, b[k]})
				bwd = append(bwd, term{j, -b[k]})
			}
			if j := f.theta[br.T[k]]; j != none {
				fwd = append(fwd, term{j, -b[k]})
				bwd = append(bwd, term{j, b[k]})
			}
			f.ineq.add(rate/sb, fwd...)
			f.ineq.add(rate/sb, bwd...)
		}
	}

	return f, nil
}

// fixedBalance returns, per bus in MW, the demand minus the static and HVDC
// injections at step t. demand is the per-load active demand.
func fixedBalance(nc *compile.NumericalCircuit, t int, demand []float64) ([]float64, error) {
	n := nc.NBus()
	rhs := make([]float64, n)
	if err := nc.Loads.C.MulTransVec(rhs, demand); err != nil {
		return nil, err
	}

	bus := make([]float64, n)
	sg := nc.StaticGenerators
	p := make([]float64, sg.Len())
	for k := range p {
		if sg.Active[k][t] {
			p[k] = real(sg.S[k][t])
		}
	}
	if err := sg.C.MulTransVec(bus, p); err != nil {
		return nil, err
	}
	floats.Sub(rhs, bus)

	hv := nc.HVDC
	pf, pt := make([]float64, hv.Len()), make([]float64, hv.Len())
	for k := 0; k < hv.Len(); k++ {
		if hv.Active[k][t] {
			pf[k], pt[k] = hv.Pf[k][t], hv.Pt[k][t]
		}
	}
	if err := hv.Cf.MulTransVec(bus, pf); err != nil {
		return nil, err
	}
	floats.Sub(rhs, bus)
	if err := hv.Ct.MulTransVec(bus, pt); err != nil {
		return nil, err
	}
	floats.Sub(rhs, bus)

	return rhs, nil
}

// freeInjections counts, per bus, the variables with a nonempty range at
// step t: generator and battery windows, positive load demand.
func freeInjections(nc *compile.NumericalCircuit, t int, energy []float64) ([]float64, error) {
	n := nc.NBus()
	total := make([]float64, n)
	bus := make([]float64, n)

	gen := nc.Generators
	flag := make([]float64, gen.Len())
	for k := range flag {
		if lo, hi := generatorWindow(gen, k, t); hi > lo {
			flag[k] = 1
		}
	}
	if err := gen.C.MulTransVec(bus, flag); err != nil {
		return nil, err
	}
	floats.Add(total, bus)

	bat := nc.Batteries
	flag = make([]float64, bat.Len())
	for k := range flag {
		if lo, hi := batteryWindow(bat, k, t, energy[k]); hi > lo {
			flag[k] = 1
		}
	}
	if err := bat.C.MulTransVec(bus, flag); err != nil {
		return nil, err
	}
	floats.Add(total, bus)

	ld := nc.Loads
	flag = make([]float64, ld.Len())
	for k := range flag {
		if loadDemand(ld, k, t) > 0 {
			flag[k] = 1
		}
	}
	if err := ld.C.MulTransVec(bus, flag); err != nil {
		return nil, err
	}
	floats.Add(total, bus)

	return total, nil
}

// anyAt reports whether v is positive at any of the given buses.
func anyAt(v []float64, buses []int) bool {
	for _, i := range buses {
		if v[i] > 0 {
			return true
		}
	}

	return false
}

// generatorWindow returns the MW range of generator k at step t.
func generatorWindow(g *compile.GeneratorData, k, t int) (lo, hi float64) {
	switch {
	case !g.Active[k][t]:
		return 0, 0
	case !g.Dispatchable[k]:
		return g.P[k][t], g.P[k][t]
	default:
		return g.Pmin[k], g.Pmax[k]
	}
}

// loadDemand returns the active demand of load k at step t in MW.
func loadDemand(l *compile.LoadData, k, t int) float64 {
	if !l.Active[k][t] {
		return 0
	}

	return real(l.S[k][t])
}

// solvePrimal returns x in p.u.
func (f *formulation) solvePrimal(tol float64) ([]float64, error) {
	var g, a mat.Matrix
	if d := f.ineq.dense(f.nvar); d != nil {
		g = d
	}
	if d := f.eq.dense(f.nvar); d != nil {
		a = d
	}
	cNew, aNew, bNew := lp.Convert(f.c, g, f.ineq.rhs, a, f.eq.rhs)
	_, xNew, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolver, err)
	}
	x := make([]float64, f.nvar)
	for j := range x {
		x[j] = xNew[j] - xNew[f.nvar+j]
	}

	return x, nil
}

// solveDual returns the multipliers of the balance rows, i.e. the marginal
// objective change per p.u. of demand, which equals $/MWh.
//
//	max bᵀλ − hᵀμ  s.t.  Aᵀλ − Gᵀμ = c,  μ ≥ 0
//
// posed as a minimisation over z = [λ; μ] with μ ≥ 0 expressed as −μ ≤ 0.
func (f *formulation) solveDual(tol float64) ([]float64, error) {
	nEq, nIn := len(f.eq.rhs), len(f.ineq.rhs)
	nz := nEq + nIn
	c := make([]float64, nz)
	for i, v := range f.eq.rhs {
		c[i] = -v
	}
	copy(c[nEq:], f.ineq.rhs)

	a := mat.NewDense(f.nvar, nz, nil)
	for i, row := range f.eq.rows {
		for _, tm := range row {
			a.Set(tm.col, i, a.At(tm.col, i)+tm.v)
		}
	}
	for i, row := range f.ineq.rows {
		for _, tm := range row {
			a.Set(tm.col, nEq+i, a.At(tm.col, nEq+i)-tm.v)
		}
	}
	g := mat.NewDense(nIn, nz, nil)
	for i := 0; i < nIn; i++ {
		g.Set(i, nEq+i, -1)
	}

	cNew, aNew, bNew := lp.Convert(c, g, make([]float64, nIn), a, f.c)
	_, zNew, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolver, err)
	}
	lambda := make([]float64, nEq)
	for i := range lambda {
		lambda[i] = zNew[i] - zNew[nz+i]
	}

	return lambda, nil
}
