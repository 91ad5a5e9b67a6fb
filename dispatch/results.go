// SPDX-License-Identifier: MIT

package dispatch

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvgrid/compile"
)

// results holds every output in physical units, [step][device].
type results struct {
	theta    [][]float64 // rad, per bus
	pg       [][]float64 // MW
	pb       [][]float64 // MW
	energy   [][]float64 // MWh after the step
	shed     [][]float64 // MW
	served   [][]float64 // MW
	flow     [][]float64 // MW, from → to
	overload [][]float64 // MW
	prices   [][]float64 // $/MWh, per bus
}

func table(steps, n int) [][]float64 {
	out := make([][]float64, steps)
	for t := range out {
		out[t] = make([]float64, n)
	}

	return out
}

func newResults(nc *compile.NumericalCircuit) *results {
	s, n, m := nc.Steps, nc.NBus(), nc.Branches.Len()

	return &results{
		theta:    table(s, n),
		pg:       table(s, nc.Generators.Len()),
		pb:       table(s, nc.Batteries.Len()),
		energy:   table(s, nc.Batteries.Len()),
		shed:     table(s, nc.Loads.Len()),
		served:   table(s, nc.Loads.Len()),
		flow:     table(s, m),
		overload: table(s, m),
		prices:   table(s, n),
	}
}

// extract writes the solution of one step and advances battery energy.
func (p *Problem) extract(f *formulation, x, prices []float64, energy []float64) error {
	nc, r, t := p.nc, p.res, f.step
	sb := nc.Sbase
	val := func(j int) float64 {
		if j == none {
			return 0
		}

		return x[j]
	}

	for i, j := range f.theta {
		r.theta[t][i] = val(j)
	}
	for k, j := range f.pg {
		r.pg[t][k] = val(j) * sb
	}
	for k, j := range f.pb {
		r.pb[t][k] = val(j) * sb
		if j != none {
			energy[k] = nextEnergy(nc.Batteries, k, energy[k], r.pb[t][k])
		}
		r.energy[t][k] = energy[k]
	}
	for k, j := range f.ls {
		r.shed[t][k] = val(j) * sb
		r.served[t][k] = f.demand[k] - r.shed[t][k]
	}
	br := nc.Branches
	thf, tht := make([]float64, br.Len()), make([]float64, br.Len())
	if err := br.Cf.MulVec(thf, r.theta[t]); err != nil {
		return err
	}
	if err := br.Ct.MulVec(tht, r.theta[t]); err != nil {
		return err
	}
	for k := 0; k < br.Len(); k++ {
		r.flow[t][k] = f.b[k] * (thf[k] - tht[k]) * sb
		r.overload[t][k] = (val(f.fs1[k]) + val(f.fs2[k])) * sb
	}
	if prices != nil {
		for i, row := range f.balance {
			if row != none {
				r.prices[t][i] = prices[row]
			}
		}
	}
	p.state = Extracted

	return nil
}

// keepEnergy fills a step where nothing was solved.
func (p *Problem) keepEnergy(t int, energy []float64) {
	copy(p.res.energy[t], energy)
	for k := range p.res.served[t] {
		p.res.served[t][k] = loadDemand(p.nc.Loads, k, t)
	}
}

func clone(tbl [][]float64) [][]float64 {
	out := make([][]float64, len(tbl))
	for t, row := range tbl {
		out[t] = append([]float64(nil), row...)
	}

	return out
}

func (p *Problem) ready() error {
	if p.state != Extracted {
		return ErrNotSolved
	}

	return nil
}

// Voltage returns the bus voltages: unit magnitude at the solved angle.
func (p *Problem) Voltage() ([][]complex128, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	out := make([][]complex128, len(p.res.theta))
	for t, row := range p.res.theta {
		out[t] = make([]complex128, len(row))
		for i, th := range row {
			out[t][i] = cmplx.Rect(1, th)
		}
	}

	return out, nil
}

// Loading returns flow/rate per branch; 0 for unrated branches.
func (p *Problem) Loading() ([][]float64, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	out := clone(p.res.flow)
	for t, row := range out {
		for k := range row {
			if rate := p.nc.Branches.Rate[k][t]; rate != 0 {
				row[k] /= rate
			} else {
				row[k] = 0
			}
		}
	}

	return out, nil
}

// Overloads returns FSlack1 + FSlack2 per branch, MW.
func (p *Problem) Overloads() ([][]float64, error) { return p.get(p.res.overload) }

// BranchPower returns the from → to active power per branch, MW.
func (p *Problem) BranchPower() ([][]float64, error) { return p.get(p.res.flow) }

// GeneratorPower returns the dispatch per generator, MW.
func (p *Problem) GeneratorPower() ([][]float64, error) { return p.get(p.res.pg) }

// BatteryPower returns the dispatch per battery, MW; positive is discharge.
func (p *Problem) BatteryPower() ([][]float64, error) { return p.get(p.res.pb) }

// BatteryEnergy returns the energy stored after each step, MWh.
func (p *Problem) BatteryEnergy() ([][]float64, error) { return p.get(p.res.energy) }

// LoadShedding returns the demand not served per load, MW.
func (p *Problem) LoadShedding() ([][]float64, error) { return p.get(p.res.shed) }

// LoadPower returns the demand served per load, MW.
func (p *Problem) LoadPower() ([][]float64, error) { return p.get(p.res.served) }

// ShadowPrices returns the nodal balance duals, $/MWh.
func (p *Problem) ShadowPrices() ([][]float64, error) { return p.get(p.res.prices) }

func (p *Problem) get(tbl [][]float64) ([][]float64, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}

	return clone(tbl), nil
}

// TotalGeneration returns the generator output summed per step, MW.
func (p *Problem) TotalGeneration() ([]float64, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	out := make([]float64, len(p.res.pg))
	for t, row := range p.res.pg {
		out[t] = floats.Sum(row)
	}

	return out, nil
}

// Prior packages the dispatch as prior-stage results for a following
// compilation (compile.WithPriorResults).
func (p *Problem) Prior() (*compile.PriorResults, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}

	return &compile.PriorResults{
		GeneratorPower: clone(p.res.pg),
		BatteryPower:   clone(p.res.pb),
		LoadShedding:   clone(p.res.shed),
	}, nil
}
