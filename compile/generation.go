// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/model"
	"github.com/katalvlaran/lvgrid/sparse"
)

// GeneratorData holds controllable generation arrays. Powers are in MW.
type GeneratorData struct {
	Names        []string
	Bus          []int
	Active       [][]bool
	P            [][]float64
	Vset         [][]float64
	Pf           [][]float64
	Cost         [][]float64
	Pmin, Pmax   []float64
	Qmin, Qmax   []float64
	Snom         []float64
	Controlled   []bool
	Dispatchable []bool
	C            *sparse.Incidence
}

// Len returns the number of units.
func (d *GeneratorData) Len() int { return len(d.Names) }

// BatteryData extends GeneratorData with storage parameters.
type BatteryData struct {
	GeneratorData
	Enom                []float64 // MWh
	MinSoC, MaxSoC      []float64
	SoC0                []float64
	ChargeEfficiency    []float64
	DischargeEfficiency []float64
}

// BuildGenerators fills the generator arrays and seeds the voltage of every
// bus hosting an active, controlled unit. With prior results the scheduled
// power becomes the prior dispatch minus the prior shedding.
func BuildGenerators(ctx *Context, devices []*model.Generator, index map[uuid.UUID]int, mode Mode, prior *PriorResults) (*GeneratorData, error) {
	var power, shed [][]float64
	if prior != nil {
		power, shed = prior.GeneratorPower, prior.GeneratorShedding
	}
	d, err := buildUnits(ctx, "generator", devices, index, mode, power, shed)
	if err != nil {
		return nil, fmt.Errorf("BuildGenerators: %w", err)
	}

	return d, nil
}

// BuildBatteries fills the battery arrays. Prior battery power replaces the
// scheduled power.
func BuildBatteries(ctx *Context, devices []*model.Battery, index map[uuid.UUID]int, mode Mode, prior *PriorResults) (*BatteryData, error) {
	units := make([]*model.Generator, len(devices))
	for k, b := range devices {
		units[k] = &b.Generator
	}
	var power [][]float64
	if prior != nil {
		power = prior.BatteryPower
	}
	g, err := buildUnits(ctx, "battery", units, index, mode, power, nil)
	if err != nil {
		return nil, fmt.Errorf("BuildBatteries: %w", err)
	}

	n := len(devices)
	d := &BatteryData{
		GeneratorData:       *g,
		Enom:                make([]float64, n),
		MinSoC:              make([]float64, n),
		MaxSoC:              make([]float64, n),
		SoC0:                make([]float64, n),
		ChargeEfficiency:    make([]float64, n),
		DischargeEfficiency: make([]float64, n),
	}
	for k, b := range devices {
		d.Enom[k] = b.Enom
		d.MinSoC[k], d.MaxSoC[k], d.SoC0[k] = b.MinSoC, b.MaxSoC, b.SoC0
		d.ChargeEfficiency[k] = orOne(b.ChargeEfficiency)
		d.DischargeEfficiency[k] = orOne(b.DischargeEfficiency)
	}

	return d, nil
}

// buildUnits is shared by generators and batteries.
func buildUnits(ctx *Context, kind string, devices []*model.Generator, index map[uuid.UUID]int, mode Mode, power, shed [][]float64) (*GeneratorData, error) {
	n, w := len(devices), mode.Width()
	d := &GeneratorData{
		Names:        make([]string, n),
		Bus:          make([]int, n),
		Active:       rows[bool](n, w),
		P:            rows[float64](n, w),
		Vset:         rows[float64](n, w),
		Pf:           rows[float64](n, w),
		Cost:         rows[float64](n, w),
		Pmin:         make([]float64, n),
		Pmax:         make([]float64, n),
		Qmin:         make([]float64, n),
		Qmax:         make([]float64, n),
		Snom:         make([]float64, n),
		Controlled:   make([]bool, n),
		Dispatchable: make([]bool, n),
	}
	for k, e := range devices {
		i, err := busOf(index, e.Bus, kind, e.Name)
		if err != nil {
			return nil, err
		}
		d.Names[k], d.Bus[k] = e.Name, i
		assign(ctx.Log, e.Name, "active", d.Active[k], e.Active, e.ActiveProfile, mode)
		assign(ctx.Log, e.Name, "P", d.P[k], e.P, e.PProfile, mode)
		assign(ctx.Log, e.Name, "Vset", d.Vset[k], e.Vset, e.VsetProfile, mode)
		assign(ctx.Log, e.Name, "Pf", d.Pf[k], e.Pf, e.PfProfile, mode)
		assign(ctx.Log, e.Name, "cost", d.Cost[k], e.Cost, e.CostProfile, mode)
		d.Pmin[k], d.Pmax[k] = e.Pmin, e.Pmax
		d.Qmin[k], d.Qmax[k] = e.Qmin, e.Qmax
		d.Snom[k] = e.Snom
		d.Controlled[k], d.Dispatchable[k] = e.Controlled, e.Dispatchable

		if power != nil {
			for t := 0; t < w; t++ {
				p, ok := at(power, t, k)
				if !ok {
					continue
				}
				if s, ok := at(shed, t, k); ok {
					p -= s
				}
				d.P[k][t] = p
			}
		}

		if d.Active[k][0] && e.Controlled && e.Vset != 0 {
			ctx.SeedVoltage(i, e.Vset, e.Name)
		}
	}
	c, err := sparse.NewIncidence(len(index), d.Bus)
	if err != nil {
		return nil, err
	}
	d.C = c

	return d, nil
}
