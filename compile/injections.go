// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/model"
	"github.com/katalvlaran/lvgrid/sparse"
)

// LoadData holds load arrays; S is in MW/MVAr.
type LoadData struct {
	Names  []string
	Bus    []int
	Active [][]bool
	S      [][]complex128 // demand net of prior shedding
	Cost   [][]float64    // shedding cost
	C      *sparse.Incidence
}

// Len returns the number of loads.
func (d *LoadData) Len() int { return len(d.Names) }

// BuildLoads fills the load arrays. Prior load shedding, when given, is
// subtracted from the active demand.
func BuildLoads(ctx *Context, devices []*model.Load, index map[uuid.UUID]int, mode Mode, prior *PriorResults) (*LoadData, error) {
	n, w := len(devices), mode.Width()
	d := &LoadData{
		Names:  make([]string, n),
		Bus:    make([]int, n),
		Active: rows[bool](n, w),
		S:      rows[complex128](n, w),
		Cost:   rows[float64](n, w),
	}
	p, q := make([]float64, w), make([]float64, w)
	for k, e := range devices {
		i, err := busOf(index, e.Bus, "load", e.Name)
		if err != nil {
			return nil, fmt.Errorf("BuildLoads: %w", err)
		}
		d.Names[k], d.Bus[k] = e.Name, i
		assign(ctx.Log, e.Name, "active", d.Active[k], e.Active, e.ActiveProfile, mode)
		assign(ctx.Log, e.Name, "P", p, e.P, e.PProfile, mode)
		assign(ctx.Log, e.Name, "Q", q, e.Q, e.QProfile, mode)
		assign(ctx.Log, e.Name, "cost", d.Cost[k], e.Cost, e.CostProfile, mode)
		for t := 0; t < w; t++ {
			if prior != nil {
				if shed, ok := at(prior.LoadShedding, t, k); ok {
					p[t] -= shed
				}
			}
			d.S[k][t] = complex(p[t], q[t])
		}
	}
	c, err := sparse.NewIncidence(len(index), d.Bus)
	if err != nil {
		return nil, fmt.Errorf("BuildLoads: %w", err)
	}
	d.C = c

	return d, nil
}

// StaticGeneratorData holds fixed-injection arrays (MW/MVAr).
type StaticGeneratorData struct {
	Names  []string
	Bus    []int
	Active [][]bool
	S      [][]complex128
	C      *sparse.Incidence
}

// Len returns the number of static generators.
func (d *StaticGeneratorData) Len() int { return len(d.Names) }

// BuildStaticGenerators fills the static generator arrays.
func BuildStaticGenerators(ctx *Context, devices []*model.StaticGenerator, index map[uuid.UUID]int, mode Mode) (*StaticGeneratorData, error) {
	n, w := len(devices), mode.Width()
	d := &StaticGeneratorData{
		Names:  make([]string, n),
		Bus:    make([]int, n),
		Active: rows[bool](n, w),
		S:      rows[complex128](n, w),
	}
	p, q := make([]float64, w), make([]float64, w)
	for k, e := range devices {
		i, err := busOf(index, e.Bus, "static generator", e.Name)
		if err != nil {
			return nil, fmt.Errorf("BuildStaticGenerators: %w", err)
		}
		d.Names[k], d.Bus[k] = e.Name, i
		assign(ctx.Log, e.Name, "active", d.Active[k], e.Active, e.ActiveProfile, mode)
		assign(ctx.Log, e.Name, "P", p, e.P, e.PProfile, mode)
		assign(ctx.Log, e.Name, "Q", q, e.Q, e.QProfile, mode)
		for t := 0; t < w; t++ {
			d.S[k][t] = complex(p[t], q[t])
		}
	}
	c, err := sparse.NewIncidence(len(index), d.Bus)
	if err != nil {
		return nil, fmt.Errorf("BuildStaticGenerators: %w", err)
	}
	d.C = c

	return d, nil
}

// ShuntData holds shunt admittances in MW/MVAr at 1 p.u.
type ShuntData struct {
	Names  []string
	Bus    []int
	Active [][]bool
	Y      [][]complex128
	C      *sparse.Incidence
}

// Len returns the number of shunts.
func (d *ShuntData) Len() int { return len(d.Names) }

// BuildShunts fills the shunt arrays.
func BuildShunts(ctx *Context, devices []*model.Shunt, index map[uuid.UUID]int, mode Mode) (*ShuntData, error) {
	n, w := len(devices), mode.Width()
	d := &ShuntData{
		Names:  make([]string, n),
		Bus:    make([]int, n),
		Active: rows[bool](n, w),
		Y:      rows[complex128](n, w),
	}
	g, b := make([]float64, w), make([]float64, w)
	for k, e := range devices {
		i, err := busOf(index, e.Bus, "shunt", e.Name)
		if err != nil {
			return nil, fmt.Errorf("BuildShunts: %w", err)
		}
		d.Names[k], d.Bus[k] = e.Name, i
		assign(ctx.Log, e.Name, "active", d.Active[k], e.Active, e.ActiveProfile, mode)
		assign(ctx.Log, e.Name, "G", g, e.G, e.GProfile, mode)
		assign(ctx.Log, e.Name, "B", b, e.B, e.BProfile, mode)
		for t := 0; t < w; t++ {
			d.Y[k][t] = complex(g[t], b[t])
		}
	}
	c, err := sparse.NewIncidence(len(index), d.Bus)
	if err != nil {
		return nil, fmt.Errorf("BuildShunts: %w", err)
	}
	d.C = c

	return d, nil
}
