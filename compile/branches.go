// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/model"
	"github.com/katalvlaran/lvgrid/sparse"
)

// Terminals holds the fields shared by every two-terminal array.
type Terminals struct {
	Names  []string
	F, T   []int
	Active [][]bool
	Rate   [][]float64 // MVA
	Cost   [][]float64 // overload cost
	Cf, Ct *sparse.Incidence
}

// Len returns the number of branches.
func (d *Terminals) Len() int { return len(d.Names) }

func newTerminals(n, w int) Terminals {
	return Terminals{
		Names:  make([]string, n),
		F:      make([]int, n),
		T:      make([]int, n),
		Active: rows[bool](n, w),
		Rate:   rows[float64](n, w),
		Cost:   rows[float64](n, w),
	}
}

// fill resolves both terminals of b into row k.
func (d *Terminals) fill(ctx *Context, kind string, k int, b *model.Branch, index map[uuid.UUID]int, mode Mode) error {
	f, err := busOf(index, b.From, kind, b.Name)
	if err != nil {
		return err
	}
	t, err := busOf(index, b.To, kind, b.Name)
	if err != nil {
		return err
	}
	d.Names[k], d.F[k], d.T[k] = b.Name, f, t
	assign(ctx.Log, b.Name, "active", d.Active[k], b.Active, b.ActiveProfile, mode)
	assign(ctx.Log, b.Name, "rate", d.Rate[k], b.Rate, b.RateProfile, mode)
	assign(ctx.Log, b.Name, "cost", d.Cost[k], b.Cost, b.CostProfile, mode)

	return nil
}

// incidences builds Cf and Ct over nbus columns.
func (d *Terminals) incidences(nbus int) error {
	var err error
	if d.Cf, err = sparse.NewIncidence(nbus, d.F); err != nil {
		return err
	}
	d.Ct, err = sparse.NewIncidence(nbus, d.T)

	return err
}

// LineData holds AC line arrays in p.u.
type LineData struct {
	Terminals
	R, X, B []float64
}

// BuildLines fills the line arrays. R is corrected once here and never again.
func BuildLines(ctx *Context, devices []*model.Line, index map[uuid.UUID]int, mode Mode, applyTemperature bool, tol model.ToleranceMode) (*LineData, error) {
	n := len(devices)
	d := &LineData{
		Terminals: newTerminals(n, mode.Width()),
		R:         make([]float64, n),
		X:         make([]float64, n),
		B:         make([]float64, n),
	}
	for k, e := range devices {
		if err := d.fill(ctx, "line", k, &e.Branch, index, mode); err != nil {
			return nil, fmt.Errorf("BuildLines: %w", err)
		}
		d.R[k] = CorrectResistance(e.R, e, applyTemperature, e.Tolerance, tol)
		d.X[k], d.B[k] = e.X, e.B
	}
	if err := d.incidences(len(index)); err != nil {
		return nil, fmt.Errorf("BuildLines: %w", err)
	}

	return d, nil
}

// DCLineData holds DC line arrays in p.u.
type DCLineData struct {
	Terminals
	R []float64
}

// BuildDCLines fills the DC line arrays; R follows the same correction
// policy as AC lines.
func BuildDCLines(ctx *Context, devices []*model.DCLine, index map[uuid.UUID]int, mode Mode, applyTemperature bool, tol model.ToleranceMode) (*DCLineData, error) {
	n := len(devices)
	d := &DCLineData{
		Terminals: newTerminals(n, mode.Width()),
		R:         make([]float64, n),
	}
	for k, e := range devices {
		if err := d.fill(ctx, "dc line", k, &e.Branch, index, mode); err != nil {
			return nil, fmt.Errorf("BuildDCLines: %w", err)
		}
		d.R[k] = CorrectResistance(e.R, e, applyTemperature, e.Tolerance, tol)
	}
	if err := d.incidences(len(index)); err != nil {
		return nil, fmt.Errorf("BuildDCLines: %w", err)
	}

	return d, nil
}

// TransformerData holds two-winding transformer arrays in p.u.
type TransformerData struct {
	Terminals
	R, X, G, B     []float64
	TapModule      []float64
	TapAngle       []float64
	TapF, TapT     []float64 // virtual taps, stored verbatim
	Vset           []float64
	Control        []model.TransformerControl
	BusToRegulated []bool
}

// BuildTransformers fills the transformer arrays.
func BuildTransformers(ctx *Context, devices []*model.Transformer, index map[uuid.UUID]int, mode Mode) (*TransformerData, error) {
	n := len(devices)
	d := &TransformerData{
		Terminals:      newTerminals(n, mode.Width()),
		R:              make([]float64, n),
		X:              make([]float64, n),
		G:              make([]float64, n),
		B:              make([]float64, n),
		TapModule:      make([]float64, n),
		TapAngle:       make([]float64, n),
		TapF:           make([]float64, n),
		TapT:           make([]float64, n),
		Vset:           make([]float64, n),
		Control:        make([]model.TransformerControl, n),
		BusToRegulated: make([]bool, n),
	}
	for k, e := range devices {
		if err := d.fill(ctx, "transformer", k, &e.Branch, index, mode); err != nil {
			return nil, fmt.Errorf("BuildTransformers: %w", err)
		}
		d.R[k], d.X[k], d.G[k], d.B[k] = e.R, e.X, e.G, e.B
		d.TapModule[k], d.TapAngle[k] = orOne(e.TapModule), e.TapAngle
		d.TapF[k], d.TapT[k] = e.VirtualTaps()
		d.Vset[k] = e.Vset
		d.Control[k] = e.Control
		d.BusToRegulated[k] = e.BusToRegulated
	}
	if err := d.incidences(len(index)); err != nil {
		return nil, fmt.Errorf("BuildTransformers: %w", err)
	}

	return d, nil
}

// ConverterData holds AC/DC converter arrays in p.u. From is the DC side.
type ConverterData struct {
	Terminals
	R, X, G, B     []float64 // R1, X1, G0, Beq
	M, Theta       []float64
	TapF, TapT     []float64
	Pset, Qset     []float64
	VacSet, VdcSet []float64
	Kdp            []float64
	Control        []model.ConverterControl
}

// BuildConverters fills the converter arrays.
func BuildConverters(ctx *Context, devices []*model.Converter, index map[uuid.UUID]int, mode Mode) (*ConverterData, error) {
	n := len(devices)
	d := &ConverterData{
		Terminals: newTerminals(n, mode.Width()),
		R:         make([]float64, n),
		X:         make([]float64, n),
		G:         make([]float64, n),
		B:         make([]float64, n),
		M:         make([]float64, n),
		Theta:     make([]float64, n),
		TapF:      make([]float64, n),
		TapT:      make([]float64, n),
		Pset:      make([]float64, n),
		Qset:      make([]float64, n),
		VacSet:    make([]float64, n),
		VdcSet:    make([]float64, n),
		Kdp:       make([]float64, n),
		Control:   make([]model.ConverterControl, n),
	}
	for k, e := range devices {
		if err := d.fill(ctx, "converter", k, &e.Branch, index, mode); err != nil {
			return nil, fmt.Errorf("BuildConverters: %w", err)
		}
		d.R[k], d.X[k], d.G[k], d.B[k] = e.R1, e.X1, e.G0, e.Beq
		d.M[k], d.Theta[k] = orOne(e.M), e.Theta
		d.TapF[k], d.TapT[k] = e.VirtualTaps()
		d.Pset[k], d.Qset[k] = e.Pset, e.Qset
		d.VacSet[k], d.VdcSet[k] = e.VacSet, e.VdcSet
		d.Kdp[k] = e.Kdp
		d.Control[k] = e.Control
	}
	if err := d.incidences(len(index)); err != nil {
		return nil, fmt.Errorf("BuildConverters: %w", err)
	}

	return d, nil
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}

	return v
}
