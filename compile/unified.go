// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/katalvlaran/lvgrid/model"
)

// BranchKind tags the device class of a unified branch row.
type BranchKind int

const (
	// KindLine is an AC line.
	KindLine BranchKind = iota
	// KindTransformer is a two-winding transformer.
	KindTransformer
	// KindConverter is an AC/DC converter.
	KindConverter
	// KindDCLine is a DC line.
	KindDCLine
)

// String returns the lowercase class name.
func (k BranchKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindTransformer:
		return "transformer"
	case KindConverter:
		return "converter"
	case KindDCLine:
		return "dc line"
	default:
		return fmt.Sprintf("BranchKind(%d)", int(k))
	}
}

// BranchData stacks every two-terminal device in the fixed order
// [lines, transformers, converters, DC lines]. Row k of any slice refers to
// the same branch; Offset maps a class back to its first row.
type BranchData struct {
	Terminals
	Kind       []BranchKind
	Control    []int // raw control mode of the source device, 0 for lines
	R, X, G, B []float64
	TapModule  []float64
	TapAngle   []float64
	TapF, TapT []float64

	NLine, NTransformer, NConverter, NDCLine int
}

// Offset returns the first unified row of kind.
func (d *BranchData) Offset(kind BranchKind) int {
	switch kind {
	case KindTransformer:
		return d.NLine
	case KindConverter:
		return d.NLine + d.NTransformer
	case KindDCLine:
		return d.NLine + d.NTransformer + d.NConverter
	default:
		return 0
	}
}

// AssembleBranches stacks the per-class arrays into one BranchData and seeds
// the voltage of buses regulated by branch control modes.
// Stage 1 (Stack): copy rows class by class; resistances arrive already
// corrected and are copied, never recomputed.
// Stage 2 (Seed): transformer VoltageTo/PowerVoltageTo seed "to" with Vset,
// converter Type1Vac seeds "to" with VacSet and Type2Vdc seeds "from" with
// VdcSet, all through ctx.SeedVoltage.
// Stage 3 (Incidence): flag zero-impedance rows, build Cf and Ct over nbus
// columns.
// Complexity: O(branches·steps).
func AssembleBranches(ctx *Context, lines *LineData, trafos *TransformerData, convs *ConverterData, dcs *DCLineData, nbus int) (*BranchData, error) {
	n := lines.Len() + trafos.Len() + convs.Len() + dcs.Len()
	w := 1
	for _, t := range []*Terminals{&lines.Terminals, &trafos.Terminals, &convs.Terminals, &dcs.Terminals} {
		if t.Len() > 0 {
			w = len(t.Active[0])

			break
		}
	}
	d := &BranchData{
		Terminals:    newTerminals(n, w),
		Kind:         make([]BranchKind, n),
		Control:      make([]int, n),
		R:            make([]float64, n),
		X:            make([]float64, n),
		G:            make([]float64, n),
		B:            make([]float64, n),
		TapModule:    make([]float64, n),
		TapAngle:     make([]float64, n),
		TapF:         make([]float64, n),
		TapT:         make([]float64, n),
		NLine:        lines.Len(),
		NTransformer: trafos.Len(),
		NConverter:   convs.Len(),
		NDCLine:      dcs.Len(),
	}

	row := 0
	for k := 0; k < lines.Len(); k++ {
		d.copyTerminals(row, &lines.Terminals, k)
		d.Kind[row] = KindLine
		d.R[row], d.X[row], d.B[row] = lines.R[k], lines.X[k], lines.B[k]
		d.TapModule[row], d.TapF[row], d.TapT[row] = 1, 1, 1
		row++
	}
	for k := 0; k < trafos.Len(); k++ {
		d.copyTerminals(row, &trafos.Terminals, k)
		d.Kind[row] = KindTransformer
		d.Control[row] = int(trafos.Control[k])
		d.R[row], d.X[row], d.G[row], d.B[row] = trafos.R[k], trafos.X[k], trafos.G[k], trafos.B[k]
		d.TapModule[row], d.TapAngle[row] = trafos.TapModule[k], trafos.TapAngle[k]
		d.TapF[row], d.TapT[row] = trafos.TapF[k], trafos.TapT[k]
		row++
	}
	for k := 0; k < convs.Len(); k++ {
		d.copyTerminals(row, &convs.Terminals, k)
		d.Kind[row] = KindConverter
		d.Control[row] = int(convs.Control[k])
		d.R[row], d.X[row], d.G[row], d.B[row] = convs.R[k], convs.X[k], convs.G[k], convs.B[k]
		d.TapModule[row], d.TapAngle[row] = convs.M[k], convs.Theta[k]
		d.TapF[row], d.TapT[row] = convs.TapF[k], convs.TapT[k]
		row++
	}
	for k := 0; k < dcs.Len(); k++ {
		d.copyTerminals(row, &dcs.Terminals, k)
		d.Kind[row] = KindDCLine
		d.R[row] = dcs.R[k]
		d.TapModule[row], d.TapF[row], d.TapT[row] = 1, 1, 1
		row++
	}

	for k := 0; k < trafos.Len(); k++ {
		if trafos.Control[k].RegulatesTo() && trafos.Active[k][0] && trafos.Vset[k] != 0 {
			ctx.SeedVoltage(trafos.T[k], trafos.Vset[k], trafos.Names[k])
		}
	}
	for k := 0; k < convs.Len(); k++ {
		if !convs.Active[k][0] {
			continue
		}
		switch convs.Control[k] {
		case model.Type1Vac:
			if convs.VacSet[k] != 0 {
				ctx.SeedVoltage(convs.T[k], convs.VacSet[k], convs.Names[k])
			}
		case model.Type2Vdc:
			if convs.VdcSet[k] != 0 {
				ctx.SeedVoltage(convs.F[k], convs.VdcSet[k], convs.Names[k])
			}
		}
	}

	for k := 0; k < n; k++ {
		if d.R[k] == 0 && d.X[k] == 0 {
			ctx.Log.Warn(d.Names[k], "zero series impedance, branch left out of the admittance matrix")
		}
	}

	if err := d.incidences(nbus); err != nil {
		return nil, fmt.Errorf("AssembleBranches: %w", err)
	}

	return d, nil
}

func (d *BranchData) copyTerminals(row int, src *Terminals, k int) {
	d.Names[row], d.F[row], d.T[row] = src.Names[k], src.F[k], src.T[k]
	copy(d.Active[row], src.Active[k])
	copy(d.Rate[row], src.Rate[k])
	copy(d.Cost[row], src.Cost[k])
}
