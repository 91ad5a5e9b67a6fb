// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/model"
)

// HVDCData holds HVDC link arrays. Pf and Pt are the injections (MW) at the
// "from" and "to" buses.
type HVDCData struct {
	Terminals
	LossFactor   []float64
	Pset         [][]float64
	Pf, Pt       [][]float64
	VsetF, VsetT [][]float64
	QminF, QmaxF []float64
	QminT, QmaxT []float64
}

// BuildHVDC fills the HVDC arrays. Every active link forces both endpoint
// buses to PV, overriding the classification written by BuildBuses.
func BuildHVDC(ctx *Context, devices []*model.HVDC, index map[uuid.UUID]int, mode Mode) (*HVDCData, error) {
	n, w := len(devices), mode.Width()
	d := &HVDCData{
		Terminals:  newTerminals(n, w),
		LossFactor: make([]float64, n),
		Pset:       rows[float64](n, w),
		Pf:         rows[float64](n, w),
		Pt:         rows[float64](n, w),
		VsetF:      rows[float64](n, w),
		VsetT:      rows[float64](n, w),
		QminF:      make([]float64, n),
		QmaxF:      make([]float64, n),
		QminT:      make([]float64, n),
		QmaxT:      make([]float64, n),
	}
	for k, e := range devices {
		if err := d.fill(ctx, "hvdc", k, &e.Branch, index, mode); err != nil {
			return nil, fmt.Errorf("BuildHVDC: %w", err)
		}
		d.LossFactor[k] = e.LossFactor
		assign(ctx.Log, e.Name, "Pset", d.Pset[k], e.Pset, e.PsetProfile, mode)
		assign(ctx.Log, e.Name, "VsetF", d.VsetF[k], e.VsetF, e.VsetFProfile, mode)
		assign(ctx.Log, e.Name, "VsetT", d.VsetT[k], e.VsetT, e.VsetTProfile, mode)
		for t := 0; t < w; t++ {
			d.Pf[k][t], d.Pt[k][t] = e.FromToPower(d.Pset[k][t])
		}
		d.QminF[k], d.QmaxF[k] = e.QminF, e.QmaxF
		d.QminT[k], d.QmaxT[k] = e.QminT, e.QmaxT

		if d.Active[k][0] {
			ctx.ForcePV(d.F[k])
			ctx.ForcePV(d.T[k])
		}
	}
	if err := d.incidences(len(index)); err != nil {
		return nil, fmt.Errorf("BuildHVDC: %w", err)
	}

	return d, nil
}
