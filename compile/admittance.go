// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/lvgrid/sparse"
)

// Admittance assembles the nodal admittance matrix of step in CSR (p.u.).
// Each active branch contributes its π-model:
//
//	ys  = 1/(R + jX)            (1/R for DC lines)
//	tap = m·e^{jθ}
//	Yff = (ys + ysh/2) / (m²·tf²)
//	Yft = −ys / (conj(tap)·tf·tt)
//	Ytf = −ys / (tap·tf·tt)
//	Ytt = (ys + ysh/2) / tt²
//
// with ysh = jB for lines and G + jB for transformers and converters.
// Active shunts add (G + jB)/Sbase on the diagonal. Branches with zero series
// impedance are left out.
// Complexity: O((branches + shunts + n) log k).
func (nc *NumericalCircuit) Admittance(step int) (*sparse.CSR, error) {
	if err := nc.checkStep(step); err != nil {
		return nil, fmt.Errorf("Admittance: %w", err)
	}
	n := nc.NBus()
	trip := sparse.NewTriplets(n)
	br := nc.Branches
	for k := 0; k < br.Len(); k++ {
		if !br.Active[k][step] {
			continue
		}
		var ys, ysh complex128
		switch {
		case br.Kind[k] == KindDCLine:
			if br.R[k] == 0 {
				continue
			}
			ys = complex(1/br.R[k], 0)
		case br.R[k] == 0 && br.X[k] == 0:
			continue
		default:
			ys = 1 / complex(br.R[k], br.X[k])
			ysh = complex(br.G[k], br.B[k])
		}
		m, tf, tt := br.TapModule[k], br.TapF[k], br.TapT[k]
		tap := cmplx.Rect(m, br.TapAngle[k])
		f, t := br.F[k], br.T[k]
		trip.Add(f, f, (ys+ysh/2)/complex(m*m*tf*tf, 0))
		trip.Add(f, t, -ys/(cmplx.Conj(tap)*complex(tf*tt, 0)))
		trip.Add(t, f, -ys/(tap*complex(tf*tt, 0)))
		trip.Add(t, t, (ys+ysh/2)/complex(tt*tt, 0))
	}
	sh := nc.Shunts
	for k := 0; k < sh.Len(); k++ {
		if sh.Active[k][step] {
			trip.Add(sh.Bus[k], sh.Bus[k], sh.Y[k][step]/complex(nc.Sbase, 0))
		}
	}
	y, err := trip.Compress()
	if err != nil {
		return nil, fmt.Errorf("Admittance: %w", err)
	}

	return y, nil
}

// SeriesSusceptance returns the DC susceptance 1/(X·m) of every unified
// branch at step; inactive branches and branches with X = 0 (DC lines
// included) get 0.
// Complexity: O(branches).
func (nc *NumericalCircuit) SeriesSusceptance(step int) ([]float64, error) {
	if err := nc.checkStep(step); err != nil {
		return nil, fmt.Errorf("SeriesSusceptance: %w", err)
	}
	br := nc.Branches
	b := make([]float64, br.Len())
	for k := range b {
		if br.Active[k][step] && br.X[k] != 0 {
			b[k] = 1 / (br.X[k] * br.TapModule[k])
		}
	}

	return b, nil
}
