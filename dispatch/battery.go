// SPDX-License-Identifier: MIT

package dispatch

import "github.com/katalvlaran/lvgrid/compile"

// stepHours is the duration of one time step.
const stepHours = 1.0

// initialEnergy returns SoC0·Enom per battery, MWh.
func initialEnergy(b *compile.BatteryData) []float64 {
	e := make([]float64, b.Len())
	for k := range e {
		e[k] = b.SoC0[k] * b.Enom[k]
	}

	return e
}

// batteryWindow returns the MW range of battery k at step t given its stored
// energy e. Discharge is limited by the energy above MinSoC, charge by the
// room below MaxSoC.
func batteryWindow(b *compile.BatteryData, k, t int, e float64) (lo, hi float64) {
	if !b.Active[k][t] {
		return 0, 0
	}
	emin, emax := b.MinSoC[k]*b.Enom[k], b.MaxSoC[k]*b.Enom[k]
	hi = min(b.Pmax[k], (e-emin)*b.DischargeEfficiency[k]/stepHours)
	lo = max(b.Pmin[k], -(emax-e)/(b.ChargeEfficiency[k]*stepHours))
	if lo > hi {
		lo = hi
	}

	return lo, hi
}

// nextEnergy applies a dispatch of p MW (positive = discharge) to e.
func nextEnergy(b *compile.BatteryData, k int, e, p float64) float64 {
	if p > 0 {
		return e - p*stepHours/b.DischargeEfficiency[k]
	}

	return e - p*stepHours*b.ChargeEfficiency[k]
}
