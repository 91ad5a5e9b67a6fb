// SPDX-License-Identifier: MIT

package compile

import "github.com/katalvlaran/lvgrid/model"

// resistor is the device capability needed for resistance correction.
type resistor interface {
	RCorrected() float64
}

// CorrectResistance returns the resistance to store for a conductor:
// start from r (or the temperature-corrected value when applyTemperature is
// set), then scale by the tolerance band end selected by mode.
//
//	Lower   → R·(1 − tol/100)
//	Upper   → R·(1 + tol/100)
//	Nominal → R
//
// It is called exactly once per device, by the per-class builder; the
// unified branch assembler copies the result.
func CorrectResistance(r float64, dev resistor, applyTemperature bool, tolerance float64, mode model.ToleranceMode) float64 {
	if applyTemperature && dev != nil {
		r = dev.RCorrected()
	}
	switch mode {
	case model.Lower:
		return r * (1 - tolerance/100)
	case model.Upper:
		return r * (1 + tolerance/100)
	default:
		return r
	}
}
