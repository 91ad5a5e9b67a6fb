// SPDX-License-Identifier: MIT

package model

import "fmt"

// BusType classifies a bus for power-flow and dispatch formulations.
type BusType int

const (
	// PQ buses have fixed active and reactive injections.
	PQ BusType = iota + 1
	// PV buses regulate voltage magnitude with a controllable injection.
	PV
	// Slack buses fix the angle reference and absorb imbalance.
	Slack
	// None marks a bus excluded from the formulation.
	None
)

// String returns the conventional bus type name.
func (t BusType) String() string {
	switch t {
	case PQ:
		return "PQ"
	case PV:
		return "PV"
	case Slack:
		return "Slack"
	case None:
		return "None"
	default:
		return fmt.Sprintf("BusType(%d)", int(t))
	}
}

// ToleranceMode selects which end of a branch impedance tolerance band is used.
type ToleranceMode int

const (
	// Nominal keeps the resistance unchanged.
	Nominal ToleranceMode = iota
	// Lower scales the resistance by (1 − tol/100).
	Lower
	// Upper scales the resistance by (1 + tol/100).
	Upper
)

// String returns the tolerance mode name.
func (m ToleranceMode) String() string {
	switch m {
	case Nominal:
		return "nominal"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return fmt.Sprintf("ToleranceMode(%d)", int(m))
	}
}

// TransformerControl is the tap-changer control mode of a two-winding transformer.
type TransformerControl int

const (
	// FixedTap leaves the tap untouched.
	FixedTap TransformerControl = iota
	// VoltageTo regulates the AC voltage magnitude at the "to" bus.
	VoltageTo
	// PowerVoltageTo regulates active power and the "to" bus voltage.
	PowerVoltageTo
	// PowerFlow regulates active power only.
	PowerFlow
)

// RegulatesTo reports whether the mode seeds the "to" bus voltage.
func (c TransformerControl) RegulatesTo() bool {
	return c == VoltageTo || c == PowerVoltageTo
}

// ConverterControl is the control mode of an AC/DC voltage-source converter.
type ConverterControl int

const (
	// Type1Free controls nothing in particular.
	Type1Free ConverterControl = iota
	// Type1Pf controls the AC power factor.
	Type1Pf
	// Type1Vac regulates the AC voltage at the "to" bus.
	Type1Vac
	// Type2Vdc regulates the DC voltage at the "from" bus.
	Type2Vdc
	// Type2Pdc controls the DC active power.
	Type2Pdc
	// Type3 combines DC voltage droop and AC voltage control.
	Type3
	// Type4 combines DC power and AC voltage control.
	Type4
)
