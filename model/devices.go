// SPDX-License-Identifier: MIT

package model

import "github.com/google/uuid"

// Bus is a network node.
type Bus struct {
	ID            uuid.UUID
	Name          string
	Active        bool
	ActiveProfile []bool // optional, one entry per time step
	IsSlack       bool   // user-designated angle reference
	IsDC          bool
}

// Injection holds the fields shared by every single-terminal device.
type Injection struct {
	ID            uuid.UUID
	Name          string
	Bus           uuid.UUID // bus reference, resolved through the bus index map
	Active        bool
	ActiveProfile []bool
}

// Load is a consumer of active and reactive power (MW, MVAr).
type Load struct {
	Injection
	P, Q        float64
	PProfile    []float64
	QProfile    []float64
	Cost        float64 // cost of shedding, per MWh
	CostProfile []float64
}

// StaticGenerator is an uncontrolled fixed injection (MW, MVAr).
type StaticGenerator struct {
	Injection
	P, Q     float64
	PProfile []float64
	QProfile []float64
}

// Shunt is a fixed admittance expressed in MW and MVAr at 1 p.u. voltage.
type Shunt struct {
	Injection
	G, B     float64
	GProfile []float64
	BProfile []float64
}

// Generator is a controllable injection.
type Generator struct {
	Injection
	P            float64 // scheduled active power, MW
	Vset         float64 // voltage set point, p.u.
	Pf           float64 // power factor
	Qmin, Qmax   float64 // MVAr
	Pmin, Pmax   float64 // MW
	Snom         float64 // installed power, MVA
	Cost         float64 // per MWh
	Controlled   bool    // regulates voltage (makes its bus PV)
	Dispatchable bool    // false ⇒ output is fixed to P in dispatch

	PProfile    []float64
	VsetProfile []float64
	PfProfile   []float64
	CostProfile []float64
}

// Battery is a storage unit; positive power means discharge.
type Battery struct {
	Generator
	Enom                float64 // nominal energy, MWh
	MinSoC, MaxSoC      float64 // state of charge bounds, per unit of Enom
	SoC0                float64 // initial state of charge, per unit of Enom
	ChargeEfficiency    float64
	DischargeEfficiency float64
}

// Branch holds the fields shared by every two-terminal device.
type Branch struct {
	ID            uuid.UUID
	Name          string
	From, To      uuid.UUID
	Active        bool
	ActiveProfile []bool
	Rate          float64 // thermal rating, MVA
	RateProfile   []float64
	Cost          float64 // overload cost, per MWh
	CostProfile   []float64
}

// Thermal carries the resistance temperature correction inputs of a conductor.
type Thermal struct {
	TempBase float64 // °C at which R was measured
	TempOper float64 // operating temperature, °C
	Alpha    float64 // temperature coefficient, 1/°C
}

// correct applies R·(1 + α·(Toper − Tbase)).
func (th Thermal) correct(r float64) float64 {
	return r * (1 + th.Alpha*(th.TempOper-th.TempBase))
}

// Line is an AC overhead line or cable (p.u. on system base).
type Line struct {
	Branch
	Thermal
	R, X, B   float64
	Tolerance float64 // impedance tolerance, percent
}

// RCorrected returns the temperature-corrected resistance.
func (l *Line) RCorrected() float64 { return l.Thermal.correct(l.R) }

// DCLine is a DC conductor between two DC buses.
type DCLine struct {
	Branch
	Thermal
	R         float64
	Tolerance float64
}

// RCorrected returns the temperature-corrected resistance.
func (l *DCLine) RCorrected() float64 { return l.Thermal.correct(l.R) }

// Transformer is a two-winding transformer with a tap changer.
type Transformer struct {
	Branch
	R, X, G, B     float64
	TapModule      float64 // tap magnitude, p.u. (0 means 1)
	TapAngle       float64 // phase shift, rad
	Vset           float64 // regulated voltage, p.u.
	Control        TransformerControl
	BusToRegulated bool
	TapPosition    int
	MinTap, MaxTap int

	// TapFrom and TapTo are the virtual taps reflecting off-nominal
	// connection voltages; zero values mean 1.
	TapFrom, TapTo float64
}

// VirtualTaps returns the precomputed (from, to) virtual tap pair.
func (t *Transformer) VirtualTaps() (float64, float64) {
	return orOne(t.TapFrom), orOne(t.TapTo)
}

// Converter is an AC/DC voltage-source converter. From is the DC side and To
// the AC side.
type Converter struct {
	Branch
	R1, X1, G0, Beq float64
	M               float64 // modulation index (0 means 1)
	Theta           float64
	Pset, Qset      float64
	VacSet, VdcSet  float64
	Kdp             float64
	Control         ConverterControl
	TapFrom, TapTo  float64
}

// VirtualTaps returns the precomputed (from, to) virtual tap pair.
func (c *Converter) VirtualTaps() (float64, float64) {
	return orOne(c.TapFrom), orOne(c.TapTo)
}

// HVDC is a point-to-point DC link modelled as two controllable injections.
type HVDC struct {
	Branch
	Pset         float64 // MW sent from "from" to "to"
	PsetProfile  []float64
	LossFactor   float64 // fraction of Pset lost in transit
	VsetF, VsetT float64
	VsetFProfile []float64
	VsetTProfile []float64
	QminF, QmaxF float64
	QminT, QmaxT float64
}

// FromToPower returns the injections at the "from" and "to" buses for a
// transfer of p MW.
func (h *HVDC) FromToPower(p float64) (pf, pt float64) {
	return -p, p * (1 - h.LossFactor)
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}

	return v
}
