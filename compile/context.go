// SPDX-License-Identifier: MIT

package compile

import (
	"log/slog"

	"github.com/katalvlaran/lvgrid/diag"
	"github.com/katalvlaran/lvgrid/model"
)

// seedSentinel is the initial voltage seed of every bus.
const seedSentinel = complex(1, 0)

// Context holds the buffers shared by the builders of one compilation.
// See the package documentation for per-field write permissions.
type Context struct {
	Vbus     []complex128    // voltage seed per bus
	BusTypes []model.BusType // classification per bus
	BusNames []string
	Log      *diag.Logger

	seeded   []bool   // bus already targeted by a set point
	seededBy []string // device that won the seed
}

// NewContext allocates buffers for len(busNames) buses: seeds at 1∠0, types PQ.
// A nil log is replaced by a discarding one.
func NewContext(busNames []string, log *diag.Logger) *Context {
	n := len(busNames)
	if log == nil {
		log = diag.NewLogger(nil)
	}
	ctx := &Context{
		Vbus:     make([]complex128, n),
		BusTypes: make([]model.BusType, n),
		BusNames: busNames,
		Log:      log,
		seeded:   make([]bool, n),
		seededBy: make([]string, n),
	}
	for i := range ctx.Vbus {
		ctx.Vbus[i] = seedSentinel
		ctx.BusTypes[i] = model.PQ
	}

	return ctx
}

// SeedVoltage applies a voltage set point to bus under the "first wins"
// policy: the first device targeting the bus sets the magnitude
// unconditionally; a later device with a different value is rejected with
// one warning carrying both values. It reports whether the seed was written.
//
// Callers seed only from devices active at the first step that actually hold
// a set point: controlled generators and batteries with Vset ≠ 0, voltage
// regulating transformers, and Type1Vac/Type2Vdc converters with a nonzero
// target. A zero set point never claims a bus.
// Complexity: O(1).
func (c *Context) SeedVoltage(bus int, vset float64, source string) bool {
	if !c.seeded[bus] {
		c.Vbus[bus] = complex(vset, 0)
		c.seeded[bus] = true
		c.seededBy[bus] = source

		return true
	}
	if kept := real(c.Vbus[bus]); kept != vset {
		c.Log.Warn(c.BusNames[bus], "different voltage set points",
			slog.Float64("kept", kept),
			slog.Float64("rejected", vset),
			slog.String("kept_from", c.seededBy[bus]),
			slog.String("rejected_from", source),
		)
	}

	return false
}

// ForcePV reclassifies bus as PV regardless of its previous type.
func (c *Context) ForcePV(bus int) { c.BusTypes[bus] = model.PV }
