// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/model"
)

// BusData holds per-bus arrays in bus enumeration order.
type BusData struct {
	Names  []string
	Active [][]bool // [bus][step]
	IsDC   []bool
}

// Len returns the number of buses.
func (d *BusData) Len() int { return len(d.Names) }

// BuildBuses fills the bus arrays and writes the initial bus classification
// into ctx.BusTypes.
// Complexity: O(|Buses|·steps + |devices|).
func BuildBuses(ctx *Context, c *model.Circuit, index map[uuid.UUID]int, mode Mode) *BusData {
	n, w := len(c.Buses), mode.Width()
	d := &BusData{
		Names:  make([]string, n),
		Active: rows[bool](n, w),
		IsDC:   make([]bool, n),
	}
	for i, b := range c.Buses {
		d.Names[i] = b.Name
		d.IsDC[i] = b.IsDC
		assign(ctx.Log, b.Name, "active", d.Active[i], b.Active, b.ActiveProfile, mode)
	}
	copy(ctx.BusTypes, c.DetermineBusTypes(index))

	return d
}

// busOf resolves a bus reference or fails with ErrUnknownBus.
func busOf(index map[uuid.UUID]int, bus uuid.UUID, kind, device string) (int, error) {
	i, ok := index[bus]
	if !ok {
		return 0, fmt.Errorf("%s %q: bus %s: %w", kind, device, bus, ErrUnknownBus)
	}

	return i, nil
}
