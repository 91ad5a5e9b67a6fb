// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultSbase is the system base power in MVA used when Circuit.Sbase is 0.
const DefaultSbase = 100.0

// ErrDuplicateBus indicates two buses share one identity.
var ErrDuplicateBus = errors.New("model: duplicate bus id")

// Circuit is the ordered collection of buses and devices of one grid.
type Circuit struct {
	Name  string
	Sbase float64 // MVA

	Buses            []*Bus
	Loads            []*Load
	StaticGenerators []*StaticGenerator
	Shunts           []*Shunt
	Generators       []*Generator
	Batteries        []*Battery
	Lines            []*Line
	Transformers     []*Transformer
	Converters       []*Converter
	DCLines          []*DCLine
	HVDCs            []*HVDC
}

// BaseMVA returns Sbase or DefaultSbase when unset.
func (c *Circuit) BaseMVA() float64 {
	if c.Sbase <= 0 {
		return DefaultSbase
	}

	return c.Sbase
}

// BusIndex maps every bus identity to its dense position in Buses.
// Complexity: O(|Buses|).
func (c *Circuit) BusIndex() (map[uuid.UUID]int, error) {
	idx := make(map[uuid.UUID]int, len(c.Buses))
	for i, b := range c.Buses {
		if _, dup := idx[b.ID]; dup {
			return nil, fmt.Errorf("BusIndex: bus %q: %w", b.Name, ErrDuplicateBus)
		}
		idx[b.ID] = i
	}

	return idx, nil
}

// DetermineBusTypes classifies every bus: Slack when flagged, PV when an
// active voltage-controlling generator or battery is attached, PQ otherwise.
// Devices referencing unknown buses are ignored here; the compiler reports them.
func (c *Circuit) DetermineBusTypes(index map[uuid.UUID]int) []BusType {
	types := make([]BusType, len(c.Buses))
	for i := range types {
		types[i] = PQ
	}
	mark := func(bus uuid.UUID) {
		if i, ok := index[bus]; ok && types[i] == PQ {
			types[i] = PV
		}
	}
	for _, g := range c.Generators {
		if g.Active && g.Controlled {
			mark(g.Bus)
		}
	}
	for _, b := range c.Batteries {
		if b.Active && b.Controlled {
			mark(b.Bus)
		}
	}
	for i, b := range c.Buses {
		if b.IsSlack {
			types[i] = Slack
		}
	}

	return types
}
