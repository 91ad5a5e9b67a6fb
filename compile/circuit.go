// SPDX-License-Identifier: MIT

package compile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvgrid/diag"
	"github.com/katalvlaran/lvgrid/model"
)

// NumericalCircuit is the compiled, index-addressable form of a circuit.
// Every container is immutable once Compile returns.
type NumericalCircuit struct {
	Name       string
	Sbase      float64 // MVA
	Steps      int     // profile width, 1 in snapshot mode
	TimeSeries bool
	BusIndex   map[uuid.UUID]int

	Buses            *BusData
	Loads            *LoadData
	StaticGenerators *StaticGeneratorData
	Shunts           *ShuntData
	Generators       *GeneratorData
	Batteries        *BatteryData
	Lines            *LineData
	Transformers     *TransformerData
	Converters       *ConverterData
	DCLines          *DCLineData
	Branches         *BranchData
	HVDC             *HVDCData

	Vbus     []complex128    // voltage seeds after every builder ran
	BusTypes []model.BusType // final bus classification
	Log      *diag.Logger
}

// NBus returns the number of buses.
func (nc *NumericalCircuit) NBus() int { return nc.Buses.Len() }

// Compile converts c into a NumericalCircuit.
// Stage 1 (Validate): non-nil circuit, unique bus identities.
// Stage 2 (Prepare): bus index map and a fresh Context.
// Stage 3 (Execute): buses, loads, static generators, shunts, generators,
// batteries, lines, transformers, converters, DC lines, unified branches,
// HVDC, in that order.
//
// Errors: ErrNilCircuit, model.ErrDuplicateBus, ErrUnknownBus. Everything else
// lands in the returned circuit's Log.
// Complexity: O((buses + devices)·steps).
func Compile(c *model.Circuit, opts ...Option) (*NumericalCircuit, error) {
	if c == nil {
		return nil, fmt.Errorf("Compile: %w", ErrNilCircuit)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	index, err := c.BusIndex()
	if err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	names := make([]string, len(c.Buses))
	for i, b := range c.Buses {
		names[i] = b.Name
	}
	ctx := NewContext(names, diag.NewLogger(o.logger))
	mode := o.mode

	nc := &NumericalCircuit{
		Name:       c.Name,
		Sbase:      c.BaseMVA(),
		Steps:      mode.Width(),
		TimeSeries: mode.TimeSeries,
		BusIndex:   index,
		Log:        ctx.Log,
	}
	nc.Buses = BuildBuses(ctx, c, index, mode)
	if nc.Loads, err = BuildLoads(ctx, c.Loads, index, mode, o.prior); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.StaticGenerators, err = BuildStaticGenerators(ctx, c.StaticGenerators, index, mode); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Shunts, err = BuildShunts(ctx, c.Shunts, index, mode); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Generators, err = BuildGenerators(ctx, c.Generators, index, mode, o.prior); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Batteries, err = BuildBatteries(ctx, c.Batteries, index, mode, o.prior); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Lines, err = BuildLines(ctx, c.Lines, index, mode, o.applyTemperature, o.tolerance); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Transformers, err = BuildTransformers(ctx, c.Transformers, index, mode); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Converters, err = BuildConverters(ctx, c.Converters, index, mode); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.DCLines, err = BuildDCLines(ctx, c.DCLines, index, mode, o.applyTemperature, o.tolerance); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.Branches, err = AssembleBranches(ctx, nc.Lines, nc.Transformers, nc.Converters, nc.DCLines, len(index)); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	if nc.HVDC, err = BuildHVDC(ctx, c.HVDCs, index, mode); err != nil {
		return nil, fmt.Errorf("Compile: %w", err)
	}
	nc.Vbus, nc.BusTypes = ctx.Vbus, ctx.BusTypes

	return nc, nil
}

// checkStep validates a time-step index.
func (nc *NumericalCircuit) checkStep(step int) error {
	if step < 0 || step >= nc.Steps {
		return fmt.Errorf("step %d not in [0,%d): %w", step, nc.Steps, ErrStepOutOfRange)
	}

	return nil
}
