package compile_test

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/model"
)

const eps = 1e-12

func newBus(name string) *model.Bus {
	return &model.Bus{ID: uuid.New(), Name: name, Active: true}
}

func branch(name string, f, t *model.Bus) model.Branch {
	return model.Branch{ID: uuid.New(), Name: name, From: f.ID, To: t.ID, Active: true, Rate: 100}
}

func inj(name string, b *model.Bus) model.Injection {
	return model.Injection{ID: uuid.New(), Name: name, Bus: b.ID, Active: true}
}

// TestCorrectResistance covers the three tolerance band ends.
func TestCorrectResistance(t *testing.T) {
	cases := []struct {
		mode model.ToleranceMode
		want float64
	}{
		{model.Lower, 0.09},
		{model.Upper, 0.11},
		{model.Nominal, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			got := compile.CorrectResistance(0.1, nil, false, 10, tc.mode)
			require.InDelta(t, tc.want, got, eps)
		})
	}
}

// TestCorrectResistance_Temperature applies temperature before tolerance.
func TestCorrectResistance_Temperature(t *testing.T) {
	l := &model.Line{R: 0.1, Thermal: model.Thermal{TempBase: 20, TempOper: 70, Alpha: 0.004}}
	require.InDelta(t, 0.1, compile.CorrectResistance(l.R, l, false, 10, model.Nominal), eps)
	require.InDelta(t, 0.12, compile.CorrectResistance(l.R, l, true, 10, model.Nominal), eps)
	require.InDelta(t, 0.132, compile.CorrectResistance(l.R, l, true, 10, model.Upper), eps)
}

// stackedCircuit has 2 lines, 1 transformer, 1 converter and 1 DC line.
func stackedCircuit() *model.Circuit {
	b := []*model.Bus{newBus("B0"), newBus("B1"), newBus("B2"), newBus("B3"), newBus("B4")}
	b[0].IsSlack = true
	b[3].IsDC, b[4].IsDC = true, true

	return &model.Circuit{
		Buses: b,
		Lines: []*model.Line{
			{Branch: branch("L0", b[0], b[1]), R: 0.1, X: 0.2, Tolerance: 10},
			{Branch: branch("L1", b[1], b[2]), R: 0.1, X: 0.2, Tolerance: 10},
		},
		Transformers: []*model.Transformer{
			{Branch: branch("T0", b[0], b[2]), R: 0.01, X: 0.1, TapModule: 1.05},
		},
		Converters: []*model.Converter{
			{Branch: branch("C0", b[3], b[2]), R1: 0.01, X1: 0.05},
		},
		DCLines: []*model.DCLine{
			{Branch: branch("D0", b[3], b[4]), R: 0.1, Tolerance: 10},
		},
	}
}

// TestCompile_BranchStacking verifies the fixed [lines, transformers,
// converters, DC lines] order.
func TestCompile_BranchStacking(t *testing.T) {
	nc, err := compile.Compile(stackedCircuit(), compile.WithToleranceMode(model.Lower))
	require.NoError(t, err)

	br := nc.Branches
	require.Equal(t, 5, br.Len())
	require.Equal(t, []string{"L0", "L1", "T0", "C0", "D0"}, br.Names)
	require.Equal(t, []compile.BranchKind{
		compile.KindLine, compile.KindLine, compile.KindTransformer, compile.KindConverter, compile.KindDCLine,
	}, br.Kind)
	require.Equal(t, 0, br.Offset(compile.KindLine))
	require.Equal(t, 2, br.Offset(compile.KindTransformer))
	require.Equal(t, 3, br.Offset(compile.KindConverter))
	require.Equal(t, 4, br.Offset(compile.KindDCLine))

	// corrected once in the per-class builder, copied verbatim afterwards
	require.InDelta(t, 0.09, nc.Lines.R[0], eps)
	require.InDelta(t, 0.09, br.R[0], eps)
	require.InDelta(t, 0.09, nc.DCLines.R[0], eps)
	require.InDelta(t, 0.09, br.R[4], eps)
	require.InDelta(t, 0.01, br.R[2], eps)
	require.InDelta(t, 1.05, br.TapModule[2], eps)
}

// TestCompile_Incidence checks one nonzero per terminal row.
func TestCompile_Incidence(t *testing.T) {
	nc, err := compile.Compile(stackedCircuit())
	require.NoError(t, err)

	br := nc.Branches
	rows, cols := br.Cf.Dims()
	require.Equal(t, br.Len(), rows)
	require.Equal(t, nc.NBus(), cols)
	for k := 0; k < rows; k++ {
		for j := 0; j < cols; j++ {
			require.Equal(t, b2f(j == br.F[k]), br.Cf.At(k, j), "Cf[%d,%d]", k, j)
			require.Equal(t, b2f(j == br.T[k]), br.Ct.At(k, j), "Ct[%d,%d]", k, j)
		}
	}
	require.Equal(t, rows, br.Cf.NNZ())
	require.Equal(t, rows, br.Ct.NNZ())
}

func b2f(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// TestCompile_SetpointConflict keeps the first set point and warns once.
func TestCompile_SetpointConflict(t *testing.T) {
	b := newBus("B0")
	c := &model.Circuit{
		Buses: []*model.Bus{b},
		Generators: []*model.Generator{
			{Injection: inj("G0", b), Vset: 1.02, Controlled: true},
			{Injection: inj("G1", b), Vset: 1.05, Controlled: true},
		},
	}
	nc, err := compile.Compile(c)
	require.NoError(t, err)

	require.InDelta(t, 1.02, cmplx.Abs(nc.Vbus[0]), eps)
	warns := nc.Log.Warnings()
	require.Len(t, warns, 1)
	require.Equal(t, "B0", warns[0].Device)
	require.Contains(t, warns[0].String(), "kept=1.02")
	require.Contains(t, warns[0].String(), "rejected=1.05")
	require.Equal(t, model.PV, nc.BusTypes[0])
}

// TestCompile_EqualSetpointsSilent does not warn on agreeing devices.
func TestCompile_EqualSetpointsSilent(t *testing.T) {
	b := newBus("B0")
	c := &model.Circuit{
		Buses: []*model.Bus{b},
		Generators: []*model.Generator{
			{Injection: inj("G0", b), Vset: 1.02, Controlled: true},
		},
		Batteries: []*model.Battery{
			{Generator: model.Generator{Injection: inj("S0", b), Vset: 1.02, Controlled: true}},
		},
	}
	nc, err := compile.Compile(c)
	require.NoError(t, err)
	require.Empty(t, nc.Log.Warnings())
}

// TestCompile_BranchSeeding checks control-mode seeding and that generators
// seeded earlier win.
func TestCompile_BranchSeeding(t *testing.T) {
	c := stackedCircuit()
	c.Transformers[0].Control = model.VoltageTo
	c.Transformers[0].Vset = 0.98
	c.Converters[0].Control = model.Type2Vdc
	c.Converters[0].VdcSet = 1.01
	c.Generators = []*model.Generator{
		{Injection: inj("G0", c.Buses[0]), Vset: 1.03, Controlled: true},
	}

	nc, err := compile.Compile(c)
	require.NoError(t, err)
	require.InDelta(t, 1.03, real(nc.Vbus[0]), eps)
	require.InDelta(t, 0.98, real(nc.Vbus[2]), eps)
	require.InDelta(t, 1.01, real(nc.Vbus[3]), eps)
	require.InDelta(t, 1.0, real(nc.Vbus[1]), eps)
}

// TestCompile_ConverterVacSeedsTo seeds the "to" bus of a Type1Vac
// converter, after any transformer targeting the same bus.
func TestCompile_ConverterVacSeedsTo(t *testing.T) {
	c := stackedCircuit()
	c.Converters[0].Control = model.Type1Vac
	c.Converters[0].VacSet = 0.97

	nc, err := compile.Compile(c)
	require.NoError(t, err)
	require.InDelta(t, 0.97, real(nc.Vbus[2]), eps)
	require.InDelta(t, 1.0, real(nc.Vbus[3]), eps)
	require.Empty(t, nc.Log.Warnings())

	c.Transformers[0].Control = model.VoltageTo
	c.Transformers[0].Vset = 0.98
	nc, err = compile.Compile(c)
	require.NoError(t, err)
	require.InDelta(t, 0.98, real(nc.Vbus[2]), eps)
	warns := nc.Log.Warnings()
	require.Len(t, warns, 1)
	require.Equal(t, "B2", warns[0].Device)
}

// TestCompile_SeedUsesFirstStep: a unit switched off at step 0 by its
// profile does not claim the bus, whatever its scalar flag says.
func TestCompile_SeedUsesFirstStep(t *testing.T) {
	c := stackedCircuit()
	g := &model.Generator{Injection: inj("G0", c.Buses[0]), Vset: 1.03, Controlled: true}
	g.ActiveProfile = []bool{false, true}
	c.Generators = []*model.Generator{g}

	nc, err := compile.Compile(c, compile.WithTimeSeries(2))
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(nc.Vbus[0]), eps)

	nc, err = compile.Compile(c)
	require.NoError(t, err)
	require.InDelta(t, 1.03, real(nc.Vbus[0]), eps)
}

// TestCompile_HVDCForcesPV overrides Slack and PQ classifications.
func TestCompile_HVDCForcesPV(t *testing.T) {
	a, b := newBus("A"), newBus("B")
	a.IsSlack = true
	c := &model.Circuit{
		Buses: []*model.Bus{a, b},
		HVDCs: []*model.HVDC{{Branch: branch("H0", a, b), Pset: 50, LossFactor: 0.02}},
	}
	nc, err := compile.Compile(c)
	require.NoError(t, err)

	require.Equal(t, []model.BusType{model.PV, model.PV}, nc.BusTypes)
	require.InDelta(t, -50, nc.HVDC.Pf[0][0], eps)
	require.InDelta(t, 49, nc.HVDC.Pt[0][0], eps)
}

// TestCompile_InactiveHVDC leaves bus types alone.
func TestCompile_InactiveHVDC(t *testing.T) {
	a, b := newBus("A"), newBus("B")
	a.IsSlack = true
	h := &model.HVDC{Branch: branch("H0", a, b)}
	h.Active = false
	nc, err := compile.Compile(&model.Circuit{Buses: []*model.Bus{a, b}, HVDCs: []*model.HVDC{h}})
	require.NoError(t, err)
	require.Equal(t, []model.BusType{model.Slack, model.PQ}, nc.BusTypes)
}

// TestCompile_UnknownBus aborts compilation.
func TestCompile_UnknownBus(t *testing.T) {
	b := newBus("B0")
	ghost := newBus("ghost")
	c := &model.Circuit{
		Buses: []*model.Bus{b},
		Loads: []*model.Load{{Injection: inj("Load 7", ghost), P: 10}},
	}
	nc, err := compile.Compile(c)
	require.Nil(t, nc)
	require.True(t, errors.Is(err, compile.ErrUnknownBus))
	require.Contains(t, err.Error(), "Load 7")

	c = &model.Circuit{
		Buses: []*model.Bus{b},
		Lines: []*model.Line{{Branch: branch("L9", b, ghost), X: 0.1}},
	}
	_, err = compile.Compile(c)
	require.ErrorIs(t, err, compile.ErrUnknownBus)
	require.Contains(t, err.Error(), "L9")
}

// TestCompile_InvalidInput covers nil and duplicate-bus circuits.
func TestCompile_InvalidInput(t *testing.T) {
	_, err := compile.Compile(nil)
	require.ErrorIs(t, err, compile.ErrNilCircuit)

	b := newBus("B0")
	_, err = compile.Compile(&model.Circuit{Buses: []*model.Bus{b, b}})
	require.ErrorIs(t, err, model.ErrDuplicateBus)
}

// TestCompile_PriorResults nets a previous stage out of raw injections.
func TestCompile_PriorResults(t *testing.T) {
	b := newBus("B0")
	c := &model.Circuit{
		Buses:      []*model.Bus{b},
		Loads:      []*model.Load{{Injection: inj("L", b), P: 50, Q: 5}},
		Generators: []*model.Generator{{Injection: inj("G", b), P: 10}},
		Batteries:  []*model.Battery{{Generator: model.Generator{Injection: inj("S", b), P: 1}}},
	}
	prior := &compile.PriorResults{
		GeneratorPower:    [][]float64{{80}},
		GeneratorShedding: [][]float64{{5}},
		BatteryPower:      [][]float64{{3}},
		LoadShedding:      [][]float64{{10}},
	}
	nc, err := compile.Compile(c, compile.WithPriorResults(prior))
	require.NoError(t, err)

	require.Equal(t, complex(40, 5), nc.Loads.S[0][0])
	require.InDelta(t, 75, nc.Generators.P[0][0], eps)
	require.InDelta(t, 3, nc.Batteries.P[0][0], eps)
}

// TestCompile_TimeSeries pads short profiles and warns once per field.
func TestCompile_TimeSeries(t *testing.T) {
	b := newBus("B0")
	l := &model.Load{Injection: inj("L", b), P: 7, PProfile: []float64{1, 2}, QProfile: []float64{0, 0, 0, 9}}
	nc, err := compile.Compile(&model.Circuit{Buses: []*model.Bus{b}, Loads: []*model.Load{l}}, compile.WithTimeSeries(3))
	require.NoError(t, err)

	require.Equal(t, 3, nc.Steps)
	require.Equal(t, []complex128{1, 2, 7}, nc.Loads.S[0])
	require.Equal(t, []bool{true, true, true}, nc.Loads.Active[0])
	warns := nc.Log.Warnings()
	require.Len(t, warns, 1)
	require.Contains(t, warns[0].String(), "field=P")
}

// TestCompile_WithTimeSeriesPanics rejects a non-positive horizon.
func TestCompile_WithTimeSeriesPanics(t *testing.T) {
	require.Panics(t, func() { compile.WithTimeSeries(0) })
}
