package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/config"
	"github.com/katalvlaran/lvgrid/dispatch"
	"github.com/katalvlaran/lvgrid/model"
)

const full = `
compile {
  time_series            = true
  steps                  = 24
  temperature_correction = true
  tolerance              = "upper"
}
dispatch {
  mode               = "heuristic"
  lp_tolerance       = 1e-9
  shadow_prices      = false
  parallel_threshold = 64
}
log {
  level  = "debug"
  format = "json"
}
`

// TestParse_Full decodes every block and attribute.
func TestParse_Full(t *testing.T) {
	s, err := config.Parse([]byte(full), "lvgrid.hcl")
	require.NoError(t, err)

	require.True(t, s.Compile.TimeSeries)
	require.Equal(t, 24, s.Compile.Steps)
	require.Equal(t, "upper", s.Compile.Tolerance)
	require.Equal(t, "heuristic", s.Dispatch.Mode)
	require.InDelta(t, 1e-9, s.Dispatch.LPTolerance, 1e-18)
	require.NotNil(t, s.Dispatch.ShadowPrices)
	require.False(t, *s.Dispatch.ShadowPrices)
	require.Equal(t, 64, s.Dispatch.ParallelThreshold)
	require.Len(t, s.KernelOptions(), 1)
}

// TestParse_Options feeds the decoded options into compile and dispatch.
func TestParse_Options(t *testing.T) {
	s, err := config.Parse([]byte(full), "lvgrid.hcl")
	require.NoError(t, err)

	b := &model.Bus{ID: uuid.New(), Name: "A", Active: true, IsSlack: true}
	l := &model.Line{
		Branch:    model.Branch{ID: uuid.New(), Name: "L", From: b.ID, To: b.ID, Active: true},
		R:         0.1,
		X:         0.1,
		Tolerance: 10,
	}
	nc, err := compile.Compile(&model.Circuit{Buses: []*model.Bus{b}, Lines: []*model.Line{l}}, s.CompileOptions()...)
	require.NoError(t, err)
	require.True(t, nc.TimeSeries)
	require.Equal(t, 24, nc.Steps)
	require.InDelta(t, 0.11, nc.Lines.R[0], 1e-12)

	p, err := dispatch.NewProblem(nc, s.DispatchOptions()...)
	require.NoError(t, err)
	require.Equal(t, dispatch.ModeHeuristic, p.Mode())
}

// TestParse_Empty keeps every default.
func TestParse_Empty(t *testing.T) {
	s, err := config.Parse(nil, "empty.hcl")
	require.NoError(t, err)
	require.Nil(t, s.Compile)
	require.Empty(t, s.CompileOptions())
	require.Empty(t, s.DispatchOptions())
	require.Empty(t, s.KernelOptions())

	var buf bytes.Buffer
	log := s.Logger(&buf)
	log.Debug("hidden")
	log.Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown")
}

// TestParse_Invalid covers enum, range and syntax failures.
func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"tolerance", `compile { tolerance = "middle" }`, config.ErrInvalidSetting},
		{"steps", `compile { time_series = true }`, config.ErrInvalidSetting},
		{"mode", `dispatch { mode = "quadratic" }`, config.ErrInvalidSetting},
		{"threshold", `dispatch { parallel_threshold = -1 }`, config.ErrInvalidSetting},
		{"level", `log { level = "trace" }`, config.ErrInvalidSetting},
		{"format", `log { format = "xml" }`, config.ErrInvalidSetting},
		{"unknown attribute", `compile { colour = "red" }`, config.ErrSyntax},
		{"unterminated", `compile {`, config.ErrSyntax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.src), tc.name+".hcl")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestLoad_FileAndLogger reads from disk and builds a JSON logger.
func TestLoad_FileAndLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvgrid.hcl")
	require.NoError(t, os.WriteFile(path, []byte(full), 0o600))

	s, err := config.Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	s.Logger(&buf).Debug("compiled", "buses", 3)
	require.Contains(t, buf.String(), `"msg":"compiled"`)
	require.Contains(t, buf.String(), `"buses":3`)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.ErrorIs(t, err, config.ErrSyntax)
}
