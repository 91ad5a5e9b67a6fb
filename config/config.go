// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/dispatch"
	"github.com/katalvlaran/lvgrid/model"
	"github.com/katalvlaran/lvgrid/sparse"
)

// Settings is the decoded file.
type Settings struct {
	Compile  *CompileBlock  `hcl:"compile,block"`
	Dispatch *DispatchBlock `hcl:"dispatch,block"`
	Log      *LogBlock      `hcl:"log,block"`
}

// CompileBlock configures compile.Compile.
type CompileBlock struct {
	TimeSeries            bool   `hcl:"time_series,optional"`
	Steps                 int    `hcl:"steps,optional"`
	TemperatureCorrection bool   `hcl:"temperature_correction,optional"`
	Tolerance             string `hcl:"tolerance,optional"`
}

// DispatchBlock configures dispatch.Solve and the injection kernel.
type DispatchBlock struct {
	Mode              string  `hcl:"mode,optional"`
	LPTolerance       float64 `hcl:"lp_tolerance,optional"`
	ShadowPrices      *bool   `hcl:"shadow_prices,optional"`
	ParallelThreshold int     `hcl:"parallel_threshold,optional"`
}

// LogBlock configures Logger.
type LogBlock struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

var (
	tolerances = map[string]model.ToleranceMode{
		"":        model.Nominal,
		"nominal": model.Nominal,
		"lower":   model.Lower,
		"upper":   model.Upper,
	}
	modes = map[string]dispatch.Mode{
		"":          dispatch.ModeLinear,
		"linear":    dispatch.ModeLinear,
		"heuristic": dispatch.ModeHeuristic,
	}
	levels = map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	formats = map[string]bool{"": true, "text": true, "json": true}
)

// Load parses and validates the HCL file at path.
func Load(path string) (*Settings, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("Load: %s: %s: %w", path, diags.Error(), ErrSyntax)
	}

	return decode(file.Body, path)
}

// Parse parses and validates src; filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Settings, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("Parse: %s: %s: %w", filename, diags.Error(), ErrSyntax)
	}

	return decode(file.Body, filename)
}

func decode(body hcl.Body, name string) (*Settings, error) {
	var s Settings
	if diags := gohcl.DecodeBody(body, nil, &s); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s: %w", name, diags.Error(), ErrSyntax)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return &s, nil
}

// validate checks enums and ranges.
func (s *Settings) validate() error {
	if c := s.Compile; c != nil {
		if _, ok := tolerances[c.Tolerance]; !ok {
			return fmt.Errorf("compile.tolerance %q: %w", c.Tolerance, ErrInvalidSetting)
		}
		if c.Steps < 0 || (c.TimeSeries && c.Steps == 0) {
			return fmt.Errorf("compile.steps %d: %w", c.Steps, ErrInvalidSetting)
		}
	}
	if d := s.Dispatch; d != nil {
		if _, ok := modes[d.Mode]; !ok {
			return fmt.Errorf("dispatch.mode %q: %w", d.Mode, ErrInvalidSetting)
		}
		if d.LPTolerance < 0 {
			return fmt.Errorf("dispatch.lp_tolerance %g: %w", d.LPTolerance, ErrInvalidSetting)
		}
		if d.ParallelThreshold < 0 {
			return fmt.Errorf("dispatch.parallel_threshold %d: %w", d.ParallelThreshold, ErrInvalidSetting)
		}
	}
	if l := s.Log; l != nil {
		if _, ok := levels[l.Level]; !ok {
			return fmt.Errorf("log.level %q: %w", l.Level, ErrInvalidSetting)
		}
		if !formats[l.Format] {
			return fmt.Errorf("log.format %q: %w", l.Format, ErrInvalidSetting)
		}
	}

	return nil
}

// CompileOptions converts the compile block.
func (s *Settings) CompileOptions() []compile.Option {
	c := s.Compile
	if c == nil {
		return nil
	}
	opts := []compile.Option{compile.WithToleranceMode(tolerances[c.Tolerance])}
	if c.TimeSeries {
		opts = append(opts, compile.WithTimeSeries(c.Steps))
	}
	if c.TemperatureCorrection {
		opts = append(opts, compile.WithTemperatureCorrection())
	}

	return opts
}

// DispatchOptions converts the dispatch block.
func (s *Settings) DispatchOptions() []dispatch.Option {
	d := s.Dispatch
	if d == nil {
		return nil
	}
	opts := []dispatch.Option{dispatch.WithMode(modes[d.Mode])}
	if d.LPTolerance > 0 {
		opts = append(opts, dispatch.WithTolerance(d.LPTolerance))
	}
	if d.ShadowPrices != nil {
		opts = append(opts, dispatch.WithShadowPrices(*d.ShadowPrices))
	}

	return opts
}

// KernelOptions converts dispatch.parallel_threshold.
func (s *Settings) KernelOptions() []sparse.Option {
	if s.Dispatch == nil || s.Dispatch.ParallelThreshold == 0 {
		return nil
	}

	return []sparse.Option{sparse.WithParallelThreshold(s.Dispatch.ParallelThreshold)}
}

// Logger builds a slog.Logger writing to w with the configured level and
// format. It never touches the global logger.
func (s *Settings) Logger(w io.Writer) *slog.Logger {
	var level, format string
	if s.Log != nil {
		level, format = s.Log.Level, s.Log.Format
	}
	opts := &slog.HandlerOptions{Level: levels[level]}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}
