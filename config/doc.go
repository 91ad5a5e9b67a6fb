// Package config reads lvgrid run settings from an HCL file and turns them
// into functional options for compile, dispatch and sparse, plus a slog
// logger.
//
//	compile {
//	  time_series            = true
//	  steps                  = 24
//	  temperature_correction = true
//	  tolerance              = "upper"    # nominal | lower | upper
//	}
//	dispatch {
//	  mode               = "linear"       # linear | heuristic
//	  lp_tolerance       = 1e-10
//	  shadow_prices      = true
//	  parallel_threshold = 500
//	}
//	log {
//	  level  = "info"                     # debug | info | warn | error
//	  format = "text"                     # text | json
//	}
//
// Every block and attribute is optional; absent values keep the package
// defaults. Unknown enum strings and out-of-range numbers fail with
// ErrInvalidSetting; malformed HCL fails with ErrSyntax.
package config
