// SPDX-License-Identifier: MIT

package compile

import (
	"log/slog"

	"github.com/katalvlaran/lvgrid/diag"
)

// assign fills dst (len = mode.Width()) with either the scalar (snapshot
// mode, or a time-series device without a profile) or the profile values.
// A profile shorter than the horizon is padded with the scalar and one
// warning is logged; extra samples are ignored.
func assign[T any](log *diag.Logger, device, field string, dst []T, scalar T, profile []T, mode Mode) {
	if !mode.TimeSeries || profile == nil {
		for t := range dst {
			dst[t] = scalar
		}

		return
	}
	n := copy(dst, profile)
	if n < len(dst) {
		log.Warn(device, "profile shorter than horizon, padded with snapshot value",
			slog.String("field", field),
			slog.Int("samples", n),
			slog.Int("steps", len(dst)),
		)
		for t := n; t < len(dst); t++ {
			dst[t] = scalar
		}
	}
}

// rows allocates count rows of width w.
func rows[T any](count, w int) [][]T {
	out := make([][]T, count)
	for k := range out {
		out[k] = make([]T, w)
	}

	return out
}
