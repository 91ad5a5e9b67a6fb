// SPDX-License-Identifier: MIT

package dispatch

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// heuristic shares the active demand of step t among active generators in
// proportion to Pmax: share_k = Pmax_k·active_k / Σ(Pmax·active).
// Complexity: O(generators + loads).
func (p *Problem) heuristic(t int) {
	nc, r := p.nc, p.res
	gen, ld := nc.Generators, nc.Loads

	avail := make([]float64, gen.Len())
	for k := range avail {
		if gen.Active[k][t] {
			avail[k] = gen.Pmax[k]
		}
	}
	for k := 0; k < ld.Len(); k++ {
		r.served[t][k] = loadDemand(ld, k, t)
	}
	demand := floats.Sum(r.served[t])

	total := floats.Sum(avail)
	if total == 0 {
		if demand > 0 {
			nc.Log.Warn("", "no available generation, heuristic dispatch left at zero",
				slog.Int("step", t),
				slog.Float64("demand", demand),
			)
		}

		return
	}
	floats.ScaleTo(r.pg[t], demand/total, avail)
}
