// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvgrid/compile"
	"github.com/katalvlaran/lvgrid/model"
)

// Island is one connected component. All indices are global (bus or unified
// branch positions) and ascending.
type Island struct {
	Buses    []int
	Branches []int // branches with both ends inside and nonzero susceptance
	Ref      []int // angle reference buses
	PQPV     []int // Buses minus Ref
}

// HasReference reports whether the island has at least one reference bus.
func (is *Island) HasReference() bool { return len(is.Ref) > 0 }

// Islands splits nc at step into connected components.
// Stage 1 (Validate): non-nil circuit, step in range.
// Stage 2 (Prepare): adjacency over active branches with b ≠ 0 whose two
// buses are active.
// Stage 3 (Execute): BFS from every unvisited active bus in index order, then
// classify Ref/PQPV. A PV promotion is recorded as an info entry in nc.Log.
// Complexity: O(n + m).
func Islands(nc *compile.NumericalCircuit, step int) ([]Island, error) {
	if nc == nil {
		return nil, fmt.Errorf("Islands: %w", ErrNilCircuit)
	}
	b, err := nc.SeriesSusceptance(step)
	if err != nil {
		return nil, fmt.Errorf("Islands: %w", err)
	}
	n := nc.NBus()
	br := nc.Branches
	busOn := func(i int) bool { return nc.Buses.Active[i][step] }

	type edge struct{ to, branch int }
	adj := make([][]edge, n)
	for k := 0; k < br.Len(); k++ {
		f, t := br.F[k], br.T[k]
		if b[k] == 0 || !busOn(f) || !busOn(t) {
			continue
		}
		adj[f] = append(adj[f], edge{t, k})
		adj[t] = append(adj[t], edge{f, k})
	}

	seen := make([]bool, n)
	var islands []Island
	for i0 := 0; i0 < n; i0++ {
		if seen[i0] || !busOn(i0) {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		inside := map[int]struct{}{}
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, e := range adj[u] {
				inside[e.branch] = struct{}{}
				if !seen[e.to] {
					seen[e.to] = true
					queue = append(queue, e.to)
				}
			}
		}
		is := Island{Buses: queue, Branches: make([]int, 0, len(inside))}
		for k := range inside {
			is.Branches = append(is.Branches, k)
		}
		sort.Ints(is.Buses)
		sort.Ints(is.Branches)
		classify(nc, &is, step)
		islands = append(islands, is)
	}

	return islands, nil
}

// classify fills Ref and PQPV.
func classify(nc *compile.NumericalCircuit, is *Island, step int) {
	for _, i := range is.Buses {
		if nc.BusTypes[i] == model.Slack {
			is.Ref = append(is.Ref, i)
		}
	}
	if len(is.Ref) == 0 {
		for _, i := range is.Buses {
			if nc.BusTypes[i] == model.PV {
				is.Ref = append(is.Ref, i)
				nc.Log.Info(nc.Buses.Names[i], "no slack bus in island, PV bus promoted to reference",
					slog.Int("step", step),
					slog.Int("island_size", len(is.Buses)),
				)

				break
			}
		}
	}
	is.PQPV = make([]int, 0, len(is.Buses)-len(is.Ref))
	for _, i := range is.Buses {
		if !contains(is.Ref, i) {
			is.PQPV = append(is.PQPV, i)
		}
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}

// Susceptance returns the island's DC susceptance matrix, rows and columns
// ordered like is.Buses, from the per-branch susceptances b:
//
//	B[f,f] += b, B[t,t] += b, B[f,t] −= b, B[t,f] −= b
//
// so that P = B·θ with flow b·(θf − θt) leaving f.
// Complexity: O(|Buses|² + |Branches|).
func (is *Island) Susceptance(f, t []int, b []float64) *mat.Dense {
	n := len(is.Buses)
	pos := make(map[int]int, n)
	for p, i := range is.Buses {
		pos[i] = p
	}
	m := mat.NewDense(n, n, nil)
	for _, k := range is.Branches {
		pf, pt := pos[f[k]], pos[t[k]]
		m.Set(pf, pf, m.At(pf, pf)+b[k])
		m.Set(pt, pt, m.At(pt, pt)+b[k])
		m.Set(pf, pt, m.At(pf, pt)-b[k])
		m.Set(pt, pf, m.At(pt, pf)-b[k])
	}

	return m
}
