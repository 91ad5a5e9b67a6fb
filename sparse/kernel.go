// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math/cmplx"

	"golang.org/x/sync/errgroup"
)

// PowerInjection computes the complex nodal power injection
//
//	S_i = V_i · conj( Σ_p Y.Data[p]·V[Y.Indices[p]] − I_i ),  p ∈ row i
//
// for every row of y. Nonzeros are accumulated in storage order, so the
// serial and parallel paths produce bit-identical results.
//
// Stage 1 (Validate): y structure, len(v) == len(i) == y.N.
// Stage 2 (Execute): serial loop when y.N < threshold, otherwise rows are
// split into contiguous chunks computed by independent goroutines writing
// disjoint slots of the output.
// Stage 3 (Finalize): join and return S.
//
// Complexity: O(n + nnz) time, O(n) memory.
func PowerInjection(y *CSR, v, i []complex128, opts ...Option) ([]complex128, error) {
	if y == nil {
		return nil, fmt.Errorf("PowerInjection: nil matrix: %w", ErrBadShape)
	}
	if err := y.Validate(); err != nil {
		return nil, fmt.Errorf("PowerInjection: %w", err)
	}
	if len(v) != y.N || len(i) != y.N {
		return nil, fmt.Errorf("PowerInjection: n=%d len(V)=%d len(I)=%d: %w", y.N, len(v), len(i), ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)

	s := make([]complex128, y.N)
	if y.N < o.threshold || o.workers == 1 {
		injectRows(y, v, i, s, 0, y.N)

		return s, nil
	}

	var g errgroup.Group
	chunk := (y.N + o.workers - 1) / o.workers
	for lo := 0; lo < y.N; lo += chunk {
		lo := lo // per-iteration copy; go.mod targets go 1.21 loop semantics
		hi := min(lo+chunk, y.N)
		g.Go(func() error {
			injectRows(y, v, i, s, lo, hi)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("PowerInjection: %w", err)
	}

	return s, nil
}

// injectRows fills s[lo:hi]. Rows are independent.
func injectRows(y *CSR, v, cur, s []complex128, lo, hi int) {
	for r := lo; r < hi; r++ {
		var acc complex128
		for p := y.Indptr[r]; p < y.Indptr[r+1]; p++ {
			acc += y.Data[p] * v[y.Indices[p]]
		}
		s[r] = v[r] * cmplx.Conj(acc-cur[r])
	}
}

// PowerInjectionSerial is PowerInjection forced onto the serial path.
func PowerInjectionSerial(y *CSR, v, i []complex128) ([]complex128, error) {
	return PowerInjection(y, v, i, WithWorkers(1))
}
