// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"sort"
)

// CSR is an n×n complex matrix in compressed-sparse-row form.
//
//	Indptr  – length n+1; row i occupies Indices/Data[Indptr[i]:Indptr[i+1]].
//	Indices – column index of every stored value.
//	Data    – stored values, aligned with Indices.
//
// The fields are exported so callers can hand over storage produced
// elsewhere; Validate checks the structural contract.
type CSR struct {
	N       int
	Indptr  []int
	Indices []int
	Data    []complex128
}

// Validate checks shape, monotone row pointers and column bounds.
// Complexity: O(n + nnz).
func (y *CSR) Validate() error {
	if y.N < 0 || len(y.Indptr) != y.N+1 {
		return fmt.Errorf("CSR.Validate: n=%d len(Indptr)=%d: %w", y.N, len(y.Indptr), ErrBadShape)
	}
	if len(y.Indices) != len(y.Data) {
		return fmt.Errorf("CSR.Validate: len(Indices)=%d len(Data)=%d: %w", len(y.Indices), len(y.Data), ErrBadShape)
	}
	if y.Indptr[0] != 0 || y.Indptr[y.N] != len(y.Indices) {
		return fmt.Errorf("CSR.Validate: Indptr[0]=%d Indptr[n]=%d nnz=%d: %w", y.Indptr[0], y.Indptr[y.N], len(y.Indices), ErrMalformedCSR)
	}
	for i := 0; i < y.N; i++ {
		if y.Indptr[i] > y.Indptr[i+1] {
			return fmt.Errorf("CSR.Validate: row %d: %w", i, ErrMalformedCSR)
		}
	}
	for p, c := range y.Indices {
		if c < 0 || c >= y.N {
			return fmt.Errorf("CSR.Validate: nonzero %d column %d not in [0,%d): %w", p, c, y.N, ErrOutOfRange)
		}
	}

	return nil
}

// NNZ returns the number of stored values.
func (y *CSR) NNZ() int { return len(y.Data) }

// At returns the (i, j) entry by scanning row i. Complexity: O(nnz in row).
func (y *CSR) At(i, j int) complex128 {
	var s complex128
	for p := y.Indptr[i]; p < y.Indptr[i+1]; p++ {
		if y.Indices[p] == j {
			s += y.Data[p]
		}
	}

	return s
}

// Triplets accumulates (row, col, value) contributions for an n×n matrix.
// Duplicate positions are summed by Compress.
type Triplets struct {
	n    int
	rows []int
	cols []int
	vals []complex128
}

// NewTriplets returns an empty accumulator for an n×n matrix.
func NewTriplets(n int) *Triplets {
	return &Triplets{n: n}
}

// Add appends one contribution. Indices are validated in Compress.
func (t *Triplets) Add(i, j int, v complex128) {
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, v)
}

// Compress converts the accumulated triplets into CSR with ascending column
// order inside each row and duplicates summed.
// Stage 1 (Validate): every index inside [0,n).
// Stage 2 (Prepare): count entries per row.
// Stage 3 (Execute): bucket, sort by column, merge duplicates.
// Complexity: O(nnz log k) where k is the largest row population.
func (t *Triplets) Compress() (*CSR, error) {
	if t.n < 0 {
		return nil, fmt.Errorf("Triplets.Compress: n=%d: %w", t.n, ErrBadShape)
	}
	for k := range t.rows {
		if t.rows[k] < 0 || t.rows[k] >= t.n || t.cols[k] < 0 || t.cols[k] >= t.n {
			return nil, fmt.Errorf("Triplets.Compress: (%d,%d) not in %dx%d: %w", t.rows[k], t.cols[k], t.n, t.n, ErrOutOfRange)
		}
	}

	// bucket entry positions per row, keeping insertion order
	buckets := make([][]int, t.n)
	for k, r := range t.rows {
		buckets[r] = append(buckets[r], k)
	}

	y := &CSR{N: t.n, Indptr: make([]int, t.n+1)}
	for i, b := range buckets {
		sort.SliceStable(b, func(a, c int) bool { return t.cols[b[a]] < t.cols[b[c]] })
		last := -1
		for _, k := range b {
			if t.cols[k] == last {
				y.Data[len(y.Data)-1] += t.vals[k]
				continue
			}
			last = t.cols[k]
			y.Indices = append(y.Indices, last)
			y.Data = append(y.Data, t.vals[k])
		}
		y.Indptr[i+1] = len(y.Indices)
	}

	return y, nil
}
