// SPDX-License-Identifier: MIT

// Package sparse: device-to-bus incidence matrices.
// Each row is one device terminal and holds at most one 1, so the CSR column
// index array doubles as the row-to-bus map.
//
// Design goals:
//   - O(1) Column lookup, O(rows) gather (MulVec) and scatter (MulTransVec).
//   - gonum interop through mat.Matrix; At keeps gonum's panic contract.
//   - Empty rows (negative bus) are legal and contribute nothing.
package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// noColumn marks a row without any nonzero.
const noColumn = -1

// Incidence is a rows×cols 0/1 matrix with at most one nonzero per row,
// stored as CSR whose column index array doubles as a row→column map.
// Rows are devices (or device terminals), columns are buses.
//
// Incidence implements mat.Matrix; At panics on out-of-range indices like
// every gonum matrix.
type Incidence struct {
	rows, cols int
	indptr     []int // len rows+1
	indices    []int // len nnz, column of each nonzero in row order
}

var _ mat.Matrix = (*Incidence)(nil)

// NewIncidence builds an incidence matrix where row k has a single 1 at
// column cols[k]; a negative entry leaves the row empty.
// Stage 1 (Validate): ncols ≥ 0 and every column < ncols.
// Stage 2 (Execute): emit one nonzero per mapped row, preserving row order.
// Complexity: O(len(cols)).
func NewIncidence(ncols int, cols []int) (*Incidence, error) {
	if ncols < 0 {
		return nil, fmt.Errorf("NewIncidence: cols=%d: %w", ncols, ErrBadShape)
	}
	m := &Incidence{
		rows:    len(cols),
		cols:    ncols,
		indptr:  make([]int, len(cols)+1),
		indices: make([]int, 0, len(cols)),
	}
	for k, c := range cols {
		if c >= ncols {
			return nil, fmt.Errorf("NewIncidence: row %d column %d not in [0,%d): %w", k, c, ncols, ErrOutOfRange)
		}
		if c >= 0 {
			m.indices = append(m.indices, c)
		}
		m.indptr[k+1] = len(m.indices)
	}

	return m, nil
}

// Dims returns (rows, cols).
func (m *Incidence) Dims() (int, int) { return m.rows, m.cols }

// At returns 1 when row i is connected to column j and 0 otherwise.
// Panics on out-of-range indices (mat.Matrix contract).
func (m *Incidence) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
		if m.indices[p] == j {
			return 1
		}
	}

	return 0
}

// T returns the implicit transpose.
func (m *Incidence) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ returns the number of stored ones.
func (m *Incidence) NNZ() int { return len(m.indices) }

// Column returns the column of the nonzero in row i, or -1 for an empty row.
// Complexity: O(1).
func (m *Incidence) Column(i int) int {
	if m.indptr[i] == m.indptr[i+1] {
		return noColumn
	}

	return m.indices[m.indptr[i]]
}

// MulVec gathers x through the matrix: dst[k] = x[col(k)] (0 for empty rows).
// Use it to read bus quantities at device terminals.
// Complexity: O(rows).
func (m *Incidence) MulVec(dst, x []float64) error {
	if len(dst) != m.rows || len(x) != m.cols {
		return fmt.Errorf("Incidence.MulVec: dst=%d x=%d for %dx%d: %w", len(dst), len(x), m.rows, m.cols, ErrDimensionMismatch)
	}
	for k := 0; k < m.rows; k++ {
		if c := m.Column(k); c != noColumn {
			dst[k] = x[c]
		} else {
			dst[k] = 0
		}
	}

	return nil
}

// MulTransVec scatters device values onto buses: dst = Mᵀ·x, i.e.
// dst[j] = Σ x[k] over rows k connected to j. dst is overwritten.
// Complexity: O(rows + cols).
func (m *Incidence) MulTransVec(dst, x []float64) error {
	if len(dst) != m.cols || len(x) != m.rows {
		return fmt.Errorf("Incidence.MulTransVec: dst=%d x=%d for %dx%d: %w", len(dst), len(x), m.rows, m.cols, ErrDimensionMismatch)
	}
	for j := range dst {
		dst[j] = 0
	}
	for k := 0; k < m.rows; k++ {
		if c := m.Column(k); c != noColumn {
			dst[c] += x[k]
		}
	}

	return nil
}
