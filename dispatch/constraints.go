// SPDX-License-Identifier: MIT

package dispatch

import "gonum.org/v1/gonum/mat"

// term is one coefficient of a sparse constraint row.
type term struct {
	col int
	v   float64
}

// constraints accumulates sparse rows and their right-hand sides.
type constraints struct {
	rows [][]term
	rhs  []float64
}

// add appends a row and returns its index.
func (cs *constraints) add(rhs float64, terms ...term) int {
	cs.rows = append(cs.rows, terms)
	cs.rhs = append(cs.rhs, rhs)

	return len(cs.rhs) - 1
}

// dense materialises the rows as a len(rhs)×ncols matrix, summing repeated
// columns. Returns nil when there are no rows.
func (cs *constraints) dense(ncols int) *mat.Dense {
	if len(cs.rows) == 0 || ncols == 0 {
		return nil
	}
	m := mat.NewDense(len(cs.rows), ncols, nil)
	for i, row := range cs.rows {
		for _, tm := range row {
			m.Set(i, tm.col, m.At(i, tm.col)+tm.v)
		}
	}

	return m
}
