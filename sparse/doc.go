// Package sparse provides the compressed-sparse-row (CSR) storage used by the
// grid compiler and its solvers.
//
// What:
//
//   - Incidence: a 0/1 device×bus connectivity matrix with exactly one
//     nonzero per row (one terminal of one device). It satisfies gonum's
//     mat.Matrix so it can be fed straight into gonum routines.
//   - CSR: a complex-valued square matrix (nodal admittance) with
//     row pointers, column indices and values, plus a triplet assembler that
//     sums duplicates.
//   - PowerInjection: S_i = V_i · conj((Y·V)_i − I_i) for every row, with a
//     serial path and a row-parallel path selected by a row-count threshold.
//
// Why:
//
//   - Incidence and admittance matrices of real grids have O(1) nonzeros per
//     row; dense storage is O(n²) and dominates memory long before the
//     solvers do.
//
// Complexity:
//
//   - Incidence MulVec / MulTransVec: O(rows).
//   - FromTriplets: O(nnz log nnz_row).
//   - PowerInjection: O(n + nnz) time, O(n) extra memory.
//
// Errors:
//
//   - ErrBadShape: non-positive or inconsistent dimensions.
//   - ErrOutOfRange: a row/column index outside its dimension.
//   - ErrDimensionMismatch: operand lengths disagree with the matrix.
//   - ErrMalformedCSR: row pointers not monotone or not closing at nnz.
package sparse
