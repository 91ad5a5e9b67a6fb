// SPDX-License-Identifier: MIT

// Package sparse: sentinel error set.
// Only package-level sentinels live here. Constructors and the kernel return
// them wrapped with the failing function name; tests match via errors.Is.
//
// ERROR PRIORITY (checked in this order):
// shape -> structure (CSR pointers) -> index range -> operand lengths.
package sparse

import "errors"

// Every message is prefixed with "sparse: ..." for grepping; callers match
// with errors.Is after any contextual wrapping.
var (
	// ErrBadShape is returned for negative dimensions or mismatched raw slices.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates vector lengths incompatible with the matrix.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrMalformedCSR indicates row pointers that are not monotone or do not
	// start at zero and end at len(Indices).
	ErrMalformedCSR = errors.New("sparse: malformed csr storage")
)
