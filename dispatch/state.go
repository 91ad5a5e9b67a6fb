// SPDX-License-Identifier: MIT

package dispatch

import "fmt"

// State is the lifecycle stage of a Problem.
type State int

const (
	// Compiled: inputs attached, nothing built yet.
	Compiled State = iota
	// Formulated: constraint matrices of the current step exist.
	Formulated
	// Solved: the current step has a primal solution.
	Solved
	// Extracted: every step has been written to the result arrays.
	Extracted
)

// String returns the stage name.
func (s State) String() string {
	switch s {
	case Compiled:
		return "compiled"
	case Formulated:
		return "formulated"
	case Solved:
		return "solved"
	case Extracted:
		return "extracted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
