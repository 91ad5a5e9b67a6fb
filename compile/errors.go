// SPDX-License-Identifier: MIT

// Package compile: sentinel errors. Only ErrUnknownBus is produced by device
// data; the rest signal misuse of the API.
package compile

import "errors"

var (
	// ErrUnknownBus indicates a device references a bus that is not part of
	// the circuit. Fatal: compilation stops at the first occurrence.
	ErrUnknownBus = errors.New("compile: device references unknown bus")

	// ErrNilCircuit indicates Compile was called without a model.
	ErrNilCircuit = errors.New("compile: circuit is nil")

	// ErrStepOutOfRange indicates a time-step index outside [0, Steps).
	ErrStepOutOfRange = errors.New("compile: time step out of range")
)
