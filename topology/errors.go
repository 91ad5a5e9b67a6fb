// SPDX-License-Identifier: MIT

package topology

import "errors"

// ErrNilCircuit indicates Islands was called without a compiled circuit.
var ErrNilCircuit = errors.New("topology: numerical circuit is nil")
