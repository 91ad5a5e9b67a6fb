package sparse_test

import (
	"fmt"

	"github.com/katalvlaran/lvgrid/sparse"
)

////////////////////////////////////////////////////////////////////////////////
// Example: PowerInjection
////////////////////////////////////////////////////////////////////////////////

// ExamplePowerInjection computes S = V·conj(Y·V − I) for Y = diag(2,3) at a
// flat start without current injections.
func ExamplePowerInjection() {
	t := sparse.NewTriplets(2)
	t.Add(0, 0, 2)
	t.Add(1, 1, 3)
	y, _ := t.Compress()

	s, _ := sparse.PowerInjection(y, []complex128{1, 1}, []complex128{0, 0})
	fmt.Println(s)

	// Output:
	// [(2+0i) (3+0i)]
}
