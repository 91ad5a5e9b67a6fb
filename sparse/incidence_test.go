package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvgrid/sparse"
)

// TestIncidence_OneNonZeroPerRow checks the device→bus layout and gonum interop.
func TestIncidence_OneNonZeroPerRow(t *testing.T) {
	c, err := sparse.NewIncidence(4, []int{2, 0, -1, 2})
	require.NoError(t, err)

	r, cols := c.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, cols)
	require.Equal(t, 3, c.NNZ())

	for k, want := range []int{2, 0, -1, 2} {
		require.Equal(t, want, c.Column(k))
		for j := 0; j < cols; j++ {
			if j == want {
				require.Equal(t, 1.0, c.At(k, j))
			} else {
				require.Equal(t, 0.0, c.At(k, j))
			}
		}
	}
	want := mat.NewDense(4, 4, []float64{
		0, 0, 1, 0,
		1, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 1, 0,
	})
	require.True(t, mat.Equal(want, c))
	require.Equal(t, 1.0, c.T().At(2, 0))
}

func TestIncidence_MulVec(t *testing.T) {
	c, err := sparse.NewIncidence(3, []int{1, 1, 0})
	require.NoError(t, err)

	gathered := make([]float64, 3)
	require.NoError(t, c.MulVec(gathered, []float64{10, 20, 30}))
	require.Equal(t, []float64{20, 20, 10}, gathered)

	scattered := []float64{9, 9, 9}
	require.NoError(t, c.MulTransVec(scattered, []float64{1, 2, 4}))
	require.Equal(t, []float64{4, 3, 0}, scattered)

	require.ErrorIs(t, c.MulVec(make([]float64, 2), []float64{1, 2, 3}), sparse.ErrDimensionMismatch)
	require.ErrorIs(t, c.MulTransVec(make([]float64, 3), []float64{1}), sparse.ErrDimensionMismatch)
}

func TestIncidence_Errors(t *testing.T) {
	_, err := sparse.NewIncidence(2, []int{0, 2})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = sparse.NewIncidence(-1, nil)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	empty, err := sparse.NewIncidence(0, nil)
	require.NoError(t, err)
	require.Panics(t, func() { empty.At(0, 0) })
}
