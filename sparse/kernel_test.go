package sparse_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/sparse"
)

// randomCSR builds a reproducible banded admittance-like matrix of size n.
func randomCSR(t testing.TB, n int, seed int64) *sparse.CSR {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	tr := sparse.NewTriplets(n)
	for i := 0; i < n; i++ {
		tr.Add(i, i, complex(rng.Float64()+1, -rng.Float64()*10))
		if i+1 < n {
			v := complex(-rng.Float64(), rng.Float64()*5)
			tr.Add(i, i+1, v)
			tr.Add(i+1, i, v)
		}
		if j := rng.Intn(n); j != i {
			tr.Add(i, j, complex(-rng.Float64()*0.1, rng.Float64()))
		}
	}
	y, err := tr.Compress()
	require.NoError(t, err)

	return y
}

func randomVec(n int, seed int64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]complex128, n)
	for i := range v {
		v[i] = complex(0.95+rng.Float64()*0.1, rng.Float64()*0.2-0.1)
	}

	return v
}

// TestPowerInjection_Diagonal covers Y=diag(2,3), V=1, I=0 ⇒ S=[2,3].
func TestPowerInjection_Diagonal(t *testing.T) {
	y := &sparse.CSR{
		N:       2,
		Indptr:  []int{0, 1, 2},
		Indices: []int{0, 1},
		Data:    []complex128{2, 3},
	}
	s, err := sparse.PowerInjection(y, []complex128{1, 1}, []complex128{0, 0})
	require.NoError(t, err)
	require.Equal(t, []complex128{2, 3}, s)
}

// TestPowerInjection_CurrentInjection checks the I term and conjugation:
// Y=[[1-2j]], V=[1+1j], I=[0.5] ⇒ S = V·conj(Y·V − I).
func TestPowerInjection_CurrentInjection(t *testing.T) {
	y := &sparse.CSR{N: 1, Indptr: []int{0, 1}, Indices: []int{0}, Data: []complex128{1 - 2i}}
	v := []complex128{1 + 1i}
	s, err := sparse.PowerInjection(y, v, []complex128{0.5})
	require.NoError(t, err)

	yv := (1 - 2i) * (1 + 1i) // 3 - 1i
	want := (1 + 1i) * complex(real(yv)-0.5, -imag(yv))
	require.Equal(t, want, s[0])
}

// TestPowerInjection_ParallelMatchesSerial requires bit equality above the threshold.
func TestPowerInjection_ParallelMatchesSerial(t *testing.T) {
	for _, n := range []int{499, 500, 2048} {
		y := randomCSR(t, n, int64(n))
		v := randomVec(n, 7)
		cur := randomVec(n, 11)

		serial, err := sparse.PowerInjectionSerial(y, v, cur)
		require.NoError(t, err)
		par, err := sparse.PowerInjection(y, v, cur, sparse.WithWorkers(8))
		require.NoError(t, err)
		require.Len(t, par, n)
		for i := range serial {
			require.Equalf(t, serial[i], par[i], "n=%d row %d", n, i)
		}

		low, err := sparse.PowerInjection(y, v, cur, sparse.WithParallelThreshold(1), sparse.WithWorkers(3))
		require.NoError(t, err)
		require.Equal(t, serial, low)
	}
}

// TestPowerInjection_Validation exercises structural guards.
func TestPowerInjection_Validation(t *testing.T) {
	good := &sparse.CSR{N: 2, Indptr: []int{0, 1, 2}, Indices: []int{0, 1}, Data: []complex128{1, 1}}
	v := []complex128{1, 1}

	cases := []struct {
		name string
		y    *sparse.CSR
		v, i []complex128
		want error
	}{
		{"nil", nil, v, v, sparse.ErrBadShape},
		{"short indptr", &sparse.CSR{N: 2, Indptr: []int{0, 2}, Indices: []int{0, 1}, Data: []complex128{1, 1}}, v, v, sparse.ErrBadShape},
		{"column out of range", &sparse.CSR{N: 2, Indptr: []int{0, 1, 2}, Indices: []int{0, 2}, Data: []complex128{1, 1}}, v, v, sparse.ErrOutOfRange},
		{"empty row", &sparse.CSR{N: 2, Indptr: []int{0, 2, 2}, Indices: []int{0, 1}, Data: []complex128{1, 1}}, v, v, nil},
		{"decreasing", &sparse.CSR{N: 2, Indptr: []int{0, 3, 2}, Indices: []int{0, 1}, Data: []complex128{1, 1}}, v, v, sparse.ErrMalformedCSR},
		{"short V", good, v[:1], v, sparse.ErrDimensionMismatch},
		{"short I", good, v, v[:1], sparse.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sparse.PowerInjection(tc.y, tc.v, tc.i)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestTriplets_Compress(t *testing.T) {
	tr := sparse.NewTriplets(3)
	tr.Add(0, 2, 1)
	tr.Add(0, 0, 2)
	tr.Add(0, 2, 3i)
	tr.Add(2, 1, -1)

	y, err := tr.Compress()
	require.NoError(t, err)
	require.NoError(t, y.Validate())
	require.Equal(t, []int{0, 2, 2, 3}, y.Indptr)
	require.Equal(t, []int{0, 2, 1}, y.Indices)
	require.Equal(t, []complex128{2, 1 + 3i, -1}, y.Data)
	require.Equal(t, 3, y.NNZ())
	require.Equal(t, complex128(1+3i), y.At(0, 2))
	require.Equal(t, complex128(0), y.At(1, 1))

	bad := sparse.NewTriplets(2)
	bad.Add(0, 5, 1)
	_, err = bad.Compress()
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { sparse.WithParallelThreshold(0) })
	require.Panics(t, func() { sparse.WithWorkers(-1) })
}
