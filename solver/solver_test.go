package solver

import (
	"testing"

	"github.com/hupe1980/benchy/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// laplacian returns the n x n 1D Laplacian, which is SPD.
func laplacian(t *testing.T, n int) *matrix.Sparse {
	t.Helper()
	var triplets []matrix.Triplet
	for i := 0; i < n; i++ {
		triplets = append(triplets, matrix.Triplet{Row: i, Col: i, Value: 2})
		if i > 0 {
			triplets = append(triplets,
				matrix.Triplet{Row: i, Col: i - 1, Value: -1},
				matrix.Triplet{Row: i - 1, Col: i, Value: -1})
		}
	}
	a, err := matrix.NewSparse(n, n, triplets)
	require.NoError(t, err)
	return a
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"cg", "dense-cholesky", "dense-lu", "dense-qr"}, Names())

	_, err := New("pardiso")
	assert.ErrorIs(t, err, ErrUnknownSolver)

	assert.Panics(t, func() { Register("cg", nil) })
}

func TestSolvers(t *testing.T) {
	a := laplacian(t, 20)
	want := make([]float64, 20)
	for i := range want {
		want[i] = float64(i%5) - 2
	}
	b := a.MulVec(want)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name())

			_, err = s.Solve(b)
			assert.ErrorIs(t, err, ErrNotFactorized)

			require.NoError(t, s.Analyze(a))
			require.NoError(t, s.Factorize(a))

			x, err := s.Solve(b)
			require.NoError(t, err)
			assert.InDeltaSlice(t, want, x, 1e-6)
			assert.Less(t, Residual(a, x, b), 1e-8)
		})
	}
}

func TestFactorizeWithoutAnalyze(t *testing.T) {
	a := laplacian(t, 4)
	s, err := New("dense-lu")
	require.NoError(t, err)
	require.NoError(t, s.Factorize(a))

	x, err := s.Solve([]float64{1, 0, 0, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1}, x, 1e-12)
}

func TestNotSquare(t *testing.T) {
	a, err := matrix.NewSparse(2, 3, nil)
	require.NoError(t, err)
	empty, err := matrix.NewSparse(0, 0, nil)
	require.NoError(t, err)

	for _, name := range Names() {
		s, _ := New(name)
		assert.ErrorIs(t, s.Analyze(a), ErrNotSquare, name)
		assert.ErrorIs(t, s.Analyze(empty), ErrNotSquare, name)
	}
}

func TestNumericalFailures(t *testing.T) {
	// Symmetric but indefinite.
	indefinite, err := matrix.NewSparse(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 1, Col: 1, Value: -1},
	})
	require.NoError(t, err)

	chol, _ := New("dense-cholesky")
	assert.ErrorIs(t, chol.Factorize(indefinite), ErrNumerical)

	cg, _ := New("cg")
	assert.ErrorIs(t, cg.Factorize(indefinite), ErrNumerical)

	nonsym, err := matrix.NewSparse(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 1, Value: 2}, {Row: 1, Col: 1, Value: 1},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, chol.Factorize(nonsym), ErrNumerical)

	singular, err := matrix.NewSparse(2, 2, []matrix.Triplet{{Row: 0, Col: 0, Value: 1}})
	require.NoError(t, err)
	lu, _ := New("dense-lu")
	assert.ErrorIs(t, lu.Factorize(singular), ErrNumerical)
}

func TestSolve_RHSLength(t *testing.T) {
	a := laplacian(t, 3)
	s, _ := New("cg")
	require.NoError(t, s.Factorize(a))
	_, err := s.Solve([]float64{1})
	assert.Error(t, err)
}

func TestCG_Iterations(t *testing.T) {
	a := laplacian(t, 50)
	s := NewCG(CGOptions{Tolerance: 1e-12, MaxIterations: 2})
	require.NoError(t, s.Factorize(a))

	b := make([]float64, 50)
	b[0] = 1
	_, err := s.Solve(b)
	assert.ErrorIs(t, err, ErrNumerical)
	assert.Equal(t, 2, s.Iterations)

	x, err := NewCG(DefaultCGOptions()).Solve(b)
	assert.ErrorIs(t, err, ErrNotFactorized)
	assert.Nil(t, x)

	zero, err := s.Solve(make([]float64, 50))
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 50), zero)
}
