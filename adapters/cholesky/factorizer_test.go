package cholesky

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"fbmlab/adapters/covariance"
	"fbmlab/domain/core"
	"fbmlab/domain/grid"
	"fbmlab/domain/process"
)

func fbmCovariance(t *testing.T, n int, alpha float64) *mat.SymDense {
	t.Helper()
	g, err := grid.New(n, 1e-4, 5)
	require.NoError(t, err)
	h, err := process.NewHurst(alpha)
	require.NoError(t, err)
	return covariance.NewFBMBuilder().Build(g, h)
}

func TestFactorize_Reconstructs(t *testing.T) {
	for _, alpha := range []float64{0.3, 0.5, 0.7} {
		m := fbmCovariance(t, 40, alpha)
		l, err := New().Factorize(m)
		require.NoError(t, err, "alpha=%g", alpha)

		var reconstructed mat.Dense
		reconstructed.Mul(l, l.T())

		n, _ := m.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := m.At(i, j)
				got := reconstructed.At(i, j)
				scale := math.Max(math.Abs(want), 1e-30)
				if math.Abs(got-want)/scale > 1e-8 {
					t.Fatalf("alpha=%g: L*Lt differs from M at (%d,%d): %g vs %g", alpha, i, j, got, want)
				}
			}
		}
	}
}

func TestFactorize_LowerTriangular(t *testing.T) {
	m := fbmCovariance(t, 20, 0.5)
	l, err := New().Factorize(m)
	require.NoError(t, err)

	n, _ := l.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			assert.Zero(t, l.At(i, j), "entry above the diagonal at (%d,%d)", i, j)
		}
	}
}

func TestFactorize_NotPositiveDefinite(t *testing.T) {
	// Indefinite symmetric matrix: eigenvalues 3 and -1.
	m := mat.NewSymDense(2, []float64{1, 2, 2, 1})

	_, err := New().Factorize(m)
	assert.ErrorIs(t, err, core.ErrNotPositiveDefinite)
}

func TestFactorize_JitterRecovery(t *testing.T) {
	// Rank-1 all-ones matrix is only semidefinite and fails plain
	// factorization, but succeeds once the diagonal is regularized.
	n := 5
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1
	}
	m := mat.NewSymDense(n, data)

	_, err := New().Factorize(m)
	require.ErrorIs(t, err, core.ErrNotPositiveDefinite)

	l, err := NewWithJitter(1e-8).Factorize(m)
	require.NoError(t, err)
	require.NotNil(t, l)

	// The original matrix must not be mutated by the retry.
	assert.Equal(t, 1.0, m.At(0, 0))
}
