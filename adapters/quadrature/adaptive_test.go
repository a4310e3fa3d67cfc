package quadrature

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbmlab/domain/core"
)

func TestIntegrate_Polynomial(t *testing.T) {
	q := New(Config{Tolerance: 1e-10})

	res, err := q.Integrate(func(x float64) float64 { return x * x }, 0, 1)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 1.0/3.0, res.Value, 1e-10)
}

func TestIntegrate_Oscillatory(t *testing.T) {
	q := New(Config{Tolerance: 1e-9})

	// Integral of sin over [0, pi] is exactly 2.
	res, err := q.Integrate(math.Sin, 0, math.Pi)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 2.0, res.Value, 1e-8)
}

func TestIntegrate_EndpointSingularity(t *testing.T) {
	q := New(Config{Tolerance: 1e-7, MaxPanels: 50000})

	// Integrable singularity at the origin: integral of x^(-1/2) over [0,1] is 2.
	// Panel nodes are interior, so the singular point is never evaluated.
	res, _ := q.Integrate(func(x float64) float64 { return 1 / math.Sqrt(x) }, 0, 1)
	assert.InDelta(t, 2.0, res.Value, 1e-3)
}

func TestIntegrate_EmptyInterval(t *testing.T) {
	q := New(Config{})

	res, err := q.Integrate(func(x float64) float64 { return x }, 3, 3)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Zero(t, res.Value)
}

func TestIntegrate_BudgetExhaustion(t *testing.T) {
	q := New(Config{Tolerance: 1e-14, MaxPanels: 5})

	res, err := q.Integrate(func(x float64) float64 { return 1 / math.Sqrt(x) }, 0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrQuadratureNonconvergence))

	// The partial result is reported, not discarded.
	assert.False(t, res.Converged)
	assert.Greater(t, res.Value, 0.0)
	assert.Greater(t, res.Panels, 0)
}

func TestDefaults(t *testing.T) {
	q := New(Config{})
	assert.Equal(t, DefaultConfig(), q.cfg)
}
