package cholesky

import (
	"gonum.org/v1/gonum/mat"

	"fbmlab/domain/core"
)

// Factorizer wraps the dense Cholesky decomposition. Factorization failure
// is terminal for the (family, alpha) unit that owns the matrix; there is no
// implicit recovery.
type Factorizer struct {
	jitter float64
}

// New creates a factorizer with no recovery policy.
func New() *Factorizer {
	return &Factorizer{}
}

// NewWithJitter creates a factorizer that, on failure, retries exactly once
// after adding eps to the diagonal. This is an explicit opt-in policy for
// borderline matrices (large N, alpha near the boundary); the silent default
// is to fail.
func NewWithJitter(eps float64) *Factorizer {
	return &Factorizer{jitter: eps}
}

// Factorize computes the lower-triangular L with L * Lt = m, or reports
// core.ErrNotPositiveDefinite.
func (f *Factorizer) Factorize(m *mat.SymDense) (*mat.TriDense, error) {
	n, _ := m.Dims()

	var chol mat.Cholesky
	if chol.Factorize(m) {
		var l mat.TriDense
		chol.LTo(&l)
		return &l, nil
	}

	if f.jitter > 0 {
		regularized := mat.NewSymDense(n, nil)
		regularized.CopySym(m)
		for i := 0; i < n; i++ {
			regularized.SetSym(i, i, regularized.At(i, i)+f.jitter)
		}
		if chol.Factorize(regularized) {
			var l mat.TriDense
			chol.LTo(&l)
			return &l, nil
		}
	}

	return nil, core.NewFactorizationError(n)
}
