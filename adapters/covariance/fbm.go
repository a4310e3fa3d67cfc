package covariance

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"fbmlab/domain/grid"
	"fbmlab/domain/process"
)

// FBMBuilder assembles the fractional Brownian motion covariance matrix
//
//	C[i,j] = 0.5 * (t_i^2a + t_j^2a - |t_i - t_j|^2a)
//
// Each entry is computed once for j <= i and mirrored, so the matrix is
// symmetric bit-for-bit rather than by two independent floating-point
// evaluations of the kernel.
type FBMBuilder struct{}

// NewFBMBuilder creates an fBm covariance builder.
func NewFBMBuilder() *FBMBuilder {
	return &FBMBuilder{}
}

// Build assembles the N x N covariance for the given grid and exponent.
// The kernel is evaluated with no hidden state: identical inputs yield
// bit-identical matrices.
func (b *FBMBuilder) Build(g grid.TimeGrid, alpha process.Hurst) *mat.SymDense {
	n := g.Len()
	twoAlpha := 2 * alpha.Float()

	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		ti := g.At(i)
		for j := 0; j <= i; j++ {
			tj := g.At(j)
			v := 0.5 * (math.Pow(ti, twoAlpha) + math.Pow(tj, twoAlpha) - math.Pow(ti-tj, twoAlpha))
			c.SetSym(i, j, v)
		}
	}
	return c
}
