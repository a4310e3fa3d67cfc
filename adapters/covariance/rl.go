package covariance

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"fbmlab/adapters/quadrature"
	"fbmlab/domain/core"
	"fbmlab/domain/grid"
	"fbmlab/domain/process"
)

// Report captures the aggregate convergence status of one RL covariance
// assembly. Entries that miss the quadrature tolerance keep their partial
// values; the report makes the degraded accuracy explicit instead of
// silently accepting the estimates as exact.
type Report struct {
	Entries       int     `json:"entries"`
	Nonconverged  int     `json:"nonconverged"`
	MaxAbsError   float64 `json:"max_abs_error"`
	TotalPanels   int     `json:"total_panels"`
	LowConfidence bool    `json:"low_confidence"`
}

// RLBuilder assembles the Riemann-Liouville fBm covariance matrix
//
//	C[i,j] = integral_0^{t_j} (t_i - x)^(a-1/2) * (t_j - x)^(a-1/2) dx,  t_j <= t_i
//
// by adaptive quadrature per lower-triangle entry. This is the dominant cost
// center of the pipeline: O(N^2) quadrature calls, each itself iterative.
// For a < 0.5 the integrand has an integrable singularity at x = t_j; the
// integrator's interior-node panels tolerate it at the cost of extra
// subdivision near the upper bound.
type RLBuilder struct {
	integrator *quadrature.Integrator
}

// NewRLBuilder creates an RL covariance builder with the given quadrature
// configuration.
func NewRLBuilder(cfg quadrature.Config) *RLBuilder {
	return &RLBuilder{integrator: quadrature.New(cfg)}
}

// Build assembles the N x N covariance for the given grid and exponent.
// Non-converged entries do not abort the build; they are tallied in the
// report and the build error wraps core.ErrQuadratureNonconvergence only
// when at least one entry missed tolerance.
func (b *RLBuilder) Build(ctx context.Context, g grid.TimeGrid, alpha process.Hurst) (*mat.SymDense, *Report, error) {
	n := g.Len()
	exponent := alpha.Float() - 0.5

	c := mat.NewSymDense(n, nil)
	report := &Report{}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		ti := g.At(i)
		for j := 0; j <= i; j++ {
			tj := g.At(j)
			f := func(x float64) float64 {
				return math.Pow(ti-x, exponent) * math.Pow(tj-x, exponent)
			}
			res, err := b.integrator.Integrate(f, 0, tj)
			report.Entries++
			report.TotalPanels += res.Panels
			if res.AbsError > report.MaxAbsError {
				report.MaxAbsError = res.AbsError
			}
			if err != nil {
				report.Nonconverged++
			}
			c.SetSym(i, j, res.Value)
		}
	}

	if report.Nonconverged > 0 {
		report.LowConfidence = true
		return c, report, core.NewQuadratureError(report.TotalPanels, report.MaxAbsError)
	}
	return c, report, nil
}
