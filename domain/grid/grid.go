package grid

import (
	"fmt"

	"fbmlab/domain/core"
)

// TimeGrid is an immutable, strictly increasing sequence of sample times
// spanning [start, end]. The start must be strictly positive: the fractional
// covariance kernels are singular or degenerate at t=0, so the zero point is
// never part of the grid and path values are pinned to zero by the sampler
// instead.
type TimeGrid struct {
	points []float64
}

// New builds a linearly spaced grid of n points from start to end inclusive.
// Validation rules: n >= 2 and 0 < start < end.
func New(n int, start, end float64) (TimeGrid, error) {
	if n < 2 {
		return TimeGrid{}, core.NewGridParameterError(fmt.Sprintf("count %d < 2", n))
	}
	if start <= 0 {
		return TimeGrid{}, core.NewGridParameterError(fmt.Sprintf("start %g <= 0", start))
	}
	if start >= end {
		return TimeGrid{}, core.NewGridParameterError(fmt.Sprintf("start %g >= end %g", start, end))
	}

	points := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range points {
		points[i] = start + float64(i)*step
	}
	// Exact endpoints regardless of accumulated step rounding.
	points[0] = start
	points[n-1] = end

	return TimeGrid{points: points}, nil
}

// Len returns the number of grid points.
func (g TimeGrid) Len() int {
	return len(g.points)
}

// At returns the i-th sample time.
func (g TimeGrid) At(i int) float64 {
	return g.points[i]
}

// Start returns the first sample time.
func (g TimeGrid) Start() float64 {
	return g.points[0]
}

// End returns the last sample time.
func (g TimeGrid) End() float64 {
	return g.points[len(g.points)-1]
}

// Points returns a copy of the sample times, preserving immutability.
func (g TimeGrid) Points() []float64 {
	out := make([]float64, len(g.points))
	copy(out, g.points)
	return out
}
