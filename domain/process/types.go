package process

import (
	"fmt"
	"math"
	"strings"

	"fbmlab/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// Hurst is the self-similarity exponent in (0,1). 0.5 recovers standard
// Brownian motion; below 0.5 increments are negatively correlated, above
// 0.5 positively correlated.
type Hurst float64

// NewHurst validates and wraps a Hurst exponent.
func NewHurst(v float64) (Hurst, error) {
	if v <= 0 || v >= 1 {
		return 0, core.NewHurstError(v)
	}
	return Hurst(v), nil
}

// Float returns the underlying value.
func (h Hurst) Float() float64 { return float64(h) }

// Family identifies one of the supported Gaussian process families.
type Family string

const (
	// FamilyBrownian is standard Brownian motion, generated by an
	// increment prefix-sum rather than the covariance machinery.
	FamilyBrownian Family = "brownian"
	// FamilyFBM is fractional Brownian motion with the stationary-increment
	// closed-form kernel.
	FamilyFBM Family = "fbm"
	// FamilyRiemannLiouville is Riemann-Liouville fractional Brownian
	// motion, whose kernel requires numerical quadrature per entry.
	FamilyRiemannLiouville Family = "rl-fbm"
)

// ParseFamily converts a string into a Family.
func ParseFamily(s string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case FamilyBrownian:
		return FamilyBrownian, nil
	case FamilyFBM:
		return FamilyFBM, nil
	case FamilyRiemannLiouville:
		return FamilyRiemannLiouville, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownFamily, s)
}

// UsesCovariance reports whether the family goes through covariance
// assembly and Cholesky factorization.
func (f Family) UsesCovariance() bool {
	return f == FamilyFBM || f == FamilyRiemannLiouville
}

// SamplePath is one realized path, index-aligned with the generating
// TimeGrid. Invariant: Path[0] == 0 exactly.
type SamplePath []float64

// Len returns the number of samples in the path.
func (p SamplePath) Len() int { return len(p) }

// PathBatch is a set of independently drawn paths sharing one generator
// configuration.
type PathBatch struct {
	Family Family       `json:"family"`
	Alpha  Hurst        `json:"alpha"`
	Paths  []SamplePath `json:"paths"`
}

// HurstEstimate is the per-path variance-ratio estimate offset; it centers
// near zero when the generator's empirical self-similarity matches the
// parameter it was built with.
type HurstEstimate struct {
	Offset    float64 `json:"offset"`
	Undefined bool    `json:"undefined"`
}

// HurstSummary aggregates estimate offsets across a batch. Degenerate
// estimates are counted but excluded from the mean and standard deviation.
type HurstSummary struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Defined    int     `json:"defined"`
	Degenerate int     `json:"degenerate"`
}

// StdErr returns the standard error of the mean offset.
func (s HurstSummary) StdErr() float64 {
	if s.Defined == 0 {
		return 0
	}
	return s.StdDev / math.Sqrt(float64(s.Defined))
}
