package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidGridParameters = errors.New("invalid grid parameters")
	ErrInvalidHurst          = errors.New("hurst parameter outside (0,1)")
	ErrInvalidBatchSize      = errors.New("batch size must be positive")
	ErrUnknownFamily         = errors.New("unknown process family")

	// Numerical errors
	ErrNotPositiveDefinite      = errors.New("covariance matrix not positive definite")
	ErrQuadratureNonconvergence = errors.New("quadrature failed to converge within budget")
	ErrDegenerateEstimate       = errors.New("degenerate hurst estimate")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewGridParameterError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidGridParameters, reason)
}

func NewHurstError(value float64) error {
	return fmt.Errorf("%w: got %g", ErrInvalidHurst, value)
}

func NewFactorizationError(size int) error {
	return fmt.Errorf("%w: %dx%d matrix", ErrNotPositiveDefinite, size, size)
}

func NewQuadratureError(panels int, absErr float64) error {
	return fmt.Errorf("%w: %d panels, residual error %g", ErrQuadratureNonconvergence, panels, absErr)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidGridParameters) ||
		errors.Is(err, ErrInvalidHurst) ||
		errors.Is(err, ErrInvalidBatchSize) ||
		errors.Is(err, ErrUnknownFamily)
}

func IsNumericalError(err error) bool {
	return errors.Is(err, ErrNotPositiveDefinite) ||
		errors.Is(err, ErrQuadratureNonconvergence) ||
		errors.Is(err, ErrDegenerateEstimate)
}
