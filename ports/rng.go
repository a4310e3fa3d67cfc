package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific draw within a
	// unit of work. Deriving one stream per path makes batch sampling safe to
	// parallelize: the values observed downstream cannot depend on scheduling,
	// only on (seed, unit, draw).
	Stream(ctx context.Context, unitName string, draw int, baseSeed int64) (*rand.Rand, error)
}
