package rng

import (
	"context"
	"math/rand"
)

// Adapter implements ports.RNGPort with deterministic derived streams.
type Adapter struct{}

// New creates an RNG adapter.
func New() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed + int64(hashString(name)))), nil
}

// Stream creates a deterministic RNG stream for a specific draw within a unit.
// The seed mixes unitName and the draw index so that identical
// (seed, unit, draw) tuples always reproduce the same variates, independent
// of how draws are scheduled across goroutines or which sweep owns them.
func (a *Adapter) Stream(ctx context.Context, unitName string, draw int, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if unitName != "" {
		seed += int64(hashString(unitName))
	}
	seed += int64(draw) * 0x9e3779b1
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding (djb2)
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
