package rng

import (
	"context"
	"math/rand"

	"powersim/ports"
)

// Adapter implements ports.RNGPort with math/rand sources. Every stream is a
// freshly seeded generator, never shared, so concurrent repetitions cannot
// interleave draws.
type Adapter struct{}

// NewAdapter creates the default RNG adapter
func NewAdapter() ports.RNGPort {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}
