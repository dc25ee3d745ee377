package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator owned by
	// a single repetition. Isolating each repetition's draws behind its own
	// generator keeps parallel runs bit-identical to sequential ones.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
