package testkit

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"powersim/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	counting *CountingRNGAdapter
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{counting: NewCountingRNGAdapter()}
}

// RNGAdapter returns a plain deterministic RNG adapter
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return &RNGAdapter{}
}

// CountingRNGAdapter returns the kit's draw-counting adapter, useful for
// asserting that validation failures happen before any random draw.
func (t *TestKit) CountingRNGAdapter() *CountingRNGAdapter {
	return t.counting
}

// RNGAdapter implements the RNGPort interface for testing
type RNGAdapter struct{}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}

// CountingRNGAdapter hands out generators whose underlying sources count
// every draw across all streams.
type CountingRNGAdapter struct {
	mu    sync.Mutex
	draws int64
}

func NewCountingRNGAdapter() *CountingRNGAdapter {
	return &CountingRNGAdapter{}
}

// SeededStream creates a deterministic generator backed by a counting source
func (c *CountingRNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return rand.New(&countingSource{src: rand.NewSource(seed).(rand.Source64), draws: &c.draws}), nil
}

// Draws reports the total number of draws taken from all handed-out streams
func (c *CountingRNGAdapter) Draws() int64 {
	return atomic.LoadInt64(&c.draws)
}

type countingSource struct {
	src   rand.Source64
	draws *int64
}

func (s *countingSource) Int63() int64 {
	atomic.AddInt64(s.draws, 1)
	return s.src.Int63()
}

func (s *countingSource) Uint64() uint64 {
	atomic.AddInt64(s.draws, 1)
	return s.src.Uint64()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
}
