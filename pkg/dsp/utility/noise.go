// Package utility provides common DSP utility functions and processors.
package utility

import (
	"math/rand"
	"time"
)

// NoiseGenerator produces uniform white noise in [-1, 1).
type NoiseGenerator struct {
	seed int64
	rand *rand.Rand
}

// NewNoiseGenerator creates a generator seeded from the clock.
func NewNoiseGenerator() *NoiseGenerator {
	return NewSeededNoiseGenerator(time.Now().UnixNano())
}

// NewSeededNoiseGenerator creates a generator whose output is reproducible.
func NewSeededNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the sequence started from.
func (n *NoiseGenerator) Seed() int64 {
	return n.seed
}

// Reset restarts the sequence from the current seed.
func (n *NoiseGenerator) Reset() {
	n.rand.Seed(n.seed)
}

// Next generates the next noise sample.
func (n *NoiseGenerator) Next() float32 {
	return n.rand.Float32()*2 - 1
}
