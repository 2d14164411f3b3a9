package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource is the only source of randomness the engine uses. *rand.Rand
// satisfies it. Implementations are not required to be goroutine-safe; use
// one per request.
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// NewSeededRNG returns a reproducible source: the same seed yields the same
// stream.
func NewSeededRNG(seed int64) RandomSource {
	return NewStreamRNG(seed, 0)
}

// NewStreamRNG returns the numbered stream of seed. Distinct streams of one
// seed are independent of each other.
func NewStreamRNG(seed int64, stream uint64) RandomSource {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// intBetween draws uniformly from [lo, hi].
func intBetween(rng RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

func floatBetween(rng RandomSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
