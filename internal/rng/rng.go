// Package rng provides the seeded pseudo-random stream shared by the spawner
// and the owl. Identical seeds produce identical draw sequences.
package rng

import (
	"math/rand"
	"time"
)

// Stream is a deterministic random source. It is not safe for concurrent use;
// the simulation is single-threaded.
type Stream struct {
	seed int64
	r    *rand.Rand
}

// New creates a stream from the given seed.
func New(seed int64) *Stream {
	return &Stream{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay RNG, not crypto
	}
}

// Seed returns the seed the stream was last (re)seeded with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Reseed restarts the stream from a new seed.
func (s *Stream) Reseed(seed int64) {
	s.seed = seed
	s.r = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay RNG, not crypto
}

// Intn returns a value in [0, n). Returns 0 for n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// Float64 returns a value in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Range returns a value in [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

// DailySeed derives the daily-challenge seed from the UTC calendar date,
// formatted as the integer YYYYMMDD.
func DailySeed(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return int64(y*10000 + int(m)*100 + d)
}

// TimeSeed returns a seed based on the current time.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}
