// Package rng abstracts the randomness consumed by the simulation so tests can
// substitute scripted outcomes. The simulation draws from a single Source,
// which makes a run reproducible given a fixed seed.
package rng

import (
	"math/rand"
	"time"
)

// Source supplies the two kinds of draws the simulation needs.
type Source interface {
	// Bernoulli reports a single yes/no trial with success probability p.
	Bernoulli(p float64) bool
	// UniformInt returns a uniform integer in [min, max].
	UniformInt(min, max int) int
}

// MathSource implements Source on top of math/rand.
type MathSource struct {
	r *rand.Rand
}

// NewMathSource returns a MathSource seeded with seed. A zero seed selects a
// time-based seed, so pass a nonzero value for reproducible runs.
func NewMathSource(seed int64) *MathSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MathSource{r: rand.New(rand.NewSource(seed))}
}

func (s *MathSource) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}

func (s *MathSource) UniformInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}
