package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBernoulliDegenerateProbabilities(t *testing.T) {
	s := NewMathSource(1)
	for i := 0; i < 100; i++ {
		assert.False(t, s.Bernoulli(0))
		assert.False(t, s.Bernoulli(-0.5))
		assert.True(t, s.Bernoulli(1))
		assert.True(t, s.Bernoulli(1.5))
	}
}

func TestBernoulliRoughFrequency(t *testing.T) {
	s := NewMathSource(12345)
	const n = 100000
	hits := 0
	for i := 0; i < n; i++ {
		if s.Bernoulli(0.25) {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/n, 0.01)
}

func TestUniformIntBounds(t *testing.T) {
	s := NewMathSource(42)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.UniformInt(0, 4)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	// Both endpoints must be reachable.
	assert.True(t, seen[0])
	assert.True(t, seen[4])

	assert.Equal(t, 3, s.UniformInt(3, 3))
	assert.Equal(t, 5, s.UniformInt(5, 2))
}

func TestSameSeedSameSequence(t *testing.T) {
	a := NewMathSource(7)
	b := NewMathSource(7)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Bernoulli(0.5), b.Bernoulli(0.5))
		assert.Equal(t, a.UniformInt(0, 9), b.UniformInt(0, 9))
	}
}
