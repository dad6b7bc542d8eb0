package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededIsReproducible(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededBounds(t *testing.T) {
	s := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		n := s.Intn(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)

		f := s.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestScriptIntnMidpoint(t *testing.T) {
	s := &Script{}
	assert.Equal(t, 0, s.Intn(1))
	assert.Equal(t, 2, s.Intn(5))
	assert.Equal(t, 50, s.Intn(100))
}

func TestScriptFloatQueue(t *testing.T) {
	s := &Script{Floats: []float64{0.1, 0.9}, Fallback: 0.5}

	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.5, s.Float64())
	assert.Equal(t, 0.5, s.Float64())
}
