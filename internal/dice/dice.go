// Package dice is the randomness source for the game engine. Everything that
// rolls — damage variance, flee checks, encounter spawns — goes through a
// Source so a session can be replayed from a seed.
package dice

import "math/rand"

// Source provides the two rolls the engine needs.
type Source interface {
	// Intn returns a random int in [0, n). n must be > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

type seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a Source backed by math/rand with the given seed. Game
// randomness, not security critical.
func NewSeeded(seed int64) Source {
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Intn(n int) int     { return s.rng.Intn(n) }
func (s *seeded) Float64() float64   { return s.rng.Float64() }

// Script is a deterministic Source for tests and scripted playthroughs.
// Intn returns the midpoint of the range (zero variance for symmetric
// draws); Float64 pops queued values and then repeats Fallback.
type Script struct {
	Floats   []float64
	Fallback float64
}

func (s *Script) Intn(n int) int { return n / 2 }

func (s *Script) Float64() float64 {
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	return s.Fallback
}
