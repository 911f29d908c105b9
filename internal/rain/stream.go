package rain

import (
	"math/rand/v2"
)

// Package-level constants for stream randomization ranges.
const (
	minSpeed   = 0.35
	speedRange = 0.8 // speed is drawn from [minSpeed, minSpeed+speedRange)

	minLength      = 10
	minLengthUpper = 14

	// StreamsPerColumn doubles the rain density at every horizontal position.
	StreamsPerColumn = 2
)

// Rand is the single source of randomness for the simulation and the renderer.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a Rand seeded with seed, or from entropy when seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // visual effect, not crypto
	}
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // visual effect, not crypto
}

// Stream is one falling trail at a fixed horizontal position.
type Stream struct {
	X      int
	Y      float64
	Speed  float64
	Length int
}

// NewStream creates a stream at column x with randomized fall state.
func NewStream(rng Rand, x, height int) *Stream {
	s := &Stream{X: x}
	s.Reset(rng, height)
	return s
}

// Reset re-randomizes the head position, speed and trail length in place.
func (s *Stream) Reset(rng Rand, height int) {
	if height < 0 {
		height = 0
	}
	s.Y = float64(rng.IntN(height+1) - height)
	s.Speed = minSpeed + rng.Float64()*speedRange
	s.Length = minLength + rng.IntN(MaxLength(height)-minLength+1)
}

// Advance moves the head down by Speed and recycles the stream once its tail
// has left the viewport. It must be called exactly once per tick.
func (s *Stream) Advance(rng Rand, height int) {
	s.Y += s.Speed
	if s.Tail() > float64(height) {
		s.Reset(rng, height)
	}
}

// Tail returns the vertical position of the end of the trail.
func (s *Stream) Tail() float64 {
	return s.Y - float64(s.Length)
}

// MaxLength is the largest trail length a stream may draw for a viewport height.
func MaxLength(height int) int {
	return max(minLengthUpper, height/2)
}

// MinLength is the shortest trail length any stream carries.
func MinLength() int { return minLength }

// NewStreamSet builds StreamsPerColumn streams for every column of a viewport.
// Streams are ordered by column, so index i belongs to column i/StreamsPerColumn.
func NewStreamSet(rng Rand, rows, cols int) []*Stream {
	if cols <= 0 {
		return nil
	}
	streams := make([]*Stream, 0, cols*StreamsPerColumn)
	for x := range cols {
		for range StreamsPerColumn {
			streams = append(streams, NewStream(rng, x, rows))
		}
	}
	return streams
}
