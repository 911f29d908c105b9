// Package render turns stream state into per-cell draw instructions.
package render

import (
	"math"

	"github.com/ensigniasec/matrix-rain/internal/rain"
	"github.com/ensigniasec/matrix-rain/internal/surface"
)

const (
	ringRadiusFactor = 0.35
	ringBandFactor   = 0.08
	ringBrightChance = 0.6
	glyphSplit       = 0.5

	// SoftClearInterval is the number of ticks between full-viewport clears.
	SoftClearInterval = 12
)

// Glyphs drawn by the rain.
const (
	GlyphOne  = '1'
	GlyphZero = '0'
)

// Geometry is the viewport size in cells.
type Geometry struct {
	Rows int
	Cols int
}

// Center returns the viewport center using integer division.
func (g Geometry) Center() (row, col int) {
	return g.Rows / 2, g.Cols / 2
}

// RingRadius is the radius of the highlight ring for a viewport.
func RingRadius(g Geometry) int {
	return int(float64(min(g.Rows, g.Cols)) * ringRadiusFactor)
}

// InRing reports whether the cell at (row, col) lies on the highlight ring.
func InRing(g Geometry, row, col int) bool {
	radius := RingRadius(g)
	cy, cx := g.Center()
	dist := math.Hypot(float64(col-cx), float64(row-cy))
	return math.Abs(dist-float64(radius)) < float64(radius)*ringBandFactor
}

// SoftClear reports whether the viewport is cleared before drawing tick.
func SoftClear(tick int) bool {
	return tick%SoftClearInterval == 0
}

// Instruction is a single cell draw.
type Instruction struct {
	Row   int
	Col   int
	Glyph rune
	Attr  surface.Attr
}

// Renderer decides glyph and attribute for every visible cell of a stream.
// All of its randomness comes from rng.
type Renderer struct {
	rng rain.Rand
}

// New returns a Renderer drawing from rng.
func New(rng rain.Rand) *Renderer {
	return &Renderer{rng: rng}
}

// Stream appends the instructions for the visible cells of s to dst. At most
// s.Length instructions are produced and none fall outside [0, g.Rows).
func (r *Renderer) Stream(dst []Instruction, s *rain.Stream, g Geometry) []Instruction {
	head := int(math.Floor(s.Y))
	for i := range s.Length {
		row := head - i
		if row < 0 || row >= g.Rows {
			continue
		}
		glyph := GlyphZero
		if r.rng.Float64() > glyphSplit {
			glyph = GlyphOne
		}
		dst = append(dst, Instruction{Row: row, Col: s.X, Glyph: glyph, Attr: r.attr(i, g, row, s.X)})
	}
	return dst
}

func (r *Renderer) attr(i int, g Geometry, row, col int) surface.Attr {
	switch {
	case i == 0:
		return surface.AttrHead
	case InRing(g, row, col) && r.rng.Float64() < ringBrightChance:
		return surface.AttrBright
	default:
		return surface.AttrDim
	}
}
