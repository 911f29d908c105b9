//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/matrix-rain/internal/rain"
	"github.com/ensigniasec/matrix-rain/internal/surface"
)

// scriptedRand replays Float64 values in order and repeats the last one.
type scriptedRand struct {
	floats []float64
	i      int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[min(r.i, len(r.floats)-1)]
	r.i++
	return v
}

func (r *scriptedRand) IntN(int) int { return 0 }

func TestRingRadius(t *testing.T) {
	t.Parallel()

	tests := []struct {
		g    Geometry
		want int
	}{
		{g: Geometry{Rows: 24, Cols: 80}, want: 8},
		{g: Geometry{Rows: 100, Cols: 40}, want: 14},
		{g: Geometry{Rows: 2, Cols: 2}, want: 0},
		{g: Geometry{Rows: 0, Cols: 0}, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RingRadius(tt.g), "%+v", tt.g)
	}
}

func TestInRing(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 40, Cols: 40} // center (20, 20), radius 14, band < 1.12
	assert.True(t, InRing(g, 20, 34))
	assert.True(t, InRing(g, 6, 20))
	assert.False(t, InRing(g, 20, 20))
	assert.False(t, InRing(g, 20, 36))

	assert.False(t, InRing(Geometry{Rows: 2, Cols: 2}, 1, 1), "zero radius has no ring")
}

func TestInRing_SymmetricUnderRotationOnSquareViewport(t *testing.T) {
	t.Parallel()

	for _, n := range []int{20, 31, 64} {
		g := Geometry{Rows: n, Cols: n}
		cy, cx := g.Center()
		for row := range n {
			for col := range n {
				dy, dx := row-cy, col-cx
				rRow, rCol := cy+dx, cx-dy
				if rRow < 0 || rRow >= n || rCol < 0 || rCol >= n {
					continue
				}
				require.Equal(t, InRing(g, row, col), InRing(g, rRow, rCol),
					"n=%d (%d,%d) vs (%d,%d)", n, row, col, rRow, rCol)
			}
		}
	}
}

func TestSoftClear(t *testing.T) {
	t.Parallel()

	for _, tick := range []int{0, 12, 24, 120} {
		assert.True(t, SoftClear(tick), "tick %d", tick)
	}
	for _, tick := range []int{1, 11, 13, 23} {
		assert.False(t, SoftClear(tick), "tick %d", tick)
	}
}

func TestStream_HeadIsBoldAndTrailFollows(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 24, Cols: 80}
	r := New(&scriptedRand{floats: []float64{0.9}})
	s := &rain.Stream{X: 1, Y: 5.7, Speed: 1, Length: 10}

	ins := r.Stream(nil, s, g)

	require.Len(t, ins, 6, "rows 5..0 are visible")
	for i, in := range ins {
		assert.Equal(t, 5-i, in.Row)
		assert.Equal(t, 1, in.Col)
		assert.Equal(t, rune(GlyphOne), in.Glyph)
	}
	assert.Equal(t, surface.AttrHead, ins[0].Attr)
	for _, in := range ins[1:] {
		assert.Equal(t, surface.AttrDim, in.Attr)
	}
}

func TestStream_GlyphSplit(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 24, Cols: 80}
	s := &rain.Stream{X: 0, Y: 3, Length: 10}

	ins := New(&scriptedRand{floats: []float64{0.5}}).Stream(nil, s, g)
	require.NotEmpty(t, ins)
	for _, in := range ins {
		assert.Equal(t, rune(GlyphZero), in.Glyph, "exactly 0.5 draws a zero")
	}
}

func TestStream_RingCellsBrightenOnSuccessfulDraw(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 40, Cols: 40}
	// Column 20 crosses the ring at row 6; the head sits at row 7.
	s := &rain.Stream{X: 20, Y: 7, Length: 2}

	// Draws: head glyph, trail glyph, ring dice.
	ins := New(&scriptedRand{floats: []float64{0.9, 0.9, 0.1}}).Stream(nil, s, g)
	require.Len(t, ins, 2)
	assert.Equal(t, surface.AttrHead, ins[0].Attr)
	assert.Equal(t, surface.AttrBright, ins[1].Attr)

	ins = New(&scriptedRand{floats: []float64{0.9, 0.9, 0.6}}).Stream(nil, s, g)
	require.Len(t, ins, 2)
	assert.Equal(t, surface.AttrDim, ins[1].Attr, "a draw of 0.6 misses the 0.6 chance")
}

func TestStream_NegativeHeadIsNotVisible(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 24, Cols: 80}
	s := &rain.Stream{X: 0, Y: -0.5, Length: 10}
	assert.Empty(t, New(rain.NewRand(1)).Stream(nil, s, g))
}

func TestStream_BoundedByLengthAndViewport(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 30, Cols: 25}
	rng := rain.NewRand(11)
	r := New(rng)
	streams := rain.NewStreamSet(rng, g.Rows, g.Cols)

	for range 500 {
		for _, s := range streams {
			s.Advance(rng, g.Rows)
			ins := r.Stream(nil, s, g)
			require.LessOrEqual(t, len(ins), s.Length)
			for _, in := range ins {
				require.GreaterOrEqual(t, in.Row, 0)
				require.Less(t, in.Row, g.Rows)
				require.Equal(t, s.X, in.Col)
			}
		}
	}
}

// frame simulates n ticks from a seed and returns the instructions of the last one.
func frame(seed uint64, g Geometry, n int) []Instruction {
	rng := rain.NewRand(seed)
	r := New(rng)
	streams := rain.NewStreamSet(rng, g.Rows, g.Cols)
	var ins []Instruction
	for range n {
		ins = ins[:0]
		for _, s := range streams {
			s.Advance(rng, g.Rows)
			ins = r.Stream(ins, s, g)
		}
	}
	return ins
}

func TestStream_SeededFramesAreReproducible(t *testing.T) {
	t.Parallel()

	g := Geometry{Rows: 24, Cols: 40}
	golden := frame(2024, g, 50)
	require.NotEmpty(t, golden)
	assert.Equal(t, golden, frame(2024, g, 50))
	assert.NotEqual(t, golden, frame(2025, g, 50))
}

func TestDraw_SwallowsFailedWrites(t *testing.T) {
	t.Parallel()

	rec := surface.NewRecorder(5, 5)
	ins := []Instruction{
		{Row: 0, Col: 0, Glyph: GlyphOne, Attr: surface.AttrHead},
		{Row: 9, Col: 0, Glyph: GlyphOne, Attr: surface.AttrDim},
		{Row: 1, Col: 0, Glyph: GlyphZero, Attr: surface.AttrDim},
	}

	assert.Equal(t, 1, Draw(rec, ins))
	require.NoError(t, rec.Flush())
	assert.Len(t, rec.Frames()[0].Cells, 2, "writes after a failed one still land")

	rec.FailWrites = true
	assert.Equal(t, len(ins), Draw(rec, ins))
}

func TestWrite_ResultCarriesInstruction(t *testing.T) {
	t.Parallel()

	rec := surface.NewRecorder(1, 1)
	in := Instruction{Row: 3, Col: 3, Glyph: GlyphOne, Attr: surface.AttrBright}
	res := Write(rec, in)
	assert.True(t, res.Dropped())
	assert.ErrorIs(t, res.Err, surface.ErrOutOfBounds)
	assert.Equal(t, in, res.Instruction)
}
