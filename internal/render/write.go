package render

import (
	"github.com/ensigniasec/matrix-rain/internal/surface"
)

// WriteResult is the outcome of one best-effort cell write.
type WriteResult struct {
	Instruction Instruction
	Err         error
}

// Dropped reports whether the surface rejected the write.
func (w WriteResult) Dropped() bool { return w.Err != nil }

// Write issues a single instruction to the surface.
func Write(s surface.Surface, in Instruction) WriteResult {
	return WriteResult{Instruction: in, Err: s.SetCell(in.Row, in.Col, in.Glyph, in.Attr)}
}

// Draw writes every instruction to the surface and returns how many were
// dropped. A failed write never stops the frame.
func Draw(s surface.Surface, ins []Instruction) int {
	dropped := 0
	for _, in := range ins {
		// Dropped writes are discarded; the next frame redraws the cell.
		if res := Write(s, in); res.Dropped() {
			dropped++
		}
	}
	return dropped
}
