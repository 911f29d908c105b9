package tui

import "github.com/ensigniasec/matrix-rain/internal/surface"

// Message types for Bubble Tea update loop.

// cell is one position of a frame snapshot. Unset cells render as blanks.
type cell struct {
	glyph rune
	attr  surface.Attr
	set   bool
}

// frameMsg carries an immutable snapshot of a flushed frame.
type frameMsg struct {
	rows [][]cell
}
