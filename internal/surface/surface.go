// Package surface defines the terminal surface the animation draws on and
// provides the tcell backend plus a recording surface for tests.
package surface

import "errors"

// Sentinel errors reported by surfaces.
var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrClosed      = errors.New("surface closed")
	ErrTransient   = errors.New("transient terminal error")
)

// Attr selects one of the two registered tones and its emphasis.
type Attr int

const (
	// AttrHead is the secondary tone in bold, used for stream heads.
	AttrHead Attr = iota
	// AttrBright is the secondary tone without emphasis.
	AttrBright
	// AttrDim is the primary tone, dimmed, used for trails.
	AttrDim
)

func (a Attr) String() string {
	switch a {
	case AttrHead:
		return "head"
	case AttrBright:
		return "bright"
	case AttrDim:
		return "dim"
	default:
		return "unknown"
	}
}

// Input is one drained input event.
type Input struct {
	Name      string
	Interrupt bool
}

// Surface is the terminal the animation renders to. Implementations own the
// terminal mode for their lifetime; Close restores it.
type Surface interface {
	// Size returns the current viewport geometry.
	Size() (rows, cols int)
	// PollInput returns a pending input event without blocking.
	PollInput() (Input, bool)
	// SetCell writes a styled glyph. Coordinates outside the viewport return ErrOutOfBounds.
	SetCell(row, col int, glyph rune, attr Attr) error
	// Clear blanks the whole viewport.
	Clear()
	// Flush presents everything written since the last flush.
	Flush() error
	// Close restores the terminal to its original mode.
	Close() error
}
