package surface

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	inputBufferSize = 64
	finiTimeout     = 100 * time.Millisecond
)

// Two tones: green (primary, dim-capable) and white (secondary, bold-capable).
//
//nolint:gochecknoglobals // Immutable style table.
var (
	primaryTone   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorReset)
	secondaryTone = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorReset)
)

// TcellStyle maps an Attr onto the registered tcell tones.
func TcellStyle(a Attr) tcell.Style {
	switch a {
	case AttrHead:
		return secondaryTone.Bold(true)
	case AttrBright:
		return secondaryTone
	default:
		return primaryTone.Dim(true)
	}
}

// Tcell is a Surface backed by a tcell screen.
type Tcell struct {
	screen tcell.Screen
	events chan Input
	done   chan struct{}

	closeOnce sync.Once
	closed    bool
}

// OpenTcell puts the terminal into raw, cursor-hidden rendering mode.
func OpenTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTcell(screen)
}

// NewTcell initializes the given screen and starts draining its events.
func NewTcell(screen tcell.Screen) (*Tcell, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset))
	screen.Clear()

	t := &Tcell{
		screen: screen,
		events: make(chan Input, inputBufferSize),
		done:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// pollEvents reads events until the screen is finalized, at which point
// PollEvent returns nil.
func (t *Tcell) pollEvents() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		in := Input{Name: key.Name(), Interrupt: key.Key() == tcell.KeyCtrlC}
		select {
		case t.events <- in:
		default:
			// Input has no effect on the animation; overflow is dropped.
		}
	}
}

func (t *Tcell) Size() (int, int) {
	w, h := t.screen.Size()
	return h, w
}

func (t *Tcell) PollInput() (Input, bool) {
	select {
	case in := <-t.events:
		return in, true
	default:
		return Input{}, false
	}
}

func (t *Tcell) SetCell(row, col int, glyph rune, attr Attr) error {
	if t.closed {
		return ErrClosed
	}
	w, h := t.screen.Size()
	if row < 0 || row >= h || col < 0 || col >= w {
		return ErrOutOfBounds
	}
	t.screen.SetContent(col, row, glyph, nil, TcellStyle(attr))
	return nil
}

func (t *Tcell) Clear() {
	if t.closed {
		return
	}
	t.screen.Clear()
}

func (t *Tcell) Flush() error {
	if t.closed {
		return ErrClosed
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (t *Tcell) Close() error {
	t.closeOnce.Do(func() {
		t.closed = true
		t.screen.Fini()
		select {
		case <-t.done:
		case <-time.After(finiTimeout):
		}
	})
	return nil
}
