package tui

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/matrix-rain/internal/surface"
)

// Surface is a surface.Surface rendered by a Bubble Tea program. Writes go to
// a back buffer owned by the caller; Flush hands an immutable snapshot to the
// program.
type Surface struct {
	program *tea.Program
	geom    *geometry
	inputs  chan surface.Input
	done    chan struct{}
	runErr  error

	back [][]cell

	closeOnce    sync.Once
	closed       bool
	exitReported bool
}

// Open starts the Bubble Tea program on the alternate screen.
func Open(opts ...tea.ProgramOption) (*Surface, error) {
	s := &Surface{
		geom:   &geometry{},
		inputs: make(chan surface.Input, inputBufferSize),
		done:   make(chan struct{}),
	}
	model := NewModel(s.geom, s.inputs)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}, opts...)
	s.program = tea.NewProgram(model, opts...)

	// Run the program in the background; the animation owns this goroutine.
	go func() {
		defer close(s.done)
		if _, err := s.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			s.runErr = err
		}
	}()
	return s, nil
}

func (s *Surface) Size() (int, int) {
	return s.geom.load()
}

// PollInput drains keys reported by the program. Once the program has exited
// on its own it reports a single interrupt so the animation stops too.
func (s *Surface) PollInput() (surface.Input, bool) {
	select {
	case in := <-s.inputs:
		return in, true
	default:
	}
	select {
	case <-s.done:
		if !s.closed && !s.exitReported {
			s.exitReported = true
			return surface.Input{Name: "exit", Interrupt: true}, true
		}
	default:
	}
	return surface.Input{}, false
}

func (s *Surface) SetCell(row, col int, glyph rune, attr surface.Attr) error {
	if s.closed {
		return surface.ErrClosed
	}
	rows, cols := s.Size()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return surface.ErrOutOfBounds
	}
	s.fit(rows, cols)
	s.back[row][col] = cell{glyph: glyph, attr: attr, set: true}
	return nil
}

func (s *Surface) Clear() {
	for _, row := range s.back {
		clear(row)
	}
}

func (s *Surface) Flush() error {
	if s.closed {
		return surface.ErrClosed
	}
	s.fit(s.Size())
	select {
	case <-s.done:
		return surface.ErrClosed
	default:
	}
	s.program.Send(s.snapshot())
	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (s *Surface) Close() error {
	s.closeOnce.Do(func() {
		s.closed = true
		select {
		case <-s.done:
			return
		default:
		}
		s.program.Quit()
		select {
		case <-s.done:
		case <-time.After(closeTimeout):
			s.program.Kill()
			<-s.done
		}
	})
	return s.runErr
}

// fit resizes the back buffer to the viewport, dropping its content when the
// geometry changed.
func (s *Surface) fit(rows, cols int) {
	if len(s.back) == rows && (rows == 0 || len(s.back[0]) == cols) {
		return
	}
	s.back = make([][]cell, rows)
	for i := range s.back {
		s.back[i] = make([]cell, cols)
	}
}

func (s *Surface) snapshot() frameMsg {
	rows := make([][]cell, len(s.back))
	for i, row := range s.back {
		rows[i] = append([]cell(nil), row...)
	}
	return frameMsg{rows: rows}
}
