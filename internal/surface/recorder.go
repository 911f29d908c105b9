package surface

import "sync"

// Cell is one successful write recorded by a Recorder.
type Cell struct {
	Row   int
	Col   int
	Glyph rune
	Attr  Attr
}

// Frame is everything a Recorder saw between two flushes.
type Frame struct {
	Rows   int
	Cols   int
	Clears int
	Cells  []Cell
}

type resize struct {
	afterFlush int
	rows, cols int
}

// Recorder is an in-memory Surface that records every clear and write per
// frame. It backs tests and headless runs.
type Recorder struct {
	mu sync.Mutex

	rows, cols int
	pending    Frame
	frames     []Frame
	inputs     []Input
	resizes    []resize

	// FailWrites makes every SetCell fail, as a flaky terminal would.
	FailWrites bool
	// FailFlush makes every Flush fail.
	FailFlush bool

	closed bool
}

// NewRecorder returns a Recorder with the given geometry.
func NewRecorder(rows, cols int) *Recorder {
	return &Recorder{rows: rows, cols: cols}
}

// Resize changes the geometry reported by Size.
func (r *Recorder) Resize(rows, cols int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows, r.cols = rows, cols
}

// ResizeAfter schedules a geometry change once n frames have been flushed.
func (r *Recorder) ResizeAfter(n, rows, cols int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizes = append(r.resizes, resize{afterFlush: n, rows: rows, cols: cols})
}

// PushInput queues an input event for PollInput.
func (r *Recorder) PushInput(in Input) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, in)
}

// Frames returns the flushed frames.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows, r.cols
}

func (r *Recorder) PollInput() (Input, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.inputs) == 0 {
		return Input{}, false
	}
	in := r.inputs[0]
	r.inputs = r.inputs[1:]
	return in, true
}

func (r *Recorder) SetCell(row, col int, glyph rune, attr Attr) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if r.FailWrites {
		return ErrTransient
	}
	if row < 0 || row >= r.rows || col < 0 || col >= r.cols {
		return ErrOutOfBounds
	}
	r.pending.Cells = append(r.pending.Cells, Cell{Row: row, Col: col, Glyph: glyph, Attr: attr})
	return nil
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Clears++
}

func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.pending.Rows, r.pending.Cols = r.rows, r.cols
	r.frames = append(r.frames, r.pending)
	r.pending = Frame{}

	remaining := r.resizes[:0]
	for _, rs := range r.resizes {
		if len(r.frames) >= rs.afterFlush {
			r.rows, r.cols = rs.rows, rs.cols
			continue
		}
		remaining = append(remaining, rs)
	}
	r.resizes = remaining

	if r.FailFlush {
		return ErrTransient
	}
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
