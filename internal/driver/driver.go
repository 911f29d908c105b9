// Package driver runs the rain animation loop against a terminal surface.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/matrix-rain/internal/rain"
	"github.com/ensigniasec/matrix-rain/internal/render"
	"github.com/ensigniasec/matrix-rain/internal/surface"
)

// State is the driver lifecycle.
type State int

const (
	Initializing State = iota
	Running
	Terminating
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// frameDelayFactor scales 1/fps into the inter-frame delay. It is 0.3, not 1,
// so the animation runs faster than the nominal rate.
const frameDelayFactor = 0.3

// FrameDelay returns the sleep between frames for fps.
func FrameDelay(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(frameDelayFactor * float64(time.Second) / float64(fps))
}

// Stats summarizes a finished run.
type Stats struct {
	Frames  int
	Resizes int
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithRand replaces the random source used for both simulation and rendering.
func WithRand(rng rain.Rand) Option {
	return func(d *Driver) { d.rng = rng }
}

// Driver ties the stream simulation and the renderer to a surface.
// It is not safe for concurrent use.
type Driver struct {
	surface  surface.Surface
	seconds  int
	delay    time.Duration
	clock    Clock
	rng      rain.Rand
	renderer *render.Renderer
	session  *Session
	state    State
	stats    Stats
	log      *logrus.Entry

	buf []render.Instruction
}

// New returns a Driver that runs for seconds (forever when <= 0) at fps.
// The driver takes ownership of s and closes it when Run returns.
func New(s surface.Surface, seconds, fps int, opts ...Option) *Driver {
	d := &Driver{
		surface: s,
		seconds: seconds,
		delay:   FrameDelay(fps),
		clock:   realClock{},
		session: newSession(),
		state:   Initializing,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rain.NewRand(0)
	}
	d.renderer = render.New(d.rng)
	d.log = logrus.WithField("session", d.session.ID.String())
	return d
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Session returns the live session state.
func (d *Driver) Session() *Session { return d.session }

// Stats returns counters accumulated so far.
func (d *Driver) Stats() Stats { return d.stats }

// Init captures the initial geometry and builds the first stream set.
func (d *Driver) Init() {
	d.state = Initializing
	rows, cols := d.surface.Size()
	d.session.Rebuild(d.rng, render.Geometry{Rows: rows, Cols: cols})
	d.log.WithFields(logrus.Fields{
		"rows":    rows,
		"cols":    cols,
		"streams": len(d.session.Streams),
		"delay":   d.delay,
	}).Debug("animation initialized")
}

// Run initializes the session and renders frames until the duration elapses,
// ctx is cancelled, or the surface reports an interrupt key. An interrupt is a
// clean stop and returns a nil error. The surface is closed on every path.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	defer d.terminate()

	d.Init()
	d.state = Running
	start := d.clock.Now()
	for d.seconds <= 0 || d.clock.Now().Sub(start) < time.Duration(d.seconds)*time.Second {
		if ctx.Err() != nil {
			break
		}
		if interrupted := d.Step(); interrupted {
			d.log.Debug("interrupt key received")
			break
		}
		if err := d.clock.Sleep(ctx, d.delay); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				return d.stats, err
			}
			break
		}
	}
	return d.stats, nil
}

// Step renders one frame. It reports true when an interrupt key was drained,
// in which case no frame is drawn.
func (d *Driver) Step() bool {
	if d.drainInput() {
		return true
	}

	rows, cols := d.surface.Size()
	g := render.Geometry{Rows: rows, Cols: cols}
	switch {
	case g != d.session.Geometry:
		d.session.Rebuild(d.rng, g)
		d.surface.Clear()
		d.stats.Resizes++
		d.log.WithFields(logrus.Fields{"rows": rows, "cols": cols}).Debug("viewport resized")
	case render.SoftClear(d.session.Tick):
		d.surface.Clear()
	}

	d.buf = d.buf[:0]
	for _, s := range d.session.Streams {
		s.Advance(d.rng, g.Rows)
		d.buf = d.renderer.Stream(d.buf, s, g)
	}
	_ = render.Draw(d.surface, d.buf)
	_ = d.surface.Flush()

	d.session.Tick++
	d.stats.Frames++
	return false
}

// drainInput empties the pending input queue, stopping early at an interrupt,
// and reports whether one was seen.
func (d *Driver) drainInput() bool {
	for {
		in, ok := d.surface.PollInput()
		if !ok {
			return false
		}
		if in.Interrupt {
			return true
		}
	}
}

func (d *Driver) terminate() {
	d.state = Terminating
	if err := d.surface.Close(); err != nil {
		d.log.WithError(err).Debug("restoring terminal")
	}
	d.log.WithFields(logrus.Fields{
		"frames":  d.stats.Frames,
		"resizes": d.stats.Resizes,
	}).Debug("animation stopped")
}
