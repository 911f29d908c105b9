package driver

import (
	"github.com/google/uuid"

	"github.com/ensigniasec/matrix-rain/internal/rain"
	"github.com/ensigniasec/matrix-rain/internal/render"
)

// Session is the state of one run: geometry, streams and tick counter.
// Nothing in it outlives the process.
type Session struct {
	ID       uuid.UUID
	Geometry render.Geometry
	Streams  []*rain.Stream
	Tick     int
}

func newSession() *Session {
	return &Session{ID: uuid.New()}
}

// Rebuild discards every stream and creates a fresh set for g. Calling it with
// the current geometry leaves the geometry unchanged but re-randomizes all streams.
func (s *Session) Rebuild(rng rain.Rand, g render.Geometry) {
	s.Geometry = g
	s.Streams = rain.NewStreamSet(rng, g.Rows, g.Cols)
}
