package engine

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/piwi3910/CrankHint/internal/model"
)

// TargetSource supplies the current screen-projected targets in role order.
type TargetSource interface {
	Targets() []model.TargetPoint
}

// TargetFunc adapts a plain function to TargetSource.
type TargetFunc func() []model.TargetPoint

// Targets calls f.
func (f TargetFunc) Targets() []model.TargetPoint {
	return f()
}

// Session caches one placement set between invalidations.
//
// The first call to Placements after creation or Invalidate reads the targets
// and runs the search. Later calls return the same positions no matter how
// the targets move, so overlays stay put while help is shown. A Session is
// not safe for concurrent use.
type Session struct {
	placer *Placer
	source TargetSource
	logger *log.Logger

	current     *model.PlacementSet
	id          string
	activations int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for session activity. Activations and
// invalidations are logged at debug level.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates an empty session that places targets from source.
func NewSession(placer *Placer, source TargetSource, opts ...SessionOption) *Session {
	s := &Session{
		placer: placer,
		source: source,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Placements returns the overlay positions in role order, computing them if
// the session is empty.
func (s *Session) Placements() []model.Point {
	return s.PlacementSet().Points()
}

// PlacementSet returns the cached placement set, computing it if the session
// is empty. The returned slots are a copy.
func (s *Session) PlacementSet() model.PlacementSet {
	if s.current == nil {
		s.activate()
	}
	set := *s.current
	set.Slots = append([]model.PlacementSlot(nil), s.current.Slots...)
	set.Order = append([]model.Role(nil), s.current.Order...)
	return set
}

func (s *Session) activate() {
	start := time.Now()
	targets := s.source.Targets()
	set := s.placer.Place(targets)

	s.current = &set
	s.id = uuid.New().String()[:8]
	s.activations++

	s.logger.Debug("overlay session started",
		"session", s.id,
		"roles", len(set.Slots),
		"order", set.Order,
		"cost", set.Cost,
		"elapsed", time.Since(start),
	)
}

// Active reports whether a placement set is cached.
func (s *Session) Active() bool {
	return s.current != nil
}

// Invalidate drops the cached placement set. The next Placements call
// recomputes it from fresh targets.
func (s *Session) Invalidate() {
	if s.current == nil {
		return
	}
	s.logger.Debug("overlay session invalidated", "session", s.id)
	s.current = nil
	s.id = ""
}

// ObserveRoles invalidates the session when the number of active roles no
// longer matches the cached set, e.g. when an action target appears or the
// held object is dropped. It reports whether the session was invalidated.
func (s *Session) ObserveRoles(n int) bool {
	if s.current == nil || len(s.current.Slots) == n {
		return false
	}
	s.logger.Debug("overlay roles changed", "session", s.id, "cached", len(s.current.Slots), "now", n)
	s.Invalidate()
	return true
}

// ID returns the identifier of the active session, or "" when empty.
func (s *Session) ID() string {
	return s.id
}

// Activations returns how many times the session has computed a placement.
func (s *Session) Activations() int {
	return s.activations
}
