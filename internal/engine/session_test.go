package engine

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CrankHint/internal/model"
)

// movingSource counts reads and serves whatever targets are set.
type movingSource struct {
	targets []model.TargetPoint
	reads   int
}

func (m *movingSource) Targets() []model.TargetPoint {
	m.reads++
	return m.targets
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSession_CachesPlacement(t *testing.T) {
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	assert.False(t, s.Active())
	assert.Empty(t, s.ID())

	first := s.Placements()
	assert.True(t, s.Active())
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, []model.Point{{X: 72, Y: 24}, {X: 272, Y: 24}, {X: 224, Y: 216}}, first)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Placements())
	}
	assert.Equal(t, 1, src.reads)
	assert.Equal(t, 1, s.Activations())
}

func TestSession_IgnoresMovementWhileActive(t *testing.T) {
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	first := s.Placements()
	src.targets = foldedTargets()

	assert.Equal(t, first, s.Placements())
}

func TestSession_InvalidateRecomputes(t *testing.T) {
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	s.Placements()
	firstID := s.ID()

	src.targets = foldedTargets()
	s.Invalidate()
	assert.False(t, s.Active())
	assert.Empty(t, s.ID())

	got := s.Placements()
	assert.Equal(t, []model.Point{{X: 200, Y: 24}, {X: 272, Y: 24}, {X: 208, Y: 216}}, got)
	assert.NotEqual(t, firstID, s.ID())
	assert.Equal(t, 2, src.reads)
	assert.Equal(t, 2, s.Activations())
}

func TestSession_InvalidateWhenEmpty(t *testing.T) {
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	s.Invalidate()
	s.Invalidate()
	assert.False(t, s.Active())
	assert.Equal(t, 0, src.reads)
}

func TestSession_ObserveRoles(t *testing.T) {
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	assert.False(t, s.ObserveRoles(4), "an empty session has nothing to invalidate")

	s.Placements()
	assert.False(t, s.ObserveRoles(3))
	assert.True(t, s.Active())

	src.targets = actionTargets()
	assert.True(t, s.ObserveRoles(4))
	assert.False(t, s.Active())

	assert.Len(t, s.Placements(), 4)
}

func TestSession_PlacementSetIsCopy(t *testing.T) {
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	set := s.PlacementSet()
	set.Slots[0].X = -1
	set.Order[0] = 99

	again := s.PlacementSet()
	assert.Equal(t, 72, again.Slots[0].X)
	assert.Equal(t, model.Role(1), again.Order[0])
}

func TestSession_TargetFunc(t *testing.T) {
	calls := 0
	src := TargetFunc(func() []model.TargetPoint {
		calls++
		return actionTargets()
	})
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(quietLogger()))

	set := s.PlacementSet()
	assert.Equal(t, 43120, set.Cost)
	s.Placements()
	assert.Equal(t, 1, calls)
}

func TestSession_LogsActivity(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	src := &movingSource{targets: testTargets()}
	s := NewSession(New(model.DefaultGeometry()), src, WithLogger(logger))

	s.Placements()
	id := s.ID()
	s.Invalidate()

	out := buf.String()
	assert.Contains(t, out, "overlay session started")
	assert.Contains(t, out, "overlay session invalidated")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "cost=20192")
}

func TestSession_PanicsOnImpossibleGeometry(t *testing.T) {
	geo := model.DefaultGeometry()
	geo.TargetClearance = 1000
	src := &movingSource{targets: testTargets()}
	s := NewSession(New(geo), src, WithLogger(quietLogger()))

	require.Panics(t, func() { s.Placements() })
	assert.False(t, s.Active())
}
