package ui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/model"
)

// Board holds the targets edited in the preview and the overlay session
// that places them. Editing a target leaves the cached overlays where they
// are, the same way the game does, unless Live is set.
type Board struct {
	placer  *engine.Placer
	session *engine.Session
	history *History

	targets []model.TargetPoint // always MaxRoles entries
	action  bool

	// Live invalidates the session after every edit so overlays follow the targets.
	Live bool
}

// NewBoard creates a board showing the default arm pose without an action target.
func NewBoard(geo model.Geometry, mode model.SearchMode, logger *log.Logger) *Board {
	b := &Board{
		placer:  &engine.Placer{Geometry: geo, Mode: mode},
		history: NewHistory(),
		targets: model.NewTargets(
			model.Point{X: 100, Y: 100},
			model.Point{X: 300, Y: 100},
			model.Point{X: 300, Y: 180},
			model.Point{X: 200, Y: 140},
		),
	}
	var opts []engine.SessionOption
	if logger != nil {
		opts = append(opts, engine.WithLogger(logger))
	}
	b.session = engine.NewSession(b.placer, engine.TargetFunc(b.Targets), opts...)
	return b
}

// Targets returns the active targets in role order.
func (b *Board) Targets() []model.TargetPoint {
	n := model.MaxRoles - 1
	if b.action {
		n = model.MaxRoles
	}
	cp := make([]model.TargetPoint, n)
	copy(cp, b.targets)
	return cp
}

// Target returns the stored position for a role, active or not.
func (b *Board) Target(role model.Role) model.Point {
	return b.targets[role-1].Point()
}

// Action reports whether the role 4 target is active.
func (b *Board) Action() bool {
	return b.action
}

// Geometry returns the geometry the board places against.
func (b *Board) Geometry() model.Geometry {
	return b.placer.Geometry
}

// Mode returns the search mode.
func (b *Board) Mode() model.SearchMode {
	return b.placer.Mode
}

// SetTarget moves one target.
func (b *Board) SetTarget(role model.Role, p model.Point) error {
	if role < 1 || int(role) > model.MaxRoles {
		return fmt.Errorf("unknown role %d", role)
	}
	if !b.placer.Geometry.Contains(p) {
		return fmt.Errorf("%s target (%d,%d) is off the %dx%d screen",
			role, p.X, p.Y, b.placer.Geometry.ScreenWidth, b.placer.Geometry.ScreenHeight)
	}
	if b.targets[role-1].Point() == p {
		return nil
	}
	b.history.Push(b.snapshot("Move " + role.String()))
	b.targets[role-1].X = p.X
	b.targets[role-1].Y = p.Y
	b.edited()
	return nil
}

// SetAction shows or hides the role 4 target. The session notices the
// changed role count and drops its overlays.
func (b *Board) SetAction(on bool) {
	if b.action == on {
		return
	}
	label := "Hide Action"
	if on {
		label = "Show Action"
	}
	b.history.Push(b.snapshot(label))
	b.action = on
	b.edited()
}

// LoadScenario replaces the targets with a scenario's. A three-target
// scenario keeps the stored action position but hides it.
func (b *Board) LoadScenario(sc model.Scenario) error {
	if err := model.ValidateTargets(sc.Targets); err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	for _, t := range sc.Targets {
		if !b.placer.Geometry.Contains(t.Point()) {
			return fmt.Errorf("scenario %q: %s target (%d,%d) is off the screen", sc.Name, t.Role, t.X, t.Y)
		}
	}
	b.history.Push(b.snapshot("Load " + sc.Name))
	copy(b.targets, sc.Targets)
	b.action = sc.HasAction()
	b.session.Invalidate()
	return nil
}

// Scenario returns the active targets as a new scenario.
func (b *Board) Scenario(name string) model.Scenario {
	targets := b.Targets()
	points := make([]model.Point, len(targets))
	for i, t := range targets {
		points[i] = t.Point()
	}
	return model.NewScenario(name, points...)
}

// SetGeometry switches to another screen geometry and drops the overlays.
func (b *Board) SetGeometry(geo model.Geometry) error {
	if err := geo.Validate(); err != nil {
		return err
	}
	b.placer.Geometry = geo
	b.session.Invalidate()
	return nil
}

// SetMode switches the search mode and drops the overlays.
func (b *Board) SetMode(mode model.SearchMode) {
	if b.placer.Mode == mode {
		return
	}
	b.placer.Mode = mode
	b.session.Invalidate()
}

// Place returns the session's overlays, computing them if needed. Geometry
// that leaves a target without a legal position is reported as an error.
func (b *Board) Place() (set model.PlacementSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()
	return b.session.PlacementSet(), nil
}

// Trace runs every processing order against the active targets.
func (b *Board) Trace() (engine.SearchResult, error) {
	return b.placer.Evaluate(b.Targets())
}

// Invalidate drops the cached overlays.
func (b *Board) Invalidate() {
	b.session.Invalidate()
}

// Active reports whether overlays are cached.
func (b *Board) Active() bool {
	return b.session.Active()
}

// SessionID returns the active session identifier, or "".
func (b *Board) SessionID() string {
	return b.session.ID()
}

// Undo restores the targets before the last edit.
func (b *Board) Undo() bool {
	s, ok := b.history.Undo(b.snapshot("Undo"))
	if !ok {
		return false
	}
	b.restore(s)
	return true
}

// Redo reapplies the last undone edit.
func (b *Board) Redo() bool {
	s, ok := b.history.Redo(b.snapshot("Redo"))
	if !ok {
		return false
	}
	b.restore(s)
	return true
}

// CanUndo reports whether an edit can be undone.
func (b *Board) CanUndo() bool {
	return b.history.CanUndo()
}

// CanRedo reports whether an undone edit can be reapplied.
func (b *Board) CanRedo() bool {
	return b.history.CanRedo()
}

func (b *Board) snapshot(label string) Snapshot {
	return MakeSnapshot(b.targets, b.action, label)
}

func (b *Board) restore(s Snapshot) {
	copy(b.targets, s.Targets)
	b.action = s.Action
	b.edited()
}

func (b *Board) edited() {
	if b.Live {
		b.session.Invalidate()
		return
	}
	b.session.ObserveRoles(len(b.Targets()))
}
