package ui

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/model"
)

func newTestBoard() *Board {
	return NewBoard(model.DefaultGeometry(), model.SearchCurated, log.New(io.Discard))
}

func TestBoardPlacesDefaultPose(t *testing.T) {
	b := newTestBoard()

	if got := len(b.Targets()); got != 3 {
		t.Fatalf("expected 3 active targets, got %d", got)
	}
	set, err := b.Place()
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if set.Cost != 20192 {
		t.Errorf("expected cost 20192, got %d", set.Cost)
	}
	want := []model.Point{{X: 72, Y: 24}, {X: 272, Y: 24}, {X: 224, Y: 216}}
	if !slices.Equal(set.Points(), want) {
		t.Errorf("expected %v, got %v", want, set.Points())
	}
	if !b.Active() || b.SessionID() == "" {
		t.Error("expected an active session after Place")
	}
}

func TestBoardKeepsOverlaysWhileEditing(t *testing.T) {
	b := newTestBoard()
	first, _ := b.Place()
	id := b.SessionID()

	if err := b.SetTarget(model.RoleElbow, model.Point{X: 260, Y: 120}); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if !b.Active() {
		t.Fatal("moving a target should not drop the overlays")
	}
	again, _ := b.Place()
	if !slices.Equal(first.Points(), again.Points()) || b.SessionID() != id {
		t.Error("expected the cached overlays to be returned")
	}
}

func TestBoardLiveFollowsTargets(t *testing.T) {
	b := newTestBoard()
	b.Live = true
	b.Place()
	id := b.SessionID()

	if err := b.SetTarget(model.RoleElbow, model.Point{X: 260, Y: 120}); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if b.Active() {
		t.Fatal("live board should drop the overlays after an edit")
	}
	b.Place()
	if b.SessionID() == id {
		t.Error("expected a new session after recomputing")
	}
}

func TestBoardActionToggle(t *testing.T) {
	b := newTestBoard()
	b.Place()

	b.SetAction(true)
	if b.Active() {
		t.Fatal("a changed role count should drop the overlays")
	}
	set, err := b.Place()
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(set.Slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(set.Slots))
	}
	if set.Cost != 43120 {
		t.Errorf("expected cost 43120, got %d", set.Cost)
	}
	if !slices.Equal(set.Order, []model.Role{4, 1, 2, 3}) {
		t.Errorf("expected order 4-1-2-3, got %v", set.Order)
	}

	// Same state again is a no-op.
	b.SetAction(true)
	if !b.Active() {
		t.Error("setting the same action state should keep the overlays")
	}
}

func TestBoardUndoRedo(t *testing.T) {
	b := newTestBoard()

	if err := b.SetTarget(model.RoleElbow, model.Point{X: 100, Y: 100}); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if b.CanUndo() {
		t.Fatal("moving a target onto itself should not be recorded")
	}

	b.SetTarget(model.RoleElbow, model.Point{X: 260, Y: 120})
	b.SetAction(true)

	if !b.Undo() || b.Action() {
		t.Fatal("first undo should hide the action target")
	}
	if !b.Undo() || b.Target(model.RoleElbow) != (model.Point{X: 300, Y: 100}) {
		t.Fatalf("second undo should restore the elbow, got %v", b.Target(model.RoleElbow))
	}
	if b.CanUndo() || b.Undo() {
		t.Error("nothing left to undo")
	}

	if !b.Redo() || b.Target(model.RoleElbow) != (model.Point{X: 260, Y: 120}) {
		t.Fatalf("redo should move the elbow again, got %v", b.Target(model.RoleElbow))
	}
	if !b.CanRedo() {
		t.Error("the action toggle should still be redoable")
	}
}

func TestBoardLoadScenario(t *testing.T) {
	b := newTestBoard()
	b.SetAction(true)
	b.Place()

	folded := model.NewScenario("Folded arm",
		model.Point{X: 200, Y: 120}, model.Point{X: 260, Y: 120}, model.Point{X: 210, Y: 130})
	if err := b.LoadScenario(folded); err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if b.Active() {
		t.Fatal("loading a scenario should drop the overlays")
	}
	if b.Action() {
		t.Error("three-target scenario should hide the action target")
	}
	if b.Target(model.RoleAction) != (model.Point{X: 200, Y: 140}) {
		t.Errorf("stored action target should survive, got %v", b.Target(model.RoleAction))
	}

	set, err := b.Place()
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if set.Cost != 25976 {
		t.Errorf("expected cost 25976, got %d", set.Cost)
	}

	if !b.Undo() || !b.Action() {
		t.Error("undo should bring back the previous targets")
	}
}

func TestBoardLoadScenarioErrors(t *testing.T) {
	b := newTestBoard()

	short := model.NewScenario("Short", model.Point{X: 10, Y: 10}, model.Point{X: 20, Y: 20})
	if err := b.LoadScenario(short); !errors.Is(err, model.ErrTargetCount) {
		t.Errorf("expected ErrTargetCount, got %v", err)
	}

	off := model.NewScenario("Off screen",
		model.Point{X: 10, Y: 10}, model.Point{X: 20, Y: 20}, model.Point{X: 500, Y: 20})
	if err := b.LoadScenario(off); err == nil {
		t.Error("expected an error for an off-screen target")
	}
	if b.CanUndo() {
		t.Error("failed loads should not be recorded")
	}
}

func TestBoardSetTargetErrors(t *testing.T) {
	b := newTestBoard()

	if err := b.SetTarget(5, model.Point{X: 10, Y: 10}); err == nil {
		t.Error("expected an error for role 5")
	}
	if err := b.SetTarget(model.RoleTopWrist, model.Point{X: 400, Y: 10}); err == nil {
		t.Error("expected an error for x == screen width")
	}
	if b.CanUndo() {
		t.Error("rejected edits should not be recorded")
	}
}

func TestBoardImpossibleGeometry(t *testing.T) {
	b := newTestBoard()

	geo := model.DefaultGeometry()
	geo.TargetClearance = 1000
	if err := b.SetGeometry(geo); err != nil {
		t.Fatalf("SetGeometry: %v", err)
	}

	_, err := b.Place()
	if !errors.Is(err, engine.ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
	var perr *engine.PlacementError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PlacementError, got %T", err)
	}
	if b.Active() {
		t.Error("a failed placement should leave the session empty")
	}
}

func TestBoardRejectsInvalidGeometry(t *testing.T) {
	b := newTestBoard()
	b.Place()

	geo := model.DefaultGeometry()
	geo.Step = 7
	if err := b.SetGeometry(geo); err == nil {
		t.Fatal("expected a validation error")
	}
	if b.Geometry().Step != 8 {
		t.Errorf("geometry should be unchanged, got step %d", b.Geometry().Step)
	}
	if !b.Active() {
		t.Error("rejected geometry should keep the overlays")
	}
}

func TestBoardSetMode(t *testing.T) {
	b := newTestBoard()
	b.Place()

	b.SetMode(model.SearchCurated)
	if !b.Active() {
		t.Fatal("same mode should keep the overlays")
	}
	b.SetMode(model.SearchExhaustive)
	if b.Active() {
		t.Fatal("a new mode should drop the overlays")
	}

	trace, err := b.Trace()
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(trace.Attempts) != 6 {
		t.Errorf("expected 6 attempts for three targets, got %d", len(trace.Attempts))
	}
}

func TestBoardScenario(t *testing.T) {
	b := newTestBoard()
	sc := b.Scenario("Copy")

	if sc.Name != "Copy" || sc.ID == "" {
		t.Errorf("unexpected scenario header %+v", sc)
	}
	if !slices.Equal(sc.Targets, b.Targets()) {
		t.Errorf("expected %v, got %v", b.Targets(), sc.Targets)
	}
}
