package model

import (
	"errors"
	"testing"
)

func TestPointDistSq(t *testing.T) {
	a := Point{X: 10, Y: 20}
	b := Point{X: 13, Y: 24}

	if got := a.DistSq(b); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if a.DistSq(b) != b.DistSq(a) {
		t.Error("DistSq should be symmetric")
	}
	if a.DistSq(a) != 0 {
		t.Error("distance to self should be 0")
	}
}

func TestNewTargetsAssignsRolesInOrder(t *testing.T) {
	targets := NewTargets(Point{X: 1, Y: 2}, Point{X: 3, Y: 4}, Point{X: 5, Y: 6}, Point{X: 7, Y: 8})

	if len(targets) != 4 {
		t.Fatalf("expected 4 targets, got %d", len(targets))
	}
	wantRoles := []Role{RoleBottomWrist, RoleElbow, RoleTopWrist, RoleAction}
	for i, tp := range targets {
		if tp.Role != wantRoles[i] {
			t.Errorf("target %d: expected role %v, got %v", i, wantRoles[i], tp.Role)
		}
	}
	if targets[2].Point() != (Point{X: 5, Y: 6}) {
		t.Errorf("unexpected point for top wrist: %+v", targets[2].Point())
	}
}

func TestValidateTargets(t *testing.T) {
	three := NewTargets(Point{}, Point{}, Point{})
	if err := ValidateTargets(three); err != nil {
		t.Errorf("3 targets should be valid: %v", err)
	}

	four := NewTargets(Point{}, Point{}, Point{}, Point{})
	if err := ValidateTargets(four); err != nil {
		t.Errorf("4 targets should be valid: %v", err)
	}

	for _, n := range []int{0, 1, 2, 5} {
		err := ValidateTargets(NewTargets(make([]Point, n)...))
		if !errors.Is(err, ErrTargetCount) {
			t.Errorf("%d targets: expected ErrTargetCount, got %v", n, err)
		}
	}

	swapped := NewTargets(Point{}, Point{}, Point{})
	swapped[0].Role, swapped[1].Role = swapped[1].Role, swapped[0].Role
	if err := ValidateTargets(swapped); err == nil {
		t.Error("out-of-order roles should be rejected")
	}
}

func TestRoleString(t *testing.T) {
	if RoleAction.String() != "Action" {
		t.Errorf("expected Action, got %s", RoleAction.String())
	}
	if Role(9).String() != "Role(9)" {
		t.Errorf("expected Role(9), got %s", Role(9).String())
	}
}

func TestPlacementSetLookup(t *testing.T) {
	ps := PlacementSet{
		Slots: []PlacementSlot{
			{Role: RoleBottomWrist, X: 40, Y: 24, Score: 10},
			{Role: RoleElbow, X: 360, Y: 24, Score: 20},
		},
		Cost: 30,
	}

	slot, ok := ps.Slot(RoleElbow)
	if !ok || slot.X != 360 {
		t.Errorf("expected elbow slot at x=360, got %+v (found=%v)", slot, ok)
	}
	if _, ok := ps.Slot(RoleAction); ok {
		t.Error("action slot should not exist")
	}

	points := ps.Points()
	if len(points) != 2 || points[1] != (Point{X: 360, Y: 24}) {
		t.Errorf("unexpected points %+v", points)
	}
	if ps.Empty() {
		t.Error("set with slots should not be empty")
	}
	if !(PlacementSet{}).Empty() {
		t.Error("zero set should be empty")
	}
}

func TestParseSearchMode(t *testing.T) {
	cases := map[string]SearchMode{
		"":           SearchCurated,
		"curated":    SearchCurated,
		"exhaustive": SearchExhaustive,
	}
	for in, want := range cases {
		got, err := ParseSearchMode(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := ParseSearchMode("random"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestViewportProjectRounds(t *testing.T) {
	v := Viewport{X: 1000, Y: 500}

	p := v.ToScreen(1100.4, 620.6)
	if p != (Point{X: 100, Y: 121}) {
		t.Errorf("expected (100,121), got %+v", p)
	}

	neg := v.ToScreen(999.4, 499.6)
	if neg != (Point{X: -1, Y: 0}) {
		t.Errorf("expected (-1,0), got %+v", neg)
	}

	targets := v.Project([][2]float64{{1100, 600}, {1300, 600}, {1300, 680}})
	if len(targets) != 3 || targets[2].Role != RoleTopWrist || targets[2].X != 300 || targets[2].Y != 180 {
		t.Errorf("unexpected projection %+v", targets)
	}
}
