package model

import (
	"errors"
	"fmt"
)

// Role identifies which part of the arm a target belongs to.
type Role int

const (
	RoleBottomWrist Role = iota + 1 // Wrist anchored on the lower mount
	RoleElbow                       // Elbow joint between the two arm segments
	RoleTopWrist                    // Free wrist at the end of the upper segment
	RoleAction                      // Actionable target or held object (optional)
)

// MaxRoles is the largest number of targets a placement can annotate.
const MaxRoles = 4

func (r Role) String() string {
	switch r {
	case RoleBottomWrist:
		return "Bottom Wrist"
	case RoleElbow:
		return "Elbow"
	case RoleTopWrist:
		return "Top Wrist"
	case RoleAction:
		return "Action"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Point is an integer screen coordinate in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// TargetPoint is a screen-projected target with its role.
type TargetPoint struct {
	Role Role `json:"role"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
}

// Point returns the target position without its role.
func (t TargetPoint) Point() Point {
	return Point{X: t.X, Y: t.Y}
}

// NewTargets builds a role-ordered target list from screen points.
// The first point is the bottom wrist, the fourth (if present) the action target.
func NewTargets(points ...Point) []TargetPoint {
	targets := make([]TargetPoint, len(points))
	for i, p := range points {
		targets[i] = TargetPoint{Role: Role(i + 1), X: p.X, Y: p.Y}
	}
	return targets
}

// ErrTargetCount is returned when a target list does not hold 3 or 4 targets.
var ErrTargetCount = errors.New("target list must hold 3 or 4 targets")

// ValidateTargets checks that targets hold 3 or 4 entries whose roles run
// 1..n in order. The game never calls this; tools use it before placing
// user-supplied scenarios.
func ValidateTargets(targets []TargetPoint) error {
	if len(targets) < 3 || len(targets) > MaxRoles {
		return fmt.Errorf("%w: got %d", ErrTargetCount, len(targets))
	}
	for i, t := range targets {
		if t.Role != Role(i+1) {
			return fmt.Errorf("target %d has role %d, expected %d", i, t.Role, i+1)
		}
	}
	return nil
}

// PlacementSlot is the overlay position committed for one role.
type PlacementSlot struct {
	Role  Role `json:"role"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Score int  `json:"score"` // Squared distance to the role's own target
}

// Point returns the slot position without its role and score.
func (s PlacementSlot) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// PlacementSet is one complete overlay assignment.
type PlacementSet struct {
	Slots []PlacementSlot `json:"slots"` // Ordered by role, same order as the targets
	Order []Role          `json:"order"` // Processing order that produced the slots
	Cost  int             `json:"cost"`  // Sum of slot scores
}

// Points returns the slot positions in role order.
func (ps PlacementSet) Points() []Point {
	points := make([]Point, len(ps.Slots))
	for i, s := range ps.Slots {
		points[i] = s.Point()
	}
	return points
}

// Slot returns the slot for the given role.
func (ps PlacementSet) Slot(role Role) (PlacementSlot, bool) {
	for _, s := range ps.Slots {
		if s.Role == role {
			return s, true
		}
	}
	return PlacementSlot{}, false
}

// Empty reports whether the set holds no slots.
func (ps PlacementSet) Empty() bool {
	return len(ps.Slots) == 0
}

// SearchMode selects which processing orders the permutation search tries.
type SearchMode string

const (
	SearchCurated    SearchMode = "curated"    // Fixed order tables used in game
	SearchExhaustive SearchMode = "exhaustive" // Every permutation, for auditing the curated tables
)

// ParseSearchMode converts a user-supplied string into a SearchMode.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(s) {
	case SearchCurated, "":
		return SearchCurated, nil
	case SearchExhaustive:
		return SearchExhaustive, nil
	default:
		return "", fmt.Errorf("unknown search mode %q (want %q or %q)", s, SearchCurated, SearchExhaustive)
	}
}

// Viewport converts world coordinates into screen coordinates for a camera
// whose top-left corner sits at (X, Y) in the world.
type Viewport struct {
	X float64
	Y float64
}

// ToScreen projects a world position onto the screen, rounding to the nearest pixel.
func (v Viewport) ToScreen(wx, wy float64) Point {
	return Point{X: roundInt(wx - v.X), Y: roundInt(wy - v.Y)}
}

// Project builds a role-ordered target list from world positions.
func (v Viewport) Project(world [][2]float64) []TargetPoint {
	points := make([]Point, len(world))
	for i, w := range world {
		points[i] = v.ToScreen(w[0], w[1])
	}
	return NewTargets(points...)
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
