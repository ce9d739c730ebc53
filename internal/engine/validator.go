package engine

import (
	"fmt"

	"github.com/piwi3910/CrankHint/internal/model"
)

// Candidate is a scanned position together with its squared distance to the
// target currently being placed.
type Candidate struct {
	model.Point
	DistSq int
}

// Validator applies the overlay rejection rules for one geometry.
type Validator struct {
	Geometry model.Geometry
}

// Check tests candidate c for the target own. It is rejected when it is
// closer than the target clearance to any target in targets, or when it falls
// inside the overlay clearance box of any committed slot. Accepted candidates
// are scored by their squared distance to own.
func (v Validator) Check(c model.Point, own model.TargetPoint, targets []model.TargetPoint, committed []model.PlacementSlot) (Candidate, bool) {
	if v.tooCloseToTarget(c, targets) {
		return Candidate{}, false
	}
	if v.overlapsSlot(c, committed) {
		return Candidate{}, false
	}
	return Candidate{Point: c, DistSq: c.DistSq(own.Point())}, true
}

func (v Validator) tooCloseToTarget(c model.Point, targets []model.TargetPoint) bool {
	limit := v.Geometry.TargetClearanceSq()
	for _, t := range targets {
		if c.DistSq(t.Point()) < limit {
			return true
		}
	}
	return false
}

func (v Validator) overlapsSlot(c model.Point, committed []model.PlacementSlot) bool {
	for _, s := range committed {
		if abs(c.X-s.X) < v.Geometry.OverlayClearX && abs(c.Y-s.Y) < v.Geometry.OverlayClearY {
			return true
		}
	}
	return false
}

// Violation describes a slot in a finished placement set that breaks a rule.
type Violation struct {
	Role   model.Role
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Role, v.Reason)
}

// CheckSet verifies a finished placement set against the full target list and
// against every other slot in the set. A set produced by the search always
// passes; tools use this to flag hand-edited or imported placements.
func (v Validator) CheckSet(targets []model.TargetPoint, set model.PlacementSet) []Violation {
	var violations []Violation
	limit := v.Geometry.TargetClearanceSq()
	for i, s := range set.Slots {
		for _, t := range targets {
			if d := s.Point().DistSq(t.Point()); d < limit {
				violations = append(violations, Violation{
					Role:   s.Role,
					Reason: fmt.Sprintf("within %d px of %s target (dist² %d)", v.Geometry.TargetClearance, t.Role, d),
				})
			}
		}
		for j, other := range set.Slots {
			if i == j {
				continue
			}
			if abs(s.X-other.X) < v.Geometry.OverlayClearX && abs(s.Y-other.Y) < v.Geometry.OverlayClearY {
				violations = append(violations, Violation{
					Role:   s.Role,
					Reason: fmt.Sprintf("overlaps %s overlay", other.Role),
				})
			}
		}
	}
	return violations
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
