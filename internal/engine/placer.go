package engine

import (
	"fmt"
	"slices"

	"github.com/piwi3910/CrankHint/internal/model"
)

// PlaceGreedy places the targets one role at a time in the given order.
// Each role takes the closest legal perimeter position (the first one found
// on ties) and keeps it; later roles treat it as an obstacle.
func PlaceGreedy(geo model.Geometry, targets []model.TargetPoint, order []model.Role) (model.PlacementSet, error) {
	return placeGreedy(Perimeter(geo), Validator{Geometry: geo}, targets, order)
}

func placeGreedy(candidates []model.Point, v Validator, targets []model.TargetPoint, order []model.Role) (model.PlacementSet, error) {
	committed := make([]model.PlacementSlot, 0, len(order))
	cost := 0

	for _, role := range order {
		own, ok := findTarget(targets, role)
		if !ok {
			return model.PlacementSet{}, fmt.Errorf("order %v names role %d but no target has it", order, role)
		}

		var best Candidate
		found := false
		for _, c := range candidates {
			cand, ok := v.Check(c, own, targets, committed)
			if !ok {
				continue
			}
			if !found || cand.DistSq < best.DistSq {
				best = cand
				found = true
			}
		}
		if !found {
			return model.PlacementSet{}, &PlacementError{
				Role:      role,
				Order:     slices.Clone(order),
				Committed: slices.Clone(committed),
			}
		}

		committed = append(committed, model.PlacementSlot{
			Role:  role,
			X:     best.X,
			Y:     best.Y,
			Score: best.DistSq,
		})
		cost += best.DistSq
	}

	return model.PlacementSet{
		Slots: byTargetOrder(targets, committed),
		Order: slices.Clone(order),
		Cost:  cost,
	}, nil
}

func findTarget(targets []model.TargetPoint, role model.Role) (model.TargetPoint, bool) {
	for _, t := range targets {
		if t.Role == role {
			return t, true
		}
	}
	return model.TargetPoint{}, false
}

// byTargetOrder reorders committed slots to match the target list.
func byTargetOrder(targets []model.TargetPoint, committed []model.PlacementSlot) []model.PlacementSlot {
	slots := make([]model.PlacementSlot, 0, len(committed))
	for _, t := range targets {
		for _, s := range committed {
			if s.Role == t.Role {
				slots = append(slots, s)
				break
			}
		}
	}
	return slots
}
