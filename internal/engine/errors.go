package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/CrankHint/internal/model"
)

// ErrNoCandidate means the perimeter scan found no legal position for a target.
// With consistent geometry this never happens; seeing it means the screen size,
// margins, clearances or target count have been changed into an impossible combination.
var ErrNoCandidate = errors.New("no valid overlay position")

// PlacementError describes which role could not be placed and under which order.
type PlacementError struct {
	Role      model.Role
	Order     []model.Role
	Committed []model.PlacementSlot // Slots already committed earlier in the pass
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%v: role %d (%s) in order %v after %d committed slots",
		ErrNoCandidate, e.Role, e.Role, e.Order, len(e.Committed))
}

func (e *PlacementError) Unwrap() error {
	return ErrNoCandidate
}
