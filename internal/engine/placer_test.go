package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CrankHint/internal/model"
)

// foldedTargets puts both wrists near the elbow so processing order matters.
func foldedTargets() []model.TargetPoint {
	return model.NewTargets(
		model.Point{X: 200, Y: 120},
		model.Point{X: 260, Y: 120},
		model.Point{X: 210, Y: 130},
	)
}

func TestPlaceGreedy_ThreeTargets(t *testing.T) {
	geo := model.DefaultGeometry()

	set, err := PlaceGreedy(geo, testTargets(), []model.Role{1, 2, 3})
	require.NoError(t, err)

	require.Len(t, set.Slots, 3)
	assert.Equal(t, model.PlacementSlot{Role: 1, X: 72, Y: 24, Score: 6560}, set.Slots[0])
	assert.Equal(t, model.PlacementSlot{Role: 2, X: 272, Y: 24, Score: 6560}, set.Slots[1])
	assert.Equal(t, model.PlacementSlot{Role: 3, X: 224, Y: 216, Score: 7072}, set.Slots[2])
	assert.Equal(t, 20192, set.Cost)
	assert.Equal(t, []model.Role{1, 2, 3}, set.Order)
}

func TestPlaceGreedy_SlotsFollowTargetOrder(t *testing.T) {
	geo := model.DefaultGeometry()

	set, err := PlaceGreedy(geo, foldedTargets(), []model.Role{3, 2, 1})
	require.NoError(t, err)

	for i, s := range set.Slots {
		assert.Equal(t, model.Role(i+1), s.Role, "slots must be in role order, not processing order")
	}
	assert.Equal(t, []model.Role{3, 2, 1}, set.Order)
}

func TestPlaceGreedy_CommittedSlotsBlockLaterRoles(t *testing.T) {
	geo := model.DefaultGeometry()
	targets := foldedTargets()

	// Placing the bottom wrist first takes the top border near x=200,
	// which pushes the elbow overlay to the bottom border.
	first, err := PlaceGreedy(geo, targets, []model.Role{1, 2, 3})
	require.NoError(t, err)
	elbow, _ := first.Slot(model.RoleElbow)
	assert.Equal(t, model.Point{X: 264, Y: 216}, elbow.Point())

	// Placing the top wrist before the elbow claims the bottom border instead,
	// and the elbow goes back to the top.
	second, err := PlaceGreedy(geo, targets, []model.Role{1, 3, 2})
	require.NoError(t, err)
	elbow, _ = second.Slot(model.RoleElbow)
	assert.Equal(t, model.Point{X: 272, Y: 24}, elbow.Point())

	assert.Equal(t, 26168, first.Cost)
	assert.Equal(t, 25976, second.Cost)

	v := Validator{Geometry: geo}
	assert.Empty(t, v.CheckSet(targets, first))
	assert.Empty(t, v.CheckSet(targets, second))
}

func TestPlaceGreedy_TiesKeepFirstScanned(t *testing.T) {
	geo := model.DefaultGeometry()
	// (200,24), (208,24), (200,216) and (208,216) are all equally far from
	// the wrist. The top edge is scanned first, left to right.
	targets := model.NewTargets(
		model.Point{X: 204, Y: 120},
		model.Point{X: 60, Y: 200},
		model.Point{X: 340, Y: 200},
	)

	set, err := PlaceGreedy(geo, targets, []model.Role{1, 2, 3})
	require.NoError(t, err)

	slot, ok := set.Slot(model.RoleBottomWrist)
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 200, Y: 24}, slot.Point())
	assert.Equal(t, 9232, slot.Score)
	assert.Equal(t, 22832, set.Cost)
}

func TestPlaceGreedy_UnknownRoleInOrder(t *testing.T) {
	_, err := PlaceGreedy(model.DefaultGeometry(), testTargets(), []model.Role{4, 1, 2, 3})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoCandidate))
}

func TestPlaceGreedy_ImpossibleGeometry(t *testing.T) {
	geo := model.DefaultGeometry()
	geo.TargetClearance = 1000

	_, err := PlaceGreedy(geo, testTargets(), []model.Role{2, 1, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCandidate)

	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, model.RoleElbow, pe.Role)
	assert.Equal(t, []model.Role{2, 1, 3}, pe.Order)
	assert.Empty(t, pe.Committed)
}

func TestPlaceGreedy_CrowdedOverlaysRunOutOfRoom(t *testing.T) {
	geo := model.DefaultGeometry()
	// A tiny screen where any two border positions are closer than the
	// overlay clearance, so only the first role fits.
	geo.ScreenWidth = 160
	geo.ScreenHeight = 96
	geo.MarginX = 40
	geo.MarginY = 24
	geo.TargetClearance = 0
	geo.OverlayClearX = 100
	geo.OverlayClearY = 60
	require.NoError(t, geo.Validate())

	_, err := PlaceGreedy(geo, testTargets(), []model.Role{1, 2, 3})
	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, model.RoleElbow, pe.Role)
	require.Len(t, pe.Committed, 1)
	assert.Equal(t, model.RoleBottomWrist, pe.Committed[0].Role)
}
