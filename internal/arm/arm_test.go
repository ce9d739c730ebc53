package arm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestArm_StraightOut(t *testing.T) {
	a := &Arm{MountX: 10, MountY: 20}

	ex, ey := a.Elbow()
	assert.InDelta(t, 110, ex, eps)
	assert.InDelta(t, 20, ey, eps)

	wx, wy := a.Wrist()
	assert.InDelta(t, 210, wx, eps)
	assert.InDelta(t, 20, wy, eps)

	hx, hy := a.HeldObject()
	assert.InDelta(t, 222, hx, eps)
	assert.InDelta(t, 20, hy, eps)
}

func TestArm_BentElbow(t *testing.T) {
	// Lower segment points down the screen, upper turns back along +x.
	a := &Arm{Lower: 90, Upper: -90}

	ex, ey := a.Elbow()
	assert.InDelta(t, 0, ex, eps)
	assert.InDelta(t, 100, ey, eps)

	wx, wy := a.Wrist()
	assert.InDelta(t, 100, wx, eps)
	assert.InDelta(t, 100, wy, eps)
}

func TestArm_RotateWraps(t *testing.T) {
	a := &Arm{Lower: 170, Upper: -170}

	a.RotateLower(20)
	assert.InDelta(t, -170, a.Lower, eps)

	a.RotateUpper(-20)
	assert.InDelta(t, 170, a.Upper, eps)

	a.RotateLower(360)
	assert.InDelta(t, -170, a.Lower, eps)
}

func TestArm_Remount(t *testing.T) {
	a := New(200, 150)
	ex, ey := a.Elbow()
	wx, wy := a.Wrist()

	a.Remount()

	assert.InDelta(t, wx, a.MountX, eps)
	assert.InDelta(t, wy, a.MountY, eps)

	nex, ney := a.Elbow()
	assert.InDelta(t, ex, nex, 1e-6)
	assert.InDelta(t, ey, ney, 1e-6)

	nwx, nwy := a.Wrist()
	assert.InDelta(t, 200, nwx, 1e-6)
	assert.InDelta(t, 150, nwy, 1e-6)

	// Remounting twice walks back to the original pose.
	a.Remount()
	assert.InDelta(t, 200, a.MountX, 1e-6)
	assert.InDelta(t, 150, a.MountY, 1e-6)
	assert.InDelta(t, -60, a.Lower, 1e-6)
	assert.InDelta(t, 90, a.Upper, 1e-6)
}

func TestArm_Joints(t *testing.T) {
	a := &Arm{MountX: 0, MountY: 0}

	joints := a.Joints()
	assert.Len(t, joints, 3)
	assert.InDelta(t, 100, joints[1][0], eps)
	assert.InDelta(t, 200, joints[2][0], eps)

	a.Holding = true
	joints = a.Joints()
	assert.Len(t, joints, 4)
	assert.InDelta(t, 212, joints[3][0], eps)
}
