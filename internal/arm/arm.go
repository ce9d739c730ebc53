// Package arm models the two-segment arm the player cranks around the world.
package arm

import "math"

// SegmentLength is the length of each arm segment in world pixels.
const SegmentLength = 100.0

// heldOffset is how far past the top wrist a held object sits.
const heldOffset = 12.0

// Arm is two segments joined at the elbow. The bottom wrist is mounted at
// (MountX, MountY); the top wrist hangs free at the end of the upper segment.
// Angles are in degrees, clockwise on screen, 0 pointing along +x.
type Arm struct {
	MountX, MountY float64
	Lower          float64 // Direction of the lower segment
	Upper          float64 // Direction of the upper segment relative to the lower one
	Holding        bool    // Whether the top wrist holds an object
}

// New creates an arm mounted at (x, y) with the elbow raised.
func New(x, y float64) *Arm {
	return &Arm{MountX: x, MountY: y, Lower: -60, Upper: 90}
}

func direction(deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// normalize wraps an angle into (-180, 180].
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// Elbow returns the world position of the elbow.
func (a *Arm) Elbow() (float64, float64) {
	dx, dy := direction(a.Lower)
	return a.MountX + SegmentLength*dx, a.MountY + SegmentLength*dy
}

// Wrist returns the world position of the free top wrist.
func (a *Arm) Wrist() (float64, float64) {
	ex, ey := a.Elbow()
	dx, dy := direction(a.Lower + a.Upper)
	return ex + SegmentLength*dx, ey + SegmentLength*dy
}

// HeldObject returns the world position of the held object.
func (a *Arm) HeldObject() (float64, float64) {
	wx, wy := a.Wrist()
	dx, dy := direction(a.Lower + a.Upper)
	return wx + heldOffset*dx, wy + heldOffset*dy
}

// RotateLower turns the lower segment around the mount.
func (a *Arm) RotateLower(deg float64) {
	a.Lower = normalize(a.Lower + deg)
}

// RotateUpper turns the upper segment around the elbow.
func (a *Arm) RotateUpper(deg float64) {
	a.Upper = normalize(a.Upper + deg)
}

// Remount grabs the world with the top wrist and lets go with the bottom
// one. The elbow stays where it is and the old mount becomes the free wrist.
func (a *Arm) Remount() {
	wx, wy := a.Wrist()
	a.MountX, a.MountY = wx, wy
	a.Lower = normalize(a.Lower + a.Upper + 180)
	a.Upper = normalize(-a.Upper)
}

// Joints returns the world positions of every target the hints point at,
// in role order: bottom wrist, elbow, top wrist and, while holding, the
// held object.
func (a *Arm) Joints() [][2]float64 {
	ex, ey := a.Elbow()
	wx, wy := a.Wrist()
	joints := [][2]float64{{a.MountX, a.MountY}, {ex, ey}, {wx, wy}}
	if a.Holding {
		hx, hy := a.HeldObject()
		joints = append(joints, [2]float64{hx, hy})
	}
	return joints
}
