package hud

import (
	"math"

	"github.com/piwi3910/CrankHint/internal/model"
)

// Arrow is a hint arrow in screen pixels, drawn from tail to tip with two
// barbs at the tip.
type Arrow struct {
	X0, Y0         float32 // Tail
	X1, Y1         float32 // Tip
	LeftX, LeftY   float32
	RightX, RightY float32
}

// NewArrow builds an arrow from an overlay centre towards its target. The
// shaft starts tail pixels away from the overlay centre and stops gap pixels
// short of the target; shift slides the whole arrow towards the target. It
// reports false when the two points are too close for a visible shaft.
func NewArrow(from, to model.Point, tail, gap, head, shift float32) (Arrow, bool) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	length := math.Hypot(dx, dy)
	if length <= float64(tail+gap) {
		return Arrow{}, false
	}
	ux, uy := dx/length, dy/length
	px, py := -uy, ux

	start := float64(tail + shift)
	end := length - float64(gap) + float64(shift)
	x0, y0 := float64(from.X)+ux*start, float64(from.Y)+uy*start
	x1, y1 := float64(from.X)+ux*end, float64(from.Y)+uy*end

	h := float64(head)
	bx, by := x1-ux*h, y1-uy*h
	return Arrow{
		X0: float32(x0), Y0: float32(y0),
		X1: float32(x1), Y1: float32(y1),
		LeftX: float32(bx + px*h/2), LeftY: float32(by + py*h/2),
		RightX: float32(bx - px*h/2), RightY: float32(by - py*h/2),
	}, true
}
