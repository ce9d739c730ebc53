// Package engine computes non-overlapping screen positions for the help
// overlays that annotate the arm joints and the current action target.
package engine

import "github.com/piwi3910/CrankHint/internal/model"

// Perimeter returns the candidate overlay positions along the inset border of
// the screen: top edge left to right, right edge top to bottom, bottom edge
// right to left, then left edge bottom to top. Every corner appears once.
//
// The result depends only on the geometry, so callers may scan it as often as
// they like.
func Perimeter(geo model.Geometry) []model.Point {
	if geo.Step <= 0 {
		return nil
	}
	min, max := geo.Inset()
	step := geo.Step

	points := make([]model.Point, 0, geo.PerimeterLength())
	for x := min.X; x < max.X; x += step {
		points = append(points, model.Point{X: x, Y: min.Y})
	}
	for y := min.Y; y < max.Y; y += step {
		points = append(points, model.Point{X: max.X, Y: y})
	}
	for x := max.X; x > min.X; x -= step {
		points = append(points, model.Point{X: x, Y: max.Y})
	}
	for y := max.Y; y > min.Y; y -= step {
		points = append(points, model.Point{X: min.X, Y: y})
	}
	return points
}
