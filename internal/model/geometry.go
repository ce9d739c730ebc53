package model

import (
	"errors"
	"fmt"
)

// Geometry holds the screen and clearance constants the placement engine
// works with. All values are in pixels.
type Geometry struct {
	Name            string `json:"name" toml:"name"`
	ScreenWidth     int    `json:"screen_width" toml:"screen_width"`
	ScreenHeight    int    `json:"screen_height" toml:"screen_height"`
	MarginX         int    `json:"margin_x" toml:"margin_x"`                 // Horizontal scan inset from the screen edge
	MarginY         int    `json:"margin_y" toml:"margin_y"`                 // Vertical scan inset from the screen edge
	Step            int    `json:"step" toml:"step"`                         // Distance between scanned candidates
	TargetClearance int    `json:"target_clearance" toml:"target_clearance"` // Minimum overlay distance to any target
	OverlayClearX   int    `json:"overlay_clear_x" toml:"overlay_clear_x"`   // Minimum horizontal separation between overlays
	OverlayClearY   int    `json:"overlay_clear_y" toml:"overlay_clear_y"`   // Minimum vertical separation between overlays
}

// DefaultGeometry returns the constants for the 400x240 handheld screen.
// The inset rectangle is 320x192, which is 40x24 steps of 8 pixels.
func DefaultGeometry() Geometry {
	return Geometry{
		Name:            "handheld",
		ScreenWidth:     400,
		ScreenHeight:    240,
		MarginX:         40,
		MarginY:         24,
		Step:            8,
		TargetClearance: 80,
		OverlayClearX:   72,
		OverlayClearY:   40,
	}
}

// Inset returns the top-left and bottom-right corners of the scan rectangle.
func (g Geometry) Inset() (min, max Point) {
	return Point{X: g.MarginX, Y: g.MarginY},
		Point{X: g.ScreenWidth - g.MarginX, Y: g.ScreenHeight - g.MarginY}
}

// TargetClearanceSq is the squared target clearance used by the validator.
func (g Geometry) TargetClearanceSq() int {
	return g.TargetClearance * g.TargetClearance
}

// PerimeterLength returns the number of candidates in one perimeter scan.
func (g Geometry) PerimeterLength() int {
	min, max := g.Inset()
	return 2 * ((max.X-min.X)/g.Step + (max.Y-min.Y)/g.Step)
}

// Contains reports whether p lies on the screen.
func (g Geometry) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.ScreenWidth && p.Y < g.ScreenHeight
}

// Validate checks the geometry preconditions the scanner relies on.
// Built-in geometry satisfies them; user-supplied profiles are checked on load.
func (g Geometry) Validate() error {
	var errs []error
	if g.ScreenWidth <= 0 || g.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", g.ScreenWidth, g.ScreenHeight))
	}
	if g.Step <= 0 {
		errs = append(errs, fmt.Errorf("step must be positive, got %d", g.Step))
	}
	if g.MarginX < 0 || g.MarginY < 0 {
		errs = append(errs, fmt.Errorf("margins must not be negative, got %d,%d", g.MarginX, g.MarginY))
	}
	w := g.ScreenWidth - 2*g.MarginX
	h := g.ScreenHeight - 2*g.MarginY
	if w <= 0 || h <= 0 {
		errs = append(errs, fmt.Errorf("margins %d,%d leave no scan area on a %dx%d screen",
			g.MarginX, g.MarginY, g.ScreenWidth, g.ScreenHeight))
	} else if g.Step > 0 && (w%g.Step != 0 || h%g.Step != 0) {
		errs = append(errs, fmt.Errorf("scan rectangle %dx%d is not a multiple of step %d", w, h, g.Step))
	}
	if g.TargetClearance < 0 || g.OverlayClearX < 0 || g.OverlayClearY < 0 {
		errs = append(errs, errors.New("clearances must not be negative"))
	}
	return errors.Join(errs...)
}
