package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/model"
)

// RoleColors are indexed by role-1 and match the PDF report.
var RoleColors = []color.NRGBA{
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
}

// RoleColor returns the color for a role, grey for unknown roles.
func RoleColor(r model.Role) color.NRGBA {
	if r < 1 || int(r) > len(RoleColors) {
		return color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	}
	return RoleColors[r-1]
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// PlacementCanvas draws a screen with its targets and overlay positions.
// Tapping the canvas reports the tapped screen pixel through OnTapped.
type PlacementCanvas struct {
	widget.BaseWidget
	geometry  model.Geometry
	targets   []model.TargetPoint
	set       model.PlacementSet
	maxWidth  float32
	maxHeight float32

	ShowScan       bool // Draw every perimeter candidate
	ShowClearances bool // Draw target clearance circles and overlay boxes
	OnTapped       func(model.Point)
}

// NewPlacementCanvas creates a canvas scaled to fit maxW x maxH.
func NewPlacementCanvas(geo model.Geometry, maxW, maxH float32) *PlacementCanvas {
	pc := &PlacementCanvas{
		geometry:       geo,
		maxWidth:       maxW,
		maxHeight:      maxH,
		ShowClearances: true,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// Update replaces the drawn state and redraws.
func (pc *PlacementCanvas) Update(geo model.Geometry, targets []model.TargetPoint, set model.PlacementSet) {
	pc.geometry = geo
	pc.targets = append([]model.TargetPoint(nil), targets...)
	pc.set = set
	pc.Refresh()
}

// Tapped implements fyne.Tappable.
func (pc *PlacementCanvas) Tapped(ev *fyne.PointEvent) {
	if pc.OnTapped == nil {
		return
	}
	p := toScreen(ev.Position, fitScale(pc.geometry, pc.maxWidth, pc.maxHeight))
	if pc.geometry.Contains(p) {
		pc.OnTapped(p)
	}
}

func (pc *PlacementCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &placementCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

// fitScale returns the pixel scale that fits the screen inside maxW x maxH.
func fitScale(geo model.Geometry, maxW, maxH float32) float32 {
	if geo.ScreenWidth <= 0 || geo.ScreenHeight <= 0 {
		return 1
	}
	scale := maxW / float32(geo.ScreenWidth)
	if s := maxH / float32(geo.ScreenHeight); s < scale {
		scale = s
	}
	return scale
}

// toScreen converts a canvas position back to a screen pixel.
func toScreen(pos fyne.Position, scale float32) model.Point {
	return model.Point{
		X: int(math.Round(float64(pos.X / scale))),
		Y: int(math.Round(float64(pos.Y / scale))),
	}
}

type placementCanvasRenderer struct {
	pc      *PlacementCanvas
	objects []fyne.CanvasObject
}

func (r *placementCanvasRenderer) rebuild() {
	r.objects = nil

	geo := r.pc.geometry
	scale := fitScale(geo, r.pc.maxWidth, r.pc.maxHeight)
	pos := func(x, y int) fyne.Position {
		return fyne.NewPos(float32(x)*scale, float32(y)*scale)
	}

	// Screen background
	bg := canvas.NewRectangle(color.NRGBA{R: 30, G: 34, B: 40, A: 255})
	bg.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(float32(geo.ScreenWidth)*scale, float32(geo.ScreenHeight)*scale))
	r.objects = append(r.objects, bg)

	// Scan rectangle
	min, max := geo.Inset()
	inset := canvas.NewRectangle(color.Transparent)
	inset.StrokeColor = color.NRGBA{R: 90, G: 90, B: 110, A: 255}
	inset.StrokeWidth = 1
	inset.Move(pos(min.X, min.Y))
	inset.Resize(fyne.NewSize(float32(max.X-min.X)*scale, float32(max.Y-min.Y)*scale))
	r.objects = append(r.objects, inset)

	if r.pc.ShowScan && geo.Validate() == nil {
		for _, c := range engine.Perimeter(geo) {
			dot := canvas.NewCircle(color.NRGBA{R: 140, G: 140, B: 160, A: 180})
			dot.Move(pos(c.X, c.Y).SubtractXY(1.5, 1.5))
			dot.Resize(fyne.NewSize(3, 3))
			r.objects = append(r.objects, dot)
		}
	}

	if r.pc.ShowClearances {
		for _, t := range r.pc.targets {
			radius := float32(geo.TargetClearance) * scale
			ring := canvas.NewCircle(color.Transparent)
			ring.StrokeColor = withAlpha(RoleColor(t.Role), 90)
			ring.StrokeWidth = 1
			ring.Move(pos(t.X, t.Y).SubtractXY(radius, radius))
			ring.Resize(fyne.NewSize(2*radius, 2*radius))
			r.objects = append(r.objects, ring)
		}
	}

	for _, s := range r.pc.set.Slots {
		col := RoleColor(s.Role)
		if t, ok := findTarget(r.pc.targets, s.Role); ok {
			arrow := canvas.NewLine(withAlpha(col, 200))
			arrow.StrokeWidth = 2
			arrow.Position1 = pos(s.X, s.Y)
			arrow.Position2 = pos(t.X, t.Y)
			r.objects = append(r.objects, arrow)
		}

		w := float32(geo.OverlayClearX) * scale
		h := float32(geo.OverlayClearY) * scale
		box := canvas.NewRectangle(withAlpha(col, 60))
		if !r.pc.ShowClearances {
			box.FillColor = withAlpha(col, 160)
		}
		box.StrokeColor = col
		box.StrokeWidth = 1
		box.Move(pos(s.X, s.Y).SubtractXY(w/2, h/2))
		box.Resize(fyne.NewSize(w, h))
		r.objects = append(r.objects, box)

		label := canvas.NewText(fmt.Sprintf("%d", s.Role), color.White)
		label.TextSize = 11
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Move(pos(s.X, s.Y).SubtractXY(4, 8))
		r.objects = append(r.objects, label)
	}

	for _, t := range r.pc.targets {
		dot := canvas.NewCircle(RoleColor(t.Role))
		dot.StrokeColor = color.White
		dot.StrokeWidth = 1
		dot.Move(pos(t.X, t.Y).SubtractXY(5, 5))
		dot.Resize(fyne.NewSize(10, 10))
		r.objects = append(r.objects, dot)
	}
}

func findTarget(targets []model.TargetPoint, role model.Role) (model.TargetPoint, bool) {
	for _, t := range targets {
		if t.Role == role {
			return t, true
		}
	}
	return model.TargetPoint{}, false
}

func (r *placementCanvasRenderer) Layout(size fyne.Size)        {}
func (r *placementCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *placementCanvasRenderer) Destroy()                     {}
func (r *placementCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *placementCanvasRenderer) MinSize() fyne.Size {
	scale := fitScale(r.pc.geometry, r.pc.maxWidth, r.pc.maxHeight)
	return fyne.NewSize(float32(r.pc.geometry.ScreenWidth)*scale, float32(r.pc.geometry.ScreenHeight)*scale)
}
