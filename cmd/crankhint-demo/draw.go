package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/piwi3910/CrankHint/internal/hud"
	"github.com/piwi3910/CrankHint/internal/model"
)

const (
	pegSpacing = 40.0
	glyphW     = 6 // Debug font cell
	glyphH     = 16
)

var (
	backgroundColor = color.RGBA{R: 30, G: 34, B: 40, A: 255}
	pegColor        = color.RGBA{R: 70, G: 74, B: 84, A: 255}
	armColor        = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	hintBoxColor    = color.RGBA{R: 10, G: 10, B: 14, A: 200}

	roleColors = []color.RGBA{
		{R: 33, G: 150, B: 243, A: 255},
		{R: 76, G: 175, B: 80, A: 255},
		{R: 255, G: 152, B: 0, A: 255},
		{R: 156, G: 39, B: 176, A: 255},
	}
)

func roleColor(r model.Role) color.RGBA {
	if r < 1 || int(r) > len(roleColors) {
		return armColor
	}
	return roleColors[r-1]
}

// drawBoard draws the pegs the arm grabs onto, scrolled with the camera.
func (g *game) drawBoard(screen *ebiten.Image) {
	startX := math.Floor(g.cam.X/pegSpacing) * pegSpacing
	startY := math.Floor(g.cam.Y/pegSpacing) * pegSpacing
	for wy := startY; wy < g.cam.Y+float64(g.geo.ScreenHeight)+pegSpacing; wy += pegSpacing {
		for wx := startX; wx < g.cam.X+float64(g.geo.ScreenWidth)+pegSpacing; wx += pegSpacing {
			p := g.cam.Viewport().ToScreen(wx, wy)
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2, pegColor, true)
		}
	}
}

func (g *game) drawArm(screen *ebiten.Image) {
	targets := g.targets()
	for i := 0; i+1 < len(targets) && i < 2; i++ {
		a, b := targets[i], targets[i+1]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 6, armColor, true)
	}
	for _, t := range targets {
		radius := float32(7)
		if t.Role == model.RoleAction {
			radius = 5
			wrist := targets[model.RoleTopWrist-1]
			vector.StrokeLine(screen, float32(wrist.X), float32(wrist.Y), float32(t.X), float32(t.Y), 2, armColor, true)
		}
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), radius, roleColor(t.Role), true)
	}
}

// drawHints draws each overlay as a labelled box with an arrow towards its target.
func (g *game) drawHints(screen *ebiten.Image, overlays []hud.Overlay) {
	for _, o := range overlays {
		col := roleColor(o.Role)
		if o.HasArrow {
			a := o.Arrow
			vector.StrokeLine(screen, a.X0, a.Y0, a.X1, a.Y1, 2, col, true)
			vector.StrokeLine(screen, a.X1, a.Y1, a.LeftX, a.LeftY, 2, col, true)
			vector.StrokeLine(screen, a.X1, a.Y1, a.RightX, a.RightY, 2, col, true)
		}

		w := float32(len(o.Label)*glyphW + 8)
		h := float32(glyphH + 4)
		x := float32(o.X) - w/2
		y := float32(o.Y) - h/2
		vector.DrawFilledRect(screen, x, y, w, h, hintBoxColor, true)
		vector.StrokeRect(screen, x, y, w, h, 1, col, true)
		ebitenutil.DebugPrintAt(screen, o.Label, int(x)+4, int(y)+2)
	}
}

func (g *game) drawStatus(screen *ebiten.Image) {
	status := "moving"
	if g.hud.Visible() {
		status = "hints " + g.session.ID()
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %.0f TPS", status, ebiten.ActualTPS()), 4, g.geo.ScreenHeight-glyphH+2)
}
