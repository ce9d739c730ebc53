// CrankHint Demo: a two-segment arm with idle control hints
//
// Crank the arm around a pegboard. Stop for a few seconds and hints appear
// next to each joint, pointing at it with a bobbing arrow. The hints stay
// where they were placed until the arm or the camera moves again.
//
// Controls:
//   Left/Right   rotate the lower segment
//   Up/Down      rotate the upper segment (mouse wheel also cranks it)
//   R            swap which wrist holds the board
//   Space        pick up or drop an object
//   WASD         pan the camera, C to recenter on the arm
//   Esc          quit
//
// Build:
//   go build -o crankhint-demo ./cmd/crankhint-demo

package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/piwi3910/CrankHint/internal/arm"
	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/hud"
	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
)

const (
	turnSpeed   = 120.0 // Degrees per second while an arrow key is held
	wheelStep   = 8.0   // Degrees per wheel notch
	panSpeed    = 160.0 // World pixels per second
	recenterFor = 0.6   // Seconds for the C recenter animation
	windowScale = 2
)

var errQuit = errors.New("quit")

type game struct {
	geo     model.Geometry
	arm     *arm.Arm
	cam     *camera
	session *engine.Session
	hud     *hud.Hud
	logger  *log.Logger
}

func newGame(cfg model.AppConfig, logger *log.Logger) *game {
	g := &game{
		geo:    cfg.Geometry,
		arm:    arm.New(0, 0),
		cam:    &camera{},
		logger: logger,
	}
	g.centerOnArm()

	placer := engine.New(cfg.Geometry)
	placer.Mode = cfg.SearchMode
	g.session = engine.NewSession(placer, engine.TargetFunc(g.targets), engine.WithLogger(logger))
	g.hud = hud.New(g.session, logger)
	return g
}

// targets projects the arm joints onto the screen in role order.
func (g *game) targets() []model.TargetPoint {
	return g.cam.Viewport().Project(g.arm.Joints())
}

func (g *game) mountCameraPos() (float64, float64) {
	return g.arm.MountX - float64(g.geo.ScreenWidth)/2,
		g.arm.MountY - float64(g.geo.ScreenHeight)*0.75
}

func (g *game) centerOnArm() {
	g.cam.X, g.cam.Y = g.mountCameraPos()
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	step := float64(dt)
	active := false

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.arm.RotateLower(-turnSpeed * step)
		active = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.arm.RotateLower(turnSpeed * step)
		active = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.arm.RotateUpper(-turnSpeed * step)
		active = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.arm.RotateUpper(turnSpeed * step)
		active = true
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.arm.RotateUpper(wy * wheelStep)
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.arm.Remount()
		g.logger.Debug("remounted", "x", g.arm.MountX, "y", g.arm.MountY)
		active = true
	}

	// Picking something up adds a target. The HUD notices the new role
	// count and re-places without hiding the hints.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.arm.Holding = !g.arm.Holding
		g.logger.Debug("holding", "on", g.arm.Holding)
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= panSpeed * step
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += panSpeed * step
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= panSpeed * step
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += panSpeed * step
	}
	if dx != 0 || dy != 0 {
		g.cam.Pan(dx, dy)
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		x, y := g.mountCameraPos()
		g.cam.ScrollTo(x, y, recenterFor, ease.InOutQuad)
	}
	if g.cam.Scrolling() {
		g.cam.update(dt)
		active = true
	}

	g.hud.Update(dt, hud.Input{Active: active, Roles: len(g.arm.Joints())})
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawBoard(screen)
	g.drawArm(screen)
	g.drawHints(screen, g.hud.Overlays(g.targets()))
	g.drawStatus(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.geo.ScreenWidth, g.geo.ScreenHeight
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "demo",
	})

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Fatal("load configuration", "err", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	g := newGame(cfg, logger)
	logger.Info("starting", "geometry", cfg.Geometry.Name, "mode", cfg.SearchMode)

	ebiten.SetWindowSize(cfg.Geometry.ScreenWidth*windowScale, cfg.Geometry.ScreenHeight*windowScale)
	ebiten.SetWindowTitle("CrankHint Demo")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		logger.Fatal("run", "err", err)
	}
}
