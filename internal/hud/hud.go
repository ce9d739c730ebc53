// Package hud decides when control hints are shown and where their
// overlays and arrows go. It owns the overlay session for the demo: any arm
// or camera input hides the hints and drops the cached placement, and a
// change in the number of targets drops it too.
package hud

import (
	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/model"
)

// DefaultIdleDelay is how long the player must stay idle before hints show, in seconds.
const DefaultIdleDelay = 3.0

const (
	bobDistance   = 6    // Pixels the arrows travel towards their targets
	bobHalfPeriod = 0.5  // Seconds for one leg of the bob
	arrowTail     = 16.0 // Arrow starts this far from the overlay centre
	arrowGap      = 10.0 // Arrow stops this far from the target
	arrowHead     = 6.0
)

// Input is what the game reports to the HUD each frame.
type Input struct {
	Active bool // Any crank, arm key or camera movement this frame
	Roles  int  // Number of targets currently on the arm
}

// Overlay is one hint ready to draw.
type Overlay struct {
	Role     model.Role
	X, Y     int // Overlay centre in screen pixels
	Label    string
	Arrow    Arrow
	HasArrow bool
}

// Hud tracks idle time and places hint overlays through an engine session.
type Hud struct {
	IdleDelay float32

	session *engine.Session
	logger  *log.Logger

	idle    float32
	visible bool

	bob       *gween.Tween
	bobOut    bool
	bobOffset float32
}

// New creates a hidden HUD that places overlays through session.
func New(session *engine.Session, logger *log.Logger) *Hud {
	if logger == nil {
		logger = log.Default()
	}
	return &Hud{
		IdleDelay: DefaultIdleDelay,
		session:   session,
		logger:    logger,
		bob:       gween.New(0, bobDistance, bobHalfPeriod, ease.InOutSine),
		bobOut:    true,
	}
}

// Update advances the HUD by dt seconds.
func (h *Hud) Update(dt float32, in Input) {
	h.session.ObserveRoles(in.Roles)

	if in.Active {
		if h.visible {
			h.logger.Debug("hints hidden", "session", h.session.ID())
		}
		h.idle = 0
		h.visible = false
		h.session.Invalidate()
		return
	}

	if h.visible {
		h.stepBob(dt)
		return
	}
	h.idle += dt
	if h.idle >= h.IdleDelay {
		h.visible = true
		h.logger.Debug("hints shown", "idle", h.idle)
	}
}

// stepBob moves the arrows back and forth, easing at both ends.
func (h *Hud) stepBob(dt float32) {
	val, done := h.bob.Update(dt)
	h.bobOffset = val
	if !done {
		return
	}
	h.bobOut = !h.bobOut
	if h.bobOut {
		h.bob = gween.New(0, bobDistance, bobHalfPeriod, ease.InOutSine)
	} else {
		h.bob = gween.New(bobDistance, 0, bobHalfPeriod, ease.InOutSine)
	}
}

// Visible reports whether hints are showing.
func (h *Hud) Visible() bool {
	return h.visible
}

// BobOffset returns the current arrow displacement in pixels.
func (h *Hud) BobOffset() float32 {
	return h.bobOffset
}

// Overlays returns the hints to draw, or nil while they are hidden. The
// first call after hints appear starts the overlay session; later calls
// reuse its positions even if targets have moved.
func (h *Hud) Overlays(targets []model.TargetPoint) []Overlay {
	if !h.visible {
		return nil
	}
	set := h.session.PlacementSet()
	overlays := make([]Overlay, 0, len(set.Slots))
	for _, s := range set.Slots {
		o := Overlay{Role: s.Role, X: s.X, Y: s.Y, Label: HintLabel(s.Role)}
		for _, t := range targets {
			if t.Role == s.Role {
				o.Arrow, o.HasArrow = NewArrow(s.Point(), t.Point(), arrowTail, arrowGap, arrowHead, h.bobOffset)
				break
			}
		}
		overlays = append(overlays, o)
	}
	return overlays
}

// HintLabel names the control that moves a role.
func HintLabel(r model.Role) string {
	switch r {
	case model.RoleBottomWrist:
		return "L/R"
	case model.RoleElbow:
		return "UP/DN"
	case model.RoleTopWrist:
		return "R"
	case model.RoleAction:
		return "SPACE"
	default:
		return "?"
	}
}
