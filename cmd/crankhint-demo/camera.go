package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/piwi3910/CrankHint/internal/model"
)

// camera pans over the world. Its position is the top-left corner of the
// screen in world pixels.
type camera struct {
	X, Y float64

	scrollX, scrollY *gween.Tween
}

// ScrollTo animates the camera so that (x, y) ends up at the top-left corner.
func (c *camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollX = gween.New(float32(c.X), float32(x), duration, easeFn)
	c.scrollY = gween.New(float32(c.Y), float32(y), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is still running.
func (c *camera) Scrolling() bool {
	return c.scrollX != nil || c.scrollY != nil
}

// Pan moves the camera immediately and cancels any scroll animation.
func (c *camera) Pan(dx, dy float64) {
	c.scrollX, c.scrollY = nil, nil
	c.X += dx
	c.Y += dy
}

func (c *camera) update(dt float32) {
	if c.scrollX != nil {
		val, done := c.scrollX.Update(dt)
		c.X = float64(val)
		if done {
			c.scrollX = nil
		}
	}
	if c.scrollY != nil {
		val, done := c.scrollY.Update(dt)
		c.Y = float64(val)
		if done {
			c.scrollY = nil
		}
	}
}

// Viewport returns the projection for the current camera position.
func (c *camera) Viewport() model.Viewport {
	return model.Viewport{X: c.X, Y: c.Y}
}
