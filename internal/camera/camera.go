// Package camera maps world pixels to the viewport: it follows the player,
// stays framed on the current room and can shake.
package camera

import (
	"math"

	"medieval-rogue/internal/geom"
)

// FollowLerp is the per-frame fraction of the distance to the target covered.
const FollowLerp = 0.18

// Camera is the top-left corner of the view in world coordinates plus a
// transient shake offset.
type Camera struct {
	W, H float64 // viewport size in world pixels
	X, Y float64

	ShakeX, ShakeY float64

	shakeMag  float64
	shakeLeft float64
	shakeLen  float64
	clock     float64
}

// New creates a camera with a w×h viewport at the world origin.
func New(w, h float64) *Camera {
	return &Camera{W: w, H: h}
}

// CenterOn snaps the view so p is in the middle.
func (c *Camera) CenterOn(p geom.Vec) {
	c.X = math.Floor(p.X - c.W/2)
	c.Y = math.Floor(p.Y - c.H/2)
}

// Follow eases the view toward centering p.
func (c *Camera) Follow(p geom.Vec, lerp float64) {
	c.X += (p.X - c.W/2 - c.X) * lerp
	c.Y += (p.Y - c.H/2 - c.Y) * lerp
}

// ClampToRoom keeps the view inside room, letting it show at most a band of
// wall beyond the interior. The band is max(8, min(gutter, inset+wall-8)).
func (c *Camera) ClampToRoom(room geom.Rect, inset, wall, gutter float64) {
	band := max(8, min(gutter, inset+wall-8))
	in := room.Inset(inset)

	minX := max(room.Left(), in.Left()-band)
	minY := max(room.Top(), in.Top()-band)
	maxX := min(room.Right()-c.W, in.Right()-c.W+band)
	maxY := min(room.Bottom()-c.H, in.Bottom()-c.H+band)
	// rooms smaller than the view pin to the top-left bound
	maxX = max(maxX, minX)
	maxY = max(maxY, minY)

	c.X = min(max(c.X, minX), maxX)
	c.Y = min(max(c.Y, minY), maxY)
}

// Shake starts a shake of the given magnitude in pixels, replacing a weaker one.
func (c *Camera) Shake(magnitude, duration float64) {
	if magnitude < c.currentMag() {
		return
	}
	c.shakeMag = magnitude
	c.shakeLeft = duration
	c.shakeLen = duration
}

func (c *Camera) currentMag() float64 {
	if c.shakeLeft <= 0 || c.shakeLen <= 0 {
		return 0
	}
	return c.shakeMag * c.shakeLeft / c.shakeLen
}

// Update advances the shake. The offset decays linearly to zero.
func (c *Camera) Update(dt float64) {
	c.clock += dt
	if c.shakeLeft <= 0 {
		c.ShakeX, c.ShakeY = 0, 0
		return
	}
	c.shakeLeft = max(0, c.shakeLeft-dt)
	m := c.currentMag()
	c.ShakeX = m * math.Sin(c.clock*73)
	c.ShakeY = m * math.Cos(c.clock*61)
}

// WorldToScreen converts a world point to integer viewport coordinates.
func (c *Camera) WorldToScreen(p geom.Vec) (int, int) {
	return int(math.Round(p.X - c.X + c.ShakeX)), int(math.Round(p.Y - c.Y + c.ShakeY))
}

// ScreenToWorld converts viewport coordinates back to the world.
func (c *Camera) ScreenToWorld(sx, sy float64) geom.Vec {
	return geom.V(sx+c.X-c.ShakeX, sy+c.Y-c.ShakeY)
}

// ApplyRect moves r into viewport space.
func (c *Camera) ApplyRect(r geom.Rect) geom.Rect {
	x, y := c.WorldToScreen(geom.V(r.X, r.Y))
	return geom.Rect{X: float64(x), Y: float64(y), W: r.W, H: r.H}
}

// View is the world rectangle currently visible, ignoring shake.
func (c *Camera) View() geom.Rect {
	return geom.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
}
