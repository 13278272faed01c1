package geom

// Box is an entity hitbox: its size and its offset from the entity position.
// A player anchored at its feet-center would use OX=-W/2, OY=-H.
type Box struct {
	W, H   float64
	OX, OY float64
}

// Centered returns a w×h box centered on the entity position.
func Centered(w, h float64) Box {
	return Box{W: w, H: h, OX: -w / 2, OY: -h / 2}
}

// At returns the hitbox rectangle for an entity at (x, y).
func (b Box) At(x, y float64) Rect {
	return Rect{X: x + b.OX, Y: y + b.OY, W: b.W, H: b.H}
}

// MoveAndCollide moves an entity at (x, y) by (dx, dy) against static walls.
//
// The X displacement is resolved first against every wall, then Y using the
// already-resolved X. When stop is false a colliding axis is clamped to the
// wall edge facing the direction of travel, which lets entities slide along
// walls. When stop is true a colliding axis keeps its old coordinate; callers
// such as projectiles use the collided flag to despawn.
//
// Displacements are assumed shorter than the thinnest wall.
func MoveAndCollide(x, y float64, box Box, dx, dy float64, walls []Rect, stop bool) (float64, float64, bool) {
	collided := false

	cx := x + dx
	r := box.At(cx, y)
	for _, w := range walls {
		if !r.Overlaps(w) {
			continue
		}
		collided = true
		switch {
		case stop:
			cx = x
		case dx > 0:
			cx = w.Left() - box.OX - box.W
		case dx < 0:
			cx = w.Right() - box.OX
		}
		r = box.At(cx, y)
	}

	cy := y + dy
	r = box.At(cx, cy)
	for _, w := range walls {
		if !r.Overlaps(w) {
			continue
		}
		collided = true
		switch {
		case stop:
			cy = y
		case dy > 0:
			cy = w.Top() - box.OY - box.H
		case dy < 0:
			cy = w.Bottom() - box.OY
		}
		r = box.At(cx, cy)
	}

	return cx, cy, collided
}

// Collides reports whether a box at (x, y) overlaps any wall.
func Collides(x, y float64, box Box, walls []Rect) bool {
	r := box.At(x, y)
	for _, w := range walls {
		if r.Overlaps(w) {
			return true
		}
	}
	return false
}
