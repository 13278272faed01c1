package geom

import "math"

// Search parameters for Relocate.
const (
	RelocateAngleStep = 15.0 // degrees
	RelocateRingStep  = 32.0
	RelocateRings     = 8
)

// Relocate returns p unchanged when it is at least radius away from avoid and a
// box placed there fits inside bounds without touching walls. Otherwise it
// searches rings of increasing radius around avoid, stepping RelocateAngleStep
// degrees per probe, starting from the direction of p. If no probe fits, the
// bounds corner farthest from avoid (pulled in by the box size) is returned.
//
// Both spawn placement at room entry and pattern placement use this.
func Relocate(p, avoid Vec, radius float64, box Box, walls []Rect, bounds Rect) Vec {
	if fits(p, avoid, radius, box, walls, bounds) {
		return p
	}

	base := math.Atan2(p.Y-avoid.Y, p.X-avoid.X)
	if p == avoid {
		base = 0
	}
	steps := int(360 / RelocateAngleStep)
	for ring := 0; ring < RelocateRings; ring++ {
		r := radius + float64(ring)*RelocateRingStep
		for i := 0; i < steps; i++ {
			// alternate sides of the original bearing: 0, +15, -15, +30, ...
			k := (i + 1) / 2
			if i%2 == 0 {
				k = -k
			}
			a := base + float64(k)*RelocateAngleStep*math.Pi/180
			c := avoid.Add(FromAngle(a, r))
			if fits(c, avoid, radius, box, walls, bounds) {
				return c
			}
		}
	}
	return farthestCorner(avoid, box, bounds)
}

func fits(p, avoid Vec, radius float64, box Box, walls []Rect, bounds Rect) bool {
	if p.Dist(avoid) < radius {
		return false
	}
	r := box.At(p.X, p.Y)
	if !bounds.ContainsRect(r) {
		return false
	}
	for _, w := range walls {
		if r.Overlaps(w) {
			return false
		}
	}
	return true
}

func farthestCorner(avoid Vec, box Box, bounds Rect) Vec {
	// positions whose box sits flush in each corner
	corners := [4]Vec{
		{bounds.Left() - box.OX, bounds.Top() - box.OY},
		{bounds.Right() - box.OX - box.W, bounds.Top() - box.OY},
		{bounds.Left() - box.OX, bounds.Bottom() - box.OY - box.H},
		{bounds.Right() - box.OX - box.W, bounds.Bottom() - box.OY - box.H},
	}
	best := corners[0]
	for _, c := range corners[1:] {
		if c.Dist(avoid) > best.Dist(avoid) {
			best = c
		}
	}
	return best
}
