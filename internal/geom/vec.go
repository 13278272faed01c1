package geom

import "math"

// Vec is a 2D vector in world pixels (or pixels per second for velocities).
type Vec struct {
	X, Y float64
}

// V is shorthand for a Vec literal.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) LenSq() float64      { return v.X*v.X + v.Y*v.Y }
func (v Vec) Len() float64        { return math.Sqrt(v.LenSq()) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
func (v Vec) IsZero() bool        { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector in the direction of v, or the zero vector.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// FromAngle returns a vector of length mag pointing at angle rad.
func FromAngle(rad, mag float64) Vec {
	return Vec{math.Cos(rad) * mag, math.Sin(rad) * mag}
}
