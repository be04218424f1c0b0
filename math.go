package hohmann

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	deg2rad = math.Pi / 180
	twoPi   = 2 * math.Pi
)

// Vec2 is a planar vector, expressed in the focus-centred inertial frame.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Norm returns the Euclidean norm of the vector.
func (v Vec2) Norm() float64 {
	return floats.Norm([]float64{v.X, v.Y}, 2)
}

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Scale returns s*v.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{s * v.X, s * v.Y}
}

// normalizeAngle wraps an angle into [0, 2π).
func normalizeAngle(θ float64) float64 {
	θ = math.Mod(θ, twoPi)
	if θ < 0 {
		θ += twoPi
	}
	return θ
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	return normalizeAngle(a * deg2rad)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	return normalizeAngle(a) / deg2rad
}
