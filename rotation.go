package hohmann

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// R3 returns the planar rotation by θ (counter-clockwise, active).
func R3(θ float64) *mat.Dense {
	s, c := math.Sincos(θ)
	return mat.NewDense(2, 2, []float64{c, -s, s, c})
}

// MxV22 multiplies a 2x2 matrix with a planar vector. Note that there is no dimension check!
func MxV22(m *mat.Dense, v Vec2) Vec2 {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(2, []float64{v.X, v.Y}))
	return Vec2{r.AtVec(0), r.AtVec(1)}
}
