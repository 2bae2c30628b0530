package math

import "math"

// Mat2 is a 2x2 matrix in row-major order.
// Layout: [m0 m1]
//
//	[m2 m3]
type Mat2 [4]float64

// Rotation2 returns a counter-clockwise rotation by angle radians.
func Rotation2(angle float64) Mat2 {
	s, c := math.Sincos(angle)
	return Mat2{
		c, -s,
		s, c,
	}
}

// MulVec2 returns m * v.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y,
		m[2]*v.X + m[3]*v.Y,
	}
}
