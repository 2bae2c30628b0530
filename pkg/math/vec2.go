// Package math provides the small vector, quaternion and matrix types used by
// the UV algorithms. All types are float64 value types.
package math

import "math"

// Vec2 is a 2D vector or UV coordinate.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul returns the component-wise product.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Project returns the projection of v onto other.
// Projecting onto a zero vector yields the zero vector.
func (v Vec2) Project(other Vec2) Vec2 {
	l2 := other.LengthSquared()
	if l2 == 0 {
		return Vec2{}
	}
	return other.Scale(v.Dot(other) / l2)
}

// Atan2 returns the angle of v measured counter-clockwise from +X, in radians.
func (v Vec2) Atan2() float64 {
	return math.Atan2(v.Y, v.X)
}
