package uv

import (
	"fmt"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// Project maps a 3D position onto the plane of axis a.
//
//	+X: ( y, z)   -X: (-y, z)
//	+Y: ( x, z)   -Y: (-x, z)
//	+Z: ( x, y)   -Z: (-x, y)
//
// An invalid axis panics.
func Project(v math.Vec3, a Axis) math.Vec2 {
	switch a {
	case PositiveX:
		return math.Vec2{X: v.Y, Y: v.Z}
	case NegativeX:
		return math.Vec2{X: -v.Y, Y: v.Z}
	case PositiveY:
		return math.Vec2{X: v.X, Y: v.Z}
	case NegativeY:
		return math.Vec2{X: -v.X, Y: v.Z}
	case PositiveZ:
		return math.Vec2{X: v.X, Y: v.Y}
	case NegativeZ:
		return math.Vec2{X: -v.X, Y: v.Y}
	}
	panic(fmt.Sprintf("uv: unsupported axis %d in Project", int(a)))
}

// Projected is one projected loop corner tagged with its axis bucket.
type Projected struct {
	Axis Axis
	UV   math.Vec2
}
