package uv

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// Mapper converts object-space projected coordinates into normalized UVs on a
// Width x Height pixel grid.
type Mapper struct {
	UnitScale float64
	Width     int
	Height    int
}

// NewMapper returns a Mapper. Non-positive grid sizes become 1 and a zero
// unit scale becomes 1.
func NewMapper(unitScale float64, width, height int) Mapper {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if unitScale == 0 {
		unitScale = 1
	}
	return Mapper{UnitScale: unitScale, Width: width, Height: height}
}

// MapX scales x without snapping.
func (m Mapper) MapX(x float64) float64 {
	return x * m.UnitScale / float64(m.Width)
}

// MapY scales y without snapping.
func (m Mapper) MapY(y float64) float64 {
	return y * m.UnitScale / float64(m.Height)
}

// Snap scales p by the unit scale, rounds to a whole pixel and normalizes by
// the grid size. Halves round to even.
func (m Mapper) Snap(p math.Vec2) math.Vec2 {
	return math.Vec2{
		X: stdmath.RoundToEven(p.X*m.UnitScale) / float64(m.Width),
		Y: stdmath.RoundToEven(p.Y*m.UnitScale) / float64(m.Height),
	}
}

// ClosestPixel returns the grid boundary nearest to a normalized UV.
func ClosestPixel(p math.Vec2, width, height int) math.Vec2 {
	w, h := float64(width), float64(height)
	return math.Vec2{
		X: stdmath.RoundToEven(p.X*w) / w,
		Y: stdmath.RoundToEven(p.Y*h) / h,
	}
}
