// Package uv computes pixel-perfect UV layouts: it classifies faces by their
// dominant principal axis, projects them onto axis planes and packs the
// resulting groups into one UV page snapped to a pixel grid.
package uv

import (
	"fmt"
	"strings"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// Axis is one of the six principal projection directions.
type Axis int

const (
	PositiveX Axis = iota // +X
	NegativeX             // -X
	PositiveY             // +Y
	NegativeY             // -Y
	PositiveZ             // +Z
	NegativeZ             // -Z
)

// AxisCount is the number of projection directions.
const AxisCount = 6

// Axes lists every direction in enumeration order.
var Axes = [AxisCount]Axis{PositiveX, NegativeX, PositiveY, NegativeY, PositiveZ, NegativeZ}

// Valid reports whether a is one of the six directions.
func (a Axis) Valid() bool {
	return a >= PositiveX && a <= NegativeZ
}

// Inverse returns the direction with the opposite sign.
func (a Axis) Inverse() Axis {
	a.mustBeValid()
	// Pairs are laid out as (positive, negative), so flipping bit 0 swaps them.
	return a ^ 1
}

// Index returns the stable bucket key of a in [0, 6).
func (a Axis) Index() int {
	a.mustBeValid()
	return int(a)
}

// Positive reports whether a points along a positive pole.
func (a Axis) Positive() bool {
	return a.Index()%2 == 0
}

// Vector returns the unit vector of a.
func (a Axis) Vector() math.Vec3 {
	switch a {
	case PositiveX:
		return math.Vec3{X: 1}
	case NegativeX:
		return math.Vec3{X: -1}
	case PositiveY:
		return math.Vec3{Y: 1}
	case NegativeY:
		return math.Vec3{Y: -1}
	case PositiveZ:
		return math.Vec3{Z: 1}
	case NegativeZ:
		return math.Vec3{Z: -1}
	}
	panic(fmt.Sprintf("uv: invalid axis %d", int(a)))
}

// String returns "+X", "-Y" and so on.
func (a Axis) String() string {
	switch a {
	case PositiveX:
		return "+X"
	case NegativeX:
		return "-X"
	case PositiveY:
		return "+Y"
	case NegativeY:
		return "-Y"
	case PositiveZ:
		return "+Z"
	case NegativeZ:
		return "-Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses "+x", "-Y", "x" (positive) and similar spellings.
func ParseAxis(s string) (Axis, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 1 {
		s = "+" + s
	}
	for _, a := range Axes {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

func (a Axis) mustBeValid() {
	if !a.Valid() {
		panic(fmt.Sprintf("uv: invalid axis %d", int(a)))
	}
}
