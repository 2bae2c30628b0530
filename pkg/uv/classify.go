package uv

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// DirectionScore is the result of comparing a face normal with one positive
// principal axis.
type DirectionScore struct {
	// Deviation is the rescaled cosine (1 - cos) * 90, in [0, 180].
	// It is 0 when aligned, 90 when orthogonal and 180 when opposite. It is a
	// ranking metric, not a geometric angle.
	Deviation float64

	// Abs folds Deviation so both poles of the axis score alike; in [0, 90].
	Abs float64

	// Axis is the tested axis, or its inverse when the normal points toward
	// the negative pole.
	Axis Axis
}

// Score compares normal with the positive axis a.
// Negative axes are never scored; passing one is a programming error.
func Score(normal math.Vec3, a Axis) (DirectionScore, error) {
	if !a.Valid() || !a.Positive() {
		panic("uv: unsupported axis " + a.String() + " in Score")
	}
	l := normal.Length()
	if l == 0 || stdmath.IsNaN(l) || stdmath.IsInf(l, 0) {
		return DirectionScore{}, ErrZeroNormal
	}

	cos := normal.Dot(a.Vector()) / l
	dev := (1 - cos) * 90

	s := DirectionScore{
		Deviation: dev,
		Abs:       stdmath.Abs(stdmath.Abs(dev-90) - 90),
		Axis:      a,
	}
	if dev > 90 {
		s.Axis = a.Inverse()
	}
	return s, nil
}

// Classify picks the best-fitting of the six axes for normal.
// +X, +Y and +Z are scored in that order; ties go to the earlier axis.
func Classify(normal math.Vec3) (Axis, DirectionScore, error) {
	x, err := Score(normal, PositiveX)
	if err != nil {
		return 0, DirectionScore{}, err
	}
	y, _ := Score(normal, PositiveY)
	z, _ := Score(normal, PositiveZ)

	switch {
	case x.Abs <= y.Abs && x.Abs <= z.Abs:
		return x.Axis, x, nil
	case y.Abs <= z.Abs:
		return y.Axis, y, nil
	default:
		return z.Axis, z, nil
	}
}
