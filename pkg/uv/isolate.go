package uv

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// DefaultIsolateAngle is the default maximum deviation for IsolateByDirection.
const DefaultIsolateAngle = stdmath.Pi / 4

// IsolateByDirection narrows the face selection to faces whose normal lies
// within maxAngle radians of dir. It returns the number of faces that stay
// selected. Zero normals count as aligned.
func IsolateByDirection(m *Mesh, dir math.Vec3, maxAngle float64) (int, error) {
	if dir.IsZero() {
		return 0, ErrZeroDirection
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}

	kept := 0
	for fi := range m.Faces {
		f := &m.Faces[fi]
		if !f.Selected {
			continue
		}
		if m.FaceNormal(fi).Angle(dir, 0) <= maxAngle {
			kept++
			continue
		}
		f.Selected = false
		for k := range f.UVSelected {
			f.UVSelected[k] = false
		}
	}
	return kept, nil
}
