package uv

import (
	"fmt"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// Face is one mesh polygon: an ordered loop of vertex indices plus the UV
// coordinate stored for each loop corner.
type Face struct {
	Loop []int

	// Normal overrides the computed face normal when non-zero.
	Normal math.Vec3

	Selected bool

	// UVs holds one coordinate per loop corner. Unwraps allocate it on demand.
	UVs []math.Vec2

	// UVSelected marks loop corners for the UV editing operations.
	UVSelected []bool
}

// Mesh is the plain geometric data exchanged with the host editor.
type Mesh struct {
	Vertices []math.Vec3
	Faces    []Face
}

// Validate checks loop indices and per-corner slices.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		for _, vi := range f.Loop {
			if vi < 0 || vi >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d, vertex %d", ErrVertexIndex, fi, vi)
			}
		}
		if f.UVs != nil && len(f.UVs) != len(f.Loop) {
			return fmt.Errorf("%w: face %d has %d uvs for %d corners", ErrUVCount, fi, len(f.UVs), len(f.Loop))
		}
		if f.UVSelected != nil && len(f.UVSelected) != len(f.Loop) {
			return fmt.Errorf("%w: face %d has %d uv flags for %d corners", ErrUVCount, fi, len(f.UVSelected), len(f.Loop))
		}
	}
	return nil
}

// Positions returns the 3D loop of face i.
func (m *Mesh) Positions(i int) []math.Vec3 {
	f := &m.Faces[i]
	out := make([]math.Vec3, len(f.Loop))
	for k, vi := range f.Loop {
		out[k] = m.Vertices[vi]
	}
	return out
}

// FaceNormal returns the explicit normal of face i, or the Newell normal of
// its loop when none is set. Degenerate loops yield the zero vector.
func (m *Mesh) FaceNormal(i int) math.Vec3 {
	f := &m.Faces[i]
	if !f.Normal.IsZero() {
		return f.Normal
	}

	var n math.Vec3
	count := len(f.Loop)
	for k := 0; k < count; k++ {
		a := m.Vertices[f.Loop[k]]
		b := m.Vertices[f.Loop[(k+1)%count]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// FaceCenter returns the mean position of the loop of face i.
func (m *Mesh) FaceCenter(i int) math.Vec3 {
	f := &m.Faces[i]
	if len(f.Loop) == 0 {
		return math.Vec3{}
	}
	var c math.Vec3
	for _, vi := range f.Loop {
		c = c.Add(m.Vertices[vi])
	}
	return c.Scale(1 / float64(len(f.Loop)))
}

// UVPolygons returns the UV loop of every face that has coordinates.
// When selectedOnly is set, unselected faces are left out.
func (m *Mesh) UVPolygons(selectedOnly bool) []math.Polygon {
	polys := make([]math.Polygon, 0, len(m.Faces))
	for _, f := range m.Faces {
		if len(f.UVs) == 0 || (selectedOnly && !f.Selected) {
			continue
		}
		polys = append(polys, math.Polygon(f.UVs).Clone())
	}
	return polys
}

func (f *Face) ensureUVs() {
	if len(f.UVs) != len(f.Loop) {
		f.UVs = make([]math.Vec2, len(f.Loop))
	}
}

func (f *Face) uvSelected(k int) bool {
	if f.UVSelected == nil {
		return f.Selected
	}
	return f.UVSelected[k]
}
