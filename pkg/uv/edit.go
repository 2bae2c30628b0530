package uv

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// corner addresses one UV corner of a face.
type corner struct {
	face, k int
}

func (m *Mesh) uv(c corner) math.Vec2 {
	return m.Faces[c.face].UVs[c.k]
}

func (m *Mesh) setUV(c corner, p math.Vec2) {
	m.Faces[c.face].UVs[c.k] = p
}

// selectedCorners returns every selected corner that has a coordinate.
func (m *Mesh) selectedCorners() []corner {
	var out []corner
	for fi := range m.Faces {
		f := &m.Faces[fi]
		if len(f.UVs) != len(f.Loop) {
			continue
		}
		for k := range f.UVs {
			if f.uvSelected(k) {
				out = append(out, corner{fi, k})
			}
		}
	}
	return out
}

func (m *Mesh) nearest(cs []corner, p math.Vec2) corner {
	best := cs[0]
	bestDist := stdmath.MaxFloat64
	for _, c := range cs {
		if d := p.Sub(m.uv(c)).LengthSquared(); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// SnapToPixel moves the selected corner nearest to pointer onto its closest
// pixel boundary of a width x height grid, and translates every other
// selected corner by the same amount. It reports whether anything moved.
func SnapToPixel(m *Mesh, pointer math.Vec2, width, height int) bool {
	cs := m.selectedCorners()
	if len(cs) == 0 || width < 1 || height < 1 {
		return false
	}

	anchor := m.uv(m.nearest(cs, pointer))
	delta := ClosestPixel(anchor, width, height).Sub(anchor)
	for _, c := range cs {
		m.setUV(c, m.uv(c).Add(delta))
	}
	return delta != math.Vec2{}
}

// MirrorAroundVertex mirrors the selected corners around the one nearest to
// pointer. When pointer is offset mostly horizontally from that pivot the
// selection flips vertically; otherwise it flips horizontally.
func MirrorAroundVertex(m *Mesh, pointer math.Vec2) bool {
	cs := m.selectedCorners()
	if len(cs) == 0 {
		return false
	}

	pivot := m.uv(m.nearest(cs, pointer))
	off := pointer.Sub(pivot)
	axis := math.Vec2{X: 1, Y: -1}
	if stdmath.Abs(off.X) < stdmath.Abs(off.Y) {
		axis = math.Vec2{X: -1, Y: 1}
	}

	for _, c := range cs {
		m.setUV(c, m.uv(c).Sub(pivot).Mul(axis).Add(pivot))
	}
	return true
}

// RotateToOrthogonal picks the selected corner nearest to pointer that has a
// selected neighbour, takes the neighbouring edge whose line passes closest to
// pointer, and rotates the whole selection around that corner so the edge
// becomes parallel to the U or V axis. At least two corners must be selected.
func RotateToOrthogonal(m *Mesh, pointer math.Vec2) bool {
	cs := m.selectedCorners()
	if len(cs) < 2 {
		return false
	}

	var (
		pivot     math.Vec2
		edge      math.Vec2
		found     bool
		bestPoint = stdmath.MaxFloat64
		bestLine  = stdmath.MaxFloat64
	)

	for fi := range m.Faces {
		f := &m.Faces[fi]
		n := len(f.UVs)
		if n != len(f.Loop) || n < 2 {
			continue
		}
		for k := 0; k < n; k++ {
			if !f.uvSelected(k) {
				continue
			}
			p := f.UVs[k]
			rel := pointer.Sub(p)
			dist := rel.LengthSquared()
			if dist > bestPoint {
				continue
			}
			for _, j := range [2]int{(k + n - 1) % n, (k + 1) % n} {
				if j == k || !f.uvSelected(j) {
					continue
				}
				e := f.UVs[j].Sub(p)
				if e.LengthSquared() == 0 {
					continue
				}
				line := rel.Project(e).Sub(rel).Length()
				if dist < bestPoint || line < bestLine {
					bestPoint, bestLine = dist, line
					pivot, edge, found = p, e, true
				}
			}
		}
	}
	if !found {
		return false
	}

	quarter := stdmath.Pi / 2
	theta := edge.Atan2()
	rot := math.Rotation2(stdmath.Round(theta/quarter)*quarter - theta)
	for _, c := range cs {
		m.setUV(c, rot.MulVec2(m.uv(c).Sub(pivot)).Add(pivot))
	}
	return true
}
