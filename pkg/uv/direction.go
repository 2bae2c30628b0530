package uv

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// planeRotation returns the rotation that takes the +Y plane normal onto dir
// with its Y component folded to be non-negative. Rotated positions are read
// as (x, z).
func planeRotation(dir math.Vec3) math.Quat {
	folded := math.Vec3{X: dir.X, Y: stdmath.Abs(dir.Y), Z: dir.Z}
	return math.RotationDifference(math.Vec3{Y: 1}, folded)
}

func planeUV(q math.Quat, p math.Vec3, mp Mapper) math.Vec2 {
	co := q.Rotate(p)
	return math.Vec2{X: mp.MapX(co.X), Y: mp.MapY(co.Z)}
}

// UnwrapByDirection projects every selected face onto the plane whose normal
// is dir. Coordinates are scaled by mp but not snapped.
func UnwrapByDirection(m *Mesh, dir math.Vec3, mp Mapper) error {
	if dir.IsZero() {
		return ErrZeroDirection
	}
	if err := m.Validate(); err != nil {
		return err
	}

	q := planeRotation(dir)
	for fi := range m.Faces {
		f := &m.Faces[fi]
		if !f.Selected {
			continue
		}
		f.ensureUVs()
		for k, vi := range f.Loop {
			f.UVs[k] = planeUV(q, m.Vertices[vi], mp)
		}
	}
	return nil
}

// UnwrapByNormal projects each selected face onto its own plane, around the
// face center, and keeps the face at the center of its current UVs.
// Faces with a zero normal are left untouched.
func UnwrapByNormal(m *Mesh, mp Mapper) error {
	if err := m.Validate(); err != nil {
		return err
	}

	for fi := range m.Faces {
		f := &m.Faces[fi]
		if !f.Selected || len(f.Loop) == 0 {
			continue
		}
		n := m.FaceNormal(fi)
		if n.IsZero() {
			continue
		}
		f.ensureUVs()

		center, _ := math.Polygon(f.UVs).Centroid()
		origin := m.FaceCenter(fi)
		q := planeRotation(n)
		for k, vi := range f.Loop {
			f.UVs[k] = planeUV(q, m.Vertices[vi].Sub(origin), mp).Add(center)
		}
	}
	return nil
}

// autoOrder is the bucket order used by UnwrapAutoDirection.
var autoOrder = [AxisCount]Axis{PositiveY, NegativeY, PositiveX, NegativeX, PositiveZ, NegativeZ}

// autoThresholds are tried in order; a face joins the first bucket whose
// direction lies within the current threshold.
var autoThresholds = []float64{stdmath.Pi / 4, stdmath.Pi / 3, stdmath.Pi / 2}

type autoBucket struct {
	dir   math.Vec3
	faces []int
	min   math.Vec2
	max   math.Vec2
}

func (b *autoBucket) size() math.Vec2 {
	return b.max.Sub(b.min)
}

// UnwrapAutoDirection assigns each selected face to the principal direction
// its normal faces most closely, projects every bucket onto its plane and
// arranges the six buckets in a cross:
//
//	      +Z
//	+Y -X -Y +X
//	      -Z
//
// +Z and -Z share the column of -Y. Faces with a zero normal are left untouched.
func UnwrapAutoDirection(m *Mesh, mp Mapper) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var buckets [AxisCount]autoBucket
	for i, a := range autoOrder {
		buckets[i].dir = a.Vector()
	}

	var pending []int
	for fi := range m.Faces {
		if m.Faces[fi].Selected && len(m.Faces[fi].Loop) > 0 {
			pending = append(pending, fi)
		}
	}

	for _, limit := range autoThresholds {
		remaining := pending[:0]
		for _, fi := range pending {
			n := m.FaceNormal(fi)
			placed := false
			for i := range buckets {
				if n.Angle(buckets[i].dir, stdmath.Inf(1)) <= limit {
					buckets[i].faces = append(buckets[i].faces, fi)
					placed = true
					break
				}
			}
			if !placed {
				remaining = append(remaining, fi)
			}
		}
		pending = remaining
	}

	for i := range buckets {
		b := &buckets[i]
		if len(b.faces) == 0 {
			continue
		}
		q := planeRotation(b.dir)
		b.min = math.Vec2{X: stdmath.MaxFloat64, Y: stdmath.MaxFloat64}
		b.max = math.Vec2{X: -stdmath.MaxFloat64, Y: -stdmath.MaxFloat64}
		for _, fi := range b.faces {
			f := &m.Faces[fi]
			f.ensureUVs()
			for k, vi := range f.Loop {
				uv := planeUV(q, m.Vertices[vi], mp)
				f.UVs[k] = uv
				b.min.X = stdmath.Min(b.min.X, uv.X)
				b.min.Y = stdmath.Min(b.min.Y, uv.Y)
				b.max.X = stdmath.Max(b.max.X, uv.X)
				b.max.Y = stdmath.Max(b.max.Y, uv.Y)
			}
		}
	}

	py, ny, px, nx, pz, nz := &buckets[0], &buckets[1], &buckets[2], &buckets[3], &buckets[4], &buckets[5]
	top := 1 - pz.size().Y
	moves := [AxisCount]math.Vec2{
		{X: -py.min.X, Y: -py.max.Y + top},
		{X: -ny.min.X + py.size().X + nx.size().X, Y: -ny.max.Y + top},
		{X: -px.min.X + py.size().X + nx.size().X + ny.size().X, Y: -px.max.Y + top},
		{X: -nx.min.X + py.size().X, Y: -nx.max.Y + top},
		{X: -pz.min.X + py.size().X + nx.size().X, Y: -pz.max.Y + 1},
		{X: -nz.min.X + py.size().X + nx.size().X, Y: -nz.max.Y + top - py.size().Y},
	}

	for i := range buckets {
		for _, fi := range buckets[i].faces {
			f := &m.Faces[fi]
			for k := range f.UVs {
				f.UVs[k] = f.UVs[k].Add(moves[i])
			}
		}
	}
	return nil
}
