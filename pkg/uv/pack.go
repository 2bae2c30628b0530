package uv

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// AxisGroup collects the faces assigned to one axis and the extents of their
// projected corners. Extents are seeded at the origin, so an empty group has
// zero size.
type AxisGroup struct {
	Axis  Axis
	Faces []int
	Min   math.Vec2
	Max   math.Vec2
}

// Size returns Max - Min.
func (g *AxisGroup) Size() math.Vec2 {
	return g.Max.Sub(g.Min)
}

// Empty reports whether no face was added to the group.
func (g *AxisGroup) Empty() bool {
	return len(g.Faces) == 0
}

func (g *AxisGroup) extend(p math.Vec2) {
	g.Min.X = stdmath.Min(g.Min.X, p.X)
	g.Min.Y = stdmath.Min(g.Min.Y, p.Y)
	g.Max.X = stdmath.Max(g.Max.X, p.X)
	g.Max.Y = stdmath.Max(g.Max.Y, p.Y)
}

// Layout places the six axis groups side by side along U.
//
// Offsets[0] is always 0 and Offsets[i+1] = Offsets[i] + width of group i, so
// group i occupies [Offsets[i], Offsets[i+1]). Groups are not separated along V
// and may overlap vertically.
type Layout struct {
	Groups  [AxisCount]AxisGroup
	Offsets [AxisCount + 1]float64
	sealed  bool
}

// NewLayout returns an empty layout with one group per axis.
func NewLayout() *Layout {
	l := &Layout{}
	for _, a := range Axes {
		l.Groups[a.Index()].Axis = a
	}
	return l
}

// Add records face with its projected corners in the group of a.
func (l *Layout) Add(face int, a Axis, corners []math.Vec2) {
	g := &l.Groups[a.Index()]
	g.Faces = append(g.Faces, face)
	for _, p := range corners {
		g.extend(p)
	}
	l.sealed = false
}

// Seal computes the cumulative offsets. It must run after every Add and
// before Place.
func (l *Layout) Seal() {
	for i := range l.Groups {
		g := &l.Groups[i]
		l.Offsets[i+1] = l.Offsets[i] + (g.Max.X - g.Min.X)
	}
	l.sealed = true
}

// Place moves a corner projected along a into its packed position.
func (l *Layout) Place(a Axis, p math.Vec2) math.Vec2 {
	if !l.sealed {
		l.Seal()
	}
	i := a.Index()
	return math.Vec2{X: p.X - l.Groups[i].Min.X + l.Offsets[i], Y: p.Y}
}

// Interval returns the packed U range [lo, hi) of the group of a.
func (l *Layout) Interval(a Axis) (lo, hi float64) {
	if !l.sealed {
		l.Seal()
	}
	i := a.Index()
	return l.Offsets[i], l.Offsets[i+1]
}

// Pack lays out loose projected corners and snaps them to the grid of m.
// The result has one entry per input corner, in input order.
func Pack(points []Projected, m Mapper) []math.Vec2 {
	l := NewLayout()
	for i, p := range points {
		l.Add(i, p.Axis, []math.Vec2{p.UV})
	}
	l.Seal()

	out := make([]math.Vec2, len(points))
	for i, p := range points {
		out[i] = m.Snap(l.Place(p.Axis, p.UV))
	}
	return out
}
