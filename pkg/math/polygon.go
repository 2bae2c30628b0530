package math

// Polygon is a closed 2D loop. Vertex i connects to vertex (i+1) mod n.
type Polygon []Vec2

// Centroid returns the unweighted mean of the loop vertices.
// The second result is false for an empty loop.
func (p Polygon) Centroid() (Vec2, bool) {
	if len(p) == 0 {
		return Vec2{}, false
	}
	var sum Vec2
	for _, v := range p {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(p))), true
}

// Edge returns the i-th edge of the closed loop.
func (p Polygon) Edge(i int) (Vec2, Vec2) {
	return p[i], p[(i+1)%len(p)]
}

// Clone returns a copy of the loop.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}
