// Package raster turns UV polygon loops into pixel coverage on a W x H grid and
// composites them into an RGBA float canvas.
package raster

import (
	stdmath "math"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// nudge keeps coordinates that land exactly on a pixel boundary from picking
// up the neighbouring pixel.
const nudge = 0.01

// Boundary returns the pixel indices covered by the edges of the closed UV loop
// on a width x height grid. Each index is the offset of the pixel's red
// channel, (y*width + x) * 4, and appears once, in first-emission order.
//
// Coordinates are expected in [0,1]^2; indices outside the grid are returned
// as computed and left for the consumer to drop.
func Boundary(loop math.Polygon, width, height int) []int {
	if len(loop) == 0 || width < 1 || height < 1 {
		return nil
	}
	for _, p := range loop {
		if !finite(p.X) || !finite(p.Y) {
			return nil
		}
	}

	w, h := float64(width), float64(height)
	c, _ := loop.Centroid()
	mid := math.Vec2{X: c.X * w, Y: c.Y * h}

	var out []int
	seen := make(map[int]struct{})
	emit := func(x, y int) {
		i := (y*width + x) * 4
		if _, dup := seen[i]; dup {
			return
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}

	for i := range loop {
		a, b := loop.Edge(i)
		p1 := math.Vec2{X: a.X * w, Y: a.Y * h}
		p2 := math.Vec2{X: b.X * w, Y: b.Y * h}
		if p1 == p2 {
			continue
		}

		if stdmath.Abs(p2.X-p1.X) > stdmath.Abs(p2.Y-p1.Y) {
			walk(p1.X, p1.Y, p2.X, p2.Y, mid.Y, func(x, y int) { emit(x, y) })
		} else {
			walk(p1.Y, p1.X, p2.Y, p2.X, mid.X, func(y, x int) { emit(x, y) })
		}
	}
	return out
}

// walk steps one edge along its dominant axis d, interpolating the minor
// axis m. mid is the centroid on the minor axis; edges beyond it are
// top/right edges and round up, the others round down.
func walk(d1, m1, d2, m2, mid float64, emit func(d, m int)) {
	if d1 > d2 {
		d1, d2 = d2, d1
		m1, m2 = m2, m1
	}

	top := (m1+m2)/2 > mid
	if top {
		m1 -= 1 + nudge
		m2 -= 1 + nudge
	} else {
		m1 += nudge
		m2 += nudge
	}

	lo := stdmath.Floor(d1 + nudge)
	hi := stdmath.Ceil(d2 - nudge)
	if d1 != d2 {
		// Re-anchor the minor coordinates on the rounded dominant bounds. The
		// far end is measured from the already moved near end.
		m1 += (m2 - m1) * (lo - d1) / (d2 - d1)
		m2 = m1 + (m2-m1)*(hi-d1)/(d2-d1)
	}
	span := hi - lo
	if span <= 0 {
		return
	}
	step := (m2 - m1) / span

	for d := int(lo); d < int(hi); d++ {
		t := float64(d) - lo
		var m float64
		switch {
		case m1 < m2 && top:
			m = stdmath.Ceil(m1 + step*(t+1))
		case m1 < m2:
			m = stdmath.Floor(m1 + step*t)
		case top:
			m = stdmath.Ceil(m1 + step*t)
		default:
			m = stdmath.Floor(m1 + step*(t+1))
		}
		emit(d, int(m))
	}
}

func finite(f float64) bool {
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0)
}
