package raster

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// Options controls Compose.
type Options struct {
	// Transparent leaves the background clear instead of checkered.
	Transparent bool

	// Workers bounds the goroutines computing polygon boundaries.
	// Zero means GOMAXPROCS.
	Workers int
}

// Stats summarizes a Compose run.
type Stats struct {
	Polygons int // polygons stamped
	Skipped  int // empty polygons
	Written  int // pixel writes that landed inside the canvas
	Dropped  int // out-of-range indices
}

// Compose builds a width x height canvas and stamps the boundary of every
// polygon with its average UV position encoded as (u, v, 0, 1). Boundaries
// are computed in parallel and stamped in input order, so later polygons
// overwrite earlier ones.
func Compose(ctx context.Context, polys []math.Polygon, width, height int, opts Options) (*Canvas, Stats, error) {
	c := NewCanvas(width, height)
	if !opts.Transparent {
		c.Checkerboard()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cells := make([][]int, len(polys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range polys {
		if len(p) == 0 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cells[i] = Boundary(p, width, height)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	var st Stats
	for i, p := range polys {
		avg, ok := p.Centroid()
		if !ok {
			st.Skipped++
			continue
		}
		st.Polygons++
		r, gr := float32(clamp01(avg.X)), float32(clamp01(avg.Y))
		for _, idx := range cells[i] {
			if c.Set(idx, r, gr, 0, 1) {
				st.Written++
			} else {
				st.Dropped++
			}
		}
	}
	return c, st, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
