package raster

import (
	"context"
	"errors"
	"testing"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

func TestCanvas_SetDropsOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	tests := []struct {
		idx  int
		want bool
	}{
		{0, true},
		{12, true},
		{16, false},
		{-4, false},
		{1000, false},
	}
	for _, tt := range tests {
		if got := c.Set(tt.idx, 1, 1, 1, 1); got != tt.want {
			t.Errorf("Set(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
	if len(c.Pix) != 16 {
		t.Errorf("buffer resized to %d", len(c.Pix))
	}
}

func TestCanvas_Checkerboard(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Checkerboard()
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r, g, b, a := c.At(x, y)
			want := float32(0)
			if (x+y)%2 == 1 {
				want = 0.1
			}
			if r != want || g != want || b != want || a != 1 {
				t.Errorf("pixel (%d,%d) = %v %v %v %v, want %v opaque", x, y, r, g, b, a, want)
			}
		}
	}
}

func TestCanvas_ImageFlipsRows(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(c.Offset(1, 0), 1, 0.5, 0, 1)
	img := c.Image()

	got := img.NRGBAAt(1, 1)
	if got.R != 255 || got.G != 128 || got.B != 0 || got.A != 255 {
		t.Errorf("bottom-right pixel = %v", got)
	}
	if top := img.NRGBAAt(1, 0); top.A != 0 {
		t.Errorf("top-right pixel should stay clear, got %v", top)
	}
}

func TestCanvas_Checksum(t *testing.T) {
	a := NewCanvas(4, 4)
	b := NewCanvas(4, 4)
	if a.Checksum() != b.Checksum() {
		t.Error("equal canvases hash differently")
	}
	b.Set(0, 0.5, 0, 0, 1)
	if a.Checksum() == b.Checksum() {
		t.Error("different canvases hash equally")
	}
	if NewCanvas(2, 8).Checksum() == NewCanvas(8, 2).Checksum() {
		t.Error("dimensions should be part of the checksum")
	}
}

func TestCompose_Square(t *testing.T) {
	square := math.Polygon{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	c, st, err := Compose(context.Background(), []math.Polygon{square}, 4, 4, Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if st.Polygons != 1 || st.Written != 12 || st.Dropped != 0 {
		t.Errorf("unexpected stats %+v", st)
	}

	r, g, b, a := c.At(0, 2)
	if r != 0.5 || g != 0.5 || b != 0 || a != 1 {
		t.Errorf("edge pixel = %v %v %v %v, want 0.5 0.5 0 1", r, g, b, a)
	}
	// Interior stays checkered.
	r, _, _, a = c.At(1, 1)
	if r != 0 || a != 1 {
		t.Errorf("interior pixel = %v alpha %v, want checker", r, a)
	}
	r, _, _, _ = c.At(2, 1)
	if r != 0.1 {
		t.Errorf("interior pixel = %v, want 0.1", r)
	}
}

func TestCompose_LaterOverwrites(t *testing.T) {
	square := math.Polygon{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	// Shares the bottom row with the square; averages to (1/3, 1/3).
	triangle := math.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	c, _, err := Compose(context.Background(), []math.Polygon{square, triangle}, 4, 4, Options{Transparent: true, Workers: 2})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := float32(1.0 / 3)
	r, g, _, _ := c.At(2, 0)
	if r != want || g != want {
		t.Errorf("shared pixel = %v %v, want %v from the later polygon", r, g, want)
	}
	r, g, _, _ = c.At(3, 2)
	if r != 0.5 || g != 0.5 {
		t.Errorf("square-only pixel = %v %v, want 0.5 0.5", r, g)
	}
}

func TestCompose_Transparent(t *testing.T) {
	c, st, err := Compose(context.Background(), []math.Polygon{nil}, 2, 2, Options{Transparent: true})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if st.Skipped != 1 || st.Polygons != 0 {
		t.Errorf("unexpected stats %+v", st)
	}
	for i, v := range c.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %v, want clear canvas", i, v)
		}
	}
}

func TestCompose_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	poly := math.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	_, _, err := Compose(ctx, []math.Polygon{poly}, 4, 4, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
