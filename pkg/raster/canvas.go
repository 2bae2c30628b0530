package raster

import (
	"encoding/binary"
	"image"
	"image/color"
	stdmath "math"

	"github.com/cespare/xxhash/v2"
)

// Checkerboard shades.
const (
	checkerDark  = 0.0
	checkerLight = 0.1
)

// Canvas is a Width x Height grid of RGBA float pixels stored row-major.
// Pixel (x, y) occupies Pix[(y*Width+x)*4 : +4]; row 0 is the bottom row.
type Canvas struct {
	Width  int
	Height int
	Pix    []float32
}

// NewCanvas returns a transparent black canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}
}

// Offset returns the red-channel index of pixel (x, y).
func (c *Canvas) Offset(x, y int) int {
	return (y*c.Width + x) * 4
}

// Set writes one pixel at red-channel index i. Indices outside the buffer are
// dropped; the result reports whether the write happened.
func (c *Canvas) Set(i int, r, g, b, a float32) bool {
	if i < 0 || i+3 >= len(c.Pix) {
		return false
	}
	c.Pix[i] = r
	c.Pix[i+1] = g
	c.Pix[i+2] = b
	c.Pix[i+3] = a
	return true
}

// At returns the channels of pixel (x, y), or zeros outside the canvas.
func (c *Canvas) At(x, y int) (r, g, b, a float32) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0, 0, 0, 0
	}
	i := c.Offset(x, y)
	return c.Pix[i], c.Pix[i+1], c.Pix[i+2], c.Pix[i+3]
}

// Checkerboard fills the canvas with opaque alternating dark shades chosen by
// (x+y) mod 2.
func (c *Canvas) Checkerboard() {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			v := float32(checkerDark)
			if (x+y)%2 != 0 {
				v = checkerLight
			}
			c.Set(c.Offset(x, y), v, v, v, 1)
		}
	}
}

// Image converts the canvas to 8-bit non-premultiplied RGBA. Canvas row 0 is
// the bottom image row, matching UV space where v grows upward.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		dstY := c.Height - 1 - y
		for x := 0; x < c.Width; x++ {
			r, g, b, a := c.At(x, y)
			img.SetNRGBA(x, dstY, color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: to8(a)})
		}
	}
	return img
}

// Checksum hashes the raw float buffer. Equal canvases hash equal.
func (c *Canvas) Checksum() uint64 {
	d := xxhash.New()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(c.Width))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:], uint32(c.Height))
	_, _ = d.Write(buf[:])
	for _, v := range c.Pix {
		binary.LittleEndian.PutUint32(buf[:], stdmath.Float32bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func to8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
