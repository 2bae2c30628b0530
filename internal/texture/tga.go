// Package texture reads target textures (to learn the pixel grid) and writes
// composited UV layout canvases to image files.
package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA errors.
var (
	ErrTGATruncated   = errors.New("TGA data truncated")
	ErrTGAUnsupported = errors.New("unsupported TGA variant")
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const (
	tgaHeaderSize  = 18
	tgaTopToBottom = 0x20
)

// tgaHeader is the fixed 18-byte TGA header.
type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	descriptor   byte
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, ErrTGATruncated
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(binary.LittleEndian.Uint16(data[12:14])),
		height:       int(binary.LittleEndian.Uint16(data[14:16])),
		bpp:          int(data[16]),
		descriptor:   data[17],
	}

	if h.colorMapType != 0 {
		return h, fmt.Errorf("%w: color-mapped", ErrTGAUnsupported)
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("%w: type %d (only uncompressed/RLE true-color supported)", ErrTGAUnsupported, h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("%w: bit depth %d (only 24/32 supported)", ErrTGAUnsupported, h.bpp)
	}
	return h, nil
}

// DecodeTGAConfig returns the dimensions of a TGA image without decoding
// its pixels.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	var buf [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, ErrTGATruncated
	}
	h, err := parseTGAHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}
	src := data[offset:]

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8
	topToBottom := h.descriptor&tgaTopToBottom != 0
	pixelCount := h.width * h.height

	put := func(idx int, px []byte) {
		x := idx % h.width
		y := idx / h.width
		if !topToBottom {
			y = h.height - 1 - y
		}
		a := uint8(255)
		if bytesPerPixel == 4 {
			a = px[3]
		}
		img.SetNRGBA(x, y, color.NRGBA{R: px[2], G: px[1], B: px[0], A: a})
	}

	if h.imageType == TGATypeUncompressed {
		if len(src) < pixelCount*bytesPerPixel {
			return nil, ErrTGATruncated
		}
		for i := 0; i < pixelCount; i++ {
			put(i, src[i*bytesPerPixel:])
		}
		return img, nil
	}

	pixelIdx, dataIdx := 0, 0
	for pixelIdx < pixelCount {
		if dataIdx >= len(src) {
			return nil, ErrTGATruncated
		}
		packet := src[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet: one pixel repeated count times
			if dataIdx+bytesPerPixel > len(src) {
				return nil, ErrTGATruncated
			}
			px := src[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, px)
				pixelIdx++
			}
			continue
		}

		// Raw packet: count literal pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(src) {
				return nil, ErrTGATruncated
			}
			put(pixelIdx, src[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return img, nil
}

// EncodeTGA writes img as an uncompressed 32-bit TGA with a top-left origin.
func EncodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xFFFF || b.Dy() > 0xFFFF {
		return fmt.Errorf("%w: %dx%d exceeds 65535", ErrTGAUnsupported, b.Dx(), b.Dy())
	}

	var hdr [tgaHeaderSize]byte
	hdr[2] = TGATypeUncompressed
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(b.Dx()))
	binary.LittleEndian.PutUint16(hdr[14:16], uint16(b.Dy()))
	hdr[16] = 32
	hdr[17] = tgaTopToBottom | 8 // 8 alpha bits
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	row := make([]byte, b.Dx()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := (x - b.Min.X) * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.B, c.G, c.R, c.A
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
