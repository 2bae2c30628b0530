package texture

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Faultbox/pixel-perfect/pkg/raster"
)

// Format identifies an output codec.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatTGA  Format = "tga"
)

// jpegQuality is used for lossy output.
const jpegQuality = 95

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat accepts a format name or common extension alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "tga":
		return FormatTGA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatTGA:
		return EncodeTGA(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

// SaveCanvas writes the canvas to path, top row first. An empty format
// selects one from the extension. Parent directories are created.
func SaveCanvas(c *raster.Canvas, path string, f Format) error {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := Encode(file, c.Image(), f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return file.Close()
}
