package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageSize reports the pixel dimensions of the image at path. TGA has no
// magic number, so it is selected by extension; other formats are sniffed.
func ImageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	var cfg image.Config
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		cfg, err = DecodeTGAConfig(f)
	} else {
		cfg, _, err = image.DecodeConfig(f)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return cfg.Width, cfg.Height, nil
}
