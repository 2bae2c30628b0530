// Package pipeline connects mesh documents, the unwrap and raster algorithms,
// image I/O and logging. Operations modify a loaded Document in place; the
// caller decides where to save it.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/pixel-perfect/internal/config"
	"github.com/Faultbox/pixel-perfect/internal/texture"
	"github.com/Faultbox/pixel-perfect/pkg/formats"
	"github.com/Faultbox/pixel-perfect/pkg/uv"
)

// ErrUnknownMode is returned for an unwrap mode or edit op that does not exist.
var ErrUnknownMode = errors.New("unknown mode")

// Document is a mesh document together with the path it was read from.
// Relative image paths resolve against the document's directory.
type Document struct {
	Path string
	Mesh *formats.Mesh
}

// LoadDocument reads a mesh document.
func LoadDocument(path string) (*Document, error) {
	m, err := formats.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Mesh: m}, nil
}

// Save writes the document to path, or back to its own path when empty.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.Path
	}
	if err := d.Mesh.Save(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// imagePath returns the texture bound to the document, resolved against its
// directory.
func (d *Document) imagePath() string {
	img := d.Mesh.Image
	if img == "" || filepath.IsAbs(img) || d.Path == "" {
		return img
	}
	return filepath.Join(filepath.Dir(d.Path), img)
}

// Pipeline runs operations with one configuration and logger.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// New returns a pipeline. A nil logger discards output.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// GridSource tells where a grid size came from.
type GridSource string

// Grid sources, in priority order.
const (
	GridExplicit GridSource = "explicit"
	GridImage    GridSource = "image"
	GridFallback GridSource = "fallback"
)

// Grid is the resolved pixel grid.
type Grid struct {
	Width     int
	Height    int
	UnitScale float64
	Source    GridSource
	Image     string
}

// Mapper returns the UV mapper for the grid.
func (g Grid) Mapper() uv.Mapper {
	return uv.NewMapper(g.UnitScale, g.Width, g.Height)
}

// ResolveGrid picks the pixel grid: an explicit configured size, else the size
// of the configured or document-bound image, else the fallback size. The unit
// scale comes from the document when it carries one.
func (p *Pipeline) ResolveGrid(doc *Document, fallbackW, fallbackH int) (Grid, error) {
	g := Grid{UnitScale: p.cfg.Grid.UnitScale}
	if doc.Mesh.UnitScale > 0 {
		g.UnitScale = doc.Mesh.UnitScale
	}
	if g.UnitScale <= 0 {
		g.UnitScale = 1
	}

	if p.cfg.Grid.Width > 0 && p.cfg.Grid.Height > 0 {
		g.Width, g.Height, g.Source = p.cfg.Grid.Width, p.cfg.Grid.Height, GridExplicit
		return g, nil
	}

	img := p.cfg.Grid.Image
	if img == "" {
		img = doc.imagePath()
	}
	if img != "" {
		w, h, err := texture.ImageSize(img)
		if err != nil {
			return Grid{}, fmt.Errorf("resolving grid: %w", err)
		}
		g.Width, g.Height, g.Source, g.Image = w, h, GridImage, img
		return g, nil
	}

	g.Width, g.Height, g.Source = fallbackW, fallbackH, GridFallback
	return g, nil
}

func (p *Pipeline) logGrid(op string, g Grid) {
	p.log.Debug("grid resolved",
		zap.String("op", op),
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
		zap.Float64("unit_scale", g.UnitScale),
		zap.String("source", string(g.Source)),
		zap.String("image", g.Image),
	)
}
