package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pixel-perfect/internal/texture"
	"github.com/Faultbox/pixel-perfect/pkg/raster"
)

// ExportReport summarizes a layout export.
type ExportReport struct {
	Grid     Grid
	Path     string
	Format   texture.Format
	Stats    raster.Stats
	Checksum uint64
}

// Export rasterizes the UV loops of doc onto a canvas the size of the grid
// and writes it to out.
func (p *Pipeline) Export(ctx context.Context, doc *Document, out string) (ExportReport, error) {
	grid, err := p.ResolveGrid(doc, p.cfg.Export.FallbackWidth, p.cfg.Export.FallbackHeight)
	if err != nil {
		return ExportReport{}, err
	}
	p.logGrid("export", grid)

	format := texture.Format("")
	if p.cfg.Export.Format != "" {
		if format, err = texture.ParseFormat(p.cfg.Export.Format); err != nil {
			return ExportReport{}, err
		}
	} else if format, err = texture.FormatFromPath(out); err != nil {
		return ExportReport{}, err
	}

	polys := doc.Mesh.ToUV().UVPolygons(p.cfg.Export.SelectedOnly)

	start := time.Now()
	canvas, stats, err := raster.Compose(ctx, polys, grid.Width, grid.Height, raster.Options{
		Transparent: p.cfg.Export.Transparent,
		Workers:     p.cfg.Export.Workers,
	})
	if err != nil {
		return ExportReport{}, fmt.Errorf("composing layout: %w", err)
	}

	if err := texture.SaveCanvas(canvas, out, format); err != nil {
		return ExportReport{}, fmt.Errorf("writing %s: %w", out, err)
	}

	rep := ExportReport{
		Grid:     grid,
		Path:     out,
		Format:   format,
		Stats:    stats,
		Checksum: canvas.Checksum(),
	}
	p.log.Info("layout exported",
		zap.String("path", out),
		zap.String("format", string(format)),
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Int("polygons", stats.Polygons),
		zap.Int("skipped", stats.Skipped),
		zap.Int("pixels", stats.Written),
		zap.Int("dropped", stats.Dropped),
		zap.String("checksum", strconv.FormatUint(rep.Checksum, 16)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rep, nil
}
