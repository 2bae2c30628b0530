package pipeline

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/pixel-perfect/pkg/math"
	"github.com/Faultbox/pixel-perfect/pkg/uv"
)

// Mode selects an unwrap operation.
type Mode string

// Unwrap modes.
const (
	ModePixel     Mode = "pixel"     // six-axis classify and pack
	ModeAuto      Mode = "auto"      // angle-bucketed cross layout
	ModeNormal    Mode = "normal"    // per-face plane, keeps UV centroid
	ModeDirection Mode = "direction" // one plane for all selected faces
)

// Modes lists every unwrap mode.
var Modes = []Mode{ModePixel, ModeAuto, ModeNormal, ModeDirection}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// UnwrapRequest describes one unwrap run.
type UnwrapRequest struct {
	Mode      Mode
	Direction math.Vec3 // ModeDirection only
}

// UnwrapReport summarizes an unwrap run.
type UnwrapReport struct {
	Grid      Grid
	Mode      Mode
	Faces     int
	Written   int
	Skipped   int
	Histogram [uv.AxisCount]int // ModePixel only
}

// Unwrap computes new UVs for doc in place.
func (p *Pipeline) Unwrap(doc *Document, req UnwrapRequest) (UnwrapReport, error) {
	grid, err := p.ResolveGrid(doc, p.cfg.Unwrap.FallbackWidth, p.cfg.Unwrap.FallbackHeight)
	if err != nil {
		return UnwrapReport{}, err
	}
	p.logGrid("unwrap", grid)

	m := doc.Mesh.ToUV()
	mp := grid.Mapper()
	rep := UnwrapReport{Grid: grid, Mode: req.Mode, Faces: len(m.Faces)}

	switch req.Mode {
	case ModePixel:
		res, err := uv.UnwrapPixelPerfect(m, mp, uv.UnwrapOptions{SelectedOnly: p.cfg.Unwrap.SelectedOnly})
		if err != nil {
			return rep, fmt.Errorf("pixel unwrap: %w", err)
		}
		for _, f := range res.Faces {
			if f.Skipped {
				rep.Skipped++
			}
			if f.Written {
				rep.Written++
			}
		}
		rep.Histogram = res.Histogram()
	case ModeAuto:
		err = uv.UnwrapAutoDirection(m, mp)
		rep.Written = countSelected(m)
	case ModeNormal:
		err = uv.UnwrapByNormal(m, mp)
		rep.Written = countSelected(m)
	case ModeDirection:
		err = uv.UnwrapByDirection(m, req.Direction, mp)
		rep.Written = countSelected(m)
	default:
		return rep, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if err != nil {
		return rep, fmt.Errorf("%s unwrap: %w", req.Mode, err)
	}

	if err := doc.Mesh.ApplyUV(m); err != nil {
		return rep, err
	}

	fields := []zap.Field{
		zap.String("mode", string(rep.Mode)),
		zap.Int("faces", rep.Faces),
		zap.Int("written", rep.Written),
		zap.Int("skipped", rep.Skipped),
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
	}
	if req.Mode == ModePixel {
		for _, a := range uv.Axes {
			fields = append(fields, zap.Int(a.String(), rep.Histogram[a.Index()]))
		}
	}
	p.log.Info("unwrap done", fields...)
	return rep, nil
}

func countSelected(m *uv.Mesh) int {
	n := 0
	for _, f := range m.Faces {
		if f.Selected {
			n++
		}
	}
	return n
}
