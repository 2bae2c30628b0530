package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pixel-perfect/pkg/math"
	"github.com/Faultbox/pixel-perfect/pkg/uv"
)

// FaceClass is the classification of one face.
type FaceClass struct {
	Face    int
	Normal  math.Vec3
	Axis    uv.Axis
	Score   uv.DirectionScore
	Skipped bool // empty loop or zero normal
}

// Classify reports the projection axis every face would get from a pixel
// unwrap. It does not modify doc.
func (p *Pipeline) Classify(doc *Document) ([]FaceClass, error) {
	m := doc.Mesh.ToUV()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := make([]FaceClass, len(m.Faces))
	var hist [uv.AxisCount]int
	skipped := 0
	for fi := range m.Faces {
		fc := FaceClass{Face: fi}
		if len(m.Faces[fi].Loop) == 0 {
			fc.Skipped = true
			out[fi] = fc
			skipped++
			continue
		}
		fc.Normal = m.FaceNormal(fi)
		axis, score, err := uv.Classify(fc.Normal)
		switch {
		case errors.Is(err, uv.ErrZeroNormal):
			fc.Skipped = true
			skipped++
		case err != nil:
			return nil, fmt.Errorf("face %d: %w", fi, err)
		default:
			fc.Axis, fc.Score = axis, score
			hist[axis.Index()]++
		}
		out[fi] = fc
	}

	fields := []zap.Field{zap.Int("faces", len(out)), zap.Int("skipped", skipped)}
	for _, a := range uv.Axes {
		fields = append(fields, zap.Int(a.String(), hist[a.Index()]))
	}
	p.log.Info("faces classified", fields...)
	return out, nil
}

// Isolate narrows the face selection of doc to faces facing dir within
// maxAngle radians. It returns the number of faces left selected.
func (p *Pipeline) Isolate(doc *Document, dir math.Vec3, maxAngle float64) (int, error) {
	m := doc.Mesh.ToUV()
	kept, err := uv.IsolateByDirection(m, dir, maxAngle)
	if err != nil {
		return 0, fmt.Errorf("isolate: %w", err)
	}
	if err := doc.Mesh.ApplyUV(m); err != nil {
		return 0, err
	}
	p.log.Info("selection isolated",
		zap.Float64s("direction", []float64{dir.X, dir.Y, dir.Z}),
		zap.Float64("max_angle", maxAngle),
		zap.Int("kept", kept),
	)
	return kept, nil
}

// EditOp selects a UV edit.
type EditOp string

// UV edits driven by a pointer position in UV space.
const (
	EditSnap   EditOp = "snap"   // move the nearest selected corner to a pixel center
	EditRotate EditOp = "rotate" // align the nearest selected edge to the closest axis
	EditMirror EditOp = "mirror" // mirror selected corners around the nearest one
)

// Edit applies op at pointer. It reports whether any coordinate changed.
func (p *Pipeline) Edit(doc *Document, op EditOp, pointer math.Vec2) (bool, error) {
	m := doc.Mesh.ToUV()
	if err := m.Validate(); err != nil {
		return false, err
	}

	var changed bool
	switch op {
	case EditSnap:
		grid, err := p.ResolveGrid(doc, p.cfg.Unwrap.FallbackWidth, p.cfg.Unwrap.FallbackHeight)
		if err != nil {
			return false, err
		}
		p.logGrid("snap", grid)
		changed = uv.SnapToPixel(m, pointer, grid.Width, grid.Height)
	case EditRotate:
		changed = uv.RotateToOrthogonal(m, pointer)
	case EditMirror:
		changed = uv.MirrorAroundVertex(m, pointer)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownMode, op)
	}

	if changed {
		if err := doc.Mesh.ApplyUV(m); err != nil {
			return false, err
		}
	}
	p.log.Info("uv edit",
		zap.String("op", string(op)),
		zap.Float64("u", pointer.X),
		zap.Float64("v", pointer.Y),
		zap.Bool("changed", changed),
	)
	return changed, nil
}
