package uv

import (
	"errors"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// UnwrapOptions controls which faces receive new coordinates.
type UnwrapOptions struct {
	// SelectedOnly restricts write-back to selected faces. Every face still
	// takes part in classification and packing.
	SelectedOnly bool
}

// FaceResult describes how one face was unwrapped.
type FaceResult struct {
	Axis    Axis
	Score   DirectionScore
	Skipped bool
	Written bool
}

// UnwrapResult is returned by UnwrapPixelPerfect.
type UnwrapResult struct {
	Faces  []FaceResult
	Layout *Layout
}

// Histogram counts classified faces per axis.
func (r *UnwrapResult) Histogram() [AxisCount]int {
	var h [AxisCount]int
	for _, f := range r.Faces {
		if !f.Skipped {
			h[f.Axis.Index()]++
		}
	}
	return h
}

// UnwrapPixelPerfect classifies every face of m by its normal, projects its
// corners onto the plane of the chosen axis, packs the six axis groups side
// by side and writes grid-snapped coordinates back into the faces.
//
// Faces with an empty loop or a zero normal are skipped and keep their UVs.
func UnwrapPixelPerfect(m *Mesh, mp Mapper, opts UnwrapOptions) (*UnwrapResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	res := &UnwrapResult{
		Faces:  make([]FaceResult, len(m.Faces)),
		Layout: NewLayout(),
	}
	corners := make([][]math.Vec2, len(m.Faces))

	for fi := range m.Faces {
		f := &m.Faces[fi]
		if len(f.Loop) == 0 {
			res.Faces[fi].Skipped = true
			continue
		}

		axis, score, err := Classify(m.FaceNormal(fi))
		if errors.Is(err, ErrZeroNormal) {
			res.Faces[fi].Skipped = true
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Faces[fi].Axis = axis
		res.Faces[fi].Score = score

		projected := make([]math.Vec2, len(f.Loop))
		for k, vi := range f.Loop {
			projected[k] = Project(m.Vertices[vi], axis)
		}
		corners[fi] = projected
		res.Layout.Add(fi, axis, projected)
	}
	res.Layout.Seal()

	for fi := range m.Faces {
		f := &m.Faces[fi]
		fr := &res.Faces[fi]
		if fr.Skipped || (opts.SelectedOnly && !f.Selected) {
			continue
		}
		f.ensureUVs()
		for k, p := range corners[fi] {
			f.UVs[k] = mp.Snap(res.Layout.Place(fr.Axis, p))
		}
		fr.Written = true
	}

	return res, nil
}
