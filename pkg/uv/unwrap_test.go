package uv

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

// Cube face indices in newCube.
const (
	cubeBottom = iota // -Z
	cubeTop           // +Z
	cubeFront         // -Y
	cubeBack          // +Y
	cubeRight         // +X
	cubeLeft          // -X
)

// newCube returns a unit cube with outward-facing loops, every face selected.
func newCube() *Mesh {
	m := &Mesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
		Faces: []Face{
			{Loop: []int{0, 3, 2, 1}},
			{Loop: []int{4, 5, 6, 7}},
			{Loop: []int{0, 1, 5, 4}},
			{Loop: []int{2, 3, 7, 6}},
			{Loop: []int{1, 2, 6, 5}},
			{Loop: []int{0, 4, 7, 3}},
		},
	}
	for i := range m.Faces {
		m.Faces[i].Selected = true
	}
	return m
}

func bounds(uvs []math.Vec2) (min, max math.Vec2) {
	min = math.Vec2{X: stdmath.MaxFloat64, Y: stdmath.MaxFloat64}
	max = math.Vec2{X: -stdmath.MaxFloat64, Y: -stdmath.MaxFloat64}
	for _, p := range uvs {
		min.X = stdmath.Min(min.X, p.X)
		min.Y = stdmath.Min(min.Y, p.Y)
		max.X = stdmath.Max(max.X, p.X)
		max.Y = stdmath.Max(max.Y, p.Y)
	}
	return min, max
}

func TestMesh_FaceNormal(t *testing.T) {
	m := newCube()
	want := []math.Vec3{{Z: -1}, {Z: 1}, {Y: -1}, {Y: 1}, {X: 1}, {X: -1}}
	for i, n := range want {
		got := m.FaceNormal(i)
		assert.InDelta(t, n.X, got.X, 1e-12)
		assert.InDelta(t, n.Y, got.Y, 1e-12)
		assert.InDelta(t, n.Z, got.Z, 1e-12)
	}

	m.Faces[0].Normal = math.Vec3{X: 2}
	assert.Equal(t, math.Vec3{X: 2}, m.FaceNormal(0))
}

func TestMesh_Validate(t *testing.T) {
	m := newCube()
	require.NoError(t, m.Validate())

	m.Faces[2].Loop = append(m.Faces[2].Loop, 99)
	require.ErrorIs(t, m.Validate(), ErrVertexIndex)

	m = newCube()
	m.Faces[1].UVs = make([]math.Vec2, 2)
	require.ErrorIs(t, m.Validate(), ErrUVCount)
}

func TestUnwrapPixelPerfect_Cube(t *testing.T) {
	m := newCube()
	res, err := UnwrapPixelPerfect(m, NewMapper(1, 6, 1), UnwrapOptions{})
	require.NoError(t, err)

	wantAxis := []Axis{NegativeZ, PositiveZ, NegativeY, PositiveY, PositiveX, NegativeX}
	for fi, want := range wantAxis {
		fr := res.Faces[fi]
		require.False(t, fr.Skipped)
		require.True(t, fr.Written)
		require.Equal(t, want, fr.Axis, "face %d", fi)

		// Every group is one unit wide, so group i spans pixels [i, i+1].
		min, max := bounds(m.Faces[fi].UVs)
		assert.Equal(t, float64(want.Index())/6, min.X, "face %d", fi)
		assert.Equal(t, float64(want.Index()+1)/6, max.X, "face %d", fi)
		for _, p := range m.Faces[fi].UVs {
			assert.Equal(t, stdmath.Round(p.X*6), p.X*6)
			assert.True(t, p.Y == 0 || p.Y == 1)
		}
	}

	h := res.Histogram()
	assert.Equal(t, [AxisCount]int{1, 1, 1, 1, 1, 1}, h)
}

func TestUnwrapPixelPerfect_TwoFaces(t *testing.T) {
	m := &Mesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1},
		},
		Faces: []Face{
			{Loop: []int{0, 1, 2, 3}, Selected: true}, // +Z
			{Loop: []int{1, 2, 4, 5}, Selected: true}, // +X
		},
	}

	_, err := UnwrapPixelPerfect(m, NewMapper(1, 2, 1), UnwrapOptions{})
	require.NoError(t, err)

	assert.Equal(t, []math.Vec2{{X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 1}}, m.Faces[0].UVs)
	assert.Equal(t, []math.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 1}, {X: 0, Y: 1}}, m.Faces[1].UVs)
}

func TestUnwrapPixelPerfect_SelectedOnly(t *testing.T) {
	m := newCube()
	for i := range m.Faces {
		m.Faces[i].Selected = i == cubeTop
	}

	res, err := UnwrapPixelPerfect(m, NewMapper(1, 6, 1), UnwrapOptions{SelectedOnly: true})
	require.NoError(t, err)

	for fi := range m.Faces {
		if fi == cubeTop {
			require.Len(t, m.Faces[fi].UVs, 4)
			require.True(t, res.Faces[fi].Written)
			continue
		}
		require.Nil(t, m.Faces[fi].UVs, "face %d", fi)
		require.False(t, res.Faces[fi].Written)
	}

	// Unselected faces still take part in packing: +Z is the fifth group.
	min, _ := bounds(m.Faces[cubeTop].UVs)
	assert.Equal(t, 4.0/6, min.X)
}

func TestUnwrapPixelPerfect_SkipsDegenerate(t *testing.T) {
	m := &Mesh{
		Vertices: []math.Vec3{{X: 1, Y: 1, Z: 1}},
		Faces: []Face{
			{Loop: []int{0, 0, 0}, UVs: []math.Vec2{{X: 0.3}, {X: 0.3}, {X: 0.3}}},
			{},
		},
	}
	res, err := UnwrapPixelPerfect(m, NewMapper(1, 4, 4), UnwrapOptions{})
	require.NoError(t, err)
	assert.True(t, res.Faces[0].Skipped)
	assert.True(t, res.Faces[1].Skipped)
	assert.Equal(t, math.Vec2{X: 0.3}, m.Faces[0].UVs[0])
}

func TestUnwrapPixelPerfect_InvalidMesh(t *testing.T) {
	m := &Mesh{Faces: []Face{{Loop: []int{0}}}}
	_, err := UnwrapPixelPerfect(m, NewMapper(1, 1, 1), UnwrapOptions{})
	require.ErrorIs(t, err, ErrVertexIndex)
}
