package uv

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/pixel-perfect/pkg/math"
)

func assertUVsNear(t *testing.T, want, got []math.Vec2) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9, "corner %d x", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9, "corner %d y", i)
	}
}

func TestUnwrapByDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  math.Vec3
		face int
		want []math.Vec2
	}{
		// Top loop is (0,0,1) (1,0,1) (1,1,1) (0,1,1).
		{"z reads xy", math.Vec3{Z: 1}, cubeTop, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
		// Right loop is (1,0,0) (1,1,0) (1,1,1) (1,0,1).
		{"x reads yz", math.Vec3{X: 1}, cubeRight, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
		// Front loop is (0,0,0) (1,0,0) (1,0,1) (0,0,1).
		{"y reads xz", math.Vec3{Y: 1}, cubeFront, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
		{"-y folds onto +y", math.Vec3{Y: -2}, cubeFront, []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newCube()
			require.NoError(t, UnwrapByDirection(m, tt.dir, NewMapper(1, 1, 1)))
			assertUVsNear(t, tt.want, m.Faces[tt.face].UVs)
		})
	}
}

func TestUnwrapByDirection_ScalesByGrid(t *testing.T) {
	m := newCube()
	require.NoError(t, UnwrapByDirection(m, math.Vec3{Z: 1}, NewMapper(2, 4, 8)))
	assertUVsNear(t, []math.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0.25}, {X: 0, Y: 0.25}}, m.Faces[cubeTop].UVs)
}

func TestUnwrapByDirection_ZeroDirection(t *testing.T) {
	require.ErrorIs(t, UnwrapByDirection(newCube(), math.Vec3{}, NewMapper(1, 1, 1)), ErrZeroDirection)
}

func TestUnwrapByNormal_KeepsUVCenter(t *testing.T) {
	m := newCube()
	for i := range m.Faces {
		m.Faces[i].Selected = i == cubeTop
	}
	m.Faces[cubeTop].UVs = []math.Vec2{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}}

	require.NoError(t, UnwrapByNormal(m, NewMapper(1, 1, 1)))
	assertUVsNear(t, []math.Vec2{{X: 2.5, Y: 2.5}, {X: 3.5, Y: 2.5}, {X: 3.5, Y: 3.5}, {X: 2.5, Y: 3.5}}, m.Faces[cubeTop].UVs)
	require.Nil(t, m.Faces[cubeFront].UVs)
}

func TestUnwrapAutoDirection_Cross(t *testing.T) {
	m := newCube()
	require.NoError(t, UnwrapAutoDirection(m, NewMapper(1, 1, 1)))

	// Column starts: +Y 0, -X 1, -Y/+Z/-Z 2, +X 3. Rows: +Z [0,1], the
	// side row [-1,0], -Z [-2,-1].
	want := map[int]math.Vec2{
		cubeBack:   {X: 0, Y: -1},
		cubeLeft:   {X: 1, Y: -1},
		cubeFront:  {X: 2, Y: -1},
		cubeRight:  {X: 3, Y: -1},
		cubeTop:    {X: 2, Y: 0},
		cubeBottom: {X: 2, Y: -2},
	}
	for fi, lo := range want {
		min, max := bounds(m.Faces[fi].UVs)
		assert.InDelta(t, lo.X, min.X, 1e-9, "face %d", fi)
		assert.InDelta(t, lo.Y, min.Y, 1e-9, "face %d", fi)
		assert.InDelta(t, lo.X+1, max.X, 1e-9, "face %d", fi)
		assert.InDelta(t, lo.Y+1, max.Y, 1e-9, "face %d", fi)
	}
}

func TestUnwrapAutoDirection_WidensThreshold(t *testing.T) {
	// About 54.7 degrees from every axis: outside pi/4, inside pi/3.
	n := math.Vec3{X: 1, Y: 1, Z: 1}
	m := &Mesh{
		Vertices: []math.Vec3{{X: 0}, {X: 1}, {X: 1, Y: 1}},
		Faces:    []Face{{Loop: []int{0, 1, 2}, Normal: n, Selected: true}},
	}
	require.NoError(t, UnwrapAutoDirection(m, NewMapper(1, 1, 1)))
	require.Len(t, m.Faces[0].UVs, 3)

	// +Y is tried first, so the face is read as (x, z). With no +Z faces the
	// side row starts at v = 1.
	assertUVsNear(t, []math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}, m.Faces[0].UVs)
}

func TestIsolateByDirection(t *testing.T) {
	m := newCube()
	kept, err := IsolateByDirection(m, math.Vec3{Z: 1}, DefaultIsolateAngle)
	require.NoError(t, err)
	assert.Equal(t, 1, kept)
	for fi, f := range m.Faces {
		assert.Equal(t, fi == cubeTop, f.Selected, "face %d", fi)
	}

	m = newCube()
	kept, err = IsolateByDirection(m, math.Vec3{Z: 1}, stdmath.Pi/2)
	require.NoError(t, err)
	assert.Equal(t, 5, kept)

	_, err = IsolateByDirection(m, math.Vec3{}, 1)
	require.ErrorIs(t, err, ErrZeroDirection)
}
