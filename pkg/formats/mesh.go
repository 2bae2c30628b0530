// Package formats reads and writes the YAML mesh documents exchanged with the
// host editor: vertex positions, face loops, selection flags and per-corner UVs.
package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/pixel-perfect/pkg/math"
	"github.com/Faultbox/pixel-perfect/pkg/uv"
)

// Mesh document errors.
var (
	ErrInvalidMesh = errors.New("invalid mesh document")
	ErrVertexIndex = errors.New("face vertex index out of range")
	ErrUVCount     = errors.New("face uv count does not match its loop")
)

// Vec2 is a UV pair written in flow style.
type Vec2 [2]float64

// Vec3 is a position or normal written in flow style.
type Vec3 [3]float64

// Loop is a list of vertex indices written in flow style.
type Loop []int

// MarshalYAML writes [u, v].
func (v Vec2) MarshalYAML() (interface{}, error) {
	return flowFloats(v[:]), nil
}

// MarshalYAML writes [x, y, z].
func (v Vec3) MarshalYAML() (interface{}, error) {
	return flowFloats(v[:]), nil
}

// MarshalYAML writes [i, j, ...].
func (l Loop) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, i := range l {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(i)})
	}
	return n, nil
}

func flowFloats(vals []float64) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range vals {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f, 'g', -1, 64)})
	}
	return n
}

// Face is one polygon of a mesh document.
type Face struct {
	Vertices Loop   `yaml:"vertices"`
	Normal   *Vec3  `yaml:"normal,omitempty"`
	Select   bool   `yaml:"select,omitempty"`
	UVs      []Vec2 `yaml:"uvs,omitempty"`
	UVSelect []bool `yaml:"uv_select,omitempty"`
}

// Mesh is a mesh document.
type Mesh struct {
	Name string `yaml:"name,omitempty"`

	// Image is the texture bound to the mesh; its size is the pixel grid.
	Image string `yaml:"image,omitempty"`

	// UnitScale is the scene's measurement scale (0 means 1).
	UnitScale float64 `yaml:"unit_scale,omitempty"`

	Vertices []Vec3 `yaml:"vertices"`
	Faces    []Face `yaml:"faces"`
}

// ParseMesh decodes and validates a mesh document.
func ParseMesh(data []byte) (*Mesh, error) {
	var m Mesh
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMesh, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadMesh reads a mesh document from disk.
func LoadMesh(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseMesh(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks indices and per-corner list lengths.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		for _, vi := range f.Vertices {
			if vi < 0 || vi >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrVertexIndex, fi, vi, len(m.Vertices))
			}
		}
		if len(f.UVs) != 0 && len(f.UVs) != len(f.Vertices) {
			return fmt.Errorf("%w: face %d has %d uvs for %d vertices", ErrUVCount, fi, len(f.UVs), len(f.Vertices))
		}
		if len(f.UVSelect) != 0 && len(f.UVSelect) != len(f.Vertices) {
			return fmt.Errorf("%w: face %d has %d uv_select flags for %d vertices", ErrUVCount, fi, len(f.UVSelect), len(f.Vertices))
		}
	}
	return nil
}

// Marshal encodes the document as YAML.
func (m *Mesh) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Save writes the document to path, creating parent directories.
func (m *Mesh) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToUV converts the document into the geometry used by the uv package.
func (m *Mesh) ToUV() *uv.Mesh {
	out := &uv.Mesh{
		Vertices: make([]math.Vec3, len(m.Vertices)),
		Faces:    make([]uv.Face, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	for i, f := range m.Faces {
		face := uv.Face{
			Loop:     append([]int(nil), f.Vertices...),
			Selected: f.Select,
		}
		if f.Normal != nil {
			face.Normal = math.Vec3{X: f.Normal[0], Y: f.Normal[1], Z: f.Normal[2]}
		}
		if len(f.UVs) > 0 {
			face.UVs = make([]math.Vec2, len(f.UVs))
			for k, p := range f.UVs {
				face.UVs[k] = math.Vec2{X: p[0], Y: p[1]}
			}
		}
		if len(f.UVSelect) > 0 {
			face.UVSelected = append([]bool(nil), f.UVSelect...)
		}
		out.Faces[i] = face
	}
	return out
}

// ApplyUV copies coordinates and selection state back from src, which must
// have been produced by ToUV on this document.
func (m *Mesh) ApplyUV(src *uv.Mesh) error {
	if len(src.Faces) != len(m.Faces) {
		return fmt.Errorf("%w: %d faces, document has %d", ErrInvalidMesh, len(src.Faces), len(m.Faces))
	}
	for i := range m.Faces {
		f := &m.Faces[i]
		s := &src.Faces[i]
		f.Select = s.Selected
		if len(s.UVs) > 0 {
			f.UVs = make([]Vec2, len(s.UVs))
			for k, p := range s.UVs {
				f.UVs[k] = Vec2{p.X, p.Y}
			}
		}
		if len(s.UVSelected) > 0 {
			f.UVSelect = append([]bool(nil), s.UVSelected...)
		}
	}
	return nil
}
