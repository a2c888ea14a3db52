// Package scene describes what the viewer draws and loads it into CPU-side
// vertex streams ready for upload.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScene is returned when a scene description fails validation.
var ErrInvalidScene = errors.New("invalid scene")

//go:embed fieldofcows.yaml
var builtinFieldOfCows []byte

// Description is the YAML form of a scene.
type Description struct {
	Name       string            `yaml:"name"`
	ClearColor [4]float32        `yaml:"clear_color"`
	Meshes     []MeshDescription `yaml:"meshes"`
}

// MeshDescription places one mesh file in the scene.
type MeshDescription struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`

	// Color paints every vertex; Palette, when set, is cycled per vertex instead.
	Color   *[3]float32  `yaml:"color,omitempty"`
	Palette [][3]float32 `yaml:"palette,omitempty"`

	// Instances are per-instance world offsets. Empty means one instance at the origin.
	Instances [][3]float32 `yaml:"instances,omitempty"`
}

// InstanceOffsets returns the offsets to draw, never empty.
func (m *MeshDescription) InstanceOffsets() [][3]float32 {
	if len(m.Instances) == 0 {
		return [][3]float32{{0, 0, 0}}
	}
	return m.Instances
}

// Validate checks the description for missing or contradictory fields.
func (d *Description) Validate() error {
	if len(d.Meshes) == 0 {
		return fmt.Errorf("%w: no meshes", ErrInvalidScene)
	}
	for i, m := range d.Meshes {
		if m.File == "" {
			return fmt.Errorf("%w: mesh %d (%s) has no file", ErrInvalidScene, i, m.Name)
		}
		if m.Color != nil && len(m.Palette) > 0 {
			return fmt.Errorf("%w: mesh %d (%s) sets both color and palette", ErrInvalidScene, i, m.Name)
		}
	}
	return nil
}

// ParseDescription decodes and validates a YAML scene description.
func ParseDescription(data []byte) (*Description, error) {
	d := &Description{
		ClearColor: [4]float32{1, 1, 1, 1},
	}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	for i := range d.Meshes {
		if d.Meshes[i].Name == "" {
			d.Meshes[i].Name = d.Meshes[i].File
		}
	}
	if d.Name == "" {
		d.Name = "Untitled"
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadDescription reads a YAML scene description from disk.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	d, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// FieldOfCows returns the built-in scene: five cows, a field, and its fence.
func FieldOfCows() *Description {
	d, err := ParseDescription(builtinFieldOfCows)
	if err != nil {
		panic(fmt.Sprintf("built-in scene: %v", err))
	}
	return d
}
