package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/field-of-cows/internal/assets"
	"github.com/Faultbox/field-of-cows/internal/jobs"
	"github.com/Faultbox/field-of-cows/internal/logger"
	"github.com/Faultbox/field-of-cows/pkg/formats"
)

// Mesh is a loaded mesh: an unindexed triangle list plus per-vertex colors.
type Mesh struct {
	Name string
	File string

	// Positions holds 3 floats per vertex, 3 vertices per triangle.
	Positions []float32
	// Colors holds 3 floats per vertex, parallel to Positions.
	Colors []float32
	// Instances are world offsets, one draw instance each.
	Instances [][3]float32

	Bounds formats.OBJBounds
}

// VertexCount returns the number of vertices in Positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in Positions.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 9
}

// Scene is a fully loaded scene.
type Scene struct {
	Name       string
	ClearColor [4]float32
	Meshes     []*Mesh
}

// LoadOptions controls scene loading.
type LoadOptions struct {
	// Workers bounds concurrent mesh parsing. 0 uses one worker per CPU.
	Workers int
}

// Load reads and parses every mesh of d through the asset manager.
// Meshes are parsed concurrently, each independently; the result keeps the
// description's order. The first failing mesh, in description order, fails
// the whole load.
func Load(d *Description, am *assets.Manager, opts LoadOptions) (*Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	log := logger.Named("scene")
	start := time.Now()

	meshes := make([]*Mesh, len(d.Meshes))
	errs := jobs.Run(opts.Workers, len(d.Meshes), func(i int) error {
		m, err := loadMesh(&d.Meshes[i], am)
		if err != nil {
			return fmt.Errorf("mesh %q: %w", d.Meshes[i].Name, err)
		}
		meshes[i] = m
		return nil
	})
	if err := jobs.FirstError(errs); err != nil {
		return nil, err
	}

	s := &Scene{
		Name:       d.Name,
		ClearColor: d.ClearColor,
		Meshes:     meshes,
	}

	for _, m := range meshes {
		log.Debug("mesh loaded",
			zap.String("name", m.Name),
			zap.String("file", m.File),
			zap.Int("triangles", m.TriangleCount()),
			zap.Int("instances", len(m.Instances)),
		)
	}
	log.Info("scene loaded",
		zap.String("name", s.Name),
		zap.Int("meshes", len(meshes)),
		zap.Int("triangles", s.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return s, nil
}

// loadMesh parses one mesh file and builds its vertex streams.
func loadMesh(md *MeshDescription, am *assets.Manager) (*Mesh, error) {
	data, err := am.Load(md.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", formats.ErrOBJIO, err)
	}

	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", md.File, err)
	}
	positions, err := obj.Triangles()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", md.File, err)
	}

	return &Mesh{
		Name:      md.Name,
		File:      md.File,
		Positions: positions,
		Colors:    vertexColors(md, len(positions)/3),
		Instances: md.InstanceOffsets(),
		Bounds:    obj.Bounds(),
	}, nil
}

// vertexColors builds the color stream for n vertices.
func vertexColors(md *MeshDescription, n int) []float32 {
	palette := md.Palette
	if len(palette) == 0 {
		c := [3]float32{1, 1, 1}
		if md.Color != nil {
			c = *md.Color
		}
		palette = [][3]float32{c}
	}

	colors := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		c := palette[i%len(palette)]
		colors = append(colors, c[0], c[1], c[2])
	}
	return colors
}

// TriangleCount returns the number of triangles drawn per frame, counting instances.
func (s *Scene) TriangleCount() int {
	total := 0
	for _, m := range s.Meshes {
		total += m.TriangleCount() * len(m.Instances)
	}
	return total
}

// Bounds returns the world-space box around every instance of every mesh.
func (s *Scene) Bounds() formats.OBJBounds {
	var b formats.OBJBounds
	first := true
	for _, m := range s.Meshes {
		for _, off := range m.Instances {
			for axis := 0; axis < 3; axis++ {
				lo := m.Bounds.Min[axis] + off[axis]
				hi := m.Bounds.Max[axis] + off[axis]
				if first {
					b.Min[axis], b.Max[axis] = lo, hi
					continue
				}
				b.Min[axis] = min(b.Min[axis], lo)
				b.Max[axis] = max(b.Max[axis], hi)
			}
			first = false
		}
	}
	return b
}
