package scene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/field-of-cows/internal/assets"
	"github.com/Faultbox/field-of-cows/pkg/formats"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

// newAssets returns a manager over a temp dir holding the given files.
func newAssets(t *testing.T, files map[string]string) *assets.Manager {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	am := assets.NewManager()
	if err := am.AddDir(dir); err != nil {
		t.Fatalf("AddDir failed: %v", err)
	}
	return am
}

func TestFieldOfCows_Description(t *testing.T) {
	d := FieldOfCows()

	if d.Name != "Field of Cows" {
		t.Errorf("expected name 'Field of Cows', got %q", d.Name)
	}
	if d.ClearColor != [4]float32{1, 1, 1, 1} {
		t.Errorf("expected white clear color, got %v", d.ClearColor)
	}

	want := []struct {
		name      string
		file      string
		instances int
	}{
		{"cows", "cow.obj", 5},
		{"fence posts", "fencePost.obj", 52},
		{"field", "field.obj", 1},
		{"fence beams", "fenceBeams.obj", 2},
		{"fence beams rotated", "fenceBeamsRotated.obj", 2},
	}
	if len(d.Meshes) != len(want) {
		t.Fatalf("expected %d meshes, got %d", len(want), len(d.Meshes))
	}
	for i, w := range want {
		m := d.Meshes[i]
		if m.Name != w.name || m.File != w.file {
			t.Errorf("mesh %d: expected %s (%s), got %s (%s)", i, w.name, w.file, m.Name, m.File)
		}
		if len(m.Instances) != w.instances {
			t.Errorf("mesh %s: expected %d instances, got %d", m.Name, w.instances, len(m.Instances))
		}
	}

	if len(d.Meshes[0].Palette) != 60 {
		t.Errorf("expected 60 cow palette entries, got %d", len(d.Meshes[0].Palette))
	}
	if d.Meshes[0].Instances[0] != [3]float32{5, 0, -40} {
		t.Errorf("expected first cow at (5, 0, -40), got %v", d.Meshes[0].Instances[0])
	}
	if c := d.Meshes[2].Color; c == nil || *c != [3]float32{0.184314, 0.309804, 0.184314} {
		t.Errorf("unexpected field color %v", c)
	}
}

func TestParseDescription_Defaults(t *testing.T) {
	d, err := ParseDescription([]byte("meshes:\n  - file: lamp.obj\n"))
	if err != nil {
		t.Fatalf("ParseDescription failed: %v", err)
	}

	if d.Name != "Untitled" {
		t.Errorf("expected default name, got %q", d.Name)
	}
	if d.ClearColor != [4]float32{1, 1, 1, 1} {
		t.Errorf("expected default clear color, got %v", d.ClearColor)
	}
	if d.Meshes[0].Name != "lamp.obj" {
		t.Errorf("expected mesh name to default to file, got %q", d.Meshes[0].Name)
	}
	offs := d.Meshes[0].InstanceOffsets()
	if len(offs) != 1 || offs[0] != [3]float32{} {
		t.Errorf("expected single origin instance, got %v", offs)
	}
}

func TestParseDescription_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no meshes", "name: empty\n"},
		{"missing file", "meshes:\n  - name: lamp\n"},
		{"color and palette", "meshes:\n  - file: a.obj\n    color: [1, 0, 0]\n    palette: [[0, 1, 0]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDescription([]byte(tt.yaml)); !errors.Is(err, ErrInvalidScene) {
				t.Errorf("expected ErrInvalidScene, got %v", err)
			}
		})
	}

	if _, err := ParseDescription([]byte("meshes: [")); err == nil {
		t.Error("expected YAML syntax error")
	}
}

func TestLoadDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luxo.yaml")
	content := "name: Luxo\nclear_color: [0, 0, 0, 1]\nmeshes:\n  - name: lamp\n    file: lamp.obj\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	d, err := LoadDescription(path)
	if err != nil {
		t.Fatalf("LoadDescription failed: %v", err)
	}
	if d.Name != "Luxo" || d.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected description %+v", d)
	}

	if _, err := LoadDescription(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoad_OrderAndStreams(t *testing.T) {
	am := newAssets(t, map[string]string{
		"a.obj": triangleOBJ,
		"b.obj": "v 0 0 0\nv 2 0 0\nv 0 2 0\nv 2 2 0\nf 1 2 3\nf 2 4 3\n",
	})
	red := [3]float32{1, 0, 0}
	d := &Description{
		Name: "test",
		Meshes: []MeshDescription{
			{Name: "a", File: "a.obj", Color: &red, Instances: [][3]float32{{1, 0, 0}, {2, 0, 0}}},
			{Name: "b", File: "b.obj", Palette: [][3]float32{{0, 0, 1}, {0, 1, 0}}},
		},
	}

	s, err := Load(d, am, LoadOptions{Workers: 2})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(s.Meshes) != 2 || s.Meshes[0].Name != "a" || s.Meshes[1].Name != "b" {
		t.Fatalf("expected meshes [a b] in order, got %d meshes", len(s.Meshes))
	}

	a, b := s.Meshes[0], s.Meshes[1]
	if a.TriangleCount() != 1 || len(a.Positions) != 9 {
		t.Errorf("mesh a: expected 1 triangle, got %d floats", len(a.Positions))
	}
	if b.TriangleCount() != 2 || b.VertexCount() != 6 {
		t.Errorf("mesh b: expected 2 triangles / 6 vertices, got %d / %d", b.TriangleCount(), b.VertexCount())
	}

	if len(a.Colors) != len(a.Positions) || len(b.Colors) != len(b.Positions) {
		t.Error("color streams must parallel position streams")
	}
	for i := 0; i < a.VertexCount(); i++ {
		if a.Colors[i*3] != 1 || a.Colors[i*3+1] != 0 || a.Colors[i*3+2] != 0 {
			t.Errorf("mesh a vertex %d: expected red, got %v", i, a.Colors[i*3:i*3+3])
		}
	}
	// Palette cycles: blue, green, blue, ...
	if b.Colors[2] != 1 || b.Colors[4] != 1 || b.Colors[8] != 1 {
		t.Errorf("mesh b: palette not cycled, got %v", b.Colors)
	}

	if len(a.Instances) != 2 || len(b.Instances) != 1 {
		t.Errorf("expected 2 and 1 instances, got %d and %d", len(a.Instances), len(b.Instances))
	}
	if s.TriangleCount() != 1*2+2*1 {
		t.Errorf("expected 4 drawn triangles, got %d", s.TriangleCount())
	}

	bounds := s.Bounds()
	if bounds.Min != [3]float32{0, 0, 0} || bounds.Max != [3]float32{3, 2, 0} {
		t.Errorf("unexpected scene bounds %+v", bounds)
	}
}

func TestLoad_DefaultWhite(t *testing.T) {
	am := newAssets(t, map[string]string{"a.obj": triangleOBJ})
	d := &Description{Meshes: []MeshDescription{{Name: "a", File: "a.obj"}}}

	s, err := Load(d, am, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for i, c := range s.Meshes[0].Colors {
		if c != 1 {
			t.Fatalf("color %d: expected white, got %f", i, c)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	am := newAssets(t, map[string]string{
		"ok.obj":  triangleOBJ,
		"bad.obj": "v 0 0 0\nf 1 1 7\n",
		"mal.obj": "v 0 0\n",
	})

	tests := []struct {
		name string
		file string
		want error
	}{
		{"missing file", "gone.obj", formats.ErrOBJIO},
		{"out of range", "bad.obj", formats.ErrOBJIndexOutOfRange},
		{"malformed", "mal.obj", formats.ErrOBJMalformedLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Description{Meshes: []MeshDescription{
				{Name: "ok", File: "ok.obj"},
				{Name: "broken", File: tt.file},
			}}

			s, err := Load(d, am, LoadOptions{Workers: 2})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if s != nil {
				t.Error("expected no scene on error")
			}
		})
	}
}

func TestLoad_BuiltinAssets(t *testing.T) {
	am := assets.NewManager()
	if err := am.AddDir(filepath.Join("..", "..", "assets")); err != nil {
		t.Skipf("bundled assets not available: %v", err)
	}

	s, err := Load(FieldOfCows(), am, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(s.Meshes) != 5 {
		t.Fatalf("expected 5 meshes, got %d", len(s.Meshes))
	}
	for _, m := range s.Meshes {
		if len(m.Positions) == 0 || len(m.Positions)%9 != 0 {
			t.Errorf("mesh %s: expected a non-empty multiple of 9 floats, got %d", m.Name, len(m.Positions))
		}
	}
	if n := s.Meshes[2].TriangleCount(); n != 2 {
		t.Errorf("expected field to be 2 triangles, got %d", n)
	}
}
