// Package renderer draws loaded scenes with instanced OpenGL calls.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/field-of-cows/internal/engine/shader"
	"github.com/Faultbox/field-of-cows/internal/engine/shader/shaders"
	"github.com/Faultbox/field-of-cows/internal/logger"
	"github.com/Faultbox/field-of-cows/internal/scene"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh is one uploaded mesh: a VAO over position, color and offset buffers.
type gpuMesh struct {
	name      string
	vao       uint32
	vbos      [3]uint32
	vertices  int32
	instances int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.SceneProgram
	meshes  []gpuMesh
	log     *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(1, 1, 1, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewSceneProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	return r, nil
}

// Upload copies every mesh of s to GPU buffers, replacing any previous scene.
func (r *Renderer) Upload(s *scene.Scene) error {
	r.releaseMeshes()

	c := s.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	for _, m := range s.Meshes {
		if m.VertexCount() == 0 {
			r.log.Warn("skipping empty mesh", zap.String("name", m.Name))
			continue
		}

		gm := gpuMesh{
			name:      m.Name,
			vertices:  int32(m.VertexCount()),
			instances: int32(len(m.Instances)),
		}
		offsets := flatten(m.Instances)

		gl.GenVertexArrays(1, &gm.vao)
		gl.BindVertexArray(gm.vao)
		gl.GenBuffers(int32(len(gm.vbos)), &gm.vbos[0])

		uploadAttrib(gm.vbos[0], shaders.PositionLocation, m.Positions, 0)
		uploadAttrib(gm.vbos[1], shaders.ColorLocation, m.Colors, 0)
		uploadAttrib(gm.vbos[2], shaders.OffsetLocation, offsets, 1)

		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.BindVertexArray(0)

		if code := gl.GetError(); code != gl.NO_ERROR {
			r.meshes = append(r.meshes, gm)
			r.releaseMeshes()
			return fmt.Errorf("uploading mesh %q: GL error 0x%x", m.Name, code)
		}

		r.meshes = append(r.meshes, gm)
		r.log.Debug("mesh uploaded",
			zap.String("name", gm.name),
			zap.Uint32("vao", gm.vao),
			zap.Int32("vertices", gm.vertices),
			zap.Int32("instances", gm.instances),
		)
	}

	return nil
}

// uploadAttrib fills vbo with tightly packed vec3 data and binds it to location.
// A non-zero divisor advances the attribute per instance.
func uploadAttrib(vbo uint32, location uint32, data []float32, divisor uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, 3, gl.FLOAT, false, 0, 0)
	if divisor != 0 {
		gl.VertexAttribDivisor(location, divisor)
	}
}

func flatten(vs [][3]float32) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw draws every uploaded mesh, all instances, with one MVP.
func (r *Renderer) Draw(mvp mgl32.Mat4) {
	r.program.Use(mvp)
	for _, m := range r.meshes {
		gl.BindVertexArray(m.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, m.vertices, m.instances)
	}
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.Flush()
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func (r *Renderer) releaseMeshes() {
	for i := range r.meshes {
		m := &r.meshes[i]
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
		gl.DeleteVertexArrays(1, &m.vao)
	}
	r.meshes = r.meshes[:0]
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.releaseMeshes()
	if r.program != nil {
		r.program.Delete()
	}
}
