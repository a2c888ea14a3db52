// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader offsets each vertex by its instance offset and applies MVP.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader outputs the interpolated vertex color.
//
//go:embed scene.frag
var SceneFragmentShader string

// Attribute locations shared by the scene shaders and the renderer.
const (
	PositionLocation = 0
	ColorLocation    = 1
	OffsetLocation   = 2
)

// MVPUniform is the name of the model-view-projection uniform.
const MVPUniform = "MVP"
