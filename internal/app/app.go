// Package app implements the viewer's main loop.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/field-of-cows/internal/config"
	"github.com/Faultbox/field-of-cows/internal/engine/camera"
	"github.com/Faultbox/field-of-cows/internal/engine/debug"
	"github.com/Faultbox/field-of-cows/internal/engine/input"
	"github.com/Faultbox/field-of-cows/internal/engine/renderer"
	"github.com/Faultbox/field-of-cows/internal/engine/window"
	"github.com/Faultbox/field-of-cows/internal/logger"
	"github.com/Faultbox/field-of-cows/internal/scene"
)

// App owns the window, the GL state and the loaded scene.
type App struct {
	config   *config.Config
	running  bool
	window   window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.Turntable
	scene    *scene.Scene
	fps      *debug.FPSCounter
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New loads the configured scene and opens the window.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		input:  input.New(),
		fps:    debug.NewFPSCounter(debug.DefaultFPSInterval),
		shots:  debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "fieldofcows"),
		log:    logger.Named("app"),
	}

	// Load meshes before touching the GPU so bad assets fail fast.
	var err error
	a.scene, err = scene.LoadConfigured(cfg.Scene)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Backend:    cfg.Graphics.Backend,
		Title:      a.scene.Name,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.renderer.Upload(a.scene); err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	a.camera = newCamera(cfg.Camera)
	a.camera.SetViewport(width, height)

	a.log.Info("viewer initialized",
		zap.String("scene", a.scene.Name),
		zap.String("backend", a.window.Backend()),
		zap.Int("meshes", len(a.scene.Meshes)),
		zap.Int("triangles", a.scene.TriangleCount()),
	)
	return a, nil
}

func newCamera(cc config.CameraConfig) *camera.Turntable {
	c := camera.NewTurntable()
	c.FOVDegrees = cc.FOVDegrees
	c.Near = cc.Near
	c.Far = cc.Far
	c.Eye = mgl32.Vec3(cc.Eye)
	c.Target = mgl32.Vec3(cc.Target)
	c.Up = mgl32.Vec3(cc.Up)
	c.SpinDegreesPerSecond = cc.SpinDegreesPerSecond
	return c
}

// Run starts the main loop and returns when the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true
	start := time.Now()

	a.log.Info("starting render loop")

	for a.running {
		a.input.Reset()
		a.window.PollEvents(a.input)
		a.handleInput()
		if !a.running {
			break
		}

		a.renderer.Begin()
		a.renderer.Draw(a.camera.MVP(time.Since(start)))
		a.renderer.End()

		if a.input.IsKeyPressed(input.KeyF12) {
			a.screenshot()
		}

		a.window.SwapBuffers()

		if a.fps.Frame(time.Now()) {
			width, height := a.window.Size()
			a.window.SetTitle(debug.WindowTitle(a.scene.Name, a.fps.FPS(), width, height))
		}
	}

	return nil
}

// handleInput reacts to this frame's events.
func (a *App) handleInput() {
	if a.input.QuitRequested() || a.input.IsKeyPressed(input.KeyEscape) {
		a.running = false
		return
	}
	if width, height, ok := a.input.LastResize(); ok {
		a.renderer.Resize(width, height)
		a.camera.SetViewport(width, height)
	}
}

// screenshot saves the back buffer before it is swapped.
func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
