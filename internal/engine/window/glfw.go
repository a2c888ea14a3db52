package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/field-of-cows/internal/engine/input"
	"github.com/Faultbox/field-of-cows/internal/logger"
)

// glfwWindow wraps a GLFW window with a current OpenGL context.
// Callbacks queue events in pending until the next PollEvents.
type glfwWindow struct {
	window  *glfw.Window
	pending []input.Event
	log     *zap.Logger
}

// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newGLFWWindow(cfg Config) (*glfwWindow, error) {
	w := &glfwWindow{
		log: logger.Named("window"),
	}

	w.log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwInit failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwCreateWindow failed: %w", err)
	}
	w.window = win

	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, input.Event{Type: input.EventQuit})
	})

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		ev := input.Event{Key: glfwKey(key)}
		switch action {
		case glfw.Press:
			ev.Type = input.EventKeyDown
		case glfw.Repeat:
			ev.Type = input.EventKeyDown
			ev.Repeat = true
		case glfw.Release:
			ev.Type = input.EventKeyUp
		default:
			return
		}
		w.pending = append(w.pending, ev)
	})

	// Framebuffer size differs from window size on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, input.Event{
			Type:   input.EventWindowResize,
			Width:  width,
			Height: height,
		})
	})

	width, height := w.Size()
	w.log.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// PollEvents processes pending GLFW events without blocking.
func (w *glfwWindow) PollEvents(in *input.Input) {
	glfw.PollEvents()
	for _, e := range w.pending {
		in.Push(e)
	}
	w.pending = w.pending[:0]
}

func glfwKey(key glfw.Key) input.Key {
	switch key {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyF12:
		return input.KeyF12
	default:
		return input.KeyUnknown
	}
}

// SwapBuffers swaps the OpenGL buffers.
func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

// Size returns the framebuffer size in pixels.
func (w *glfwWindow) Size() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *glfwWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

func (w *glfwWindow) Backend() string { return BackendGLFW }

// Close destroys the window and terminates GLFW.
func (w *glfwWindow) Close() {
	w.log.Info("closing window")

	if w.window != nil {
		w.window.Destroy()
	}
	glfw.Terminate()
}
