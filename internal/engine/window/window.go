// Package window handles window and OpenGL context creation.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Faultbox/field-of-cows/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown window backend")

// Config holds window configuration.
type Config struct {
	Backend    string
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is an OS window owning a current OpenGL 4.1 core context.
type Window interface {
	// PollEvents drains pending native events into in.
	PollEvents(in *input.Input)
	SwapBuffers()
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	SetTitle(title string)
	Backend() string
	Close()
}

// New creates a window with the configured backend. An empty backend means SDL.
func New(cfg Config) (Window, error) {
	switch cfg.Backend {
	case BackendSDL, "":
		w, err := newSDLWindow(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case BackendGLFW:
		w, err := newGLFWWindow(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
