// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
}

// CameraConfig holds the fixed camera and the turntable speed.
type CameraConfig struct {
	FOVDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Eye        [3]float32 `yaml:"eye"`
	Target     [3]float32 `yaml:"target"`
	Up         [3]float32 `yaml:"up"`

	// SpinDegreesPerSecond rotates the scene about the Y axis. 0 disables it.
	SpinDegreesPerSecond float32 `yaml:"spin_degrees_per_second"`
}

// SceneConfig selects what to render.
type SceneConfig struct {
	File      string   `yaml:"file"`       // scene YAML; empty uses the built-in scene
	AssetDirs []string `yaml:"asset_dirs"` // searched for mesh files, last wins
	Workers   int      `yaml:"workers"`    // mesh loading workers; 0 = NumCPU
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config framing the Field of Cows scene in a 1600x900 window.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1600,
			Height:     900,
			Fullscreen: false,
			VSync:      true,
			Backend:    BackendSDL,
		},
		Camera: CameraConfig{
			FOVDegrees:           90,
			Near:                 0.1,
			Far:                  200,
			Eye:                  [3]float32{100, 3, 0},
			Target:               [3]float32{0, 0, 0},
			Up:                   [3]float32{0, 1, 0},
			SpinDegreesPerSecond: 45,
		},
		Scene: SceneConfig{
			File:      "",
			AssetDirs: []string{"assets"},
			Workers:   0,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
