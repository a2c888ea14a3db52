package scene

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/field-of-cows/internal/assets"
	"github.com/Faultbox/field-of-cows/internal/config"
	"github.com/Faultbox/field-of-cows/internal/logger"
)

// LoadConfigured loads the scene selected by cfg: the scene file when set,
// otherwise the built-in Field of Cows.
//
// Mesh files resolve against cfg.AssetDirs, with the scene file's own
// directory searched first. Asset dirs that do not exist are skipped.
func LoadConfigured(cfg config.SceneConfig) (*Scene, error) {
	log := logger.Named("scene")

	d := FieldOfCows()
	if cfg.File != "" {
		var err error
		d, err = LoadDescription(cfg.File)
		if err != nil {
			return nil, err
		}
	}

	am := assets.NewManager()
	dirs := cfg.AssetDirs
	if cfg.File != "" {
		dirs = append(append([]string(nil), dirs...), filepath.Dir(cfg.File))
	}
	for _, dir := range dirs {
		if err := am.AddDir(dir); err != nil {
			log.Warn("skipping asset dir", zap.String("dir", dir), zap.Error(err))
		}
	}
	defer am.Close()

	s, err := Load(d, am, LoadOptions{Workers: cfg.Workers})
	if err != nil {
		return nil, fmt.Errorf("loading scene %q: %w", d.Name, err)
	}
	return s, nil
}
