// Package config loads the YAML run configuration. The file carries two
// sections: DataAugmentation (effect policies plus the active subset) and
// pipeline_config (the fixed train/test model split).
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/dygy/guitarset/internal/effects"
	apperrors "github.com/dygy/guitarset/internal/errors"
)

// Augmentation holds the DataAugmentation section.
type Augmentation struct {
	Effects map[string]effects.Spec `mapstructure:"effects"`
	Active  []string                `mapstructure:"active"`
}

// Pipeline holds the pipeline_config section.
type Pipeline struct {
	TrainModels []string `mapstructure:"train_models"`
	TestModels  []string `mapstructure:"test_models"`
}

// Config is the full run configuration.
type Config struct {
	Augmentation Augmentation
	Pipeline     Pipeline
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	for _, key := range []string{"DataAugmentation", "pipeline_config"} {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingConfig, key)
		}
	}

	var cfg Config
	if err := v.UnmarshalKey("DataAugmentation", &cfg.Augmentation); err != nil {
		return nil, fmt.Errorf("parse DataAugmentation: %w", err)
	}
	if err := v.UnmarshalKey("pipeline_config", &cfg.Pipeline); err != nil {
		return nil, fmt.Errorf("parse pipeline_config: %w", err)
	}

	if len(cfg.Augmentation.Effects) == 0 {
		return nil, fmt.Errorf("%w: DataAugmentation.effects", apperrors.ErrMissingConfig)
	}
	if len(cfg.Augmentation.Active) == 0 {
		return nil, fmt.Errorf("%w: DataAugmentation.active", apperrors.ErrMissingConfig)
	}
	if len(cfg.Pipeline.TrainModels) == 0 {
		return nil, fmt.Errorf("%w: pipeline_config.train_models", apperrors.ErrMissingConfig)
	}

	return &cfg, nil
}
