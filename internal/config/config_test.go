package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dygy/guitarset/internal/errors"
)

const validYAML = `
DataAugmentation:
  effects:
    overdrive:
      gain_db:
        state: random
        lower: 5
        upper: 30
      colour:
        state: constant
        default: true
    reverb:
      reverberance:
        state: constant
        default: false
        upper: 60
  active:
    - overdrive
    - reverb

pipeline_config:
  train_models:
    - fender
    - gibson
  test_models:
    - ibanez
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"overdrive", "reverb"}, cfg.Augmentation.Active)
	assert.Equal(t, []string{"fender", "gibson"}, cfg.Pipeline.TrainModels)
	assert.Equal(t, []string{"ibanez"}, cfg.Pipeline.TestModels)

	od, ok := cfg.Augmentation.Effects["overdrive"]
	require.True(t, ok)
	gain := od["gain_db"]
	assert.Equal(t, "random", gain.State)
	assert.Equal(t, 5.0, gain.Lower)

	rev := cfg.Augmentation.Effects["reverb"]["reverberance"]
	assert.Equal(t, "constant", rev.State)
	assert.False(t, rev.Default)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestLoadMissingSections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no pipeline_config", "DataAugmentation:\n  effects:\n    overdrive: {}\n  active: [overdrive]\n"},
		{"no DataAugmentation", "pipeline_config:\n  train_models: [fender]\n"},
		{"empty active", "DataAugmentation:\n  effects:\n    overdrive: {}\npipeline_config:\n  train_models: [fender]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, apperrors.ErrMissingConfig)
		})
	}
}
