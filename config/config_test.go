package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/bunnymark/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.Meter.Samples)
	assert.Equal(t, 1200.0, cfg.Motion.Gravity)
	assert.Equal(t, 60.0, cfg.Motion.Floor)
	assert.Equal(t, 1030.0, cfg.Spawn.UITop)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bunnymark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
spawn:
  burst: 250
capacity:
  factory: 500
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250, cfg.Spawn.Burst)
	assert.Equal(t, 500, cfg.Capacity.Factory)
	assert.Equal(t, 500, cfg.Spawn.InitialBurst, "untouched fields keep their defaults")
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	cfg := config.Default()
	err := config.Decode([]byte("spawn:\n  brust: 10\n"), &cfg)
	assert.Error(t, err)
}

func TestDecodeValidates(t *testing.T) {
	tests := map[string]string{
		"zero samples":     "meter:\n  samples: 0\n",
		"negative burst":   "spawn:\n  burst: -1\n",
		"negative factory": "capacity:\n  factory: -5\n",
		"no collections":   "capacity:\n  collections: 0\n",
		"zero duration":    "animate:\n  duration: 0\n",
		"negative delay":   "spawner:\n  delay: -1\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			assert.Error(t, config.Decode([]byte(doc), &cfg))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
