package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	if got := cfg.Simulation.GetTickRate(); got != 20 {
		t.Errorf("Частота тиков по умолчанию: ожидалось 20, получено %d", got)
	}
	if got := cfg.Streaming.GetDefaultRadius(); got != 2 {
		t.Errorf("Радиус по умолчанию: ожидалось 2, получено %d", got)
	}
	if got := cfg.Metrics.GetMetricsPort(); got != 2112 {
		t.Errorf("Порт метрик по умолчанию: ожидалось 2112, получено %d", got)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
simulation:
  tick_rate: 30
streaming:
  default_radius: 3
  default_max_radius: 5
generator:
  seed: 1337
mesh:
  workers: 4
metrics:
  port: 9191
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 30, cfg.Simulation.GetTickRate())
	require.Equal(t, 3, cfg.Streaming.GetDefaultRadius())
	require.Equal(t, 5, cfg.Streaming.GetDefaultMaxRadius())
	require.Equal(t, int64(1337), cfg.Generator.Seed)
	require.Equal(t, 4, cfg.Mesh.Workers)
	require.Equal(t, 9191, cfg.Metrics.GetMetricsPort())
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("VOXEL_TICK_RATE", "60")

	cfg := &Config{}
	require.Equal(t, 60, cfg.Simulation.GetTickRate())
}

func TestMaxRadiusNeverBelowRadius(t *testing.T) {
	cfg := &Config{}
	cfg.Streaming.DefaultRadius = 6
	cfg.Streaming.DefaultMaxRadius = 3

	if got := cfg.Streaming.GetDefaultMaxRadius(); got != 6 {
		t.Errorf("MaxRadius должен подтягиваться до радиуса загрузки: ожидалось 6, получено %d", got)
	}
}
