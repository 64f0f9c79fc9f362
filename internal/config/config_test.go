package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv("OSV_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Variants.BgImitation)
	assert.Equal(t, 2, cfg.Variants.DenseDropMultiplier)
	assert.Equal(t, 1, cfg.Variants.DenseDropMultiplierMin)
	assert.Equal(t, "assets/presets", cfg.Presets.Dir)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osv.yaml")
	data := []byte(`
variants:
  bg_imitation: false
  dense_drop_multiplier: 4
presets:
  dir: /tmp/presets
  disabled: [coal_ore]
blocks:
  entries: ["iron_ore stone"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Variants.BgImitation)
	assert.Equal(t, 4, cfg.Variants.DenseDropMultiplier)
	// Значения, не указанные в файле, остаются по умолчанию
	assert.Equal(t, 1, cfg.Variants.DenseDropMultiplierMin)
	assert.Equal(t, "/tmp/presets", cfg.Presets.Dir)
	assert.Equal(t, []string{"iron_ore stone"}, cfg.Blocks.Entries)
	assert.False(t, cfg.Presets.OreEnabled("coal_ore"))
	assert.True(t, cfg.Presets.OreEnabled("iron_ore"))
}

func TestLoad_EnvFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  seed: 7\n"), 0o644))
	t.Setenv("OSV_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.World.Seed)
}

func TestLoad_RejectsNegativeMultiplier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variants:\n  dense_drop_multiplier: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestMetricsPortFallback(t *testing.T) {
	m := MetricsConfig{}
	t.Setenv("OSV_METRICS_PORT", "")
	assert.Equal(t, 2112, m.GetMetricsPort())

	t.Setenv("OSV_METRICS_PORT", "9100")
	assert.Equal(t, 9100, m.GetMetricsPort())

	m.Port = 9200
	assert.Equal(t, 9200, m.GetMetricsPort())
}

func TestPresetsEnabledList(t *testing.T) {
	p := PresetsConfig{Enabled: []string{"iron_ore"}}
	assert.True(t, p.OreEnabled("iron_ore"))
	assert.False(t, p.OreEnabled("coal_ore"))
}
