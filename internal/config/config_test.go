package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frictionlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsMatchStockBench(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, friction.DefaultParams(), p)

	trials, err := cfg.Trials()
	require.NoError(t, err)
	assert.Equal(t, friction.DefaultTrials(), trials)
}

func TestDefaultsPreserveLayoutConstants(t *testing.T) {
	l := NewDefaultConfig().Layout
	assert.Equal(t, 100.0, l.MeterMin)
	assert.Equal(t, 180.0, l.MeterWidth)
	assert.Equal(t, 160.0, l.ReadingSpan)
	assert.Equal(t, 10.0, l.ReadingPad)
	assert.Equal(t, 20.0, l.UnitPx)
	assert.Equal(t, 5.0, l.Divisions)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := writeConfig(t, `
default_surface: ice
physics:
  gravity: 9.81
  wobble_period: 250ms
surfaces:
  - name: ice
    coefficient: 0.1
    static_ratio: 1.5
  - name: wood
    coefficient: 0.35
    static_ratio: 1.1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 9.81, p.Gravity)
	assert.Equal(t, 250*time.Millisecond, p.WobblePeriod)
	assert.Equal(t, friction.Trial{Surface: friction.Ice, Coefficient: 0.1, StaticRatio: 1.5}, p.Default)

	trials, err := cfg.Trials()
	require.NoError(t, err)
	assert.Len(t, trials, 2)
}

func TestLoadAppliesEnvironment(t *testing.T) {
	t.Setenv("FRICTIONLAB_PHYSICS_MAX_PULL", "50")
	t.Setenv("FRICTIONLAB_LOGGER_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "ui:\n  fps: 20\n"))
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.Physics.MaxPull)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 20, cfg.UI.FPS)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"gravity":        func(c *Config) { c.Physics.Gravity = 0 },
		"jitter":         func(c *Config) { c.Physics.WobbleJitter = 1.5 },
		"meter range":    func(c *Config) { c.Layout.MeterMin = 400 },
		"unknown":        func(c *Config) { c.Surfaces[0].Name = "sand" },
		"ratio":          func(c *Config) { c.Surfaces[1].StaticRatio = 0.9 },
		"duplicate":      func(c *Config) { c.Surfaces[1].Name = "wood" },
		"default":        func(c *Config) { c.DefaultSurface = "marble" },
		"no surfaces":    func(c *Config) { c.Surfaces = nil },
		"volume":         func(c *Config) { c.Audio.Volume = 2 },
		"fps":            func(c *Config) { c.UI.FPS = 0 },
		"block overlaps": func(c *Config) { c.Layout.BlockRest = 400 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestTrialLookup(t *testing.T) {
	cfg := NewDefaultConfig()
	tr, err := cfg.Trial("RUBBER")
	require.NoError(t, err)
	assert.Equal(t, 0.8, tr.Coefficient)

	_, err = cfg.Trial("sand")
	assert.ErrorIs(t, err, ErrInvalid)
}
