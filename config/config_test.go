// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvslam/config"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.toml")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil, missingFile(t))
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, 1e-4, cfg.Tolerance)
	require.Equal(t, 40, cfg.MaxIterations)
	require.True(t, cfg.FixFirstPose)
	require.Equal(t, "gonum", cfg.Solver)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.Watch)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvslam.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
input = "file.g2o"
max_iterations = 10
solver = "lu"
workers = 2
format = "yaml"
`), 0o600))

	t.Setenv("LVSLAM_MAX_ITERATIONS", "20")
	t.Setenv("LVSLAM_WORKERS", "3")

	f := config.NewFlagSet("test")
	require.NoError(t, f.Parse([]string{"--max-iterations=30", "--log-json"}))

	cfg, err := config.Load(f, path)
	require.NoError(t, err)

	// file
	require.Equal(t, "file.g2o", cfg.Input)
	require.Equal(t, "lu", cfg.Solver)
	require.Equal(t, "yaml", cfg.Format)
	// env over file, flag over env
	require.Equal(t, 3, cfg.Workers)
	require.Equal(t, 30, cfg.MaxIterations)
	require.True(t, cfg.LogJSON)
	// defaults survive unchanged flags
	require.Equal(t, 1e-4, cfg.Tolerance)
	require.True(t, cfg.FixFirstPose)
	require.NoError(t, cfg.Validate())
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_iterations = = 3"), 0o600))
	_, err := config.Load(nil, path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		cfg, err := config.Load(nil, missingFile(t))
		require.NoError(t, err)
		cfg.Input = "in.g2o"
		return cfg
	}
	require.NoError(t, base().Validate())

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no input", func(c *config.Config) { c.Input = "" }},
		{"format", func(c *config.Config) { c.Format = "xml" }},
		{"tolerance", func(c *config.Config) { c.Tolerance = -1 }},
		{"iterations", func(c *config.Config) { c.MaxIterations = 0 }},
		{"workers", func(c *config.Config) { c.Workers = 0 }},
		{"solver", func(c *config.Config) { c.Solver = "qr" }},
		{"log level", func(c *config.Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}
