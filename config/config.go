// SPDX-License-Identifier: MIT

// Package config resolves lvslam settings from layered sources.
// Priority: flags > environment (LVSLAM_*) > lvslam.toml > defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvslam/logging"
	"github.com/katalvlaran/lvslam/solver"
)

const (
	// DefaultFile is the configuration file read from the working directory.
	DefaultFile = "lvslam.toml"
	// EnvPrefix prefixes environment overrides, e.g. LVSLAM_MAX_ITERATIONS=80.
	EnvPrefix = "LVSLAM_"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds all settings of one lvslam run.
type Config struct {
	Input         string  `koanf:"input"`
	Output        string  `koanf:"output"`
	Format        string  `koanf:"format"`
	Tolerance     float64 `koanf:"tolerance"`
	MaxIterations int     `koanf:"max_iterations"`
	FixFirstPose  bool    `koanf:"fix_first_pose"`
	Solver        string  `koanf:"solver"`
	Workers       int     `koanf:"workers"`
	Chi2Floor     float64 `koanf:"chi2_floor"`
	Strict        bool    `koanf:"strict"`
	Watch         bool    `koanf:"watch"`
	LogLevel      string  `koanf:"log_level"`
	LogJSON       bool    `koanf:"log_json"`
}

// Defaults returns the built-in values for every key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"input":          "",
		"output":         "",
		"format":         "json",
		"tolerance":      1e-4,
		"max_iterations": 40,
		"fix_first_pose": true,
		"solver":         solver.NameGonum,
		"workers":        1,
		"chi2_floor":     1e-15,
		"strict":         false,
		"watch":          false,
		"log_level":      "info",
		"log_json":       false,
	}
}

// NewFlagSet declares one flag per key. Flag names use dashes
// (max-iterations) and map onto the underscore keys.
func NewFlagSet(name string) *pflag.FlagSet {
	d := Defaults()
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.StringP("input", "i", d["input"].(string), "g2o file to optimize")
	f.StringP("output", "o", d["output"].(string), "output file (stdout when empty)")
	f.StringP("format", "f", d["format"].(string), "output format: json, yaml or g2o")
	f.Float64("tolerance", d["tolerance"].(float64), "relative chi2 change that counts as converged")
	f.Int("max-iterations", d["max_iterations"].(int), "Gauss-Newton iteration budget")
	f.Bool("fix-first-pose", d["fix_first_pose"].(bool), "pin the first vertex (gauge fix)")
	f.String("solver", d["solver"].(string), "linear solver: "+strings.Join(solver.Names(), ", "))
	f.Int("workers", d["workers"].(int), "goroutines used for edge evaluation")
	f.Float64("chi2-floor", d["chi2_floor"].(float64), "cost treated as already optimal")
	f.Bool("strict", d["strict"].(bool), "stop with status diverged when chi2 increases")
	f.BoolP("watch", "w", d["watch"].(bool), "re-run when the input file changes")
	f.String("log-level", d["log_level"].(string), "trace, debug, info, warn or error")
	f.Bool("log-json", d["log_json"].(bool), "emit JSON log lines")
	return f
}

// Load layers defaults, the TOML file at path (DefaultFile when empty; a
// missing file is ignored), LVSLAM_* variables and the flags in f.
// f may be nil.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	// 3. Environment: LVSLAM_MAX_ITERATIONS -> max_iterations
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			return strings.ReplaceAll(fl.Name, "-", "_"), posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects settings the optimizer or the writers cannot honor.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, fmt.Errorf("input: empty: %w", ErrInvalidConfig))
	}
	switch strings.ToLower(c.Format) {
	case "json", "yaml", "yml", "g2o":
	default:
		errs = append(errs, fmt.Errorf("format %q: %w", c.Format, ErrInvalidConfig))
	}
	if !(c.Tolerance >= 0) {
		errs = append(errs, fmt.Errorf("tolerance %v: %w", c.Tolerance, ErrInvalidConfig))
	}
	if c.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("max_iterations %d: %w", c.MaxIterations, ErrInvalidConfig))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidConfig))
	}
	if !(c.Chi2Floor >= 0) {
		errs = append(errs, fmt.Errorf("chi2_floor %v: %w", c.Chi2Floor, ErrInvalidConfig))
	}
	if _, err := solver.ByName(c.Solver); err != nil {
		errs = append(errs, fmt.Errorf("solver: %w: %w", ErrInvalidConfig, err))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("not implemented")
}
