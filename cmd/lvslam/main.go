// SPDX-License-Identifier: MIT

// Command lvslam optimizes a 2D pose graph read from a g2o file and writes
// the corrected poses as JSON, YAML or g2o.
//
//	lvslam --input graph.g2o --output out.json
//	lvslam graph.g2o --format g2o --solver cholesky --watch
//
// Settings come from flags, LVSLAM_* environment variables and lvslam.toml,
// in that order of precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvslam/config"
	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/export"
	"github.com/katalvlaran/lvslam/g2o"
	"github.com/katalvlaran/lvslam/logging"
	"github.com/katalvlaran/lvslam/solver"
	"github.com/katalvlaran/lvslam/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run is main without the process globals.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := config.NewFlagSet("lvslam")
	flags.SetOutput(stderr)
	cfgPath := flags.String("config", "", "configuration file (default "+config.DefaultFile+")")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags, *cfgPath)
	if err != nil {
		return err
	}
	if cfg.Input == "" && flags.NArg() > 0 {
		cfg.Input = flags.Arg(0)
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(stderr, level, cfg.LogJSON)
	logging.SetLogger(logger)

	if err = optimizeFile(ctx, cfg, logger, stdout); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	return watch.Run(ctx, cfg.Input, watch.DefaultQuietPeriod, func(ctx context.Context) error {
		return optimizeFile(ctx, cfg, logger, stdout)
	})
}

// optimizeFile runs one load → optimize → write cycle.
func optimizeFile(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	doc, err := g2o.Load(cfg.Input)
	if err != nil {
		return err
	}
	if doc.Skipped > 0 {
		logger.Warn("skipped unsupported records", "count", doc.Skipped)
	}

	ls, err := solver.ByName(cfg.Solver)
	if err != nil {
		return err
	}
	opts := []core.GraphOption{
		core.WithSolver(ls),
		core.WithWorkers(cfg.Workers),
		core.WithLogger(logger),
		core.WithChi2Floor(cfg.Chi2Floor),
	}
	if cfg.Strict {
		opts = append(opts, core.WithDivergenceGuard())
	}

	g, err := doc.Build(opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	res, err := g.Optimize(ctx, cfg.Tolerance, cfg.MaxIterations, cfg.FixFirstPose)
	if err != nil {
		return err
	}
	if cfg.Strict && res.Status == core.StatusDiverged {
		return fmt.Errorf("optimization diverged after %d iterations (chi2 %g)", res.Iterations, res.Chi2)
	}

	return writeResult(cfg, g, res, stdout)
}

func writeResult(cfg *config.Config, g *core.Graph, res core.Result, stdout io.Writer) (err error) {
	w := stdout
	if cfg.Output != "" {
		f, cerr := os.Create(cfg.Output)
		if cerr != nil {
			return fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if strings.EqualFold(cfg.Format, "g2o") {
		return g2o.Write(w, g)
	}
	return export.Write(w, cfg.Format, g, res)
}
