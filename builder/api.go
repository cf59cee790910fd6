// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// api.go - public entry points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs, options, seed and constructor order ⇒ identical graphs.
//   - Constructors never panic; they return sentinel errors wrapped with context.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/se2"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Vertex indices continue from g.VertexCount(), so several
// constructors in one BuildGraph call produce disjoint ID ranges.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// The first failing constructor aborts the build.
//
// Errors:
//   - ErrConstructFailed for a nil constructor or a graph insertion failure.
//   - ErrTooFewVertices / ErrInvalidParameter from constructor validation.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// Loop builds a closed polygonal trajectory of n poses on a circle of the
// given radius: n odometry edges i→i+1 plus the closing edge (n-1)→0.
// Complexity: O(n).
//func Loop(n int, radius float64) Constructor

// Path builds an open straight trajectory of n poses spaced step apart.
// Complexity: O(n).
//func Path(n int, step float64) Constructor

// trajectory inserts len(motions)+1 vertices dead-reckoned from noisy
// copies of motions, connected by odometry edges. If closing is true the
// last motion leads back to the first vertex and is emitted as an edge
// only, so the trajectory has len(motions) vertices.
func trajectory(method string, g *core.Graph, cfg builderConfig, motions []se2.Pose, closing bool) error {
	base := g.VertexCount()
	nv := len(motions) + 1
	if closing {
		nv = len(motions)
	}

	meas := make([]se2.Pose, len(motions))
	for i, m := range motions {
		meas[i] = cfg.perturb(m)
	}

	pose := se2.Pose{}
	for i := 0; i < nv; i++ {
		id := cfg.idFn(base + i)
		if err := g.AddVertex(id, pose); err != nil {
			return fmt.Errorf("%s: AddVertex(%s): %w: %w", method, id, ErrConstructFailed, err)
		}
		if i < len(meas) {
			pose = pose.Compose(meas[i])
		}
	}

	for i, z := range meas {
		from := cfg.idFn(base + i)
		to := cfg.idFn(base + (i+1)%nv)
		if err := g.AddEdge(from, to, z, cfg.information); err != nil {
			return fmt.Errorf("%s: AddEdge(%s→%s): %w: %w", method, from, to, ErrConstructFailed, err)
		}
	}

	return nil
}
