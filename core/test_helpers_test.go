// SPDX-License-Identifier: MIT
// Package core_test holds shared fixtures for the core tests.
package core_test

import (
	"log/slog"
	"math"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/matrix"
	"github.com/katalvlaran/lvslam/se2"
	"github.com/katalvlaran/lvslam/solver"
	"github.com/stretchr/testify/require"
)

// quiet silences optimizer logs in tests.
func quiet() core.GraphOption {
	return core.WithLogger(slog.New(slog.DiscardHandler))
}

// countingSolver wraps a real solver and counts Solve calls.
type countingSolver struct {
	inner solver.LinearSolver
	calls atomic.Int64
}

func newCountingSolver() *countingSolver {
	return &countingSolver{inner: solver.NewGonumCholesky()}
}

func (c *countingSolver) Name() string { return "counting" }

func (c *countingSolver) Solve(h matrix.Matrix, b []float64) ([]float64, error) {
	c.calls.Add(1)
	return c.inner.Solve(h, b)
}

// squareLoop returns the ground truth of a unit square driven counter-clockwise.
func squareLoop() []se2.Pose {
	return []se2.Pose{
		{X: 0, Y: 0, Theta: 0},
		{X: 1, Y: 0, Theta: math.Pi / 2},
		{X: 1, Y: 1, Theta: math.Pi},
		{X: 0, Y: 1, Theta: -math.Pi / 2},
	}
}

var loopIDs = []string{"v0", "v1", "v2", "v3"}

// noisyLoop builds the 4-vertex closed loop with exact odometry and initial
// estimates perturbed by noise of the given scale.
func noisyLoop(t *testing.T, seed int64, scale float64, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	truth := squareLoop()
	rng := rand.New(rand.NewSource(seed))

	g := core.NewGraph(append([]core.GraphOption{quiet()}, opts...)...)
	for i, p := range truth {
		noisy := se2.NewPose(
			p.X+scale*rng.NormFloat64(),
			p.Y+scale*rng.NormFloat64(),
			p.Theta+scale*rng.NormFloat64(),
		)
		require.NoError(t, g.AddVertex(loopIDs[i], noisy))
	}
	for i := range truth {
		j := (i + 1) % len(truth)
		z := se2.Between(truth[i], truth[j])
		require.NoError(t, g.AddEdge(loopIDs[i], loopIDs[j], z, se2.Identity3()))
	}

	return g
}

// consistentTriangle is the three-vertex ground-truth chain with exact odometry.
func consistentTriangle(t *testing.T, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	g := core.NewGraph(append([]core.GraphOption{quiet()}, opts...)...)
	poses := []se2.Pose{{X: 0, Y: 0, Theta: 0}, {X: 1, Y: 0, Theta: 0}, {X: 1, Y: 1, Theta: math.Pi / 2}}
	ids := []string{"a", "b", "c"}
	for i, p := range poses {
		require.NoError(t, g.AddVertex(ids[i], p))
	}
	require.NoError(t, g.AddEdge("a", "b", se2.Between(poses[0], poses[1]), se2.Identity3()))
	require.NoError(t, g.AddEdge("b", "c", se2.Between(poses[1], poses[2]), se2.Identity3()))

	return g
}
