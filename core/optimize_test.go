// SPDX-License-Identifier: MIT
package core_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/matrix"
	"github.com/katalvlaran/lvslam/se2"
	"github.com/katalvlaran/lvslam/solver"
	"github.com/stretchr/testify/require"
)

func TestOptimizeConsistentTriangle(t *testing.T) {
	cs := newCountingSolver()
	g := consistentTriangle(t, core.WithSolver(cs))

	res, err := g.Optimize(context.Background(), 1e-6, 10, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusConverged, res.Status)
	require.Equal(t, 1, res.Iterations)
	require.InDelta(t, 0, res.Chi2, 1e-20)
	require.Zero(t, cs.calls.Load())
	require.NotEmpty(t, res.RunID)
}

func TestOptimizeSingleVertexNoEdges(t *testing.T) {
	cs := newCountingSolver()
	g := core.NewGraph(quiet(), core.WithSolver(cs))
	require.NoError(t, g.AddVertex("only", se2.NewPose(3, 4, 1)))

	res, err := g.Optimize(context.Background(), 1e-6, 5, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusConverged, res.Status)
	require.Equal(t, 0.0, res.Chi2)
	require.Zero(t, cs.calls.Load())

	p, err := g.Pose(0)
	require.NoError(t, err)
	require.Equal(t, se2.NewPose(3, 4, 1), p)
}

func TestOptimizeEmptyGraph(t *testing.T) {
	res, err := core.NewGraph(quiet()).Optimize(context.Background(), 1e-6, 5, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusConverged, res.Status)
}

func TestOptimizeNoisyLoopConverges(t *testing.T) {
	for _, name := range solver.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			s, err := solver.ByName(name)
			require.NoError(t, err)
			g := noisyLoop(t, 3, 0.1, core.WithSolver(s))

			initial, err := g.Chi2()
			require.NoError(t, err)
			require.Greater(t, initial, 1e-4)

			res, err := g.Optimize(context.Background(), 1e-8, 50, true)
			require.NoError(t, err)
			require.Equal(t, core.StatusConverged, res.Status)
			require.LessOrEqual(t, res.Iterations, 50)
			require.Less(t, res.Chi2, 1e-10)
			require.InDelta(t, initial, res.InitialChi2, 1e-12)
		})
	}
}

// TestOptimizeGaugeFixKeepsFirstPose checks vertex 0 is bit-for-bit unchanged.
func TestOptimizeGaugeFixKeepsFirstPose(t *testing.T) {
	g := noisyLoop(t, 8, 0.15)
	before, err := g.Pose(0)
	require.NoError(t, err)

	_, err = g.Optimize(context.Background(), 1e-8, 20, true)
	require.NoError(t, err)

	after, err := g.Pose(0)
	require.NoError(t, err)
	require.Equal(t, before, after)

	// The others moved.
	p1, err := g.Pose(1)
	require.NoError(t, err)
	require.NotEqual(t, noisyLoop(t, 8, 0.15).Poses()[1], p1)
}

// TestOptimizeRecoversRelativeGeometry compares the optimized loop with the
// ground truth expressed relative to vertex 0.
func TestOptimizeRecoversRelativeGeometry(t *testing.T) {
	g := noisyLoop(t, 21, 0.1)
	_, err := g.Optimize(context.Background(), 1e-10, 50, true)
	require.NoError(t, err)

	truth := squareLoop()
	poses := g.Poses()
	for i := 1; i < len(truth); i++ {
		want := se2.Between(truth[0], truth[i])
		got := se2.Between(poses[0], poses[i])
		require.Truef(t, got.ApproxEqual(want, 1e-6), "vertex %d: got %v want %v", i, got, want)
	}
}

func TestOptimizeIterationLimit(t *testing.T) {
	g := noisyLoop(t, 4, 0.2)
	res, err := g.Optimize(context.Background(), 1e-12, 1, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusIterationLimit, res.Status)
	require.Equal(t, 1, res.Iterations)
	require.Less(t, res.Chi2, res.InitialChi2) // final evaluation after the step

	chi2, err := g.Chi2()
	require.NoError(t, err)
	require.Equal(t, chi2, res.Chi2)
	require.Equal(t, chi2, g.LastChi2())
}

func TestOptimizeProgressEvents(t *testing.T) {
	var events []core.Progress
	g := noisyLoop(t, 6, 0.1, core.WithProgress(func(p core.Progress) { events = append(events, p) }))

	res, err := g.Optimize(context.Background(), 1e-8, 30, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusConverged, res.Status)
	require.Len(t, events, res.Iterations)
	require.False(t, events[0].HasRelativeChange)
	eps := math.Nextafter(1, 2) - 1
	for i, ev := range events {
		require.Equal(t, i, ev.Iteration)
		require.Equal(t, res.RunID, ev.RunID)
		if i > 0 {
			require.True(t, ev.HasRelativeChange)
			prev := events[i-1].Chi2
			require.InDelta(t, (prev-ev.Chi2)/(prev+eps), ev.RelativeChange, 1e-12)
		}
	}
}

func TestOptimizeIterationLimitReportsFinalEvaluation(t *testing.T) {
	var events []core.Progress
	g := noisyLoop(t, 4, 0.2, core.WithProgress(func(p core.Progress) { events = append(events, p) }))

	res, err := g.Optimize(context.Background(), 1e-12, 2, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusIterationLimit, res.Status)
	require.Equal(t, 2, res.Iterations)
	require.Len(t, events, 3)

	last := events[2]
	require.Equal(t, 2, last.Iteration)
	require.Equal(t, res.RunID, last.RunID)
	require.True(t, last.HasRelativeChange)
	require.Equal(t, res.Chi2, last.Chi2)

	eps := math.Nextafter(1, 2) - 1
	prev := events[1].Chi2
	want := (prev - res.Chi2) / (prev + eps)
	require.InDelta(t, want, res.RelativeChange, 1e-12)
	require.Equal(t, res.RelativeChange, last.RelativeChange)
}

func TestOptimizeInvalidArguments(t *testing.T) {
	g := consistentTriangle(t)
	_, err := g.Optimize(context.Background(), 1e-6, 0, true)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = g.Optimize(context.Background(), -1, 10, true)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = g.Optimize(context.Background(), math.NaN(), 10, true)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestOptimizeDisconnected(t *testing.T) {
	cs := newCountingSolver()
	g := core.NewGraph(quiet(), core.WithSolver(cs))
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, g.AddVertex(id, se2.Pose{}))
	}
	require.NoError(t, g.AddEdge("a", "b", se2.Pose{X: 1}, se2.Identity3()))
	require.NoError(t, g.AddEdge("c", "d", se2.Pose{X: 1}, se2.Identity3()))

	res, err := g.Optimize(context.Background(), 1e-6, 10, true)
	require.ErrorIs(t, err, core.ErrSolverFailure)
	require.ErrorIs(t, err, core.ErrDisconnected)
	require.Equal(t, core.StatusUnknown, res.Status)
	require.Zero(t, cs.calls.Load())
}

// failingSolver always fails.
type failingSolver struct{}

func (failingSolver) Name() string { return "failing" }
func (failingSolver) Solve(matrix.Matrix, []float64) ([]float64, error) {
	return nil, errors.New("boom")
}

// nanSolver returns a non-finite step.
type nanSolver struct{}

func (nanSolver) Name() string { return "nan" }
func (nanSolver) Solve(_ matrix.Matrix, b []float64) ([]float64, error) {
	out := make([]float64, len(b))
	out[len(out)-1] = math.NaN()
	return out, nil
}

func TestOptimizeSolverFailurePropagates(t *testing.T) {
	for _, s := range []solver.LinearSolver{failingSolver{}, nanSolver{}} {
		g := noisyLoop(t, 2, 0.1, core.WithSolver(s))
		before := g.Poses()
		res, err := g.Optimize(context.Background(), 1e-6, 10, true)
		require.ErrorIs(t, err, core.ErrSolverFailure, s.Name())
		require.Equal(t, core.StatusUnknown, res.Status, s.Name())
		require.Equal(t, before, g.Poses()) // no partial step
	}
}

func TestOptimizeContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := noisyLoop(t, 2, 0.1).Optimize(ctx, 1e-6, 10, true)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimizeDivergenceGuard(t *testing.T) {
	// A solver that pushes every pose away from the optimum.
	g := noisyLoop(t, 2, 0.1, core.WithSolver(scaledSolver{factor: -1}), core.WithDivergenceGuard())
	res, err := g.Optimize(context.Background(), 1e-9, 10, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusDiverged, res.Status)
	require.Equal(t, 2, res.Iterations)

	// Without the guard the same run is tolerated until the budget is spent.
	g = noisyLoop(t, 2, 0.1, core.WithSolver(scaledSolver{factor: -1}))
	res, err = g.Optimize(context.Background(), 1e-9, 3, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusIterationLimit, res.Status)
}

// scaledSolver multiplies the gonum step by factor.
type scaledSolver struct{ factor float64 }

func (scaledSolver) Name() string { return "scaled" }
func (s scaledSolver) Solve(h matrix.Matrix, b []float64) ([]float64, error) {
	x, err := solver.NewGonumCholesky().Solve(h, b)
	if err != nil {
		return nil, err
	}
	for i := range x {
		x[i] *= s.factor
	}
	return x, nil
}

func TestOptimizeParallelMatchesSerial(t *testing.T) {
	serial := noisyLoop(t, 13, 0.1)
	parallel := noisyLoop(t, 13, 0.1, core.WithWorkers(2))

	accS, err := serial.Evaluate(context.Background())
	require.NoError(t, err)
	accP, err := parallel.Evaluate(context.Background())
	require.NoError(t, err)
	requireAccEqual(t, accS, accP)

	rs, err := serial.Optimize(context.Background(), 1e-10, 30, true)
	require.NoError(t, err)
	rp, err := parallel.Optimize(context.Background(), 1e-10, 30, true)
	require.NoError(t, err)
	require.Equal(t, rs.Status, rp.Status)
	for i, p := range serial.Poses() {
		require.True(t, p.ApproxEqual(parallel.Poses()[i], 1e-9))
	}
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { core.WithSolver(nil) })
	require.Panics(t, func() { core.WithWorkers(0) })
	require.Panics(t, func() { core.WithLogger(nil) })
	require.Panics(t, func() { core.WithChi2Floor(-1) })
	require.Panics(t, func() { core.WithChi2Floor(math.NaN()) })
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "unknown", core.StatusUnknown.String())
	require.Equal(t, "converged", core.StatusConverged.String())
	require.Equal(t, "iteration_limit", core.StatusIterationLimit.String())
	require.Equal(t, "diverged", core.StatusDiverged.String())
	require.Equal(t, "unknown", core.Status(99).String())
}
