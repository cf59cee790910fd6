// SPDX-License-Identifier: MIT
//
// File: optimize.go
// Role: Gauss-Newton loop: evaluate, test convergence, gauge-fix, solve, retract.
// Concurrency:
//   - Exclusive access: callers must not mutate the graph while Optimize runs.
//     No locks are taken.

package core

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvslam/se2"
)

// Optimize refines all vertex poses by Gauss-Newton until the relative chi2
// change drops below tolerance or maxIterations evaluations have run.
//
// Implementation:
//   - Stage 1: Evaluate chi2, gradient and Hessian at the current estimate.
//   - Stage 2: From the second iteration on, compute the relative change
//     (prev-chi2)/(prev+ε) and stop if chi2 strictly decreased and the
//     change is below tolerance. An increase does not stop the loop unless
//     WithDivergenceGuard is set.
//   - Stage 3: If fixFirstPose, zero block row and column 0 of the Hessian,
//     set its diagonal block to I and zero the gradient slice of vertex 0.
//   - Stage 4: Solve H·δ = -g and retract every vertex by its slice of δ.
//   - When the budget runs out, evaluate once more, emit a final Progress
//     with Iteration == maxIterations and report StatusIterationLimit.
//
// Behavior highlights:
//   - A cost at or below the chi2 floor stops immediately as converged; the
//     solver is never called for an edgeless or already consistent graph.
//   - A graph with several components fails before the first solve.
//
// Errors:
//   - ErrInvalidArgument for maxIterations < 1 or a negative/NaN tolerance.
//   - ErrUnlinkedEdge if an edge lost an endpoint.
//   - ErrSolverFailure (wrapping ErrDisconnected or the solver's error) when
//     no usable step can be computed.
//   - ctx.Err() when ctx is cancelled between iterations.
//
// Complexity:
//   - Per iteration O(E) evaluation plus the cost of the linear solve.
func (g *Graph) Optimize(ctx context.Context, tolerance float64, maxIterations int, fixFirstPose bool) (Result, error) {
	if maxIterations < 1 {
		return Result{}, fmt.Errorf("Optimize: maxIterations=%d: %w", maxIterations, ErrInvalidArgument)
	}
	if !(tolerance >= 0) {
		return Result{}, fmt.Errorf("Optimize: tolerance=%v: %w", tolerance, ErrInvalidArgument)
	}

	start := time.Now()
	res := Result{RunID: uuid.NewString()}
	log := g.logger.With(slog.String("run_id", res.RunID))
	log.Info("optimize start",
		slog.Int("vertices", len(g.vertices)),
		slog.Int("edges", len(g.edges)),
		slog.String("solver", g.solver.Name()),
		slog.Bool("fix_first_pose", fixFirstPose))

	finish := func(status Status) (Result, error) {
		res.Status = status
		res.Duration = time.Since(start)
		log.Info("optimize done",
			slog.String("status", status.String()),
			slog.Int("iterations", res.Iterations),
			slog.Float64("chi2", res.Chi2),
			slog.Duration("elapsed", res.Duration))
		return res, nil
	}

	var (
		prev      float64
		connected bool
	)
	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		acc, err := g.Evaluate(ctx)
		if err != nil {
			return res, fmt.Errorf("Optimize: iteration %d: %w", i, err)
		}
		chi2 := acc.Chi2
		g.chi2 = chi2
		res.Iterations = i + 1
		res.Chi2 = chi2
		if i == 0 {
			res.InitialChi2 = chi2
		}

		p := Progress{RunID: res.RunID, Iteration: i, Chi2: chi2}
		if i > 0 {
			p.RelativeChange = (prev - chi2) / (prev + eps)
			p.HasRelativeChange = true
			res.RelativeChange = p.RelativeChange
		}
		g.report(log, p)

		if chi2 <= g.chi2Floor {
			return finish(StatusConverged)
		}
		if i > 0 {
			if chi2 < prev && p.RelativeChange < tolerance {
				return finish(StatusConverged)
			}
			if g.divergenceGuard && chi2 > prev {
				log.Warn("chi2 increased", slog.Float64("prev", prev), slog.Float64("chi2", chi2))
				return finish(StatusDiverged)
			}
		}

		if !connected {
			if comps := g.componentIndices(); len(comps) > 1 {
				return res, fmt.Errorf("Optimize: %d components: %w: %w", len(comps), ErrSolverFailure, ErrDisconnected)
			}
			connected = true
		}

		delta, err := g.solveStep(acc, fixFirstPose)
		if err != nil {
			return res, fmt.Errorf("Optimize: iteration %d: %w", i, err)
		}
		for k, v := range g.vertices {
			o := k * PoseDim
			v.Pose = se2.Retract(v.Pose, se2.Vec3{delta[o], delta[o+1], delta[o+2]})
		}
		prev = chi2
	}

	chi2, err := g.Chi2()
	if err != nil {
		return res, fmt.Errorf("Optimize: final evaluation: %w", err)
	}
	g.chi2 = chi2
	res.Chi2 = chi2
	res.RelativeChange = (prev - chi2) / (prev + eps)
	g.report(log, Progress{
		RunID:             res.RunID,
		Iteration:         maxIterations,
		Chi2:              chi2,
		RelativeChange:    res.RelativeChange,
		HasRelativeChange: true,
	})

	return finish(StatusIterationLimit)
}

// solveStep materializes the normal equations, applies the gauge fix and
// returns δ with H·δ = -g.
func (g *Graph) solveStep(acc *Accumulator, fixFirstPose bool) ([]float64, error) {
	n := len(g.vertices)
	grad, err := acc.GradientVector(n)
	if err != nil {
		return nil, err
	}
	h, err := acc.HessianMatrix(n)
	if err != nil {
		return nil, err
	}
	if fixFirstPose && n > 0 {
		if err = h.ZeroBlockRow(0); err != nil {
			return nil, err
		}
		if err = h.ZeroBlockCol(0); err != nil {
			return nil, err
		}
		if err = h.SetBlock(0, 0, se2.Identity3().Values()); err != nil {
			return nil, err
		}
		for k := 0; k < PoseDim; k++ {
			grad[k] = 0
		}
	}

	rhs := make([]float64, len(grad))
	for k, v := range grad {
		rhs[k] = -v
	}
	delta, err := g.solver.Solve(h, rhs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", g.solver.Name(), ErrSolverFailure, err)
	}
	if len(delta) != len(rhs) {
		return nil, fmt.Errorf("%s: step length %d, want %d: %w", g.solver.Name(), len(delta), len(rhs), ErrSolverFailure)
	}
	for _, v := range delta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: non-finite step: %w", g.solver.Name(), ErrSolverFailure)
		}
	}

	return delta, nil
}

// report emits one progress event to the observer and the log.
func (g *Graph) report(log *slog.Logger, p Progress) {
	attrs := []any{slog.Int("iteration", p.Iteration), slog.Float64("chi2", p.Chi2)}
	if p.HasRelativeChange {
		attrs = append(attrs, slog.Float64("rel_change", p.RelativeChange))
	}
	log.Info("optimize iteration", attrs...)
	if g.progress != nil {
		g.progress(p)
	}
}

// LastChi2 returns the cost recorded by the most recent Optimize evaluation.
func (g *Graph) LastChi2() float64 { return g.chi2 }
