// SPDX-License-Identifier: MIT

// Package core is the optimization back-end of a 2D pose-graph SLAM pipeline.
//
// A Graph holds pose estimates (vertices) connected by relative-motion
// constraints (edges). Optimize minimizes the total information-weighted
// squared error of all constraints with Gauss-Newton:
//
//	for each iteration:
//	    evaluate every edge → fold into an Accumulator (chi2, gradient, Hessian)
//	    stop if chi2 decreased by a relative amount below tolerance
//	    pin vertex 0 (gauge fix), solve H·δ = -g, retract every pose by δ
//
// Vertices are stored in an arena; an edge refers to its endpoints by arena
// index, resolved from vertex IDs on every structural change. IDs are the
// only stable handles; indices shift when vertices are added.
//
// Quick start:
//
//	g := core.NewGraph()
//	_ = g.AddVertex("a", se2.Pose{})
//	_ = g.AddVertex("b", se2.Pose{X: 0.9})
//	_ = g.AddEdge("a", "b", se2.Pose{X: 1}, se2.Identity3())
//	res, err := g.Optimize(ctx, 1e-6, 20, true)
//
// Concurrency: a Graph is not safe for concurrent mutation, and nothing may
// mutate it while Optimize runs. Edge evaluation inside Optimize may be
// spread over goroutines with WithWorkers; results do not depend on the
// worker count beyond float rounding.
//
// The linear solver is pluggable (WithSolver); see package solver.
package core
