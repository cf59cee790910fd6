// SPDX-License-Identifier: MIT

// Package lvslam is a small 2D pose-graph SLAM back-end.
//
// A pose graph stores robot poses (x, y, θ) as vertices and relative-motion
// measurements with their information matrices as edges. Optimization
// finds the poses that best agree with all measurements, which is how a
// loop closure corrects the drift accumulated by odometry.
//
// Under the hood, everything is organized into subpackages:
//
//	mathutil/  - angle normalization and packed symmetric matrices
//	se2/       - Pose with compose, inverse, between and retract; 3×3 helpers
//	matrix/    - Dense and BlockSparse matrices with Cholesky/LU kernels
//	solver/    - pluggable linear solvers (gonum Cholesky, in-house Cholesky, LU)
//	core/      - Graph, Vertex, Edge, cost Accumulator and the Gauss-Newton optimizer
//	g2o/       - reader and writer for the g2o VERTEX_SE2/EDGE_SE2 text format
//	export/    - JSON and YAML snapshots of an optimized graph
//	builder/   - seeded synthetic trajectories for tests and benchmarks
//	config/    - layered settings: defaults, lvslam.toml, LVSLAM_* env, flags
//	logging/   - slog logger with a compact console handler
//	watch/     - re-run on file changes
//	cmd/lvslam - command-line front end
//
// Quick start:
//
//	doc, _ := g2o.Load("intel.g2o")
//	g, _ := doc.Build()
//	res, err := g.Optimize(ctx, 1e-4, 40, true)
//	_ = export.WriteJSON(os.Stdout, g, res)
package lvslam
