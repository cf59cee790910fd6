// SPDX-License-Identifier: MIT

// Package builder assembles synthetic pose graphs for tests, examples and
// benchmarks.
//
// A graph is built by BuildGraph from a list of Constructors. Each
// constructor walks a ground-truth trajectory (Loop, Path), perturbs every
// relative motion with seeded noise to obtain the odometry measurement, and
// dead-reckons the initial vertex poses from those measurements. The result
// looks like the raw output of a front-end: locally consistent, globally
// drifting, and (for loops) corrected only by the closing constraint.
//
// Components:
//
//   - BuilderOption: functional options resolved into an immutable builderConfig.
//   - IDFn: vertex ID schemes (DefaultIDFn, PrefixIDFn, ExcelColumnIDFn).
//   - NoiseFn: per-component noise draws (ZeroNoiseFn, GaussianNoiseFn, UniformNoiseFn).
//
// Determinism: equal options, seed and constructor order produce identical
// graphs. Without WithSeed/WithRand no noise is drawn at all.
//
// Option constructors panic on meaningless values; constructors return
// sentinel errors and never panic.
package builder
