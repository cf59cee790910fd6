// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   - Seeding is explicit via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvslam/se2"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the vertex ID generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithPrefixIDs names vertices prefix+index, e.g. "x0", "x1".
func WithPrefixIDs(prefix string) BuilderOption {
	return WithIDScheme(PrefixIDFn(prefix))
}

// WithRand provides an explicit noise source. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new seeded *rand.Rand. Use it in tests to lock outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNoise sets zero-mean Gaussian odometry noise: sigmaXY for each
// translation component, sigmaTheta for the heading (radians).
// Panics if either sigma is negative or not finite.
func WithNoise(sigmaXY, sigmaTheta float64) BuilderOption {
	return WithNoiseFn(GaussianNoiseFn(sigmaXY), GaussianNoiseFn(sigmaTheta))
}

// WithNoiseFn sets custom noise draws for translation and heading.
// Panics on nil.
func WithNoiseFn(xy, theta NoiseFn) BuilderOption {
	if xy == nil || theta == nil {
		panic("builder: WithNoiseFn(nil)")
	}
	return func(c *builderConfig) {
		c.noiseXY, c.noiseTheta = xy, theta
	}
}

// WithInformation sets the information matrix attached to every generated
// edge. Panics on non-finite entries, an asymmetric matrix or a
// non-positive diagonal; full positive-definiteness is checked by the graph.
func WithInformation(info se2.Mat3) BuilderOption {
	if !info.IsFinite() {
		panic("builder: WithInformation(non-finite)")
	}
	for i := 0; i < 3; i++ {
		if info[i][i] <= 0 {
			panic("builder: WithInformation(diagonal<=0)")
		}
		for j := i + 1; j < 3; j++ {
			if math.Abs(info[i][j]-info[j][i]) > 1e-12 {
				panic("builder: WithInformation(asymmetric)")
			}
		}
	}
	return func(c *builderConfig) {
		c.information = info
	}
}
