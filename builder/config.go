// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - idFn        = DefaultIDFn        ("0","1","2",...)
//   - rng         = nil                (noiseless unless seeded)
//   - noiseXY     = ZeroNoiseFn
//   - noiseTheta  = ZeroNoiseFn
//   - information = identity

package builder

import (
	"math/rand"

	"github.com/katalvlaran/lvslam/se2"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// Vertex ID strategy: index -> ID.
	idFn IDFn
	// Noise source; nil means every NoiseFn draws zero.
	rng *rand.Rand

	// Per-component odometry noise.
	noiseXY    NoiseFn
	noiseTheta NoiseFn

	// Information matrix attached to every generated edge.
	information se2.Mat3
}

// newBuilderConfig starts from the defaults and applies opts in order
// (later options override earlier ones).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:        DefaultIDFn,
		noiseXY:     ZeroNoiseFn,
		noiseTheta:  ZeroNoiseFn,
		information: se2.Identity3(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// perturb returns motion with one noise draw added to each component.
// Draw order is x, y, theta for every call.
func (c builderConfig) perturb(motion se2.Pose) se2.Pose {
	dx := c.noiseXY(c.rng)
	dy := c.noiseXY(c.rng)
	dt := c.noiseTheta(c.rng)

	return se2.NewPose(motion.X+dx, motion.Y+dy, motion.Theta+dt)
}
