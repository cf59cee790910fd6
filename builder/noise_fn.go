// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// noise_fn.go - additive noise draws for synthetic odometry.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// NoiseFn draws one additive noise sample from rng. With a nil rng every
// NoiseFn returns 0, so unseeded builds are noiseless.
type NoiseFn func(rng *rand.Rand) float64

// ZeroNoiseFn always returns 0.
func ZeroNoiseFn(_ *rand.Rand) float64 { return 0 }

// GaussianNoiseFn samples N(0, sigma²). Panics if sigma is negative or not finite.
func GaussianNoiseFn(sigma float64) NoiseFn {
	if !(sigma >= 0) || math.IsInf(sigma, 0) {
		panic(fmt.Sprintf("GaussianNoiseFn: sigma must be finite and ≥ 0, got %g", sigma))
	}
	if sigma == 0 {
		return ZeroNoiseFn
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return 0
		}
		return rng.NormFloat64() * sigma
	}
}

// UniformNoiseFn samples uniformly in [-halfWidth, halfWidth).
// Panics if halfWidth is negative or not finite.
func UniformNoiseFn(halfWidth float64) NoiseFn {
	if !(halfWidth >= 0) || math.IsInf(halfWidth, 0) {
		panic(fmt.Sprintf("UniformNoiseFn: halfWidth must be finite and ≥ 0, got %g", halfWidth))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil || halfWidth == 0 {
			return 0
		}
		return (2*rng.Float64() - 1) * halfWidth
	}
}
