// SPDX-License-Identifier: MIT

package mathutil

import "math"

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle returns the representative of a in the half-open interval
// (-π, π]. It is exact in the sense of math.Remainder, so arbitrarily large
// magnitudes reduce correctly. NaN and ±Inf yield NaN.
//
// Complexity: O(1).
func NormalizeAngle(a float64) float64 {
	r := math.Remainder(a, TwoPi) // r ∈ [-π, π]
	if r <= -math.Pi {
		r += TwoPi
	}

	return r
}

// AngleDiff returns NormalizeAngle(a - b), the signed shortest rotation from b to a.
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(a - b)
}
