// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// impl_loop.go - Loop(n, radius) constructor.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewVertices); radius finite and > 0 (else ErrInvalidParameter).
//   - Ground truth: vertex i sits on a regular n-gon inscribed in the circle,
//     heading along the chord to vertex i+1. Every true motion is
//     (chord, 0, 2π/n); composing all n of them is the identity.
//   - Edges i→i+1 for i=0..n-2, then the closing edge (n-1)→0.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/se2"
)

const (
	methodLoop   = "Loop"
	minLoopNodes = 3
)

// Loop returns a Constructor for a closed loop of n poses.
func Loop(n int, radius float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minLoopNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodLoop, n, minLoopNodes, ErrTooFewVertices)
		}
		if !(radius > 0) || math.IsInf(radius, 0) {
			return fmt.Errorf("%s: radius=%g: %w", methodLoop, radius, ErrInvalidParameter)
		}

		turn := 2 * math.Pi / float64(n)
		chord := 2 * radius * math.Sin(math.Pi/float64(n))
		motions := make([]se2.Pose, n)
		for i := range motions {
			motions[i] = se2.Pose{X: chord, Theta: turn}
		}

		return trajectory(methodLoop, g, cfg, motions, true)
	}
}
