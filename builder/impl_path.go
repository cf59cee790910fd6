// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// impl_path.go - Path(n, step) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices); step finite and > 0 (else ErrInvalidParameter).
//   - Ground truth: vertex i at (i·step, 0, 0). Edges i→i+1 in ascending order.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/se2"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor for a straight open trajectory of n poses.
func Path(n int, step float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		if !(step > 0) || math.IsInf(step, 0) {
			return fmt.Errorf("%s: step=%g: %w", methodPath, step, ErrInvalidParameter)
		}

		motions := make([]se2.Pose, n-1)
		for i := range motions {
			motions[i] = se2.Pose{X: step}
		}

		return trajectory(methodPath, g, cfg, motions, false)
	}
}
