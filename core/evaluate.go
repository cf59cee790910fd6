// SPDX-License-Identifier: MIT
//
// File: evaluate.go
// Role: Evaluate every edge at the current estimate and fold the results.
// Concurrency:
//   - With workers > 1 edges are split into contiguous chunks evaluated on
//     separate goroutines; partial accumulators are combined in chunk order.
//     Poses are read-only for the duration.

package core

import (
	"context"

	"github.com/katalvlaran/lvslam/se2"
	"golang.org/x/sync/errgroup"
)

// Evaluate folds the contributions of all edges at the current estimate.
//
// Errors:
//   - ErrUnlinkedEdge if any edge is not linked.
//   - ctx.Err() if ctx is cancelled during parallel evaluation.
func (g *Graph) Evaluate(ctx context.Context) (*Accumulator, error) {
	poses := g.Poses()
	if g.workers <= 1 || len(g.edges) < 2*g.workers {
		return foldEdges(g.edges, poses)
	}

	chunk := (len(g.edges) + g.workers - 1) / g.workers
	parts := make([]*Accumulator, 0, g.workers)
	for lo := 0; lo < len(g.edges); lo += chunk {
		parts = append(parts, nil)
	}

	eg, ctx := errgroup.WithContext(ctx)
	for p := range parts {
		lo := p * chunk
		hi := min(lo+chunk, len(g.edges))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acc, err := foldEdges(g.edges[lo:hi], poses)
			if err != nil {
				return err
			}
			parts[p] = acc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := NewAccumulator()
	for _, part := range parts {
		out = Combine(out, part)
	}

	return out, nil
}

func foldEdges(edges []*Edge, poses []se2.Pose) (*Accumulator, error) {
	acc := NewAccumulator()
	for _, e := range edges {
		c, err := e.Contribution(poses)
		if err != nil {
			return nil, err
		}
		acc.Add(c)
	}

	return acc, nil
}

// Chi2 returns the total cost of the current estimate.
func (g *Graph) Chi2() (float64, error) {
	poses := g.Poses()
	var total float64
	for _, e := range g.edges {
		c, err := e.Chi2(poses)
		if err != nil {
			return 0, err
		}
		total += c
	}

	return total, nil
}
