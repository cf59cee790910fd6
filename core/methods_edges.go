// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge insertion, information-matrix validation and relinking.

package core

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvslam/matrix"
	"github.com/katalvlaran/lvslam/se2"
)

// AddEdge appends an odometry constraint between two existing vertices and
// relinks the graph.
//
// Implementation:
//   - Stage 1: Reject self-loops, non-finite measurements and information
//     that is not symmetric positive definite.
//   - Stage 2: Append and relink; unresolved endpoints surface as ErrUnlinkedEdge
//     and the edge is rolled back.
//
// Errors:
//   - ErrInvalidArgument for self-loops or bad information/measurement.
//   - ErrUnlinkedEdge if from or to is not a vertex of the graph.
//
// Complexity: O(V+E).
func (g *Graph) AddEdge(from, to string, measurement se2.Pose, information se2.Mat3) error {
	if from == to {
		return fmt.Errorf("AddEdge(%q,%q): self-loop: %w", from, to, ErrInvalidArgument)
	}
	if !measurement.IsFinite() {
		return fmt.Errorf("AddEdge(%q,%q): non-finite measurement: %w", from, to, ErrInvalidArgument)
	}
	if err := validateInformation(information); err != nil {
		return fmt.Errorf("AddEdge(%q,%q): %w", from, to, err)
	}

	g.edges = append(g.edges, &Edge{
		From:        from,
		To:          to,
		Measurement: se2.NewPose(measurement.X, measurement.Y, measurement.Theta),
		Information: information,
	})
	if err := g.relink(); err != nil {
		g.edges = g.edges[:len(g.edges)-1]
		_ = g.relink()
		return fmt.Errorf("AddEdge(%q,%q): %w", from, to, err)
	}

	return nil
}

// AddEdgeCompact is AddEdge with the information matrix given as its six
// upper-triangle entries [i11 i12 i13 i22 i23 i33].
func (g *Graph) AddEdgeCompact(from, to string, measurement se2.Pose, upper []float64) error {
	info, err := se2.ExpandUpperTriangular3(upper)
	if err != nil {
		return fmt.Errorf("AddEdgeCompact(%q,%q): %w: %w", from, to, ErrInvalidArgument, err)
	}

	return g.AddEdge(from, to, measurement, info)
}

// Edges returns copies of all edges in insertion order. Copies keep their
// resolved endpoints, so Residual and friends work on them given Poses().
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = *e
	}

	return out
}

// validateInformation requires a finite, symmetric, positive definite Ω.
func validateInformation(info se2.Mat3) error {
	if !info.IsFinite() {
		return fmt.Errorf("information: non-finite: %w", ErrInvalidArgument)
	}
	d, err := info.Dense()
	if err != nil {
		return fmt.Errorf("information: %w: %w", ErrInvalidArgument, err)
	}
	if err = matrix.ValidateSymmetric(d, DefaultSymmetryEpsilon); err != nil {
		return fmt.Errorf("information: %w: %w", ErrInvalidArgument, err)
	}
	if _, err = matrix.Cholesky(d); err != nil {
		if errors.Is(err, matrix.ErrNotPositiveDefinite) {
			return fmt.Errorf("information: %w: %w", ErrInvalidArgument, err)
		}
		return fmt.Errorf("information: %w", err)
	}

	return nil
}

// relink rebuilds the id→index map, renumbers every vertex and rebinds every
// edge's endpoint indices. It reports the first unresolved edge.
// Complexity: O(V+E).
func (g *Graph) relink() error {
	index := make(map[string]int, len(g.vertices))
	for i, v := range g.vertices {
		v.Index = i
		index[v.ID] = i
	}
	g.index = index

	var firstErr error
	for _, e := range g.edges {
		fi, okF := index[e.From]
		ti, okT := index[e.To]
		e.from, e.to, e.linked = fi, ti, okF && okT
		if !e.linked && firstErr == nil {
			firstErr = fmt.Errorf("edge %q→%q: %w", e.From, e.To, ErrUnlinkedEdge)
		}
	}

	return firstErr
}
