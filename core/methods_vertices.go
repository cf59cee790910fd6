// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex insertion and read-only vertex/pose queries.
// Determinism:
//   - Vertex order is insertion order; indices follow it exactly.

package core

import (
	"fmt"

	"github.com/katalvlaran/lvslam/se2"
)

// AddVertex appends a vertex with the given ID and initial pose, then relinks
// the graph. The pose heading is normalized.
//
// Errors:
//   - ErrInvalidArgument if id is empty or pose is not finite.
//   - ErrDuplicateID if id is already present.
//
// Complexity: O(V+E) for the relink.
func (g *Graph) AddVertex(id string, pose se2.Pose) error {
	if id == "" {
		return fmt.Errorf("AddVertex: empty id: %w", ErrInvalidArgument)
	}
	if !pose.IsFinite() {
		return fmt.Errorf("AddVertex(%q): non-finite pose: %w", id, ErrInvalidArgument)
	}
	if _, ok := g.index[id]; ok {
		return fmt.Errorf("AddVertex(%q): %w", id, ErrDuplicateID)
	}
	g.vertices = append(g.vertices, &Vertex{ID: id, Pose: se2.NewPose(pose.X, pose.Y, pose.Theta)})

	return g.relink()
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the current arena index of id. Indices change when vertices
// are added; hold on to IDs, not indices.
//
// Errors:
//   - ErrInvalidArgument if id is unknown.
func (g *Graph) Index(id string) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return -1, fmt.Errorf("Index(%q): unknown vertex: %w", id, ErrInvalidArgument)
	}

	return i, nil
}

// Pose returns the pose of the vertex at index.
func (g *Graph) Pose(index int) (se2.Pose, error) {
	if index < 0 || index >= len(g.vertices) {
		return se2.Pose{}, fmt.Errorf("Pose(%d): index out of range: %w", index, ErrInvalidArgument)
	}

	return g.vertices[index].Pose, nil
}

// PoseByID returns the pose of the vertex with the given ID.
func (g *Graph) PoseByID(id string) (se2.Pose, error) {
	i, err := g.Index(id)
	if err != nil {
		return se2.Pose{}, err
	}

	return g.vertices[i].Pose, nil
}

// TransformMatrix returns the homogeneous transform of the vertex at index.
func (g *Graph) TransformMatrix(index int) (se2.Mat3, error) {
	p, err := g.Pose(index)
	if err != nil {
		return se2.Mat3{}, err
	}

	return p.Matrix(), nil
}

// SetPose overwrites the estimate of the vertex with the given ID.
// The heading is normalized.
func (g *Graph) SetPose(id string, pose se2.Pose) error {
	i, err := g.Index(id)
	if err != nil {
		return err
	}
	if !pose.IsFinite() {
		return fmt.Errorf("SetPose(%q): non-finite pose: %w", id, ErrInvalidArgument)
	}
	g.vertices[i].Pose = se2.NewPose(pose.X, pose.Y, pose.Theta)

	return nil
}

// Vertices returns copies of all vertices in index order.
// Complexity: O(V).
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = *v
	}

	return out
}

// Poses returns the current estimates in index order.
func (g *Graph) Poses() []se2.Pose {
	out := make([]se2.Pose, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v.Pose
	}

	return out
}
