// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Deep copies of a graph.

package core

// Clone returns a deep copy of the Graph: configuration, vertices and edges.
// The clone shares no mutable state with g, so optimizing one leaves the
// other untouched.
//
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		solver:          g.solver,
		workers:         g.workers,
		progress:        g.progress,
		logger:          g.logger,
		chi2Floor:       g.chi2Floor,
		divergenceGuard: g.divergenceGuard,
		vertices:        make([]*Vertex, len(g.vertices)),
		edges:           make([]*Edge, len(g.edges)),
		index:           make(map[string]int, len(g.index)),
		chi2:            g.chi2,
	}
	for i, v := range g.vertices {
		cp := *v
		clone.vertices[i] = &cp
	}
	for i, e := range g.edges {
		cp := *e
		clone.edges[i] = &cp
	}
	for id, i := range g.index {
		clone.index[id] = i
	}

	return clone
}
