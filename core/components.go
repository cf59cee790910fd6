// SPDX-License-Identifier: MIT
//
// File: components.go
// Role: Connectivity diagnostics over the constraint topology.

package core

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Components returns the connected components of the graph, treating every
// linked edge as undirected. Each component lists vertex IDs in index order;
// components are ordered by their smallest index.
// Complexity: O(V+E).
func (g *Graph) Components() [][]string {
	idx := g.componentIndices()
	out := make([][]string, len(idx))
	for c, comp := range idx {
		ids := make([]string, len(comp))
		for k, i := range comp {
			ids[k] = g.vertices[i].ID
		}
		out[c] = ids
	}

	return out
}

func (g *Graph) componentIndices() [][]int {
	ug := simple.NewUndirectedGraph()
	for i := range g.vertices {
		ug.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		if !e.linked || e.from == e.to {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(int64(e.from)), T: simple.Node(int64(e.to))})
	}

	comps := topo.ConnectedComponents(ug)
	out := make([][]int, len(comps))
	for c, nodes := range comps {
		ids := make([]int, len(nodes))
		for k, n := range nodes {
			ids[k] = int(n.ID())
		}
		sort.Ints(ids)
		out[c] = ids
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}
