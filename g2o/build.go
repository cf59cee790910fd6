// SPDX-License-Identifier: MIT

package g2o

import (
	"github.com/katalvlaran/lvslam/core"
)

// Build creates a graph from the document. Vertices are added in file
// order, except that the first fixed vertex goes first; edges follow in file
// order.
//
// Errors:
//   - *LineError wrapping the core error (ErrDuplicateID, ErrUnlinkedEdge,
//     ErrInvalidArgument) of the offending line.
func (d *Document) Build(opts ...core.GraphOption) (*core.Graph, error) {
	g := core.NewGraph(opts...)

	order := make([]VertexRecord, 0, len(d.Vertices))
	if len(d.Fixed) > 0 {
		for _, v := range d.Vertices {
			if v.ID == d.Fixed[0] {
				order = append(order, v)
				break
			}
		}
	}
	for _, v := range d.Vertices {
		if len(order) > 0 && v.ID == order[0].ID && v.Line == order[0].Line {
			continue
		}
		order = append(order, v)
	}

	for _, v := range order {
		if err := g.AddVertex(v.ID, v.Pose); err != nil {
			return nil, &LineError{Line: v.Line, Err: err}
		}
	}
	for _, e := range d.Edges {
		if err := g.AddEdgeCompact(e.From, e.To, e.Measurement, e.Information[:]); err != nil {
			return nil, &LineError{Line: e.Line, Err: err}
		}
	}

	return g, nil
}
