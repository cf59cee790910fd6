// SPDX-License-Identifier: MIT

// Package g2o reads and writes 2D pose graphs in the g2o text format.
//
// Supported records, one per line:
//
//	VERTEX_SE2 id x y theta
//	EDGE_SE2   from to dx dy dtheta i11 i12 i13 i22 i23 i33
//	FIX        id [id ...]
//
// The six trailing EDGE_SE2 values are the row-major upper triangle of the
// 3×3 information matrix. Blank lines and '#' comments are ignored; other
// record tags (landmarks, parameters, 3D types) are skipped.
//
// Read returns a Document; Document.Build turns it into a core.Graph. The
// first FIX vertex, if any, is inserted first so that it becomes the gauge
// vertex (index 0) of the optimizer.
package g2o
