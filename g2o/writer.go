// SPDX-License-Identifier: MIT

package g2o

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/mathutil"
)

// Write serializes g as g2o records: every vertex, every edge, then a FIX
// line for vertex 0. Floats are written in shortest round-trip form.
func Write(w io.Writer, g *core.Graph) error {
	bw := bufio.NewWriter(w)
	vs := g.Vertices()
	for _, v := range vs {
		fmt.Fprintf(bw, "%s %s %s %s %s\n", TagVertex, v.ID, ff(v.Pose.X), ff(v.Pose.Y), ff(v.Pose.Theta))
	}
	for _, e := range g.Edges() {
		info, err := e.Information.Dense()
		if err != nil {
			return fmt.Errorf("g2o: edge %s→%s: %w", e.From, e.To, err)
		}
		upper, err := mathutil.UpperTriangular(info)
		if err != nil {
			return fmt.Errorf("g2o: edge %s→%s: %w", e.From, e.To, err)
		}
		fmt.Fprintf(bw, "%s %s %s %s %s %s", TagEdge, e.From, e.To,
			ff(e.Measurement.X), ff(e.Measurement.Y), ff(e.Measurement.Theta))
		for _, u := range upper {
			bw.WriteByte(' ')
			bw.WriteString(ff(u))
		}
		bw.WriteByte('\n')
	}
	if len(vs) > 0 {
		fmt.Fprintf(bw, "%s %s\n", TagFix, vs[0].ID)
	}

	return bw.Flush()
}

func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
