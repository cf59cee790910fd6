// SPDX-License-Identifier: MIT
package g2o_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/g2o"
	"github.com/katalvlaran/lvslam/se2"
	"github.com/stretchr/testify/require"
)

const squareG2O = `# unit square, counter-clockwise
VERTEX_SE2 0 0 0 0
VERTEX_SE2 1 1.05 0.02 1.6
VERTEX_SE2 2 0.97 1.01 3.1
VERTEX_SE2 3 -0.03 0.98 -1.55

EDGE_SE2 0 1 1 0 1.5707963267948966 1 0 0 1 0 1
EDGE_SE2 1 2 1 0 1.5707963267948966 1 0 0 1 0 1
EDGE_SE2 2 3 1 0 1.5707963267948966 1 0 0 1 0 1
EDGE_SE2 3 0 1 0 1.5707963267948966 1 0 0 1 0 1   # loop closure
PARAMS_SE2OFFSET 0 0 0 0
FIX 0
`

func quiet() core.GraphOption { return core.WithLogger(slog.New(slog.DiscardHandler)) }

func TestReadSquare(t *testing.T) {
	doc, err := g2o.Read(strings.NewReader(squareG2O))
	require.NoError(t, err)
	require.Len(t, doc.Vertices, 4)
	require.Len(t, doc.Edges, 4)
	require.Equal(t, []string{"0"}, doc.Fixed)
	require.Equal(t, 1, doc.Skipped)

	v := doc.Vertices[1]
	require.Equal(t, "1", v.ID)
	require.Equal(t, 3, v.Line)
	require.Equal(t, se2.NewPose(1.05, 0.02, 1.6), v.Pose)

	e := doc.Edges[3]
	require.Equal(t, "3", e.From)
	require.Equal(t, "0", e.To)
	require.Equal(t, [6]float64{1, 0, 0, 1, 0, 1}, e.Information)
}

func TestBuildAndOptimize(t *testing.T) {
	doc, err := g2o.Read(strings.NewReader(squareG2O))
	require.NoError(t, err)
	g, err := doc.Build(quiet())
	require.NoError(t, err)
	require.Equal(t, 4, g.VertexCount())
	require.Equal(t, 4, g.EdgeCount())

	res, err := g.Optimize(context.Background(), 1e-9, 30, true)
	require.NoError(t, err)
	require.Equal(t, core.StatusConverged, res.Status)
	require.Less(t, res.Chi2, 1e-10)
}

func TestBuildPutsFixedVertexFirst(t *testing.T) {
	src := "VERTEX_SE2 a 0 0 0\nVERTEX_SE2 b 1 0 0\nEDGE_SE2 a b 1 0 0 1 0 0 1 0 1\nFIX b\n"
	doc, err := g2o.Read(strings.NewReader(src))
	require.NoError(t, err)
	g, err := doc.Build(quiet())
	require.NoError(t, err)

	i, err := g.Index("b")
	require.NoError(t, err)
	require.Equal(t, 0, i)
}

func TestReadMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"vertex arity", "VERTEX_SE2 0 0 0\n", 1},
		{"edge arity", "VERTEX_SE2 0 0 0 0\n\nEDGE_SE2 0 1 1 0 0 1 0 0 1 0\n", 3},
		{"non-numeric", "VERTEX_SE2 0 x 0 0\n", 1},
		{"bad token", "VERTEX_SE2 0 0 0 0\nVERTEX_SE2 1 $ 0 0\n", 2},
		{"no tag", "1 2 3\n", 1},
		{"fix without id", "FIX\n", 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := g2o.Read(strings.NewReader(tc.src))
			require.ErrorIs(t, err, g2o.ErrMalformedRecord)
			var le *g2o.LineError
			require.True(t, errors.As(err, &le))
			require.Equal(t, tc.wantLine, le.Line)
		})
	}
}

func TestBuildReportsLine(t *testing.T) {
	src := "VERTEX_SE2 0 0 0 0\nVERTEX_SE2 0 1 0 0\n"
	doc, err := g2o.Read(strings.NewReader(src))
	require.NoError(t, err)
	_, err = doc.Build(quiet())
	require.ErrorIs(t, err, core.ErrDuplicateID)
	var le *g2o.LineError
	require.True(t, errors.As(err, &le))
	require.Equal(t, 2, le.Line)

	src = "VERTEX_SE2 0 0 0 0\nEDGE_SE2 0 9 1 0 0 1 0 0 1 0 1\n"
	doc, err = g2o.Read(strings.NewReader(src))
	require.NoError(t, err)
	_, err = doc.Build(quiet())
	require.ErrorIs(t, err, core.ErrUnlinkedEdge)

	src = "VERTEX_SE2 0 0 0 0\nVERTEX_SE2 1 0 0 0\nEDGE_SE2 0 1 1 0 0 1 0 0 -1 0 1\n"
	doc, err = g2o.Read(strings.NewReader(src))
	require.NoError(t, err)
	_, err = doc.Build(quiet())
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

// TestWriteReadRoundTrip checks read→build→write→read reproduces the graph exactly.
func TestWriteReadRoundTrip(t *testing.T) {
	doc, err := g2o.Read(strings.NewReader(squareG2O))
	require.NoError(t, err)
	g, err := doc.Build(quiet())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g2o.Write(&buf, g))
	require.Contains(t, buf.String(), "FIX 0\n")

	doc2, err := g2o.Read(&buf)
	require.NoError(t, err)
	g2, err := doc2.Build(quiet())
	require.NoError(t, err)

	require.Equal(t, g.Poses(), g2.Poses())
	e1, e2 := g.Edges(), g2.Edges()
	require.Len(t, e2, len(e1))
	for i := range e1 {
		require.Equal(t, e1[i].From, e2[i].From)
		require.Equal(t, e1[i].To, e2[i].To)
		require.Equal(t, e1[i].Measurement, e2[i].Measurement)
		require.Equal(t, e1[i].Information, e2[i].Information)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.g2o")
	require.NoError(t, os.WriteFile(path, []byte(squareG2O), 0o600))

	doc, err := g2o.Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Vertices, 4)

	_, err = g2o.Load(filepath.Join(t.TempDir(), "missing.g2o"))
	require.Error(t, err)
}

func TestReadScientificNotation(t *testing.T) {
	doc, err := g2o.Read(strings.NewReader("VERTEX_SE2 7 1e-05 -2.5E+2 .5\n"))
	require.NoError(t, err)
	p := doc.Vertices[0].Pose
	require.Equal(t, 1e-05, p.X)
	require.Equal(t, -250.0, p.Y)
	require.InDelta(t, 0.5, p.Theta, math.SmallestNonzeroFloat64)
}
