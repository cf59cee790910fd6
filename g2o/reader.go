// SPDX-License-Identifier: MIT

package g2o

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvslam/logging"
	"github.com/katalvlaran/lvslam/se2"
)

// Record tags.
const (
	TagVertex = "VERTEX_SE2"
	TagEdge   = "EDGE_SE2"
	TagFix    = "FIX"
)

const (
	vertexFields = 4  // id x y theta
	edgeFields   = 11 // from to dx dy dtheta + 6 information values
)

// VertexRecord is a parsed VERTEX_SE2 line.
type VertexRecord struct {
	ID   string
	Pose se2.Pose
	Line int
}

// EdgeRecord is a parsed EDGE_SE2 line.
type EdgeRecord struct {
	From, To    string
	Measurement se2.Pose
	Information [6]float64 // upper triangle, row-major
	Line        int
}

// Document is the content of a g2o file, in file order.
type Document struct {
	Vertices []VertexRecord
	Edges    []EdgeRecord
	Fixed    []string
	Skipped  int // lines with an unsupported tag
}

// Load reads the g2o file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("g2o: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses g2o records from r.
//
// Errors:
//   - *LineError wrapping ErrMalformedRecord for bad records.
//   - the reader's error, if any.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rec, err := recordParser.ParseString("", text)
		if err != nil {
			return nil, malformed(line, "%v", err)
		}
		if err = doc.add(line, rec); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("g2o: read: %w", err)
	}

	return doc, nil
}

func (d *Document) add(line int, rec *record) error {
	switch rec.Tag {
	case TagVertex:
		if len(rec.Fields) != vertexFields {
			return malformed(line, "%s: want %d fields, got %d", rec.Tag, vertexFields, len(rec.Fields))
		}
		v, err := parseFloats(line, rec.Fields[1:])
		if err != nil {
			return err
		}
		d.Vertices = append(d.Vertices, VertexRecord{
			ID:   rec.Fields[0],
			Pose: se2.NewPose(v[0], v[1], v[2]),
			Line: line,
		})

	case TagEdge:
		if len(rec.Fields) != edgeFields {
			return malformed(line, "%s: want %d fields, got %d", rec.Tag, edgeFields, len(rec.Fields))
		}
		v, err := parseFloats(line, rec.Fields[2:])
		if err != nil {
			return err
		}
		e := EdgeRecord{
			From:        rec.Fields[0],
			To:          rec.Fields[1],
			Measurement: se2.NewPose(v[0], v[1], v[2]),
			Line:        line,
		}
		copy(e.Information[:], v[3:])
		d.Edges = append(d.Edges, e)

	case TagFix:
		if len(rec.Fields) == 0 {
			return malformed(line, "%s: missing vertex id", rec.Tag)
		}
		d.Fixed = append(d.Fixed, rec.Fields...)

	default:
		d.Skipped++
		logging.Debug("g2o: skipping record", "line", line, "tag", rec.Tag)
	}

	return nil
}

func parseFloats(line int, fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, malformed(line, "field %q is not a number", f)
		}
		out[i] = v
	}

	return out, nil
}
