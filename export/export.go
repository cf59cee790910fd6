// SPDX-License-Identifier: MIT

// Package export writes a snapshot of an optimized graph for downstream
// consumers (plotting, map building) as JSON or YAML.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/katalvlaran/lvslam/core"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("export: unknown format")

// Pose is one vertex in the report.
type Pose struct {
	ID     string       `json:"id" yaml:"id"`
	Index  int          `json:"index" yaml:"index"`
	X      float64      `json:"x" yaml:"x"`
	Y      float64      `json:"y" yaml:"y"`
	Theta  float64      `json:"theta" yaml:"theta"`
	Matrix [3][3]float64 `json:"matrix" yaml:"matrix"`
}

// Report is the serialized form of a graph after an Optimize run.
type Report struct {
	RunID       string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Status      string  `json:"status" yaml:"status"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	Chi2        float64 `json:"chi2" yaml:"chi2"`
	InitialChi2 float64 `json:"initial_chi2" yaml:"initial_chi2"`
	DurationMs  float64 `json:"duration_ms" yaml:"duration_ms"`
	Edges       int     `json:"edges" yaml:"edges"`
	Poses       []Pose  `json:"poses" yaml:"poses"`
}

// Snapshot captures the current poses of g together with the run summary.
func Snapshot(g *core.Graph, res core.Result) Report {
	vs := g.Vertices()
	out := Report{
		RunID:       res.RunID,
		Status:      res.Status.String(),
		Iterations:  res.Iterations,
		Chi2:        res.Chi2,
		InitialChi2: res.InitialChi2,
		DurationMs:  float64(res.Duration.Microseconds()) / 1000,
		Edges:       g.EdgeCount(),
		Poses:       make([]Pose, len(vs)),
	}
	for i, v := range vs {
		out.Poses[i] = Pose{
			ID:     v.ID,
			Index:  v.Index,
			X:      v.Pose.X,
			Y:      v.Pose.Y,
			Theta:  v.Pose.Theta,
			Matrix: v.Pose.Matrix(),
		}
	}

	return out
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(w io.Writer, g *core.Graph, res core.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(g, res)); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}

	return nil
}

// WriteYAML writes the snapshot as YAML.
func WriteYAML(w io.Writer, g *core.Graph, res core.Result) error {
	if err := yaml.NewEncoder(w).Encode(Snapshot(g, res)); err != nil {
		return fmt.Errorf("export: yaml: %w", err)
	}

	return nil
}

// Write dispatches on format ("json" or "yaml", case-insensitive).
func Write(w io.Writer, format string, g *core.Graph, res core.Result) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return WriteJSON(w, g, res)
	case FormatYAML, "yml":
		return WriteYAML(w, g, res)
	}

	return fmt.Errorf("export: %q: %w", format, ErrUnknownFormat)
}
