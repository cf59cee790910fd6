// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Data types, GraphOption, sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrInvalidArgument - malformed input (empty ID, bad information matrix, self-loop, bad options).
//	ErrUnlinkedEdge    - an edge references a vertex ID absent from the graph.
//	ErrDuplicateID     - a vertex ID is already present.
//	ErrSolverFailure   - the linear solve could not produce a usable step.
//	ErrDisconnected    - the graph has more than one connected component.

package core

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/lvslam/logging"
	"github.com/katalvlaran/lvslam/se2"
	"github.com/katalvlaran/lvslam/solver"
)

// Sentinel errors for pose-graph operations.
var (
	// ErrInvalidArgument indicates malformed input to a graph operation.
	ErrInvalidArgument = errors.New("core: invalid argument")

	// ErrUnlinkedEdge indicates an edge whose endpoints do not resolve to vertices.
	ErrUnlinkedEdge = errors.New("core: unlinked edge")

	// ErrDuplicateID indicates a vertex ID collision on insert.
	ErrDuplicateID = errors.New("core: duplicate vertex ID")

	// ErrSolverFailure indicates the linear system could not be solved.
	ErrSolverFailure = errors.New("core: solver failure")

	// ErrDisconnected indicates the graph splits into several components,
	// leaving a gauge freedom per extra component.
	ErrDisconnected = errors.New("core: graph is disconnected")
)

// PoseDim is the tangent-space dimension of an SE(2) pose.
const PoseDim = 3

// Defaults applied by NewGraph.
const (
	// DefaultChi2Floor is the total cost at or below which the graph is
	// considered already optimal and no linear solve is attempted.
	DefaultChi2Floor = 1e-15

	// DefaultWorkers evaluates edges on the calling goroutine.
	DefaultWorkers = 1

	// DefaultSymmetryEpsilon bounds |Ω(i,j) - Ω(j,i)| for information matrices.
	DefaultSymmetryEpsilon = 1e-9
)

// eps guards the relative-change denominator against a zero previous cost.
var eps = math.Nextafter(1, 2) - 1

// Vertex is one pose estimate in the graph.
//
// Index is derived: it is the vertex's position in the graph's arena and is
// recomputed on every structural change. ID is the only stable handle.
type Vertex struct {
	// ID uniquely identifies this Vertex within its Graph.
	ID string

	// Index is the current position in the vertex ordering.
	Index int

	// Pose is the current estimate.
	Pose se2.Pose
}

// Edge is an odometry constraint: the pose of To seen from From should equal
// Measurement, weighted by Information.
//
// After linking, from/to hold the arena indices of the endpoints. Edges never
// hold pointers to vertices.
type Edge struct {
	// From is the source vertex ID.
	From string

	// To is the target vertex ID.
	To string

	// Measurement is the expected relative transform from From to To.
	Measurement se2.Pose

	// Information is the symmetric positive definite inverse covariance.
	Information se2.Mat3

	from, to int  // resolved arena indices
	linked   bool // both endpoints resolved
}

// Endpoints returns the resolved arena indices of the edge and whether they
// are currently valid.
func (e Edge) Endpoints() (from, to int, linked bool) {
	return e.from, e.to, e.linked
}

// Status is the terminal state of an Optimize run.
type Status int

const (
	// StatusUnknown is the zero value, left on results returned with an error.
	StatusUnknown Status = iota
	// StatusConverged means the relative chi2 change fell below tolerance
	// (or chi2 reached the floor).
	StatusConverged
	// StatusIterationLimit means the iteration budget ran out first.
	StatusIterationLimit
	// StatusDiverged means chi2 increased while the divergence guard was on.
	StatusDiverged
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusIterationLimit:
		return "iteration_limit"
	case StatusDiverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Result summarizes one Optimize run.
type Result struct {
	RunID          string        // unique per run, also attached to log lines
	Status         Status        // terminal state
	Iterations     int           // evaluations performed inside the loop
	Chi2           float64       // cost of the final pose estimate
	InitialChi2    float64       // cost before the first step
	RelativeChange float64       // last relative change reported
	Duration       time.Duration // wall time
}

// Progress is emitted once per iteration, plus once for the final
// evaluation when the iteration budget runs out.
type Progress struct {
	RunID             string
	Iteration         int
	Chi2              float64
	RelativeChange    float64
	HasRelativeChange bool // false on the first iteration
}

// GraphOption configures a Graph at construction.
type GraphOption func(g *Graph)

// WithSolver sets the linear solver. Panics on nil.
func WithSolver(s solver.LinearSolver) GraphOption {
	if s == nil {
		panic("core: WithSolver(nil)")
	}
	return func(g *Graph) { g.solver = s }
}

// WithWorkers sets how many goroutines evaluate edges in parallel.
// Panics if n < 1.
func WithWorkers(n int) GraphOption {
	if n < 1 {
		panic("core: WithWorkers(n<1)")
	}
	return func(g *Graph) { g.workers = n }
}

// WithProgress registers an observer called synchronously after each evaluation.
func WithProgress(fn func(Progress)) GraphOption {
	return func(g *Graph) { g.progress = fn }
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) GraphOption {
	if l == nil {
		panic("core: WithLogger(nil)")
	}
	return func(g *Graph) { g.logger = l }
}

// WithChi2Floor sets the cost at or below which optimization stops without
// solving. Panics on a negative or NaN floor.
func WithChi2Floor(floor float64) GraphOption {
	if !(floor >= 0) {
		panic("core: WithChi2Floor(negative or NaN)")
	}
	return func(g *Graph) { g.chi2Floor = floor }
}

// WithDivergenceGuard makes Optimize stop with StatusDiverged as soon as chi2
// increases between iterations. Off by default: increases are tolerated.
func WithDivergenceGuard() GraphOption {
	return func(g *Graph) { g.divergenceGuard = true }
}

// Graph owns the vertices and edges of a pose graph.
//
// Vertices live in an arena whose order defines their index; index is a
// bijection between vertex IDs and [0, VertexCount()).
//
// Graph is not safe for concurrent mutation. No caller may mutate vertices
// or edges while Optimize is running; reads of snapshots are always safe
// between calls.
type Graph struct {
	// Configuration
	solver          solver.LinearSolver
	workers         int
	progress        func(Progress)
	logger          *slog.Logger
	chi2Floor       float64
	divergenceGuard bool

	// Storage
	vertices []*Vertex     // arena, position == Index
	edges    []*Edge       // insertion order
	index    map[string]int // vertex ID → arena position (derived)

	// Last evaluated total cost.
	chi2 float64
}

// NewGraph creates an empty Graph. By default it uses the gonum Cholesky
// solver, evaluates edges serially and logs through logging.Logger().
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		solver:    solver.Default(),
		workers:   DefaultWorkers,
		logger:    logging.Logger(),
		chi2Floor: DefaultChi2Floor,
		index:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// SolverName reports the configured linear solver.
func (g *Graph) SolverName() string { return g.solver.Name() }
