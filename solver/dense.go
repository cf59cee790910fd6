// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvslam/matrix"
)

// Cholesky solves h·x = b via L·Lᵀ using the matrix package kernels.
type Cholesky struct{}

// NewCholesky returns a Cholesky solver.
func NewCholesky() *Cholesky { return &Cholesky{} }

// Name implements LinearSolver.
func (*Cholesky) Name() string { return NameCholesky }

// Solve implements LinearSolver.
func (*Cholesky) Solve(h matrix.Matrix, b []float64) ([]float64, error) {
	const tag = "Cholesky.Solve"
	if err := validateSystem(tag, h, b); err != nil {
		return nil, err
	}
	L, err := matrix.Cholesky(h)
	if err != nil {
		if errors.Is(err, matrix.ErrNotPositiveDefinite) {
			return nil, fmt.Errorf("%s: %w: %w", tag, ErrNotPositiveDefinite, err)
		}
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	y, err := matrix.ForwardSubstitute(L, b, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	x, err := matrix.BackSubstitute(L, y, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	return checkSolution(tag, x)
}

// LU solves h·x = b via Doolittle LU (no pivoting).
type LU struct{}

// NewLU returns an LU solver.
func NewLU() *LU { return &LU{} }

// Name implements LinearSolver.
func (*LU) Name() string { return NameLU }

// Solve implements LinearSolver.
//
// Errors:
//   - matrix.ErrSingular on a zero pivot.
func (*LU) Solve(h matrix.Matrix, b []float64) ([]float64, error) {
	const tag = "LU.Solve"
	if err := validateSystem(tag, h, b); err != nil {
		return nil, err
	}
	L, U, err := matrix.LU(h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	y, err := matrix.ForwardSubstitute(L, b, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	x, err := matrix.BackSubstitute(U, y, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	return checkSolution(tag, x)
}
