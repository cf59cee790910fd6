// SPDX-License-Identifier: MIT

package solver

import "errors"

var (
	// ErrUnknownSolver is returned by ByName for an unrecognized name.
	ErrUnknownSolver = errors.New("solver: unknown solver")

	// ErrNotPositiveDefinite indicates the system matrix admits no Cholesky factor.
	ErrNotPositiveDefinite = errors.New("solver: matrix is not positive definite")

	// ErrNonFiniteSolution is returned when the computed step holds NaN or ±Inf.
	ErrNonFiniteSolution = errors.New("solver: non-finite solution")
)
