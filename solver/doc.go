// SPDX-License-Identifier: MIT

// Package solver provides the sparse-capable linear solvers used for the
// Gauss-Newton normal equations H·δ = b.
//
// Three implementations share the LinearSolver interface:
//
//   - GonumCholesky (default): gonum's mat.Cholesky on a symmetric copy of H.
//   - Cholesky: the matrix package's Cholesky plus two triangular solves.
//   - LU: Doolittle LU without pivoting plus two triangular solves.
//
// H is typically a *matrix.BlockSparse; any matrix.Matrix is accepted.
// Solvers are stateless and safe for concurrent use.
package solver
