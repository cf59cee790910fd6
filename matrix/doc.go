// SPDX-License-Identifier: MIT

// Package matrix provides the dense and block-sparse storage plus the small
// set of linear-algebra kernels the pose-graph optimizer is built on.
//
// The matrix package provides:
//
//   - Dense: row-major storage with bounds-checked At/Set and a NaN/Inf policy.
//   - BlockSparse: a square matrix stored as d×d blocks, the natural layout of
//     a pose-graph Hessian (block size 3 for SE(2)).
//   - Kernels: MatVec, LU (Doolittle, no pivoting), Cholesky,
//     ForwardSubstitute, BackSubstitute.
//   - Validators: ValidateNotNil, ValidateSquare, ValidateVecLen,
//     ValidateFiniteVec, ValidateSymmetric.
//
// Errors are package sentinels (ErrOutOfRange, ErrDimensionMismatch,
// ErrSingular, ErrNotPositiveDefinite, ...) wrapped with an operation tag;
// match them with errors.Is.
package matrix
