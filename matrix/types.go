// SPDX-License-Identifier: MIT

// Package matrix: shared types and numeric policy constants.
// This file contains ONLY the public Matrix interface, the block key used by
// BlockSparse, and the numeric defaults. Storage lives in impl_dense.go and
// impl_block_sparse.go; kernels live in impl_linear_algebra.go.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon is the absolute tolerance used by structural checks
	// (ValidateSymmetric).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	DefaultValidateNaNInf = true
)

// Matrix represents a two-dimensional mutable array of float64 values.
// Both *Dense and *BlockSparse implement it, so kernels and solvers can accept
// either storage and take fast paths on the concrete type.
//
// Complexity notes: all methods are expected O(1) except Clone.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if the indices are invalid.
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// blockKey addresses one block of a BlockSparse matrix by block-row and
// block-column. Using ints keeps the key compact and hash-friendly.
type blockKey struct {
	r int // block row
	c int // block column
}
