// SPDX-License-Identifier: MIT

package mathutil

import (
	"fmt"

	"github.com/katalvlaran/lvslam/matrix"
)

// TriangularLen returns n(n+1)/2, the number of entries in the upper
// triangle (diagonal included) of an n×n matrix.
func TriangularLen(n int) int { return n * (n + 1) / 2 }

// ExpandUpperTriangular rebuilds the symmetric n×n matrix whose row-major
// upper triangle, diagonal included, is flat. For n = 3 the layout is
// [a11 a12 a13 a22 a23 a33].
//
// Errors:
//   - ErrInvalidArgument if n <= 0 or len(flat) != n(n+1)/2.
//   - matrix.ErrNaNInf (wrapped) if flat holds a non-finite value.
//
// Complexity: O(n²).
func ExpandUpperTriangular(flat []float64, n int) (*matrix.Dense, error) {
	if n <= 0 || len(flat) != TriangularLen(n) {
		return nil, fmt.Errorf("ExpandUpperTriangular(len=%d, n=%d): %w", len(flat), n, ErrInvalidArgument)
	}
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("ExpandUpperTriangular: %w", err)
	}
	k := 0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if err = out.Set(i, j, flat[k]); err != nil {
				return nil, fmt.Errorf("ExpandUpperTriangular: %w", err)
			}
			if err = out.Set(j, i, flat[k]); err != nil {
				return nil, fmt.Errorf("ExpandUpperTriangular: %w", err)
			}
			k++
		}
	}

	return out, nil
}

// UpperTriangular flattens the upper triangle of a square matrix, row by
// row, diagonal included. It is the inverse of ExpandUpperTriangular for
// symmetric inputs; the strictly lower part of m is ignored.
//
// Errors:
//   - ErrInvalidArgument if m is nil or not square.
func UpperTriangular(m matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("UpperTriangular: %w", ErrInvalidArgument)
	}
	n := m.Rows()
	if m.Cols() != n {
		return nil, fmt.Errorf("UpperTriangular(%dx%d): %w", n, m.Cols(), ErrInvalidArgument)
	}
	flat := make([]float64, 0, TriangularLen(n))
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("UpperTriangular: %w", err)
			}
			flat = append(flat, v)
		}
	}

	return flat, nil
}
