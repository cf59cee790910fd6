// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the optimizer
// and its solvers: matrix-vector product, transpose, product, Doolittle LU,
// Cholesky, and forward/backward triangular substitution. All functions
// perform strict fail-fast validation and return clear errors.
//
// Notes:
//   - Kernels take a fast path on *Dense (flat slice walks) and fall back to
//     At/Set for any other Matrix (e.g. *BlockSparse).
//   - No pivoting anywhere: results are bit-for-bit reproducible.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for substitution and dot products.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU and triangular solves.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec   = "MatVec"
	opLU       = "LU"
	opCholesky = "Cholesky"
	opForward  = "ForwardSubstitute"
	opBackward = "BackSubstitute"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m as *Dense, converting a BlockSparse or copying any other
// implementation element-wise.
func asDense(m Matrix) (*Dense, error) {
	switch v := m.(type) {
	case *Dense:
		return v, nil
	case *BlockSparse:
		return v.ToDense()
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		x    float64
	)
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if x, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = x
		}
	}

	return out, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var (
		i, j int
		sum  float64
	)
	for i = 0; i < d.r; i++ {
		sum = ZeroSum
		for j = 0; j < d.c; j++ {
			sum += d.data[i*d.c+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
//
// Implementation:
//   - Stage 1: Validate m (not nil, square); allocate Dense L,U; set diag(L)=1.
//   - Stage 2: For i=0..n-1, build row i of U and column i of L in fixed order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (if U[i,i]==0 during factorization).
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - Without pivoting the factorization exists for SPD inputs (every leading
//     minor is positive), which is exactly what a gauge-fixed Hessian is.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := a.r
	L, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var (
		i, j, k int
		sum     float64
		pivot   float64
	)
	for i = 0; i < n; i++ {
		// Row i of U.
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = a.data[i*n+j] - sum
		}
		pivot = U.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		// Column i of L.
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			L.data[j*n+i] = (a.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// Cholesky computes the lower-triangular factor L with A = L·Lᵀ.
//
// Implementation:
//   - Stage 1: Validate m (not nil, square, symmetric within DefaultEpsilon).
//   - Stage 2: Column-by-column Cholesky–Banachiewicz in fixed order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry.
//   - ErrNotPositiveDefinite when a diagonal pivot is <= 0 or not finite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func Cholesky(m Matrix) (*Dense, error) {
	if err := ValidateSymmetric(m, DefaultEpsilon); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var (
		i, j, k int
		sum     float64
		diag    float64
	)
	for j = 0; j < n; j++ {
		sum = ZeroSum
		for k = 0; k < j; k++ {
			sum += L.data[j*n+k] * L.data[j*n+k]
		}
		diag = a.data[j*n+j] - sum
		if !(diag > 0) || math.IsInf(diag, 0) {
			return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d: %w", j, ErrNotPositiveDefinite))
		}
		diag = math.Sqrt(diag)
		L.data[j*n+j] = diag
		for i = j + 1; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < j; k++ {
				sum += L.data[i*n+k] * L.data[j*n+k]
			}
			L.data[i*n+j] = (a.data[i*n+j] - sum) / diag
		}
	}

	return L, nil
}

// ForwardSubstitute solves L·y = b for lower-triangular L.
// If unitDiagonal is true the diagonal of L is assumed to be 1 (Doolittle L).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero diagonal).
//
// Complexity: O(n²).
func ForwardSubstitute(L Matrix, b []float64, unitDiagonal bool) ([]float64, error) {
	if err := ValidateNotNil(L); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	if err := ValidateSquare(L); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	if err := ValidateVecLen(b, L.Rows()); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	l, err := asDense(L)
	if err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	n := l.r
	y := make([]float64, n)
	var (
		i, k  int
		sum   float64
		pivot float64
	)
	for i = 0; i < n; i++ {
		sum = ZeroSum
		for k = 0; k < i; k++ {
			sum += l.data[i*n+k] * y[k]
		}
		if unitDiagonal {
			y[i] = b[i] - sum
			continue
		}
		pivot = l.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, matrixErrorf(opForward, ErrSingular)
		}
		y[i] = (b[i] - sum) / pivot
	}

	return y, nil
}

// BackSubstitute solves U·x = y for upper-triangular U. When transposed is
// true, U is given as its lower-triangular transpose (e.g. a Cholesky factor L
// solving Lᵀ·x = y) and is read accordingly without materializing Lᵀ.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero diagonal).
//
// Complexity: O(n²).
func BackSubstitute(U Matrix, y []float64, transposed bool) ([]float64, error) {
	if err := ValidateNotNil(U); err != nil {
		return nil, matrixErrorf(opBackward, err)
	}
	if err := ValidateSquare(U); err != nil {
		return nil, matrixErrorf(opBackward, err)
	}
	if err := ValidateVecLen(y, U.Rows()); err != nil {
		return nil, matrixErrorf(opBackward, err)
	}
	u, err := asDense(U)
	if err != nil {
		return nil, matrixErrorf(opBackward, err)
	}
	n := u.r
	x := make([]float64, n)
	var (
		i, k  int
		sum   float64
		pivot float64
	)
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for k = i + 1; k < n; k++ {
			if transposed {
				sum += u.data[k*n+i] * x[k]
			} else {
				sum += u.data[i*n+k] * x[k]
			}
		}
		pivot = u.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, matrixErrorf(opBackward, ErrSingular)
		}
		x[i] = (y[i] - sum) / pivot
	}

	return x, nil
}
