// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvslam/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil(t *testing.T) {
	var d *matrix.Dense
	var bs *matrix.BlockSparse
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(bs), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(mustDense(t, 1, 1)))
}

func TestValidateVecLen(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
}

func TestValidateFiniteVec(t *testing.T) {
	require.NoError(t, matrix.ValidateFiniteVec([]float64{1, -2}))
	require.ErrorIs(t, matrix.ValidateFiniteVec([]float64{1, math.Inf(-1)}), matrix.ErrNaNInf)
}

func TestValidateSymmetric(t *testing.T) {
	sym := mustDense(t, 2, 2, 1, 2, 2, 3)
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	near := mustDense(t, 2, 2, 1, 2, 2+1e-12, 3)
	require.NoError(t, matrix.ValidateSymmetric(near, matrix.DefaultEpsilon))
	require.ErrorIs(t, matrix.ValidateSymmetric(near, 0), matrix.ErrAsymmetry)

	require.ErrorIs(t, matrix.ValidateSymmetric(mustDense(t, 2, 3), 0), matrix.ErrDimensionMismatch)
}
