// SPDX-License-Identifier: MIT
// Package matrix_test covers the BlockSparse storage.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvslam/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewBlockSparseInvalid(t *testing.T) {
	_, err := matrix.NewBlockSparse(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewBlockSparse(2, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestBlockSparseSetBlockAndAt(t *testing.T) {
	m, err := matrix.NewBlockSparse(3, 2)
	require.NoError(t, err)
	require.Equal(t, 6, m.Rows())
	require.Equal(t, 6, m.Cols())
	require.Equal(t, 2, m.BlockSize())
	require.Equal(t, 3, m.BlockCount())

	require.NoError(t, m.SetBlock(1, 2, []float64{1, 2, 3, 4}))
	require.Equal(t, 1, m.NonZeroBlocks())

	// Block (1,2) covers rows [2,4) x cols [4,6).
	v, err := m.At(2, 4)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	v, err = m.At(3, 5)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	// Absent blocks read as zero.
	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	vals, ok, err := m.Block(1, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 3, 4}, vals)

	vals, ok, err = m.Block(0, 0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []float64{0, 0, 0, 0}, vals)

	require.ErrorIs(t, m.SetBlock(3, 0, []float64{1, 2, 3, 4}), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.SetBlock(0, 0, []float64{1}), matrix.ErrDimensionMismatch)
	_, err = m.At(6, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestBlockSparseZeroRowCol(t *testing.T) {
	m, err := matrix.NewBlockSparse(2, 1)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Set(1, 0, 3))
	require.NoError(t, m.Set(1, 1, 4))
	require.Equal(t, 4, m.NonZeroBlocks())

	require.NoError(t, m.ZeroBlockRow(0))
	require.NoError(t, m.ZeroBlockCol(0))
	require.Equal(t, 1, m.NonZeroBlocks())

	d, err := m.ToDense()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 4}, d.Values())

	require.ErrorIs(t, m.ZeroBlockRow(2), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.ZeroBlockCol(-1), matrix.ErrOutOfRange)
}

func TestBlockSparseCloneIndependence(t *testing.T) {
	m, err := matrix.NewBlockSparse(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.SetBlock(0, 0, []float64{1, 0, 0, 1}))

	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 5))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}
