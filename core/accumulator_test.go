// SPDX-License-Identifier: MIT
package core_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvslam/core"
	"github.com/katalvlaran/lvslam/se2"
	"github.com/stretchr/testify/require"
)

const accTol = 1e-9

// loopContributions evaluates every edge of a noisy loop.
func loopContributions(t *testing.T) ([]core.EdgeContribution, int) {
	t.Helper()
	g := noisyLoop(t, 5, 0.1)
	poses := g.Poses()
	var out []core.EdgeContribution
	for _, e := range g.Edges() {
		c, err := e.Contribution(poses)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out, g.VertexCount()
}

func requireAccEqual(t *testing.T, want, got *core.Accumulator) {
	t.Helper()
	require.InDelta(t, want.Chi2, got.Chi2, accTol)
	require.Len(t, got.Gradient, len(want.Gradient))
	require.Len(t, got.Hessian, len(want.Hessian))
	for k, v := range want.Gradient {
		g, ok := got.Gradient[k]
		require.True(t, ok, "gradient key %d", k)
		for i := range v {
			require.InDelta(t, v[i], g[i], accTol)
		}
	}
	for k, m := range want.Hessian {
		h, ok := got.Hessian[k]
		require.True(t, ok, "hessian key %v", k)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				require.InDelta(t, m[i][j], h[i][j], accTol)
			}
		}
	}
}

func TestAccumulatorIdentity(t *testing.T) {
	cs, _ := loopContributions(t)
	acc := core.Fold(cs)

	requireAccEqual(t, acc, core.Combine(core.NewAccumulator(), acc))
	requireAccEqual(t, acc, core.Combine(acc, core.NewAccumulator()))

	empty := core.Fold(nil)
	require.Zero(t, empty.Chi2)
	require.Empty(t, empty.Gradient)
	require.Empty(t, empty.Hessian)
}

func TestAccumulatorPermutationInvariance(t *testing.T) {
	cs, _ := loopContributions(t)
	want := core.Fold(cs)

	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 20; trial++ {
		perm := append([]core.EdgeContribution(nil), cs...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		requireAccEqual(t, want, core.Fold(perm))
	}
}

func TestAccumulatorCombineAssociativeCommutative(t *testing.T) {
	cs, _ := loopContributions(t)
	a := core.Fold(cs[:1])
	b := core.Fold(cs[1:3])
	c := core.Fold(cs[3:])

	left := core.Combine(core.Combine(a, b), c)
	right := core.Combine(a, core.Combine(b, c))
	requireAccEqual(t, left, right)
	requireAccEqual(t, core.Combine(a, b), core.Combine(b, a))
	requireAccEqual(t, core.Fold(cs), left)
}

func TestCombineDoesNotMutateInputs(t *testing.T) {
	cs, _ := loopContributions(t)
	a := core.Fold(cs[:2])
	before := a.Chi2
	beforeGrad := a.Gradient[0]
	_ = core.Combine(a, a)
	require.Equal(t, before, a.Chi2)
	require.Equal(t, beforeGrad, a.Gradient[0])
}

// TestOppositeDirectionEdgesShareBlock checks an edge j→i lands, transposed,
// in the same canonical block as an edge i→j.
func TestOppositeDirectionEdgesShareBlock(t *testing.T) {
	hft := se2.Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	acc := core.NewAccumulator()
	acc.Add(core.EdgeContribution{From: 0, To: 1, HFT: hft})
	acc.Add(core.EdgeContribution{From: 1, To: 0, HFT: hft})

	require.Len(t, acc.Hessian, 3) // (0,0), (1,1), (0,1)
	_, reversed := acc.Hessian[core.BlockKey{Row: 1, Col: 0}]
	require.False(t, reversed)
	require.Equal(t, hft.Add(hft.T()), acc.Hessian[core.BlockKey{Row: 0, Col: 1}])
}

// TestSelfLoopFoldsCrossTermsOnDiagonal checks an edge i→i contributes
// HFF + HTT + HFT + HFTᵀ to block (i,i) and nothing off the diagonal.
func TestSelfLoopFoldsCrossTermsOnDiagonal(t *testing.T) {
	hff := se2.Diag3(1, 2, 3)
	htt := se2.Diag3(4, 5, 6)
	hft := se2.Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	acc := core.NewAccumulator()
	acc.Add(core.EdgeContribution{
		From: 2, To: 2,
		Chi2:     1.5,
		GradFrom: se2.Vec3{1, 0, 0},
		GradTo:   se2.Vec3{0, 1, 0},
		HFF:      hff, HFT: hft, HTT: htt,
	})

	require.Len(t, acc.Hessian, 1)
	want := hff.Add(htt).Add(hft).Add(hft.T())
	got := acc.Hessian[core.BlockKey{Row: 2, Col: 2}]
	require.Equal(t, want, got)
	require.Equal(t, got, got.T())
	require.Equal(t, se2.Vec3{1, 1, 0}, acc.Gradient[2])
	require.Equal(t, 1.5, acc.Chi2)
}

func TestMaterializedSystemIsSymmetric(t *testing.T) {
	cs, n := loopContributions(t)
	acc := core.Fold(cs)

	h, err := acc.HessianMatrix(n)
	require.NoError(t, err)
	require.Equal(t, n*core.PoseDim, h.Rows())
	for i := 0; i < h.Rows(); i++ {
		for j := 0; j < h.Cols(); j++ {
			a, err := h.At(i, j)
			require.NoError(t, err)
			b, err := h.At(j, i)
			require.NoError(t, err)
			if i/core.PoseDim != j/core.PoseDim {
				require.Equal(t, a, b) // mirrored blocks are exact copies
				continue
			}
			require.InDelta(t, a, b, 1e-12)
		}
	}

	grad, err := acc.GradientVector(n)
	require.NoError(t, err)
	require.Len(t, grad, n*core.PoseDim)
	for i, v := range acc.Gradient {
		require.Equal(t, v[:], grad[i*3:i*3+3])
	}

	_, err = acc.GradientVector(1)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}
