// SPDX-License-Identifier: MIT
//
// File: accumulator.go
// Role: Monoid that folds per-edge contributions into a global cost,
// per-vertex gradient and per-block Hessian.
// Determinism:
//   - Combine is pure. Sums are order-independent up to float rounding.

package core

import (
	"fmt"

	"github.com/katalvlaran/lvslam/matrix"
	"github.com/katalvlaran/lvslam/se2"
)

// BlockKey addresses a PoseDim×PoseDim Hessian block. Off-diagonal keys are
// canonical: Row < Col.
type BlockKey struct {
	Row, Col int
}

// Accumulator is the sum of edge contributions. The zero value is not ready
// for use; call NewAccumulator.
type Accumulator struct {
	Chi2     float64
	Gradient map[int]se2.Vec3
	Hessian  map[BlockKey]se2.Mat3
}

// NewAccumulator returns the identity element: zero cost, empty maps.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		Gradient: make(map[int]se2.Vec3),
		Hessian:  make(map[BlockKey]se2.Mat3),
	}
}

func (a *Accumulator) addGrad(i int, v se2.Vec3) {
	a.Gradient[i] = a.Gradient[i].Add(v)
}

func (a *Accumulator) addBlock(k BlockKey, m se2.Mat3) {
	a.Hessian[k] = a.Hessian[k].Add(m)
}

// Add folds one edge contribution into a. The off-diagonal block is stored
// under (min, max); when From > To it is transposed first, so opposite-direction
// edges between the same pair sum into the same block. A self-loop puts both
// cross terms on the diagonal block.
func (a *Accumulator) Add(c EdgeContribution) {
	a.Chi2 += c.Chi2
	a.addGrad(c.From, c.GradFrom)
	a.addGrad(c.To, c.GradTo)
	a.addBlock(BlockKey{c.From, c.From}, c.HFF)
	a.addBlock(BlockKey{c.To, c.To}, c.HTT)
	switch {
	case c.From == c.To:
		a.addBlock(BlockKey{c.From, c.From}, c.HFT.Add(c.HFT.T()))
	case c.From < c.To:
		a.addBlock(BlockKey{c.From, c.To}, c.HFT)
	default:
		a.addBlock(BlockKey{c.To, c.From}, c.HFT.T())
	}
}

// Combine returns a new accumulator holding a + b: costs add, matching keys
// add, the rest is unioned. Neither argument is modified.
func Combine(a, b *Accumulator) *Accumulator {
	out := &Accumulator{
		Chi2:     a.Chi2 + b.Chi2,
		Gradient: make(map[int]se2.Vec3, len(a.Gradient)+len(b.Gradient)),
		Hessian:  make(map[BlockKey]se2.Mat3, len(a.Hessian)+len(b.Hessian)),
	}
	for _, src := range []*Accumulator{a, b} {
		for k, v := range src.Gradient {
			out.addGrad(k, v)
		}
		for k, m := range src.Hessian {
			out.addBlock(k, m)
		}
	}

	return out
}

// Fold accumulates contributions in order starting from the identity.
func Fold(contributions []EdgeContribution) *Accumulator {
	acc := NewAccumulator()
	for _, c := range contributions {
		acc.Add(c)
	}

	return acc
}

// GradientVector lays the gradient out as a vector of length n·PoseDim,
// vertex i occupying [i·PoseDim, (i+1)·PoseDim).
//
// Errors:
//   - ErrInvalidArgument if a key falls outside [0, n).
func (a *Accumulator) GradientVector(n int) ([]float64, error) {
	g := make([]float64, n*PoseDim)
	for i, v := range a.Gradient {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("GradientVector: vertex %d of %d: %w", i, n, ErrInvalidArgument)
		}
		copy(g[i*PoseDim:(i+1)*PoseDim], v[:])
	}

	return g, nil
}

// HessianMatrix materializes the symmetric (n·PoseDim)² block-sparse Hessian.
// Each stored (i,j) block lands at block (i,j) and, for i≠j, its transpose at
// block (j,i).
func (a *Accumulator) HessianMatrix(n int) (*matrix.BlockSparse, error) {
	h, err := matrix.NewBlockSparse(n, PoseDim)
	if err != nil {
		return nil, fmt.Errorf("HessianMatrix: %w", err)
	}
	for k, m := range a.Hessian {
		if err = h.SetBlock(k.Row, k.Col, m.Values()); err != nil {
			return nil, fmt.Errorf("HessianMatrix: %w", err)
		}
		if k.Row != k.Col {
			if err = h.SetBlock(k.Col, k.Row, m.T().Values()); err != nil {
				return nil, fmt.Errorf("HessianMatrix: %w", err)
			}
		}
	}

	return h, nil
}
