// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"github.com/katalvlaran/lvslam/matrix"
	"gonum.org/v1/gonum/mat"
)

// GonumCholesky solves symmetric positive definite systems with gonum.
type GonumCholesky struct{}

// NewGonumCholesky returns the default solver.
func NewGonumCholesky() *GonumCholesky { return &GonumCholesky{} }

// Name implements LinearSolver.
func (*GonumCholesky) Name() string { return NameGonum }

// Solve implements LinearSolver. Only the upper triangle of h is read.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch for malformed input.
//   - ErrNotPositiveDefinite when the factorization fails.
//   - ErrNonFiniteSolution when the result is not finite.
func (*GonumCholesky) Solve(h matrix.Matrix, b []float64) ([]float64, error) {
	const tag = "GonumCholesky.Solve"
	if err := validateSystem(tag, h, b); err != nil {
		return nil, err
	}
	sym, err := toSymDense(h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("%s: %w", tag, ErrNotPositiveDefinite)
	}
	rhs := mat.NewVecDense(len(b), append([]float64(nil), b...))
	var x mat.VecDense
	if err = chol.SolveVecTo(&x, rhs); err != nil {
		// mat.Condition signals an ill-conditioned but computed result.
		if _, isCond := err.(mat.Condition); !isCond {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
	}
	out := make([]float64, len(b))
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return checkSolution(tag, out)
}

// toSymDense copies the upper triangle of h into a gonum SymDense. Stored
// blocks of a BlockSparse are visited directly so empty regions cost nothing.
func toSymDense(h matrix.Matrix) (*mat.SymDense, error) {
	n := h.Rows()
	sym := mat.NewSymDense(n, nil)
	if bs, ok := h.(*matrix.BlockSparse); ok {
		d := bs.BlockSize()
		nb := bs.BlockCount()
		for br := 0; br < nb; br++ {
			for bc := br; bc < nb; bc++ {
				vals, stored, err := bs.Block(br, bc)
				if err != nil {
					return nil, err
				}
				if !stored {
					continue
				}
				for r := 0; r < d; r++ {
					for c := 0; c < d; c++ {
						i, j := br*d+r, bc*d+c
						if j < i {
							continue
						}
						sym.SetSym(i, j, vals[r*d+c])
					}
				}
			}
		}

		return sym, nil
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := h.At(i, j)
			if err != nil {
				return nil, err
			}
			sym.SetSym(i, j, v)
		}
	}

	return sym, nil
}
