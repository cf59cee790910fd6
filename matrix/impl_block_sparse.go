// SPDX-License-Identifier: MIT

// Package matrix - BlockSparse storage.
//
// Purpose:
//   - Hold an (n·d)×(n·d) matrix as a map of d×d dense blocks, where only
//     the structurally non-zero blocks are stored. This is the natural shape
//     of a pose-graph Hessian: one block per vertex on the diagonal plus one
//     block per edge off the diagonal.
//   - Implement Matrix so validators, kernels and solvers accept it directly.
//
// Notes:
//   - BlockSparse does NOT mirror writes. Callers that need a symmetric matrix
//     write both (i,j) and (j,i)ᵀ explicitly; ValidateSymmetric can confirm it.
//   - Missing blocks read as zero.
//
// Complexity quicksheet:
//   - At/Set: O(1) average; SetBlock/Block: O(d²); ZeroBlockRow/Col: O(B);
//     ToDense: O((n·d)² + B·d²) where B is the number of stored blocks.

package matrix

import "fmt"

const (
	ctxBlock    = "Block"
	ctxSetBlock = "SetBlock"
	ctxZeroRow  = "ZeroBlockRow"
	ctxZeroCol  = "ZeroBlockCol"
	ctxBSAt     = "BlockSparse.At"
	ctxBSSet    = "BlockSparse.Set"
)

// BlockSparse is a square block-sparse matrix with a fixed block size.
type BlockSparse struct {
	n      int                    // number of block rows (== block cols)
	d      int                    // block size
	blocks map[blockKey][]float64 // (block row, block col) → d*d row-major values
}

var _ Matrix = (*BlockSparse)(nil)

// NewBlockSparse allocates an empty (n·d)×(n·d) block-sparse matrix.
//
// Errors:
//   - ErrInvalidDimensions if n <= 0 or d <= 0.
//
// Complexity: O(1).
func NewBlockSparse(n, d int) (*BlockSparse, error) {
	if n <= 0 || d <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &BlockSparse{n: n, d: d, blocks: make(map[blockKey][]float64)}, nil
}

// Rows returns n·d.
func (m *BlockSparse) Rows() int { return m.n * m.d }

// Cols returns n·d.
func (m *BlockSparse) Cols() int { return m.n * m.d }

// BlockSize returns d.
func (m *BlockSparse) BlockSize() int { return m.d }

// BlockCount returns n, the number of block rows.
func (m *BlockSparse) BlockCount() int { return m.n }

// NonZeroBlocks returns the number of stored blocks.
func (m *BlockSparse) NonZeroBlocks() int { return len(m.blocks) }

func (m *BlockSparse) checkBlock(br, bc int) error {
	if br < 0 || br >= m.n || bc < 0 || bc >= m.n {
		return ErrOutOfRange
	}

	return nil
}

// At returns element (i, j); structurally absent entries read as zero.
func (m *BlockSparse) At(i, j int) (float64, error) {
	size := m.n * m.d
	if i < 0 || i >= size || j < 0 || j >= size {
		return 0, fmt.Errorf("%s(%d,%d): %w", ctxBSAt, i, j, ErrOutOfRange)
	}
	b, ok := m.blocks[blockKey{r: i / m.d, c: j / m.d}]
	if !ok {
		return 0, nil
	}

	return b[(i%m.d)*m.d+j%m.d], nil
}

// Set writes element (i, j), allocating the enclosing block on demand.
func (m *BlockSparse) Set(i, j int, v float64) error {
	size := m.n * m.d
	if i < 0 || i >= size || j < 0 || j >= size {
		return fmt.Errorf("%s(%d,%d): %w", ctxBSSet, i, j, ErrOutOfRange)
	}
	key := blockKey{r: i / m.d, c: j / m.d}
	b, ok := m.blocks[key]
	if !ok {
		b = make([]float64, m.d*m.d)
		m.blocks[key] = b
	}
	b[(i%m.d)*m.d+j%m.d] = v

	return nil
}

// SetBlock overwrites block (br, bc) with the row-major d×d values (copied).
//
// Errors:
//   - ErrOutOfRange for invalid block indices.
//   - ErrDimensionMismatch if len(values) != d*d.
func (m *BlockSparse) SetBlock(br, bc int, values []float64) error {
	if err := m.checkBlock(br, bc); err != nil {
		return fmt.Errorf("%s(%d,%d): %w", ctxSetBlock, br, bc, err)
	}
	if len(values) != m.d*m.d {
		return fmt.Errorf("%s(%d,%d): %w", ctxSetBlock, br, bc, ErrDimensionMismatch)
	}
	b := make([]float64, len(values))
	copy(b, values)
	m.blocks[blockKey{r: br, c: bc}] = b

	return nil
}

// Block returns a copy of block (br, bc) and whether it is stored.
// An absent block is returned as zeros with ok == false.
func (m *BlockSparse) Block(br, bc int) (values []float64, ok bool, err error) {
	if err = m.checkBlock(br, bc); err != nil {
		return nil, false, fmt.Errorf("%s(%d,%d): %w", ctxBlock, br, bc, err)
	}
	values = make([]float64, m.d*m.d)
	b, ok := m.blocks[blockKey{r: br, c: bc}]
	if ok {
		copy(values, b)
	}

	return values, ok, nil
}

// ZeroBlockRow removes every stored block in block row br.
func (m *BlockSparse) ZeroBlockRow(br int) error {
	if err := m.checkBlock(br, 0); err != nil {
		return fmt.Errorf("%s(%d): %w", ctxZeroRow, br, err)
	}
	for k := range m.blocks {
		if k.r == br {
			delete(m.blocks, k)
		}
	}

	return nil
}

// ZeroBlockCol removes every stored block in block column bc.
func (m *BlockSparse) ZeroBlockCol(bc int) error {
	if err := m.checkBlock(0, bc); err != nil {
		return fmt.Errorf("%s(%d): %w", ctxZeroCol, bc, err)
	}
	for k := range m.blocks {
		if k.c == bc {
			delete(m.blocks, k)
		}
	}

	return nil
}

// Clone returns a deep copy.
func (m *BlockSparse) Clone() Matrix {
	out := &BlockSparse{n: m.n, d: m.d, blocks: make(map[blockKey][]float64, len(m.blocks))}
	for k, b := range m.blocks {
		cp := make([]float64, len(b))
		copy(cp, b)
		out.blocks[k] = cp
	}

	return out
}

// ToDense materializes the matrix into row-major Dense storage.
// Every stored block lands on a distinct region, so the result does not
// depend on map iteration order.
func (m *BlockSparse) ToDense() (*Dense, error) {
	size := m.n * m.d
	out, err := NewDense(size, size)
	if err != nil {
		return nil, err
	}
	var r, c, base int
	for k, b := range m.blocks {
		base = k.r*m.d*size + k.c*m.d
		for r = 0; r < m.d; r++ {
			for c = 0; c < m.d; c++ {
				out.data[base+r*size+c] = b[r*m.d+c]
			}
		}
	}

	return out, nil
}
