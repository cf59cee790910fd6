// SPDX-License-Identifier: MIT

package se2

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvslam/mathutil"
	"github.com/katalvlaran/lvslam/matrix"
)

// Vec3 is a 3-vector, typically a tangent vector (dx, dy, dθ).
type Vec3 [3]float64

// Mat3 is a row-major 3×3 matrix.
type Mat3 [3][3]float64

// Identity3 returns the 3×3 identity.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Diag3 returns diag(a, b, c).
func Diag3(a, b, c float64) Mat3 {
	return Mat3{{a, 0, 0}, {0, b, 0}, {0, 0, c}}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

// Dot returns v·w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// IsFinite reports whether every component is neither NaN nor ±Inf.
func (v Vec3) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// Add returns a + b.
func (a Mat3) Add(b Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][j] + b[i][j]
		}
	}

	return out
}

// Scale returns s·a.
func (a Mat3) Scale(s float64) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * a[i][j]
		}
	}

	return out
}

// Mul returns a·b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			aik := a[i][k]
			for j := 0; j < 3; j++ {
				out[i][j] += aik * b[k][j]
			}
		}
	}

	return out
}

// MulVec returns a·v.
func (a Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		a[0][0]*v[0] + a[0][1]*v[1] + a[0][2]*v[2],
		a[1][0]*v[0] + a[1][1]*v[1] + a[1][2]*v[2],
		a[2][0]*v[0] + a[2][1]*v[1] + a[2][2]*v[2],
	}
}

// T returns the transpose.
func (a Mat3) T() Mat3 {
	return Mat3{
		{a[0][0], a[1][0], a[2][0]},
		{a[0][1], a[1][1], a[2][1]},
		{a[0][2], a[1][2], a[2][2]},
	}
}

// IsFinite reports whether every entry is neither NaN nor ±Inf.
func (a Mat3) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if !Vec3(a[i]).IsFinite() {
			return false
		}
	}

	return true
}

// Values returns the nine entries in row-major order.
func (a Mat3) Values() []float64 {
	return []float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	}
}

// Dense returns a as a new 3×3 *matrix.Dense.
//
// Errors:
//   - matrix.ErrNaNInf if a holds a non-finite entry.
func (a Mat3) Dense() (*matrix.Dense, error) {
	return matrix.NewDenseFrom(3, 3, a.Values())
}

// Mat3FromMatrix copies a 3×3 matrix.Matrix into a Mat3.
//
// Errors:
//   - matrix.ErrDimensionMismatch if m is not 3×3; matrix.ErrNilMatrix if nil.
func Mat3FromMatrix(m matrix.Matrix) (Mat3, error) {
	var out Mat3
	if err := matrix.ValidateNotNil(m); err != nil {
		return out, err
	}
	if m.Rows() != 3 || m.Cols() != 3 {
		return out, fmt.Errorf("Mat3FromMatrix(%dx%d): %w", m.Rows(), m.Cols(), matrix.ErrDimensionMismatch)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return out, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}

// ExpandUpperTriangular3 builds a symmetric Mat3 from its six upper-triangle
// entries [a11 a12 a13 a22 a23 a33].
func ExpandUpperTriangular3(flat []float64) (Mat3, error) {
	d, err := mathutil.ExpandUpperTriangular(flat, 3)
	if err != nil {
		return Mat3{}, err
	}

	return Mat3FromMatrix(d)
}

// UpperTriangular3 returns the six upper-triangle entries of a.
func (a Mat3) UpperTriangular3() [6]float64 {
	return [6]float64{a[0][0], a[0][1], a[0][2], a[1][1], a[1][2], a[2][2]}
}
