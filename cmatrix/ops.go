// SPDX-License-Identifier: MIT
// Package cmatrix: linear-algebra kernels.
//
// Notes:
//   - Every kernel validates through validators.go and wraps the sentinel with
//     an operation tag so errors.Is keeps working at the call site.
//   - Inputs are never mutated except by the explicitly in-place Apply* kernels.

package cmatrix

import (
	"fmt"
	"math/cmplx"
)

// Operation name constants for unified error wrapping.
const (
	opMul         = "Mul"
	opMaxAbsDiff  = "MaxAbsDiff"
	opApplyLeft2  = "ApplyLeft2"
	opApplyRight2 = "ApplyRight2"
)

// Rotation2 is a 2×2 complex block acting on an ordered pair of modes.
type Rotation2 [2][2]complex128

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B.
//
// Implementation:
//   - Stage 1: validate non-nil operands and A.Cols == B.Rows.
//   - Stage 2: i→k→j loop over the row-major buffers, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j      int
		aik          complex128
		aRow, bRow   int
		resRow, cols = 0, b.c
	)
	for i = 0; i < a.r; i++ {
		aRow = i * a.c
		resRow = i * cols
		for k = 0; k < a.c; k++ {
			aik = a.data[aRow+k]
			if aik == 0 {
				continue
			}
			bRow = k * cols
			for j = 0; j < cols; j++ {
				res.data[resRow+j] += aik * b.data[bRow+j]
			}
		}
	}

	return res, nil
}

// ConjTranspose returns the Hermitian adjoint M†.
// Complexity: O(r·c).
func ConjTranspose(m *Dense) *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data)), validateNaNInf: m.validateNaNInf}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out
}

// MaxAbsDiff returns max_{i,j} |A[i,j] − B[i,j]|, the element-wise
// infinity-norm of the difference.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func MaxAbsDiff(a, b *Dense) (float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	if a.r != b.r || a.c != b.c {
		return 0, matrixErrorf(opMaxAbsDiff, ErrDimensionMismatch)
	}

	var worst, d float64
	for idx := range a.data {
		d = cmplx.Abs(a.data[idx] - b.data[idx])
		if d > worst {
			worst = d
		}
	}

	return worst, nil
}

// ApplyLeft2 replaces rows p and q of m in place by t·[row p; row q].
// This is the left product T·M where T is the identity except on (p,q).
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange when p or q is outside [0,Rows) or p == q.
//
// Complexity:
//   - Time O(Cols), Space O(1).
func ApplyLeft2(m *Dense, p, q int, t Rotation2) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opApplyLeft2, err)
	}
	if p < 0 || q < 0 || p >= m.r || q >= m.r || p == q {
		return matrixErrorf(opApplyLeft2, ErrOutOfRange)
	}

	var x, y complex128
	pRow, qRow := p*m.c, q*m.c
	for j := 0; j < m.c; j++ {
		x, y = m.data[pRow+j], m.data[qRow+j]
		m.data[pRow+j] = t[0][0]*x + t[0][1]*y
		m.data[qRow+j] = t[1][0]*x + t[1][1]*y
	}

	return nil
}

// ApplyRight2 replaces columns p and q of m in place by [col p, col q]·t.
// This is the right product M·T where T is the identity except on (p,q).
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange when p or q is outside [0,Cols) or p == q.
//
// Complexity:
//   - Time O(Rows), Space O(1).
func ApplyRight2(m *Dense, p, q int, t Rotation2) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opApplyRight2, err)
	}
	if p < 0 || q < 0 || p >= m.c || q >= m.c || p == q {
		return matrixErrorf(opApplyRight2, ErrOutOfRange)
	}

	var x, y complex128
	var base int
	for i := 0; i < m.r; i++ {
		base = i * m.c
		x, y = m.data[base+p], m.data[base+q]
		m.data[base+p] = x*t[0][0] + y*t[1][0]
		m.data[base+q] = x*t[0][1] + y*t[1][1]
	}

	return nil
}

// Adjoint returns the conjugate transpose of a 2×2 block.
func (t Rotation2) Adjoint() Rotation2 {
	return Rotation2{
		{cmplx.Conj(t[0][0]), cmplx.Conj(t[1][0])},
		{cmplx.Conj(t[0][1]), cmplx.Conj(t[1][1])},
	}
}
