// SPDX-License-Identifier: MIT
// Package: cmatrix
//
// Purpose:
//   - Provide a single, canonical source of truth for input checks used by
//     the decomposer (nil, square, unitary).
//   - Return sentinel errors wrapped with the validator tag.

package cmatrix

import (
	"fmt"
	"math/cmplx"
)

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
// Errors: ErrNilMatrix, ErrNonSquare. Complexity: O(1).
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.r, m.c, ErrNonSquare))
	}

	return nil
}

// UnitarityDefect returns ‖U·U† − I‖∞ (element-wise maximum) for a square U.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n³) time, O(1) extra space.
func UnitarityDefect(m *Dense) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, err
	}

	n := m.r
	var (
		i, j, k int
		acc     complex128
		d, worst float64
	)
	// (U·U†)[i,j] = Σ_k U[i,k]·conj(U[j,k]); only the upper triangle is needed
	// because the product is Hermitian.
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			acc = 0
			for k = 0; k < n; k++ {
				acc += m.data[i*n+k] * cmplx.Conj(m.data[j*n+k])
			}
			if i == j {
				acc--
			}
			d = cmplx.Abs(acc)
			if d > worst {
				worst = d
			}
		}
	}

	return worst, nil
}

// ValidateUnitary checks U·U† ≈ I within the configured tolerance
// (DefaultUnitaryTolerance unless WithTolerance is given).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare (shape), ErrNotUnitary (defect > tol).
//
// Complexity: O(n³).
func ValidateUnitary(m *Dense, opts ...Option) error {
	o := gatherOptions(opts...)
	defect, err := UnitarityDefect(m)
	if err != nil {
		return validatorErrorf("ValidateUnitary", err)
	}
	if defect > o.tol {
		return validatorErrorf("ValidateUnitary", fmt.Errorf("defect %.3g > %.3g: %w", defect, o.tol, ErrNotUnitary))
	}

	return nil
}
