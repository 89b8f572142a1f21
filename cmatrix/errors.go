// SPDX-License-Identifier: MIT
// Package cmatrix: sentinel error set.
// Algorithms return these sentinels (optionally wrapped with an operation
// tag via %w) and tests check them with errors.Is.

package cmatrix

import "errors"

var (
	// ErrBadShape is returned when a requested or ingested shape is invalid
	// (non-positive dimensions, ragged rows, empty input).
	ErrBadShape = errors.New("cmatrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("cmatrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("cmatrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("cmatrix: matrix is not square")

	// ErrNotUnitary signals that U·U† deviates from the identity by more
	// than the configured tolerance.
	ErrNotUnitary = errors.New("cmatrix: matrix is not unitary within tolerance")

	// ErrNaNInf signals a NaN or ±Inf component where finite values are required.
	ErrNaNInf = errors.New("cmatrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Dense was passed.
	ErrNilMatrix = errors.New("cmatrix: nil matrix")
)
