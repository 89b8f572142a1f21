// SPDX-License-Identifier: MIT
// Package cmatrix_test contains unit tests for Dense storage and accessors.
package cmatrix_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/cmatrix"
)

func TestNewDense_BadShape(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{{0, 1}, {1, 0}, {-2, 3}} {
		_, err := cmatrix.NewDense(tc.rows, tc.cols)
		assert.ErrorIs(t, err, cmatrix.ErrBadShape)
	}
}

func TestFromRows_CopiesAndValidates(t *testing.T) {
	src := [][]complex128{{1, 2i}, {3, 4}}
	m, err := cmatrix.FromRows(src)
	require.NoError(t, err)

	src[0][0] = 99 // caller mutation must not leak into m
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, complex128(1), v)

	_, err = cmatrix.FromRows([][]complex128{{1, 2}, {3}})
	assert.ErrorIs(t, err, cmatrix.ErrBadShape, "ragged rows")

	_, err = cmatrix.FromRows(nil)
	assert.ErrorIs(t, err, cmatrix.ErrBadShape, "empty input")

	_, err = cmatrix.FromRows([][]complex128{{complex(math.NaN(), 0)}})
	assert.ErrorIs(t, err, cmatrix.ErrNaNInf)

	_, err = cmatrix.FromRows([][]complex128{{cmplx.Inf()}}, cmatrix.WithNoValidateNaNInf())
	assert.NoError(t, err, "policy disabled")
}

func TestAtSet_OutOfRange(t *testing.T) {
	m, err := cmatrix.NewDense(2, 3)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, cmatrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 3, 1), cmatrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, complex(0, math.Inf(1))), cmatrix.ErrNaNInf)

	require.NoError(t, m.Set(1, 2, 5-1i))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5-1i, v)
}

func TestClone_Independent(t *testing.T) {
	m, err := cmatrix.Identity(3)
	require.NoError(t, err)
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 7))

	v, _ := m.At(0, 0)
	assert.Equal(t, complex128(1), v)
	assert.Equal(t, []complex128{1, 1, 1}, m.Diag())
	assert.Equal(t, []complex128{7, 1, 1}, cp.Diag())
}

func TestDiagonal_And_ToRows(t *testing.T) {
	d, err := cmatrix.Diagonal([]complex128{1i, -1})
	require.NoError(t, err)
	assert.Equal(t, [][]complex128{{1i, 0}, {0, -1}}, d.ToRows())

	_, err = cmatrix.Diagonal(nil)
	assert.ErrorIs(t, err, cmatrix.ErrBadShape)
}
