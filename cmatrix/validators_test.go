// SPDX-License-Identifier: MIT
package cmatrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/cmatrix"
)

func TestValidateUnitary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 5, 12} {
		u, err := cmatrix.RandomUnitary(n, rng)
		require.NoError(t, err)
		assert.NoError(t, cmatrix.ValidateUnitary(u), "n=%d", n)
	}

	notU := mustRows(t, [][]complex128{{1, 1}, {0, 1}})
	assert.ErrorIs(t, cmatrix.ValidateUnitary(notU), cmatrix.ErrNotUnitary)
	assert.NoError(t, cmatrix.ValidateUnitary(notU, cmatrix.WithTolerance(10)))

	rect := mustRows(t, [][]complex128{{1, 0, 0}, {0, 1, 0}})
	assert.ErrorIs(t, cmatrix.ValidateUnitary(rect), cmatrix.ErrNonSquare)
	assert.ErrorIs(t, cmatrix.ValidateUnitary(nil), cmatrix.ErrNilMatrix)
}

func TestWithTolerance_PanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { cmatrix.WithTolerance(-1) })
}

func TestRandomUnitary_Deterministic(t *testing.T) {
	a, err := cmatrix.RandomUnitary(4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	b, err := cmatrix.RandomUnitary(4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, a.ToRows(), b.ToRows())

	_, err = cmatrix.RandomUnitary(0, rand.New(rand.NewSource(3)))
	assert.ErrorIs(t, err, cmatrix.ErrBadShape)
}
