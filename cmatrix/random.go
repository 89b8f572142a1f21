// SPDX-License-Identifier: MIT

package cmatrix

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// gramSchmidtFloor guards against a numerically dependent column drawn by
// the generator; such a column is redrawn.
const gramSchmidtFloor = 1e-10

// RandomUnitary returns an n×n random unitary built by modified Gram–Schmidt
// orthonormalisation of complex Gaussian columns. The result is
// deterministic for a given rng state.
//
// Errors:
//   - ErrBadShape when n <= 0.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func RandomUnitary(n int, rng *rand.Rand) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}

	col := make([]complex128, n)
	var (
		i, j, k int
		proj    complex128
		norm    float64
	)
	for j = 0; j < n; j++ {
		for {
			for i = 0; i < n; i++ {
				col[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}
			// Remove the projections on the already accepted columns.
			for k = 0; k < j; k++ {
				proj = 0
				for i = 0; i < n; i++ {
					proj += cmplx.Conj(m.data[i*n+k]) * col[i]
				}
				for i = 0; i < n; i++ {
					col[i] -= proj * m.data[i*n+k]
				}
			}
			norm = 0
			for i = 0; i < n; i++ {
				norm += real(col[i])*real(col[i]) + imag(col[i])*imag(col[i])
			}
			norm = math.Sqrt(norm)
			if norm > gramSchmidtFloor {
				break
			}
		}
		for i = 0; i < n; i++ {
			m.data[i*n+j] = col[i] / complex(norm, 0)
		}
	}

	return m, nil
}
