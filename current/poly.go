// SPDX-License-Identifier: MIT

package current

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	// RootImagTolerance is the largest |Im z|/max(1,|z|) for which an
	// eigenvalue counts as a real root.
	RootImagTolerance = 1e-8

	// PolishIterations is the number of Newton steps applied to every real
	// root taken from the companion matrix.
	PolishIterations = 8
)

// PositiveRealRoots returns the strictly positive real roots of the
// polynomial with coefficients highest degree first, ascending.
//
// Errors: ErrDegeneratePolynomial when every coefficient is zero or the
// eigen solver fails.
//
// Complexity: O(d³) for degree d.
func PositiveRealRoots(coeffs []float64) ([]float64, error) {
	lead := 0
	for lead < len(coeffs) && coeffs[lead] == 0 {
		lead++
	}
	if lead == len(coeffs) {
		return nil, ErrDegeneratePolynomial
	}
	c := coeffs[lead:]
	deg := len(c) - 1
	if deg == 0 {
		return nil, nil
	}

	// Companion matrix of the monic polynomial.
	comp := mat.NewDense(deg, deg, nil)
	for j := 0; j < deg; j++ {
		comp.Set(0, j, -c[j+1]/c[0])
	}
	for i := 1; i < deg; i++ {
		comp.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil, fmt.Errorf("PositiveRealRoots: eigen decomposition failed: %w", ErrDegeneratePolynomial)
	}

	var out []float64
	for _, z := range eig.Values(nil) {
		if math.Abs(imag(z)) > RootImagTolerance*math.Max(1, math.Abs(real(z))) {
			continue
		}
		x := polish(c, real(z))
		if x > 0 && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	sort.Float64s(out)

	return out, nil
}

// polish refines x with Newton steps, keeping the last finite iterate.
func polish(c []float64, x float64) float64 {
	for k := 0; k < PolishIterations; k++ {
		p, dp := horner(c, x)
		if dp == 0 {
			break
		}
		next := x - p/dp
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		x = next
	}

	return x
}

// horner evaluates the polynomial and its derivative at x.
func horner(c []float64, x float64) (p, dp float64) {
	for _, a := range c {
		dp = dp*x + p
		p = p*x + a
	}

	return p, dp
}
