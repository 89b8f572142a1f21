// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Marquardt damping schedule.
const (
	lmLambdaInit  = 1e-3
	lmLambdaMin   = 1e-15
	lmLambdaMax   = 1e15
	lmLambdaStep  = 10.0
	lmDiagonalMin = 1e-12
)

// levenbergMarquardt minimises Σ(y − sign·A·cos(b·x + c) − d)² from p0.
// A and b are kept non-negative by exact reparametrisation and c is kept in
// [−π, π].
func levenbergMarquardt(x, y []float64, sign float64, p0 cosineParams, maxIter int) (cosineParams, error) {
	n := len(x)
	var (
		p      = canonical(p0)
		cand   cosineParams
		r      = make([]float64, n)
		rc     = make([]float64, n)
		jac    = mat.NewDense(n, 4, nil)
		jtj    mat.Dense
		damped = mat.NewDense(4, 4, nil)
		grad   mat.VecDense
		delta  mat.VecDense
		lambda = lmLambdaInit
	)
	cost := residuals(x, y, sign, p, r)
	floor := FitTolerance * FitTolerance * floats.Dot(y, y)

	for iter := 0; iter < maxIter; iter++ {
		if cost <= floor {
			return finalParams(p)
		}
		fillJacobian(jac, x, sign, p)
		jtj.Mul(jac.T(), jac)
		grad.MulVec(jac.T(), mat.NewVecDense(n, r))

		improved := false
		for !improved {
			damped.Copy(&jtj)
			for k := 0; k < 4; k++ {
				damped.Set(k, k, jtj.At(k, k)+lambda*math.Max(jtj.At(k, k), lmDiagonalMin))
			}
			if err := delta.SolveVec(damped, &grad); err != nil {
				lambda *= lmLambdaStep
			} else {
				for k := range cand {
					cand[k] = p[k] + delta.AtVec(k)
				}
				cand = canonical(cand)
				if next := residuals(x, y, sign, cand, rc); next < cost {
					converged := cost-next <= FitTolerance*cost ||
						mat.Norm(&delta, 2) <= FitTolerance*(floats.Norm(p[:], 2)+FitTolerance)
					p, cost = cand, next
					r, rc = rc, r
					lambda = math.Max(lambda/lmLambdaStep, lmLambdaMin)
					if converged {
						return finalParams(p)
					}
					improved = true
					continue
				}
				lambda *= lmLambdaStep
			}
			// No step lowers the cost: p is a minimum to working precision.
			if lambda > lmLambdaMax {
				return finalParams(p)
			}
		}
	}

	return cosineParams{}, fmt.Errorf("%d iterations, cost %.3g: %w", maxIter, cost, ErrFitConvergence)
}

func finalParams(p cosineParams) (cosineParams, error) {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return cosineParams{}, fmt.Errorf("non-finite parameters: %w", ErrFitConvergence)
		}
	}
	if p[paramB] == 0 {
		return cosineParams{}, fmt.Errorf("frequency collapsed to zero: %w", ErrFitConvergence)
	}

	return p, nil
}

// canonical maps p onto A ≥ 0, b ≥ 0, c ∈ [−π, π] without changing the
// model value.
func canonical(p cosineParams) cosineParams {
	if p[paramA] < 0 {
		p[paramA] = -p[paramA]
		p[paramC] += math.Pi
	}
	if p[paramB] < 0 {
		p[paramB] = -p[paramB]
		p[paramC] = -p[paramC]
	}
	p[paramC] = math.Remainder(p[paramC], 2*math.Pi)

	return p
}

// residuals writes y − model into r and returns Σr².
func residuals(x, y []float64, sign float64, p cosineParams, r []float64) float64 {
	for i, xi := range x {
		r[i] = y[i] - (sign*p[paramA]*math.Cos(p[paramB]*xi+p[paramC]) + p[paramD])
	}

	return floats.Dot(r, r)
}

func fillJacobian(jac *mat.Dense, x []float64, sign float64, p cosineParams) {
	for i, xi := range x {
		s, c := math.Sincos(p[paramB]*xi + p[paramC])
		jac.Set(i, paramA, sign*c)
		jac.Set(i, paramB, -sign*p[paramA]*xi*s)
		jac.Set(i, paramC, -sign*p[paramA]*s)
		jac.Set(i, paramD, 1)
	}
}
