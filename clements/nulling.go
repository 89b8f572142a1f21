// SPDX-License-Identifier: MIT

package clements

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmesh/beamsplitter"
)

// Levenberg damping schedule of the RootFinder.
const (
	rootLambdaInit = 1e-3
	rootLambdaMin  = 1e-15
	rootLambdaMax  = 1e15
	rootLambdaStep = 10.0
)

// residualFunc is the complex value of the targeted entry after applying
// the block with angles (θ, φ).
type residualFunc func(theta, phi float64) complex128

// nuller solves one elimination. a and b are the two entries of the pair in
// the order documented on nullRight / nullLeft.
type nuller func(a, b complex128) (theta, phi float64, err error)

func nullerFor(s Strategy) nuller {
	if s == RootFinder {
		return func(a, b complex128) (float64, float64, error) { return rootNull(a, b) }
	}

	return func(a, b complex128) (float64, float64, error) {
		th, ph := closedNull(a, b)
		return th, ph, nil
	}
}

// closedNull solves a right-side elimination in closed form.
//
// For a row segment [a b] right-multiplied by T†(θ,φ) the first entry
// becomes a·e^{−iφ}·sinθ + b·cosθ, which vanishes for
//
//	θ = atan2(|b|, |a|),  φ = arg a − arg b − π.
//
// Left-side eliminations are mapped onto the same form by the caller.
func closedNull(a, b complex128) (theta, phi float64) {
	if cmplx.Abs(a) <= ZeroAmplitude && cmplx.Abs(b) <= ZeroAmplitude {
		return math.Pi / 2, 0
	}
	theta = math.Atan2(cmplx.Abs(b), cmplx.Abs(a))
	phi = beamsplitter.WrapTwoPi(cmplx.Phase(a) - cmplx.Phase(b) - math.Pi)

	return theta, phi
}

// rightResidual is the entry nulled by a right-side elimination.
func rightResidual(a, b complex128) residualFunc {
	return func(theta, phi float64) complex128 {
		s, c := math.Sincos(theta)
		return a*cmplx.Exp(complex(0, -phi))*complex(s, 0) + b*complex(c, 0)
	}
}

// rootNull solves a right-side elimination with a damped Newton iteration
// on (Re f, Im f) seeded at (RootSeed, RootSeed). The Jacobian is taken by
// central finite differences so the solver does not depend on the block
// formula.
func rootNull(a, b complex128) (theta, phi float64, err error) {
	scale := math.Hypot(cmplx.Abs(a), cmplx.Abs(b))
	if scale <= ZeroAmplitude {
		return math.Pi / 2, 0, nil
	}
	res := rightResidual(a, b)
	x, err := newton2(res, scale)
	if err != nil {
		return 0, 0, err
	}
	theta, phi = canonicalAngles(x[0], x[1])

	return theta, phi, nil
}

// newton2 finds a root of res with Levenberg-damped Newton steps.
func newton2(res residualFunc, scale float64) ([]float64, error) {
	f := func(y, x []float64) {
		v := res(x[0], x[1])
		y[0], y[1] = real(v), imag(v)
	}

	var (
		x      = []float64{RootSeed, RootSeed}
		fx     = make([]float64, 2)
		fc     = make([]float64, 2)
		cand   = make([]float64, 2)
		jac    = mat.NewDense(2, 2, nil)
		lambda = rootLambdaInit
		jtj    mat.Dense
		grad   mat.VecDense
		delta  mat.VecDense
		norm   float64
	)
	f(fx, x)
	norm = math.Hypot(fx[0], fx[1])

	for iter := 0; iter < MaxRootIterations; iter++ {
		if norm <= RootTolerance*scale {
			return x, nil
		}
		fd.Jacobian(jac, f, x, &fd.JacobianSettings{Formula: fd.Central})

		// (JᵀJ + λI)·δ = −Jᵀf
		jtj.Mul(jac.T(), jac)
		jtj.Set(0, 0, jtj.At(0, 0)+lambda)
		jtj.Set(1, 1, jtj.At(1, 1)+lambda)
		grad.MulVec(jac.T(), mat.NewVecDense(2, fx))
		grad.ScaleVec(-1, &grad)
		if solveErr := delta.SolveVec(&jtj, &grad); solveErr != nil {
			lambda = math.Min(lambda*rootLambdaStep, rootLambdaMax)
			continue
		}

		cand[0], cand[1] = x[0]+delta.AtVec(0), x[1]+delta.AtVec(1)
		f(fc, cand)
		if n := math.Hypot(fc[0], fc[1]); n < norm {
			copy(x, cand)
			copy(fx, fc)
			norm = n
			lambda = math.Max(lambda/rootLambdaStep, rootLambdaMin)
		} else {
			lambda = math.Min(lambda*rootLambdaStep, rootLambdaMax)
		}
	}
	if norm <= RootTolerance*scale {
		return x, nil
	}

	return nil, ErrRootNotConverged
}

// canonicalAngles maps any root (θ, φ) of an elimination onto the
// representative θ ∈ [0, π/2], φ ∈ [0, 2π). The residuals are invariant
// under θ → θ+π and under (θ, φ) → (π−θ, φ+π).
func canonicalAngles(theta, phi float64) (float64, float64) {
	theta = math.Mod(theta, math.Pi)
	if theta < 0 {
		theta += math.Pi
	}
	if theta > math.Pi/2 {
		theta = math.Pi - theta
		phi += math.Pi
	}

	return theta, beamsplitter.WrapTwoPi(phi)
}
