// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"
	"math"
)

// Strategy selects how each elimination's (θ,φ) is solved.
type Strategy int

const (
	// ClosedForm solves every elimination with atan2 formulas.
	ClosedForm Strategy = iota
	// RootFinder solves every elimination with a damped Newton iteration on
	// the two real equations, seeded at (θ,φ) = (RootSeed, RootSeed).
	RootFinder
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case ClosedForm:
		return "closed-form"
	case RootFinder:
		return "root-finder"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Numeric policy. All tolerances used by the package are listed here.
const (
	// DefaultUnitaryTolerance bounds ‖U·U† − I‖∞ for accepted inputs.
	DefaultUnitaryTolerance = 1e-6

	// ReconstructionTolerance bounds ‖U − Reconstruct()‖∞ in the self-check.
	ReconstructionTolerance = 1e-6

	// ZeroAmplitude is the magnitude below which both entries of an
	// elimination pair count as zero; the pair then resolves to the bar
	// setting θ=π/2, φ=0.
	ZeroAmplitude = 1e-15

	// MaxRootIterations caps the RootFinder iterations per elimination.
	MaxRootIterations = 200

	// RootTolerance is the residual |f| relative to the pair magnitude at
	// which the RootFinder stops.
	RootTolerance = 1e-13

	// RootSeed is the starting point for both unknowns of the RootFinder.
	RootSeed = 1.0
)

const panicToleranceInvalid = "clements: WithUnitaryTolerance: tol must be finite, non-negative"

// Option configures Decompose and Clements.
type Option func(*options)

type options struct {
	strategy    Strategy
	tol         float64
	globalPhase bool
	selfCheck   bool
}

// WithStrategy selects the elimination solver.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithUnitaryTolerance overrides DefaultUnitaryTolerance.
// Panics when tol is NaN, ±Inf or negative.
func WithUnitaryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithGlobalPhase makes Clements produce an interferometer whose
// beamsplitters carry the g = i·e^{iθ} factor. The φ angles and output
// phases are adjusted so the recomposed unitary is unchanged.
func WithGlobalPhase(enabled bool) Option {
	return func(o *options) { o.globalPhase = enabled }
}

// WithSelfCheck makes Decompose verify its own reconstruction against
// ReconstructionTolerance and fail with ErrReconstruction otherwise.
func WithSelfCheck() Option {
	return func(o *options) { o.selfCheck = true }
}

func gatherOptions(opts ...Option) options {
	o := options{strategy: ClosedForm, tol: DefaultUnitaryTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
