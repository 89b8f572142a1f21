// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"
)

// FitStrategy selects the initial guess of FitPhase.
type FitStrategy int

const (
	// HeuristicPrior scans frequencies around the prior.
	HeuristicPrior FitStrategy = iota
	// FFTAssisted reads frequency and phase off the sweep's spectrum.
	FFTAssisted
)

// String implements fmt.Stringer.
func (s FitStrategy) String() string {
	switch s {
	case HeuristicPrior:
		return "heuristic-prior"
	case FFTAssisted:
		return "fft-assisted"
	default:
		return fmt.Sprintf("FitStrategy(%d)", int(s))
	}
}

// Numeric policy of the phase fit.
const (
	// MinPhasePoints is the smallest sweep FitPhase accepts.
	MinPhasePoints = 5

	// DefaultFrequencyPrior is 1/20 cycles per mW, in rad/mW.
	DefaultFrequencyPrior = 2 * math.Pi / 20

	// MaxFitIterations caps the Levenberg–Marquardt iterations.
	MaxFitIterations = 500

	// FitTolerance is the relative cost decrease and step size below which
	// the fit is converged.
	FitTolerance = 1e-12

	// ScanPoints is the number of frequencies tried by HeuristicPrior,
	// log-spaced over [prior/ScanSpan, prior·ScanSpan].
	ScanPoints = 256
	ScanSpan   = 8.0

	// FFTOversample is the zero-padding factor of FFTAssisted.
	FFTOversample = 16
)

const (
	panicMaxIterInvalid = "calibration: WithMaxIterations: n must be > 0"
	panicPriorInvalid   = "calibration: WithFrequencyPrior: prior must be finite and > 0"
)

// FitOption configures FitPhase.
type FitOption func(*fitOptions)

type fitOptions struct {
	strategy FitStrategy
	maxIter  int
	prior    float64
}

// WithFitStrategy selects the initial-guess strategy.
func WithFitStrategy(s FitStrategy) FitOption {
	return func(o *fitOptions) { o.strategy = s }
}

// WithMaxIterations overrides MaxFitIterations. Panics when n <= 0.
func WithMaxIterations(n int) FitOption {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *fitOptions) { o.maxIter = n }
}

// WithFrequencyPrior overrides DefaultFrequencyPrior (rad/mW).
// Panics when prior is not finite and positive.
func WithFrequencyPrior(prior float64) FitOption {
	if math.IsNaN(prior) || math.IsInf(prior, 0) || prior <= 0 {
		panic(panicPriorInvalid)
	}

	return func(o *fitOptions) { o.prior = prior }
}

func gatherFitOptions(opts ...FitOption) fitOptions {
	o := fitOptions{strategy: HeuristicPrior, maxIter: MaxFitIterations, prior: DefaultFrequencyPrior}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
