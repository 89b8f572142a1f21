// SPDX-License-Identifier: MIT

// Package cmatrix: functional configuration for numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on nonsensical option values (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package cmatrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultUnitaryTolerance is the infinity-norm bound on U·U† − I accepted
	// by ValidateUnitary when no explicit tolerance option is given.
	DefaultUnitaryTolerance = 1e-8

	// DefaultValidateNaNInf toggles finite-only ingestion in FromRows and Set.
	DefaultValidateNaNInf = true
)

const panicToleranceInvalid = "cmatrix: WithTolerance: tol must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tol            float64 // ≥ 0; DefaultUnitaryTolerance
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithTolerance sets the numeric tolerance used by structural checks
// (ValidateUnitary).
//
// Errors:
//   - Panics with a stable message when tol is NaN, ±Inf or negative.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithNoValidateNaNInf disables NaN/Inf rejection on ingestion (use with care).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		tol:            DefaultUnitaryTolerance,
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies opts over the defaults in order (last write wins).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
