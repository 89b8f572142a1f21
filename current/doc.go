// SPDX-License-Identifier: MIT

// Package current inverts a channel's calibration: target optical phase →
// heating power → drive current.
//
// For a target φ (units of π):
//
//	φ' = φ + 2 if φ < φ₀/π, else φ          (UnwrapTarget)
//	P  = |φ'·π − φ₀| / ω                      (HeatingPower, mW)
//	P/R₀ = I² + α·I⁴                           (SI: R₀ = 1000·c Ω, α = 10⁶·a/c A⁻²)
//
// The quartic is solved for its smallest positive real root through the
// eigenvalues of its companion matrix. If there is none the zero-curvature
// current I = sqrt(P/R₀) is used. The result is returned in mA, unclamped.
package current
