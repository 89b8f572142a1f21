// SPDX-License-Identifier: MIT

// Package calibration fits and stores the per-channel response models of
// thermo-optic phase shifters.
//
// Resistance: V(I) = a·I³ + c·I + d, fitted by linear least squares on the
// design matrix [I³, I, 1] (I in mA, V in volts). The local resistance is
// R(I) = a·I² + c in kΩ.
//
// Phase: optical(P) = ±A·cos(b·P + c) + d with P the heating power in mW,
// the sign fixed by the IOConfig (+ cross, − bar). Fitting is a
// Levenberg–Marquardt refinement from an initial guess produced by one of
// two FitStrategy values:
//
//   - HeuristicPrior: prior b₀ = 2π/20 rad/mW (1/20 cycles per mW), a
//     frequency scan around it, and a linear solve of the remaining
//     parameters at each scanned frequency.
//   - FFTAssisted: dominant frequency and phase of the FFT of the
//     mean-centred, uniformly resampled sweep (phase shifted by π for bar).
//
// The fitted phase is canonicalised into [−π, π] in both modes; amplitude
// and frequency are non-negative.
//
// A Store maps channel ids to records. It is a value: Set returns a new
// Store and Lookup/Snapshot return deep copies, so a solve never observes a
// concurrent re-calibration.
package calibration
