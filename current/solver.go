// SPDX-License-Identifier: MIT

package current

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmesh/beamsplitter"
	"github.com/katalvlaran/lvmesh/calibration"
)

// Unit conversions between the calibration fit (mA, V, kΩ, mW) and SI.
const (
	milli = 1e-3
	kilo  = 1e3
)

// UnwrapTarget moves targetPi into the calibrated branch: targets below
// phaseOffset/π are shifted up by 2.
func UnwrapTarget(targetPi, phaseOffset float64) float64 {
	if targetPi < phaseOffset/math.Pi {
		return targetPi + 2
	}

	return targetPi
}

// HeatingPower returns the heating power (mW) that produces targetPi on
// a channel with phase record p.
func HeatingPower(targetPi float64, p calibration.Phase) float64 {
	t := UnwrapTarget(targetPi, p.PhaseOffset)

	return math.Abs(t*math.Pi-p.PhaseOffset) / p.Omega
}

// Solve returns the drive current (mA) that sets ch to targetPi.
//
// Implementation:
//   - Stage 1: unwrap targetPi into the calibrated branch and derive P (mW).
//   - Stage 2: convert to SI with R0 = 1000·c Ω and α = a/c A⁻².
//   - Stage 3: take the smallest positive real root of α·I⁴ + I² − P/R0;
//     without one, fall back to I = sqrt(P/R0).
//
// Errors:
//   - calibration.ErrNoCalibration when ch lacks a record.
//   - ErrNoPhysicalSolution when no finite, non-negative current exists.
//
// Complexity:
//   - Time O(1) (a 4×4 eigenproblem), Space O(1).
func Solve(targetPi float64, ch calibration.Channel) (float64, error) {
	if !ch.Complete() {
		return 0, fmt.Errorf("Solve: %w", calibration.ErrNoCalibration)
	}
	pmW := HeatingPower(targetPi, *ch.Phase)
	if math.IsNaN(pmW) || math.IsInf(pmW, 0) {
		return 0, fmt.Errorf("Solve: heating power %g: %w", pmW, ErrNoPhysicalSolution)
	}
	if pmW == 0 {
		return 0, nil
	}

	r0 := kilo * ch.Resistance.C                                 // Ω
	alpha := ch.Resistance.A / ch.Resistance.C / (milli * milli) // A⁻²
	if !(r0 > 0) || math.IsInf(r0, 0) || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return 0, fmt.Errorf("Solve: R0=%gΩ: %w", r0, ErrNoPhysicalSolution)
	}
	k := pmW * milli / r0

	amps, err := smallestPositiveRoot(alpha, k)
	if err != nil || math.IsNaN(amps) {
		// Zero-curvature fallback.
		amps = math.Sqrt(k)
	}
	if math.IsNaN(amps) || math.IsInf(amps, 0) || amps < 0 {
		return 0, fmt.Errorf("Solve: R0=%gΩ P=%gmW: %w", r0, pmW, ErrNoPhysicalSolution)
	}

	return amps / milli, nil
}

// smallestPositiveRoot solves α·I⁴ + I² − k = 0.
func smallestPositiveRoot(alpha, k float64) (float64, error) {
	roots, err := PositiveRealRoots([]float64{alpha, 0, 1, 0, -k})
	if err != nil {
		return math.NaN(), err
	}
	if len(roots) == 0 {
		return math.NaN(), nil
	}

	return roots[0], nil
}

// Forward returns the phase (units of π, in [0,2)) that currentmA produces
// on ch.
//
// Errors: calibration.ErrNoCalibration when ch lacks a record.
func Forward(currentmA float64, ch calibration.Channel) (float64, error) {
	if !ch.Complete() {
		return 0, fmt.Errorf("Forward: %w", calibration.ErrNoCalibration)
	}
	phase := ch.Phase.PhaseAt(ch.Resistance.HeatingPower(currentmA))

	return beamsplitter.WrapUnitsOfPi(phase / math.Pi), nil
}
