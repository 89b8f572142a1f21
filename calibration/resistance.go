// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MinResistancePoints is the smallest sweep FitResistance accepts: three
// unknowns plus one point of over-determination.
const MinResistancePoints = 4

// Resistance is a fitted V(I) = a·I³ + c·I + d (I in mA, V in volts).
// RMin and RMax are the extremes of R(I) over the fitted sweep.
type Resistance struct {
	A    float64 `json:"a" yaml:"a" mapstructure:"a"`
	C    float64 `json:"c" yaml:"c" mapstructure:"c"`
	D    float64 `json:"d" yaml:"d" mapstructure:"d"`
	RMin float64 `json:"rmin" yaml:"rmin" mapstructure:"rmin"`
	RMax float64 `json:"rmax" yaml:"rmax" mapstructure:"rmax"`
}

// Voltage evaluates V at currentmA.
func (r Resistance) Voltage(currentmA float64) float64 {
	return r.A*currentmA*currentmA*currentmA + r.C*currentmA + r.D
}

// R returns the local resistance a·I² + c (kΩ) at currentmA.
func (r Resistance) R(currentmA float64) float64 {
	return r.A*currentmA*currentmA + r.C
}

// Alpha returns a/c (mA⁻²).
func (r Resistance) Alpha() float64 { return r.A / r.C }

// HeatingPower returns the dissipated power R(I)·I² in mW.
func (r Resistance) HeatingPower(currentmA float64) float64 {
	return r.R(currentmA) * currentmA * currentmA
}

// Validate checks that the record is finite with a positive linear term.
func (r Resistance) Validate() error {
	for _, v := range []float64{r.A, r.C, r.D, r.RMin, r.RMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("resistance: non-finite coefficient: %w", ErrInvalidRecord)
		}
	}
	if r.C <= 0 {
		return fmt.Errorf("resistance: c=%g must be positive: %w", r.C, ErrInvalidRecord)
	}

	return nil
}

// FitResistance fits V(I) = a·I³ + c·I + d to a sweep.
//
// Errors: ErrLengthMismatch, ErrInsufficientData, ErrNaNInf,
// ErrDegenerateSweep.
//
// Complexity: O(n) time and memory.
func FitResistance(currentmA, voltageV []float64) (Resistance, error) {
	if err := checkSweep(currentmA, voltageV, MinResistancePoints); err != nil {
		return Resistance{}, fmt.Errorf("FitResistance: %w", err)
	}

	if distinct(currentmA) < 3 {
		return Resistance{}, fmt.Errorf("FitResistance: fewer than 3 distinct currents: %w", ErrDegenerateSweep)
	}

	n := len(currentmA)
	x := mat.NewDense(n, 3, nil)
	for i, cur := range currentmA {
		x.Set(i, 0, cur*cur*cur)
		x.Set(i, 1, cur)
		x.Set(i, 2, 1)
	}

	var qr mat.QR
	qr.Factorize(x)
	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, mat.NewVecDense(n, append([]float64(nil), voltageV...))); err != nil {
		return Resistance{}, fmt.Errorf("FitResistance: %v: %w", err, ErrDegenerateSweep)
	}

	r := Resistance{A: params.AtVec(0), C: params.AtVec(1), D: params.AtVec(2)}
	rs := make([]float64, n)
	for i, cur := range currentmA {
		rs[i] = r.R(cur)
	}
	r.RMin, r.RMax = floats.Min(rs), floats.Max(rs)

	return r, nil
}

// checkSweep validates paired sweep slices.
func checkSweep(x, y []float64, minPoints int) error {
	if len(x) != len(y) {
		return fmt.Errorf("%d vs %d samples: %w", len(x), len(y), ErrLengthMismatch)
	}
	if len(x) < minPoints {
		return fmt.Errorf("%d samples, need %d: %w", len(x), minPoints, ErrInsufficientData)
	}
	if floats.HasNaN(x) || floats.HasNaN(y) || hasInf(x) || hasInf(y) {
		return ErrNaNInf
	}

	return nil
}

func distinct(s []float64) int {
	seen := make(map[float64]struct{}, len(s))
	for _, v := range s {
		seen[v] = struct{}{}
	}

	return len(seen)
}

func hasInf(s []float64) bool {
	for _, v := range s {
		if math.IsInf(v, 0) {
			return true
		}
	}

	return false
}
