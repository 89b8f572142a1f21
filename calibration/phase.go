// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"
)

// Phase is a fitted optical(P) = sign·A·cos(ω·P + φ₀) + d with P in mW,
// ω in rad/mW and φ₀ in radians. The sign comes from IO.
type Phase struct {
	Amplitude   float64  `json:"amplitude" yaml:"amplitude" mapstructure:"amplitude"`
	Omega       float64  `json:"omega" yaml:"omega" mapstructure:"omega"`
	PhaseOffset float64  `json:"phase_offset" yaml:"phase_offset" mapstructure:"phase_offset"`
	Offset      float64  `json:"offset" yaml:"offset" mapstructure:"offset"`
	IO          IOConfig `json:"io_config" yaml:"io_config" mapstructure:"io_config"`
}

// PhaseAt returns the optical phase ω·P + φ₀ (radians) produced by
// heatingmW.
func (p Phase) PhaseAt(heatingmW float64) float64 {
	return p.Omega*heatingmW + p.PhaseOffset
}

// OpticalPower evaluates the fitted response at heatingmW.
func (p Phase) OpticalPower(heatingmW float64) float64 {
	return p.IO.Sign()*p.Amplitude*math.Cos(p.PhaseAt(heatingmW)) + p.Offset
}

// Validate checks that the record is finite and within the fit bounds.
func (p Phase) Validate() error {
	for _, v := range []float64{p.Amplitude, p.Omega, p.PhaseOffset, p.Offset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("phase: non-finite parameter: %w", ErrInvalidRecord)
		}
	}
	if p.Omega <= 0 || p.Amplitude < 0 {
		return fmt.Errorf("phase: omega=%g amplitude=%g out of bounds: %w", p.Omega, p.Amplitude, ErrInvalidRecord)
	}
	if p.IO != Cross && p.IO != Bar {
		return fmt.Errorf("phase: %w", ErrUnknownIOConfig)
	}

	return nil
}

// FitPhase fits the cosine response to a (heating power, optical power)
// sweep.
//
// Errors: ErrLengthMismatch, ErrInsufficientData, ErrNaNInf,
// ErrDegenerateSweep, ErrFitConvergence, ErrUnknownIOConfig.
func FitPhase(heatingmW, optical []float64, io IOConfig, opts ...FitOption) (Phase, error) {
	if io != Cross && io != Bar {
		return Phase{}, fmt.Errorf("FitPhase: %w", ErrUnknownIOConfig)
	}
	if err := checkSweep(heatingmW, optical, MinPhasePoints); err != nil {
		return Phase{}, fmt.Errorf("FitPhase: %w", err)
	}
	o := gatherFitOptions(opts...)

	var (
		p0  cosineParams
		err error
	)
	switch o.strategy {
	case FFTAssisted:
		p0, err = fftGuess(heatingmW, optical, io.Sign())
	default:
		p0, err = heuristicGuess(heatingmW, optical, io.Sign(), o.prior)
	}
	if err != nil {
		return Phase{}, fmt.Errorf("FitPhase: %s: %w", o.strategy, err)
	}

	p, err := levenbergMarquardt(heatingmW, optical, io.Sign(), p0, o.maxIter)
	if err != nil {
		return Phase{}, fmt.Errorf("FitPhase: %s: %w", o.strategy, err)
	}

	return Phase{
		Amplitude:   p[paramA],
		Omega:       p[paramB],
		PhaseOffset: p[paramC],
		Offset:      p[paramD],
		IO:          io,
	}, nil
}
