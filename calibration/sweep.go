// SPDX-License-Identifier: MIT

package calibration

import "fmt"

// Sweep is one characterisation run of a phase shifter: the drive current,
// the voltage across the heater and the optical power at the monitored
// port, sample by sample.
type Sweep struct {
	CurrentmA    []float64 `json:"current_ma" yaml:"current_ma"`
	VoltageV     []float64 `json:"voltage_v" yaml:"voltage_v"`
	OpticalPower []float64 `json:"optical_power" yaml:"optical_power"`
	IO           IOConfig  `json:"io_config" yaml:"io_config"`
}

// HeatingPower returns the measured I·V per sample (mW).
func (s Sweep) HeatingPower() []float64 {
	out := make([]float64, len(s.CurrentmA))
	for i := range out {
		out[i] = s.CurrentmA[i] * s.VoltageV[i]
	}

	return out
}

// FitChannel fits both records of a channel from one sweep.
func FitChannel(s Sweep, opts ...FitOption) (Channel, error) {
	r, err := FitResistance(s.CurrentmA, s.VoltageV)
	if err != nil {
		return Channel{}, fmt.Errorf("FitChannel: %w", err)
	}
	if len(s.OpticalPower) != len(s.CurrentmA) {
		return Channel{}, fmt.Errorf("FitChannel: %d optical samples for %d currents: %w",
			len(s.OpticalPower), len(s.CurrentmA), ErrLengthMismatch)
	}
	p, err := FitPhase(s.HeatingPower(), s.OpticalPower, s.IO, opts...)
	if err != nil {
		return Channel{}, fmt.Errorf("FitChannel: %w", err)
	}

	return Channel{Resistance: &r, Phase: &p}, nil
}
