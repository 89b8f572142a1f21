// SPDX-License-Identifier: MIT
package calibration_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmesh/calibration"
)

var truthR = calibration.Resistance{A: 2e-4, C: 0.8, D: 0.01}

func resistanceSweep(r calibration.Resistance, maxmA float64, n int) (i, v []float64) {
	i = floats.Span(make([]float64, n), 0, maxmA)
	v = make([]float64, n)
	for k, cur := range i {
		v[k] = r.Voltage(cur)
	}

	return i, v
}

func phaseSweep(p calibration.Phase, x []float64) []float64 {
	y := make([]float64, len(x))
	for k, xk := range x {
		y[k] = p.OpticalPower(xk)
	}

	return y
}

func TestFitResistance_RecoversCoefficients(t *testing.T) {
	i, v := resistanceSweep(truthR, 20, 41)
	r, err := calibration.FitResistance(i, v)
	require.NoError(t, err)

	assert.InEpsilon(t, truthR.A, r.A, 0.01)
	assert.InEpsilon(t, truthR.C, r.C, 0.01)
	assert.InEpsilon(t, truthR.D, r.D, 0.01)
	assert.InEpsilon(t, truthR.C, r.RMin, 0.01)
	assert.InEpsilon(t, truthR.A*400+truthR.C, r.RMax, 0.01)
	assert.InEpsilon(t, truthR.A/truthR.C, r.Alpha(), 0.01)
	assert.NoError(t, r.Validate())
}

func TestFitResistance_Errors(t *testing.T) {
	_, err := calibration.FitResistance([]float64{1, 2, 3}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, calibration.ErrInsufficientData)

	_, err = calibration.FitResistance([]float64{1, 2, 3, 4}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, calibration.ErrLengthMismatch)

	_, err = calibration.FitResistance([]float64{1, 2, math.NaN(), 4}, []float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, calibration.ErrNaNInf)

	_, err = calibration.FitResistance([]float64{1, 2, 3, 4}, []float64{1, math.Inf(1), 3, 4})
	assert.ErrorIs(t, err, calibration.ErrNaNInf)

	_, err = calibration.FitResistance([]float64{2, 2, 2, 2, 2}, []float64{1, 1, 1, 1, 1})
	assert.ErrorIs(t, err, calibration.ErrDegenerateSweep)
}

func TestResistance_HeatingPower(t *testing.T) {
	r := calibration.Resistance{A: 1e-3, C: 1}
	assert.InDelta(t, (1e-3*4+1)*4, r.HeatingPower(2), 1e-12)
	assert.InDelta(t, r.Voltage(2)*2, r.HeatingPower(2), 1e-12)
	assert.ErrorIs(t, calibration.Resistance{C: 0}.Validate(), calibration.ErrInvalidRecord)
}

func TestFitPhase_BothStrategiesRecoverTruth(t *testing.T) {
	x := floats.Span(make([]float64, 121), 0, 60)
	for _, io := range []calibration.IOConfig{calibration.Cross, calibration.Bar} {
		truth := calibration.Phase{
			Amplitude:   0.8,
			Omega:       1.1 * calibration.DefaultFrequencyPrior,
			PhaseOffset: 0.7,
			Offset:      1.0,
			IO:          io,
		}
		y := phaseSweep(truth, x)

		for _, s := range []calibration.FitStrategy{calibration.HeuristicPrior, calibration.FFTAssisted} {
			got, err := calibration.FitPhase(x, y, io, calibration.WithFitStrategy(s))
			require.NoError(t, err, "%s/%s", io, s)
			assert.Equal(t, io, got.IO)
			assert.InDelta(t, truth.Amplitude, got.Amplitude, 1e-6, "%s/%s", io, s)
			assert.InDelta(t, truth.Omega, got.Omega, 1e-6, "%s/%s", io, s)
			assert.InDelta(t, truth.Offset, got.Offset, 1e-6, "%s/%s", io, s)
			assert.InDelta(t, 0, math.Remainder(truth.PhaseOffset-got.PhaseOffset, 2*math.Pi), 1e-6, "%s/%s", io, s)
			assert.LessOrEqual(t, math.Abs(got.PhaseOffset), math.Pi)
			assert.NoError(t, got.Validate())
		}
	}
}

func TestFitPhase_UnsortedSweep(t *testing.T) {
	x := floats.Span(make([]float64, 81), 0, 50)
	// Reverse the sweep order.
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
	truth := calibration.Phase{Amplitude: 2, Omega: 0.3, PhaseOffset: -1.2, Offset: 3, IO: calibration.Bar}
	got, err := calibration.FitPhase(x, phaseSweep(truth, x), calibration.Bar,
		calibration.WithFitStrategy(calibration.FFTAssisted))
	require.NoError(t, err)
	assert.InDelta(t, truth.Omega, got.Omega, 1e-6)
	assert.InDelta(t, truth.PhaseOffset, got.PhaseOffset, 1e-6)
}

func TestFitPhase_RepeatedPowers(t *testing.T) {
	up := floats.Span(make([]float64, 61), 0, 60)
	x := append(append([]float64(nil), up...), up...)
	for i, j := len(up), len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
	truth := calibration.Phase{Amplitude: 0.5, Omega: 0.3, PhaseOffset: 0.4, Offset: 0.6, IO: calibration.Cross}
	y := phaseSweep(truth, x)

	for _, s := range []calibration.FitStrategy{calibration.HeuristicPrior, calibration.FFTAssisted} {
		got, err := calibration.FitPhase(x, y, calibration.Cross, calibration.WithFitStrategy(s))
		require.NoError(t, err, s)
		assert.InDelta(t, truth.Omega, got.Omega, 1e-6, s)
		assert.InDelta(t, truth.Amplitude, got.Amplitude, 1e-6, s)
		assert.InDelta(t, truth.PhaseOffset, got.PhaseOffset, 1e-6, s)
	}

	flat := []float64{5, 5, 5, 5, 5, 5}
	_, err := calibration.FitPhase(flat, []float64{1, 2, 3, 4, 5, 6}, calibration.Cross,
		calibration.WithFitStrategy(calibration.FFTAssisted))
	assert.ErrorIs(t, err, calibration.ErrDegenerateSweep)
}

func TestFitPhase_Errors(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	_, err := calibration.FitPhase(x, x, calibration.Cross)
	assert.ErrorIs(t, err, calibration.ErrInsufficientData)

	x = floats.Span(make([]float64, 50), 0, 40)
	_, err = calibration.FitPhase(x, x, calibration.IOConfig(4))
	assert.ErrorIs(t, err, calibration.ErrUnknownIOConfig)

	truth := calibration.Phase{Amplitude: 1, Omega: 0.35, PhaseOffset: 0.2, Offset: 0.5}
	_, err = calibration.FitPhase(x, phaseSweep(truth, x), calibration.Cross, calibration.WithMaxIterations(1))
	assert.ErrorIs(t, err, calibration.ErrFitConvergence)

	assert.Panics(t, func() { calibration.WithMaxIterations(0) })
	assert.Panics(t, func() { calibration.WithFrequencyPrior(-1) })
}

func TestFitChannel(t *testing.T) {
	i, v := resistanceSweep(truthR, 8, 161)
	sweep := calibration.Sweep{CurrentmA: i, VoltageV: v, IO: calibration.Cross}
	truthP := calibration.Phase{Amplitude: 0.5, Omega: 0.3, PhaseOffset: 0.4, Offset: 0.6, IO: calibration.Cross}
	sweep.OpticalPower = phaseSweep(truthP, sweep.HeatingPower())

	ch, err := calibration.FitChannel(sweep)
	require.NoError(t, err)
	require.True(t, ch.Complete())
	assert.InEpsilon(t, truthR.C, ch.Resistance.C, 0.01)
	assert.InDelta(t, truthP.Omega, ch.Phase.Omega, 1e-6)
	assert.InDelta(t, truthP.PhaseOffset, ch.Phase.PhaseOffset, 1e-6)

	sweep.OpticalPower = sweep.OpticalPower[:10]
	_, err = calibration.FitChannel(sweep)
	assert.ErrorIs(t, err, calibration.ErrLengthMismatch)
}

func TestIOConfig_Text(t *testing.T) {
	var io calibration.IOConfig
	require.NoError(t, io.UnmarshalText([]byte("bar")))
	assert.Equal(t, calibration.Bar, io)
	assert.Equal(t, -1.0, io.Sign())
	txt, err := calibration.Cross.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cross", string(txt))

	assert.ErrorIs(t, io.UnmarshalText([]byte("through")), calibration.ErrUnknownIOConfig)
	_, err = calibration.IOConfig(3).MarshalText()
	assert.ErrorIs(t, err, calibration.ErrUnknownIOConfig)
}

func TestFitStrategy_String(t *testing.T) {
	assert.Equal(t, "heuristic-prior", calibration.HeuristicPrior.String())
	assert.Equal(t, "fft-assisted", calibration.FFTAssisted.String())
}
