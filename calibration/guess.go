// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// cosineParams is (A, b, c, d) of sign·A·cos(b·x + c) + d.
type cosineParams [4]float64

const (
	paramA = iota
	paramB
	paramC
	paramD
)

// heuristicGuess scans b around prior. At each b the model is linear in
// (α, β, d) for α·cos(bx) + β·sin(bx) + d; the b with the smallest residual
// wins and (α, β) are converted back to (A, c).
func heuristicGuess(x, y []float64, sign, prior float64) (cosineParams, error) {
	span := floats.Max(x) - floats.Min(x)
	if span <= 0 {
		return cosineParams{}, fmt.Errorf("zero power span: %w", ErrDegenerateSweep)
	}

	// Stay below the Nyquist rate of the average sample spacing.
	lo, hi := prior/ScanSpan, prior*ScanSpan
	if nyq := math.Pi * float64(len(x)-1) / span; hi > nyq {
		hi = nyq
	}
	grid := []float64{prior}
	if hi > lo {
		grid = floats.LogSpan(make([]float64, ScanPoints), lo, hi)
	}

	var (
		best    cosineParams
		bestRSS = math.Inf(1)
		found   bool
	)
	for _, b := range grid {
		alpha, beta, d, rss, err := linearAt(x, y, b)
		if err != nil || rss >= bestRSS {
			continue
		}
		best = cosineParams{
			paramA: math.Hypot(alpha, beta),
			paramB: b,
			paramC: math.Atan2(-sign*beta, sign*alpha),
			paramD: d,
		}
		bestRSS, found = rss, true
	}
	if !found {
		return cosineParams{}, fmt.Errorf("no frequency in [%g, %g] fits: %w", lo, hi, ErrDegenerateSweep)
	}

	return best, nil
}

// linearAt solves y ≈ α·cos(bx) + β·sin(bx) + d in the least-squares sense.
func linearAt(x, y []float64, b float64) (alpha, beta, d, rss float64, err error) {
	n := len(x)
	design := mat.NewDense(n, 3, nil)
	for i, xi := range x {
		s, c := math.Sincos(b * xi)
		design.Set(i, 0, c)
		design.Set(i, 1, s)
		design.Set(i, 2, 1)
	}

	var qr mat.QR
	qr.Factorize(design)
	var sol mat.VecDense
	if err = qr.SolveVecTo(&sol, false, mat.NewVecDense(n, append([]float64(nil), y...))); err != nil {
		return 0, 0, 0, 0, err
	}

	alpha, beta, d = sol.AtVec(0), sol.AtVec(1), sol.AtVec(2)
	for i, xi := range x {
		s, c := math.Sincos(b * xi)
		r := y[i] - (alpha*c + beta*s + d)
		rss += r * r
	}

	return alpha, beta, d, rss, nil
}

// fftGuess resamples the sweep onto a uniform grid, removes the mean and
// zero-pads by FFTOversample. The strongest non-DC bin gives b, its phase
// gives c (shifted by π for the bar branch), its magnitude gives A.
func fftGuess(x, y []float64, sign float64) (cosineParams, error) {
	xs := append([]float64(nil), x...)
	inds := make([]int, len(xs))
	floats.Argsort(xs, inds)
	ys := make([]float64, len(xs))
	for i, k := range inds {
		ys[i] = y[k]
	}
	xs, ys = mergeRepeats(xs, ys)
	n := len(xs)
	if n < 2 {
		return cosineParams{}, fmt.Errorf("%d distinct power values: %w", n, ErrDegenerateSweep)
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return cosineParams{}, fmt.Errorf("resample: %v: %w", err, ErrDegenerateSweep)
	}

	grid := floats.Span(make([]float64, n), xs[0], xs[n-1])
	dx := grid[1] - grid[0]
	samples := make([]float64, n)
	for i, g := range grid {
		samples[i] = pl.Predict(g)
	}
	mean := stat.Mean(samples, nil)

	seq := make([]float64, n*FFTOversample)
	for i, s := range samples {
		seq[i] = s - mean
	}
	fft := fourier.NewFFT(len(seq))
	coeff := fft.Coefficients(nil, seq)

	peak := 1
	for k := 2; k < len(coeff); k++ {
		if cmplx.Abs(coeff[k]) > cmplx.Abs(coeff[peak]) {
			peak = k
		}
	}
	if cmplx.Abs(coeff[peak]) == 0 {
		return cosineParams{}, fmt.Errorf("flat spectrum: %w", ErrDegenerateSweep)
	}

	b := 2 * math.Pi * float64(peak) / (float64(len(seq)) * dx)
	c := cmplx.Phase(coeff[peak]) - b*xs[0]
	if sign < 0 {
		c += math.Pi
	}

	return cosineParams{
		paramA: 2 * cmplx.Abs(coeff[peak]) / float64(n),
		paramB: b,
		paramC: math.Remainder(c, 2*math.Pi),
		paramD: mean,
	}, nil
}

// mergeRepeats collapses equal x values of a sorted sweep into one sample
// holding the mean of their y values, leaving xs strictly increasing.
func mergeRepeats(xs, ys []float64) ([]float64, []float64) {
	outX, outY := xs[:0], ys[:0]
	for i := 0; i < len(xs); {
		j, sum := i, 0.0
		for ; j < len(xs) && xs[j] == xs[i]; j++ {
			sum += ys[j]
		}
		outX = append(outX, xs[i])
		outY = append(outY, sum/float64(j-i))
		i = j
	}

	return outX, outY
}
