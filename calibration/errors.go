// SPDX-License-Identifier: MIT

package calibration

import "errors"

var (
	// ErrInsufficientData is returned when a sweep has too few points.
	ErrInsufficientData = errors.New("calibration: insufficient data")

	// ErrLengthMismatch is returned when paired sweep slices differ in length.
	ErrLengthMismatch = errors.New("calibration: sweep length mismatch")

	// ErrNaNInf is returned for non-finite sweep samples.
	ErrNaNInf = errors.New("calibration: NaN or Inf in sweep")

	// ErrDegenerateSweep is returned when the sweep cannot determine the
	// model (e.g. all currents equal).
	ErrDegenerateSweep = errors.New("calibration: degenerate sweep")

	// ErrFitConvergence is returned when the nonlinear fit does not converge
	// within the iteration cap.
	ErrFitConvergence = errors.New("calibration: fit did not converge")

	// ErrNoCalibration is returned when a channel has no usable record.
	ErrNoCalibration = errors.New("calibration: no calibration for channel")

	// ErrUnknownIOConfig is returned for an io_config other than cross/bar.
	ErrUnknownIOConfig = errors.New("calibration: unknown io_config")

	// ErrInvalidRecord is returned when a stored record is not physical.
	ErrInvalidRecord = errors.New("calibration: invalid record")
)
