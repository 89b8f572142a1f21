// SPDX-License-Identifier: MIT

package labels

import "errors"

var (
	// ErrUnsupportedSize is returned for mesh sizes without a label table.
	ErrUnsupportedSize = errors.New("labels: unsupported mesh size")

	// ErrBadLabel is returned when a label does not name a lattice position.
	ErrBadLabel = errors.New("labels: malformed label")

	// ErrUnknownVariant is returned for a table variant name that is not
	// "decomposition" or "physical".
	ErrUnknownVariant = errors.New("labels: unknown table variant")

	// ErrSizeMismatch is returned when an interferometer does not match the
	// profile size.
	ErrSizeMismatch = errors.New("labels: interferometer size does not match profile")

	// ErrLayoutMismatch is returned when the input does not follow the
	// table layout (wrong element count or wrong mode pairs).
	ErrLayoutMismatch = errors.New("labels: input does not match table layout")

	// ErrUnknownLabel is returned when a mapping has no entry for a label.
	ErrUnknownLabel = errors.New("labels: label not present in mapping")

	// ErrNilInterferometer is returned for a nil interferometer.
	ErrNilInterferometer = errors.New("labels: nil interferometer")
)
