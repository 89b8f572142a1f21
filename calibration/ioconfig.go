// SPDX-License-Identifier: MIT

package calibration

import "fmt"

// IOConfig selects which MZI output port a phase record characterises.
type IOConfig int

const (
	// Cross fits +A·cos(b·P + c) + d.
	Cross IOConfig = iota
	// Bar fits −A·cos(b·P + c) + d.
	Bar
)

// Sign returns +1 for Cross and −1 for Bar.
func (io IOConfig) Sign() float64 {
	if io == Bar {
		return -1
	}

	return 1
}

// String implements fmt.Stringer.
func (io IOConfig) String() string {
	switch io {
	case Cross:
		return "cross"
	case Bar:
		return "bar"
	default:
		return fmt.Sprintf("IOConfig(%d)", int(io))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (io IOConfig) MarshalText() ([]byte, error) {
	if io != Cross && io != Bar {
		return nil, fmt.Errorf("%d: %w", int(io), ErrUnknownIOConfig)
	}

	return []byte(io.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (io *IOConfig) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cross":
		*io = Cross
	case "bar":
		*io = Bar
	default:
		return fmt.Errorf("%q: %w", text, ErrUnknownIOConfig)
	}

	return nil
}
