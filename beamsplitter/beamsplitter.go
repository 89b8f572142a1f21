// SPDX-License-Identifier: MIT

package beamsplitter

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvmesh/cmatrix"
)

// ErrBadModes is returned when a beamsplitter's modes are not a valid
// ordered pair inside the requested dimension.
var ErrBadModes = errors.New("beamsplitter: invalid mode pair")

// Beamsplitter is one elementary 2-mode transform at a fixed point of an
// ordered sequence. Angles are in the Clements convention (radians).
type Beamsplitter struct {
	Mode1 int     `json:"mode1" yaml:"mode1"`
	Mode2 int     `json:"mode2" yaml:"mode2"`
	Theta float64 `json:"theta" yaml:"theta"`
	Phi   float64 `json:"phi" yaml:"phi"`
}

// GlobalPhaseFactor returns g = i·e^{iθ} when globalPhase is set, 1 otherwise.
func GlobalPhaseFactor(theta float64, globalPhase bool) complex128 {
	if !globalPhase {
		return 1
	}

	return 1i * cmplx.Exp(complex(0, theta))
}

// Block returns the 2×2 block for (θ, φ).
func Block(theta, phi float64, globalPhase bool) cmatrix.Rotation2 {
	g := GlobalPhaseFactor(theta, globalPhase)
	s, c := math.Sincos(theta)
	e := cmplx.Exp(complex(0, phi))

	return cmatrix.Rotation2{
		{g * e * complex(s, 0), g * complex(c, 0)},
		{g * e * complex(c, 0), -g * complex(s, 0)},
	}
}

// Matrix returns the 2×2 block of b.
func (b Beamsplitter) Matrix(globalPhase bool) cmatrix.Rotation2 {
	return Block(b.Theta, b.Phi, globalPhase)
}

// Validate checks 0 <= Mode1 < Mode2 < n.
func (b Beamsplitter) Validate(n int) error {
	if b.Mode1 < 0 || b.Mode2 <= b.Mode1 || b.Mode2 >= n {
		return fmt.Errorf("modes (%d,%d) in dimension %d: %w", b.Mode1, b.Mode2, n, ErrBadModes)
	}

	return nil
}

// Embed returns the n×n identity with b's block written at (Mode1, Mode2).
//
// Errors:
//   - ErrBadModes when the modes do not fit in n.
//   - cmatrix.ErrBadShape when n <= 0.
func (b Beamsplitter) Embed(n int, globalPhase bool) (*cmatrix.Dense, error) {
	if err := b.Validate(n); err != nil {
		return nil, err
	}
	m, err := cmatrix.Identity(n)
	if err != nil {
		return nil, err
	}
	if err = cmatrix.ApplyLeft2(m, b.Mode1, b.Mode2, b.Matrix(globalPhase)); err != nil {
		return nil, err
	}

	return m, nil
}

// Chip returns b's angles in the chip convention (fractions of π in [0,2)).
func (b Beamsplitter) Chip() (theta, phi float64) {
	return ToChip(b.Theta, b.Phi)
}

// String renders b for diagnostics.
func (b Beamsplitter) String() string {
	return fmt.Sprintf("BS(%d,%d; θ=%.6f, φ=%.6f)", b.Mode1, b.Mode2, b.Theta, b.Phi)
}
