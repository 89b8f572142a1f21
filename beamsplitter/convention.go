// SPDX-License-Identifier: MIT

package beamsplitter

import (
	"fmt"
	"math"
)

// Convention names an angle convention.
type Convention int

const (
	// Clements is the decomposition-native convention, radians.
	Clements Convention = iota
	// Chip is the driver-electronics convention, fractions of π in [0,2).
	Chip
)

// String implements fmt.Stringer.
func (c Convention) String() string {
	switch c {
	case Clements:
		return "clements"
	case Chip:
		return "chip"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// Angles carries a (θ, φ) pair together with its convention so that
// consumers never have to guess which one they hold.
type Angles struct {
	Theta      float64
	Phi        float64
	Convention Convention
}

// In converts a to the requested convention. Converting to the same
// convention returns a unchanged.
func (a Angles) In(c Convention) Angles {
	if a.Convention == c {
		return a
	}
	if c == Chip {
		t, p := ToChip(a.Theta, a.Phi)
		return Angles{Theta: t, Phi: p, Convention: Chip}
	}
	t, p := FromChip(a.Theta, a.Phi)

	return Angles{Theta: t, Phi: p, Convention: Clements}
}

// Angles returns b's angles tagged with the Clements convention.
func (b Beamsplitter) Angles() Angles {
	return Angles{Theta: b.Theta, Phi: b.Phi, Convention: Clements}
}

// ToChip converts Clements radians to chip fractions of π:
// θ_chip = ((2θ+π) mod 2π)/π, φ_chip = ((φ+π) mod 2π)/π, both in [0,2).
func ToChip(theta, phi float64) (thetaChip, phiChip float64) {
	thetaChip = WrapTwoPi(2*theta+math.Pi) / math.Pi
	phiChip = WrapTwoPi(phi+math.Pi) / math.Pi

	return WrapUnitsOfPi(thetaChip), WrapUnitsOfPi(phiChip)
}

// FromChip inverts ToChip. θ is returned in [0,π) and φ in [0,2π); the
// Clements θ is only defined modulo π by the chip value.
func FromChip(thetaChip, phiChip float64) (theta, phi float64) {
	theta = WrapTwoPi(thetaChip*math.Pi-math.Pi) / 2
	phi = WrapTwoPi(phiChip*math.Pi - math.Pi)

	return theta, phi
}

// WrapTwoPi maps x into [0, 2π).
func WrapTwoPi(x float64) float64 {
	y := math.Mod(x, 2*math.Pi)
	if y < 0 {
		y += 2 * math.Pi
	}
	if y >= 2*math.Pi {
		y = 0
	}

	return y
}

// WrapPi maps x into [−π, π].
func WrapPi(x float64) float64 {
	y := WrapTwoPi(x + math.Pi)

	return y - math.Pi
}

// WrapUnitsOfPi maps a phase expressed in units of π into [0, 2).
func WrapUnitsOfPi(x float64) float64 {
	y := math.Mod(x, 2)
	if y < 0 {
		y += 2
	}
	if y >= 2 {
		y = 0
	}

	return y
}
