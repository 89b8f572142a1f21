// SPDX-License-Identifier: MIT

// Package beamsplitter models the elementary 2-mode block of the mesh: one
// Mach-Zehnder interferometer parametrised by an internal angle θ and an
// external phase φ.
//
// On modes (m1, m2) the block is
//
//	T[m1,m1] = g·e^{iφ}·sinθ   T[m1,m2] =  g·cosθ
//	T[m2,m1] = g·e^{iφ}·cosθ   T[m2,m2] = −g·sinθ
//
// with g = i·e^{iθ} when the global phase is kept and g = 1 otherwise.
//
// Two angle conventions exist. The decomposer works in the Clements
// convention (radians). The driver electronics use the chip convention,
// reported as fractions of π:
//
//	θ_chip = ((2θ + π) mod 2π) / π
//	φ_chip = ((φ + π) mod 2π) / π
//
// ToChip and FromChip are the only supported way to move between them.
package beamsplitter
