// SPDX-License-Identifier: MIT

// Package labels maps an ordered beamsplitter sequence onto the fixed
// coordinate labels of a rectangular MZI chip.
//
// A chip of N modes is a lattice of N columns (letters A, B, …) and N/2
// rows (1-based). Even columns couple modes (2r, 2r+1); odd columns couple
// (2r+1, 2r+2), so their last row is a wrap position without a waveguide.
//
// Two lookup tables exist per supported size:
//
//   - DecompositionOrder: the k-th beamsplitter of a clements.Interferometer
//     lands on table position k.
//   - PhysicalLayout: positions listed column by column, top to bottom, as
//     used by flat (θ,φ) arrays coming from the driver electronics.
//
// Tables are built once at package initialisation and never mutated.
//
// A Profile describes one manufactured chip: its size, the table variant
// used, the deny-list of leakage labels (always forced to the bypass
// setting theta="2", phi="0"), per-label phase corrections applied in the
// physical variant, and the heater channels driving each label.
//
// Angles are emitted in the chip convention (fractions of π) as decimal
// strings rounded to AnglePrecision digits.
package labels
