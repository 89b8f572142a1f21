// SPDX-License-Identifier: MIT

// Package clements factors an N×N unitary into the ordered sequence of
// 2-mode beamsplitters realised by a rectangular MZI mesh, plus a residual
// diagonal of output phases.
//
// Algorithm outline:
//  1. Validate U (square, ‖U·U† − I‖∞ ≤ tolerance).
//  2. Walk the anti-diagonals of the working copy W from the bottom-left
//     corner. On even-indexed diagonals (0-based) each target entry is
//     nulled by right-multiplying W with T†(θ,φ) on two adjacent columns; on
//     odd-indexed diagonals by left-multiplying with T(θ,φ) on two adjacent
//     rows. Diagonal i holds i+1 eliminations, so the mesh columns alternate
//     between N/2 and N/2−1 elements without any per-size table.
//  3. The residual W is diagonal: D.
//
// This gives
//
//	U = L₁†·L₂†·…·L_k† · D · R_m·…·R₂·R₁
//
// which Decomposition.Reconstruct evaluates. Clements then commutes every
// L† through D (T†(θ,φ)·diag(d₁,d₂) = diag(e^{−iφ}d₂, d₂)·T(θ, arg d₁ − arg d₂))
// to obtain the physical order R₁…R_m, T'_k…T'_1 followed by output phases.
//
// Each (θ,φ) is solved in closed form with atan2 (ClosedForm strategy) or by
// a damped Newton root-finder seeded at (1,1) (RootFinder strategy). Both
// return the canonical representative θ ∈ [0,π/2], φ ∈ [0,2π).
//
// Complexity: O(N³) time (N²/2 eliminations, O(N) each), O(N²) memory.
package clements
