// SPDX-License-Identifier: MIT

// Package cmatrix provides a small complex-valued dense matrix used as the
// UnitaryMatrix carrier of the mesh decomposer.
//
// The package offers:
//
//   - Dense: row-major []complex128 storage with bounds-checked At/Set.
//   - Kernels: Mul, ConjTranspose, MaxAbsDiff and in-place 2-mode rotations
//     (ApplyLeft2 / ApplyRight2) that touch only two rows or two columns.
//   - Validators: ValidateSquare and ValidateUnitary (‖U·U† − I‖∞ ≤ tol).
//   - RandomUnitary: deterministic (seeded) random unitaries for tests and tooling.
//
// All public entry points return sentinel errors (see errors.go) and never
// panic on user input. Numeric policy (finite-only ingestion, default
// tolerance) is configured through functional options (see options.go).
//
// Complexity quicksheet:
//   - NewDense/Identity: O(n²); At/Set: O(1); Mul: O(n³);
//     ApplyLeft2/ApplyRight2: O(n); ValidateUnitary: O(n³).
package cmatrix
