// SPDX-License-Identifier: MIT

// Package lvmesh drives rectangular Mach–Zehnder interferometer meshes:
// from a target unitary down to the current through every heater.
//
// 🚀 What is lvmesh?
//
//	A small control stack for programmable photonic chips:
//		• Beamsplitter model: 2×2 MZI transfer blocks and angle conventions
//		• Clements decomposition: any N×N unitary into N(N−1)/2 MZIs + output phases
//		• Label mapping: decomposition angles onto chip labels (A1, B2, …) and heater arms
//		• Calibration: resistance and phase-response fits from heater sweeps
//		• Current solving: target phase → drive current, per channel
//		• Pipeline: batch orchestration with structured logs and metrics
//
// Under the hood, everything is organized in subpackages:
//
//	cmatrix/       dense complex matrices, 2×2 rotations, unitarity checks
//	beamsplitter/  Beamsplitter type, Clements and chip conventions
//	clements/      null-and-commute decomposition and mesh placement
//	labels/        label tables, chip profiles, channel mappings
//	calibration/   Resistance/Phase records, fitters, calibration store
//	current/       quartic inversion of the heater model
//	pipeline/      request batches, plans, metrics
//	cmd/meshctl/   command line front end
//
// See the per-package documentation for details.
package lvmesh
