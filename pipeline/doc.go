// SPDX-License-Identifier: MIT

// Package pipeline composes the mesh control steps.
//
//   - MapUnitary: unitary → clements.Interferometer → labels.ChannelMapping.
//   - SolveCurrents: (channel, target phase) batch → Plan. Every channel is
//     solved on its own; missing calibrations and unsolvable targets land in
//     Plan.Failed and never abort the batch.
//   - PlanMapping: ChannelMapping → per-label θ/φ heater currents through the
//     profile's heater assignment, skipping deny-listed labels.
//
// Each batch works on a snapshot of the calibration store taken on entry
// and is tagged with a fresh request id, which is attached to every log
// record of that batch.
package pipeline
