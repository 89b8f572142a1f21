// SPDX-License-Identifier: MIT

package labels

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/clements"
)

// Mapper turns decompositions into ChannelMappings for one Profile.
// A Mapper is immutable and safe for concurrent use.
type Mapper struct {
	profile     Profile
	order       *Table
	physical    *Table
	deny        map[string]struct{}
	corrections map[string]float64
}

// NewMapper validates p and prepares its lookup tables.
func NewMapper(p Profile) (*Mapper, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("NewMapper: %w", err)
	}
	order, _ := TableFor(p.Size, DecompositionOrder)
	physical, _ := TableFor(p.Size, PhysicalLayout)

	m := &Mapper{
		profile:     p,
		order:       order,
		physical:    physical,
		deny:        make(map[string]struct{}, len(p.DenyList)),
		corrections: make(map[string]float64, len(p.PhaseCorrections)),
	}
	for _, l := range p.DenyList {
		m.deny[l] = struct{}{}
	}
	for l, c := range p.PhaseCorrections {
		m.corrections[l] = c
	}

	return m, nil
}

// Profile returns the mapper's profile.
func (m *Mapper) Profile() Profile { return m.profile }

// Denied reports whether label is forced to bypass.
func (m *Mapper) Denied(label string) bool {
	_, ok := m.deny[label]

	return ok
}

// Map dispatches on the profile variant: DecompositionOrder maps it
// directly, PhysicalLayout flattens it and goes through MapPhysical.
func (m *Mapper) Map(it *clements.Interferometer) (ChannelMapping, error) {
	if m.profile.Variant == PhysicalLayout {
		flat, err := m.PhysicalAngles(it)
		if err != nil {
			return nil, err
		}
		return m.MapPhysical(flat)
	}

	return m.MapInterferometer(it)
}

// MapInterferometer assigns the k-th beamsplitter of it to the k-th
// decomposition-order label.
//
// Implementation:
//   - Stage 1: check it against the table (size, count, mode pair per slot).
//   - Stage 2: convert each (θ, φ) to chip strings under its label.
//   - Stage 3: overwrite every deny-listed label with the bypass setting.
//
// Errors:
//   - ErrNilInterferometer for a nil it.
//   - ErrSizeMismatch when it.N differs from the profile size.
//   - ErrLayoutMismatch for a wrong count or mode pair.
//
// Complexity:
//   - Time O(K + D), Space O(K + D) for K beamsplitters and D denied labels.
func (m *Mapper) MapInterferometer(it *clements.Interferometer) (ChannelMapping, error) {
	if err := m.checkInterferometer(it); err != nil {
		return nil, fmt.Errorf("MapInterferometer: %w", err)
	}

	out := make(ChannelMapping, m.order.Len()+len(m.deny))
	for k, bs := range it.BeamSplitters {
		out[m.order.Label(k)] = chipSetting(bs.Theta, bs.Phi, 0)
	}
	m.applyDenyList(out)

	return out, nil
}

// MapPhysical maps a flat [θ₀, φ₀, θ₁, φ₁, …] array (Clements radians, in
// physical-layout order). Phase corrections are added to φ.
//
// Errors: ErrLayoutMismatch when len(flat) != 2·Len.
func (m *Mapper) MapPhysical(flat []float64) (ChannelMapping, error) {
	if len(flat) != 2*m.physical.Len() {
		return nil, fmt.Errorf("MapPhysical: %d values for %d positions: %w",
			len(flat), m.physical.Len(), ErrLayoutMismatch)
	}

	out := make(ChannelMapping, m.physical.Len()+len(m.deny))
	var label string
	for k := 0; k < m.physical.Len(); k++ {
		label = m.physical.Label(k)
		out[label] = chipSetting(flat[2*k], flat[2*k+1], m.corrections[label])
	}
	m.applyDenyList(out)

	return out, nil
}

// PhysicalAngles flattens it into physical-layout order.
//
// Errors: see MapInterferometer.
func (m *Mapper) PhysicalAngles(it *clements.Interferometer) ([]float64, error) {
	if err := m.checkInterferometer(it); err != nil {
		return nil, fmt.Errorf("PhysicalAngles: %w", err)
	}

	flat := make([]float64, 2*m.physical.Len())
	for k, bs := range it.BeamSplitters {
		j, _ := m.physical.Index(m.order.Label(k))
		flat[2*j], flat[2*j+1] = bs.Theta, bs.Phi
	}

	return flat, nil
}

func (m *Mapper) checkInterferometer(it *clements.Interferometer) error {
	if it == nil {
		return ErrNilInterferometer
	}
	if it.N != m.profile.Size {
		return fmt.Errorf("n=%d, profile %d: %w", it.N, m.profile.Size, ErrSizeMismatch)
	}
	if len(it.BeamSplitters) != m.order.Len() {
		return fmt.Errorf("%d beamsplitters for %d positions: %w",
			len(it.BeamSplitters), m.order.Len(), ErrLayoutMismatch)
	}
	for k, bs := range it.BeamSplitters {
		m1, m2 := m.order.Position(k).Modes()
		if bs.Mode1 != m1 || bs.Mode2 != m2 {
			return fmt.Errorf("element %d on (%d,%d), %s expects (%d,%d): %w",
				k, bs.Mode1, bs.Mode2, m.order.Label(k), m1, m2, ErrLayoutMismatch)
		}
	}

	return nil
}

// applyDenyList forces every deny-listed label, including wrap sites that
// carry no beamsplitter, to the bypass setting.
func (m *Mapper) applyDenyList(out ChannelMapping) {
	for l := range m.deny {
		out[l] = newSetting(BypassTheta, BypassPhi)
	}
}
