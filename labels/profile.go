// SPDX-License-Identifier: MIT

package labels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Heater names the calibration channels driving one label.
type Heater struct {
	Theta string `json:"theta" yaml:"theta"`
	Phi   string `json:"phi" yaml:"phi"`
}

// Profile describes one manufactured chip.
type Profile struct {
	Size    int     `json:"size" yaml:"size"`
	Variant Variant `json:"variant" yaml:"variant"`

	// DenyList holds leakage labels forced to the bypass setting.
	DenyList []string `json:"deny_list" yaml:"deny_list"`

	// PhaseCorrections are added to φ (units of π, mod 2) in the physical
	// variant.
	PhaseCorrections map[string]float64 `json:"phase_corrections,omitempty" yaml:"phase_corrections,omitempty"`

	// Heaters overrides the default channel naming of HeaterFor.
	Heaters map[string]Heater `json:"heaters,omitempty" yaml:"heaters,omitempty"`
}

// leakage8 are the leakage sites of the 8-mode chip: the whole bottom row
// plus the lower crossings of columns B, D and F.
var leakage8 = []string{"A4", "B4", "C4", "D4", "E4", "F4", "G4", "H4", "B3", "D3", "F3"}

// physicalCorrections8 is the phase-reference offset of the 8-mode chip's
// last column, in units of π.
var physicalCorrections8 = map[string]float64{"H1": 1, "H2": 1, "H3": 1}

// DefaultProfile returns the built-in description of an n-mode chip. The
// 8-mode chip carries its measured leakage list; other sizes deny only the
// wrap sites.
//
// Errors: ErrUnsupportedSize, ErrUnknownVariant.
func DefaultProfile(n int, v Variant) (Profile, error) {
	if _, err := TableFor(n, v); err != nil {
		return Profile{}, fmt.Errorf("DefaultProfile: %w", err)
	}

	p := Profile{Size: n, Variant: v}
	if n == 8 {
		p.DenyList = append([]string(nil), leakage8...)
		if v == PhysicalLayout {
			p.PhaseCorrections = make(map[string]float64, len(physicalCorrections8))
			for k, c := range physicalCorrections8 {
				p.PhaseCorrections[k] = c
			}
		}
		return p, nil
	}
	for col := 1; col < n; col += 2 {
		p.DenyList = append(p.DenyList, Position{Column: col, Row: n/2 - 1}.Label())
	}

	return p, nil
}

// Validate checks the size, the variant and every label the profile names.
func (p Profile) Validate() error {
	if _, err := TableFor(p.Size, p.Variant); err != nil {
		return err
	}
	for _, l := range p.DenyList {
		if _, err := ParseLabel(l, p.Size); err != nil {
			return fmt.Errorf("deny_list: %w", err)
		}
	}
	for l := range p.PhaseCorrections {
		if _, err := ParseLabel(l, p.Size); err != nil {
			return fmt.Errorf("phase_corrections: %w", err)
		}
	}
	for l := range p.Heaters {
		if _, err := ParseLabel(l, p.Size); err != nil {
			return fmt.Errorf("heaters: %w", err)
		}
	}

	return nil
}

// Denied reports whether label is on the deny-list.
func (p Profile) Denied(label string) bool {
	for _, l := range p.DenyList {
		if l == label {
			return true
		}
	}

	return false
}

// HeaterFor returns the calibration channels of label: the configured
// entry, or "<label>.theta" / "<label>.phi".
func (p Profile) HeaterFor(label string) Heater {
	if h, ok := p.Heaters[label]; ok {
		return h
	}

	return Heater{Theta: label + ".theta", Phi: label + ".phi"}
}

// SortedDenyList returns the deny-list sorted and de-duplicated.
func (p Profile) SortedDenyList() []string {
	seen := make(map[string]struct{}, len(p.DenyList))
	out := make([]string, 0, len(p.DenyList))
	for _, l := range p.DenyList {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)

	return out
}

// LoadProfile reads a profile from a YAML or JSON file, chosen by
// extension (YAML unless ".json").
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	return DecodeProfile(data, filepath.Ext(path))
}

// DecodeProfile parses and validates profile data; ext selects the format.
func DecodeProfile(data []byte, ext string) (Profile, error) {
	var p Profile
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("failed to parse profile json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("failed to parse profile yaml: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile: %w", err)
	}

	return p, nil
}
