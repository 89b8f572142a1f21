// SPDX-License-Identifier: MIT

package labels

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/lvmesh/beamsplitter"
)

// AnglePrecision is the number of decimals kept in angle strings.
const AnglePrecision = 6

// Bypass values forced onto deny-listed labels.
const (
	BypassTheta = "2"
	BypassPhi   = "0"
)

// Arms is the fixed arm tag list attached to every setting.
var Arms = [4]string{"TL", "TR", "BL", "BR"}

// Setting is the chip-convention drive of one label. Angles are decimal
// strings in units of π.
type Setting struct {
	Arms  []string `json:"arms" yaml:"arms"`
	Theta string   `json:"theta" yaml:"theta"`
	Phi   string   `json:"phi" yaml:"phi"`
}

func newSetting(theta, phi string) Setting {
	return Setting{Arms: append([]string(nil), Arms[:]...), Theta: theta, Phi: phi}
}

// ChannelMapping is label → Setting. encoding/json writes map keys sorted,
// so equal mappings always serialise to identical bytes.
type ChannelMapping map[string]Setting

// Labels returns the mapped labels, sorted.
func (cm ChannelMapping) Labels() []string {
	out := make([]string, 0, len(cm))
	for l := range cm {
		out = append(out, l)
	}
	sort.Strings(out)

	return out
}

// Angles parses the setting of label back to numbers (units of π).
//
// Errors: ErrUnknownLabel, or a strconv error for a malformed value.
func (cm ChannelMapping) Angles(label string) (theta, phi float64, err error) {
	s, ok := cm[label]
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", label, ErrUnknownLabel)
	}
	if theta, err = strconv.ParseFloat(s.Theta, 64); err != nil {
		return 0, 0, fmt.Errorf("%q theta: %w", label, err)
	}
	if phi, err = strconv.ParseFloat(s.Phi, 64); err != nil {
		return 0, 0, fmt.Errorf("%q phi: %w", label, err)
	}

	return theta, phi, nil
}

// FormatAngle renders a chip angle (units of π) rounded to AnglePrecision
// decimals. Values that round to 2 wrap to 0 and −0 prints as 0.
func FormatAngle(x float64) string {
	scale := math.Pow10(AnglePrecision)
	v := math.Round(x*scale) / scale
	if v >= 2 {
		v -= 2
	}
	if v == 0 {
		v = 0
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// chipSetting converts Clements radians to a formatted chip setting, adding
// corr (units of π) to φ.
func chipSetting(theta, phi, corr float64) Setting {
	tc, pc := beamsplitter.ToChip(theta, phi)
	if corr != 0 {
		pc = beamsplitter.WrapUnitsOfPi(pc + corr)
	}

	return newSetting(FormatAngle(tc), FormatAngle(pc))
}
