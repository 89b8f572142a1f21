// SPDX-License-Identifier: MIT

package labels

import (
	"fmt"
	"strconv"
)

// Position is one lattice site. Column and Row are 0-based.
type Position struct {
	Column int
	Row    int
}

// Label renders p as column letter plus 1-based row, e.g. {2,0} → "C1".
func (p Position) Label() string {
	return string(rune('A'+p.Column)) + strconv.Itoa(p.Row+1)
}

// Modes returns the pair of modes coupled at p.
func (p Position) Modes() (int, int) {
	m := 2*p.Row + p.Column%2

	return m, m + 1
}

// Wrap reports whether p is the wrap site of an odd column in an n-mode
// lattice (no waveguide, never produced by a decomposition).
func (p Position) Wrap(n int) bool {
	_, m2 := p.Modes()

	return m2 >= n
}

// ParseLabel parses a label such as "H4" for an n-mode lattice.
func ParseLabel(label string, n int) (Position, error) {
	if len(label) < 2 || label[0] < 'A' || label[0] > 'Z' {
		return Position{}, fmt.Errorf("%q: %w", label, ErrBadLabel)
	}
	row, err := strconv.Atoi(label[1:])
	if err != nil || label[1] == '+' || label[1] == '-' {
		return Position{}, fmt.Errorf("%q: %w", label, ErrBadLabel)
	}
	p := Position{Column: int(label[0] - 'A'), Row: row - 1}
	if p.Column >= n || p.Row < 0 || p.Row >= n/2 {
		return Position{}, fmt.Errorf("%q outside %d-mode lattice: %w", label, n, ErrBadLabel)
	}

	return p, nil
}
