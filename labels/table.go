// SPDX-License-Identifier: MIT

package labels

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvmesh/clements"
	"github.com/katalvlaran/lvmesh/cmatrix"
)

// Variant selects a label table convention.
type Variant int

const (
	// DecompositionOrder indexes positions by interferometer order.
	DecompositionOrder Variant = iota
	// PhysicalLayout indexes positions column by column.
	PhysicalLayout
)

// SupportedSizes lists the mesh sizes with label tables.
var SupportedSizes = []int{4, 6, 8, 12}

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case DecompositionOrder:
		return "decomposition"
	case PhysicalLayout:
		return "physical"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if v != DecompositionOrder && v != PhysicalLayout {
		return nil, fmt.Errorf("%d: %w", int(v), ErrUnknownVariant)
	}

	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	switch string(text) {
	case "decomposition", "":
		*v = DecompositionOrder
	case "physical":
		*v = PhysicalLayout
	default:
		return fmt.Errorf("%q: %w", text, ErrUnknownVariant)
	}

	return nil
}

// Table is an immutable label lookup for one size and variant.
type Table struct {
	size      int
	variant   Variant
	positions []Position
	index     map[string]int
}

type tableKey struct {
	size    int
	variant Variant
}

var tables = map[tableKey]*Table{}

func init() {
	for _, n := range SupportedSizes {
		order := decompositionPositions(n)
		tables[tableKey{n, DecompositionOrder}] = newTable(n, DecompositionOrder, order)

		physical := append([]Position(nil), order...)
		sort.Slice(physical, func(i, j int) bool {
			if physical[i].Column != physical[j].Column {
				return physical[i].Column < physical[j].Column
			}
			return physical[i].Row < physical[j].Row
		})
		tables[tableKey{n, PhysicalLayout}] = newTable(n, PhysicalLayout, physical)
	}
}

// decompositionPositions places the beamsplitters of an n-mode Clements
// interferometer. The elimination plan does not depend on the matrix, so
// the identity stands in for any unitary.
func decompositionPositions(n int) []Position {
	id, err := cmatrix.Identity(n)
	if err != nil {
		panic(err)
	}
	it, err := clements.Clements(id)
	if err != nil {
		panic(err)
	}

	cols := it.Columns()
	out := make([]Position, len(cols))
	for k, bs := range it.BeamSplitters {
		out[k] = Position{Column: cols[k], Row: bs.Mode1 / 2}
	}

	return out
}

func newTable(n int, v Variant, positions []Position) *Table {
	t := &Table{size: n, variant: v, positions: positions, index: make(map[string]int, len(positions))}
	for k, p := range positions {
		t.index[p.Label()] = k
	}

	return t
}

// TableFor returns the shared table for (n, v).
//
// Errors: ErrUnsupportedSize, ErrUnknownVariant.
func TableFor(n int, v Variant) (*Table, error) {
	if v != DecompositionOrder && v != PhysicalLayout {
		return nil, fmt.Errorf("TableFor: %d: %w", int(v), ErrUnknownVariant)
	}
	t, ok := tables[tableKey{n, v}]
	if !ok {
		return nil, fmt.Errorf("TableFor: n=%d: %w", n, ErrUnsupportedSize)
	}

	return t, nil
}

// Size returns the number of modes.
func (t *Table) Size() int { return t.size }

// Variant returns the table convention.
func (t *Table) Variant() Variant { return t.variant }

// Len returns the number of positions, N(N−1)/2.
func (t *Table) Len() int { return len(t.positions) }

// Position returns the k-th position.
func (t *Table) Position(k int) Position { return t.positions[k] }

// Label returns the k-th label.
func (t *Table) Label(k int) string { return t.positions[k].Label() }

// Index returns the table index of label.
func (t *Table) Index(label string) (int, bool) {
	k, ok := t.index[label]

	return k, ok
}

// Labels returns all labels in table order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.positions))
	for k, p := range t.positions {
		out[k] = p.Label()
	}

	return out
}
