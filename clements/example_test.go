// SPDX-License-Identifier: MIT
package clements_test

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvmesh/clements"
	"github.com/katalvlaran/lvmesh/cmatrix"
)

// ExampleClements decomposes a random 6×6 unitary and rebuilds it from the
// ordered beamsplitter list.
func ExampleClements() {
	u, _ := cmatrix.RandomUnitary(6, rand.New(rand.NewSource(42)))

	it, err := clements.Clements(u)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	back, _ := it.Unitary()
	res, _ := cmatrix.MaxAbsDiff(u, back)

	fmt.Println("beamsplitters:", len(it.BeamSplitters))
	fmt.Println("columns:", it.Depth())
	fmt.Println("rebuilt:", res < 1e-9)
	// Output:
	// beamsplitters: 15
	// columns: 6
	// rebuilt: true
}
