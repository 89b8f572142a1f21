// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvmesh/beamsplitter"
	"github.com/katalvlaran/lvmesh/cmatrix"
)

// Interferometer is the physical, ordered form of a decomposition:
// BeamSplitters[0] acts on the input first, then OutputPhases are applied.
//
//	U = diag(e^{i·OutputPhases}) · B_{K−1} · … · B_1 · B_0
//
// When GlobalPhase is set each B_k includes the factor i·e^{iθ_k}.
type Interferometer struct {
	N             int
	BeamSplitters []beamsplitter.Beamsplitter
	OutputPhases  []float64
	GlobalPhase   bool
}

// Clements decomposes U into an Interferometer.
//
// Errors: see Decompose.
func Clements(u *cmatrix.Dense, opts ...Option) (*Interferometer, error) {
	o := gatherOptions(opts...)
	d, err := Decompose(u, opts...)
	if err != nil {
		return nil, err
	}

	it := d.Interferometer(o.globalPhase)
	if o.selfCheck {
		if err = checkReconstruction(u, it.Unitary); err != nil {
			return nil, fmt.Errorf("Clements: %w", err)
		}
	}

	return it, nil
}

// Interferometer commutes the left factors through the diagonal and returns
// the ordered physical sequence.
func (d *Decomposition) Interferometer(globalPhase bool) *Interferometer {
	diag := append([]complex128(nil), d.Diag...)
	list := make([]beamsplitter.Beamsplitter, 0, len(d.Left)+len(d.Right))
	list = append(list, d.Right...)

	// T†(θ,φ)·diag(d₁,d₂) = diag(e^{−iφ}·d₂, d₂)·T(θ, arg d₁ − arg d₂).
	var d1, d2 complex128
	for k := len(d.Left) - 1; k >= 0; k-- {
		bs := d.Left[k]
		d1, d2 = diag[bs.Mode1], diag[bs.Mode2]
		diag[bs.Mode1] = cmplx.Exp(complex(0, -bs.Phi)) * d2
		list = append(list, beamsplitter.Beamsplitter{
			Mode1: bs.Mode1,
			Mode2: bs.Mode2,
			Theta: bs.Theta,
			Phi:   beamsplitter.WrapTwoPi(cmplx.Phase(d1) - cmplx.Phase(d2)),
		})
	}

	phases := make([]float64, len(diag))
	for i, z := range diag {
		phases[i] = cmplx.Phase(z)
	}
	if globalPhase {
		absorbGlobalPhase(list, phases)
	}
	for i := range phases {
		phases[i] = beamsplitter.WrapPi(phases[i])
	}

	return &Interferometer{
		N:             d.N,
		BeamSplitters: list,
		OutputPhases:  phases,
		GlobalPhase:   globalPhase,
	}
}

// absorbGlobalPhase rewrites list and phases so that the blocks may carry
// g_k = i·e^{iθ_k} on their own two modes. A diagonal Δ (angles, per mode)
// is swept from the input side to the output:
//
//	T(θ,φ)·diag(a,b) = diag(b,b)·T(θ, φ + arg a − arg b)
//	T_k = diag(ḡ_k on m1,m2)·(g_k·T_k)
//
// and the remainder is added to the output phases.
func absorbGlobalPhase(list []beamsplitter.Beamsplitter, phases []float64) {
	delta := make([]float64, len(phases))
	var g float64
	for k := range list {
		bs := &list[k]
		bs.Phi = beamsplitter.WrapTwoPi(bs.Phi + delta[bs.Mode1] - delta[bs.Mode2])
		delta[bs.Mode1] = delta[bs.Mode2]
		g = math.Pi/2 + bs.Theta
		delta[bs.Mode1] -= g
		delta[bs.Mode2] -= g
	}
	for i := range phases {
		phases[i] += delta[i]
	}
}

// Unitary recomposes the interferometer in order.
func (it *Interferometer) Unitary() (*cmatrix.Dense, error) {
	acc, err := cmatrix.Identity(it.N)
	if err != nil {
		return nil, err
	}
	for _, bs := range it.BeamSplitters {
		if err = cmatrix.ApplyLeft2(acc, bs.Mode1, bs.Mode2, bs.Matrix(it.GlobalPhase)); err != nil {
			return nil, err
		}
	}
	phases := make([]complex128, it.N)
	for i, ph := range it.OutputPhases {
		phases[i] = cmplx.Exp(complex(0, ph))
	}
	out, err := cmatrix.Diagonal(phases)
	if err != nil {
		return nil, err
	}

	return cmatrix.Mul(out, acc)
}

// Columns returns the rectangular-mesh column of every beamsplitter, in
// order. A beamsplitter on modes (m, m+1) lands in the first column after
// both of its modes are free whose parity matches m.
func (it *Interferometer) Columns() []int {
	last := make([]int, it.N)
	for i := range last {
		last[i] = -1
	}

	cols := make([]int, len(it.BeamSplitters))
	var c int
	for k, bs := range it.BeamSplitters {
		c = last[bs.Mode1]
		if last[bs.Mode2] > c {
			c = last[bs.Mode2]
		}
		c++
		if c%2 != bs.Mode1%2 {
			c++
		}
		last[bs.Mode1], last[bs.Mode2] = c, c
		cols[k] = c
	}

	return cols
}

// Depth returns the number of mesh columns used.
func (it *Interferometer) Depth() int {
	depth := 0
	for _, c := range it.Columns() {
		if c+1 > depth {
			depth = c + 1
		}
	}

	return depth
}
