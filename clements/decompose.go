// SPDX-License-Identifier: MIT

package clements

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/beamsplitter"
	"github.com/katalvlaran/lvmesh/cmatrix"
)

// Decomposition is the raw elimination result:
//
//	U = Left[0]†·…·Left[k−1]† · diag(Diag) · Right[m−1]·…·Right[0]
//
// Left and Right are kept in creation order; that order is physically
// meaningful and must not be changed.
type Decomposition struct {
	N     int
	Left  []beamsplitter.Beamsplitter
	Right []beamsplitter.Beamsplitter
	Diag  []complex128
}

// LeftAngles returns the (θ,φ) pairs of Left, in order.
func (d *Decomposition) LeftAngles() []beamsplitter.Angles { return anglesOf(d.Left) }

// RightAngles returns the (θ,φ) pairs of Right, in order.
func (d *Decomposition) RightAngles() []beamsplitter.Angles { return anglesOf(d.Right) }

func anglesOf(list []beamsplitter.Beamsplitter) []beamsplitter.Angles {
	out := make([]beamsplitter.Angles, len(list))
	for i, b := range list {
		out[i] = b.Angles()
	}

	return out
}

// Decompose eliminates U diagonal by diagonal.
//
// Errors:
//   - cmatrix.ErrNilMatrix, cmatrix.ErrNonSquare: bad shape.
//   - cmatrix.ErrNotUnitary: ‖U·U† − I‖∞ above the tolerance.
//   - ErrRootNotConverged: RootFinder strategy only.
//   - ErrReconstruction: WithSelfCheck only.
func Decompose(u *cmatrix.Dense, opts ...Option) (*Decomposition, error) {
	o := gatherOptions(opts...)
	if err := cmatrix.ValidateUnitary(u, cmatrix.WithTolerance(o.tol)); err != nil {
		return nil, fmt.Errorf("Decompose: %w", err)
	}

	n := u.Rows()
	w := u.Clone()
	null := nullerFor(o.strategy)
	d := &Decomposition{
		N:     n,
		Left:  make([]beamsplitter.Beamsplitter, 0, n*(n-1)/4+1),
		Right: make([]beamsplitter.Beamsplitter, 0, n*(n-1)/4+1),
	}

	var (
		i, j, r, m, p, q int
		a, b             complex128
		theta, phi       float64
		err              error
	)
	for i = 0; i < n-1; i++ {
		if i%2 == 0 {
			// Right side: null W[n-1-j, i-j] with columns (i-j, i-j+1).
			for j = 0; j <= i; j++ {
				r, m = n-1-j, i-j
				a, _ = w.At(r, m)
				b, _ = w.At(r, m+1)
				if theta, phi, err = null(a, b); err != nil {
					return nil, fmt.Errorf("Decompose: right (%d,%d): %w", m, m+1, err)
				}
				blk := beamsplitter.Block(theta, phi, false)
				if err = cmatrix.ApplyRight2(w, m, m+1, blk.Adjoint()); err != nil {
					return nil, fmt.Errorf("Decompose: %w", err)
				}
				d.Right = append(d.Right, beamsplitter.Beamsplitter{Mode1: m, Mode2: m + 1, Theta: theta, Phi: phi})
			}
			continue
		}
		// Left side: null W[q, j-1] with rows (q-1, q).
		for j = 1; j <= i+1; j++ {
			q = n + j - i - 2
			p = q - 1
			a, _ = w.At(p, j-1)
			b, _ = w.At(q, j-1)
			// e^{iφ}cosθ·x − sinθ·y = 0 is the right-side form with (−y, x).
			if theta, phi, err = null(-b, a); err != nil {
				return nil, fmt.Errorf("Decompose: left (%d,%d): %w", p, q, err)
			}
			if err = cmatrix.ApplyLeft2(w, p, q, beamsplitter.Block(theta, phi, false)); err != nil {
				return nil, fmt.Errorf("Decompose: %w", err)
			}
			d.Left = append(d.Left, beamsplitter.Beamsplitter{Mode1: p, Mode2: q, Theta: theta, Phi: phi})
		}
	}
	d.Diag = w.Diag()

	if o.selfCheck {
		if err = checkReconstruction(u, d.Reconstruct); err != nil {
			return nil, fmt.Errorf("Decompose: %w", err)
		}
	}

	return d, nil
}

// Reconstruct evaluates Left[0]†·…·Left[k−1]†·D·Right[m−1]·…·Right[0].
func (d *Decomposition) Reconstruct() (*cmatrix.Dense, error) {
	acc, err := cmatrix.Diagonal(d.Diag)
	if err != nil {
		return nil, err
	}
	// Right factors: D·R_m·…·R_1 (each earlier R multiplies from the right).
	for k := len(d.Right) - 1; k >= 0; k-- {
		bs := d.Right[k]
		if err = cmatrix.ApplyRight2(acc, bs.Mode1, bs.Mode2, bs.Matrix(false)); err != nil {
			return nil, err
		}
	}
	// Left factors: L_1†·…·L_k†·(…); the last created L is innermost.
	for k := len(d.Left) - 1; k >= 0; k-- {
		bs := d.Left[k]
		if err = cmatrix.ApplyLeft2(acc, bs.Mode1, bs.Mode2, bs.Matrix(false).Adjoint()); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// checkReconstruction compares u with rebuild() against ReconstructionTolerance.
func checkReconstruction(u *cmatrix.Dense, rebuild func() (*cmatrix.Dense, error)) error {
	back, err := rebuild()
	if err != nil {
		return err
	}
	res, err := cmatrix.MaxAbsDiff(u, back)
	if err != nil {
		return err
	}
	if res >= ReconstructionTolerance {
		return fmt.Errorf("residual %.3g: %w", res, ErrReconstruction)
	}

	return nil
}
