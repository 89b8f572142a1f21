// SPDX-License-Identifier: MIT

package current

import "errors"

// ErrNoPhysicalSolution is returned when neither the quartic nor the
// linear fallback gives a finite, non-negative current.
var ErrNoPhysicalSolution = errors.New("current: no physical solution")

// ErrDegeneratePolynomial is returned for a polynomial with no non-zero
// coefficient.
var ErrDegeneratePolynomial = errors.New("current: degenerate polynomial")
