// SPDX-License-Identifier: MIT

package clements

import "errors"

// ErrRootNotConverged is returned by the RootFinder strategy when an
// elimination does not converge within MaxRootIterations.
var ErrRootNotConverged = errors.New("clements: root finder did not converge")

// ErrReconstruction is returned when a decomposition fails to reproduce its
// source within ReconstructionTolerance (self-check, WithSelfCheck).
var ErrReconstruction = errors.New("clements: reconstruction residual above tolerance")
