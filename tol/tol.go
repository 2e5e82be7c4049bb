// Package tol derives the floating-point tolerances the Arnoldi, Hessenberg
// and Ritz packages share: the working type's machine epsilon and its two
// fractional powers used throughout the method (orthogonality loss and
// near-zero rotation/reflector detection).
//
// These are computed once at package init rather than hardcoded, since the
// derivation itself (Eps^(2/3), Eps^(0.9)) is part of what a reader should
// be able to verify by eye.
package tol

import "math"

var (
	// Eps is the machine epsilon of float64: the smallest eps such that
	// 1+eps/2 rounds back down to 1.
	Eps = computeEps()

	// Eps23 is Eps^(2/3), the orthogonality-loss tolerance used by the
	// Arnoldi re-orthogonalization test and by the numerical-breakdown
	// check on the residual norm.
	Eps23 = math.Pow(Eps, 2.0/3.0)

	// Eps09 is Eps^(0.9), the near-zero test used by Givens rotations and
	// Householder reflectors to decide when to treat an update as the
	// identity rather than amplify rounding noise.
	Eps09 = math.Pow(Eps, 0.9)
)

func computeEps() float64 {
	eps := 1.0
	for 1.0+eps/2.0 != 1.0 {
		eps /= 2.0
	}

	return eps
}
