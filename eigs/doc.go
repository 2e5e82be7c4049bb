// Package eigs is the top-level Implicitly Restarted Arnoldi driver:
// Solver builds an initial order-m Arnoldi factorization, extracts and
// sorts Ritz pairs, and repeatedly restarts with Sorensen's exact-shift
// strategy until enough Ritz values converge or maxit is exhausted.
// ShiftInvertSolver composes a *Solver with a shift-and-invert operator to
// target eigenvalues near a chosen sigma instead of the extremes of the
// spectrum.
package eigs
