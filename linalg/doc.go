// Package linalg collects the small vector kernels the Arnoldi and eigs
// packages call on every extension and restart: dot products, norms and the
// axpy-style updates used to rebuild residual vectors. The vector kernels
// are thin wrappers over gonum.org/v1/gonum/floats (Copy, MatVecT and
// MatVecSub are plain loops); the wrapping exists so the
// call sites read in domain vocabulary (Dot, Norm, Axpy) instead of gonum's
// more general slice-algebra names, and so a future swap of the backing
// BLAS implementation touches one file.
package linalg
