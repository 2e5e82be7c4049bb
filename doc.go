// Package iram implements the Implicitly Restarted Arnoldi Method for real
// nonsymmetric operators.
//
// 🚀 What is iram?
//
//	A compact eigensolver that finds a handful of extremal eigenvalues and
//	eigenvectors of a large square real matrix A without ever requiring A
//	to be materialized — you hand it an operator (a callable y = A*x), it
//	hands back the eigenpairs:
//		• Arnoldi factorization with one-step re-orthogonalization
//		• Single-shift and Francis double-shift QR sweeps on the small
//		  upper-Hessenberg projection
//		• Exact-shift implicit restart (Sorensen's strategy)
//		• Ritz extraction, six selection rules, and a shift-and-invert
//		  wrapper for interior eigenvalues
//
// ✨ Why choose iram?
//
//   - Operator-first — A never needs to live in memory; supply dense,
//     sparse or a bare function
//   - Real arithmetic throughout — complex conjugate Ritz pairs are
//     handled by the double-shift bulge chase, not complex BLAS
//   - Pure Go, gonum underneath — no cgo, no LAPACK binding
//
// Under the hood, everything is organized under dedicated subpackages:
//
//	operator/   — LinearOperator/ShiftSolver contracts + reference adapters
//	hessenberg/ — single- and double-shift QR sweeps on Hessenberg matrices
//	arnoldi/    — Arnoldi factorization and order-k -> order-m extension
//	ritz/       — Schur reduction, eigenpair extraction, selection rules
//	eigs/       — the top-level Solver and its shift-and-invert wrapper
//	linalg/     — vector kernels (dot, norm, axpy) shared by the above
//	matrix/     — dense row-major Matrix type backing V, H and Schur work
//
// Quick usage sketch:
//
//	op, err := operator.NewDenseOperator(a)
//	solver, err := eigs.NewSolver(op, 3, 6, ritz.LargestMagn)
//	nconv, err := solver.Compute(eigs.DefaultMaxIter, eigs.DefaultTol)
//	vals, err := solver.Eigenvalues()
//
// See eigs/ for the full driver API and each subpackage's doc comment for
// the algorithm it owns.
package iram
