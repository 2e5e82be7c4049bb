// Package ritz extracts and selects Ritz pairs from the small
// upper-Hessenberg matrix the Arnoldi factorization projects A onto.
//
// Schur reduces H to real Schur form by driving repeated hessenberg
// sweeps with self-chosen Wilkinson shifts — this is the "standard dense
// non-symmetric eigensolver" the top-level driver needs, built from the
// same single/double-shift primitives the restart itself uses rather than
// calling out to an external dense eigenvalue routine. Eigenpairs reads
// eigenvalues off the Schur form's diagonal blocks and recovers
// eigenvectors by back-substitution. SelectionRule and SortRitzPairs
// implement the six ordering rules the driver chooses among; ConvergedMask
// implements the convergence test.
package ritz
