// Package hessenberg implements the two QR sweep variants the implicit
// restart drives: SingleShiftQR (a real-shift Givens sweep) and
// DoubleShiftQR (Francis's implicit double-shift bulge chase, which keeps
// a complex-conjugate pair of shifts entirely in real arithmetic).
//
// Both types follow the same three-call contract the rest of the module
// depends on: Compute builds the sweep against a given Hessenberg matrix,
// then MatrixRQ/MatrixQtHQ, ApplyYQ and ApplyQtY let the caller push the
// accumulated orthogonal transform through V, H and the tracked basis
// vector without exposing the rotations/reflectors themselves.
package hessenberg
