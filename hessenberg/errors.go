package hessenberg

import "errors"

var (
	// ErrNonSquare indicates the input matrix was not square.
	ErrNonSquare = errors.New("hessenberg: matrix is not square")

	// ErrTooSmall indicates a sweep was requested on a matrix smaller than
	// the minimum order the algorithm accepts (2 for single-shift, 1 for
	// double-shift, which treats blocks of order 1 or 2 as identity).
	ErrTooSmall = errors.New("hessenberg: matrix too small for this sweep")

	// ErrNotComputed indicates MatrixRQ/MatrixQtHQ/ApplyYQ/ApplyQtY was
	// called before Compute.
	ErrNotComputed = errors.New("hessenberg: Compute has not been called")

	// ErrDimensionMismatch indicates a Y argument to ApplyYQ, or a y
	// argument to ApplyQtY, has the wrong shape for the sweep's order.
	ErrDimensionMismatch = errors.New("hessenberg: dimension mismatch")
)
