package ritz

import "errors"

var (
	// ErrNonSquare indicates Schur was called on a non-square matrix.
	ErrNonSquare = errors.New("ritz: matrix is not square")

	// ErrDimensionMismatch indicates mismatched shapes between a Schur
	// form, its accumulated transform, or a convergence-mask argument.
	ErrDimensionMismatch = errors.New("ritz: dimension mismatch")
)
