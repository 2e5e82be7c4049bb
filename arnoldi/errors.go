package arnoldi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResidual indicates the initial residual passed to Init had
	// norm at or below the orthogonality tolerance Eps23.
	ErrInvalidResidual = errors.New("arnoldi: initial residual norm too small")

	// ErrDimensionMismatch indicates a residual or operator dimension did
	// not match the factorization's configured n.
	ErrDimensionMismatch = errors.New("arnoldi: dimension mismatch")

	// ErrOrderRange indicates ExtendTo was asked to extend to an order
	// outside (currentOrder, maxOrder].
	ErrOrderRange = errors.New("arnoldi: requested order out of range")
)

// NumericalBreakdownError is returned by ExtendTo when beta = ||f|| drops
// at or below Eps23 during extension, indicating an invariant subspace was
// found. Order reports the factorization order actually reached before the
// breakdown, which remains a valid factorization in its own right.
type NumericalBreakdownError struct {
	Order int
	Beta  float64
}

func (e *NumericalBreakdownError) Error() string {
	return fmt.Sprintf("arnoldi: numerical breakdown at order %d (beta=%g)", e.Order, e.Beta)
}
