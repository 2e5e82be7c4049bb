package operator

import (
	"fmt"
	"sync/atomic"
)

// LinearOperator is the capability every solver needs at minimum: the
// operator dimension and the matrix-vector product y <- A*x. Apply must not
// mutate x and must fully write y; implementations are expected to be a
// pure function of x with respect to any state observable by the caller.
type LinearOperator interface {
	// Rows returns n, the operator dimension.
	Rows() int

	// Apply computes y <- A*x. len(x) and len(y) must equal Rows().
	Apply(x, y []float64) error
}

// ShiftSolver extends LinearOperator with the shift-and-invert capability:
// SetShift fixes sigma, and ApplyShiftSolve computes y <- (A - sigma*I)^-1*x
// against the most recently set shift.
type ShiftSolver interface {
	LinearOperator

	// SetShift fixes the spectral-transformation shift sigma. Implementations
	// typically refactor (A - sigma*I) here so ApplyShiftSolve is cheap.
	SetShift(sigma float64) error

	// ApplyShiftSolve computes y <- (A - sigma*I)^-1 * x using the shift from
	// the most recent SetShift call. Returns ErrNoShiftSet if SetShift was
	// never called.
	ApplyShiftSolve(x, y []float64) error
}

// CountingOperator wraps a LinearOperator and counts every Apply call. The
// eigs driver always wraps the user-supplied operator in one of these so
// that num_operations() is accurate regardless of which adapter the caller
// chose, without requiring every adapter to implement its own counter.
type CountingOperator struct {
	inner LinearOperator
	count int64
}

// NewCountingOperator wraps inner for call counting.
func NewCountingOperator(inner LinearOperator) *CountingOperator {
	return &CountingOperator{inner: inner}
}

// Rows delegates to the wrapped operator.
func (c *CountingOperator) Rows() int {
	return c.inner.Rows()
}

// Apply delegates to the wrapped operator and increments the call counter
// before returning, so a failed Apply still counts as an attempted use of A.
func (c *CountingOperator) Apply(x, y []float64) error {
	atomic.AddInt64(&c.count, 1)
	if err := c.inner.Apply(x, y); err != nil {
		return fmt.Errorf("CountingOperator.Apply: %w", err)
	}

	return nil
}

// Count returns the number of Apply calls observed so far.
func (c *CountingOperator) Count() int64 {
	return atomic.LoadInt64(&c.count)
}

// Inner returns the wrapped operator, for adapters that need to reach a
// capability beyond LinearOperator (e.g. casting to ShiftSolver).
func (c *CountingOperator) Inner() LinearOperator {
	return c.inner
}
