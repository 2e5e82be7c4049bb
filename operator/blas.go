package operator

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// BLASDenseOperator wraps a blas64.General and computes the matrix-vector
// product via blas64.Gemv instead of a hand-rolled row loop. It exists for
// large dense operators where a tuned BLAS kernel matters; DenseOperator
// stays the default because it needs no gonum import at the call site.
type BLASDenseOperator struct {
	a blas64.General
}

// NewBLASDenseOperator wraps a. a must be square.
func NewBLASDenseOperator(a blas64.General) (*BLASDenseOperator, error) {
	if a.Rows != a.Cols {
		return nil, fmt.Errorf("NewBLASDenseOperator: %w", ErrNonSquare)
	}

	return &BLASDenseOperator{a: a}, nil
}

// Rows returns A's dimension.
func (b *BLASDenseOperator) Rows() int {
	return b.a.Rows
}

// Apply computes y <- A*x via blas64.Gemv(NoTrans, 1, A, x, 0, y).
func (b *BLASDenseOperator) Apply(x, y []float64) error {
	n := b.a.Rows
	if len(x) != n || len(y) != n {
		return fmt.Errorf("BLASDenseOperator.Apply: %w", ErrDimensionMismatch)
	}
	xv := blas64.Vector{N: n, Data: x, Inc: 1}
	yv := blas64.Vector{N: n, Data: y, Inc: 1}
	blas64.Gemv(blas.NoTrans, 1, b.a, xv, 0, yv)

	return nil
}
