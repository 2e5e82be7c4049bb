package operator

import "fmt"

// FuncOperator adapts a bare matrix-vector kernel to LinearOperator, for
// callers who already have a matrix-free Apply and do not want to define a
// named type around it.
type FuncOperator struct {
	n     int
	apply func(x, y []float64) error
}

// NewFuncOperator wraps apply as an n-dimensional LinearOperator.
func NewFuncOperator(n int, apply func(x, y []float64) error) (*FuncOperator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewFuncOperator: %w", ErrNonSquare)
	}
	if apply == nil {
		return nil, fmt.Errorf("NewFuncOperator: apply func must not be nil")
	}

	return &FuncOperator{n: n, apply: apply}, nil
}

// Rows returns the configured dimension.
func (f *FuncOperator) Rows() int {
	return f.n
}

// Apply delegates to the wrapped function.
func (f *FuncOperator) Apply(x, y []float64) error {
	if len(x) != f.n || len(y) != f.n {
		return fmt.Errorf("FuncOperator.Apply: %w", ErrDimensionMismatch)
	}

	return f.apply(x, y)
}
