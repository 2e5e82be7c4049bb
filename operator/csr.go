package operator

import "fmt"

// CSROperator is a sparse LinearOperator over a compressed-sparse-row
// matrix: Values holds the nonzeros row by row, ColIndex holds each
// nonzero's column, and RowPtr[i]:RowPtr[i+1] slices Values/ColIndex for
// row i. This is the canonical bridge between "A materialized as a sparse
// matrix" and "A supplied as an abstract operator" that large deployments
// actually use — the dense adapter does not scale to the n the method is
// meant for.
type CSROperator struct {
	n        int
	values   []float64
	colIndex []int
	rowPtr   []int
}

// NewCSROperator builds a CSROperator over an n×n matrix from its CSR
// triple. rowPtr must have length n+1; the caller owns the slices and must
// not mutate them afterwards.
func NewCSROperator(n int, values []float64, colIndex, rowPtr []int) (*CSROperator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewCSROperator: %w", ErrNonSquare)
	}
	if len(rowPtr) != n+1 {
		return nil, fmt.Errorf("NewCSROperator: %w", ErrDimensionMismatch)
	}
	if len(values) != len(colIndex) {
		return nil, fmt.Errorf("NewCSROperator: %w", ErrDimensionMismatch)
	}

	return &CSROperator{n: n, values: values, colIndex: colIndex, rowPtr: rowPtr}, nil
}

// Rows returns A's dimension.
func (c *CSROperator) Rows() int {
	return c.n
}

// Apply computes y <- A*x by walking each row's nonzero run.
// Complexity: O(nnz), not O(n²).
func (c *CSROperator) Apply(x, y []float64) error {
	if len(x) != c.n || len(y) != c.n {
		return fmt.Errorf("CSROperator.Apply: %w", ErrDimensionMismatch)
	}
	for i := 0; i < c.n; i++ {
		var acc float64
		for idx := c.rowPtr[i]; idx < c.rowPtr[i+1]; idx++ {
			acc += c.values[idx] * x[c.colIndex[idx]]
		}
		y[i] = acc
	}

	return nil
}
