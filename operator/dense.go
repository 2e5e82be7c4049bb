package operator

import (
	"fmt"

	"github.com/arnoldi-go/iram/matrix"
)

// DenseOperator wraps a *matrix.Dense and implements LinearOperator by
// computing y <- A*x as n row-major dot products.
type DenseOperator struct {
	a *matrix.Dense
}

// NewDenseOperator wraps a. a must be square.
func NewDenseOperator(a *matrix.Dense) (*DenseOperator, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, fmt.Errorf("NewDenseOperator: %w", err)
	}

	return &DenseOperator{a: a}, nil
}

// Rows returns A's dimension.
func (d *DenseOperator) Rows() int {
	return d.a.Rows()
}

// Apply computes y <- A*x by row-major dot products.
func (d *DenseOperator) Apply(x, y []float64) error {
	n := d.a.Rows()
	if len(x) != n || len(y) != n {
		return fmt.Errorf("DenseOperator.Apply: %w", ErrDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		row := d.a.RowView(i)
		var acc float64
		for j := 0; j < n; j++ {
			acc += row[j] * x[j]
		}
		y[i] = acc
	}

	return nil
}

// DenseRealShiftSolve wraps a *matrix.Dense and implements ShiftSolver by
// factoring (A - sigma*I) with partial-pivot LU once per SetShift, then
// solving by forward/back substitution on every ApplyShiftSolve. The LU
// factorization is kept in-place in a scratch copy of A so repeated shifts
// never disturb the caller's original matrix.
type DenseRealShiftSolve struct {
	a      *matrix.Dense
	lu     []float64 // n*n scratch, row-major, overwritten per SetShift
	piv    []int     // row permutation from partial pivoting
	n      int
	hasLU  bool
	scratch []float64 // reused solve workspace
}

// NewDenseRealShiftSolve wraps a. a must be square.
func NewDenseRealShiftSolve(a *matrix.Dense) (*DenseRealShiftSolve, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, fmt.Errorf("NewDenseRealShiftSolve: %w", err)
	}
	n := a.Rows()

	return &DenseRealShiftSolve{
		a:       a,
		lu:      make([]float64, n*n),
		piv:     make([]int, n),
		n:       n,
		scratch: make([]float64, n),
	}, nil
}

// Rows returns A's dimension.
func (d *DenseRealShiftSolve) Rows() int {
	return d.n
}

// Apply computes y <- A*x, independent of any shift state.
func (d *DenseRealShiftSolve) Apply(x, y []float64) error {
	n := d.n
	if len(x) != n || len(y) != n {
		return fmt.Errorf("DenseRealShiftSolve.Apply: %w", ErrDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		row := d.a.RowView(i)
		var acc float64
		for j := 0; j < n; j++ {
			acc += row[j] * x[j]
		}
		y[i] = acc
	}

	return nil
}

// SetShift copies A into the scratch buffer with sigma subtracted from the
// diagonal, then factors it in place via partial-pivot LU.
func (d *DenseRealShiftSolve) SetShift(sigma float64) error {
	n := d.n
	for i := 0; i < n; i++ {
		row := d.a.RowView(i)
		copy(d.lu[i*n:i*n+n], row)
		d.lu[i*n+i] -= sigma
	}

	// Stage: partial-pivot LU factorization in place, Doolittle form.
	for k := 0; k < n; k++ {
		// Find pivot row.
		p := k
		best := abs64(d.lu[k*n+k])
		for i := k + 1; i < n; i++ {
			v := abs64(d.lu[i*n+k])
			if v > best {
				best = v
				p = i
			}
		}
		d.piv[k] = p
		if p != k {
			swapRows(d.lu, n, k, p)
		}
		pivotVal := d.lu[k*n+k]
		if abs64(pivotVal) < 1e-300 {
			d.hasLU = false
			return fmt.Errorf("DenseRealShiftSolve.SetShift: %w", ErrSingular)
		}
		for i := k + 1; i < n; i++ {
			factor := d.lu[i*n+k] / pivotVal
			d.lu[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				d.lu[i*n+j] -= factor * d.lu[k*n+j]
			}
		}
	}
	d.hasLU = true

	return nil
}

// ApplyShiftSolve computes y <- (A - sigma*I)^-1*x against the most recent
// SetShift, via forward substitution (Ly=Pb) then back substitution (Ux=y).
func (d *DenseRealShiftSolve) ApplyShiftSolve(x, y []float64) error {
	if !d.hasLU {
		return fmt.Errorf("DenseRealShiftSolve.ApplyShiftSolve: %w", ErrNoShiftSet)
	}
	n := d.n
	if len(x) != n || len(y) != n {
		return fmt.Errorf("DenseRealShiftSolve.ApplyShiftSolve: %w", ErrDimensionMismatch)
	}

	b := d.scratch
	copy(b, x)
	applyPivots(b, d.piv)

	// Forward substitution: solve L*y = Pb, L unit lower triangular.
	for i := 0; i < n; i++ {
		var acc float64
		for j := 0; j < i; j++ {
			acc += d.lu[i*n+j] * y[j]
		}
		y[i] = b[i] - acc
	}
	// Back substitution: solve U*x = y, U upper triangular.
	for i := n - 1; i >= 0; i-- {
		var acc float64
		for j := i + 1; j < n; j++ {
			acc += d.lu[i*n+j] * y[j]
		}
		y[i] = (y[i] - acc) / d.lu[i*n+i]
	}

	return nil
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

func swapRows(m []float64, n, a, b int) {
	if a == b {
		return
	}
	for j := 0; j < n; j++ {
		m[a*n+j], m[b*n+j] = m[b*n+j], m[a*n+j]
	}
}

// applyPivots permutes b in place according to the sequence of row swaps
// recorded in piv (piv[k] is the row swapped with k during elimination).
func applyPivots(b []float64, piv []int) {
	for k := 0; k < len(piv); k++ {
		p := piv[k]
		if p != k {
			b[k], b[p] = b[p], b[k]
		}
	}
}
