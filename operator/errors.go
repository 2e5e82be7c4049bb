package operator

import "errors"

var (
	// ErrDimensionMismatch indicates an operand vector's length does not
	// match the operator's declared Rows().
	ErrDimensionMismatch = errors.New("operator: dimension mismatch")

	// ErrNonSquare indicates a square operator was required (shift-solve,
	// dense/CSR construction) but the backing matrix was not square.
	ErrNonSquare = errors.New("operator: matrix is not square")

	// ErrSingular indicates (A - sigma*I) had a numerically zero pivot
	// during LU factorization in DenseRealShiftSolve.SetShift; sigma is
	// too close to an exact eigenvalue of A for real-arithmetic shift-solve.
	ErrSingular = errors.New("operator: singular shifted matrix")

	// ErrNoShiftSet indicates ApplyShiftSolve was called before SetShift.
	ErrNoShiftSet = errors.New("operator: shift not set")
)
