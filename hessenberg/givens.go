package hessenberg

import (
	"fmt"
	"math"

	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/tol"
)

// givensRot is a single plane rotation acting on rows/columns (i, i+1):
//
//	[ c  s] applied from the left zeroes the row-(i+1) entry below row i.
//	[-s  c]
//
// identity is true when the rotation was skipped because both entries
// being combined were already negligible (c, s carry the placeholder
// values 1, 0 in that case, which apply_* treat as a true no-op).
type givensRot struct {
	c, s     float64
	identity bool
}

// SingleShiftQR computes H - mu*I = Q*R for an m×m upper-Hessenberg H and
// a real shift mu, via m-1 Givens rotations annihilating the subdiagonal
// in order, and exposes R*Q, Q and Qᵀ applications.
type SingleShiftQR struct {
	m    int
	r    *matrix.Dense // R after Compute; becomes scratch for MatrixRQ
	rot  []givensRot   // rot[i] eliminates row i+1 of column i
	mu   float64
	done bool
}

// NewSingleShiftQR allocates a sweep for m×m matrices.
func NewSingleShiftQR(m int) (*SingleShiftQR, error) {
	if m < 2 {
		return nil, fmt.Errorf("NewSingleShiftQR: %w", ErrTooSmall)
	}

	return &SingleShiftQR{m: m, rot: make([]givensRot, m-1)}, nil
}

// Compute factors h - mu*I = Q*R in place over an internal copy of h. h is
// not mutated.
func (q *SingleShiftQR) Compute(h *matrix.Dense, mu float64) error {
	if err := matrix.ValidateSquare(h); err != nil {
		return fmt.Errorf("SingleShiftQR.Compute: %w", err)
	}
	if h.Rows() != q.m {
		return fmt.Errorf("SingleShiftQR.Compute: %w", ErrDimensionMismatch)
	}

	r, err := matrix.NewDense(q.m, q.m)
	if err != nil {
		return fmt.Errorf("SingleShiftQR.Compute: %w", err)
	}
	for i := 0; i < q.m; i++ {
		copy(r.RowView(i), h.RowView(i))
	}
	for i := 0; i < q.m; i++ {
		r.Put(i, i, r.Get(i, i)-mu)
	}

	for i := 0; i < q.m-1; i++ {
		a := r.Get(i, i)
		b := r.Get(i+1, i)
		rot := makeGivens(a, b)
		q.rot[i] = rot
		if rot.identity {
			continue
		}
		applyGivensLeft(r, i, rot)
	}

	q.r = r
	q.mu = mu
	q.done = true

	return nil
}

// makeGivens builds the rotation zeroing b against a, per the near-zero
// skip rule: when a²+b² is already below the near-zero threshold the
// rotation carries no useful information and is replaced by the identity
// rather than amplifying rounding noise into c, s. r takes the sign of a,
// so c is never negative and a rotation against b == 0 is the identity.
func makeGivens(a, b float64) givensRot {
	r2 := a*a + b*b
	if r2 <= tol.Eps09 {
		return givensRot{c: 1, s: 0, identity: true}
	}
	r := math.Sqrt(r2)
	if a < 0 {
		r = -r
	}

	return givensRot{c: a / r, s: b / r}
}

// applyGivensLeft applies rot to rows i, i+1 of m across all columns.
func applyGivensLeft(m *matrix.Dense, i int, rot givensRot) {
	n := m.Cols()
	ri := m.RowView(i)
	ri1 := m.RowView(i + 1)
	for j := 0; j < n; j++ {
		x, y := ri[j], ri1[j]
		ri[j] = rot.c*x + rot.s*y
		ri1[j] = -rot.s*x + rot.c*y
	}
}

// applyGivensRightT applies rot-transpose to columns i, i+1 of m across all
// rows: this is the right-multiplication analogue of applyGivensLeft, used
// to build R*Q and to push the accumulated Q through V.
func applyGivensRightT(m *matrix.Dense, i int, rot givensRot) {
	rows := m.Rows()
	for row := 0; row < rows; row++ {
		rv := m.RowView(row)
		x, y := rv[i], rv[i+1]
		rv[i] = rot.c*x + rot.s*y
		rv[i+1] = -rot.s*x + rot.c*y
	}
}

// MatrixRQ returns R*Q + mu*I, the new Hessenberg matrix similar to the
// original H.
func (q *SingleShiftQR) MatrixRQ() (*matrix.Dense, error) {
	if !q.done {
		return nil, fmt.Errorf("SingleShiftQR.MatrixRQ: %w", ErrNotComputed)
	}
	out, err := matrix.NewDense(q.m, q.m)
	if err != nil {
		return nil, fmt.Errorf("SingleShiftQR.MatrixRQ: %w", err)
	}
	if err := out.CopyFrom(q.r); err != nil {
		return nil, fmt.Errorf("SingleShiftQR.MatrixRQ: %w", err)
	}
	for i := 0; i < q.m-1; i++ {
		if q.rot[i].identity {
			continue
		}
		applyGivensRightT(out, i, q.rot[i])
	}
	for i := 0; i < q.m; i++ {
		out.Put(i, i, out.Get(i, i)+q.mu)
	}

	return out, nil
}

// ApplyYQ updates y <- y*Q in place. y must have q.m columns; its row count
// is the caller's basis dimension n and is not otherwise constrained.
func (q *SingleShiftQR) ApplyYQ(y *matrix.Dense) error {
	if !q.done {
		return fmt.Errorf("SingleShiftQR.ApplyYQ: %w", ErrNotComputed)
	}
	if y.Cols() != q.m {
		return fmt.Errorf("SingleShiftQR.ApplyYQ: %w", ErrDimensionMismatch)
	}
	for i := 0; i < q.m-1; i++ {
		if q.rot[i].identity {
			continue
		}
		applyGivensRightT(y, i, q.rot[i])
	}

	return nil
}

// ApplyQtY updates y <- Qᵀ*y in place. len(y) must equal q.m.
func (q *SingleShiftQR) ApplyQtY(y []float64) error {
	if !q.done {
		return fmt.Errorf("SingleShiftQR.ApplyQtY: %w", ErrNotComputed)
	}
	if len(y) != q.m {
		return fmt.Errorf("SingleShiftQR.ApplyQtY: %w", ErrDimensionMismatch)
	}
	for i := 0; i < q.m-1; i++ {
		rot := q.rot[i]
		if rot.identity {
			continue
		}
		a, b := y[i], y[i+1]
		y[i] = rot.c*a + rot.s*b
		y[i+1] = -rot.s*a + rot.c*b
	}

	return nil
}
