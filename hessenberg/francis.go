package hessenberg

import (
	"fmt"
	"math"

	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/tol"
)

// householder3 is a 3-vector Householder reflector u with P = I - 2*u*u^T.
// A 2-vector reflector (the terminal step of a bulge chase) is represented
// with u2 == 0; identity marks a reflector that was replaced by a no-op
// because its defining vector's norm fell below the near-zero threshold.
type householder3 struct {
	u0, u1, u2 float64
	identity   bool
}

// computeReflector builds the Householder vector for (x1, x2, x3), using
// the sign convention rho = -sign(x1), x1' = x1 - rho*||x|| (equivalently
// x1' = x1 + sign(x1)*||x||), normalized to unit length. A reflector whose
// resulting norm falls at or below the near-zero threshold is identity.
func computeReflector(x1, x2, x3 float64) householder3 {
	tmp := x2*x2 + x3*x3
	norm0 := math.Sqrt(x1*x1 + tmp)
	x1New := x1 + signZero(x1)*norm0
	xNorm := math.Sqrt(x1New*x1New + tmp)
	if xNorm <= tol.Eps09 {
		return householder3{identity: true}
	}

	return householder3{u0: x1New / xNorm, u1: x2 / xNorm, u2: x3 / xNorm}
}

func signZero(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// applyPXBlock applies the left reflector u to h's rows [rowStart,
// rowStart+nrow) and columns [colStart, colStart+ncol): X <- X - 2*u*(u^T*X).
// nrow must be 2 or 3.
func applyPXBlock(h *matrix.Dense, rowStart, nrow, colStart, ncol int, u householder3) {
	if u.identity {
		return
	}
	sqrt2 := math.Sqrt2
	u0, u1, u2 := sqrt2*u.u0, sqrt2*u.u1, sqrt2*u.u2
	if nrow == 2 {
		for j := 0; j < ncol; j++ {
			c := colStart + j
			x0 := h.Get(rowStart, c)
			x1 := h.Get(rowStart+1, c)
			dot := u0*x0 + u1*x1
			h.Put(rowStart, c, x0-dot*u0)
			h.Put(rowStart+1, c, x1-dot*u1)
		}
		return
	}
	for j := 0; j < ncol; j++ {
		c := colStart + j
		x0 := h.Get(rowStart, c)
		x1 := h.Get(rowStart+1, c)
		x2 := h.Get(rowStart+2, c)
		dot := u0*x0 + u1*x1 + u2*x2
		h.Put(rowStart, c, x0-dot*u0)
		h.Put(rowStart+1, c, x1-dot*u1)
		h.Put(rowStart+2, c, x2-dot*u2)
	}
}

// applyXPBlock applies the right reflector u to h's rows [rowStart,
// rowStart+nrow) and columns [colStart, colStart+ncol): X <- X - 2*(X*u)*u^T.
// ncol must be 2 or 3.
func applyXPBlock(h *matrix.Dense, rowStart, nrow, colStart, ncol int, u householder3) {
	if u.identity {
		return
	}
	sqrt2 := math.Sqrt2
	u0, u1, u2 := sqrt2*u.u0, sqrt2*u.u1, sqrt2*u.u2
	if ncol == 2 {
		for i := 0; i < nrow; i++ {
			r := rowStart + i
			x0 := h.Get(r, colStart)
			x1 := h.Get(r, colStart+1)
			dot := u0*x0 + u1*x1
			h.Put(r, colStart, x0-dot*u0)
			h.Put(r, colStart+1, x1-dot*u1)
		}
		return
	}
	for i := 0; i < nrow; i++ {
		r := rowStart + i
		x0 := h.Get(r, colStart)
		x1 := h.Get(r, colStart+1)
		x2 := h.Get(r, colStart+2)
		dot := u0*x0 + u1*x1 + u2*x2
		h.Put(r, colStart, x0-dot*u0)
		h.Put(r, colStart+1, x1-dot*u1)
		h.Put(r, colStart+2, x2-dot*u2)
	}
}

// applyPXVec applies the left reflector u to x[0], x[1] and, when u carries
// a nonzero third component and x has a third entry, x[2] — the vector
// analogue of applyPXBlock used by ApplyQtY on the tracked basis vector.
func applyPXVec(x []float64, u householder3) {
	if u.identity {
		return
	}
	has3 := len(x) > 2 && math.Abs(u.u2) > tol.Eps09
	dot := x[0]*u.u0 + x[1]*u.u1
	if has3 {
		dot += x[2] * u.u2
	}
	dot *= 2
	x[0] -= dot * u.u0
	x[1] -= dot * u.u1
	if has3 {
		x[2] -= dot * u.u2
	}
}

// DoubleShiftQR implements Francis's implicit double-shift bulge chase: for
// a real (s, t) = (mu+conj(mu), mu*conj(mu)) pair it produces the same
// action as two consecutive single real shifts at mu and conj(mu), entirely
// in real arithmetic, as a product of 3-vector Householder reflectors.
type DoubleShiftQR struct {
	n    int
	h    *matrix.Dense
	u    []householder3
	s, t float64
	done bool
}

// NewDoubleShiftQR allocates a sweep for n×n matrices.
func NewDoubleShiftQR(n int) (*DoubleShiftQR, error) {
	if n < 1 {
		return nil, fmt.Errorf("NewDoubleShiftQR: %w", ErrTooSmall)
	}
	h, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("NewDoubleShiftQR: %w", err)
	}

	return &DoubleShiftQR{n: n, h: h, u: make([]householder3, n)}, nil
}

// Compute performs the bulge chase against hIn for shift invariants (s, t).
// hIn is copied, not mutated. Unreduced blocks are found by zeroing
// subdiagonal entries at or below the near-zero threshold and split there;
// each block of order >= 3 gets a full chase, blocks of order 1 or 2
// contribute identity reflectors per step 4.3.6.
func (q *DoubleShiftQR) Compute(hIn *matrix.Dense, s, t float64) error {
	if err := matrix.ValidateSquare(hIn); err != nil {
		return fmt.Errorf("DoubleShiftQR.Compute: %w", err)
	}
	if hIn.Rows() != q.n {
		return fmt.Errorf("DoubleShiftQR.Compute: %w", ErrDimensionMismatch)
	}
	n := q.n

	// Stage 1: seed the working copy with the upper triangle plus subdiagonal.
	for i := 0; i < n; i++ {
		row := q.h.RowView(i)
		for j := 0; j < n; j++ {
			row[j] = 0
		}
		lo := i - 1
		if lo < 0 {
			lo = 0
		}
		for j := lo; j < n; j++ {
			row[j] = hIn.Get(i, j)
		}
	}

	// Stage 2: split into unreduced diagonal blocks.
	zeroInd := []int{0}
	for i := 1; i < n-1; i++ {
		if math.Abs(q.h.Get(i, i-1)) <= tol.Eps09 {
			q.h.Put(i, i-1, 0)
			zeroInd = append(zeroInd, i)
		}
	}
	zeroInd = append(zeroInd, n)

	// Stage 3: chase each block, then propagate its reflectors to the
	// columns right of and the rows above the block.
	q.s, q.t = s, t
	for k := 0; k < len(zeroInd)-1; k++ {
		start := zeroInd[k]
		end := zeroInd[k+1] - 1
		size := end - start + 1
		q.computeReflectorsFromBlock(start, size)

		if end < n-1 && size >= 3 {
			for j := start; j < end; j++ {
				rowCount := min(3, end-j+1)
				applyPXBlock(q.h, j, rowCount, end+1, n-1-end, q.u[j])
			}
		}
		if start > 0 && size >= 3 {
			for j := start; j < end; j++ {
				colCount := min(3, end-j+1)
				applyXPBlock(q.h, 0, start, j, colCount, q.u[j])
			}
		}
	}

	q.done = true

	return nil
}

// computeReflectorsFromBlock builds and applies the bulge-chase reflectors
// for the unreduced diagonal block of order size starting at (start, start).
func (q *DoubleShiftQR) computeReflectorsFromBlock(start, size int) {
	switch {
	case size == 1:
		q.u[start] = householder3{identity: true}
		return
	case size == 2:
		q.u[start] = householder3{identity: true}
		q.u[start+1] = householder3{identity: true}
		return
	}

	x00 := q.h.Get(start, start)
	x01 := q.h.Get(start, start+1)
	x10 := q.h.Get(start+1, start)
	x11 := q.h.Get(start+1, start+1)
	x21 := q.h.Get(start+2, start+1)

	v0 := x00*(x00-q.s) + x01*x10 + q.t
	v1 := x10 * (x00 + x11 - q.s)
	v2 := x21 * x10
	q.u[start] = computeReflector(v0, v1, v2)
	applyPXBlock(q.h, start, 3, start, size, q.u[start])
	applyXPBlock(q.h, start, min(size, 4), start, 3, q.u[start])

	for i := 1; i < size-2; i++ {
		r := start + i
		xi0 := q.h.Get(r, r-1)
		xi1 := q.h.Get(r+1, r-1)
		xi2 := q.h.Get(r+2, r-1)
		q.u[r] = computeReflector(xi0, xi1, xi2)
		applyPXBlock(q.h, r, 3, r-1, size-i+1, q.u[r])
		applyXPBlock(q.h, start, min(size, i+4), r, 3, q.u[r])
	}

	last := start + size - 2
	xa := q.h.Get(last, last-1)
	xb := q.h.Get(last+1, last-1)
	q.u[last] = computeReflector(xa, xb, 0)
	q.u[start+size-1] = householder3{identity: true}
	applyPXBlock(q.h, last, 2, last-1, 3, q.u[last])
	applyXPBlock(q.h, start, size, last, 2, q.u[last])
}

// MatrixQtHQ returns Qᵀ*H*Q, the new Hessenberg matrix after the chase.
func (q *DoubleShiftQR) MatrixQtHQ() (*matrix.Dense, error) {
	if !q.done {
		return nil, fmt.Errorf("DoubleShiftQR.MatrixQtHQ: %w", ErrNotComputed)
	}
	out, err := matrix.NewDense(q.n, q.n)
	if err != nil {
		return nil, fmt.Errorf("DoubleShiftQR.MatrixQtHQ: %w", err)
	}
	if err := out.CopyFrom(q.h); err != nil {
		return nil, fmt.Errorf("DoubleShiftQR.MatrixQtHQ: %w", err)
	}

	return out, nil
}

// ApplyQtY updates y <- Qᵀ*y in place. Q = P0*P1*...*P(n-2), so Qᵀy is
// applied as P(n-2)*...*P1*P0*y, which this computes by applying P0 first
// and walking forward, since each P_i only touches y[i:i+3).
func (q *DoubleShiftQR) ApplyQtY(y []float64) error {
	if !q.done {
		return fmt.Errorf("DoubleShiftQR.ApplyQtY: %w", ErrNotComputed)
	}
	if len(y) != q.n {
		return fmt.Errorf("DoubleShiftQR.ApplyQtY: %w", ErrDimensionMismatch)
	}
	for i := 0; i < q.n-1; i++ {
		applyPXVec(y[i:], q.u[i])
	}

	return nil
}

// ApplyYQ updates y <- y*Q in place, where y has q.n columns. Q = P0*P1*...,
// so YQ is applied by walking the reflectors in the same forward order.
func (q *DoubleShiftQR) ApplyYQ(y *matrix.Dense) error {
	if !q.done {
		return fmt.Errorf("DoubleShiftQR.ApplyYQ: %w", ErrNotComputed)
	}
	if y.Cols() != q.n {
		return fmt.Errorf("DoubleShiftQR.ApplyYQ: %w", ErrDimensionMismatch)
	}
	nrow := y.Rows()
	for i := 0; i < q.n-2; i++ {
		applyXPBlock(y, 0, nrow, i, 3, q.u[i])
	}
	if q.n >= 2 {
		applyXPBlock(y, 0, nrow, q.n-2, 2, q.u[q.n-2])
	}

	return nil
}
