package ritz

import (
	"fmt"
	"math"

	"github.com/arnoldi-go/iram/hessenberg"
	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/tol"
)

// sweeper is satisfied by both hessenberg.SingleShiftQR and
// hessenberg.DoubleShiftQR; Schur uses it to propagate one sweep's
// orthogonal transform across the parts of the working matrix the sweep
// itself did not touch (the columns right of, and rows above, the active
// deflation window).
type sweeper interface {
	ApplyYQ(y *matrix.Dense) error
	ApplyQtY(y []float64) error
}

// Schur reduces the m×m upper-Hessenberg h to real Schur form t via
// repeated single/double-shift QR sweeps with Wilkinson shifts drawn from
// the trailing 2×2 of the active deflation window, accumulating the
// orthogonal similarity transform in z (t = zᵀ*h*z). A subdiagonal entry
// is treated as a deflation point once it drops to <= Eps09*(|diag_i| +
// |diag_{i+1}|).
func Schur(h *matrix.Dense) (t, z *matrix.Dense, err error) {
	if err := matrix.ValidateSquareNonNil(h); err != nil {
		return nil, nil, fmt.Errorf("Schur: %w", err)
	}
	m := h.Rows()

	t, err = matrix.NewDense(m, m)
	if err != nil {
		return nil, nil, fmt.Errorf("Schur: %w", err)
	}
	if err := t.CopyFrom(h); err != nil {
		return nil, nil, fmt.Errorf("Schur: %w", err)
	}
	z, err = matrix.NewIdentity(m)
	if err != nil {
		return nil, nil, fmt.Errorf("Schur: %w", err)
	}

	hi := m - 1
	maxIter := 30*m + 60
	for hi > 0 && maxIter > 0 {
		maxIter--
		l := findBlockStart(t, hi)
		size := hi - l + 1
		if size <= 2 {
			hi = l - 1
			continue
		}

		block, err := extractBlock(t, l, size)
		if err != nil {
			return nil, nil, fmt.Errorf("Schur: %w", err)
		}
		mu, s, shiftT, useDouble := chooseShift(block, size)

		var sw sweeper
		var result *matrix.Dense
		if useDouble {
			dq, err := hessenberg.NewDoubleShiftQR(size)
			if err != nil {
				return nil, nil, fmt.Errorf("Schur: %w", err)
			}
			if err := dq.Compute(block, s, shiftT); err != nil {
				return nil, nil, fmt.Errorf("Schur: %w", err)
			}
			result, err = dq.MatrixQtHQ()
			if err != nil {
				return nil, nil, fmt.Errorf("Schur: %w", err)
			}
			sw = dq
		} else {
			sq, err := hessenberg.NewSingleShiftQR(size)
			if err != nil {
				return nil, nil, fmt.Errorf("Schur: %w", err)
			}
			if err := sq.Compute(block, mu); err != nil {
				return nil, nil, fmt.Errorf("Schur: %w", err)
			}
			result, err = sq.MatrixRQ()
			if err != nil {
				return nil, nil, fmt.Errorf("Schur: %w", err)
			}
			sw = sq
		}

		embedBlock(t, result, l)
		if err := propagateRight(t, sw, l, hi, m); err != nil {
			return nil, nil, fmt.Errorf("Schur: %w", err)
		}
		if err := propagateAbove(t, sw, l, hi); err != nil {
			return nil, nil, fmt.Errorf("Schur: %w", err)
		}
		if err := propagateZ(z, sw, l, size); err != nil {
			return nil, nil, fmt.Errorf("Schur: %w", err)
		}
	}

	return t, z, nil
}

// findBlockStart scans upward from hi for the first negligible subdiagonal
// entry, zeroes it, and returns the start of the resulting irreducible
// trailing block. Returns 0 if no such entry exists below hi.
func findBlockStart(t *matrix.Dense, hi int) int {
	l := hi
	for l > 0 {
		a := math.Abs(t.Get(l-1, l-1))
		d := math.Abs(t.Get(l, l))
		sub := math.Abs(t.Get(l, l-1))
		if sub <= tol.Eps09*(a+d) {
			t.Put(l, l-1, 0)
			return l
		}
		l--
	}

	return 0
}

// chooseShift picks the Wilkinson shift(s) from block's trailing 2×2. When
// the trailing 2×2's eigenvalues are real, it returns the single real shift
// closest to the bottom-right entry; otherwise it returns the (s, t) pair
// for a double-shift sweep and sets useDouble.
func chooseShift(block *matrix.Dense, size int) (mu, s, shiftT float64, useDouble bool) {
	a := block.Get(size-2, size-2)
	b := block.Get(size-2, size-1)
	c := block.Get(size-1, size-2)
	d := block.Get(size-1, size-1)
	trace := a + d
	det := a*d - b*c
	disc := trace*trace - 4*det
	if disc < 0 {
		return 0, trace, det, true
	}
	sq := math.Sqrt(disc)
	mu1 := (trace + sq) / 2
	mu2 := (trace - sq) / 2
	mu = mu1
	if math.Abs(mu2-d) < math.Abs(mu1-d) {
		mu = mu2
	}

	return mu, 0, 0, false
}

// extractBlock copies the size×size diagonal block starting at (start,
// start) out of src.
func extractBlock(src *matrix.Dense, start, size int) (*matrix.Dense, error) {
	out, err := matrix.NewDense(size, size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		copy(out.RowView(i), src.RowView(start+i)[start:start+size])
	}

	return out, nil
}

// embedBlock writes block back into dst's size×size diagonal block at
// (start, start).
func embedBlock(dst, block *matrix.Dense, start int) {
	size := block.Rows()
	for i := 0; i < size; i++ {
		copy(dst.RowView(start+i)[start:start+size], block.RowView(i))
	}
}

// propagateRight applies sw's Qᵀ, column by column, to t's rows [l, hi]
// against every column right of the active window, keeping t similar to
// the original matrix under the embedded block transform.
func propagateRight(t *matrix.Dense, sw sweeper, l, hi, m int) error {
	size := hi - l + 1
	vec := make([]float64, size)
	for c := hi + 1; c < m; c++ {
		for i := 0; i < size; i++ {
			vec[i] = t.Get(l+i, c)
		}
		if err := sw.ApplyQtY(vec); err != nil {
			return err
		}
		for i := 0; i < size; i++ {
			t.Put(l+i, c, vec[i])
		}
	}

	return nil
}

// propagateAbove applies sw's Q, on the right, to t's columns [l, hi]
// against every row above the active window.
func propagateAbove(t *matrix.Dense, sw sweeper, l, hi int) error {
	if l == 0 {
		return nil
	}
	size := hi - l + 1
	y, err := matrix.NewDense(l, size)
	if err != nil {
		return err
	}
	for i := 0; i < l; i++ {
		for j := 0; j < size; j++ {
			y.Put(i, j, t.Get(i, l+j))
		}
	}
	if err := sw.ApplyYQ(y); err != nil {
		return err
	}
	for i := 0; i < l; i++ {
		for j := 0; j < size; j++ {
			t.Put(i, l+j, y.Get(i, j))
		}
	}

	return nil
}

// propagateZ applies sw's Q, on the right, to z's columns [l, l+size).
func propagateZ(z *matrix.Dense, sw sweeper, l, size int) error {
	m := z.Rows()
	y, err := matrix.NewDense(m, size)
	if err != nil {
		return err
	}
	for i := 0; i < m; i++ {
		for j := 0; j < size; j++ {
			y.Put(i, j, z.Get(i, l+j))
		}
	}
	if err := sw.ApplyYQ(y); err != nil {
		return err
	}
	for i := 0; i < m; i++ {
		for j := 0; j < size; j++ {
			z.Put(i, l+j, y.Get(i, j))
		}
	}

	return nil
}
