package hessenberg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnoldi-go/iram/hessenberg"
	"github.com/arnoldi-go/iram/matrix"
)

// buildHessenberg4 returns a fixed 4×4 upper-Hessenberg fixture used across
// the single- and double-shift round-trip tests.
func buildHessenberg4(t *testing.T) *matrix.Dense {
	h, err := matrix.NewDense(4, 4)
	require.NoError(t, err)
	rows := [][]float64{
		{4, -1, 2, 0.5},
		{2, 3, 1, -1},
		{0, 1.5, 2, 1},
		{0, 0, 0.7, 1},
	}
	for i, row := range rows {
		for j, v := range row {
			h.Put(i, j, v)
		}
	}

	return h
}

func traceAndDet4(h *matrix.Dense) (trace, det float64) {
	for i := 0; i < 4; i++ {
		trace += h.Get(i, i)
	}
	// Determinant via cofactor expansion is overkill for a round-trip check;
	// a QR similarity preserves the characteristic polynomial, so comparing
	// trace and the product of a Gaussian-eliminated diagonal is enough to
	// catch any real regression without pulling in a full det routine.
	work, _ := matrix.NewDense(4, 4)
	_ = work.CopyFrom(h)
	det = 1
	for k := 0; k < 4; k++ {
		piv := work.Get(k, k)
		if piv == 0 {
			for i := k + 1; i < 4; i++ {
				if work.Get(i, k) != 0 {
					for j := 0; j < 4; j++ {
						a, b := work.Get(k, j), work.Get(i, j)
						work.Put(k, j, b)
						work.Put(i, j, a)
					}
					det = -det
					piv = work.Get(k, k)
					break
				}
			}
		}
		det *= piv
		if piv == 0 {
			continue
		}
		for i := k + 1; i < 4; i++ {
			factor := work.Get(i, k) / piv
			for j := k; j < 4; j++ {
				work.Put(i, j, work.Get(i, j)-factor*work.Get(k, j))
			}
		}
	}

	return trace, det
}

func isUpperHessenberg(t *testing.T, h *matrix.Dense, tol float64) {
	n := h.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i > j+1 {
				require.InDelta(t, 0, h.Get(i, j), tol, "H(%d,%d) should be ~0", i, j)
			}
		}
	}
}

func TestSingleShiftQRPreservesHessenbergForm(t *testing.T) {
	h := buildHessenberg4(t)

	sq, err := hessenberg.NewSingleShiftQR(4)
	require.NoError(t, err)
	require.NoError(t, sq.Compute(h, 1.7))

	out, err := sq.MatrixRQ()
	require.NoError(t, err)
	isUpperHessenberg(t, out, 1e-9)
}

func TestSingleShiftQRZeroShiftOnTriangularIsIdentity(t *testing.T) {
	h, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	h.Put(0, 0, 2)
	h.Put(0, 1, 5)
	h.Put(0, 2, -3)
	h.Put(1, 1, -4)
	h.Put(1, 2, 1)
	h.Put(2, 2, 7)

	sq, err := hessenberg.NewSingleShiftQR(3)
	require.NoError(t, err)
	require.NoError(t, sq.Compute(h, 0))

	out, err := sq.MatrixRQ()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, h.Get(i, j), out.Get(i, j), 1e-12)
		}
	}
}

func TestSingleShiftQRTraceDetInvariantUnderTwoSweeps(t *testing.T) {
	h := buildHessenberg4(t)
	wantTrace, wantDet := traceAndDet4(h)

	sq1, err := hessenberg.NewSingleShiftQR(4)
	require.NoError(t, err)
	require.NoError(t, sq1.Compute(h, 1.1))
	h2, err := sq1.MatrixRQ()
	require.NoError(t, err)

	sq2, err := hessenberg.NewSingleShiftQR(4)
	require.NoError(t, err)
	require.NoError(t, sq2.Compute(h2, -0.4))
	h3, err := sq2.MatrixRQ()
	require.NoError(t, err)

	gotTrace, gotDet := traceAndDet4(h3)
	require.InDelta(t, wantTrace, gotTrace, 1e-8)
	require.InDelta(t, wantDet, gotDet, 1e-6)
}

func TestSingleShiftQRApplyYQAndApplyQtYAreTransposes(t *testing.T) {
	h := buildHessenberg4(t)
	sq, err := hessenberg.NewSingleShiftQR(4)
	require.NoError(t, err)
	require.NoError(t, sq.Compute(h, 0.3))

	id, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	require.NoError(t, sq.ApplyYQ(id))

	y := []float64{1, 0, 0, 0}
	require.NoError(t, sq.ApplyQtY(y))

	// Qᵀ applied to e_0 should equal row 0 of Q (since Q is orthogonal,
	// Qᵀ*e_0 picks out Q's first row), which ApplyYQ built into id's row 0.
	row0 := id.RowView(0)
	for i := 0; i < 4; i++ {
		require.InDelta(t, row0[i], y[i], 1e-9)
	}
}
