package linalg

import (
	"gonum.org/v1/gonum/floats"
)

// Dot returns the inner product <x, y>. Panics if len(x) != len(y), matching
// gonum/floats' own contract; callers on the hot path are expected to have
// already matched lengths by construction (V columns, H columns).
// Complexity: O(n).
func Dot(x, y []float64) float64 {
	return floats.Dot(x, y)
}

// Norm returns the Euclidean (L2) norm of x.
// Complexity: O(n).
func Norm(x []float64) float64 {
	return floats.Norm(x, 2)
}

// Scale multiplies every element of x by c in place.
// Complexity: O(n).
func Scale(c float64, x []float64) {
	floats.Scale(c, x)
}

// Axpy performs dst += alpha*x in place.
// Complexity: O(n).
func Axpy(dst []float64, alpha float64, x []float64) {
	floats.AddScaled(dst, alpha, x)
}

// AxpyTo computes dst = y + alpha*x, writing into dst (dst may alias y).
// Complexity: O(n).
func AxpyTo(dst, y []float64, alpha float64, x []float64) {
	floats.AddScaledTo(dst, y, alpha, x)
}

// Sub computes dst -= x in place, i.e. dst = dst - x.
// Complexity: O(n).
func Sub(dst, x []float64) {
	floats.SubTo(dst, dst, x)
}

// Copy copies src into dst, allocating dst when it is nil or too short, and
// returns the (possibly reallocated) destination slice.
// Complexity: O(n).
func Copy(dst, src []float64) []float64 {
	if cap(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)

	return dst
}

// MatVecT computes h = Vᵀ*w for the first ncols columns of the n×m Dense
// matrix v, i.e. h[j] = <v[:,j], w> for j in [0, ncols). v is addressed via
// its RowView so the inner loop stays a single pass over w per row, summing
// into every h[j] at once — the classical-Gram-Schmidt projection used by
// the Arnoldi extension step.
// Complexity: O(n*ncols).
func MatVecT(v RowViewer, ncols int, w []float64, h []float64) {
	n := v.Rows()
	for j := 0; j < ncols; j++ {
		h[j] = 0
	}
	for i := 0; i < n; i++ {
		row := v.RowView(i)
		wi := w[i]
		for j := 0; j < ncols; j++ {
			h[j] += row[j] * wi
		}
	}
}

// MatVecSub computes f = w - V(:,0:ncols)*h in place over f, i.e. the
// classical Gram-Schmidt residual after projecting w onto the first ncols
// columns of v.
// Complexity: O(n*ncols).
func MatVecSub(v RowViewer, ncols int, w, h, f []float64) {
	n := v.Rows()
	for i := 0; i < n; i++ {
		row := v.RowView(i)
		var acc float64
		for j := 0; j < ncols; j++ {
			acc += row[j] * h[j]
		}
		f[i] = w[i] - acc
	}
}

// RowViewer is satisfied by *matrix.Dense; it is declared here (instead of
// imported from matrix) to keep linalg free of a dependency on matrix,
// avoiding an import cycle since matrix has no reason to depend on linalg.
type RowViewer interface {
	Rows() int
	RowView(row int) []float64
}
