package ritz

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/tol"
)

// ComplexDense is a minimal dense complex matrix, used only to hold the
// (necessarily complex, since H is real but its Ritz vectors need not be)
// eigenvector columns Eigenpairs returns.
type ComplexDense struct {
	r, c int
	data []complex128
}

// NewComplexDense allocates an r×c zero matrix.
func NewComplexDense(r, c int) *ComplexDense {
	return &ComplexDense{r: r, c: c, data: make([]complex128, r*c)}
}

// Rows returns the row count.
func (m *ComplexDense) Rows() int { return m.r }

// Cols returns the column count.
func (m *ComplexDense) Cols() int { return m.c }

// At returns the element at (i, j).
func (m *ComplexDense) At(i, j int) complex128 { return m.data[i*m.c+j] }

// Set assigns v at (i, j).
func (m *ComplexDense) Set(i, j int, v complex128) { m.data[i*m.c+j] = v }

// Eigenpairs reads the m eigenvalues off t's 1×1/2×2 diagonal blocks
// (quadratic formula for 2×2) and computes, for each, the corresponding
// eigenvector of t by back-substitution in the quasi-triangular structure,
// then left-multiplies by z to return eigenvectors of the original
// Hessenberg matrix z*t*zᵀ was reduced from.
func Eigenpairs(t, z *matrix.Dense) (values []complex128, vectors *ComplexDense, err error) {
	if err := matrix.ValidateSquareNonNil(t); err != nil {
		return nil, nil, fmt.Errorf("Eigenpairs: %w", err)
	}
	if err := matrix.ValidateSameShape(t, z); err != nil {
		return nil, nil, fmt.Errorf("Eigenpairs: %w", err)
	}
	m := t.Rows()

	blockStart, blockSize := classifyBlocks(t, m)

	values = make([]complex128, m)
	for i := 0; i < m; {
		size := blockSize[i]
		if size == 1 {
			values[i] = complex(t.Get(i, i), 0)
			i++
			continue
		}
		v1, v2 := blockEigenvalues(t, i)
		values[i], values[i+1] = v1, v2
		i += 2
	}

	rawVectors := NewComplexDense(m, m)
	for col := 0; col < m; col++ {
		y := backSubstitute(t, blockStart, blockSize, values, col, m)
		for row := 0; row < m; row++ {
			rawVectors.Set(row, col, y[row])
		}
	}

	vectors = NewComplexDense(m, m)
	for col := 0; col < m; col++ {
		for row := 0; row < m; row++ {
			var acc complex128
			for k := 0; k < m; k++ {
				acc += complex(z.Get(row, k), 0) * rawVectors.At(k, col)
			}
			vectors.Set(row, col, acc)
		}
	}
	normalizeColumns(vectors)

	return values, vectors, nil
}

// normalizeColumns scales each column of vectors to unit L2 norm. The
// back-substitution seed (y[start]=1, or (b,-a) for a 2x2 null vector)
// fixes an arbitrary norm; ConvergedMask's error estimator assumes
// unit-norm eigenvectors, so every caller needs this before testing
// convergence.
func normalizeColumns(vectors *ComplexDense) {
	rows, cols := vectors.Rows(), vectors.Cols()
	for col := 0; col < cols; col++ {
		var sumSq float64
		for row := 0; row < rows; row++ {
			sumSq += cmplx.Abs(vectors.At(row, col)) * cmplx.Abs(vectors.At(row, col))
		}
		norm := math.Sqrt(sumSq)
		if norm < tol.Eps {
			continue
		}
		for row := 0; row < rows; row++ {
			vectors.Set(row, col, vectors.At(row, col)/complex(norm, 0))
		}
	}
}

// classifyBlocks partitions [0, m) into 1×1/2×2 diagonal blocks of t by
// testing each subdiagonal entry against the near-zero threshold scaled by
// the adjoining diagonal magnitudes, the same test Schur's deflation uses.
func classifyBlocks(t *matrix.Dense, m int) (blockStart, blockSize []int) {
	blockStart = make([]int, m)
	blockSize = make([]int, m)
	i := 0
	for i < m {
		is2x2 := false
		if i+1 < m {
			sub := math.Abs(t.Get(i+1, i))
			scale := math.Abs(t.Get(i, i)) + math.Abs(t.Get(i+1, i+1))
			is2x2 = sub > tol.Eps09*scale
		}
		if is2x2 {
			blockStart[i], blockStart[i+1] = i, i
			blockSize[i], blockSize[i+1] = 2, 2
			i += 2
		} else {
			blockStart[i] = i
			blockSize[i] = 1
			i++
		}
	}

	return blockStart, blockSize
}

// blockEigenvalues returns the two eigenvalues of t's 2×2 diagonal block
// starting at i.
func blockEigenvalues(t *matrix.Dense, i int) (complex128, complex128) {
	a := t.Get(i, i)
	b := t.Get(i, i+1)
	c := t.Get(i+1, i)
	d := t.Get(i+1, i+1)
	trace := a + d
	det := a*d - b*c
	disc := trace*trace - 4*det
	if disc >= 0 {
		sq := math.Sqrt(disc)
		return complex((trace+sq)/2, 0), complex((trace-sq)/2, 0)
	}
	sq := math.Sqrt(-disc)

	return complex(trace/2, sq/2), complex(trace/2, -sq/2)
}

// backSubstitute computes the eigenvector of t (in t's own coordinates)
// for the eigenvalue stored at values[target], by solving (t -
// values[target]*I) y = 0 one diagonal block at a time, from the target's
// own block upward to block 0. Rows belonging to blocks after the target's
// stay zero, since t is block upper triangular and those blocks generically
// do not share the target's eigenvalue.
func backSubstitute(t *matrix.Dense, blockStart, blockSize []int, values []complex128, target, m int) []complex128 {
	theta := values[target]
	y := make([]complex128, m)

	start := blockStart[target]
	size := blockSize[target]
	if size == 1 {
		y[start] = 1
	} else {
		a := complex(t.Get(start, start), 0) - theta
		b := complex(t.Get(start, start+1), 0)
		c := complex(t.Get(start+1, start), 0)
		d := complex(t.Get(start+1, start+1), 0) - theta
		v0, v1 := solve2x2Null(a, b, c, d)
		y[start], y[start+1] = v0, v1
	}

	// Walk the remaining blocks upward, from the one immediately preceding
	// the target's block to block 0.
	k := start - 1
	for k >= 0 {
		kstart := blockStart[k]
		ksize := blockSize[k]

		if ksize == 1 {
			var rhs complex128
			row := t.RowView(kstart)
			for c := kstart + 1; c < m; c++ {
				if y[c] != 0 {
					rhs -= complex(row[c], 0) * y[c]
				}
			}
			diag := complex(t.Get(kstart, kstart), 0) - theta
			if diag == 0 {
				diag = complex(tol.Eps09, 0)
			}
			y[kstart] = rhs / diag
			k = kstart - 1
			continue
		}

		var rhs0, rhs1 complex128
		row0 := t.RowView(kstart)
		row1 := t.RowView(kstart + 1)
		for c := kstart + 2; c < m; c++ {
			if y[c] != 0 {
				rhs0 -= complex(row0[c], 0) * y[c]
				rhs1 -= complex(row1[c], 0) * y[c]
			}
		}
		a := complex(t.Get(kstart, kstart), 0) - theta
		b := complex(t.Get(kstart, kstart+1), 0)
		c := complex(t.Get(kstart+1, kstart), 0)
		d := complex(t.Get(kstart+1, kstart+1), 0) - theta
		y0, y1 := solve2x2(a, b, c, d, rhs0, rhs1)
		y[kstart], y[kstart+1] = y0, y1
		k = kstart - 1
	}

	return y
}

// solve2x2Null returns a null vector of [[a,b],[c,d]], picking whichever
// row has the larger magnitude to avoid dividing by a near-zero pivot: for
// a*y0+b*y1=0, (y0,y1)=(b,-a) always satisfies the equation exactly.
func solve2x2Null(a, b, c, d complex128) (complex128, complex128) {
	row0 := cmplx.Abs(a) + cmplx.Abs(b)
	row1 := cmplx.Abs(c) + cmplx.Abs(d)
	if row0 >= row1 {
		if row0 < 1e-300 {
			return 1, 0
		}

		return b, -a
	}
	if row1 < 1e-300 {
		return 1, 0
	}

	return d, -c
}

// solve2x2 solves [[a,b],[c,d]]*[x0,x1]ᵗ = [r0,r1]ᵗ via Cramer's rule.
func solve2x2(a, b, c, d, r0, r1 complex128) (complex128, complex128) {
	det := a*d - b*c
	if det == 0 {
		det = complex(tol.Eps09, 0)
	}
	x0 := (d*r0 - b*r1) / det
	x1 := (a*r1 - c*r0) / det

	return x0, x1
}
