package matrix

import (
	"fmt"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrInvalidDimensions.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate flat slice
	data := make([]float64, rows*cols)

	// Return initialized Dense
	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewIdentity returns the n×n identity matrix.
// Complexity: O(n²) zeroing (constructor) + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r // return stored row count
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c // return stored column count
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Stage 1 (Validate): check 0 ≤ row < r and 0 ≤ col < c.
// Stage 2 (Execute): compute and return linear index.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): read from data slice.
// Stage 3 (Finalize): return value or wrapped error.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	// Compute flat index or error
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	// Return stored value
	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): write into data slice.
// Stage 3 (Finalize): return error or nil.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	// Compute flat index or error
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	// Assign value
	m.data[idx] = v

	return nil
}

// Get is the unchecked counterpart of At, used on the hot Arnoldi/Hessenberg
// sweep paths where row/col are already loop-bounded and the error-return
// overhead of At would show up in profiles. Callers that index outside the
// matrix will panic, same as a raw slice index.
// Complexity: O(1).
func (m *Dense) Get(row, col int) float64 {
	return m.data[row*m.c+col]
}

// Put is the unchecked counterpart of Set. See Get.
// Complexity: O(1).
func (m *Dense) Put(row, col int, v float64) {
	m.data[row*m.c+col] = v
}

// RowView returns the backing slice for row, shared with the matrix (no
// copy). Mutating the returned slice mutates m. Valid because Dense stores
// rows contiguously; there is no analogous zero-copy ColumnView.
// Complexity: O(1).
func (m *Dense) RowView(row int) []float64 {
	return m.data[row*m.c : row*m.c+m.c]
}

// Column copies column col into dst, or allocates a new slice when dst is
// nil or too short. Returns the slice written.
// Complexity: O(r) time, O(r) space for the returned slice.
func (m *Dense) Column(col int, dst []float64) []float64 {
	if cap(dst) < m.r {
		dst = make([]float64, m.r)
	}
	dst = dst[:m.r]
	for i := 0; i < m.r; i++ {
		dst[i] = m.data[i*m.c+col]
	}

	return dst
}

// SetColumn overwrites column col with v. Returns ErrDimensionMismatch if
// len(v) != Rows().
// Complexity: O(r).
func (m *Dense) SetColumn(col int, v []float64) error {
	if len(v) != m.r {
		return denseErrorf("SetColumn", 0, col, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+col] = v[i]
	}

	return nil
}

// ZeroRowRange zeroes row[colStart:colEnd) in place. Used to re-establish
// the zero pattern below the Hessenberg band after truncating a
// factorization for a restart.
// Complexity: O(colEnd-colStart).
func (m *Dense) ZeroRowRange(row, colStart, colEnd int) {
	rv := m.RowView(row)
	for j := colStart; j < colEnd; j++ {
		rv[j] = 0
	}
}

// ZeroBlock zeroes the rectangular block [rowStart:rowEnd) x [colStart:colEnd).
// Complexity: O((rowEnd-rowStart)*(colEnd-colStart)).
func (m *Dense) ZeroBlock(rowStart, rowEnd, colStart, colEnd int) {
	for i := rowStart; i < rowEnd; i++ {
		m.ZeroRowRange(i, colStart, colEnd)
	}
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	// Allocate new slice for data copy
	copyData := make([]float64, len(m.data))
	// Copy all elements into new slice
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// CopyFrom overwrites m's contents with src's. Both must share shape.
// Complexity: O(r*c).
func (m *Dense) CopyFrom(src *Dense) error {
	if err := ValidateSameShape(m, src); err != nil {
		return denseErrorf("CopyFrom", 0, 0, err)
	}
	copy(m.data, src.data)

	return nil
}

// String implements fmt.Stringer for easy debugging.
// Stage 1 (Execute): build per-row strings.
// Stage 2 (Finalize): return concatenated representation.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var s string
	var i, j int
	for i = 0; i < m.r; i++ { // iterate over rows
		s += "["                  // open row
		for j = 0; j < m.c; j++ { // iterate over columns
			// compute flat index directly for performance
			s += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", " // separate values with comma
			}
		}
		s += "]\n" // close row
	}

	return s
}
