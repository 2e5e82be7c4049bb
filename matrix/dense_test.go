package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnoldi-go/iram/matrix"
)

func TestNewDenseRejectsNonPositiveDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.True(t, errors.Is(err, matrix.ErrInvalidDimensions))

	_, err = matrix.NewDense(3, -1)
	require.True(t, errors.Is(err, matrix.ErrInvalidDimensions))
}

func TestNewIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.Equal(t, want, id.Get(i, j))
		}
	}
}

func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	require.True(t, errors.Is(err, matrix.ErrOutOfRange))

	err = m.Set(0, -1, 1)
	require.True(t, errors.Is(err, matrix.ErrOutOfRange))
}

func TestRowViewSharesBacking(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	row := m.RowView(0)
	row[1] = 9
	require.Equal(t, 9.0, m.Get(0, 1))
}

func TestColumnAndSetColumn(t *testing.T) {
	m, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	require.NoError(t, m.SetColumn(1, []float64{1, 2, 3}))

	col := m.Column(1, nil)
	require.Equal(t, []float64{1, 2, 3}, col)

	err = m.SetColumn(0, []float64{1, 2})
	require.True(t, errors.Is(err, matrix.ErrDimensionMismatch))
}

func TestZeroRowRangeAndZeroBlock(t *testing.T) {
	m, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Put(i, j, 1)
		}
	}
	m.ZeroRowRange(0, 0, 2)
	require.Equal(t, 0.0, m.Get(0, 0))
	require.Equal(t, 0.0, m.Get(0, 1))
	require.Equal(t, 1.0, m.Get(0, 2))

	m.ZeroBlock(1, 3, 1, 3)
	for i := 1; i < 3; i++ {
		for j := 1; j < 3; j++ {
			require.Equal(t, 0.0, m.Get(i, j))
		}
	}
}

func TestCloneAndCopyFrom(t *testing.T) {
	a, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	a.Put(0, 0, 5)

	clone := a.Clone()
	a.Put(0, 0, 9)
	cloneDense, ok := clone.(*matrix.Dense)
	require.True(t, ok)
	require.Equal(t, 5.0, cloneDense.Get(0, 0))

	b, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.CopyFrom(a))
	require.Equal(t, 9.0, b.Get(0, 0))
}

func TestValidateSquareNonSquareError(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	err = matrix.ValidateSquare(m)
	require.True(t, errors.Is(err, matrix.ErrNonSquare))
}
