package ritz_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/ritz"
)

func TestEigenpairsOnRotationBlockGivesImaginaryPair(t *testing.T) {
	h := buildHessenberg(t, 2, [][]float64{
		{0, -1},
		{1, 0},
	})
	tr, z, err := ritz.Schur(h)
	require.NoError(t, err)

	values, _, err := ritz.Eigenpairs(tr, z)
	require.NoError(t, err)
	require.InDelta(t, 0, real(values[0]), 1e-12)
	require.InDelta(t, 1, imag(values[0]), 1e-12)
	require.InDelta(t, 0, real(values[1]), 1e-12)
	require.InDelta(t, -1, imag(values[1]), 1e-12)
}

func TestEigenpairsSatisfyEigenEquation(t *testing.T) {
	h := buildHessenberg(t, 4, [][]float64{
		{4, -1, 2, 0.5},
		{2, 3, 1, -1},
		{0, 1.5, 2, 1},
		{0, 0, 0.7, 1},
	})
	tr, z, err := ritz.Schur(h)
	require.NoError(t, err)

	values, vectors, err := ritz.Eigenpairs(tr, z)
	require.NoError(t, err)

	n := h.Rows()
	for col := 0; col < n; col++ {
		theta := values[col]
		for row := 0; row < n; row++ {
			var hy complex128
			for k := 0; k < n; k++ {
				hy += complex(h.Get(row, k), 0) * vectors.At(k, col)
			}
			residual := hy - theta*vectors.At(row, col)
			require.InDelta(t, 0, real(residual), 1e-5)
			require.InDelta(t, 0, imag(residual), 1e-5)
		}
	}
}

func TestEigenpairsColumnsAreUnitNorm(t *testing.T) {
	h := buildHessenberg(t, 4, [][]float64{
		{4, -1, 2, 0.5},
		{2, 3, 1, -1},
		{0, 1.5, 2, 1},
		{0, 0, 0.7, 1},
	})
	tr, z, err := ritz.Schur(h)
	require.NoError(t, err)

	_, vectors, err := ritz.Eigenpairs(tr, z)
	require.NoError(t, err)

	n := vectors.Rows()
	for col := 0; col < vectors.Cols(); col++ {
		var sumSq float64
		for row := 0; row < n; row++ {
			sumSq += cmplx.Abs(vectors.At(row, col)) * cmplx.Abs(vectors.At(row, col))
		}
		require.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-9)
	}
}

func TestEigenpairsRejectsShapeMismatch(t *testing.T) {
	t2, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	z3, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	_, _, err = ritz.Eigenpairs(t2, z3)
	require.Error(t, err)
}
