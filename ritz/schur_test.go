package ritz_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/ritz"
)

func buildHessenberg(t *testing.T, n int, rows [][]float64) *matrix.Dense {
	h, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			h.Put(i, j, v)
		}
	}

	return h
}

func TestSchurOnIrreducible2x2LeavesBlockUnchanged(t *testing.T) {
	h := buildHessenberg(t, 2, [][]float64{
		{0, -1},
		{1, 0},
	})

	tr, z, err := ritz.Schur(h)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, h.Get(i, j), tr.Get(i, j), 1e-12)
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, z.Get(i, j), 1e-12)
		}
	}
}

func TestSchurProducesBlockUpperTriangularForm(t *testing.T) {
	h := buildHessenberg(t, 4, [][]float64{
		{4, -1, 2, 0.5},
		{2, 3, 1, -1},
		{0, 1.5, 2, 1},
		{0, 0, 0.7, 1},
	})

	tr, z, err := ritz.Schur(h)
	require.NoError(t, err)

	// Every entry two or more below the diagonal must be negligible: real
	// Schur form is block upper triangular with only 1x1/2x2 blocks on the
	// diagonal.
	for i := 2; i < 4; i++ {
		for j := 0; j < i-1; j++ {
			require.InDelta(t, 0, tr.Get(i, j), 1e-6)
		}
	}

	// z must be orthogonal: zᵗ*z = I.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var dot float64
			for k := 0; k < 4; k++ {
				dot += z.Get(k, i) * z.Get(k, j)
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, dot, 1e-6)
		}
	}

	// trace must be preserved by the similarity transform t = zᵗ*h*z.
	var traceH, traceT float64
	for i := 0; i < 4; i++ {
		traceH += h.Get(i, i)
		traceT += tr.Get(i, i)
	}
	require.InDelta(t, traceH, traceT, 1e-6)
}

func TestSchurRejectsNonSquare(t *testing.T) {
	h, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, _, err = ritz.Schur(h)
	require.Error(t, err)
}

func TestSchurOnAlreadyTriangularIsNearIdentityTransform(t *testing.T) {
	h := buildHessenberg(t, 3, [][]float64{
		{2, 5, -3},
		{0, -4, 1},
		{0, 0, 7},
	})

	tr, _, err := ritz.Schur(h)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.InDelta(t, h.Get(i, i), tr.Get(i, i), math.Abs(h.Get(i, i))*1e-9+1e-9)
	}
}
