package ritz

import "math"

// ConvergedMask implements the convergence test: for i in [0, k), entry i
// is true when |y_i[m-1]|*fNorm < tolerance*max(eps23, |theta_i|), where
// y_i is vectors' i-th column and m is vectors' row count. The bottom row
// of the Ritz eigenvector matrix is the error estimator.
func ConvergedMask(values []complex128, vectors *ComplexDense, fNorm, tolerance, eps23 float64, k int) []bool {
	m := vectors.Rows()
	mask := make([]bool, k)
	for i := 0; i < k; i++ {
		errEst := cabs(vectors.At(m-1, i)) * fNorm
		bound := tolerance * math.Max(eps23, cabs(values[i]))
		mask[i] = errEst < bound
	}

	return mask
}

// CountConverged returns the number of true entries in mask.
func CountConverged(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}

	return n
}
