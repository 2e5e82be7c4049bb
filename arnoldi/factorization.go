package arnoldi

import (
	"fmt"

	"github.com/arnoldi-go/iram/linalg"
	"github.com/arnoldi-go/iram/matrix"
	"github.com/arnoldi-go/iram/operator"
	"github.com/arnoldi-go/iram/tol"
)

// Factorization holds an order-j Arnoldi factorization A*V(:,0:j) =
// V(:,0:j)*H(0:j,0:j) + f*e_jᵗ against an n-dimensional operator, with
// capacity for up to mMax columns so restarts can extend it back up
// in place without reallocating V or H.
type Factorization struct {
	V     *matrix.Dense // n×mMax, orthonormal columns 0:Order
	H     *matrix.Dense // mMax×mMax, upper-Hessenberg within 0:Order
	F     []float64     // n-vector residual
	Order int           // current active order j
	n     int
	mMax  int
}

// Init performs the order-0-to-1 step: normalize resid, set V(:,0), apply
// the operator, and form the order-1 residual. resid must have norm above
// Eps23; a zero or near-zero initial residual is rejected rather than
// silently normalized.
func Init(op operator.LinearOperator, resid []float64, mMax int) (*Factorization, error) {
	n := op.Rows()
	if len(resid) != n {
		return nil, fmt.Errorf("Init: %w", ErrDimensionMismatch)
	}
	norm := linalg.Norm(resid)
	if norm <= tol.Eps23 {
		return nil, fmt.Errorf("Init: %w", ErrInvalidResidual)
	}

	v, err := matrix.NewDense(n, mMax)
	if err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}
	h, err := matrix.NewDense(mMax, mMax)
	if err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}

	v0 := linalg.Copy(nil, resid)
	linalg.Scale(1/norm, v0)
	if err := v.SetColumn(0, v0); err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}

	w := make([]float64, n)
	if err := op.Apply(v0, w); err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}
	h00 := linalg.Dot(v0, w)
	if err := h.Set(0, 0, h00); err != nil {
		return nil, fmt.Errorf("Init: %w", err)
	}

	f := make([]float64, n)
	linalg.AxpyTo(f, w, -h00, v0)

	return &Factorization{V: v, H: h, F: f, Order: 1, n: n, mMax: mMax}, nil
}

// ExtendTo extends the factorization from its current Order to toM,
// performing, for each intermediate order i: normalize f into V(:,i),
// record beta on the subdiagonal, apply the operator, project onto the
// basis built so far, form the new residual, and run the one-step
// re-orthogonality test against V(:,0).
//
// If beta = ||f|| drops at or below Eps23 before reaching toM, ExtendTo
// stops and returns a *NumericalBreakdownError; the factorization remains
// valid at whatever order it reached (available via f.Order).
func (f *Factorization) ExtendTo(op operator.LinearOperator, toM int) error {
	if toM <= f.Order || toM > f.mMax {
		return fmt.Errorf("ExtendTo: %w", ErrOrderRange)
	}

	w := make([]float64, f.n)
	h := make([]float64, f.mMax)
	vf := make([]float64, f.mMax)

	for i := f.Order; i < toM; i++ {
		beta := linalg.Norm(f.F)
		if beta <= tol.Eps23 {
			return &NumericalBreakdownError{Order: i, Beta: beta}
		}

		v := linalg.Copy(nil, f.F)
		linalg.Scale(1/beta, v)
		if err := f.V.SetColumn(i, v); err != nil {
			return fmt.Errorf("ExtendTo: %w", err)
		}
		f.H.ZeroRowRange(i, 0, i)
		f.H.Put(i, i-1, beta)

		if err := op.Apply(v, w); err != nil {
			return fmt.Errorf("ExtendTo: %w", err)
		}

		linalg.MatVecT(f.V, i+1, w, h[:i+1])
		for r := 0; r <= i; r++ {
			f.H.Put(r, i, h[r])
		}

		linalg.MatVecSub(f.V, i+1, w, h[:i+1], f.F)

		// One-step re-orthogonalization: classical Gram-Schmidt correction
		// triggered by the single-sided test against V(:,0).
		col0 := f.V.Column(0, nil)
		if dot := linalg.Dot(col0, f.F); abs(dot) > tol.Eps23 {
			linalg.MatVecT(f.V, i+1, f.F, vf[:i+1])
			linalg.MatVecSub(f.V, i+1, f.F, vf[:i+1], f.F)
		}

		f.Order = i + 1
	}

	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
