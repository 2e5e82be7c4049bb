package eigs

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/arnoldi-go/iram/arnoldi"
	"github.com/arnoldi-go/iram/hessenberg"
	"github.com/arnoldi-go/iram/linalg"
	"github.com/arnoldi-go/iram/operator"
	"github.com/arnoldi-go/iram/ritz"
	"github.com/arnoldi-go/iram/tol"
)

// Solver is the top-level Implicitly Restarted Arnoldi driver: it owns an
// order-m Arnoldi factorization against a borrowed LinearOperator and
// repeatedly restarts it with Sorensen's exact-shift strategy until nev
// Ritz pairs converge or the iteration budget runs out.
//
// Solver is not safe for concurrent use by multiple goroutines; it is a
// single-owner, synchronous type with no internal locking.
type Solver struct {
	op      *operator.CountingOperator
	n, k, m int
	rule    ritz.SelectionRule
	cfg     Config

	fac     *arnoldi.Factorization
	values  []complex128
	vectors *ritz.ComplexDense
	mask    []bool
	nconv   int

	iterations int
	inited     bool
	computed   bool

	// postProcess, when non-nil, transforms the Ritz values once before the
	// final LargestMagn sort. ShiftInvertSolver installs mu -> 1/mu + sigma.
	postProcess func([]complex128) []complex128
}

// NewSolver constructs a solver targeting nev extremal eigenpairs of op,
// using an ncv-dimensional Arnoldi subspace and the given selection rule.
// Requires 1 <= nev < n and nev < ncv <= n, where n = op.Rows().
func NewSolver(op operator.LinearOperator, nev, ncv int, rule ritz.SelectionRule, opts ...Option) (*Solver, error) {
	if op == nil {
		return nil, &InvalidArgumentError{Msg: "operator must not be nil"}
	}
	n := op.Rows()
	if nev < 1 || nev >= n {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("nev=%d must satisfy 1 <= nev < n=%d", nev, n)}
	}
	if ncv <= nev || ncv > n {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("ncv=%d must satisfy nev < ncv <= n (nev=%d, n=%d)", ncv, nev, n)}
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	return &Solver{
		op:   operator.NewCountingOperator(op),
		n:    n,
		k:    nev,
		m:    ncv,
		rule: rule,
		cfg:  cfg,
	}, nil
}

// Init builds the initial order-m factorization from a pseudo-random
// residual drawn with the solver's configured seed.
func (s *Solver) Init() error {
	rng := rand.New(rand.NewSource(s.cfg.Seed))
	resid := operator.RandomResidual(s.n, rng)

	return s.initWith(resid)
}

// InitWithResidual builds the initial order-m factorization from a
// caller-supplied residual vector, which must have length n and
// non-negligible norm.
func (s *Solver) InitWithResidual(resid []float64) error {
	return s.initWith(resid)
}

func (s *Solver) initWith(resid []float64) error {
	fac, err := arnoldi.Init(s.op, resid, s.m)
	if err != nil {
		return fmt.Errorf("Init: %w", err)
	}
	if err := fac.ExtendTo(s.op, s.m); err != nil {
		var bd *arnoldi.NumericalBreakdownError
		if !errors.As(err, &bd) || !s.cfg.RandomPad {
			return fmt.Errorf("Init: %w", err)
		}
		s.fac = fac
		if err := s.randomPadAndExtend(bd.Order); err != nil {
			return fmt.Errorf("Init: %w", err)
		}
	}
	s.fac = fac
	s.inited = true

	if err := s.refreshRitz(); err != nil {
		return fmt.Errorf("Init: %w", err)
	}

	return nil
}

// refreshRitz reduces the current order-m H to Schur form, extracts and
// sorts its Ritz pairs by the solver's active rule, and recomputes the
// convergence mask against the current residual norm.
func (s *Solver) refreshRitz() error {
	t, z, err := ritz.Schur(s.fac.H)
	if err != nil {
		return fmt.Errorf("refreshRitz: %w", err)
	}
	values, vectors, err := ritz.Eigenpairs(t, z)
	if err != nil {
		return fmt.Errorf("refreshRitz: %w", err)
	}

	s.values, s.vectors = reorderPairs(values, vectors, s.rule)
	s.mask = ritz.ConvergedMask(s.values, s.vectors, linalg.Norm(s.fac.F), s.cfg.Tol, tol.Eps23, s.k)
	s.nconv = ritz.CountConverged(s.mask)

	return nil
}

// Compute runs the IRAM driver loop: while fewer than nev Ritz values have
// converged and the iteration budget remains, pick a restart width with
// adjustK, apply exact-shift QR sweeps for the unwanted Ritz values, and
// rebuild the order-m factorization from the compressed residual. Returns
// min(nev, nconv); a return value below nev is NonConvergence, not an
// error, and partial results remain available through Eigenvalues and
// Eigenvectors.
//
// maxit <= 0 and tolerance <= 0 fall back to the solver's configured
// defaults (DefaultMaxIter, DefaultTol, or whatever WithMaxIter/WithTol set
// at construction).
//
// A numerical breakdown during a restart ends the loop early and the
// current nconv is returned. A breakdown while the initial order-m
// factorization is built is returned as an error instead, unless
// WithRandomPad is set.
func (s *Solver) Compute(maxit int, tolerance float64) (int, error) {
	if maxit > 0 {
		s.cfg.MaxIter = maxit
	}
	if tolerance > 0 {
		s.cfg.Tol = tolerance
	}

	if !s.inited {
		if err := s.Init(); err != nil {
			return 0, fmt.Errorf("Compute: %w", err)
		}
	}

	for iter := 0; iter < s.cfg.MaxIter; iter++ {
		if s.nconv >= s.k {
			break
		}

		kPrime := s.adjustK(s.nconv)
		if err := s.restart(kPrime); err != nil {
			var bd *arnoldi.NumericalBreakdownError
			if errors.As(err, &bd) {
				break
			}

			return s.nconv, fmt.Errorf("Compute: %w", err)
		}

		if err := s.refreshRitz(); err != nil {
			return s.nconv, fmt.Errorf("Compute: %w", err)
		}

		s.iterations++
		if s.cfg.Trace != nil {
			s.cfg.Trace(iter, s.nconv)
		}
	}

	s.finalSort()
	s.computed = true

	result := s.k
	if s.nconv < result {
		result = s.nconv
	}

	return result, nil
}

// adjustK implements the restart-width heuristic: start from k, never split
// a conjugate pair at either the old or the new k boundary, widen by up to
// half the unconverged remainder, and clamp the result to [1, m-1] (with a
// special-cased lower bound when the widening collapses back to 1). m-2 is
// the usual upper clamp, but for a tight subspace (ncv as small as nev+1)
// that clamp falls below 1, so the result is floored back up to the only
// valid boundary, kPrime=1; the conjugate-pair recheck that follows is
// skipped at that floor since there is no room left to move the boundary.
func (s *Solver) adjustK(nconv int) int {
	kNew := s.k
	if s.splitsConjugatePair(kNew) {
		kNew = s.k + 1
	}

	widen := nconv
	if room := (s.m - kNew) / 2; widen > room {
		widen = room
	}
	kNew += widen

	if kNew == 1 {
		switch {
		case s.m >= 6:
			kNew = s.m / 2
		case s.m > 3:
			kNew = 2
		}
	}

	if kNew > s.m-2 {
		kNew = s.m - 2
	}
	if kNew < 1 {
		kNew = 1
	}

	if kNew < s.m-1 && s.splitsConjugatePair(kNew) {
		kNew++
	}

	return kNew
}

// splitsConjugatePair reports whether boundary kNew falls between a
// complex Ritz value at kNew-1 and its conjugate at kNew.
func (s *Solver) splitsConjugatePair(kNew int) bool {
	if kNew < 1 || kNew >= s.m {
		return false
	}

	return ritz.IsComplex(s.values[kNew-1], tol.Eps23) &&
		ritz.IsConjugatePair(s.values[kNew-1], s.values[kNew], tol.Eps23)
}

// restart applies the exact-shift QR sweeps for the unwanted Ritz values
// theta_kPrime .. theta_{m-1} to H (and propagates them to V and the
// tracked basis vector em), then compresses the residual down to order
// kPrime so ExtendTo can rebuild the order-m factorization.
func (s *Solver) restart(kPrime int) error {
	em := make([]float64, s.m)
	em[s.m-1] = 1

	i := kPrime
	for i < s.m {
		theta := s.values[i]
		if ritz.IsComplex(theta, tol.Eps23) && i+1 < s.m && ritz.IsConjugatePair(theta, s.values[i+1], tol.Eps23) {
			if err := s.applyDoubleShift(theta, em); err != nil {
				return fmt.Errorf("restart: %w", err)
			}
			i += 2
			continue
		}

		if err := s.applySingleShift(real(theta), em); err != nil {
			return fmt.Errorf("restart: %w", err)
		}
		i++
	}

	betaTerm := s.fac.H.Get(kPrime, kPrime-1)
	newF := make([]float64, s.n)
	for j := 0; j < s.n; j++ {
		newF[j] = s.fac.F[j]*em[kPrime-1] + s.fac.V.Get(j, kPrime)*betaTerm
	}
	s.fac.F = newF
	s.fac.Order = kPrime

	if err := s.fac.ExtendTo(s.op, s.m); err != nil {
		var bd *arnoldi.NumericalBreakdownError
		if errors.As(err, &bd) && s.cfg.RandomPad {
			return s.randomPadAndExtend(bd.Order)
		}

		return err
	}

	return nil
}

// randomPadAndExtend implements the opt-in alternative to early termination
// on numerical breakdown: replace the residual at the order the breakdown
// was detected with a fresh pseudo-random vector, orthogonalized against
// the basis built so far (an approximation of the invariant subspace's
// orthogonal complement), and resume extension to m.
func (s *Solver) randomPadAndExtend(order int) error {
	rng := rand.New(rand.NewSource(s.cfg.Seed + int64(order)))
	pad := operator.RandomResidual(s.n, rng)
	proj := make([]float64, order)
	linalg.MatVecT(s.fac.V, order, pad, proj)
	linalg.MatVecSub(s.fac.V, order, pad, proj, pad)
	s.fac.F = pad
	s.fac.Order = order

	err := s.fac.ExtendTo(s.op, s.m)
	if s.fac.Order > order {
		// The padded direction is not part of A*V(:,order-1), so it has no
		// subdiagonal coupling to the basis built before the breakdown.
		s.fac.H.Put(order, order-1, 0)
	}

	return err
}

func (s *Solver) applySingleShift(mu float64, em []float64) error {
	sq, err := hessenberg.NewSingleShiftQR(s.m)
	if err != nil {
		return err
	}
	if err := sq.Compute(s.fac.H, mu); err != nil {
		return err
	}
	newH, err := sq.MatrixRQ()
	if err != nil {
		return err
	}
	if err := s.fac.H.CopyFrom(newH); err != nil {
		return err
	}
	if err := sq.ApplyYQ(s.fac.V); err != nil {
		return err
	}
	if err := sq.ApplyQtY(em); err != nil {
		return err
	}

	return nil
}

func (s *Solver) applyDoubleShift(theta complex128, em []float64) error {
	sVal := 2 * real(theta)
	tVal := real(theta)*real(theta) + imag(theta)*imag(theta)

	dq, err := hessenberg.NewDoubleShiftQR(s.m)
	if err != nil {
		return err
	}
	if err := dq.Compute(s.fac.H, sVal, tVal); err != nil {
		return err
	}
	newH, err := dq.MatrixQtHQ()
	if err != nil {
		return err
	}
	if err := s.fac.H.CopyFrom(newH); err != nil {
		return err
	}
	if err := dq.ApplyYQ(s.fac.V); err != nil {
		return err
	}
	if err := dq.ApplyQtY(em); err != nil {
		return err
	}

	return nil
}

// finalSort applies the post-processing hook (if any) to the k pairs the
// active selection rule already chose during iteration, then reorders just
// those k by LargestMagn for output: it does not re-select across the full
// m-vector, since that would override the selection rule with LargestMagn
// for every rule whose wanted set isn't also the magnitude-largest one. The
// existing per-pair convergence mask is permuted to match rather than
// retested, since postProcess (shift-invert's mu -> 1/mu+sigma) operates in
// a different space than the residual estimator that produced it. Once
// sorted, the converged pairs are stable-partitioned ahead of the
// unconverged ones, so Eigenvalues' values[:nconv] slice is exactly the
// converged set even when convergence is partial and the converged pairs
// are not the magnitude-largest among the wanted k.
func (s *Solver) finalSort() {
	values := append([]complex128(nil), s.values[:s.k]...)
	if s.postProcess != nil {
		values = s.postProcess(values)
	}

	sorted := ritz.SortRitzPairs(values, ritz.LargestMagn)

	order := make([]int, 0, len(sorted))
	for i, p := range sorted {
		if s.mask[p.Col] {
			order = append(order, i)
		}
	}
	for i, p := range sorted {
		if !s.mask[p.Col] {
			order = append(order, i)
		}
	}

	rows := s.vectors.Rows()
	newValues := make([]complex128, len(sorted))
	newVectors := ritz.NewComplexDense(rows, len(sorted))
	newMask := make([]bool, len(sorted))
	for newCol, idx := range order {
		p := sorted[idx]
		newValues[newCol] = p.Value
		newMask[newCol] = s.mask[p.Col]
		for row := 0; row < rows; row++ {
			newVectors.Set(row, newCol, s.vectors.At(row, p.Col))
		}
	}

	s.values = newValues
	s.vectors = newVectors
	s.mask = newMask
	s.nconv = ritz.CountConverged(s.mask)
}

// reorderPairs sorts values by rule and returns a new values slice plus a
// new ComplexDense whose columns have been permuted to match.
func reorderPairs(values []complex128, vectors *ritz.ComplexDense, rule ritz.SelectionRule) ([]complex128, *ritz.ComplexDense) {
	sorted := ritz.SortRitzPairs(values, rule)

	newValues := make([]complex128, len(values))
	newVectors := ritz.NewComplexDense(vectors.Rows(), vectors.Cols())
	for newCol, p := range sorted {
		newValues[newCol] = p.Value
		for row := 0; row < vectors.Rows(); row++ {
			newVectors.Set(row, newCol, vectors.At(row, p.Col))
		}
	}

	return newValues, newVectors
}

// Eigenvalues returns the nconv converged Ritz values, in the canonical
// LargestMagn order Compute leaves them in.
func (s *Solver) Eigenvalues() ([]complex128, error) {
	if !s.computed {
		return nil, &NotComputedError{}
	}
	out := make([]complex128, s.nconv)
	copy(out, s.values[:s.nconv])

	return out, nil
}

// Eigenvectors returns V*vectors[:, 0:nconv], an n×nconv complex matrix:
// the converged Ritz vectors of H lifted back to the original operator's
// coordinates through the real Arnoldi basis V.
func (s *Solver) Eigenvectors() (*ritz.ComplexDense, error) {
	if !s.computed {
		return nil, &NotComputedError{}
	}

	out := ritz.NewComplexDense(s.n, s.nconv)
	for col := 0; col < s.nconv; col++ {
		for row := 0; row < s.n; row++ {
			var acc complex128
			for kk := 0; kk < s.m; kk++ {
				acc += complex(s.fac.V.Get(row, kk), 0) * s.vectors.At(kk, col)
			}
			out.Set(row, col, acc)
		}
	}

	return out, nil
}

// NumIterations returns the number of restart iterations actually run.
func (s *Solver) NumIterations() int {
	return s.iterations
}

// NumOperations returns the number of operator Apply calls observed so far.
func (s *Solver) NumOperations() int64 {
	return s.op.Count()
}
