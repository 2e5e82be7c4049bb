// Package operator defines the linear-operator contract the solver drives
// A through, plus a handful of reference adapters (dense, sparse, BLAS,
// bare-function) so the contract is exercisable without pulling in a real
// deployment's matrix assembly code.
//
// The contract itself — LinearOperator and ShiftSolver — is the hard
// boundary: the eigs driver never looks past it, and CountingOperator is
// the only thing allowed to wrap a user operator on the hot path, so that
// the operator stays a pure function of its input from the driver's point
// of view.
package operator
