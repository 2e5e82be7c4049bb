package eigs

import "fmt"

// InvalidArgumentError reports a construction-time argument that violates
// the solver's dimensional contract (nev, ncv vs. the operator's Rows()).
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("eigs: invalid argument: %s", e.Msg)
}

// NotComputedError is returned by Eigenvalues/Eigenvectors when Compute has
// not yet run successfully.
type NotComputedError struct{}

func (e *NotComputedError) Error() string {
	return "eigs: Compute has not been called"
}
