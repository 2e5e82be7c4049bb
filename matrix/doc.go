// Package matrix provides the dense, row-major Matrix type shared by the
// Hessenberg, Arnoldi and Ritz packages: the V (basis), H (projected
// operator) and small Schur-reduction work matrices are all *matrix.Dense
// values.
//
// The package intentionally stays small: a shape-checked Matrix interface,
// one concrete Dense implementation, and the validators the rest of the
// module composes at its own call sites. It does not know about linear
// operators, Hessenberg sweeps or eigenvalues — those live one layer up.
package matrix
