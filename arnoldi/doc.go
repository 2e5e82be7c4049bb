// Package arnoldi builds and extends the Arnoldi factorization A*V = V*H +
// f*eᵗ that the rest of the solver projects the operator onto: V's columns
// are an orthonormal Krylov basis, H is the small upper-Hessenberg
// projection of A, and f is the residual that the implicit restart
// compresses back down after each round of shifted QR sweeps.
package arnoldi
