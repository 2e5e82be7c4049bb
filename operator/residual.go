package operator

import "math/rand"

// RandomResidual draws an n-vector uniformly from [-0.5, 0.5]^n using rng.
// Callers own rng's seeding and lifetime; the package never reaches for the
// global math/rand functions so two solver runs with the same seed are
// reproducible regardless of what else is drawing from the process-global
// source concurrently.
func RandomResidual(n int, rng *rand.Rand) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64() - 0.5
	}

	return v
}
