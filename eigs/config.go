package eigs

// DefaultMaxIter is the restart-iteration ceiling used when the caller does
// not override it via WithMaxIter or the maxit argument to Compute.
const DefaultMaxIter = 1000

// DefaultTol is the default convergence tolerance used by Compute when the
// caller passes a non-positive tolerance.
const DefaultTol = 1e-10

// Config holds the solver's tunable knobs. Callers never construct one
// directly; NewSolver applies Option values supplied at construction time
// over a set of defaults.
type Config struct {
	MaxIter   int
	Tol       float64
	Seed      int64
	RandomPad bool
	Trace     func(iter, nconv int)
}

func defaultConfig() Config {
	return Config{
		MaxIter:   DefaultMaxIter,
		Tol:       DefaultTol,
		Seed:      0,
		RandomPad: false,
		Trace:     nil,
	}
}

// Option configures a Solver at construction time.
type Option func(*Config)

// WithMaxIter overrides the default restart-iteration ceiling.
func WithMaxIter(n int) Option {
	return func(c *Config) { c.MaxIter = n }
}

// WithTol overrides the default convergence tolerance.
func WithTol(tol float64) Option {
	return func(c *Config) { c.Tol = tol }
}

// WithSeed fixes the seed used to draw a random initial residual when
// Init is called without an explicit residual vector.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithRandomPad opts into padding the residual with a fresh random vector
// and continuing past a numerical breakdown, instead of the default
// early-termination behavior.
func WithRandomPad(pad bool) Option {
	return func(c *Config) { c.RandomPad = pad }
}

// WithTrace installs a callback invoked once per restart iteration with
// the iteration index and the converged count observed at that point.
func WithTrace(fn func(iter, nconv int)) Option {
	return func(c *Config) { c.Trace = fn }
}
