// meta/meta.go
package meta

// GO_ROUTINES defines the default number of goroutines for the solver fan-out.
const GO_ROUTINES = 8

// TOLERANCE is the absolute tolerance when comparing Shapley shares.
const TOLERANCE = 1e-9

// CLOSURE_BUDGET caps the number of candidate sets one module-closure search
// may test before giving up on that seed pair.
const CLOSURE_BUDGET = 4096

// MAX_RANDOM_IMPLICANT is the largest implicant size the random game
// generator draws.
const MAX_RANDOM_IMPLICANT = 4
