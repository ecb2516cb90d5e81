// Package solver computes exact Shapley values for DNF coalition games by
// decomposing the winning formula into independent blocks and propagating
// interaction coefficients through the resulting tree.
package solver

import (
	"shapley/coeffs"
	"shapley/dnf"
	"shapley/experiments/metrics"
	"shapley/game"
	"shapley/meta"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Ablation selects which decomposition modes the tree builder may use.
// A disabled mode falls back to expanding the subtree into an irreducible
// leaf.
type Ablation int

const (
	DisableNothing Ablation = iota
	DisableDisjunctive
	DisableConjunctive
	DisableHybrid
	DisableAll
)

func (a Ablation) String() string {
	switch a {
	case DisableNothing:
		return "disable_nothing"
	case DisableDisjunctive:
		return "disable_disjunctive"
	case DisableConjunctive:
		return "disable_conjunctive"
	case DisableHybrid:
		return "disable_hybrid"
	case DisableAll:
		return "disable_all"
	default:
		panic("solver: unknown ablation")
	}
}

func (a Ablation) conjunctiveEnabled() bool {
	return a != DisableConjunctive && a != DisableAll
}

func (a Ablation) disjunctiveEnabled() bool {
	return a != DisableDisjunctive && a != DisableAll
}

func (a Ablation) hybridEnabled() bool {
	return a != DisableHybrid && a != DisableAll
}

type Option func(s *Solver)

// Solver computes Shapley values under one ablation setting.
type Solver struct {
	goroutines int
	ablation   Ablation
	metrics    metrics.Collector
	sem        *semaphore.Weighted
}

func WithGoroutines(goroutines int) Option {
	return func(s *Solver) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(s *Solver) {
		s.metrics = metrics.NewCollector()
	}
}

func New(ablation Ablation, options ...Option) *Solver {
	s := &Solver{ // Default values
		goroutines: meta.GO_ROUTINES,
		ablation:   ablation,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.goroutines > 1 {
		// The calling goroutine always works inline, so helpers only.
		s.sem = semaphore.NewWeighted(int64(s.goroutines - 1))
	}
	return s
}

// Shapley returns every owner's exact share of the game's single unit of
// power, along with the run's metrics.
func (s *Solver) Shapley(g game.Game) (game.ShapleyValues, metrics.SolveMetric, error) {
	if err := g.Validate(); err != nil {
		return nil, metrics.SolveMetric{}, errors.Wrap(err, "invalid game")
	}

	s.metrics.Start(s.goroutines, s.ablation.String())
	root := s.build(dnf.Decompose(g.Formula), true)
	s.metrics.TreeBuilt()

	values := s.propagate(root, coeffs.Identity())
	for _, id := range g.Owners.Slice() {
		if _, ok := values[id]; !ok {
			values[id] = 0 // Owners outside the formula hold no power
		}
	}
	metric := s.metrics.Complete()

	log.Debug().Msgf("solved %d-owner game under %s: build %s, solve %s",
		g.Owners.Size(), s.ablation, metric.BuildDuration, metric.SolveDuration)
	return values, metric, nil
}

// forEach runs fn for every index in [0, n), spawning a helper goroutine
// while the semaphore has capacity and working inline otherwise, so nested
// fan-out can never deadlock.
func (s *Solver) forEach(n int, fn func(i int)) {
	if s.sem == nil || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if s.sem.TryAcquire(1) {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer s.sem.Release(1)
				fn(i)
			}(i)
		} else {
			fn(i)
		}
	}
	wg.Wait()
}
