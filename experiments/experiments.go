package experiments

import (
	"fmt"
	"math"
	"shapley/dnf"
	"shapley/experiments/metrics"
	"shapley/game"
	"shapley/meta"
	"shapley/solver"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// AblationConfig is one solver setting under measurement.
type AblationConfig struct {
	ID         int
	Name       string
	Ablation   solver.Ablation
	Goroutines int
}

// GameCase is one named game of the experiment suite.
type GameCase struct {
	Name string
	Game game.Game
}

var ablationConfigs = []AblationConfig{
	{ID: 0, Name: "baseline", Ablation: solver.DisableNothing, Goroutines: meta.GO_ROUTINES},
	{ID: 1, Name: "no_disjunctive", Ablation: solver.DisableDisjunctive, Goroutines: meta.GO_ROUTINES},
	{ID: 2, Name: "no_conjunctive", Ablation: solver.DisableConjunctive, Goroutines: meta.GO_ROUTINES},
	{ID: 3, Name: "no_hybrid", Ablation: solver.DisableHybrid, Goroutines: meta.GO_ROUTINES},
}

// RunAblationExperiment solves every suite game under every ablation
// setting, checks the settings agree on each game, and stores one record per
// run.
func RunAblationExperiment() {
	runExperiment("ablation", ablationConfigs, Suite())
}

// Suite returns the regression games plus a few seeded random ones.
func Suite() []GameCase {
	cases := []GameCase{
		{Name: "single_implicant", Game: game.New(dnf.New(
			[]game.OwnerId{1, 2, 3}))},
		{Name: "overlapping_pair", Game: game.New(dnf.New(
			[]game.OwnerId{1, 2, 3},
			[]game.OwnerId{1, 2, 4}))},
		{Name: "disjoint_singletons", Game: game.New(dnf.New(
			[]game.OwnerId{1},
			[]game.OwnerId{2},
			[]game.OwnerId{3}))},
		{Name: "shortcut", Game: game.New(dnf.New(
			[]game.OwnerId{1, 2, 3, 4},
			[]game.OwnerId{1, 2, 3, 5},
			[]game.OwnerId{6}))},
		{Name: "shared_pair", Game: game.New(dnf.New(
			[]game.OwnerId{1, 4, 5},
			[]game.OwnerId{2, 4, 5},
			[]game.OwnerId{3, 4, 5}))},
		{Name: "hybrid", Game: game.New(dnf.New(
			[]game.OwnerId{1, 2, 4},
			[]game.OwnerId{1, 2, 5},
			[]game.OwnerId{2, 3, 4},
			[]game.OwnerId{2, 3, 5},
			[]game.OwnerId{4, 5}))},
		{Name: "recursive", Game: game.New(dnf.New(
			[]game.OwnerId{1, 3, 6, 8},
			[]game.OwnerId{3, 5, 6, 8},
			[]game.OwnerId{3, 4, 6, 8, 9}))},
		{Name: "vertical", Game: game.New(dnf.New(
			[]game.OwnerId{1, 2, 5},
			[]game.OwnerId{1, 2, 6},
			[]game.OwnerId{1, 3, 5},
			[]game.OwnerId{1, 3, 6},
			[]game.OwnerId{4, 5},
			[]game.OwnerId{4, 6}))},
		{Name: "horizontal", Game: game.New(dnf.New(
			[]game.OwnerId{1, 2},
			[]game.OwnerId{1, 3},
			[]game.OwnerId{4}))},
		performanceCase(),
	}

	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 3; i++ {
		cases = append(cases, GameCase{
			Name: fmt.Sprintf("random_%d", i+1),
			Game: RandomGame(rng, 8, 6),
		})
	}
	return cases
}

// performanceCase is the heaviest regression game: 16 implicants over 11
// owners with structure on every level.
func performanceCase() GameCase {
	return GameCase{Name: "performance", Game: game.New(dnf.New(
		[]game.OwnerId{0, 4, 12, 17},
		[]game.OwnerId{0, 7, 12, 17},
		[]game.OwnerId{0, 4, 5, 9, 17},
		[]game.OwnerId{0, 4, 5, 10, 17},
		[]game.OwnerId{0, 4, 9, 15, 17},
		[]game.OwnerId{0, 4, 10, 15, 17},
		[]game.OwnerId{4, 5, 10, 13, 17},
		[]game.OwnerId{4, 10, 12, 13, 17},
		[]game.OwnerId{4, 10, 13, 15, 17},
		[]game.OwnerId{7, 10, 12, 13, 17},
		[]game.OwnerId{0, 5, 6, 7, 9, 17},
		[]game.OwnerId{0, 5, 6, 7, 10, 17},
		[]game.OwnerId{0, 6, 7, 9, 15, 17},
		[]game.OwnerId{0, 6, 7, 10, 15, 17},
		[]game.OwnerId{5, 6, 7, 10, 13, 17},
		[]game.OwnerId{6, 7, 10, 13, 15, 17}))}
}

// RandomGame draws a monotone game over owners 1..owners: the given number
// of patterns, each of up to meta.MAX_RANDOM_IMPLICANT owners, minimized.
func RandomGame(rng *rand.Rand, owners, implicants int) game.Game {
	patterns := make([][]game.OwnerId, implicants)
	for i := range patterns {
		width := 1 + rng.Intn(meta.MAX_RANDOM_IMPLICANT)
		pattern := make([]game.OwnerId, width)
		for j := range pattern {
			pattern[j] = game.OwnerId(1 + rng.Intn(owners))
		}
		patterns[i] = pattern
	}

	all := make([]game.OwnerId, owners)
	for i := range all {
		all[i] = game.OwnerId(i + 1)
	}
	return game.New(dnf.New(patterns...), all...)
}

func runExperiment(name string, configs []AblationConfig, games []GameCase) {
	log.Info().Msgf("starting %s experiment...", name)

	records := []metrics.RunRecord{}
	for gi, gc := range games {
		log.Info().Msgf("starting game %d of %d: %s...", gi+1, len(games), gc.Name)

		shares := make([]game.ShapleyValues, len(configs))
		for ci, config := range configs {
			s := solver.New(config.Ablation,
				solver.WithGoroutines(config.Goroutines), solver.WithMetrics())
			values, metric, err := s.Shapley(gc.Game)
			if err != nil {
				panic(fmt.Sprintf("failed to solve %s: %v", gc.Name, err))
			}

			shares[ci] = values
			records = append(records, metrics.RunRecord{
				ID:          uuid.New(),
				Config:      config.ID,
				Game:        gc.Name,
				Owners:      gc.Game.Owners.Size(),
				Implicants:  gc.Game.Formula.Len(),
				ShareSum:    values.Sum(),
				SolveMetric: metric,
			})

			log.Info().Msgf("completed game %s under %s in %s",
				gc.Name, config.Name, metric.BuildDuration+metric.SolveDuration)
		}

		if err := Agree(shares...); err != nil {
			log.Warn().Msgf("settings disagree on %s: %v", gc.Name, err)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteSolverConfigs(toSolverConfigs(configs))
	if err != nil {
		panic(fmt.Sprintf("failed to store solver configs: %v", err))
	}
	log.Info().Msg("stored solver configs")

	// Store experiment results
	err = writer.WriteRunRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to write run records: %v", err))
	}
	log.Info().Msg("stored run records")
}

func toSolverConfigs(configs []AblationConfig) []metrics.SolverConfig {
	out := make([]metrics.SolverConfig, len(configs))
	for i, config := range configs {
		out[i] = metrics.SolverConfig{
			ID:         config.ID,
			Name:       config.Name,
			Ablation:   config.Ablation.String(),
			Goroutines: config.Goroutines,
		}
	}
	return out
}

// Agree verifies that every share mapping matches the first within
// tolerance.
func Agree(values ...game.ShapleyValues) error {
	if len(values) < 2 {
		return nil
	}
	first := values[0]
	for i, other := range values[1:] {
		if len(other) != len(first) {
			return errors.Errorf("setting %d returned %d owners, setting 0 returned %d",
				i+1, len(other), len(first))
		}
		for id, share := range first {
			got, ok := other[id]
			if !ok {
				return errors.Errorf("owner %d missing from setting %d", id, i+1)
			}
			if math.Abs(got-share) > meta.TOLERANCE {
				return errors.Errorf("owner %d differs between settings 0 and %d: %v vs %v",
					id, i+1, share, got)
			}
		}
	}
	return nil
}

// Validate solves every game under every setting in parallel and returns the
// first sum violation or disagreement.
func Validate(configs []AblationConfig, games []GameCase) error {
	var eg errgroup.Group
	for _, gc := range games {
		eg.Go(func() error {
			shares := make([]game.ShapleyValues, len(configs))
			for ci, config := range configs {
				s := solver.New(config.Ablation, solver.WithGoroutines(config.Goroutines))
				values, _, err := s.Shapley(gc.Game)
				if err != nil {
					return errors.Wrapf(err, "solving %s", gc.Name)
				}
				if sum := values.Sum(); math.Abs(sum-1) > meta.TOLERANCE {
					return errors.Errorf("%s: shares sum to %v under %s", gc.Name, sum, config.Name)
				}
				shares[ci] = values
			}
			if err := Agree(shares...); err != nil {
				return errors.Wrapf(err, "validating %s", gc.Name)
			}
			return nil
		})
	}
	return eg.Wait()
}
