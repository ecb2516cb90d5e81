package experiments

import (
	"shapley/game"
	"shapley/meta"
	"shapley/solver"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests the experiment harness around the solver:
- heaviest regression game: the known share under every decomposition setting
- full suite validation: sum-to-one and agreement across settings
- agreement checker: happy path, perturbed share, missing owner
- random generator: bounds, validity, winnable coalitions
*/

func TestPerformanceGame(t *testing.T) {
	gc := performanceCase()
	configs := []AblationConfig{
		{Name: "baseline", Ablation: solver.DisableNothing, Goroutines: meta.GO_ROUTINES},
		{Name: "no_disjunctive", Ablation: solver.DisableDisjunctive, Goroutines: meta.GO_ROUTINES},
		{Name: "no_conjunctive", Ablation: solver.DisableConjunctive, Goroutines: meta.GO_ROUTINES},
		{Name: "no_hybrid", Ablation: solver.DisableHybrid, Goroutines: meta.GO_ROUTINES},
	}

	shares := make([]game.ShapleyValues, len(configs))
	for i, config := range configs {
		s := solver.New(config.Ablation, solver.WithGoroutines(config.Goroutines))
		values, _, err := s.Shapley(gc.Game)
		require.NoError(t, err, "Should solve the game under %s", config.Name)

		require.InDelta(t, 0.013492063492063444, values[6], meta.TOLERANCE,
			"Owner 6 share should match the reference under %s", config.Name)
		require.InDelta(t, 1.0, values.Sum(), meta.TOLERANCE,
			"Shares should sum to one under %s", config.Name)
		shares[i] = values
	}

	require.NoError(t, Agree(shares...), "All settings should agree on every owner")
}

func TestSuiteValidates(t *testing.T) {
	require.NoError(t, Validate(ablationConfigs, Suite()),
		"Every suite game should validate under every setting")
}

func TestAgree(t *testing.T) {
	t.Run("accepting matching shares", func(t *testing.T) {
		a := game.ShapleyValues{1: 0.5, 2: 0.5}
		b := game.ShapleyValues{1: 0.5 + meta.TOLERANCE/2, 2: 0.5 - meta.TOLERANCE/2}

		require.NoError(t, Agree(a, b), "Shares within tolerance should agree")
		require.NoError(t, Agree(a), "A single mapping should agree with itself")
	})

	t.Run("rejecting a drifted share", func(t *testing.T) {
		a := game.ShapleyValues{1: 0.5, 2: 0.5}
		b := game.ShapleyValues{1: 0.6, 2: 0.4}

		err := Agree(a, b)

		require.Error(t, err, "Drifted shares should not agree")
		require.ErrorContains(t, err, "differs")
	})

	t.Run("rejecting a missing owner", func(t *testing.T) {
		a := game.ShapleyValues{1: 0.5, 2: 0.5}
		b := game.ShapleyValues{1: 0.5, 3: 0.5}

		require.Error(t, Agree(a, b), "Different owner sets should not agree")
	})
}

func TestRandomGame(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		g := RandomGame(rng, 8, 6)

		require.NoError(t, g.Validate(), "Every drawn game should be valid")
		require.Equal(t, 8, g.Owners.Size(), "Every owner should be carried")
		require.GreaterOrEqual(t, g.Formula.Len(), 1, "Formula should keep at least one pattern")
		require.LessOrEqual(t, g.Formula.Len(), 6, "Minimization should never add patterns")
		require.True(t, g.Formula.Eval(g.Owners.Slice()...),
			"The full coalition should win")

		for _, id := range g.Formula.Variables() {
			require.True(t, id >= 1 && id <= 8, "Owner ids should stay in range")
		}
	}
}

func TestToSolverConfigs(t *testing.T) {
	configs := []AblationConfig{
		{ID: 3, Name: "no_hybrid", Ablation: solver.DisableHybrid, Goroutines: 4},
	}

	got := toSolverConfigs(configs)

	require.Len(t, got, 1, "Should convert every config")
	require.Equal(t, 3, got[0].ID, "Should keep the id")
	require.Equal(t, "no_hybrid", got[0].Name, "Should keep the name")
	require.Equal(t, "disable_hybrid", got[0].Ablation, "Should store the setting by name")
	require.Equal(t, 4, got[0].Goroutines, "Should keep the budget")
}
