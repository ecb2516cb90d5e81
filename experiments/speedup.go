package experiments

import (
	"fmt"

	"shapley/solver"

	"golang.org/x/exp/rand"
)

// RunSpeedupExperiment measures how solver wall time scales with the
// goroutine budget. Every setting keeps the full decomposition enabled, so
// the agreement check doubles as a determinism check across parallelism.
func RunSpeedupExperiment() {
	configs := []AblationConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16} {
		configs = append(configs, AblationConfig{
			ID:         i + 1,
			Name:       fmt.Sprintf("goroutines_%d", goroutines),
			Ablation:   solver.DisableNothing,
			Goroutines: goroutines,
		})
	}

	runExperiment("speedup", configs, heavyGames())
}

// heavyGames picks games whose trees are deep or wide enough for the
// fan-out to matter.
func heavyGames() []GameCase {
	games := []GameCase{performanceCase()}

	rng := rand.New(rand.NewSource(41))
	for i := 0; i < 3; i++ {
		games = append(games, GameCase{
			Name: fmt.Sprintf("random_wide_%d", i+1),
			Game: RandomGame(rng, 12, 9),
		})
	}
	return games
}
