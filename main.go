package main

import (
	"fmt"
	"shapley/dnf"
	"shapley/experiments"
	"shapley/game"
	"shapley/solver"
)

func main() {
	runAblationDemo()
	experiments.RunAblationExperiment()
	experiments.RunSpeedupExperiment()
}

func runAblationDemo() {
	formula := dnf.New(
		[]game.OwnerId{1, 2, 4},
		[]game.OwnerId{1, 2, 5},
		[]game.OwnerId{2, 3, 4},
		[]game.OwnerId{2, 3, 5},
		[]game.OwnerId{4, 5},
	)
	g := game.New(formula)
	ablations := []solver.Ablation{
		solver.DisableNothing,
		solver.DisableDisjunctive,
		solver.DisableConjunctive,
		solver.DisableHybrid,
		solver.DisableAll,
	}

	fmt.Printf("Computing Shapley values for %s...\n", formula)
	for _, ablation := range ablations {
		s := solver.New(ablation, solver.WithMetrics())
		values, metric, err := s.Shapley(g)
		if err != nil {
			panic(fmt.Sprintf("failed to solve demo game: %v", err))
		}

		fmt.Printf("%s (build %s, solve %s):\n", ablation, metric.BuildDuration, metric.SolveDuration)
		for _, id := range g.Owners.Slice() {
			fmt.Printf("  owner %d: %.6f\n", id, values[id])
		}
	}
	fmt.Printf("Finished ablation demo.\n")
}
