package game

import (
	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"

	"shapley/dnf"
)

// Game is a monotone simple cooperative game. A coalition of owners wins
// exactly when it satisfies Formula; every other coalition loses. Owners may
// include ids that never appear in the formula (dummies), but not the other
// way around.
type Game struct {
	Formula dnf.Dnf[OwnerId]
	Owners  *set.TreeSet[OwnerId]
}

// New builds a game from a winning formula. When no owners are given the
// owner set is exactly the formula's variables; passing owners explicitly
// lets the game carry dummy owners on top of them.
func New(formula dnf.Dnf[OwnerId], owners ...OwnerId) Game {
	ownerSet := NewOwners(owners...)
	if ownerSet.Empty() {
		ownerSet = NewOwners(formula.Variables()...)
	}
	return Game{Formula: formula, Owners: ownerSet}
}

// Validate checks that every formula variable belongs to the owner set.
func (g Game) Validate() error {
	for _, id := range g.Formula.Variables() {
		if !g.Owners.Contains(id) {
			return errors.Errorf("owner %d appears in the formula but not in the owner set", id)
		}
	}
	return nil
}
