package game

import (
	set "github.com/hashicorp/go-set/v3"
)

// OwnerId identifies one player (data owner) in a coalition game.
type OwnerId uint64

// CompareOwners orders two owners; it is the comparator for owner sets.
func CompareOwners(a, b OwnerId) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// NewOwners builds an ordered owner set.
func NewOwners(ids ...OwnerId) *set.TreeSet[OwnerId] {
	owners := set.NewTreeSet(CompareOwners)
	for _, id := range ids {
		owners.Insert(id)
	}
	return owners
}

// ShapleyValues maps each owner to its share of the game's single unit of
// power.
type ShapleyValues map[OwnerId]float64

// Sum adds up all shares.
func (sv ShapleyValues) Sum() float64 {
	total := 0.0
	for _, share := range sv {
		total += share
	}
	return total
}

// Merge folds other into sv. Keys must be disjoint: a collision means two
// sibling blocks claimed the same owner, which would silently corrupt the
// shares, so it panics instead.
func (sv ShapleyValues) Merge(other ShapleyValues) {
	for id, share := range other {
		if _, ok := sv[id]; ok {
			panic("game: duplicate owner share during merge")
		}
		sv[id] = share
	}
}
