package game

import (
	"shapley/dnf"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOwners(t *testing.T) {
	owners := NewOwners(3, 1, 2, 3, 1)

	require.Equal(t, 3, owners.Size(), "Should deduplicate ids")
	require.Equal(t, []OwnerId{1, 2, 3}, owners.Slice(), "Should order ids ascending")
}

func TestNewGame(t *testing.T) {
	t.Run("deriving owners from the formula", func(t *testing.T) {
		g := New(dnf.New([]OwnerId{2, 5}, []OwnerId{1}))

		require.Equal(t, []OwnerId{1, 2, 5}, g.Owners.Slice(),
			"Owner set should cover every formula variable")
		require.NoError(t, g.Validate(), "Derived owners should validate")
	})

	t.Run("keeping explicit dummy owners", func(t *testing.T) {
		g := New(dnf.New([]OwnerId{1, 2}), 1, 2, 7)

		require.Equal(t, []OwnerId{1, 2, 7}, g.Owners.Slice(), "Should keep the dummy owner")
		require.NoError(t, g.Validate(), "Dummy owners are allowed")
	})

	t.Run("rejecting formula variables without owners", func(t *testing.T) {
		g := Game{Formula: dnf.New([]OwnerId{1, 2}), Owners: NewOwners(2)}

		err := g.Validate()

		require.Error(t, err, "Should reject the uncovered variable")
		require.ErrorContains(t, err, "owner 1")
	})
}

func TestShapleyValues(t *testing.T) {
	t.Run("summing shares", func(t *testing.T) {
		sv := ShapleyValues{1: 0.25, 2: 0.75}
		require.InDelta(t, 1.0, sv.Sum(), 1e-12, "Should add every share")
	})

	t.Run("merging disjoint owners", func(t *testing.T) {
		sv := ShapleyValues{1: 0.5}
		sv.Merge(ShapleyValues{2: 0.3, 3: 0.2})
		require.Equal(t, ShapleyValues{1: 0.5, 2: 0.3, 3: 0.2}, sv,
			"Should fold the other mapping in")
	})

	t.Run("refusing colliding owners", func(t *testing.T) {
		sv := ShapleyValues{1: 0.5}
		require.Panics(t, func() { sv.Merge(ShapleyValues{1: 0.1}) },
			"Two blocks claiming the same owner should panic")
	})
}
