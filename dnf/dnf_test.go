package dnf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewImplicant(t *testing.T) {
	im := NewImplicant(3, 1, 3, 2)

	require.Equal(t, []int{1, 2, 3}, im.Vars(), "Should sort and deduplicate variables")
	require.Equal(t, 3, im.Len(), "Should count distinct variables")
	require.True(t, im.Contains(2), "Should find a member")
	require.False(t, im.Contains(4), "Should miss a non-member")
	require.Equal(t, "1&2&3", im.String(), "Should join members")
	require.Equal(t, "true", NewImplicant[int]().String(), "Empty conjunction is true")
}

func TestImplicantOps(t *testing.T) {
	im := NewImplicant(1, 2, 3)

	require.True(t, NewImplicant(1, 3).SubsetOf(im), "Should detect a subset")
	require.False(t, NewImplicant(1, 4).SubsetOf(im), "Should reject a non-subset")
	require.Equal(t, []int{1, 2, 3, 4}, im.Union(NewImplicant(2, 4)).Vars(),
		"Union should merge without duplicates")
	require.Equal(t, []int{1, 3}, im.Minus(2, 5).Vars(), "Minus should drop members only")
	require.Equal(t, []int{2, 3}, im.Intersect(2, 3, 9).Vars(), "Intersect should keep members only")
	require.True(t, im.Disjoint(4, 5), "Should be disjoint from strangers")
	require.False(t, im.Disjoint(3, 6), "Should overlap on a member")
}

func TestNewMinimizes(t *testing.T) {
	t.Run("absorbing supersets", func(t *testing.T) {
		f := New([]int{1, 2, 3}, []int{1, 2}, []int{2, 1})

		require.Equal(t, 1, f.Len(), "Superset and duplicate should be absorbed")
		require.Equal(t, "1&2", f.String(), "Only the minimal pattern should survive")
	})

	t.Run("ordering the antichain", func(t *testing.T) {
		f := New([]int{4}, []int{1, 3}, []int{1, 2})

		require.Equal(t, "1&2 | 1&3 | 4", f.String(),
			"Patterns should sort lexicographically")
	})

	t.Run("constants", func(t *testing.T) {
		require.True(t, New[int]().IsFalse(), "No pattern is the constant false")
		require.True(t, New([]int{}, []int{1}).IsTrue(),
			"An empty pattern absorbs everything")
		require.Equal(t, "false", False[int]().String(), "False should print itself")
		require.Equal(t, "true", True[int]().String(), "True should print itself")
	})
}

func TestVariables(t *testing.T) {
	f := New([]int{3, 1}, []int{2, 3}, []int{5})

	require.Equal(t, []int{1, 2, 3, 5}, f.Variables(), "Should list distinct variables sorted")
	require.Equal(t, 4, f.VarCount(), "Should count distinct variables")
	require.Empty(t, False[int]().Variables(), "Constants have no variables")
}

func TestPartialEval(t *testing.T) {
	f := New([]int{1, 2}, []int{3, 4})

	require.True(t, f.PartialEval(1).Equal(New([]int{2}, []int{3, 4})),
		"Fixing a variable should shrink its patterns")
	require.True(t, f.PartialEval(1, 2).IsTrue(),
		"Fixing a whole pattern should decide the formula")
	require.True(t, f.PartialEval(9).Equal(f),
		"Fixing an absent variable should change nothing")
}

func TestWithout(t *testing.T) {
	f := New([]int{1, 2}, []int{3, 4}, []int{1, 3})

	require.True(t, f.Without(1).Equal(New([]int{3, 4})),
		"Should drop every pattern touching the variable")
	require.True(t, f.Without(1, 4).IsFalse(),
		"Dropping every pattern should leave false")
	require.True(t, f.Without(9).Equal(f),
		"An absent variable should drop nothing")
}

func TestAndOr(t *testing.T) {
	t.Run("conjunction distributes", func(t *testing.T) {
		f := New([]int{1}, []int{2}).And(New([]int{3}))

		require.True(t, f.Equal(New([]int{1, 3}, []int{2, 3})),
			"Should distribute over the alternatives")
		require.True(t, f.And(False[int]()).IsFalse(), "Conjunction with false is false")
		require.True(t, f.And(True[int]()).Equal(f), "Conjunction with true changes nothing")
	})

	t.Run("disjunction absorbs", func(t *testing.T) {
		f := New([]int{1, 2}).Or(New([]int{1}))

		require.True(t, f.Equal(New([]int{1})), "The weaker pattern should absorb")
		require.True(t, f.Or(True[int]()).IsTrue(), "Disjunction with true is true")
		require.True(t, f.Or(False[int]()).Equal(f), "Disjunction with false changes nothing")
	})
}

func TestEval(t *testing.T) {
	f := New([]int{1, 2}, []int{3})

	require.True(t, f.Eval(1, 2), "A full pattern should win")
	require.True(t, f.Eval(3, 7), "A superset of a pattern should win")
	require.False(t, f.Eval(1), "A partial pattern should lose")
	require.False(t, f.Eval(), "The empty coalition should lose")
	require.True(t, True[int]().Eval(), "True wins with nobody")
	require.False(t, False[int]().Eval(1, 2, 3), "False loses with everybody")
}
