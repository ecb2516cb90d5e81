package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("recording one run", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, "disable_nothing")
		c.AddVariableNode()
		c.AddVariableNode()
		c.AddConjunctiveNode()
		c.AddDisjunctiveNode()
		c.AddHybridNode()
		c.AddLeafNode(5)
		c.AddLeafNode(2)
		c.AddUnionTerms(7)
		c.TreeBuilt()

		got := c.Complete()

		require.Equal(t, 4, got.Goroutines, "Should record the goroutine budget")
		require.Equal(t, "disable_nothing", got.Ablation, "Should record the setting")
		require.Equal(t, 2, got.VariableNodes, "Should count variable nodes")
		require.Equal(t, 1, got.ConjunctiveNodes, "Should count conjunctive nodes")
		require.Equal(t, 1, got.DisjunctiveNodes, "Should count disjunctive nodes")
		require.Equal(t, 1, got.HybridNodes, "Should count hybrid nodes")
		require.Equal(t, 2, got.LeafNodes, "Should count leaf nodes")
		require.Equal(t, 7, got.LeafImplicants, "Should sum the leaf sizes")
		require.Equal(t, 7, got.UnionTerms, "Should sum the union terms")
		require.GreaterOrEqual(t, got.BuildDuration, time.Duration(0),
			"Build phase should end after it starts")
		require.GreaterOrEqual(t, got.SolveDuration, time.Duration(0),
			"Solve phase should end after the build")
	})

	t.Run("counting from many goroutines", func(t *testing.T) {
		c := NewCollector()
		c.Start(8, "disable_nothing")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddVariableNode()
					c.AddUnionTerms(3)
				}
			}()
		}
		wg.Wait()
		c.TreeBuilt()

		got := c.Complete()

		require.Equal(t, 800, got.VariableNodes, "Should count every node exactly once")
		require.Equal(t, 2400, got.UnionTerms, "Should count every term exactly once")
	})
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start(8, "disable_all")
	c.AddVariableNode()
	c.AddLeafNode(3)
	c.TreeBuilt()

	require.Equal(t, SolveMetric{}, c.Complete(), "Dummy should never record anything")
}
