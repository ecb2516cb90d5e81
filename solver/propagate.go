package solver

import (
	"shapley/coeffs"
	"shapley/game"
)

// propagate walks the tree top-down, carrying the accumulated weighting
// term, and returns each owner's share of the subtree. The initial call at
// the tree root passes the multiplicative identity.
func (s *Solver) propagate(n node, weight coeffs.Coeffs) game.ShapleyValues {
	switch n := n.(type) {
	case varNode:
		return game.ShapleyValues{n.id: coeffs.Unit().Mul(weight).Evaluate()}

	case *andNode:
		// A child only matters once every other factor is already won.
		return s.spread(n.children, n.others, weight, func(weight, others coeffs.Coeffs) coeffs.Coeffs {
			return weight.Mul(others)
		})

	case *orNode:
		// Remove the mass where some other alternative already won.
		return s.spread(n.children, n.others, weight, func(weight, others coeffs.Coeffs) coeffs.Coeffs {
			return weight.Sub(weight.Mul(others))
		})

	case *hybridNode:
		return s.spreadHybrid(n, weight)

	case *leafNode:
		return s.spreadLeaf(n, weight)
	}
	panic("solver: unknown tree node")
}

// spread recurses into every child with its reweighted term. Variable
// children all share one all-but-one combination, so their closed-form share
// is computed once and reused.
func (s *Solver) spread(children []node, others []coeffs.Coeffs, weight coeffs.Coeffs, next func(weight, others coeffs.Coeffs) coeffs.Coeffs) game.ShapleyValues {
	parts := make([]game.ShapleyValues, len(children))
	s.forEach(len(children), func(i int) {
		if _, ok := children[i].(varNode); ok {
			return
		}
		parts[i] = s.propagate(children[i], next(weight, others[i]))
	})

	values := game.ShapleyValues{}
	for _, part := range parts {
		if part != nil {
			values.Merge(part)
		}
	}

	share := 0.0
	computed := false
	for i, c := range children {
		v, ok := c.(varNode)
		if !ok {
			continue
		}
		if !computed {
			share = coeffs.Unit().Mul(next(weight, others[i])).Evaluate()
			computed = true
		}
		values.Merge(game.ShapleyValues{v.id: share})
	}
	return values
}

// spreadHybrid reweights each child by its role in the index formula: the
// child's direct contribution minus its interaction with the patterns it
// takes no part in.
func (s *Solver) spreadHybrid(n *hybridNode, weight coeffs.Coeffs) game.ShapleyValues {
	parts := make([]game.ShapleyValues, len(n.children))
	s.forEach(len(n.children), func(i int) {
		u2 := s.hybridUnions(n.exp.PartialEval(i))
		u3 := s.hybridUnions(n.exp.Without(i))
		direct := n.hc.Unions(u2)
		interaction := n.hc.Interaction(u2, u3)
		parts[i] = s.propagate(n.children[i], weight.Mul(direct.Sub(interaction)))
	})

	values := game.ShapleyValues{}
	for _, part := range parts {
		values.Merge(part)
	}
	return values
}

// spreadLeaf runs the inclusion-exclusion procedure per variable of an
// irreducible leaf.
func (s *Solver) spreadLeaf(n *leafNode, weight coeffs.Coeffs) game.ShapleyValues {
	vars := n.exp.Variables()
	parts := make([]game.ShapleyValues, len(vars))
	s.forEach(len(vars), func(i int) {
		c := vars[i]
		p2 := n.exp.PartialEval(c)
		p3 := n.exp.Without(c)
		u2 := unionsOf(p2)
		u3 := unionsOf(p3)
		s.metrics.AddUnionTerms(len(u2) + len(u3))
		direct := unionCoeffs(u2)
		interaction := unionInteraction(u2, u3)

		var next coeffs.Coeffs
		if p2.VarCount() == 0 {
			// Fixing c true decides the leaf outright; only the
			// interaction with the untouched implicants remains.
			next = weight.Sub(weight.Mul(interaction))
		} else {
			next = weight.Mul(direct.Sub(interaction))
		}
		parts[i] = game.ShapleyValues{c: coeffs.Unit().Mul(next).Evaluate()}
	})

	values := game.ShapleyValues{}
	for _, part := range parts {
		values.Merge(part)
	}
	return values
}
