package solver

import (
	"shapley/coeffs"
	"shapley/dnf"
	"shapley/game"
	"shapley/producttree"
)

// node is one node of the tree the solver walks: the structural
// decomposition with every non-root node annotated by the coefficients
// summarizing its subtree.
type node interface {
	coeffs() coeffs.Coeffs
}

type varNode struct {
	id game.OwnerId
}

type andNode struct {
	own      coeffs.Coeffs   // nil at the tree root
	others   []coeffs.Coeffs // per child, the combination of all other children
	children []node
}

type orNode struct {
	own      coeffs.Coeffs
	others   []coeffs.Coeffs
	children []node
}

type hybridNode struct {
	own      coeffs.Coeffs
	hc       *coeffs.Hybrid
	exp      dnf.Dnf[int]
	children []node
}

type leafNode struct {
	own coeffs.Coeffs
	exp dnf.Dnf[game.OwnerId]
}

func (n varNode) coeffs() coeffs.Coeffs     { return coeffs.Unit() }
func (n *andNode) coeffs() coeffs.Coeffs    { return mustCoeffs(n.own) }
func (n *orNode) coeffs() coeffs.Coeffs     { return mustCoeffs(n.own) }
func (n *hybridNode) coeffs() coeffs.Coeffs { return mustCoeffs(n.own) }
func (n *leafNode) coeffs() coeffs.Coeffs   { return mustCoeffs(n.own) }

func mustCoeffs(own coeffs.Coeffs) coeffs.Coeffs {
	if own == nil {
		panic("solver: tree root never summarizes upward")
	}
	return own
}

// build folds a structural decomposition into a solver tree, honoring the
// ablation setting. The tree root carries no summarizing coefficients.
func (s *Solver) build(d dnf.Decomposition[game.OwnerId], isRoot bool) node {
	switch d := d.(type) {
	case dnf.Var[game.OwnerId]:
		s.metrics.AddVariableNode()
		return varNode{id: d.Id}

	case dnf.And[game.OwnerId]:
		if s.ablation.conjunctiveEnabled() {
			children, childCoeffs := s.buildAll(d.Subs)
			tree := producttree.New(childCoeffs, coeffs.Conjoin)
			n := &andNode{
				others:   tree.AllButOne(coeffs.ConjoinIdentity()),
				children: children,
			}
			if !isRoot {
				n.own = tree.Root()
			}
			s.metrics.AddConjunctiveNode()
			return n
		}

	case dnf.Or[game.OwnerId]:
		if s.ablation.disjunctiveEnabled() {
			children, childCoeffs := s.buildAll(d.Subs)
			tree := producttree.New(childCoeffs, coeffs.Disjoin)
			n := &orNode{
				others:   tree.AllButOne(coeffs.DisjoinIdentity()),
				children: children,
			}
			if !isRoot {
				n.own = tree.Root()
			}
			s.metrics.AddDisjunctiveNode()
			return n
		}

	case dnf.Hybrid[game.OwnerId]:
		if s.ablation.hybridEnabled() {
			children, childCoeffs := s.buildAll(d.Subs)
			hc := coeffs.NewHybrid(childCoeffs)
			n := &hybridNode{
				hc:       hc,
				exp:      d.Exp,
				children: children,
			}
			if !isRoot {
				n.own = hc.Unions(s.hybridUnions(d.Exp))
			}
			s.metrics.AddHybridNode()
			return n
		}
	}

	// Disabled mode or nothing left to split: flatten into a leaf.
	exp := d.Expand()
	n := &leafNode{exp: exp}
	if !isRoot {
		n.own = s.leafCoeffs(exp)
	}
	s.metrics.AddLeafNode(exp.Len())
	return n
}

// buildAll builds every child and collects their coefficients. Children are
// independent, so the fan-out is safe.
func (s *Solver) buildAll(subs []dnf.Decomposition[game.OwnerId]) ([]node, []coeffs.Coeffs) {
	children := make([]node, len(subs))
	s.forEach(len(subs), func(i int) {
		children[i] = s.build(subs[i], false)
	})

	childCoeffs := make([]coeffs.Coeffs, len(children))
	for i, c := range children {
		childCoeffs[i] = c.coeffs()
	}
	return children, childCoeffs
}
