package solver

import (
	"shapley/coeffs"
	"shapley/dnf"
	"shapley/game"
	"shapley/unioncomb"

	"golang.org/x/exp/constraints"
)

// union is one merged combination of implicants: the merged variable set and
// how many implicants formed it.
type union[V constraints.Ordered] struct {
	set    dnf.Implicant[V]
	merged int
}

// unionsOf enumerates every union of a subset of f's implicants, discarding
// unions that cover every variable before the last implicant: the later
// implicants regenerate the same covering set with alternating signs, so the
// whole family cancels.
func unionsOf[V constraints.Ordered](f dnf.Dnf[V]) []union[V] {
	imps := f.Implicants()
	total := f.VarCount()
	last := len(imps) - 1
	return unioncomb.Enumerate(len(imps),
		func(i int) union[V] {
			return union[V]{set: imps[i], merged: 1}
		},
		func(u union[V], i int) (union[V], bool) {
			next := union[V]{set: u.set.Union(imps[i]), merged: u.merged + 1}
			if next.set.Len() == total && i != last {
				return union[V]{}, false
			}
			return next, true
		})
}

// unionCoeffs is the inclusion-exclusion sum over an enumeration: a union of
// k variables merged from m implicants weighs +1 at size k when m is odd and
// -1 when it is even.
func unionCoeffs[V constraints.Ordered](unions []union[V]) coeffs.Coeffs {
	out := coeffs.Zero()
	for _, u := range unions {
		out = out.Add(coeffs.New(u.set.Len(), coeffs.Sign(u.merged)))
	}
	return out
}

// unionInteraction sums the cross terms of two enumerations. The merged sets
// may overlap, so sizes come from their set union.
func unionInteraction[V constraints.Ordered](a, b []union[V]) coeffs.Coeffs {
	out := coeffs.Zero()
	for _, u := range a {
		for _, v := range b {
			size := u.set.Union(v.set).Len()
			out = out.Add(coeffs.New(size, coeffs.Sign(u.merged)*coeffs.Sign(v.merged)))
		}
	}
	return out
}

// leafCoeffs reconstructs a leaf's winning generating function from its
// implicants by inclusion-exclusion over their unions.
func (s *Solver) leafCoeffs(exp dnf.Dnf[game.OwnerId]) coeffs.Coeffs {
	unions := unionsOf(exp)
	s.metrics.AddUnionTerms(len(unions))
	return unionCoeffs(unions)
}

// hybridUnions enumerates an index formula's implicant unions in the form
// the hybrid algebra consumes.
func (s *Solver) hybridUnions(exp dnf.Dnf[int]) []coeffs.Union {
	unions := unionsOf(exp)
	s.metrics.AddUnionTerms(len(unions))

	out := make([]coeffs.Union, len(unions))
	for i, u := range unions {
		out[i] = coeffs.Union{Members: u.set.Vars(), Merged: u.merged}
	}
	return out
}
