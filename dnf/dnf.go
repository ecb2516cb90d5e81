// Package dnf implements boolean formulas in minimal disjunctive normal form
// over an ordered variable type, plus the structural decomposition into
// independent blocks that the solver exploits.
package dnf

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Implicant is a conjunction of variables: one minimal winning pattern of a
// formula. Variables are kept sorted and unique.
type Implicant[V constraints.Ordered] struct {
	vars []V
}

// NewImplicant copies vars into a sorted, deduplicated implicant.
func NewImplicant[V constraints.Ordered](vars ...V) Implicant[V] {
	vs := make([]V, len(vars))
	copy(vs, vars)
	slices.Sort(vs)
	out := vs[:0]
	for _, v := range vs {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Implicant[V]{vars: out}
}

func (im Implicant[V]) Len() int {
	return len(im.vars)
}

func (im Implicant[V]) Empty() bool {
	return len(im.vars) == 0
}

// Vars returns the variables in ascending order.
func (im Implicant[V]) Vars() []V {
	out := make([]V, len(im.vars))
	copy(out, im.vars)
	return out
}

// Contains reports whether v appears in the implicant.
func (im Implicant[V]) Contains(v V) bool {
	_, ok := slices.BinarySearch(im.vars, v)
	return ok
}

// SubsetOf reports whether every variable of im appears in other.
func (im Implicant[V]) SubsetOf(other Implicant[V]) bool {
	if len(im.vars) > len(other.vars) {
		return false
	}
	j := 0
	for _, v := range im.vars {
		for j < len(other.vars) && other.vars[j] < v {
			j++
		}
		if j == len(other.vars) || other.vars[j] != v {
			return false
		}
		j++
	}
	return true
}

// Union merges the variables of both implicants.
func (im Implicant[V]) Union(other Implicant[V]) Implicant[V] {
	merged := make([]V, 0, len(im.vars)+len(other.vars))
	i, j := 0, 0
	for i < len(im.vars) && j < len(other.vars) {
		switch {
		case im.vars[i] < other.vars[j]:
			merged = append(merged, im.vars[i])
			i++
		case im.vars[i] > other.vars[j]:
			merged = append(merged, other.vars[j])
			j++
		default:
			merged = append(merged, im.vars[i])
			i++
			j++
		}
	}
	merged = append(merged, im.vars[i:]...)
	merged = append(merged, other.vars[j:]...)
	return Implicant[V]{vars: merged}
}

// Minus removes vars from the implicant.
func (im Implicant[V]) Minus(vars ...V) Implicant[V] {
	kept := make([]V, 0, len(im.vars))
	for _, v := range im.vars {
		if !slices.Contains(vars, v) {
			kept = append(kept, v)
		}
	}
	return Implicant[V]{vars: kept}
}

// Intersect keeps only the variables also present in vars.
func (im Implicant[V]) Intersect(vars ...V) Implicant[V] {
	kept := make([]V, 0, len(im.vars))
	for _, v := range im.vars {
		if slices.Contains(vars, v) {
			kept = append(kept, v)
		}
	}
	return Implicant[V]{vars: kept}
}

// Disjoint reports whether im shares no variable with vars.
func (im Implicant[V]) Disjoint(vars ...V) bool {
	for _, v := range im.vars {
		if slices.Contains(vars, v) {
			return false
		}
	}
	return true
}

func (im Implicant[V]) Equal(other Implicant[V]) bool {
	return slices.Equal(im.vars, other.vars)
}

// Key returns a canonical string identifying the variable set, usable as a
// map key.
func (im Implicant[V]) Key() string {
	var sb strings.Builder
	for _, v := range im.vars {
		fmt.Fprintf(&sb, "%v|", v)
	}
	return sb.String()
}

func (im Implicant[V]) String() string {
	if len(im.vars) == 0 {
		return "true"
	}
	parts := make([]string, len(im.vars))
	for i, v := range im.vars {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "&")
}

// lessImplicant orders implicants lexicographically by their sorted
// variables, shorter prefixes first. This is the canonical implicant order.
func lessImplicant[V constraints.Ordered](a, b Implicant[V]) bool {
	n := len(a.vars)
	if len(b.vars) < n {
		n = len(b.vars)
	}
	for i := 0; i < n; i++ {
		if a.vars[i] != b.vars[i] {
			return a.vars[i] < b.vars[i]
		}
	}
	return len(a.vars) < len(b.vars)
}

// Dnf is a formula in minimal disjunctive normal form: an antichain of
// implicants in canonical order. The zero value has no implicant and is the
// constant false; a single empty implicant is the constant true.
type Dnf[V constraints.Ordered] struct {
	imps []Implicant[V]
}

// New builds a minimal formula from one variable list per implicant.
func New[V constraints.Ordered](implicants ...[]V) Dnf[V] {
	imps := make([]Implicant[V], 0, len(implicants))
	for _, vars := range implicants {
		imps = append(imps, NewImplicant(vars...))
	}
	return FromImplicants(imps)
}

// True returns the constant-true formula.
func True[V constraints.Ordered]() Dnf[V] {
	return Dnf[V]{imps: []Implicant[V]{{}}}
}

// False returns the constant-false formula.
func False[V constraints.Ordered]() Dnf[V] {
	return Dnf[V]{}
}

// FromImplicants builds a minimal formula: duplicate implicants and
// implicants containing another implicant are dropped.
func FromImplicants[V constraints.Ordered](imps []Implicant[V]) Dnf[V] {
	byLen := make([]Implicant[V], len(imps))
	copy(byLen, imps)
	slices.SortFunc(byLen, func(a, b Implicant[V]) int {
		if len(a.vars) != len(b.vars) {
			return len(a.vars) - len(b.vars)
		}
		if lessImplicant(a, b) {
			return -1
		}
		if lessImplicant(b, a) {
			return 1
		}
		return 0
	})

	kept := make([]Implicant[V], 0, len(byLen))
	for _, im := range byLen {
		absorbed := false
		for _, min := range kept {
			if min.SubsetOf(im) {
				absorbed = true
				break
			}
		}
		if !absorbed {
			kept = append(kept, im)
		}
	}

	slices.SortFunc(kept, func(a, b Implicant[V]) int {
		if lessImplicant(a, b) {
			return -1
		}
		if lessImplicant(b, a) {
			return 1
		}
		return 0
	})
	return Dnf[V]{imps: kept}
}

// Implicants returns the implicants in canonical order.
func (d Dnf[V]) Implicants() []Implicant[V] {
	out := make([]Implicant[V], len(d.imps))
	copy(out, d.imps)
	return out
}

// Len returns the number of implicants.
func (d Dnf[V]) Len() int {
	return len(d.imps)
}

func (d Dnf[V]) IsFalse() bool {
	return len(d.imps) == 0
}

func (d Dnf[V]) IsTrue() bool {
	return len(d.imps) == 1 && d.imps[0].Empty()
}

// Variables returns every variable of the formula in ascending order.
func (d Dnf[V]) Variables() []V {
	seen := map[V]struct{}{}
	out := []V{}
	for _, im := range d.imps {
		for _, v := range im.vars {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return out
}

// VarCount returns the number of distinct variables.
func (d Dnf[V]) VarCount() int {
	seen := map[V]struct{}{}
	for _, im := range d.imps {
		for _, v := range im.vars {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// PartialEval fixes vars to true: they are removed from every implicant and
// the result re-minimized. Fixing a whole implicant yields the constant true.
func (d Dnf[V]) PartialEval(vars ...V) Dnf[V] {
	imps := make([]Implicant[V], 0, len(d.imps))
	for _, im := range d.imps {
		imps = append(imps, im.Minus(vars...))
	}
	return FromImplicants(imps)
}

// Without keeps only the implicants sharing no variable with vars. A subset
// of an antichain stays minimal, so no re-normalization happens.
func (d Dnf[V]) Without(vars ...V) Dnf[V] {
	kept := make([]Implicant[V], 0, len(d.imps))
	for _, im := range d.imps {
		if im.Disjoint(vars...) {
			kept = append(kept, im)
		}
	}
	return Dnf[V]{imps: kept}
}

// And conjoins two formulas: the pairwise unions of their implicants,
// re-minimized.
func (d Dnf[V]) And(other Dnf[V]) Dnf[V] {
	if d.IsFalse() || other.IsFalse() {
		return False[V]()
	}
	imps := make([]Implicant[V], 0, len(d.imps)*len(other.imps))
	for _, a := range d.imps {
		for _, b := range other.imps {
			imps = append(imps, a.Union(b))
		}
	}
	return FromImplicants(imps)
}

// Or joins two formulas, re-minimized.
func (d Dnf[V]) Or(other Dnf[V]) Dnf[V] {
	return FromImplicants(append(d.Implicants(), other.imps...))
}

// Eval reports whether the coalition wins: some implicant lies fully inside
// it.
func (d Dnf[V]) Eval(coalition ...V) bool {
	for _, im := range d.imps {
		inside := true
		for _, v := range im.vars {
			if !slices.Contains(coalition, v) {
				inside = false
				break
			}
		}
		if inside {
			return true
		}
	}
	return false
}

// Equal compares canonical forms.
func (d Dnf[V]) Equal(other Dnf[V]) bool {
	if len(d.imps) != len(other.imps) {
		return false
	}
	for i := range d.imps {
		if !d.imps[i].Equal(other.imps[i]) {
			return false
		}
	}
	return true
}

func (d Dnf[V]) String() string {
	if d.IsFalse() {
		return "false"
	}
	parts := make([]string, len(d.imps))
	for i, im := range d.imps {
		parts[i] = im.String()
	}
	return strings.Join(parts, " | ")
}
