package dnf

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"shapley/meta"
	"shapley/utils"
)

// Decomposition is one node of the structural split of a formula: a single
// variable, independent alternatives (Or), independent factors (And), a
// modular split governed by an index formula (Hybrid), or an irreducible
// formula (Prime). Sibling subtrees never share a variable.
type Decomposition[V constraints.Ordered] interface {
	// Expand flattens the node back into the flat formula it stands for.
	Expand() Dnf[V]
	isDecomposition()
}

// Var is a single-variable formula.
type Var[V constraints.Ordered] struct {
	Id V
}

// And is a conjunction of variable-disjoint factors.
type And[V constraints.Ordered] struct {
	Subs []Decomposition[V]
}

// Or is a disjunction of variable-disjoint alternatives.
type Or[V constraints.Ordered] struct {
	Subs []Decomposition[V]
}

// Hybrid combines variable-disjoint blocks by the index formula Exp: the
// implicant {0,2} of Exp wins when children 0 and 2 both win.
type Hybrid[V constraints.Ordered] struct {
	Exp  Dnf[int]
	Subs []Decomposition[V]
}

// Prime is an irreducible formula with no further split.
type Prime[V constraints.Ordered] struct {
	Exp Dnf[V]
}

func (Var[V]) isDecomposition()    {}
func (And[V]) isDecomposition()    {}
func (Or[V]) isDecomposition()     {}
func (Hybrid[V]) isDecomposition() {}
func (Prime[V]) isDecomposition()  {}

func (v Var[V]) Expand() Dnf[V] {
	return New([]V{v.Id})
}

func (a And[V]) Expand() Dnf[V] {
	out := True[V]()
	for _, s := range a.Subs {
		out = out.And(s.Expand())
	}
	return out
}

func (o Or[V]) Expand() Dnf[V] {
	out := False[V]()
	for _, s := range o.Subs {
		out = out.Or(s.Expand())
	}
	return out
}

func (h Hybrid[V]) Expand() Dnf[V] {
	out := False[V]()
	for _, pattern := range h.Exp.Implicants() {
		term := True[V]()
		for _, j := range pattern.Vars() {
			term = term.And(h.Subs[j].Expand())
		}
		out = out.Or(term)
	}
	return out
}

func (p Prime[V]) Expand() Dnf[V] {
	return p.Exp
}

// Decompose classifies f into nested independent blocks: Var for a single
// variable, Or over the connected components of the implicant graph, And
// over the finest partition whose factors multiply back to f, Hybrid when
// only a modular split exists, and Prime when there is none. Every split is
// verified by an exact reconstruction count, so the returned tree always
// expands back to f; a failed search only costs structure, never
// correctness.
func Decompose[V constraints.Ordered](f Dnf[V]) Decomposition[V] {
	vars := f.Variables()
	if len(vars) == 0 {
		// Constant formulas grant no owner any power.
		return Prime[V]{Exp: f}
	}
	if len(vars) == 1 {
		return Var[V]{Id: vars[0]}
	}

	if parts := components(f); len(parts) > 1 {
		subs := make([]Decomposition[V], len(parts))
		for i, p := range parts {
			subs[i] = Decompose(p)
		}
		return Or[V]{Subs: subs}
	}

	if blocks := productBlocks(f); len(blocks) > 1 {
		subs := make([]Decomposition[V], len(blocks))
		for i, b := range blocks {
			subs[i] = Decompose(projection(f, b))
		}
		return And[V]{Subs: subs}
	}

	if blocks, ok := moduleBlocks(f); ok {
		if exp, traces, ok := quotient(f, blocks); ok {
			subs := make([]Decomposition[V], len(traces))
			for i, tr := range traces {
				subs[i] = Decompose(tr)
			}
			// A single pattern touching every block is a plain conjunction.
			if exp.Len() == 1 && exp.imps[0].Len() == len(blocks) {
				return And[V]{Subs: subs}
			}
			return Hybrid[V]{Exp: exp, Subs: subs}
		}
	}

	return Prime[V]{Exp: f}
}

// components groups the implicants into connected components of the
// share-a-variable graph, ordered by smallest variable.
func components[V constraints.Ordered](f Dnf[V]) []Dnf[V] {
	vars := f.Variables()
	idx := indexOf(vars)
	u := newUnionFind(len(vars))
	for _, im := range f.imps {
		first := idx[im.vars[0]]
		for _, v := range im.vars[1:] {
			u.union(first, idx[v])
		}
	}

	grouped := map[int][]Implicant[V]{}
	for _, im := range f.imps {
		root := u.find(idx[im.vars[0]])
		grouped[root] = append(grouped[root], im)
	}
	if len(grouped) <= 1 {
		return []Dnf[V]{f}
	}

	out := []Dnf[V]{}
	seen := map[int]bool{}
	for i := range vars {
		root := u.find(i)
		if seen[root] {
			continue
		}
		seen[root] = true
		// Implicant order within a component is a subsequence of the
		// canonical order, and a subset of an antichain stays minimal.
		out = append(out, Dnf[V]{imps: grouped[root]})
	}
	return out
}

// productBlocks searches for the finest variable partition whose per-block
// projections multiply back to exactly the implicant set. Returns nil when
// no conjunctive split exists.
func productBlocks[V constraints.Ordered](f Dnf[V]) [][]V {
	vars := f.Variables()
	m := len(f.imps)
	idx := indexOf(vars)

	cnt := make([]int, len(vars))
	pairs := map[[2]int]int{}
	for _, im := range f.imps {
		for i, a := range im.vars {
			ia := idx[a]
			cnt[ia]++
			for _, b := range im.vars[i+1:] {
				pairs[[2]int{ia, idx[b]}]++
			}
		}
	}

	// Variables of independent factors co-occur multiplicatively; any pair
	// breaking that must share a factor.
	u := newUnionFind(len(vars))
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			if cnt[i]*cnt[j] != pairs[[2]int{i, j}]*m {
				u.union(i, j)
			}
		}
	}

	blocks := blocksOf(u, len(vars))
	for len(blocks) > 1 {
		a, b, ok := checkProduct(f, vars, blocks)
		if ok {
			return toVars(vars, blocks)
		}
		blocks = mergeBlocks(blocks, a, b)
	}
	return nil
}

// checkProduct verifies that the projections onto the blocks multiply back
// to exactly the implicant set: the product count equaling the implicant
// count is exact, since every implicant is a combination of its own parts.
// On failure it names two blocks to merge.
func checkProduct[V constraints.Ordered](f Dnf[V], vars []V, blocks [][]int) (int, int, bool) {
	idx := indexOf(vars)
	blockOf := make([]int, len(vars))
	for b, members := range blocks {
		for _, i := range members {
			blockOf[i] = b
		}
	}

	m := len(f.imps)
	partKeys := make([][]string, m)
	projs := make([]map[string]struct{}, len(blocks))
	for b := range projs {
		projs[b] = map[string]struct{}{}
	}
	for i, im := range f.imps {
		partVars := make([][]V, len(blocks))
		for _, v := range im.vars {
			b := blockOf[idx[v]]
			partVars[b] = append(partVars[b], v)
		}
		keys := make([]string, len(blocks))
		for b, pv := range partVars {
			if len(pv) == 0 {
				// A true factorization needs every implicant to touch
				// every block.
				return b, blockOf[idx[im.vars[0]]], false
			}
			key := NewImplicant(pv...).Key()
			keys[b] = key
			projs[b][key] = struct{}{}
		}
		partKeys[i] = keys
	}

	total := 1
	for _, proj := range projs {
		total *= len(proj)
		if total > m {
			break
		}
	}
	if total == m {
		return 0, 0, true
	}

	// Some pair of blocks fails to cross-multiply; merge the worst offender.
	for b1 := 0; b1 < len(blocks); b1++ {
		for b2 := b1 + 1; b2 < len(blocks); b2++ {
			seen := map[string]struct{}{}
			for i := 0; i < m; i++ {
				seen[partKeys[i][b1]+"/"+partKeys[i][b2]] = struct{}{}
			}
			if len(seen) < len(projs[b1])*len(projs[b2]) {
				return b1, b2, false
			}
		}
	}

	// Pairwise consistent yet globally short: merge the two smallest blocks.
	s1, s2 := smallestTwo(blocks)
	return s1, s2, false
}

// projection restricts f to one block of a verified product partition.
func projection[V constraints.Ordered](f Dnf[V], block []V) Dnf[V] {
	parts := make([]Implicant[V], 0, len(f.imps))
	for _, im := range f.imps {
		parts = append(parts, im.Intersect(block...))
	}
	return FromImplicants(parts)
}

// moduleBlocks partitions the variables into maximal proper modules: sets M
// whose touching implicants factor exactly into inside-M × outside-M parts.
// ok is false when every module is a singleton.
func moduleBlocks[V constraints.Ordered](f Dnf[V]) ([][]V, bool) {
	vars := f.Variables()
	n := len(vars)
	taken := make([]bool, n)
	blocks := [][]int{}
	proper := false

	for i := 0; i < n; i++ {
		if taken[i] {
			continue
		}
		members := map[int]bool{i: true}
		for j := 0; j < n; j++ {
			if j == i || members[j] {
				continue
			}
			budget := meta.CLOSURE_BUDGET
			c := closure(f, vars, []int{min(i, j), max(i, j)}, &budget)
			if len(c) < n {
				for _, k := range c {
					members[k] = true
				}
			}
		}
		mem := sortedMembers(members)
		if len(mem) > 1 {
			// The union of overlapping proper modules is again a module;
			// re-check in case a budget cutoff broke that.
			if len(mem) == n || !isModule(f, vars, mem) {
				mem = []int{i}
			}
		}
		for _, k := range mem {
			if taken[k] {
				// Overlapping maximal modules only happen for degenerate
				// conjunctions/disjunctions, which earlier stages split.
				return nil, false
			}
			taken[k] = true
		}
		if len(mem) > 1 {
			proper = true
		}
		blocks = append(blocks, mem)
	}

	if !proper {
		return nil, false
	}
	return toVars(vars, blocks), true
}

// closure grows seed to the smallest module containing it, branching over
// one witness variable at a time; returns every variable index when no
// proper module exists or the budget runs out.
func closure[V constraints.Ordered](f Dnf[V], vars []V, seed []int, budget *int) []int {
	if *budget <= 0 {
		return allIndices(len(vars))
	}
	*budget--

	ok, witness := moduleCheck(f, vars, seed)
	if ok {
		return seed
	}
	best := allIndices(len(vars))
	for _, y := range witness {
		grown := insertSorted(seed, y)
		if c := closure(f, vars, grown, budget); len(c) < len(best) {
			best = c
		}
	}
	return best
}

func isModule[V constraints.Ordered](f Dnf[V], vars []V, members []int) bool {
	ok, _ := moduleCheck(f, vars, members)
	return ok
}

// moduleCheck tests whether the member variables form a module. Each
// touching implicant splits into an inside and an outside part; the set is a
// module exactly when every inside × outside combination occurs, which the
// count comparison captures because distinct implicants never share both
// parts. On failure it returns the variables any containing module must
// absorb, derived from one missing combination.
func moduleCheck[V constraints.Ordered](f Dnf[V], vars []V, members []int) (bool, []int) {
	blockVars := make([]V, len(members))
	for i, k := range members {
		blockVars[i] = vars[k]
	}

	type split struct {
		inKey, outKey string
	}
	ins := map[string]Implicant[V]{}
	outs := map[string]Implicant[V]{}
	splits := []split{}
	for _, im := range f.imps {
		in := im.Intersect(blockVars...)
		if in.Len() == 0 {
			continue
		}
		out := im.Minus(blockVars...)
		ins[in.Key()] = im
		outs[out.Key()] = im
		splits = append(splits, split{inKey: in.Key(), outKey: out.Key()})
	}

	if len(ins)*len(outs) == len(splits) {
		return true, nil
	}

	have := map[string]bool{}
	for _, s := range splits {
		have[s.inKey+"/"+s.outKey] = true
	}
	idx := indexOf(vars)
	for _, inKey := range utils.SortedKeys(ins) {
		for _, outKey := range utils.SortedKeys(outs) {
			if have[inKey+"/"+outKey] {
				continue
			}
			missing := ins[inKey].Union(outs[outKey]).Minus(blockVars...)
			witness := make([]int, 0, missing.Len())
			for _, v := range missing.vars {
				witness = append(witness, idx[v])
			}
			slices.Sort(witness)
			return false, witness
		}
	}
	panic("dnf: module count mismatch without a missing combination")
}

// quotient derives the index formula over the blocks plus each block's trace
// family, verifying by an exact count that substituting the traces back into
// the index formula reproduces f. ok is false when it does not.
func quotient[V constraints.Ordered](f Dnf[V], blocks [][]V) (Dnf[int], []Dnf[V], bool) {
	blockOf := map[V]int{}
	for b, vs := range blocks {
		for _, v := range vs {
			blockOf[v] = b
		}
	}

	patterns := [][]int{}
	patternSeen := map[string]bool{}
	traceSets := make([]map[string]Implicant[V], len(blocks))
	for b := range traceSets {
		traceSets[b] = map[string]Implicant[V]{}
	}

	for _, im := range f.imps {
		touched := []int{}
		for _, v := range im.vars {
			b := blockOf[v]
			if !slices.Contains(touched, b) {
				touched = append(touched, b)
			}
		}
		slices.Sort(touched)
		for _, b := range touched {
			part := im.Intersect(blocks[b]...)
			traceSets[b][part.Key()] = part
		}
		key := NewImplicant(touched...).Key()
		if !patternSeen[key] {
			patternSeen[key] = true
			patterns = append(patterns, touched)
		}
	}

	exp := New(patterns...)
	if exp.Len() != len(patterns) {
		return Dnf[int]{}, nil, false
	}
	traces := make([]Dnf[V], len(blocks))
	for b, parts := range traceSets {
		list := make([]Implicant[V], 0, len(parts))
		for _, p := range parts {
			list = append(list, p)
		}
		traces[b] = FromImplicants(list)
		if traces[b].Len() != len(parts) {
			return Dnf[int]{}, nil, false
		}
	}

	// Substituting the traces into each pattern generates every original
	// implicant, so matching counts proves the reconstruction is exact.
	total := 0
	for _, pat := range patterns {
		prod := 1
		for _, b := range pat {
			prod *= traces[b].Len()
			if prod > f.Len() {
				return Dnf[int]{}, nil, false
			}
		}
		total += prod
		if total > f.Len() {
			return Dnf[int]{}, nil, false
		}
	}
	if total != f.Len() {
		return Dnf[int]{}, nil, false
	}
	return exp, traces, true
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

func indexOf[V constraints.Ordered](vars []V) map[V]int {
	idx := make(map[V]int, len(vars))
	for i, v := range vars {
		idx[v] = i
	}
	return idx
}

// blocksOf groups the indices by union-find root, ordered by smallest
// member.
func blocksOf(u *unionFind, n int) [][]int {
	grouped := map[int][]int{}
	for i := 0; i < n; i++ {
		root := u.find(i)
		grouped[root] = append(grouped[root], i)
	}
	blocks := [][]int{}
	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		root := u.find(i)
		if !seen[root] {
			seen[root] = true
			blocks = append(blocks, grouped[root])
		}
	}
	return blocks
}

func mergeBlocks(blocks [][]int, a, b int) [][]int {
	merged := insertAllSorted(blocks[a], blocks[b])
	out := [][]int{}
	for i, block := range blocks {
		switch i {
		case a:
			out = append(out, merged)
		case b:
		default:
			out = append(out, block)
		}
	}
	slices.SortFunc(out, func(x, y []int) int { return x[0] - y[0] })
	return out
}

func smallestTwo(blocks [][]int) (int, int) {
	s1, s2 := 0, 1
	if len(blocks[s2]) < len(blocks[s1]) {
		s1, s2 = s2, s1
	}
	for i := 2; i < len(blocks); i++ {
		switch {
		case len(blocks[i]) < len(blocks[s1]):
			s1, s2 = i, s1
		case len(blocks[i]) < len(blocks[s2]):
			s2 = i
		}
	}
	return s1, s2
}

func toVars[V constraints.Ordered](vars []V, blocks [][]int) [][]V {
	out := make([][]V, len(blocks))
	for b, members := range blocks {
		vs := make([]V, len(members))
		for i, k := range members {
			vs[i] = vars[k]
		}
		out[b] = vs
	}
	return out
}

func sortedMembers(members map[int]bool) []int {
	out := make([]int, 0, len(members))
	for k := range members {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func insertSorted(sorted []int, v int) []int {
	i, ok := slices.BinarySearch(sorted, v)
	if ok {
		return sorted
	}
	out := make([]int, 0, len(sorted)+1)
	out = append(out, sorted[:i]...)
	out = append(out, v)
	out = append(out, sorted[i:]...)
	return out
}

func insertAllSorted(sorted []int, vs []int) []int {
	out := sorted
	for _, v := range vs {
		out = insertSorted(out, v)
	}
	return out
}
