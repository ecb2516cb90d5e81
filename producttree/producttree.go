// Package producttree combines a list of values under an associative
// operator and answers, for every index, the combination of all the other
// values, without re-walking the list per index.
package producttree

// Op is an associative binary operator.
type Op[T any] func(a, b T) T

// Tree pairs adjacent values level by level, keeping left-to-right order so
// non-commutative operators work too.
type Tree[T any] struct {
	op     Op[T]
	levels [][]T
}

// New builds the tree over values. It panics on an empty list: a combination
// over nothing has no root.
func New[T any](values []T, op Op[T]) *Tree[T] {
	if len(values) == 0 {
		panic("producttree: no values to combine")
	}
	base := make([]T, len(values))
	copy(base, values)
	levels := [][]T{base}
	for top := base; len(top) > 1; {
		next := make([]T, 0, (len(top)+1)/2)
		for i := 0; i+1 < len(top); i += 2 {
			next = append(next, op(top[i], top[i+1]))
		}
		if len(top)%2 == 1 {
			// Odd tail rides up unchanged and joins a pair later.
			next = append(next, top[len(top)-1])
		}
		levels = append(levels, next)
		top = next
	}
	return &Tree[T]{op: op, levels: levels}
}

// Root returns the combination of all values.
func (t *Tree[T]) Root() T {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// AllButOne returns, for every input index, the combination of all the other
// values in input order; identity is the operator's neutral element,
// returned as-is for a single input.
func (t *Tree[T]) AllButOne(identity T) []T {
	if len(t.levels[0]) == 1 {
		return []T{identity}
	}
	type outer struct {
		left, right T
	}
	cur := []outer{{left: identity, right: identity}}
	for lvl := len(t.levels) - 1; lvl > 0; lvl-- {
		lower := t.levels[lvl-1]
		next := make([]outer, len(lower))
		pairs := len(lower) / 2
		for i := 0; i < pairs; i++ {
			o := cur[i]
			next[2*i] = outer{left: o.left, right: t.op(lower[2*i+1], o.right)}
			next[2*i+1] = outer{left: t.op(o.left, lower[2*i]), right: o.right}
		}
		if len(lower)%2 == 1 {
			next[len(lower)-1] = cur[len(cur)-1]
		}
		cur = next
	}
	out := make([]T, len(cur))
	for i, o := range cur {
		out[i] = t.op(o.left, o.right)
	}
	return out
}
