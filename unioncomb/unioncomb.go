// Package unioncomb enumerates chain combinations: values started at one
// index and repeatedly extended through strictly increasing indices.
package unioncomb

// Enumerate starts a chain at every index in [0, n) with first, then grows
// each chain depth-first through every later index. extend reports ok=false
// to discard the grown chain together with everything growing out of it;
// enumeration continues with the next sibling index.
func Enumerate[T any](n int, first func(i int) T, extend func(t T, i int) (T, bool)) []T {
	out := []T{}
	var grow func(t T, next int)
	grow = func(t T, next int) {
		for i := next; i < n; i++ {
			u, ok := extend(t, i)
			if !ok {
				continue
			}
			out = append(out, u)
			grow(u, i+1)
		}
	}
	for i := 0; i < n; i++ {
		t := first(i)
		out = append(out, t)
		grow(t, i+1)
	}
	return out
}
