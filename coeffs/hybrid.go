package coeffs

// Union is one union-combination over child indices: the merged index set
// and how many implicants were merged to form it.
type Union struct {
	Members []int
	Merged  int
}

// Sign is the inclusion-exclusion sign of a union merged from n implicants.
func Sign(merged int) int64 {
	if merged%2 == 1 {
		return 1
	}
	return -1
}

// Hybrid evaluates index expressions against a fixed list of child
// coefficients.
type Hybrid struct {
	children []Coeffs
}

// NewHybrid captures the children coefficients. The caller keeps ownership
// of the slice; the values themselves are immutable.
func NewHybrid(children []Coeffs) *Hybrid {
	cloned := make([]Coeffs, len(children))
	copy(cloned, children)
	return &Hybrid{children: cloned}
}

// Product convolves the coefficients of the given children; an empty member
// set yields the multiplicative identity.
func (h *Hybrid) Product(members []int) Coeffs {
	out := Identity()
	for _, j := range members {
		out = out.Mul(h.children[j])
	}
	return out
}

// Unions sums the signed products of a union enumeration.
func (h *Hybrid) Unions(unions []Union) Coeffs {
	out := Zero()
	for _, u := range unions {
		term := h.Product(u.Members)
		for k, w := range term {
			out[k] += w * Sign(u.Merged)
			if out[k] == 0 {
				delete(out, k)
			}
		}
	}
	return out
}

// Interaction sums the cross terms of two union enumerations: each pair
// contributes the product over the merged member sets, positive exactly when
// the total merged count is even.
func (h *Hybrid) Interaction(a, b []Union) Coeffs {
	out := Zero()
	for _, u := range a {
		for _, v := range b {
			term := h.Product(mergeMembers(u.Members, v.Members))
			sign := Sign(u.Merged) * Sign(v.Merged)
			for k, w := range term {
				out[k] += w * sign
				if out[k] == 0 {
					delete(out, k)
				}
			}
		}
	}
	return out
}

// mergeMembers unions two sorted index sets.
func mergeMembers(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			merged = append(merged, a[i])
			i++
		case a[i] > b[j]:
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}
