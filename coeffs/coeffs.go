// Package coeffs implements the signed interaction-coefficient algebra the
// solver propagates through a decomposition tree. A value maps interaction
// group size to its signed integer weight; sizes with weight zero are never
// stored.
package coeffs

import (
	"fmt"
	"strings"

	"shapley/utils"
)

// Coeffs maps group size to signed weight. All operations treat values as
// immutable and return fresh maps, so values can be shared across
// goroutines.
type Coeffs map[int]int64

// New returns a single-term value.
func New(size int, weight int64) Coeffs {
	if weight == 0 {
		return Coeffs{}
	}
	return Coeffs{size: weight}
}

// Identity is the multiplicative identity: weight 1 at group size 0.
func Identity() Coeffs {
	return Coeffs{0: 1}
}

// Unit is the value of a single owner: weight 1 at group size 1.
func Unit() Coeffs {
	return Coeffs{1: 1}
}

// Zero is the additive identity.
func Zero() Coeffs {
	return Coeffs{}
}

func (c Coeffs) Clone() Coeffs {
	out := make(Coeffs, len(c))
	for k, w := range c {
		out[k] = w
	}
	return out
}

// Add returns the termwise sum.
func (c Coeffs) Add(other Coeffs) Coeffs {
	out := c.Clone()
	for k, w := range other {
		out[k] += w
		if out[k] == 0 {
			delete(out, k)
		}
	}
	return out
}

// Sub returns the termwise difference.
func (c Coeffs) Sub(other Coeffs) Coeffs {
	out := c.Clone()
	for k, w := range other {
		out[k] -= w
		if out[k] == 0 {
			delete(out, k)
		}
	}
	return out
}

// Mul returns the convolution over group sizes: combining two independent
// interaction groups adds their sizes and multiplies their weights.
func (c Coeffs) Mul(other Coeffs) Coeffs {
	out := make(Coeffs, len(c)*len(other))
	for ka, wa := range c {
		for kb, wb := range other {
			out[ka+kb] += wa * wb
		}
	}
	for k, w := range out {
		if w == 0 {
			delete(out, k)
		}
	}
	return out
}

func (c Coeffs) IsZero() bool {
	return len(c) == 0
}

func (c Coeffs) Equal(other Coeffs) bool {
	if len(c) != len(other) {
		return false
	}
	for k, w := range c {
		if other[k] != w {
			return false
		}
	}
	return true
}

// Evaluate collapses the value into a Shapley share: a group of size k
// spreads its weight evenly over k owners. Size 0 terms describe a constant
// game and carry no marginal mass.
func (c Coeffs) Evaluate() float64 {
	total := 0.0
	for k, w := range c {
		if k == 0 {
			continue
		}
		total += float64(w) / float64(k)
	}
	return total
}

func (c Coeffs) String() string {
	if len(c) == 0 {
		return "{}"
	}
	parts := []string{}
	for _, k := range utils.SortedKeys(c) {
		parts = append(parts, fmt.Sprintf("%d:%d", k, c[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Conjoin combines the coefficients of two blocks that must both be won.
func Conjoin(a, b Coeffs) Coeffs {
	return a.Mul(b)
}

// ConjoinIdentity is the neutral element of Conjoin.
func ConjoinIdentity() Coeffs {
	return Identity()
}

// Disjoin combines the coefficients of two blocks where either winning
// suffices: a + b - a*b by inclusion-exclusion.
func Disjoin(a, b Coeffs) Coeffs {
	return a.Add(b).Sub(a.Mul(b))
}

// DisjoinIdentity is the neutral element of Disjoin.
func DisjoinIdentity() Coeffs {
	return Zero()
}
