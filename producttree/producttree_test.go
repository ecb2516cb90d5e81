package producttree

import (
	"reflect"
	"testing"
)

func TestTreeRoot(t *testing.T) {
	tree := New([]int{1, 2, 3, 4, 5, 6, 7}, func(a, b int) int { return a + b })

	if got := tree.Root(); got != 28 {
		t.Errorf("Expected root 28, got %d", got)
	}
}

func TestTreeAllButOne(t *testing.T) {
	// Powers of two make every combination unique, so a wrong pairing at
	// any level shows up in the sums.
	for n := 1; n <= 9; n++ {
		values := make([]int, n)
		for i := range values {
			values[i] = 1 << i
		}
		tree := New(values, func(a, b int) int { return a + b })

		got := tree.AllButOne(0)
		if len(got) != n {
			t.Fatalf("Expected %d combinations for %d values, got %d", n, n, len(got))
		}
		total := (1 << n) - 1
		for i, v := range values {
			if got[i] != total-v {
				t.Errorf("Expected combination %d at index %d, got %d", total-v, i, got[i])
			}
		}
	}
}

func TestTreeNonCommutative(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}
	tree := New(values, func(a, b string) string { return a + b })

	if got := tree.Root(); got != "abcde" {
		t.Errorf("Expected root abcde, got %s", got)
	}

	want := []string{"bcde", "acde", "abde", "abce", "abcd"}
	if got := tree.AllButOne(""); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected combinations %v, got %v", want, got)
	}
}

func TestTreeSingleValue(t *testing.T) {
	tree := New([]string{"x"}, func(a, b string) string { return a + b })

	if got := tree.Root(); got != "x" {
		t.Errorf("Expected root x, got %s", got)
	}
	if got := tree.AllButOne("-"); !reflect.DeepEqual(got, []string{"-"}) {
		t.Errorf("Expected the identity back, got %v", got)
	}
}

func TestTreeEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for an empty value list")
		}
	}()
	New(nil, func(a, b int) int { return a + b })
}
