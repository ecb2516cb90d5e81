package unioncomb

import (
	"reflect"
	"testing"
)

func TestEnumerateOrder(t *testing.T) {
	got := Enumerate(3,
		func(i int) []int { return []int{i} },
		func(c []int, i int) ([]int, bool) {
			return append(append([]int{}, c...), i), true
		})

	want := [][]int{{0}, {0, 1}, {0, 1, 2}, {0, 2}, {1}, {1, 2}, {2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected chains %v, got %v", want, got)
	}
}

func TestEnumerateCount(t *testing.T) {
	for n := 1; n <= 8; n++ {
		got := Enumerate(n,
			func(i int) int { return 1 },
			func(c int, i int) (int, bool) { return c + 1, true })

		if len(got) != (1<<n)-1 {
			t.Errorf("Expected %d chains over %d starts, got %d", (1<<n)-1, n, len(got))
		}
	}
}

func TestEnumeratePrune(t *testing.T) {
	// Refusing to extend through index 1 keeps it as a start but drops
	// every chain growing through it.
	got := Enumerate(3,
		func(i int) []int { return []int{i} },
		func(c []int, i int) ([]int, bool) {
			if i == 1 {
				return nil, false
			}
			return append(append([]int{}, c...), i), true
		})

	want := [][]int{{0}, {0, 2}, {1}, {1, 2}, {2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected chains %v, got %v", want, got)
	}
}
