package combat

import (
	"slices"
	"testing"
)

func TestPos_ReadingOrder(t *testing.T) {
	ps := []Pos{{X: 2, Y: 1}, {X: 0, Y: 2}, {X: 5, Y: 0}, {X: 1, Y: 1}}
	slices.SortFunc(ps, Pos.Compare)
	want := []Pos{{X: 5, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 2}}
	if !slices.Equal(ps, want) {
		t.Fatalf("expected %v, got %v", want, ps)
	}
}

func TestPos_NeighborsInReadingOrder(t *testing.T) {
	n := Pos{X: 3, Y: 3}.Neighbors()
	if !slices.IsSortedFunc(n[:], Pos.Compare) {
		t.Fatalf("neighbours not in reading order: %v", n)
	}
	for _, p := range n {
		if !p.Adjacent(Pos{X: 3, Y: 3}) {
			t.Fatalf("%v is not adjacent to (3,3)", p)
		}
	}
}

func TestPos_MDist(t *testing.T) {
	if d := (Pos{X: 1, Y: 5}).MDist(Pos{X: 4, Y: 1}); d != 7 {
		t.Fatalf("expected 7, got %d", d)
	}
	if (Pos{X: 1, Y: 1}).Adjacent(Pos{X: 2, Y: 2}) {
		t.Fatal("diagonal cells are not adjacent")
	}
}
