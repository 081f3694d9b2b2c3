package combat

import "golang.org/x/exp/constraints"

// Pt is a grid coordinate. Y grows downwards.
type Pt[T constraints.Signed] struct{ X, Y T }

type Pos = Pt[int]

func (a Pt[T]) Add(b Pt[T]) Pt[T] { return Pt[T]{a.X + b.X, a.Y + b.Y} }

// MDist returns the manhattan distance between a and b.
func (a Pt[T]) MDist(b Pt[T]) T {
	return absDiff(a.X, b.X) + absDiff(a.Y, b.Y)
}

// Adjacent reports whether b is exactly one orthogonal step away.
func (a Pt[T]) Adjacent(b Pt[T]) bool { return a.MDist(b) == 1 }

// Less orders points in reading order: top to bottom, then left to right.
func (a Pt[T]) Less(b Pt[T]) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// Compare is Less as a three-way comparison, for slices.SortFunc.
func (a Pt[T]) Compare(b Pt[T]) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// Neighbors returns the four orthogonal neighbours in reading order.
func (a Pt[T]) Neighbors() [4]Pt[T] {
	return [4]Pt[T]{
		{a.X, a.Y - 1},
		{a.X - 1, a.Y},
		{a.X + 1, a.Y},
		{a.X, a.Y + 1},
	}
}

func absDiff[T constraints.Signed](x, y T) T {
	v := x - y
	if v < 0 {
		v = -v
	}
	return v
}
