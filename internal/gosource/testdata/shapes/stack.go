package shapes

type Stack[T any] struct {
	items []T
	index map[string]int
}

func (s *Stack[E]) Push(v E) {
	s.items = append(s.items, v)
}
