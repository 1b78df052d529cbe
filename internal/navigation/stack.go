package navigation

// Stack is a last-in first-out list that never drops below its root.
type Stack[T any] struct {
	items []T
}

// NewStack returns a stack holding only root.
func NewStack[T any](root T) *Stack[T] {
	return &Stack[T]{items: []T{root}}
}

// Push adds v on top.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes the top element unless it is the root. It reports whether
// anything was removed.
func (s *Stack[T]) Pop() bool {
	if len(s.items) <= 1 {
		return false
	}

	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]

	return true
}

// Top returns the current element.
func (s *Stack[T]) Top() T {
	return s.items[len(s.items)-1]
}

// Root returns the bottom element.
func (s *Stack[T]) Root() T {
	return s.items[0]
}

// Depth counts elements above the root.
func (s *Stack[T]) Depth() int {
	return len(s.items) - 1
}

// Reset drops everything above the root.
func (s *Stack[T]) Reset() {
	clear(s.items[1:])
	s.items = s.items[:1]
}
