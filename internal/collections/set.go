// Package collections holds small generic containers
package collections

// OrderedSet is a set that remembers insertion order. The zero value is
// ready to use; it is not safe for concurrent use.
type OrderedSet[T comparable] struct {
	index   map[T]struct{}
	members []T
}

// NewOrderedSet returns a set holding vs, in order, without duplicates
func NewOrderedSet[T comparable](vs ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was new
func (s *OrderedSet[T]) Add(v T) bool {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.members = append(s.members, v)
	return true
}

func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *OrderedSet[T]) Len() int {
	return len(s.members)
}

// Members returns a copy of the values in insertion order
func (s *OrderedSet[T]) Members() []T {
	return append([]T(nil), s.members...)
}
