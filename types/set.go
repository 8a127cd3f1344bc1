package types

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Set is an insertion-ordered collection of unique values.
type Set[T comparable] struct {
	storage map[T]struct{}
	order   []T
}

func NewSet[T comparable](values ...T) *Set[T] {
	set := &Set[T]{
		storage: make(map[T]struct{}),
	}
	set.Insert(values...)

	return set
}

func (s *Set[T]) Insert(values ...T) {
	for _, value := range values {
		if _, found := s.storage[value]; found {
			continue
		}
		s.storage[value] = struct{}{}
		s.order = append(s.order, value)
	}
}

func (s *Set[T]) Exists(value T) bool {
	if s == nil {
		return false
	}
	_, found := s.storage[value]
	return found
}

// Array returns the values in insertion order.
func (s *Set[T]) Array() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *Set[T]) String() string {
	elems := make([]string, 0, s.Len())
	for _, value := range s.Array() {
		elems = append(elems, fmt.Sprint(value))
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}

func (s *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Array())
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	s.storage = make(map[T]struct{})
	s.order = nil
	s.Insert(values...)

	return nil
}
