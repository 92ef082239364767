package interpreter

import (
	"fmt"
	"slices"

	"github.com/rhino1998/configlang/pkg/kinds"
)

const DefaultCapacity = 128

// Store holds the variables of one interpreter instance in creation order.
// It is not safe for concurrent use.
type Store struct {
	capacity int
	vars     []*Variable
	index    map[string]*Variable
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Store{
		capacity: capacity,
		index:    make(map[string]*Variable),
	}
}

func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) Len() int {
	return len(s.vars)
}

func (s *Store) Lookup(name string) (*Variable, bool) {
	v, ok := s.index[name]
	return v, ok
}

// Create adds a new mutable variable with no value.
func (s *Store) Create(name string) (*Variable, error) {
	if _, ok := s.index[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	if len(s.vars) >= s.capacity {
		return nil, fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, s.capacity)
	}

	v := &Variable{name: name}
	s.vars = append(s.vars, v)
	s.index[name] = v

	return v, nil
}

// Define creates a variable and gives it its initial value and mutability.
func (s *Store) Define(name string, val Value, immutable bool) (*Variable, error) {
	v, err := s.Create(name)
	if err != nil {
		return nil, err
	}

	v.value = val
	v.immutable = immutable

	return v, nil
}

func (s *Store) Assign(v *Variable, val Value) error {
	return v.Set(val)
}

func (s *Store) SetInt(name string, n int64) error {
	v, ok := s.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrVariableNotFound, name)
	}

	if v.immutable {
		return fmt.Errorf("%w: %q", ErrConstViolation, name)
	}

	if v.Kind() != kinds.Int {
		return fmt.Errorf("%w: %q is %s, not int", ErrTypeMismatch, name, v.Kind())
	}

	return v.Set(IntValue(n))
}

// Variables returns the variables in creation order.
func (s *Store) Variables() []*Variable {
	return slices.Clone(s.vars)
}
