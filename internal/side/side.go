package side

import (
	"fmt"
	"iter"
	"strings"
)

// Side is one of the three contents of a three-way comparison.
type Side int

// The numeric value is also the index of the side in a three-element contents
// sequence and its left-to-right display position.
const (
	Left Side = iota
	Base
	Right
)

// Count is the arity of every three-way collection.
const Count = 3

// All lists the sides in canonical order.
var All = [Count]Side{Left, Base, Right}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Base:
		return "base"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Index returns the position of s in a three-element sequence.
func (s Side) Index() int {
	return int(s)
}

// Valid reports whether s is one of Left, Base or Right.
func (s Side) Valid() bool {
	return s >= Left && s <= Right
}

// Next returns the side to the right of s, wrapping around.
func (s Side) Next() Side {
	return All[(s.Index()+1)%Count]
}

// Prev returns the side to the left of s, wrapping around.
func (s Side) Prev() Side {
	return All[(s.Index()+Count-1)%Count]
}

// ParseSide converts a side name ("left", "base", "right") to a Side.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return Left, nil
	case "base":
		return Base, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown side %q: expected left, base or right", name)
	}
}

// Select picks the value for s.
func Select[T any](s Side, left, base, right T) T {
	switch s {
	case Left:
		return left
	case Base:
		return base
	case Right:
		return right
	default:
		panic(fmt.Sprintf("invalid side %d", int(s)))
	}
}

// SelectFrom picks the value for s from a three-element slice.
func SelectFrom[T any](s Side, items []T) T {
	if len(items) != Count {
		panic(&ArityError{Got: len(items)})
	}
	return Select(s, items[0], items[1], items[2])
}

// ArityError reports a three-way collection built from the wrong number of items.
type ArityError struct {
	Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("three-way comparison needs exactly %d contents, got %d", Count, e.Got)
}

// Set holds exactly one value per side.
type Set[T any] struct {
	left, base, right T
}

// NewSet creates a fully populated Set.
func NewSet[T any](left, base, right T) Set[T] {
	return Set[T]{left: left, base: base, right: right}
}

// SetOf builds a Set from a slice ordered left, base, right.
func SetOf[T any](items []T) (Set[T], error) {
	if len(items) != Count {
		return Set[T]{}, &ArityError{Got: len(items)}
	}
	return NewSet(items[0], items[1], items[2]), nil
}

// Get returns the value stored for s.
func (s Set[T]) Get(sd Side) T {
	return Select(sd, s.left, s.base, s.right)
}

// Put replaces the value stored for sd.
func (s *Set[T]) Put(sd Side, v T) {
	switch sd {
	case Left:
		s.left = v
	case Base:
		s.base = v
	case Right:
		s.right = v
	default:
		panic(fmt.Sprintf("invalid side %d", int(sd)))
	}
}

// All iterates over the values in canonical order.
func (s Set[T]) All() iter.Seq2[Side, T] {
	return func(yield func(Side, T) bool) {
		for _, sd := range All {
			if !yield(sd, s.Get(sd)) {
				return
			}
		}
	}
}

// Values returns the values as a slice ordered left, base, right.
func (s Set[T]) Values() []T {
	return []T{s.left, s.base, s.right}
}

// Map applies fn to every value.
func Map[T, U any](s Set[T], fn func(Side, T) U) Set[U] {
	return NewSet(fn(Left, s.left), fn(Base, s.base), fn(Right, s.right))
}
