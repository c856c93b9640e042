package dice

import (
	"fmt"
)

// Band maps every roll up to and including Max (and above the previous
// band's Max) to Value
type Band[T any] struct {
	Max   int
	Value T
}

// B is shorthand for building a Band
func B[T any](max int, value T) Band[T] {
	return Band[T]{Max: max, Value: value}
}

// Checker is implemented by every table so tests can verify band coverage
type Checker interface {
	Name() string
	Validate() error
}

// Table is a banded roll table over [1, Range]
type Table[T any] struct {
	name  string
	rng   int
	bands []Band[T]
}

// NewTable builds a banded table. Bands must be ascending and the last
// band must end exactly on rng; Validate reports violations.
func NewTable[T any](name string, rng int, bands ...Band[T]) *Table[T] {
	return &Table[T]{name: name, rng: rng, bands: bands}
}

// Weight pairs a value with its relative frequency
type Weight[T any] struct {
	Value  T
	Weight int
}

// W is shorthand for building a Weight
func W[T any](value T, weight int) Weight[T] {
	return Weight[T]{Value: value, Weight: weight}
}

// Weighted builds a banded table from relative weights. Entries with zero
// weight are left out entirely and can never be rolled.
func Weighted[T any](name string, entries ...Weight[T]) *Table[T] {
	t := &Table[T]{name: name}
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		t.rng += e.Weight
		t.bands = append(t.bands, Band[T]{Max: t.rng, Value: e.Value})
	}
	return t
}

func (t *Table[T]) Name() string { return t.name }

// Range is the highest roll the table accepts
func (t *Table[T]) Range() int { return t.rng }

// Len is the number of bands
func (t *Table[T]) Len() int { return len(t.bands) }

// Values lists the outcomes in band order
func (t *Table[T]) Values() []T {
	out := make([]T, len(t.bands))
	for i, b := range t.bands {
		out[i] = b.Value
	}
	return out
}

// Validate checks that the bands partition [1, Range] with no gaps or overlaps
func (t *Table[T]) Validate() error {
	if len(t.bands) == 0 {
		return fmt.Errorf("table %q has no bands", t.name)
	}
	prev := 0
	for i, b := range t.bands {
		if b.Max <= prev {
			return fmt.Errorf("table %q band %d ends at %d, not above %d", t.name, i, b.Max, prev)
		}
		prev = b.Max
	}
	if prev != t.rng {
		return fmt.Errorf("table %q bands end at %d but range is %d", t.name, prev, t.rng)
	}
	return nil
}

// Lookup returns the first band whose upper bound is at least roll.
// A roll outside [1, Range] is a programming error.
func (t *Table[T]) Lookup(roll int) T {
	if roll < 1 || roll > t.rng {
		panic(fmt.Sprintf("dice: roll %d outside table %q range [1,%d]", roll, t.name, t.rng))
	}
	for _, b := range t.bands {
		if roll <= b.Max {
			return b.Value
		}
	}
	panic(fmt.Sprintf("dice: table %q has no band for roll %d", t.name, roll))
}

// Roll draws uniformly over the full range
func (t *Table[T]) Roll(r *Roller) T {
	return t.Lookup(r.D(t.rng))
}

// RollModified rolls a die of the given size, adds modifier and clamps the
// result into the table's range before looking it up
func (t *Table[T]) RollModified(r *Roller, sides, modifier int) T {
	return t.Lookup(Clamp(r.D(sides)+modifier, 1, t.rng))
}

// Contains reports whether v can be rolled on t
func Contains[T comparable](t *Table[T], v T) bool {
	for _, b := range t.bands {
		if b.Value == v {
			return true
		}
	}
	return false
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
