// Package dice provides the random draws every generation table is built on.
// All randomness flows through a Roller so that a single seed reproduces an
// entire generated tree.
package dice

import (
	"fmt"
	"math/rand/v2"
)

// Roller is a seedable source of dice rolls. It is not safe for concurrent use.
type Roller struct {
	seed  uint64
	src   *rand.Rand
	calls int64
}

// New creates a Roller whose sequence is fully determined by seed
func New(seed uint64) *Roller {
	return &Roller{
		seed: seed,
		src:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the Roller was created with
func (r *Roller) Seed() uint64 {
	return r.seed
}

// Calls returns the number of draws made so far
func (r *Roller) Calls() int64 {
	return r.calls
}

// D rolls a single die with the given number of sides, in [1, sides]
func (r *Roller) D(sides int) int {
	if sides < 1 {
		panic(fmt.Sprintf("dice: cannot roll a d%d", sides))
	}
	r.calls++
	return r.src.IntN(sides) + 1
}

// Uint64 draws a raw value, typically the seed of another Roller
func (r *Roller) Uint64() uint64 {
	r.calls++
	return r.src.Uint64()
}

// Roll sums count dice of the given size
func (r *Roller) Roll(count, sides int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += r.D(sides)
	}
	return total
}

func (r *Roller) D5() int   { return r.D(5) }
func (r *Roller) D10() int  { return r.D(10) }
func (r *Roller) D100() int { return r.D(100) }

// Between returns a uniform integer in [lo, hi]
func (r *Roller) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.D(hi-lo+1) - 1
}

// Chance succeeds with the given percentage
func (r *Roller) Chance(percent int) bool {
	return r.D100() <= percent
}

// AtLeast rolls sides+modifier and never returns less than floor
func (r *Roller) AtLeast(sides, modifier, floor int) int {
	return max(r.D(sides)+modifier, floor)
}

// Pick returns a uniformly random element of items
func Pick[T any](r *Roller, items []T) T {
	if len(items) == 0 {
		panic("dice: pick from an empty set")
	}
	return items[r.D(len(items))-1]
}

// Shuffle reorders items in place
func Shuffle[T any](r *Roller, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.D(i+1) - 1
		items[i], items[j] = items[j], items[i]
	}
}

// DistinctMultiPick selects a front-loaded number of distinct indices in
// [1, k]. Each attempt draws from [1, k+attempts]; a draw above k or a
// repeat ends the selection. The first draw always succeeds so at least one
// index is returned, and at most k. For k >= 4 two picks are as likely as
// one or more so; only the tail past two always shrinks.
func (r *Roller) DistinctMultiPick(k int) []int {
	if k < 1 {
		return nil
	}
	picked := make([]int, 0, 1)
	seen := make(map[int]bool, k)
	for attempts := 0; ; attempts++ {
		draw := r.D(k + attempts)
		if draw > k || seen[draw] {
			return picked
		}
		seen[draw] = true
		picked = append(picked, draw)
	}
}

// PickDistinct applies DistinctMultiPick to items
func PickDistinct[T any](r *Roller, items []T) []T {
	var out []T
	for _, idx := range r.DistinctMultiPick(len(items)) {
		out = append(out, items[idx-1])
	}
	return out
}
