// Package resource holds the leaf value objects bodies carry: mineral
// tallies, organic compounds, xenos ruins and archeotech caches.
package resource

import (
	"fmt"

	"starforge/internal/dice"
)

// MineralCategory is one of the four mineral buckets
type MineralCategory string

const (
	IndustrialMetals MineralCategory = "Industrial Metals"
	Ornamentals      MineralCategory = "Ornamentals"
	Radioactives     MineralCategory = "Radioactives"
	ExoticMaterials  MineralCategory = "Exotic Materials"
)

// MineralCategories lists the buckets in display order
func MineralCategories() []MineralCategory {
	return []MineralCategory{IndustrialMetals, Ornamentals, Radioactives, ExoticMaterials}
}

var mineralCategoryTable = dice.NewTable("Mineral Category", 10,
	dice.B(4, IndustrialMetals),
	dice.B(7, Ornamentals),
	dice.B(9, Radioactives),
	dice.B(10, ExoticMaterials),
)

// MineralTally is the running abundance per category
type MineralTally struct {
	IndustrialMetals int `json:"industrialMetals"`
	Ornamentals      int `json:"ornamentals"`
	Radioactives     int `json:"radioactives"`
	ExoticMaterials  int `json:"exoticMaterials"`
}

// Add increases the bucket for c by amount
func (m *MineralTally) Add(c MineralCategory, amount int) {
	switch c {
	case IndustrialMetals:
		m.IndustrialMetals += amount
	case Ornamentals:
		m.Ornamentals += amount
	case Radioactives:
		m.Radioactives += amount
	case ExoticMaterials:
		m.ExoticMaterials += amount
	}
}

// Get returns the bucket for c
func (m MineralTally) Get(c MineralCategory) int {
	switch c {
	case IndustrialMetals:
		return m.IndustrialMetals
	case Ornamentals:
		return m.Ornamentals
	case Radioactives:
		return m.Radioactives
	case ExoticMaterials:
		return m.ExoticMaterials
	}
	return 0
}

func (m MineralTally) Total() int {
	return m.IndustrialMetals + m.Ornamentals + m.Radioactives + m.ExoticMaterials
}

func (m MineralTally) IsZero() bool {
	return m.Total() == 0
}

// Lines renders the non-empty buckets as "Category (abundance)"
func (m MineralTally) Lines() []string {
	var out []string
	for _, c := range MineralCategories() {
		if v := m.Get(c); v > 0 {
			out = append(out, fmt.Sprintf("%s (%d)", c, v))
		}
	}
	return out
}

// Accumulator describes how a body builds its mineral tally: each iteration
// rolls a quantity die, then a category die, and adds the quantity to that
// category. Bountiful systems get a gated chance of extra iterations.
type Accumulator struct {
	QuantitySides   int
	QuantityBonus   int
	BountifulChance int
	BountifulExtra  int
}

// DefaultAccumulator is used by planets, asteroids and moons alike
var DefaultAccumulator = Accumulator{
	QuantitySides:   100,
	BountifulChance: 50,
	BountifulExtra:  3,
}

// Accumulate runs the given number of iterations
func (a Accumulator) Accumulate(r *dice.Roller, iterations int, bountiful bool) MineralTally {
	var tally MineralTally
	if bountiful && r.Chance(a.BountifulChance) {
		iterations += r.D(a.BountifulExtra)
	}
	for i := 0; i < iterations; i++ {
		quantity := r.D(a.QuantitySides) + a.QuantityBonus
		tally.Add(mineralCategoryTable.Roll(r), quantity)
	}
	return tally
}
