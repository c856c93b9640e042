package resource

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/rules"
)

var ruinedSpeciesTable = dice.NewTable("Ruined Species", 10,
	dice.B(4, rules.RuinedSpeciesUndiscovered),
	dice.B(6, rules.RuinedSpeciesEldar),
	dice.B(7, rules.RuinedSpeciesEgarian),
	dice.B(8, rules.RuinedSpeciesYuVath),
	dice.B(10, rules.RuinedSpeciesOrk),
)

// XenosRuins is a deposit of alien remains left by a ruined species
type XenosRuins struct {
	Species   rules.RuinedSpecies `json:"species"`
	Abundance int                 `json:"abundance"`
}

func (x XenosRuins) String() string {
	return fmt.Sprintf("%s ruins (%d)", x.Species, x.Abundance)
}

// ArcheotechCache is a deposit of lost human technology
type ArcheotechCache struct {
	Abundance int `json:"abundance"`
}

func (a ArcheotechCache) String() string {
	return fmt.Sprintf("Archeotech cache (%d)", a.Abundance)
}

// Theme controls how a call site clusters ruined species around the
// system's dominant species. Reuse is the percentage chance of adopting an
// existing dominant species; Promote is the chance a fresh roll becomes the
// dominant species when none is set yet.
type Theme struct {
	Reuse   int
	Promote int
}

// The adoption odds differ between call sites and are kept as found in the
// printed tables.
var (
	PlanetRuinsTheme    = Theme{Reuse: 60, Promote: 50}
	DerelictTheme       = Theme{Reuse: 70, Promote: 50}
	GraveyardTheme      = Theme{Reuse: 50, Promote: 40}
	LesserRemnantsTheme = Theme{Reuse: 60, Promote: 0}
)

// Species picks the ruined species for a new packet, consulting and
// possibly updating the shared creation rules.
func (t Theme) Species(r *dice.Roller, cr *rules.CreationRules) rules.RuinedSpecies {
	if cr.HasDominantSpecies() {
		if r.Chance(t.Reuse) {
			return cr.DominantRuinedSpecies
		}
		return ruinedSpeciesTable.Roll(r)
	}

	species := ruinedSpeciesTable.Roll(r)
	if t.Promote > 0 && r.Chance(t.Promote) {
		cr.DominantRuinedSpecies = species
	}
	return species
}

// RollXenosRuins rolls a themed ruins packet
func RollXenosRuins(r *dice.Roller, cr *rules.CreationRules, theme Theme) XenosRuins {
	return NewXenosRuins(r, cr, theme.Species(r, cr))
}

// NewXenosRuins rolls the abundance of a ruins packet whose species is
// already decided
func NewXenosRuins(r *dice.Roller, cr *rules.CreationRules, species rules.RuinedSpecies) XenosRuins {
	ruins := XenosRuins{
		Species:   species,
		Abundance: r.D(100),
	}
	if cr.IncreasedXenosRuins {
		ruins.Abundance += r.D(10) + 5
	}
	return ruins
}

// RollArcheotech rolls an archeotech cache
func RollArcheotech(r *dice.Roller, cr *rules.CreationRules) ArcheotechCache {
	cache := ArcheotechCache{Abundance: r.D(100)}
	if cr.IncreasedArcheotech {
		cache.Abundance += r.D(10) + 5
	}
	return cache
}

// RuinedSpeciesValues lists every species the ruins table can produce
func RuinedSpeciesValues() []rules.RuinedSpecies {
	return ruinedSpeciesTable.Values()
}

// Tables lists the package's roll tables for coverage checks
func Tables() []dice.Checker {
	return []dice.Checker{mineralCategoryTable, organicTypeTable, ruinedSpeciesTable}
}

// Lines renders a slice of Stringers
func Lines[T fmt.Stringer](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
