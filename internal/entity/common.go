package entity

import (
	"fmt"
	"strings"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/resource"
	"starforge/internal/rules"
)

// Development is the level a settlement has reached
type Development string

const (
	DevelopmentAdvancedIndustry  Development = "Advanced Industry"
	DevelopmentBasicIndustry     Development = "Basic Industry"
	DevelopmentColony            Development = "Colony"
	DevelopmentOrbitalHabitation Development = "Orbital Habitation"
	DevelopmentPreIndustrial     Development = "Pre-Industrial"
	DevelopmentPrimitiveClans    Development = "Primitive Clans"
	DevelopmentVoidfarers        Development = "Voidfarers"
)

// IsMajor reports whether the tier counts as a major settlement, which
// always earns its world an evocative name
func (d Development) IsMajor() bool {
	switch d {
	case DevelopmentAdvancedIndustry, DevelopmentBasicIndustry, DevelopmentPreIndustrial, DevelopmentVoidfarers:
		return true
	}
	return false
}

// Inhabitants describes the people living on a body
type Inhabitants struct {
	Species     rules.Species `json:"species"`
	Development Development   `json:"development"`
}

func (i *Inhabitants) IsMajor() bool {
	return i != nil && i.Development.IsMajor()
}

func (i *Inhabitants) String() string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", i.Species, i.Development)
}

var inhabitantSpeciesTable = dice.NewTable("Inhabitant Species", 10,
	dice.B(6, rules.SpeciesHuman),
	dice.B(7, rules.SpeciesOrk),
	dice.B(8, rules.SpeciesEldar),
	dice.B(9, rules.SpeciesKroot),
	dice.B(10, rules.SpeciesXenos),
)

var developmentTable = dice.NewTable("Development", 10,
	dice.B(1, DevelopmentAdvancedIndustry),
	dice.B(3, DevelopmentBasicIndustry),
	dice.B(5, DevelopmentColony),
	dice.B(6, DevelopmentOrbitalHabitation),
	dice.B(8, DevelopmentPreIndustrial),
	dice.B(10, DevelopmentPrimitiveClans),
)

func rollInhabitants(r *dice.Roller) *Inhabitants {
	return &Inhabitants{
		Species:     inhabitantSpeciesTable.Roll(r),
		Development: developmentTable.Roll(r),
	}
}

// Characteristics is a creature profile
type Characteristics struct {
	WeaponSkill    int `json:"weaponSkill"`
	BallisticSkill int `json:"ballisticSkill"`
	Strength       int `json:"strength"`
	Toughness      int `json:"toughness"`
	Agility        int `json:"agility"`
	Intelligence   int `json:"intelligence"`
	Perception     int `json:"perception"`
	Willpower      int `json:"willpower"`
	Fellowship     int `json:"fellowship"`
}

// Plus returns the sum of two profiles
func (c Characteristics) Plus(o Characteristics) Characteristics {
	return Characteristics{
		WeaponSkill:    c.WeaponSkill + o.WeaponSkill,
		BallisticSkill: c.BallisticSkill + o.BallisticSkill,
		Strength:       c.Strength + o.Strength,
		Toughness:      c.Toughness + o.Toughness,
		Agility:        c.Agility + o.Agility,
		Intelligence:   c.Intelligence + o.Intelligence,
		Perception:     c.Perception + o.Perception,
		Willpower:      c.Willpower + o.Willpower,
		Fellowship:     c.Fellowship + o.Fellowship,
	}
}

// Line renders the profile on one line
func (c Characteristics) Line() string {
	return fmt.Sprintf("WS %d, BS %d, S %d, T %d, Ag %d, Int %d, Per %d, WP %d, Fel %d",
		c.WeaponSkill, c.BallisticSkill, c.Strength, c.Toughness, c.Agility,
		c.Intelligence, c.Perception, c.Willpower, c.Fellowship)
}

// Trait is a named creature ability with an optional rating
type Trait struct {
	Name   string `json:"name"`
	Rating int    `json:"rating,omitempty"`
}

func (t Trait) String() string {
	if t.Rating > 0 {
		return fmt.Sprintf("%s (%d)", t.Name, t.Rating)
	}
	return t.Name
}

// addTrait merges t into traits, keeping the higher rating of duplicates
func addTrait(traits []Trait, t Trait) []Trait {
	for i := range traits {
		if traits[i].Name == t.Name {
			traits[i].Rating = max(traits[i].Rating, t.Rating)
			return traits
		}
	}
	return append(traits, t)
}

func hasTrait(traits []Trait, name string) bool {
	for _, t := range traits {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Deposits groups the resource packets a body can carry
type Deposits struct {
	Minerals   resource.MineralTally      `json:"minerals"`
	Organics   []resource.OrganicCompound `json:"organicCompounds,omitempty"`
	XenosRuins []resource.XenosRuins      `json:"xenosRuins,omitempty"`
	Archeotech []resource.ArcheotechCache `json:"archeotech,omitempty"`
}

func (d *Deposits) clear() {
	*d = Deposits{}
}

func (d Deposits) describe(b *markup.Builder) {
	b.Section("Mineral Resources", d.Minerals.Lines())
	b.Section("Organic Compounds", resource.Lines(d.Organics))
	b.Section("Xenos Ruins", resource.Lines(d.XenosRuins))
	b.Section("Archeotech", resource.Lines(d.Archeotech))
}

// finish appends the citation and stores the built description
func finish(base *BaseEntity, b *markup.Builder, settings rules.Settings) {
	b.PageRef(settings.Citation(base.Reference))
	base.Description = b.String()
}

func joinStrings[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = string(item)
	}
	return strings.Join(parts, ", ")
}
