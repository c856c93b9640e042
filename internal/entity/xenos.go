package entity

import (
	"fmt"
	"strings"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/naming"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

// Size is a creature's bulk
type Size string

const (
	SizeScrawny  Size = "Scrawny"
	SizeAverage  Size = "Average"
	SizeHulking  Size = "Hulking"
	SizeEnormous Size = "Enormous"
	SizeMassive  Size = "Massive"
)

// nature is a sub-variant of an archetype
type nature struct {
	name    string
	mods    Characteristics
	wounds  int
	traits  []Trait
	weapons []string
}

type archetype struct {
	name    string
	source  rules.XenosSource
	page    int
	base    Characteristics
	wounds  int
	size    Size
	traits  []Trait
	skills  []string
	weapons []string
	natures []nature
}

var archetypes = []archetype{
	{
		name:    "Apex Predator",
		source:  rules.XenosSourceStarsOfInequity,
		page:    134,
		base:    Characteristics{WeaponSkill: 45, Strength: 50, Toughness: 45, Agility: 40, Intelligence: 15, Perception: 40, Willpower: 40},
		wounds:  20,
		size:    SizeHulking,
		traits:  []Trait{{Name: "Bestial"}, {Name: "Natural Weapons"}, {Name: "Quadruped"}},
		skills:  []string{"Awareness", "Tracking"},
		weapons: []string{"Claws and Fangs (1d10+5 R, Pen 2)"},
		natures: []nature{
			{name: "Stalker", mods: Characteristics{Agility: 10, Perception: 5}, traits: []Trait{{Name: "Stealthy"}}},
			{name: "Brute", mods: Characteristics{Strength: 10, Toughness: 5}, wounds: 5, traits: []Trait{{Name: "Sturdy"}}},
			{name: "Pack Hunter", mods: Characteristics{Intelligence: 5}, traits: []Trait{{Name: "Pack Tactics"}}},
		},
	},
	{
		name:    "Crawler",
		source:  rules.XenosSourceStarsOfInequity,
		page:    135,
		base:    Characteristics{WeaponSkill: 30, Strength: 35, Toughness: 40, Agility: 25, Intelligence: 10, Perception: 30, Willpower: 30},
		wounds:  12,
		size:    SizeAverage,
		traits:  []Trait{{Name: "Bestial"}, {Name: "Crawler"}, {Name: "Natural Weapons"}},
		weapons: []string{"Mandibles (1d10+3 R)"},
		natures: []nature{
			{name: "Burrower", traits: []Trait{{Name: "Burrower", Rating: 2}}},
			{name: "Armoured", mods: Characteristics{Agility: -5}, traits: []Trait{{Name: "Natural Armour", Rating: 4}}},
			{name: "Venom-Sac", weapons: []string{"Venom Spray (1d10 E, Toxic)"}},
		},
	},
	{
		name:    "Flyer",
		source:  rules.XenosSourceStarsOfInequity,
		page:    136,
		base:    Characteristics{WeaponSkill: 35, Strength: 30, Toughness: 30, Agility: 45, Intelligence: 15, Perception: 45, Willpower: 30},
		wounds:  10,
		size:    SizeAverage,
		traits:  []Trait{{Name: "Bestial"}, {Name: "Flyer", Rating: 8}, {Name: "Natural Weapons"}},
		skills:  []string{"Awareness"},
		weapons: []string{"Talons (1d10+3 R)"},
		natures: []nature{
			{name: "Soarer", mods: Characteristics{Perception: 10}, traits: []Trait{{Name: "Flyer", Rating: 12}}},
			{name: "Swooper", mods: Characteristics{WeaponSkill: 10}, traits: []Trait{{Name: "Hit and Run"}}},
		},
	},
	{
		name:    "Swimmer",
		source:  rules.XenosSourceStarsOfInequity,
		page:    137,
		base:    Characteristics{WeaponSkill: 35, Strength: 40, Toughness: 40, Agility: 35, Intelligence: 10, Perception: 35, Willpower: 35},
		wounds:  15,
		size:    SizeHulking,
		traits:  []Trait{{Name: "Amphibious"}, {Name: "Bestial"}, {Name: "Natural Weapons"}},
		skills:  []string{"Swim"},
		weapons: []string{"Jaws (1d10+4 R, Pen 1)"},
		natures: []nature{
			{name: "Deep Dweller", mods: Characteristics{Toughness: 10}, traits: []Trait{{Name: "Dark-sight"}}},
			{name: "Shore Lurker", mods: Characteristics{Agility: 5}, traits: []Trait{{Name: "Stealthy"}}},
		},
	},
	{
		name:    "Behemoth",
		source:  rules.XenosSourceKoronusBestiary,
		page:    22,
		base:    Characteristics{WeaponSkill: 40, Strength: 65, Toughness: 60, Agility: 20, Intelligence: 10, Perception: 30, Willpower: 45},
		wounds:  45,
		size:    SizeMassive,
		traits:  []Trait{{Name: "Bestial"}, {Name: "Natural Armour", Rating: 3}, {Name: "Unnatural Strength", Rating: 2}},
		weapons: []string{"Crushing Bulk (2d10+8 I)"},
		natures: []nature{
			{name: "Grazer", mods: Characteristics{WeaponSkill: -10}, wounds: 10},
			{name: "Rampager", mods: Characteristics{WeaponSkill: 5, Agility: 5}, traits: []Trait{{Name: "Frenzy"}}},
		},
	},
	{
		name:    "Shadow Hunter",
		source:  rules.XenosSourceKoronusBestiary,
		page:    24,
		base:    Characteristics{WeaponSkill: 50, Strength: 40, Toughness: 35, Agility: 50, Intelligence: 25, Perception: 50, Willpower: 40},
		wounds:  16,
		size:    SizeAverage,
		traits:  []Trait{{Name: "Dark-sight"}, {Name: "Natural Weapons"}, {Name: "Stealthy"}},
		skills:  []string{"Concealment", "Silent Move"},
		weapons: []string{"Shadow Claws (1d10+4 R, Pen 3)"},
		natures: []nature{
			{name: "Phase-Stalker", traits: []Trait{{Name: "Phase"}}},
			{name: "Mimic", mods: Characteristics{Intelligence: 10}, traits: []Trait{{Name: "Chameleon"}}},
		},
	},
	{
		name:    "Hive Swarm",
		source:  rules.XenosSourceKoronusBestiary,
		page:    26,
		base:    Characteristics{WeaponSkill: 25, Strength: 15, Toughness: 20, Agility: 40, Intelligence: 5, Perception: 35, Willpower: 50},
		wounds:  30,
		size:    SizeEnormous,
		traits:  []Trait{{Name: "Bestial"}, {Name: "Swarm"}, {Name: "Flyer", Rating: 4}},
		weapons: []string{"Myriad Stings (1d10 R, Tearing)"},
		natures: []nature{
			{name: "Devourer", mods: Characteristics{WeaponSkill: 10}, weapons: []string{"Stripping Mandibles (1d10+2 R, Razor Sharp)"}},
			{name: "Spore Cloud", traits: []Trait{{Name: "Toxic"}}},
		},
	},
}

// bonusTrait is a trait any creature may gain, gated by its own chance and
// by its book being enabled
type bonusTrait struct {
	trait  Trait
	chance int
	book   rules.Book
}

var bonusTraits = []bonusTrait{
	{trait: Trait{Name: "Natural Armour", Rating: 2}, chance: 20, book: rules.BookCoreRulebook},
	{trait: Trait{Name: "Improved Natural Weapons"}, chance: 15, book: rules.BookCoreRulebook},
	{trait: Trait{Name: "Multiple Arms"}, chance: 10, book: rules.BookCoreRulebook},
	{trait: Trait{Name: "Toxic"}, chance: 15, book: rules.BookStarsOfInequity},
	{trait: Trait{Name: "Unnatural Senses", Rating: 30}, chance: 10, book: rules.BookStarsOfInequity},
	{trait: Trait{Name: "Fear", Rating: 1}, chance: 10, book: rules.BookKoronusBestiary},
	{trait: Trait{Name: "Regeneration", Rating: 1}, chance: 5, book: rules.BookKoronusBestiary},
}

// XenosState holds the generated profile of a creature
type XenosState struct {
	Source          rules.XenosSource `json:"source"`
	Archetype       string            `json:"archetype"`
	Nature          string            `json:"nature"`
	Size            Size              `json:"size"`
	Characteristics Characteristics   `json:"characteristics"`
	Wounds          int               `json:"wounds"`
	Traits          []Trait           `json:"traits,omitempty"`
	Skills          []string          `json:"skills,omitempty"`
	Weapons         []string          `json:"weapons,omitempty"`
}

// Xenos is a native creature
type Xenos struct {
	BaseEntity
	XenosState
}

func NewXenos() *Xenos {
	return &Xenos{BaseEntity: newBase(KindXenos)}
}

func (x *Xenos) Reset() {
	x.resetBase()
	x.XenosState = XenosState{}
}

func (x *Xenos) state() any       { return &x.XenosState }
func (x *Xenos) exportState() any { return &x.XenosState }

// availableArchetypes filters archetypes to enabled sources
func availableArchetypes(settings rules.Settings) []archetype {
	var out []archetype
	for _, a := range archetypes {
		if settings.XenosSourceEnabled(a.source) {
			out = append(out, a)
		}
	}
	return out
}

func (x *Xenos) populate(s *Session) error {
	r := s.Dice
	candidates := availableArchetypes(s.Settings)
	if len(candidates) == 0 {
		return apperrors.UnsupportedSourcef("no xenos source is enabled")
	}

	a := dice.Pick(r, candidates)
	n := dice.Pick(r, a.natures)

	x.Source = a.source
	x.Reference = rules.Ref(a.source.Book(), a.page, a.name)
	x.Archetype = a.name
	x.Nature = n.name
	x.Size = a.size
	x.Characteristics = a.base.Plus(n.mods)
	x.Wounds = a.wounds + n.wounds
	x.Skills = append([]string(nil), a.skills...)
	x.Weapons = append(append([]string(nil), a.weapons...), n.weapons...)

	for _, t := range a.traits {
		x.Traits = addTrait(x.Traits, t)
	}
	for _, t := range n.traits {
		x.Traits = addTrait(x.Traits, t)
	}
	for _, bonus := range bonusTraits {
		if !s.Settings.BookEnabled(bonus.book) {
			continue
		}
		if r.Chance(bonus.chance) {
			x.Traits = addTrait(x.Traits, bonus.trait)
		}
	}

	x.setGeneratedName(fmt.Sprintf("%s %s", naming.NewGenerator().Unique(r), a.name), NameOriginEvocative)
	return nil
}

func (x *Xenos) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, x.Name)
	b.Field("Archetype", x.Archetype)
	b.Field("Nature", x.Nature)
	b.Field("Size", x.Size)
	b.Field("Characteristics", x.Characteristics.Line())
	b.Field("Wounds", x.Wounds)
	if len(x.Skills) > 0 {
		b.Field("Skills", strings.Join(x.Skills, ", "))
	}
	traits := make([]string, len(x.Traits))
	for i, t := range x.Traits {
		traits[i] = t.String()
	}
	b.Section("Traits", traits)
	b.Section("Weapons", x.Weapons)
	finish(&x.BaseEntity, b, settings)
}
