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

var techLevelTable = dice.NewTable("Primitive Technology", 10,
	dice.B(3, "Stone Age"),
	dice.B(6, "Bronze Age"),
	dice.B(8, "Iron Age"),
	dice.B(10, "Steam Age"),
)

var societyTable = dice.NewTable("Primitive Society", 10,
	dice.B(3, "Nomadic Tribes"),
	dice.B(5, "Hunter Clans"),
	dice.B(7, "Theocratic Chiefdoms"),
	dice.B(9, "Feudal Kingdoms"),
	dice.B(10, "Hive Collective"),
)

var dispositionTable = dice.NewTable("Primitive Disposition", 10,
	dice.B(3, "Hostile"),
	dice.B(6, "Wary"),
	dice.B(8, "Curious"),
	dice.B(10, "Welcoming"),
)

// primitiveTraits is the pool of distinguishing traits; a creature draws a
// front-loaded handful of them
var primitiveTraits = []Trait{
	{Name: "Dark-sight"},
	{Name: "Natural Armour", Rating: 2},
	{Name: "Multiple Arms"},
	{Name: "Sturdy"},
	{Name: "Unnatural Agility", Rating: 1},
	{Name: "Unnatural Toughness", Rating: 1},
	{Name: "Amphibious"},
	{Name: "Size (Hulking)"},
}

var primitiveWeapons = map[string][]string{
	"Stone Age":  {"Flint Spear (1d10 R, Primitive)", "Sling (1d10-1 I, Primitive)"},
	"Bronze Age": {"Bronze Blade (1d10+1 R, Primitive)", "Short Bow (1d10 R, Primitive)"},
	"Iron Age":   {"Iron Sword (1d10+2 R, Primitive)", "Crossbow (1d10+1 R, Primitive)"},
	"Steam Age":  {"Musket (1d10+2 I, Inaccurate)", "Cutlass (1d10+2 R)"},
}

var primitiveBase = Characteristics{
	WeaponSkill: 30, BallisticSkill: 25, Strength: 30, Toughness: 30,
	Agility: 30, Intelligence: 25, Perception: 30, Willpower: 30, Fellowship: 20,
}

// PrimitiveXenosState holds the generated fields of a primitive species
type PrimitiveXenosState struct {
	TechLevel       string          `json:"techLevel"`
	Society         string          `json:"society"`
	Disposition     string          `json:"disposition"`
	Characteristics Characteristics `json:"characteristics"`
	Wounds          int             `json:"wounds"`
	Traits          []Trait         `json:"traits,omitempty"`
	Weapons         []string        `json:"weapons,omitempty"`
}

// PrimitiveXenos is an intelligent species that has not reached the void
type PrimitiveXenos struct {
	BaseEntity
	PrimitiveXenosState
}

func NewPrimitiveXenos() *PrimitiveXenos {
	return &PrimitiveXenos{BaseEntity: newBase(KindPrimitiveXenos)}
}

func (p *PrimitiveXenos) Reset() {
	p.resetBase()
	p.PrimitiveXenosState = PrimitiveXenosState{}
}

func (p *PrimitiveXenos) state() any       { return &p.PrimitiveXenosState }
func (p *PrimitiveXenos) exportState() any { return &p.PrimitiveXenosState }

func (p *PrimitiveXenos) populate(s *Session) error {
	if !s.Settings.BookEnabled(rules.BookStarsOfInequity) {
		return apperrors.UnsupportedSourcef("primitive xenos require %s", rules.BookStarsOfInequity.Title())
	}
	r := s.Dice
	p.Reference = rules.Ref(rules.BookStarsOfInequity, 138, "Primitive Xenos")

	p.TechLevel = techLevelTable.Roll(r)
	p.Society = societyTable.Roll(r)
	p.Disposition = dispositionTable.Roll(r)

	var mods Characteristics
	mods.WeaponSkill = r.D(10) - 5
	mods.Strength = r.D(10) - 5
	mods.Toughness = r.D(10) - 5
	mods.Agility = r.D(10) - 5
	mods.Intelligence = r.D(10) - 5
	p.Characteristics = primitiveBase.Plus(mods)
	p.Wounds = 8 + r.D(5)

	for _, t := range dice.PickDistinct(r, primitiveTraits) {
		p.Traits = addTrait(p.Traits, t)
	}
	if hasTrait(p.Traits, "Sturdy") {
		p.Wounds += 3
	}
	p.Weapons = []string{dice.Pick(r, primitiveWeapons[p.TechLevel])}

	p.setGeneratedName(naming.NewGenerator().Unique(r), NameOriginEvocative)
	return nil
}

func (p *PrimitiveXenos) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, p.Name)
	b.Field("Technology", p.TechLevel)
	b.Field("Society", p.Society)
	b.Field("Disposition", p.Disposition)
	b.Field("Characteristics", p.Characteristics.Line())
	b.Field("Wounds", p.Wounds)
	traits := make([]string, len(p.Traits))
	for i, t := range p.Traits {
		traits[i] = t.String()
	}
	if len(traits) > 0 {
		b.Field("Traits", strings.Join(traits, ", "))
	}
	b.Section("Weapons", p.Weapons)
	b.Paragraph(fmt.Sprintf("The %s are %s toward outsiders.", p.Name, strings.ToLower(p.Disposition)))
	finish(&p.BaseEntity, b, settings)
}
