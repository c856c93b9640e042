package entity

import (
	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/resource"
	"starforge/internal/rules"
)

// mineralProfile is what distinguishes the kinds that share MineralBody
type mineralProfile struct {
	iterations  func(r *dice.Roller) int
	ruinsChance int
	theme       resource.Theme
	archeotech  int
	reference   rules.Reference
	summary     string
}

var mineralProfiles = map[Kind]mineralProfile{
	KindAsteroidBelt: {
		iterations: func(r *dice.Roller) int { return r.D(5) + 1 },
		reference:  rules.Ref(rules.BookStarsOfInequity, 12, "Asteroid Belt"),
		summary:    "A band of rock and ice circling the star. Navigating it requires a Pilot (Space Craft) test.",
	},
	KindAsteroidCluster: {
		iterations: func(r *dice.Roller) int { return r.D(5) },
		reference:  rules.Ref(rules.BookStarsOfInequity, 12, "Asteroid Cluster"),
		summary:    "A dense knot of tumbling asteroids. Navigating it requires a Pilot (Space Craft) test.",
	},
	KindLesserMoon: {
		iterations:  func(r *dice.Roller) int { return r.D(3) },
		ruinsChance: 5,
		theme:       resource.LesserRemnantsTheme,
		reference:   rules.Ref(rules.BookStarsOfInequity, 19, "Lesser Moon"),
		summary:     "A small satellite too slight to hold an atmosphere.",
	},
	KindAsteroid: {
		iterations: func(r *dice.Roller) int { return r.D(2) },
		archeotech: 2,
		reference:  rules.Ref(rules.BookStarsOfInequity, 18, "Large Asteroid"),
		summary:    "A single large asteroid captured in orbit.",
	},
}

// MineralBodyState holds the resources of a mineral body
type MineralBodyState struct {
	Deposits
}

// MineralBody is the shared implementation of asteroid belts, asteroid
// clusters, lesser moons and large asteroids. Each kind differs only in its
// profile.
type MineralBody struct {
	BaseEntity
	MineralBodyState
}

func newMineralBody(kind Kind) *MineralBody {
	return &MineralBody{BaseEntity: newBase(kind)}
}

func (m *MineralBody) Reset() {
	m.resetBase()
	m.Deposits.clear()
}

func (m *MineralBody) state() any       { return &m.MineralBodyState }
func (m *MineralBody) exportState() any { return &m.MineralBodyState }

func (m *MineralBody) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(m)
	profile := mineralProfiles[m.kind]

	m.Reference = profile.reference
	m.Minerals = resource.DefaultAccumulator.Accumulate(r, profile.iterations(r), cr.BountifulAsteroids)
	if profile.ruinsChance > 0 && r.Chance(profile.ruinsChance) {
		m.XenosRuins = append(m.XenosRuins, resource.RollXenosRuins(r, cr, profile.theme))
	}
	if profile.archeotech > 0 && r.Chance(profile.archeotech) {
		m.Archeotech = append(m.Archeotech, resource.RollArcheotech(r, cr))
	}
	return nil
}

func (m *MineralBody) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, m.Name)
	b.Paragraph(mineralProfiles[m.kind].summary)
	m.Deposits.describe(b)
	finish(&m.BaseEntity, b, settings)
}
