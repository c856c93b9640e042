package entity

import (
	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
)

// GasGiantClass is the size of a gas giant
type GasGiantClass string

const (
	GasDwarf        GasGiantClass = "Gas Dwarf"
	GasGiantNormal  GasGiantClass = "Gas Giant"
	GasGiantMassive GasGiantClass = "Massive Gas Giant"
	GasGiantTitanic GasGiantClass = "Titanic Gas Giant"
)

var gasGiantClassTable = dice.NewTable("Gas Giant Body", 10,
	dice.B(2, GasDwarf),
	dice.B(8, GasGiantNormal),
	dice.B(9, GasGiantMassive),
	dice.B(10, GasGiantTitanic),
)

type gasGiantProfile struct {
	gravity  Gravity
	features int
}

var gasGiantProfiles = map[GasGiantClass]gasGiantProfile{
	GasDwarf:        {gravity: GravityHigh, features: -5},
	GasGiantNormal:  {gravity: GravityTitanic, features: -3},
	GasGiantMassive: {gravity: GravityTitanic, features: -1},
	GasGiantTitanic: {gravity: GravityTitanic},
}

var gasGiantOrbitTable = dice.NewTable("Gas Giant Orbital Features", 100,
	dice.B(20, orbitNothing),
	dice.B(35, orbitRing),
	dice.B(55, orbitLargeAsteroid),
	dice.B(85, orbitLesserMoon),
	dice.B(100, orbitMoon),
)

const (
	gasGiantHabitationChance  = 5
	starfarerHabitationChance = 20
)

// GasGiantState holds the generated fields of a GasGiant
type GasGiantState struct {
	Zone        ZoneKind      `json:"zone,omitempty"`
	Class       GasGiantClass `json:"class"`
	Gravity     Gravity       `json:"gravity"`
	Inhabitants *Inhabitants  `json:"inhabitants,omitempty"`
}

// GasGiant is a massive gaseous world, usually with a crowd of satellites
type GasGiant struct {
	BaseEntity
	GasGiantState
}

func NewGasGiant() *GasGiant {
	return &GasGiant{BaseEntity: newBase(KindGasGiant)}
}

func (g *GasGiant) Reset() {
	g.resetBase()
	g.GasGiantState = GasGiantState{Zone: g.Zone}
}

func (g *GasGiant) state() any       { return &g.GasGiantState }
func (g *GasGiant) exportState() any { return &g.GasGiantState }

func (g *GasGiant) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(g)

	g.Zone = zoneKindOf(g, g.Zone)
	g.Reference = rules.Ref(rules.BookStarsOfInequity, 17, "Gas Giant Creation")
	g.evocative = r.Chance(evocativeBodyChance)
	g.Class = gasGiantClassTable.Roll(r)
	g.Gravity = gasGiantProfiles[g.Class].gravity

	if err := generateOrbitalFeatures(g, s); err != nil {
		return err
	}

	switch {
	case cr.Starfarers && r.Chance(starfarerHabitationChance):
		g.Inhabitants = &Inhabitants{Species: cr.StarfarerSpecies, Development: DevelopmentOrbitalHabitation}
	case r.Chance(gasGiantHabitationChance):
		g.Inhabitants = &Inhabitants{Species: rules.SpeciesHuman, Development: DevelopmentOrbitalHabitation}
	}
	return nil
}

func (g *GasGiant) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(2, g.Name)
	b.Field("Zone", g.Zone)
	b.Field("Body", g.Class)
	b.Field("Gravity", g.Gravity)
	b.FieldIf(g.Inhabitants != nil, "Inhabitants", g.Inhabitants.String())
	if of := orbitalFeaturesOf(g); of != nil {
		b.Field("Orbital Features", len(of.children)+len(of.Rings))
	}
	finish(&g.BaseEntity, b, settings)
}
