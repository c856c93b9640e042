package entity

import (
	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/resource"
	"starforge/internal/rules"
	"starforge/internal/territory"
)

const moonPlaceholder = "Moon"

// BodyClass is the size and density of a planet
type BodyClass string

const (
	BodyLowMass       BodyClass = "Low-Mass"
	BodySmall         BodyClass = "Small"
	BodySmallAndDense BodyClass = "Small and Dense"
	BodyLarge         BodyClass = "Large"
	BodyLargeAndDense BodyClass = "Large and Dense"
	BodyVast          BodyClass = "Vast"
)

var bodyTable = dice.NewTable("Planetary Body", 10,
	dice.B(1, BodyLowMass),
	dice.B(3, BodySmall),
	dice.B(4, BodySmallAndDense),
	dice.B(7, BodyLarge),
	dice.B(8, BodyLargeAndDense),
	dice.B(10, BodyVast),
)

// moonBodyTable is used for moons of rocky planets, which are never larger
// than their host
var moonBodyTable = dice.NewTable("Moon Body", 10,
	dice.B(4, BodyLowMass),
	dice.B(8, BodySmall),
	dice.B(10, BodySmallAndDense),
)

type bodyProfile struct {
	gravity   int
	landmarks int
	minerals  int
}

var bodyProfiles = map[BodyClass]bodyProfile{
	BodyLowMass:       {gravity: -7, landmarks: -1, minerals: -1},
	BodySmall:         {gravity: -5},
	BodySmallAndDense: {minerals: 1},
	BodyLarge:         {landmarks: 1, minerals: 1},
	BodyLargeAndDense: {gravity: 5, landmarks: 1, minerals: 2},
	BodyVast:          {gravity: 4, landmarks: 2, minerals: 2},
}

// Gravity is the surface gravity of a body
type Gravity string

const (
	GravityLow     Gravity = "Low Gravity"
	GravityNormal  Gravity = "Normal Gravity"
	GravityHigh    Gravity = "High Gravity"
	// GravityTitanic is reached only by gas giants; gravityTable tops out at High
	GravityTitanic Gravity = "Titanic Gravity"
)

var gravityTable = dice.NewTable("Gravity", 20,
	dice.B(2, GravityLow),
	dice.B(8, GravityNormal),
	dice.B(20, GravityHigh),
)

type gravityProfile struct {
	features    int
	featureRoll int
	atmosphere  int
}

var gravityProfiles = map[Gravity]gravityProfile{
	GravityLow:     {features: -3, featureRoll: -10, atmosphere: -2},
	GravityNormal:  {features: -2},
	GravityHigh:    {features: -1, featureRoll: 10, atmosphere: 1},
	GravityTitanic: {features: 0, featureRoll: 15, atmosphere: 2},
}

// AtmospherePresence is the density of a planet's atmosphere
type AtmospherePresence string

const (
	AtmosphereNone     AtmospherePresence = "None"
	AtmosphereThin     AtmospherePresence = "Thin"
	AtmosphereModerate AtmospherePresence = "Moderate"
	AtmosphereHeavy    AtmospherePresence = "Heavy"
)

var atmosphereTable = dice.NewTable("Atmospheric Presence", 10,
	dice.B(1, AtmosphereNone),
	dice.B(4, AtmosphereThin),
	dice.B(9, AtmosphereModerate),
	dice.B(10, AtmosphereHeavy),
)

// AtmosphereComposition is what a planet's air is made of
type AtmosphereComposition string

const (
	CompositionDeadly    AtmosphereComposition = "Deadly"
	CompositionCorrosive AtmosphereComposition = "Corrosive"
	CompositionToxic     AtmosphereComposition = "Toxic"
	CompositionTainted   AtmosphereComposition = "Tainted"
	CompositionPure      AtmosphereComposition = "Pure"
)

var compositionTable = dice.NewTable("Atmospheric Composition", 10,
	dice.B(1, CompositionDeadly),
	dice.B(2, CompositionCorrosive),
	dice.B(5, CompositionToxic),
	dice.B(7, CompositionTainted),
	dice.B(10, CompositionPure),
)

var climateTable = dice.NewTable("Climate", 16,
	dice.B(2, territory.Ice),
	dice.B(5, territory.Cold),
	dice.B(10, territory.Temperate),
	dice.B(13, territory.Hot),
	dice.B(16, territory.Burning),
)

var climateZoneModifier = map[ZoneKind]int{
	ZoneInnerCauldron:    6,
	ZonePrimaryBiosphere: 3,
	ZoneOuterReaches:     -3,
}

var habitabilityTable = dice.NewTable("Habitability", 12,
	dice.B(2, territory.Inhospitable),
	dice.B(4, territory.TrappedWater),
	dice.B(6, territory.LiquidWater),
	dice.B(9, territory.LimitedEcosystem),
	dice.B(12, territory.Verdant),
)

var habitabilityClimateModifier = map[territory.Climate]int{
	territory.Burning:   -7,
	territory.Hot:       -2,
	territory.Temperate: 0,
	territory.Cold:      -2,
	territory.Ice:       -7,
}

var habitabilityCompositionModifier = map[AtmosphereComposition]int{
	CompositionToxic:   -2,
	CompositionTainted: -1,
	CompositionPure:    1,
}

// orbitalFeatureRoll is one entry of a body's orbital features table
type orbitalFeatureRoll string

const (
	orbitNothing       orbitalFeatureRoll = ""
	orbitLargeAsteroid orbitalFeatureRoll = "Large Asteroid"
	orbitLesserMoon    orbitalFeatureRoll = "Lesser Moon"
	orbitMoon          orbitalFeatureRoll = "Moon"
	orbitRing          orbitalFeatureRoll = "Planetary Ring"
)

var planetOrbitTable = dice.NewTable("Planet Orbital Features", 100,
	dice.B(45, orbitNothing),
	dice.B(60, orbitLargeAsteroid),
	dice.B(90, orbitLesserMoon),
	dice.B(100, orbitMoon),
)

const (
	havenHabitabilityBonus = 2
	nativeInhabitantChance = 20
	colonyChance           = 25
	primitiveXenosChance   = 10
	warpStormChance        = 10
	planetRuinsChance      = 10
	ruinedEmpireBonus      = 25
	planetArcheotechChance = 10
	evocativeBodyChance    = 40
)

// PlanetState holds the generated fields of a Planet or moon
type PlanetState struct {
	IsMoon       bool                   `json:"isMoon,omitempty"`
	Zone         ZoneKind               `json:"zone,omitempty"`
	Body         BodyClass              `json:"body"`
	Gravity      Gravity                `json:"gravity"`
	Atmosphere   AtmospherePresence     `json:"atmosphere"`
	Composition  AtmosphereComposition  `json:"atmosphericComposition,omitempty"`
	Climate      territory.Climate      `json:"climate"`
	Habitability territory.Habitability `json:"habitability"`
	Environment  territory.Environment  `json:"environment"`
	Deposits
	Inhabitants *Inhabitants `json:"inhabitants,omitempty"`
	Homeworld   bool         `json:"homeworld,omitempty"`
	Cursed      bool         `json:"doomed,omitempty"`
	WarpStorm   bool         `json:"warpStorm,omitempty"`
}

// Planet is a rocky world. Moons are Planets held in a body's orbital
// features.
type Planet struct {
	BaseEntity
	PlanetState
}

func NewPlanet() *Planet {
	return &Planet{BaseEntity: newBase(KindPlanet)}
}

// Reset keeps whether the planet is a moon and, for loose planets, the zone
// it was placed in
func (p *Planet) Reset() {
	p.resetBase()
	if p.IsMoon && !p.NameCustomized {
		p.Name = moonPlaceholder
	}
	p.PlanetState = PlanetState{IsMoon: p.IsMoon, Zone: p.Zone}
}

func (p *Planet) state() any       { return &p.PlanetState }
func (p *Planet) exportState() any { return &p.PlanetState }

// zoneKindOf resolves the zone used for climate rolls
func zoneKindOf(e Entity, fallback ZoneKind) ZoneKind {
	if z := ZoneOf(e); z != nil {
		return z.Zone
	}
	if fallback != "" {
		return fallback
	}
	return ZonePrimaryBiosphere
}

// orbitHost returns the body a moon orbits, or nil
func orbitHost(e Entity) Entity {
	of, ok := e.Base().parent.(*OrbitalFeatures)
	if !ok {
		return nil
	}
	return of.parent
}

func (p *Planet) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(p)

	p.Zone = zoneKindOf(p, p.Zone)
	haven := cr.Haven && p.Zone == ZonePrimaryBiosphere
	p.evocative = r.Chance(evocativeBodyChance)

	if p.IsMoon {
		p.Reference = rules.Ref(rules.BookStarsOfInequity, 18, "Orbital Features")
		if _, onGiant := orbitHost(p).(*GasGiant); onGiant {
			p.Body = bodyTable.Roll(r)
		} else {
			p.Body = moonBodyTable.Roll(r)
		}
	} else {
		p.Reference = rules.Ref(rules.BookStarsOfInequity, 16, "Planet Creation")
		p.Body = bodyTable.Roll(r)
	}
	profile := bodyProfiles[p.Body]
	p.Gravity = gravityTable.RollModified(r, 10, profile.gravity)

	if !p.IsMoon {
		if err := generateOrbitalFeatures(p, s); err != nil {
			return err
		}
	}

	p.rollAtmosphere(r, haven)
	p.rollClimate(r)
	p.rollHabitability(r, haven)

	p.Environment = territory.Generate(r, territory.Conditions{
		Habitability:     p.Habitability,
		Climate:          p.Climate,
		LandmarkModifier: profile.landmarks,
	})

	p.Minerals = resource.DefaultAccumulator.Accumulate(r, max(r.D(5)+profile.minerals, 0), cr.BountifulResources)
	p.rollOrganics(r)
	p.rollRuins(r, cr)

	if err := p.generateNatives(s); err != nil {
		return err
	}

	switch {
	case cr.Starfarers && cr.HomeworldID == int64(p.ID):
		p.applyHomeworld(cr)
	case cr.Starfarers && p.Habitability != territory.Inhospitable && r.Chance(colonyChance):
		p.Inhabitants = &Inhabitants{Species: cr.StarfarerSpecies, Development: DevelopmentColony}
	case p.Habitability.HasLiquidWater() && r.Chance(nativeInhabitantChance):
		p.Inhabitants = rollInhabitants(r)
	}

	p.Cursed = cr.DoomedWorld && cr.DoomedWorldID == int64(p.ID)
	p.WarpStorm = (cr.WarpTurbulence || cr.WarpTouched) && r.Chance(warpStormChance)
	return nil
}

func (p *Planet) rollAtmosphere(r *dice.Roller, haven bool) {
	mod := gravityProfiles[p.Gravity].atmosphere
	if haven {
		mod++
	}
	p.Atmosphere = atmosphereTable.RollModified(r, 10, mod)
	if p.Atmosphere == AtmosphereNone {
		return
	}
	compositionMod := 0
	if haven {
		compositionMod = 2
	}
	p.Composition = compositionTable.RollModified(r, 10, compositionMod)
}

// rollClimate: airless worlds take the raw temperature of their zone
func (p *Planet) rollClimate(r *dice.Roller) {
	if p.Atmosphere == AtmosphereNone {
		switch p.Zone {
		case ZoneInnerCauldron:
			p.Climate = territory.Burning
			return
		case ZoneOuterReaches:
			p.Climate = territory.Ice
			return
		}
	}
	p.Climate = climateTable.RollModified(r, 10, climateZoneModifier[p.Zone])
}

func (p *Planet) rollHabitability(r *dice.Roller, haven bool) {
	switch {
	case p.Atmosphere == AtmosphereNone,
		p.Composition == CompositionDeadly,
		p.Composition == CompositionCorrosive:
		p.Habitability = territory.Inhospitable
		return
	}
	mod := habitabilityClimateModifier[p.Climate] + habitabilityCompositionModifier[p.Composition]
	if haven {
		mod += havenHabitabilityBonus
	}
	p.Habitability = habitabilityTable.RollModified(r, 10, mod)
}

func (p *Planet) rollOrganics(r *dice.Roller) {
	n := 0
	switch p.Habitability {
	case territory.LimitedEcosystem:
		n = r.D(2) - 1
	case territory.Verdant:
		n = r.D(3)
	}
	for i := 0; i < n; i++ {
		p.Organics = append(p.Organics, resource.RollOrganicCompound(r))
	}
}

func (p *Planet) rollRuins(r *dice.Roller, cr *rules.CreationRules) {
	ruinsChance := planetRuinsChance
	if cr.RuinedEmpire {
		ruinsChance += ruinedEmpireBonus
	}
	if r.Chance(ruinsChance) {
		p.XenosRuins = append(p.XenosRuins, resource.RollXenosRuins(r, cr, resource.PlanetRuinsTheme))
	}

	archeotechChance := planetArcheotechChance
	if cr.IncreasedArcheotech {
		archeotechChance += ruinedEmpireBonus
	}
	if r.Chance(archeotechChance) {
		p.Archeotech = append(p.Archeotech, resource.RollArcheotech(r, cr))
	}
}

// generateNatives adds native species for ecosystem worlds. Creature and
// primitive generators whose sources are disabled are skipped before any
// roll is made.
func (p *Planet) generateNatives(s *Session) error {
	r := s.Dice
	if !p.Habitability.IsEcosystem() {
		return nil
	}

	if len(s.Settings.AvailableXenosSources()) > 0 {
		n := p.Environment.NotableSpecies()
		if p.Habitability == territory.Verdant {
			n += r.D(3)
		} else {
			n += r.D(2) - 1
		}
		for i := 0; i < n; i++ {
			if _, err := s.generateChild(p, KindXenos); err != nil {
				return err
			}
		}
	}

	if s.Settings.BookEnabled(rules.BookStarsOfInequity) && r.Chance(primitiveXenosChance) {
		if _, err := s.generateChild(p, KindPrimitiveXenos); err != nil {
			return err
		}
	}
	return nil
}

func (p *Planet) applyHomeworld(cr *rules.CreationRules) {
	p.Homeworld = true
	p.Inhabitants = &Inhabitants{Species: cr.StarfarerSpecies, Development: DevelopmentVoidfarers}
}

// NativeSpecies returns the creatures living on the planet
func (p *Planet) NativeSpecies() []*Xenos {
	return childrenOfKind[*Xenos](p)
}

func (p *Planet) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(2, p.Name)
	if p.IsMoon {
		b.Field("Type", "Moon")
	}
	b.Field("Zone", p.Zone)
	b.Field("Body", p.Body)
	b.Field("Gravity", p.Gravity)

	atmosphere := string(p.Atmosphere)
	if p.Composition != "" {
		atmosphere += ", " + string(p.Composition)
	}
	b.Field("Atmosphere", atmosphere)
	b.Field("Climate", p.Climate)
	b.Field("Habitability", p.Habitability)

	b.FieldIf(p.Inhabitants != nil, "Inhabitants", p.Inhabitants.String())
	b.FieldIf(p.Homeworld, "Homeworld", "Home of the system's starfaring civilisation")
	b.FieldIf(p.Cursed, "Doomed World", "This world is marked for ruin; calamity stalks all who set foot upon it.")
	b.FieldIf(p.WarpStorm, "Warp Storm", "A localised Warp storm rages about the world.")

	var territories []string
	for _, t := range p.Environment.Territories {
		territories = append(territories, t.Summary())
	}
	b.Section("Territories", territories)
	p.Deposits.describe(b)

	var natives []string
	for _, x := range p.NativeSpecies() {
		natives = append(natives, x.Name)
	}
	b.Section("Native Species", natives)
	finish(&p.BaseEntity, b, settings)
}
