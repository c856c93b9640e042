package entity

import (
	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/resource"
	"starforge/internal/rules"
)

// stationOrigins names the station built by each ruined species
var stationOrigins = map[rules.RuinedSpecies]string{
	rules.RuinedSpeciesUndiscovered: "Xenos Outpost of Unknown Origin",
	rules.RuinedSpeciesEldar:        "Eldar Orrery",
	rules.RuinedSpeciesEgarian:      "Egarian Void-Maze",
	rules.RuinedSpeciesYuVath:       "Yu'vath Shrine-Complex",
	rules.RuinedSpeciesOrk:          "Ork Rok",
}

var humanStations = []string{"STC Defence Station", "STC Monitor Station", "Abandoned Imperial Waystation"}

const xenosStationChance = 70

// DerelictStationState holds the generated fields of a DerelictStation
type DerelictStationState struct {
	Origin  string              `json:"origin"`
	Species rules.RuinedSpecies `json:"species,omitempty"`
	Deposits
}

// DerelictStation is an abandoned void station, either xenos or of lost
// human make
type DerelictStation struct {
	BaseEntity
	DerelictStationState
}

func NewDerelictStation() *DerelictStation {
	return &DerelictStation{BaseEntity: newBase(KindDerelictStation)}
}

func (d *DerelictStation) Reset() {
	d.resetBase()
	d.DerelictStationState = DerelictStationState{}
}

func (d *DerelictStation) state() any       { return &d.DerelictStationState }
func (d *DerelictStation) exportState() any { return &d.DerelictStationState }

func (d *DerelictStation) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(d)
	d.Reference = rules.Ref(rules.BookStarsOfInequity, 12, "Derelict Station")

	if r.Chance(xenosStationChance) {
		d.Species = resource.DerelictTheme.Species(r, cr)
		d.Origin = stationOrigins[d.Species]
		for i, n := 0, r.D(2); i < n; i++ {
			d.XenosRuins = append(d.XenosRuins, resource.NewXenosRuins(r, cr, d.Species))
		}
		return nil
	}

	d.Origin = dice.Pick(r, humanStations)
	for i, n := 0, r.D(2); i < n; i++ {
		d.Archeotech = append(d.Archeotech, resource.RollArcheotech(r, cr))
	}
	return nil
}

func (d *DerelictStation) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, d.Name)
	b.Field("Origin", d.Origin)
	b.FieldIf(d.Species != rules.RuinedSpeciesNone, "Builders", d.Species)
	d.Deposits.describe(b)
	finish(&d.BaseEntity, b, settings)
}

// FleetComposition describes the battle that left a starship graveyard
type FleetComposition string

const (
	FleetCrushedDefence  FleetComposition = "Crushed Defence Force"
	FleetEngagement      FleetComposition = "Fleet Engagement"
	FleetLostExplorers   FleetComposition = "Lost Explorers"
	FleetPlunderedConvoy FleetComposition = "Plundered Convoy"
	FleetXenosAmbush     FleetComposition = "Xenos Ambush"
)

var fleetCompositionTable = dice.NewTable("Starship Graveyard", 10,
	dice.B(2, FleetCrushedDefence),
	dice.B(4, FleetEngagement),
	dice.B(6, FleetLostExplorers),
	dice.B(8, FleetPlunderedConvoy),
	dice.B(10, FleetXenosAmbush),
)

type fleetProfile struct {
	hulks       func(r *dice.Roller) int
	xenosHulks  int
	archeotech  int
	description string
}

var fleetProfiles = map[FleetComposition]fleetProfile{
	FleetCrushedDefence: {
		hulks:       func(r *dice.Roller) int { return r.D(5) + 3 },
		archeotech:  2,
		description: "The wreckage of a defence force annihilated by a superior foe.",
	},
	FleetEngagement: {
		hulks:       func(r *dice.Roller) int { return r.D(10) + 6 },
		xenosHulks:  1,
		archeotech:  1,
		description: "The debris of a great void battle between rival fleets.",
	},
	FleetLostExplorers: {
		hulks:       func(r *dice.Roller) int { return r.D(3) },
		archeotech:  2,
		description: "The remains of an expedition that never returned home.",
	},
	FleetPlunderedConvoy: {
		hulks:       func(r *dice.Roller) int { return r.D(5) + 2 },
		archeotech:  1,
		description: "A convoy stripped and scuttled by raiders.",
	},
	FleetXenosAmbush: {
		hulks:       func(r *dice.Roller) int { return r.D(5) + 1 },
		xenosHulks:  2,
		description: "Xenos raiders fell upon their prey here, and paid for it.",
	},
}

// StarshipGraveyardState holds the generated fields of a StarshipGraveyard
type StarshipGraveyardState struct {
	Composition FleetComposition `json:"composition"`
	Hulks       int              `json:"hulks"`
	Deposits
}

// StarshipGraveyard is a field of wrecked vessels
type StarshipGraveyard struct {
	BaseEntity
	StarshipGraveyardState
}

func NewStarshipGraveyard() *StarshipGraveyard {
	return &StarshipGraveyard{BaseEntity: newBase(KindStarshipGraveyard)}
}

func (g *StarshipGraveyard) Reset() {
	g.resetBase()
	g.StarshipGraveyardState = StarshipGraveyardState{}
}

func (g *StarshipGraveyard) state() any       { return &g.StarshipGraveyardState }
func (g *StarshipGraveyard) exportState() any { return &g.StarshipGraveyardState }

func (g *StarshipGraveyard) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(g)
	g.Reference = rules.Ref(rules.BookStarsOfInequity, 13, "Starship Graveyard")

	g.Composition = fleetCompositionTable.Roll(r)
	profile := fleetProfiles[g.Composition]
	g.Hulks = profile.hulks(r)

	for i := 0; i < profile.xenosHulks; i++ {
		g.XenosRuins = append(g.XenosRuins, resource.RollXenosRuins(r, cr, resource.GraveyardTheme))
	}
	for i := 0; i < profile.archeotech; i++ {
		g.Archeotech = append(g.Archeotech, resource.RollArcheotech(r, cr))
	}
	return nil
}

func (g *StarshipGraveyard) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, g.Name)
	b.Field("Composition", g.Composition)
	b.Paragraph(fleetProfiles[g.Composition].description)
	b.Field("Hulks", g.Hulks)
	g.Deposits.describe(b)
	finish(&g.BaseEntity, b, settings)
}
