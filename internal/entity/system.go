package entity

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
)

// StarClass is the classification of a system's primary star
type StarClass string

const (
	StarMighty    StarClass = "Mighty"
	StarVigorous  StarClass = "Vigorous"
	StarLuminous  StarClass = "Luminous"
	StarDull      StarClass = "Dull"
	StarAnomalous StarClass = "Anomalous"
	StarBinary    StarClass = "Binary"
)

var starTable = dice.NewTable("Star", 10,
	dice.B(1, StarMighty),
	dice.B(4, StarVigorous),
	dice.B(7, StarLuminous),
	dice.B(8, StarDull),
	dice.B(9, StarAnomalous),
	dice.B(10, StarBinary),
)

// companionTable rolls each star of a binary pair
var companionTable = dice.NewTable("Binary Companion", 8,
	dice.B(1, StarMighty),
	dice.B(4, StarVigorous),
	dice.B(7, StarLuminous),
	dice.B(8, StarDull),
)

// ZoneStrength is the star's influence over a zone
type ZoneStrength string

const (
	StrengthWeak     ZoneStrength = "Weak"
	StrengthNormal   ZoneStrength = "Normal"
	StrengthDominant ZoneStrength = "Dominant"
)

func (z ZoneStrength) rank() int {
	switch z {
	case StrengthWeak:
		return 0
	case StrengthDominant:
		return 2
	}
	return 1
}

// sizeModifier shifts the zone size roll
func (z ZoneStrength) sizeModifier() int {
	switch z {
	case StrengthWeak:
		return -3
	case StrengthDominant:
		return 3
	}
	return 0
}

var anomalousStrengthTable = dice.NewTable("Anomalous Zone Strength", 10,
	dice.B(3, StrengthWeak),
	dice.B(7, StrengthNormal),
	dice.B(10, StrengthDominant),
)

// starInfluence lists the zones a star class pushes away from Normal
var starInfluence = map[StarClass]map[ZoneKind]ZoneStrength{
	StarMighty:   {ZoneInnerCauldron: StrengthDominant, ZonePrimaryBiosphere: StrengthWeak},
	StarVigorous: {},
	StarLuminous: {ZoneInnerCauldron: StrengthWeak},
	StarDull:     {ZoneInnerCauldron: StrengthWeak, ZoneOuterReaches: StrengthDominant},
}

// SystemFeature is a notable trait of a system that biases its contents
type SystemFeature string

const (
	FeatureBountiful      SystemFeature = "Bountiful"
	FeatureGravityTides   SystemFeature = "Gravity Tides"
	FeatureHaven          SystemFeature = "Haven"
	FeatureIllOmened      SystemFeature = "Ill-Omened"
	FeaturePirateDen      SystemFeature = "Pirate Den"
	FeatureRuinedEmpire   SystemFeature = "Ruined Empire"
	FeatureStarfarers     SystemFeature = "Starfarers"
	FeatureStellarAnomaly SystemFeature = "Stellar Anomaly"
	FeatureWarpStasis     SystemFeature = "Warp Stasis"
	FeatureWarpTurbulence SystemFeature = "Warp Turbulence"
)

var featureTable = dice.NewTable("System Feature", 10,
	dice.B(1, FeatureBountiful),
	dice.B(2, FeatureGravityTides),
	dice.B(3, FeatureHaven),
	dice.B(4, FeatureIllOmened),
	dice.B(5, FeaturePirateDen),
	dice.B(6, FeatureRuinedEmpire),
	dice.B(7, FeatureStarfarers),
	dice.B(8, FeatureStellarAnomaly),
	dice.B(9, FeatureWarpStasis),
	dice.B(10, FeatureWarpTurbulence),
)

var featureRules = map[SystemFeature]string{
	FeatureBountiful:      "Mineral and asteroid deposits are richer than usual; resource rolls may gain extra iterations.",
	FeatureGravityTides:   "Gravity riptides are common and bodies hold more orbital features. Manoeuvre actions within the system are made at -10.",
	FeatureHaven:          "The Primary Biosphere holds more bodies and its worlds have gentler atmospheres and better odds of life.",
	FeatureIllOmened:      "The system is steeped in dread. Fear and Insanity effects within it are harder to resist.",
	FeaturePirateDen:      "Pirate vessels lair among the system's bodies.",
	FeatureRuinedEmpire:   "The remains of a fallen civilisation are strewn across the system; xenos ruins and archeotech are more plentiful.",
	FeatureStarfarers:     "A spacefaring civilisation calls this system home.",
	FeatureStellarAnomaly: "An anomalous stellar phenomenon dominates the system, disrupting Detection and augury.",
	FeatureWarpStasis:     "The Warp is becalmed here. Psychic powers suffer -3 to Focus Power tests and Warp travel in or out takes longer.",
	FeatureWarpTurbulence: "Warp currents churn around the system. Psychic Phenomena rolls gain +10 and navigation is hazardous.",
}

// IllOmenedEffect is one of the independent sub-effects of an Ill-Omened system
type IllOmenedEffect string

const (
	OmenDreadStars      IllOmenedEffect = "Dread Stars"
	OmenHauntingVisions IllOmenedEffect = "Haunting Visions"
	OmenDoomedWorld     IllOmenedEffect = "Doomed World"
	OmenWarpTouched     IllOmenedEffect = "Warp-Touched"
)

const illOmenedEffectChance = 25

var starfarerSpeciesTable = dice.NewTable("Starfarer Species", 10,
	dice.B(5, rules.SpeciesHuman),
	dice.B(7, rules.SpeciesOrk),
	dice.B(9, rules.SpeciesEldar),
	dice.B(10, rules.SpeciesKroot),
)

// NamingStyle selects how a system's bodies are named
type NamingStyle string

const (
	NamingProcedural NamingStyle = "Procedural"
	NamingEvocative  NamingStyle = "Evocative"
)

const (
	evocativeSystemChance = 50
	secondFeatureChance   = 50
)

// SystemState holds the generated fields of a System
type SystemState struct {
	Star             StarClass                 `json:"star"`
	Companions       []StarClass               `json:"companions,omitempty"`
	ZoneStrengths    map[ZoneKind]ZoneStrength `json:"zoneStrengths,omitempty"`
	Features         []SystemFeature           `json:"features,omitempty"`
	IllOmenedEffects []IllOmenedEffect         `json:"illOmenedEffects,omitempty"`
	NamingStyle      NamingStyle               `json:"namingStyle,omitempty"`
	Rules            *rules.CreationRules      `json:"creationRules,omitempty"`
}

// System is a star system: a star, three zones and the shared creation
// rules that bias everything generated inside it
type System struct {
	BaseEntity
	SystemState
}

func NewSystem() *System {
	return &System{
		BaseEntity:  newBase(KindSystem),
		SystemState: SystemState{Rules: rules.NewCreationRules()},
	}
}

func (sys *System) Reset() {
	sys.resetBase()
	sys.SystemState = SystemState{Rules: rules.NewCreationRules()}
}

func (sys *System) state() any { return &sys.SystemState }

type systemExport struct {
	Star             StarClass                 `json:"star"`
	Companions       []StarClass               `json:"companions,omitempty"`
	ZoneStrengths    map[ZoneKind]ZoneStrength `json:"zoneStrengths,omitempty"`
	Features         []SystemFeature           `json:"features,omitempty"`
	IllOmenedEffects []IllOmenedEffect         `json:"illOmenedEffects,omitempty"`
	NamingStyle      NamingStyle               `json:"namingStyle,omitempty"`
}

func (sys *System) exportState() any {
	return systemExport{
		Star:             sys.Star,
		Companions:       sys.Companions,
		ZoneStrengths:    sys.ZoneStrengths,
		Features:         sys.Features,
		IllOmenedEffects: sys.IllOmenedEffects,
		NamingStyle:      sys.NamingStyle,
	}
}

// Zones returns the system's zones in order
func (sys *System) Zones() []*Zone {
	return childrenOfKind[*Zone](sys)
}

// Zone returns the zone of the given kind, or nil
func (sys *System) Zone(kind ZoneKind) *Zone {
	for _, z := range sys.Zones() {
		if z.Zone == kind {
			return z
		}
	}
	return nil
}

// StrengthOf returns the star's influence over a zone
func (sys *System) StrengthOf(kind ZoneKind) ZoneStrength {
	if s, ok := sys.ZoneStrengths[kind]; ok {
		return s
	}
	return StrengthNormal
}

// Bodies returns the named bodies (planets and gas giants) in zone order,
// then discovery order within each zone. Moons are not included.
func (sys *System) Bodies() []Entity {
	var bodies []Entity
	for _, z := range sys.Zones() {
		for _, c := range z.children {
			if c.Kind() == KindPlanet || c.Kind() == KindGasGiant {
				bodies = append(bodies, c)
			}
		}
	}
	return bodies
}

// Planets returns every non-moon planet in zone order
func (sys *System) Planets() []*Planet {
	var planets []*Planet
	for _, z := range sys.Zones() {
		planets = append(planets, childrenOfKind[*Planet](z)...)
	}
	return planets
}

func (sys *System) HasFeature(f SystemFeature) bool {
	for _, have := range sys.Features {
		if have == f {
			return true
		}
	}
	return false
}

// Homeworld returns the starfarers' home planet if it still exists
func (sys *System) Homeworld() *Planet {
	if sys.Rules == nil || sys.Rules.HomeworldID == 0 {
		return nil
	}
	p, _ := Find(sys, ID(sys.Rules.HomeworldID)).(*Planet)
	return p
}

// HasHumanHomeworld reports whether the system is home to human starfarers
func (sys *System) HasHumanHomeworld() bool {
	if sys.Rules == nil || !sys.Rules.Starfarers {
		return false
	}
	home := sys.Homeworld()
	return home != nil && home.Inhabitants != nil && home.Inhabitants.Species == rules.SpeciesHuman
}

func (sys *System) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(sys)

	sys.Reference = rules.Ref(rules.BookStarsOfInequity, 10, "System Creation")
	sys.Star = starTable.Roll(r)
	if sys.Star == StarBinary {
		sys.Companions = []StarClass{companionTable.Roll(r), companionTable.Roll(r)}
	}
	sys.ZoneStrengths = sys.rollZoneStrengths(r)

	sys.NamingStyle = NamingProcedural
	if r.Chance(evocativeSystemChance) {
		sys.NamingStyle = NamingEvocative
	}

	sys.rollFeatures(r, cr)

	for _, kind := range ZoneKinds() {
		z := s.spawn(sys, KindZone).(*Zone)
		z.Zone = kind
		if err := z.populate(s); err != nil {
			return fmt.Errorf("failed to generate %s: %w", kind, err)
		}
	}

	if err := sys.applyFeatureEffects(s, cr); err != nil {
		return err
	}
	for _, z := range sys.Zones() {
		z.RecountHazards()
	}
	return nil
}

func (sys *System) rollZoneStrengths(r *dice.Roller) map[ZoneKind]ZoneStrength {
	out := make(map[ZoneKind]ZoneStrength, 3)
	switch sys.Star {
	case StarAnomalous:
		for _, kind := range ZoneKinds() {
			out[kind] = anomalousStrengthTable.Roll(r)
		}
	case StarBinary:
		for _, kind := range ZoneKinds() {
			strongest := StrengthWeak
			for _, star := range sys.Companions {
				s := influenceOf(star, kind)
				if s.rank() > strongest.rank() {
					strongest = s
				}
			}
			out[kind] = strongest
		}
	default:
		for _, kind := range ZoneKinds() {
			out[kind] = influenceOf(sys.Star, kind)
		}
	}
	return out
}

func influenceOf(star StarClass, kind ZoneKind) ZoneStrength {
	if s, ok := starInfluence[star][kind]; ok {
		return s
	}
	return StrengthNormal
}

func (sys *System) rollFeatures(r *dice.Roller, cr *rules.CreationRules) {
	first := featureTable.Roll(r)
	sys.addFeature(r, cr, first)
	if r.Chance(secondFeatureChance) {
		second := featureTable.Roll(r)
		for second == first {
			second = featureTable.Roll(r)
		}
		sys.addFeature(r, cr, second)
	}
}

// addFeature records f and sets the creation rule flags it implies
func (sys *System) addFeature(r *dice.Roller, cr *rules.CreationRules, f SystemFeature) {
	sys.Features = append(sys.Features, f)
	switch f {
	case FeatureBountiful:
		cr.BountifulAsteroids = true
		cr.BountifulResources = true
	case FeatureGravityTides:
		cr.GravityTides = true
	case FeatureHaven:
		cr.Haven = true
	case FeatureIllOmened:
		cr.IllOmened = true
		for _, effect := range []IllOmenedEffect{OmenDreadStars, OmenHauntingVisions, OmenDoomedWorld, OmenWarpTouched} {
			if !r.Chance(illOmenedEffectChance) {
				continue
			}
			sys.IllOmenedEffects = append(sys.IllOmenedEffects, effect)
			switch effect {
			case OmenDreadStars:
				cr.DreadStars = true
			case OmenHauntingVisions:
				cr.HauntingVisions = true
			case OmenDoomedWorld:
				cr.DoomedWorld = true
			case OmenWarpTouched:
				cr.WarpTouched = true
			}
		}
	case FeaturePirateDen:
		cr.PirateDen = true
	case FeatureRuinedEmpire:
		cr.RuinedEmpire = true
		cr.IncreasedArcheotech = true
		cr.IncreasedXenosRuins = true
	case FeatureStarfarers:
		cr.Starfarers = true
		cr.StarfarerSpecies = starfarerSpeciesTable.Roll(r)
	case FeatureStellarAnomaly:
		cr.StellarAnomaly = true
	case FeatureWarpStasis:
		cr.WarpStasis = true
	case FeatureWarpTurbulence:
		cr.WarpTurbulence = true
	}
}

// applyFeatureEffects adds the content that features place after the zones
// are generated
func (sys *System) applyFeatureEffects(s *Session, cr *rules.CreationRules) error {
	r := s.Dice

	if cr.BountifulAsteroids {
		zone := sys.Zone(dice.Pick(r, []ZoneKind{ZonePrimaryBiosphere, ZoneOuterReaches}))
		kind := dice.Pick(r, []Kind{KindAsteroidBelt, KindAsteroidCluster})
		if _, err := s.generateChild(zone, kind); err != nil {
			return err
		}
	}

	if cr.GravityTides {
		for i, n := 0, r.D(2); i < n; i++ {
			if _, err := s.generateChild(dice.Pick(r, sys.Zones()), KindGravityRiptide); err != nil {
				return err
			}
		}
	}

	if cr.StellarAnomaly {
		if _, err := s.generateChild(sys.Zone(ZoneInnerCauldron), KindRadiationBursts); err != nil {
			return err
		}
	}

	if cr.PirateDen {
		for i, n := 0, r.D(5)+3; i < n; i++ {
			ship := s.spawn(dice.Pick(r, sys.Zones()), KindShip).(*Ship)
			ship.Role = pirateRole
			if err := ship.populate(s); err != nil {
				return err
			}
		}
	}

	if cr.Starfarers {
		if err := sys.establishHomeworld(s, cr); err != nil {
			return err
		}
	}

	if cr.DoomedWorld {
		if planets := sys.Planets(); len(planets) > 0 {
			doomed := dice.Pick(r, planets)
			cr.DoomedWorldID = int64(doomed.ID)
			doomed.Cursed = true
		}
	}
	return nil
}

// establishHomeworld picks the starfarers' home, preferring worlds with
// liquid water, and creates one in the Primary Biosphere when the system has
// no planets at all
func (sys *System) establishHomeworld(s *Session, cr *rules.CreationRules) error {
	var candidates []*Planet
	for _, p := range sys.Planets() {
		if p.Habitability.HasLiquidWater() {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = sys.Planets()
	}
	if len(candidates) == 0 {
		p, err := s.generateChild(sys.Zone(ZonePrimaryBiosphere), KindPlanet)
		if err != nil {
			return err
		}
		candidates = []*Planet{p.(*Planet)}
	}

	home := dice.Pick(s.Dice, candidates)
	cr.HomeworldID = int64(home.ID)
	home.applyHomeworld(cr)
	return nil
}

func (sys *System) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(2, sys.Name)

	star := string(sys.Star)
	if len(sys.Companions) > 0 {
		star = fmt.Sprintf("%s (%s)", sys.Star, joinStrings(sys.Companions))
	}
	b.Field("Star", star)

	var zones []string
	for _, kind := range ZoneKinds() {
		zones = append(zones, fmt.Sprintf("%s: %s", kind, sys.StrengthOf(kind)))
	}
	b.Section("Zones", zones)

	if len(sys.Features) > 0 {
		b.Heading(3, "System Features")
		var items []string
		for _, f := range sys.Features {
			items = append(items, fmt.Sprintf("%s: %s", f, featureRules[f]))
		}
		b.List(items)
	}
	if len(sys.IllOmenedEffects) > 0 {
		b.Field("Ill Omens", joinStrings(sys.IllOmenedEffects))
	}

	if cr := sys.Rules; cr != nil {
		b.FieldIf(cr.HasDominantSpecies(), "Dominant Ruined Species", cr.DominantRuinedSpecies)
		if cr.Starfarers {
			b.Field("Starfarers", cr.StarfarerSpecies)
			if home := sys.Homeworld(); home != nil {
				b.Field("Homeworld", home.Name)
			}
		}
	}
	finish(&sys.BaseEntity, b, settings)
}
