package entity

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
)

// ZoneKind is one of a system's three orbital zones
type ZoneKind string

const (
	ZoneInnerCauldron    ZoneKind = "Inner Cauldron"
	ZonePrimaryBiosphere ZoneKind = "Primary Biosphere"
	ZoneOuterReaches     ZoneKind = "Outer Reaches"
)

// ZoneKinds lists the zones from the star outwards
func ZoneKinds() []ZoneKind {
	return []ZoneKind{ZoneInnerCauldron, ZonePrimaryBiosphere, ZoneOuterReaches}
}

// zoneSizeTable maps the modified size roll to a number of elements
var zoneSizeTable = dice.NewTable("Zone Size", 13,
	dice.B(2, 1),
	dice.B(5, 2),
	dice.B(8, 3),
	dice.B(10, 4),
	dice.B(12, 5),
	dice.B(13, 6),
)

var zoneElementTables = map[ZoneKind]*dice.Table[Kind]{
	ZoneInnerCauldron: dice.NewTable("Inner Cauldron Elements", 100,
		dice.B(10, KindAsteroidCluster),
		dice.B(25, KindDustCloud),
		dice.B(30, KindGasGiant),
		dice.B(40, KindGravityRiptide),
		dice.B(70, KindPlanet),
		dice.B(85, KindRadiationBursts),
		dice.B(100, KindSolarFlares),
	),
	ZonePrimaryBiosphere: dice.NewTable("Primary Biosphere Elements", 100,
		dice.B(10, KindAsteroidBelt),
		dice.B(20, KindAsteroidCluster),
		dice.B(25, KindDerelictStation),
		dice.B(35, KindDustCloud),
		dice.B(40, KindGravityRiptide),
		dice.B(90, KindPlanet),
		dice.B(100, KindStarshipGraveyard),
	),
	ZoneOuterReaches: dice.NewTable("Outer Reaches Elements", 100,
		dice.B(15, KindAsteroidBelt),
		dice.B(25, KindAsteroidCluster),
		dice.B(30, KindDerelictStation),
		dice.B(40, KindDustCloud),
		dice.B(60, KindGasGiant),
		dice.B(70, KindGravityRiptide),
		dice.B(93, KindPlanet),
		dice.B(100, KindStarshipGraveyard),
	),
}

var zonePages = map[ZoneKind]int{
	ZoneInnerCauldron:    13,
	ZonePrimaryBiosphere: 14,
	ZoneOuterReaches:     15,
}

// ZoneState holds a zone's identity and its hazard counts. The counts are
// derived from the zone's children and recomputed whenever they change.
type ZoneState struct {
	Zone            ZoneKind     `json:"zone"`
	Strength        ZoneStrength `json:"strength,omitempty"`
	DustClouds      int          `json:"dustClouds"`
	GravityRiptides int          `json:"gravityRiptides"`
	RadiationBursts int          `json:"radiationBursts"`
	SolarFlares     int          `json:"solarFlares"`
}

// Zone is one orbital region of a System
type Zone struct {
	BaseEntity
	ZoneState
}

func NewZone(kind ZoneKind) *Zone {
	return &Zone{
		BaseEntity: newBase(KindZone),
		ZoneState:  ZoneState{Zone: kind},
	}
}

// Reset keeps the zone's identity, which is set by its System
func (z *Zone) Reset() {
	z.resetBase()
	z.ZoneState = ZoneState{Zone: z.Zone}
}

func (z *Zone) state() any       { return &z.ZoneState }
func (z *Zone) exportState() any { return &z.ZoneState }

// RecountHazards recomputes the hazard counts from the zone's children
func (z *Zone) RecountHazards() {
	z.DustClouds = countKind(z, KindDustCloud)
	z.GravityRiptides = countKind(z, KindGravityRiptide)
	z.RadiationBursts = countKind(z, KindRadiationBursts)
	z.SolarFlares = countKind(z, KindSolarFlares)
}

// HazardCount returns the recorded count for a hazard kind
func (z *Zone) HazardCount(kind Kind) int {
	switch kind {
	case KindDustCloud:
		return z.DustClouds
	case KindGravityRiptide:
		return z.GravityRiptides
	case KindRadiationBursts:
		return z.RadiationBursts
	case KindSolarFlares:
		return z.SolarFlares
	}
	return 0
}

func (z *Zone) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(z)

	z.setGeneratedName(string(z.Zone), NameOriginProcedural)
	z.Reference = rules.Ref(rules.BookStarsOfInequity, zonePages[z.Zone], "System Elements")
	z.Strength = StrengthNormal
	if sys := SystemOf(z); sys != nil {
		z.Strength = sys.StrengthOf(z.Zone)
	}

	n := zoneSizeTable.RollModified(r, 10, z.Strength.sizeModifier())
	if cr.Haven && z.Zone == ZonePrimaryBiosphere {
		n++
	}

	table, ok := zoneElementTables[z.Zone]
	if !ok {
		return fmt.Errorf("no element table for zone %q", z.Zone)
	}
	for i := 0; i < n; i++ {
		if _, err := s.generateChild(z, table.Roll(r)); err != nil {
			return err
		}
	}
	z.RecountHazards()
	return nil
}

func (z *Zone) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(2, z.Name)
	b.Field("Zone", z.Zone)
	b.Field("Star Influence", z.Strength)

	var hazards []string
	for _, h := range []Kind{KindDustCloud, KindGravityRiptide, KindRadiationBursts, KindSolarFlares} {
		if n := z.HazardCount(h); n > 0 {
			hazards = append(hazards, fmt.Sprintf("%s: %d", h.Placeholder(), n))
		}
	}
	b.Section("Hazards", hazards)

	var elements []string
	for _, c := range z.children {
		if !c.Kind().IsHazard() {
			elements = append(elements, c.Base().Name)
		}
	}
	b.Section("Elements", elements)
	finish(&z.BaseEntity, b, settings)
}
