package entity

import (
	apperrors "starforge/internal/shared/errors"
)

// Kind discriminates entity implementations
type Kind string

const (
	KindSystem            Kind = "System"
	KindZone              Kind = "Zone"
	KindPlanet            Kind = "Planet"
	KindGasGiant          Kind = "GasGiant"
	KindAsteroidBelt      Kind = "AsteroidBelt"
	KindAsteroidCluster   Kind = "AsteroidCluster"
	KindDerelictStation   Kind = "DerelictStation"
	KindStarshipGraveyard Kind = "StarshipGraveyard"
	KindDustCloud         Kind = "DustCloud"
	KindGravityRiptide    Kind = "GravityRiptide"
	KindRadiationBursts   Kind = "RadiationBursts"
	KindSolarFlares       Kind = "SolarFlares"
	KindOrbitalFeatures   Kind = "OrbitalFeatures"
	KindLesserMoon        Kind = "LesserMoon"
	KindAsteroid          Kind = "Asteroid"
	KindXenos             Kind = "Xenos"
	KindPrimitiveXenos    Kind = "PrimitiveXenos"
	KindShip              Kind = "Ship"
	KindTreasure          Kind = "Treasure"
)

var placeholders = map[Kind]string{
	KindSystem:            "System",
	KindZone:              "Zone",
	KindPlanet:            "Planet",
	KindGasGiant:          "Gas Giant",
	KindAsteroidBelt:      "Asteroid Belt",
	KindAsteroidCluster:   "Asteroid Cluster",
	KindDerelictStation:   "Derelict Station",
	KindStarshipGraveyard: "Starship Graveyard",
	KindDustCloud:         "Dust Cloud",
	KindGravityRiptide:    "Gravity Riptide",
	KindRadiationBursts:   "Radiation Bursts",
	KindSolarFlares:       "Solar Flares",
	KindOrbitalFeatures:   "Orbital Features",
	KindLesserMoon:        "Lesser Moon",
	KindAsteroid:          "Large Asteroid",
	KindXenos:             "Xenos",
	KindPrimitiveXenos:    "Primitive Xenos",
	KindShip:              "Ship",
	KindTreasure:          "Treasure",
}

// Placeholder is the generic name an entity carries before naming
func (k Kind) Placeholder() string {
	if name, ok := placeholders[k]; ok {
		return name
	}
	return string(k)
}

// Kinds lists every entity kind
func Kinds() []Kind {
	return []Kind{
		KindSystem, KindZone, KindPlanet, KindGasGiant,
		KindAsteroidBelt, KindAsteroidCluster, KindDerelictStation, KindStarshipGraveyard,
		KindDustCloud, KindGravityRiptide, KindRadiationBursts, KindSolarFlares,
		KindOrbitalFeatures, KindLesserMoon, KindAsteroid,
		KindXenos, KindPrimitiveXenos, KindShip, KindTreasure,
	}
}

// RootKinds are the kinds a workspace may hold at the top level
func RootKinds() []Kind {
	return []Kind{KindSystem, KindPlanet, KindGasGiant, KindXenos, KindPrimitiveXenos, KindShip, KindTreasure}
}

var constructors = map[Kind]func() Entity{
	KindSystem:            func() Entity { return NewSystem() },
	KindZone:              func() Entity { return NewZone(ZonePrimaryBiosphere) },
	KindPlanet:            func() Entity { return NewPlanet() },
	KindGasGiant:          func() Entity { return NewGasGiant() },
	KindAsteroidBelt:      func() Entity { return newMineralBody(KindAsteroidBelt) },
	KindAsteroidCluster:   func() Entity { return newMineralBody(KindAsteroidCluster) },
	KindLesserMoon:        func() Entity { return newMineralBody(KindLesserMoon) },
	KindAsteroid:          func() Entity { return newMineralBody(KindAsteroid) },
	KindDerelictStation:   func() Entity { return NewDerelictStation() },
	KindStarshipGraveyard: func() Entity { return NewStarshipGraveyard() },
	KindDustCloud:         func() Entity { return newHazard(KindDustCloud) },
	KindGravityRiptide:    func() Entity { return newHazard(KindGravityRiptide) },
	KindRadiationBursts:   func() Entity { return newHazard(KindRadiationBursts) },
	KindSolarFlares:       func() Entity { return newHazard(KindSolarFlares) },
	KindOrbitalFeatures:   func() Entity { return NewOrbitalFeatures() },
	KindXenos:             func() Entity { return NewXenos() },
	KindPrimitiveXenos:    func() Entity { return NewPrimitiveXenos() },
	KindShip:              func() Entity { return NewShip() },
	KindTreasure:          func() Entity { return NewTreasure() },
}

// New constructs an empty entity of the given kind with no identity
func New(kind Kind) (Entity, error) {
	if kind == "" {
		return nil, apperrors.MalformedInputf("missing entity type")
	}
	ctor, ok := constructors[kind]
	if !ok {
		return nil, apperrors.MalformedInputf("unknown entity type %q", kind)
	}
	return ctor(), nil
}

func mustNew(kind Kind) Entity {
	e, err := New(kind)
	if err != nil {
		panic(err)
	}
	return e
}

var bodyKinds = []Kind{
	KindPlanet, KindGasGiant, KindAsteroidBelt, KindAsteroidCluster,
	KindDerelictStation, KindStarshipGraveyard,
	KindDustCloud, KindGravityRiptide, KindRadiationBursts, KindSolarFlares,
	KindShip,
}

var containment = map[Kind][]Kind{
	KindSystem:          {KindZone},
	KindZone:            bodyKinds,
	KindPlanet:          {KindOrbitalFeatures, KindXenos, KindPrimitiveXenos},
	KindGasGiant:        {KindOrbitalFeatures, KindXenos, KindPrimitiveXenos},
	KindOrbitalFeatures: {KindPlanet, KindLesserMoon, KindAsteroid},
}

// CanContain reports whether an entity of kind parent may own a child of
// kind child
func CanContain(parent, child Kind) bool {
	for _, k := range containment[parent] {
		if k == child {
			return true
		}
	}
	return false
}

// CanBeRoot reports whether kind may sit at the top of a workspace
func CanBeRoot(kind Kind) bool {
	for _, k := range RootKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// IsHazard reports whether kind is one of the zone hazards that a Zone counts
func (k Kind) IsHazard() bool {
	switch k {
	case KindDustCloud, KindGravityRiptide, KindRadiationBursts, KindSolarFlares:
		return true
	}
	return false
}
