package territory

// Habitability classifies how hospitable a world is to life
type Habitability string

const (
	Inhospitable     Habitability = "Inhospitable"
	TrappedWater     Habitability = "Trapped Water"
	LiquidWater      Habitability = "Liquid Water"
	LimitedEcosystem Habitability = "Limited Ecosystem"
	Verdant          Habitability = "Verdant"
)

// IsEcosystem reports whether the world supports a native ecosystem
func (h Habitability) IsEcosystem() bool {
	return h == LimitedEcosystem || h == Verdant
}

// HasLiquidWater reports whether open water exists on the surface
func (h Habitability) HasLiquidWater() bool {
	return h == LiquidWater || h.IsEcosystem()
}

// Climate is the prevailing surface temperature band
type Climate string

const (
	Burning   Climate = "Burning World"
	Hot       Climate = "Hot World"
	Temperate Climate = "Temperate World"
	Cold      Climate = "Cold World"
	Ice       Climate = "Ice World"
)

// Climates lists every climate from hottest to coldest
func Climates() []Climate {
	return []Climate{Burning, Hot, Temperate, Cold, Ice}
}

// Habitabilities lists every class from harshest to most fertile
func Habitabilities() []Habitability {
	return []Habitability{Inhospitable, TrappedWater, LiquidWater, LimitedEcosystem, Verdant}
}

func (c Climate) IsFrozen() bool {
	return c == Cold || c == Ice
}

func (c Climate) IsScorching() bool {
	return c == Burning || c == Hot
}

// Conditions are the planet-level inputs to environment generation
type Conditions struct {
	Habitability Habitability
	Climate      Climate
	// LandmarkModifier shifts the landmark count roll; larger bodies have more
	LandmarkModifier int
}
