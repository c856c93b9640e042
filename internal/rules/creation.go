package rules

// RuinedSpecies is the builder race behind xenos ruins and derelicts
type RuinedSpecies string

const (
	RuinedSpeciesNone         RuinedSpecies = ""
	RuinedSpeciesUndiscovered RuinedSpecies = "Undiscovered Species"
	RuinedSpeciesEldar        RuinedSpecies = "Eldar"
	RuinedSpeciesEgarian      RuinedSpecies = "Egarian"
	RuinedSpeciesYuVath       RuinedSpecies = "Yu'vath"
	RuinedSpeciesOrk          RuinedSpecies = "Ork"
)

// Species is an inhabiting people
type Species string

const (
	SpeciesHuman Species = "Human"
	SpeciesOrk   Species = "Ork"
	SpeciesEldar Species = "Eldar"
	SpeciesKroot Species = "Kroot"
	SpeciesXenos Species = "Other Xenos"
)

// CreationRules holds the system-wide flags that bias every roll made while
// generating a System's descendants. A single record is shared by pointer
// across the whole tree; descendants look it up from their System on every
// generation pass.
type CreationRules struct {
	BountifulAsteroids bool `json:"bountifulAsteroids"`
	BountifulResources bool `json:"bountifulResources"`

	GravityTides bool `json:"gravityTides"`
	Haven        bool `json:"haven"`

	IllOmened       bool  `json:"illOmened"`
	DreadStars      bool  `json:"dreadStars"`
	HauntingVisions bool  `json:"hauntingVisions"`
	WarpTouched     bool  `json:"warpTouched"`
	DoomedWorld     bool  `json:"doomedWorld"`
	DoomedWorldID   int64 `json:"doomedWorldId,omitempty"`

	PirateDen bool `json:"pirateDen"`

	RuinedEmpire          bool          `json:"ruinedEmpire"`
	IncreasedArcheotech   bool          `json:"increasedArcheotech"`
	IncreasedXenosRuins   bool          `json:"increasedXenosRuins"`
	DominantRuinedSpecies RuinedSpecies `json:"dominantRuinedSpecies,omitempty"`

	Starfarers       bool    `json:"starfarers"`
	StarfarerSpecies Species `json:"starfarerSpecies,omitempty"`
	HomeworldID      int64   `json:"homeworldId,omitempty"`

	StellarAnomaly bool `json:"stellarAnomaly"`
	WarpStasis     bool `json:"warpStasis"`
	WarpTurbulence bool `json:"warpTurbulence"`
}

// NewCreationRules returns a record with no flags set
func NewCreationRules() *CreationRules {
	return &CreationRules{}
}

// Clone returns an independent snapshot
func (c *CreationRules) Clone() *CreationRules {
	if c == nil {
		return NewCreationRules()
	}
	out := *c
	return &out
}

// HasDominantSpecies reports whether a ruined species theme has been adopted
func (c *CreationRules) HasDominantSpecies() bool {
	return c.DominantRuinedSpecies != RuinedSpeciesNone
}
