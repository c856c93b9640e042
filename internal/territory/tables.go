package territory

import (
	"fmt"

	"starforge/internal/dice"
)

// Terrain is the dominant landscape of a territory
type Terrain string

const (
	Forest    Terrain = "Forest"
	Mountain  Terrain = "Mountain"
	Plains    Terrain = "Plains"
	Swamp     Terrain = "Swamp"
	Wasteland Terrain = "Wasteland"
)

// Terrains lists every terrain kind
func Terrains() []Terrain {
	return []Terrain{Forest, Mountain, Plains, Swamp, Wasteland}
}

// Trait is a territory trait; traits may be rolled more than once and stack
type Trait string

const (
	Boundary           Trait = "Boundary"
	BrokenGround       Trait = "Broken Ground"
	Desolate           Trait = "Desolate"
	ExoticNature       Trait = "Exotic Nature"
	Expansive          Trait = "Expansive"
	ExtremeTemperature Trait = "Extreme Temperature"
	Fertile            Trait = "Fertile"
	Foothills          Trait = "Foothills"
	NotableSpecies     Trait = "Notable Species"
	Ruined             Trait = "Ruined"
	Sheer              Trait = "Sheer"
	Stagnant           Trait = "Stagnant"
	UniqueCompound     Trait = "Unique Compound"
	UnusualLocation    Trait = "Unusual Location"
	VirginTrees        Trait = "Virgin Trees"
	Virulent           Trait = "Virulent"
)

// Traits lists every trait in display order
func Traits() []Trait {
	return []Trait{
		Boundary, BrokenGround, Desolate, ExoticNature, Expansive, ExtremeTemperature,
		Fertile, Foothills, NotableSpecies, Ruined, Sheer, Stagnant, UniqueCompound,
		UnusualLocation, VirginTrees, Virulent,
	}
}

// traitWeights is keyed by terrain. A trait missing from a terrain's row can
// never appear on that terrain.
var traitWeights = map[Terrain][]dice.Weight[Trait]{
	Forest: {
		dice.W(Boundary, 1),
		dice.W(Expansive, 2),
		dice.W(ExtremeTemperature, 1),
		dice.W(Fertile, 2),
		dice.W(NotableSpecies, 2),
		dice.W(Stagnant, 1),
		dice.W(UniqueCompound, 2),
		dice.W(UnusualLocation, 1),
		dice.W(VirginTrees, 2),
	},
	Mountain: {
		dice.W(Boundary, 2),
		dice.W(Expansive, 1),
		dice.W(ExtremeTemperature, 2),
		dice.W(Foothills, 2),
		dice.W(NotableSpecies, 1),
		dice.W(Sheer, 3),
		dice.W(UniqueCompound, 1),
		dice.W(UnusualLocation, 2),
	},
	Plains: {
		dice.W(BrokenGround, 2),
		dice.W(Expansive, 3),
		dice.W(ExtremeTemperature, 1),
		dice.W(Fertile, 3),
		dice.W(NotableSpecies, 2),
		dice.W(UniqueCompound, 1),
		dice.W(UnusualLocation, 1),
	},
	Swamp: {
		dice.W(Expansive, 1),
		dice.W(ExtremeTemperature, 1),
		dice.W(NotableSpecies, 2),
		dice.W(Stagnant, 3),
		dice.W(UniqueCompound, 2),
		dice.W(UnusualLocation, 1),
		dice.W(Virulent, 2),
	},
	Wasteland: {
		dice.W(Desolate, 3),
		dice.W(Expansive, 2),
		dice.W(ExtremeTemperature, 3),
		dice.W(NotableSpecies, 1),
		dice.W(Ruined, 2),
		dice.W(UnusualLocation, 2),
	},
}

// exoticTraitWeights are added only for territories carrying an exotic prefix
var exoticTraitWeights = map[Terrain][]dice.Weight[Trait]{
	Forest: {dice.W(ExoticNature, 3)},
}

// TraitWeight returns the table weight of trait on the given terrain
func TraitWeight(terrain Terrain, exotic bool, trait Trait) int {
	weight := 0
	for _, w := range traitWeights[terrain] {
		if w.Value == trait {
			weight += w.Weight
		}
	}
	if exotic {
		for _, w := range exoticTraitWeights[terrain] {
			if w.Value == trait {
				weight += w.Weight
			}
		}
	}
	return weight
}

type traitKey struct {
	terrain Terrain
	exotic  bool
}

var traitTables = buildTraitTables()

func buildTraitTables() map[traitKey]*dice.Table[Trait] {
	tables := make(map[traitKey]*dice.Table[Trait])
	for _, terrain := range Terrains() {
		for _, exotic := range []bool{false, true} {
			weights := append([]dice.Weight[Trait]{}, traitWeights[terrain]...)
			if exotic {
				weights = append(weights, exoticTraitWeights[terrain]...)
			}
			name := fmt.Sprintf("%s Traits", terrain)
			if exotic {
				name = "Exotic " + name
			}
			tables[traitKey{terrain, exotic}] = dice.Weighted(name, weights...)
		}
	}
	return tables
}

func traitTable(terrain Terrain, exotic bool) *dice.Table[Trait] {
	return traitTables[traitKey{terrain, exotic}]
}

type terrainRoll struct {
	Terrain Terrain
	Exotic  bool
}

var ecosystemTerrainTable = dice.NewTable("Ecosystem Territory", 10,
	dice.B(3, terrainRoll{Terrain: Forest}),
	dice.B(5, terrainRoll{Terrain: Mountain}),
	dice.B(7, terrainRoll{Terrain: Plains}),
	dice.B(9, terrainRoll{Terrain: Swamp}),
	dice.B(10, terrainRoll{Terrain: Wasteland}),
)

// Barren worlds lean towards wasteland and mountain, and what forests or
// plains exist are exotic.
var harshTerrainTable = dice.NewTable("Harsh Territory", 10,
	dice.B(1, terrainRoll{Terrain: Forest, Exotic: true}),
	dice.B(4, terrainRoll{Terrain: Mountain}),
	dice.B(5, terrainRoll{Terrain: Plains, Exotic: true}),
	dice.B(6, terrainRoll{Terrain: Swamp, Exotic: true}),
	dice.B(10, terrainRoll{Terrain: Wasteland}),
)

var exoticPrefixes = map[Terrain][]string{
	Forest: {"Crystalline", "Fungal", "Petrified"},
	Plains: {"Glass", "Salt", "Ash"},
	Swamp:  {"Tar", "Acid"},
}

// Landmark is a notable geographic feature within a territory
type Landmark string

const (
	Canyon         Landmark = "Canyon"
	CaveNetwork    Landmark = "Cave Network"
	Crater         Landmark = "Crater"
	Glacier        Landmark = "Glacier"
	InlandSea      Landmark = "Inland Sea"
	PerpetualStorm Landmark = "Perpetual Storm"
	Reef           Landmark = "Reef"
	Volcano        Landmark = "Volcano"
	Whirlpool      Landmark = "Whirlpool"
)

// landmarkTable weights landmarks by world conditions. Volcanoes are common
// on living worlds and all but absent on frozen ones; water landmarks need
// liquid water.
func landmarkTable(c Conditions) *dice.Table[Landmark] {
	canyon, caves, crater := 12, 14, 12
	glacier, inlandSea, storm := 6, 10, 8
	reef, volcano, whirlpool := 6, 20, 6

	switch {
	case c.Climate.IsFrozen():
		volcano = 2
		glacier = 20
		reef = 0
		whirlpool = 2
	case c.Climate.IsScorching():
		volcano = 30
		glacier = 0
		inlandSea = 4
		reef = 2
	}

	if !c.Habitability.HasLiquidWater() {
		inlandSea, reef, whirlpool = 0, 0, 0
		volcano = volcano / 2
		crater += 8
	}

	return dice.Weighted(fmt.Sprintf("Landmarks (%s, %s)", c.Climate, c.Habitability),
		dice.W(Canyon, canyon),
		dice.W(CaveNetwork, caves),
		dice.W(Crater, crater),
		dice.W(Glacier, glacier),
		dice.W(InlandSea, inlandSea),
		dice.W(PerpetualStorm, storm),
		dice.W(Reef, reef),
		dice.W(Volcano, volcano),
		dice.W(Whirlpool, whirlpool),
	)
}

// Tables lists every roll table for coverage checks, including each
// terrain-keyed trait table and each landmark table variant
func Tables() []dice.Checker {
	out := []dice.Checker{ecosystemTerrainTable, harshTerrainTable}
	for _, terrain := range Terrains() {
		out = append(out, traitTable(terrain, false), traitTable(terrain, true))
	}
	for _, climate := range Climates() {
		for _, h := range Habitabilities() {
			out = append(out, landmarkTable(Conditions{Climate: climate, Habitability: h}))
		}
	}
	return out
}
