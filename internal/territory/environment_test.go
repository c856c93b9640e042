package territory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/dice"
)

func TestTables_BandCoverage(t *testing.T) {
	for _, table := range Tables() {
		assert.NoError(t, table.Validate(), table.Name())
	}
}

func TestTraitTables_OnlyWeightedTraits(t *testing.T) {
	for _, terrain := range Terrains() {
		for _, exotic := range []bool{false, true} {
			table := traitTable(terrain, exotic)
			for _, trait := range table.Values() {
				assert.Positive(t, TraitWeight(terrain, exotic, trait), "%s exotic=%v %s", terrain, exotic, trait)
			}
		}
	}

	assert.Zero(t, TraitWeight(Wasteland, false, Fertile))
	assert.Zero(t, TraitWeight(Forest, false, ExoticNature))
	assert.Positive(t, TraitWeight(Forest, true, ExoticNature))
	for _, terrain := range []Terrain{Mountain, Plains, Swamp, Wasteland} {
		assert.Zero(t, TraitWeight(terrain, true, ExoticNature), terrain)
	}
}

func TestGenerate_TerritoryCounts(t *testing.T) {
	cases := []struct {
		habitability Habitability
		min, max     int
	}{
		{Inhospitable, 0, 2},
		{TrappedWater, 0, 2},
		{LiquidWater, 0, 2},
		{LimitedEcosystem, 1, 5},
		{Verdant, 4, 8},
	}
	for _, tc := range cases {
		t.Run(string(tc.habitability), func(t *testing.T) {
			r := dice.New(13)
			for i := 0; i < 500; i++ {
				env := Generate(r, Conditions{Habitability: tc.habitability, Climate: Temperate})
				n := len(env.Territories)
				require.GreaterOrEqual(t, n, tc.min)
				require.LessOrEqual(t, n, tc.max)
			}
		})
	}
}

func TestGenerate_TraitLegalityAndCompounds(t *testing.T) {
	r := dice.New(21)
	for i := 0; i < 1000; i++ {
		h := dice.Pick(r, Habitabilities())
		c := dice.Pick(r, Climates())
		env := Generate(r, Conditions{Habitability: h, Climate: c, LandmarkModifier: 1})
		for _, terr := range env.Territories {
			for trait, n := range terr.Traits {
				require.Positive(t, n)
				require.Positive(t, TraitWeight(terr.Terrain, terr.IsExotic(), trait),
					"%s on %s", trait, terr.Name())
			}
			require.Len(t, terr.Compounds, terr.Count(UniqueCompound))
			if terr.Count(ExoticNature) > 0 {
				require.Equal(t, Forest, terr.Terrain)
				require.True(t, terr.IsExotic())
			}
			if !h.IsEcosystem() && terr.IsExotic() {
				require.Contains(t, exoticPrefixes[terr.Terrain], terr.ExoticPrefix)
			}
		}
	}
}

func TestLandmarks_VolcanoesRareOnFrozenWorlds(t *testing.T) {
	volcanoShare := func(c Conditions) float64 {
		table := landmarkTable(c)
		weight := 0
		for roll := 1; roll <= table.Range(); roll++ {
			if table.Lookup(roll) == Volcano {
				weight++
			}
		}
		return float64(weight) / float64(table.Range())
	}

	living := volcanoShare(Conditions{Habitability: Verdant, Climate: Temperate})
	frozen := volcanoShare(Conditions{Habitability: Verdant, Climate: Ice})
	cold := volcanoShare(Conditions{Habitability: LimitedEcosystem, Climate: Cold})

	assert.Greater(t, living, frozen*5)
	assert.Greater(t, living, cold*5)
}

func TestLandmarks_NoWaterFeaturesWithoutWater(t *testing.T) {
	table := landmarkTable(Conditions{Habitability: TrappedWater, Climate: Temperate})
	for _, l := range []Landmark{InlandSea, Reef, Whirlpool} {
		assert.False(t, dice.Contains(table, l), l)
	}
}

func TestTerritory_Summary(t *testing.T) {
	terr := Territory{
		Terrain:      Forest,
		ExoticPrefix: "Fungal",
		Traits:       map[Trait]int{ExoticNature: 1, Fertile: 2},
		Landmarks:    []Landmark{CaveNetwork},
	}
	assert.Equal(t, "Fungal Forest: Exotic Nature, Fertile (x2); landmarks: Cave Network", terr.Summary())
}
