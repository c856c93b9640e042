// Package territory generates the surface environment of a world: its
// territories, their terrain-specific traits, landmarks and the unique
// compounds linked to them.
package territory

import (
	"fmt"
	"strings"

	"starforge/internal/dice"
	"starforge/internal/resource"
)

// Territory is a region of a planet's surface
type Territory struct {
	Terrain      Terrain                    `json:"terrain"`
	ExoticPrefix string                     `json:"exoticPrefix,omitempty"`
	Traits       map[Trait]int              `json:"traits,omitempty"`
	Landmarks    []Landmark                 `json:"landmarks,omitempty"`
	Compounds    []resource.OrganicCompound `json:"uniqueCompounds,omitempty"`
}

func (t Territory) IsExotic() bool {
	return t.ExoticPrefix != ""
}

// Count returns how many times trait was rolled
func (t Territory) Count(trait Trait) int {
	return t.Traits[trait]
}

// Name is the display name, e.g. "Crystalline Forest"
func (t Territory) Name() string {
	if t.IsExotic() {
		return t.ExoticPrefix + " " + string(t.Terrain)
	}
	return string(t.Terrain)
}

// Summary renders the territory on one line
func (t Territory) Summary() string {
	var parts []string
	for _, trait := range Traits() {
		switch n := t.Traits[trait]; {
		case n == 1:
			parts = append(parts, string(trait))
		case n > 1:
			parts = append(parts, fmt.Sprintf("%s (x%d)", trait, n))
		}
	}
	s := t.Name()
	if len(parts) > 0 {
		s += ": " + strings.Join(parts, ", ")
	}
	if len(t.Landmarks) > 0 {
		names := make([]string, len(t.Landmarks))
		for i, l := range t.Landmarks {
			names[i] = string(l)
		}
		s += "; landmarks: " + strings.Join(names, ", ")
	}
	if len(t.Compounds) > 0 {
		s += "; compounds: " + strings.Join(resource.Lines(t.Compounds), ", ")
	}
	return s
}

// Environment is the set of territories on a world
type Environment struct {
	Territories []Territory `json:"territories,omitempty"`
}

// NotableSpecies counts Notable Species traits across every territory
func (e Environment) NotableSpecies() int {
	n := 0
	for _, t := range e.Territories {
		n += t.Count(NotableSpecies)
	}
	return n
}

// Compounds lists every unique compound across territories
func (e Environment) Compounds() []resource.OrganicCompound {
	var out []resource.OrganicCompound
	for _, t := range e.Territories {
		out = append(out, t.Compounds...)
	}
	return out
}

// marginalTerritoryChance is the percentage chance a world without an
// ecosystem has any territories at all
var marginalTerritoryChance = map[Habitability]int{
	Inhospitable: 20,
	TrappedWater: 30,
	LiquidWater:  50,
}

// Generate rolls a fresh environment for the given conditions
func Generate(r *dice.Roller, c Conditions) Environment {
	var env Environment
	for i, n := 0, territoryCount(r, c.Habitability); i < n; i++ {
		env.Territories = append(env.Territories, generateTerritory(r, c))
	}
	return env
}

// territoryCount: ecosystem worlds always have 1-8 territories, other worlds
// pass a gate and then have 0-2.
func territoryCount(r *dice.Roller, h Habitability) int {
	switch h {
	case LimitedEcosystem:
		return r.D(5)
	case Verdant:
		return r.D(5) + 3
	}
	if !r.Chance(marginalTerritoryChance[h]) {
		return 0
	}
	return r.D(3) - 1
}

func generateTerritory(r *dice.Roller, c Conditions) Territory {
	var roll terrainRoll
	traitRolls := 0
	if c.Habitability.IsEcosystem() {
		roll = ecosystemTerrainTable.Roll(r)
		traitRolls = r.D(3)
	} else {
		roll = harshTerrainTable.Roll(r)
		traitRolls = r.D(2)
	}

	t := Territory{
		Terrain: roll.Terrain,
		Traits:  make(map[Trait]int),
	}
	if roll.Exotic {
		t.ExoticPrefix = dice.Pick(r, exoticPrefixes[roll.Terrain])
	}

	table := traitTable(t.Terrain, t.IsExotic())
	for i := 0; i < traitRolls; i++ {
		t.Traits[table.Roll(r)]++
	}

	for i := 0; i < t.Count(UniqueCompound); i++ {
		t.Compounds = append(t.Compounds, resource.RollOrganicCompound(r))
	}

	landmarks := landmarkTable(c)
	for i, n := 0, max(r.D(5)-3+c.LandmarkModifier, 0); i < n; i++ {
		t.Landmarks = append(t.Landmarks, landmarks.Roll(r))
	}
	return t
}
