package entity

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

// ShipRace is the people crewing a vessel
type ShipRace string

const (
	RaceImperial ShipRace = "Imperial"
	RaceReaver   ShipRace = "Chaos Reaver"
	RaceOrk      ShipRace = "Ork"
	RaceEldar    ShipRace = "Eldar"
)

// hull is a ship profile. Weapon slots are filled from the race's arsenal.
type hull struct {
	name            string
	class           string
	book            rules.Book
	page            int
	races           []ShipRace
	speed           int
	manoeuvrability int
	detection       int
	armour          int
	integrity       int
	turrets         int
	shields         int
	slots           int
}

var humanRaces = []ShipRace{RaceImperial, RaceReaver}

var hulls = []hull{
	{name: "Jericho-class Pilgrim Vessel", class: "Transport", book: rules.BookCoreRulebook, page: 192, races: humanRaces,
		speed: 5, manoeuvrability: -10, detection: 0, armour: 12, integrity: 50, turrets: 1, shields: 1, slots: 2},
	{name: "Vagabond-class Merchant Trader", class: "Transport", book: rules.BookCoreRulebook, page: 192, races: humanRaces,
		speed: 5, manoeuvrability: -5, detection: 10, armour: 13, integrity: 40, turrets: 1, shields: 1, slots: 2},
	{name: "Hazeroth-class Privateer", class: "Raider", book: rules.BookCoreRulebook, page: 193, races: humanRaces,
		speed: 10, manoeuvrability: 20, detection: 10, armour: 14, integrity: 35, turrets: 1, shields: 1, slots: 2},
	{name: "Havoc-class Merchant Raider", class: "Raider", book: rules.BookCoreRulebook, page: 193, races: humanRaces,
		speed: 9, manoeuvrability: 10, detection: 10, armour: 16, integrity: 30, turrets: 1, shields: 1, slots: 2},
	{name: "Sword-class Frigate", class: "Frigate", book: rules.BookCoreRulebook, page: 194, races: humanRaces,
		speed: 8, manoeuvrability: 10, detection: 15, armour: 18, integrity: 35, turrets: 2, shields: 1, slots: 2},
	{name: "Tempest-class Strike Frigate", class: "Frigate", book: rules.BookCoreRulebook, page: 194, races: humanRaces,
		speed: 8, manoeuvrability: 5, detection: 10, armour: 21, integrity: 42, turrets: 2, shields: 1, slots: 3},
	{name: "Dauntless-class Light Cruiser", class: "Light Cruiser", book: rules.BookCoreRulebook, page: 195, races: humanRaces,
		speed: 7, manoeuvrability: 10, detection: 20, armour: 19, integrity: 60, turrets: 1, shields: 1, slots: 3},
	{name: "Lunar-class Cruiser", class: "Cruiser", book: rules.BookCoreRulebook, page: 195, races: humanRaces,
		speed: 5, manoeuvrability: -10, detection: 15, armour: 20, integrity: 70, turrets: 2, shields: 2, slots: 4},
	{name: "Turbulent-class Heavy Frigate", class: "Frigate", book: rules.BookBattlefleetKoronus, page: 13, races: humanRaces,
		speed: 7, manoeuvrability: 5, detection: 15, armour: 20, integrity: 45, turrets: 2, shields: 1, slots: 3},
	{name: "Loki-class Q-Ship", class: "Raider", book: rules.BookBattlefleetKoronus, page: 12, races: humanRaces,
		speed: 9, manoeuvrability: 5, detection: 15, armour: 15, integrity: 40, turrets: 1, shields: 1, slots: 3},
	{name: "Ork Savage Gunship", class: "Raider", book: rules.BookBattlefleetKoronus, page: 50, races: []ShipRace{RaceOrk},
		speed: 8, manoeuvrability: 5, detection: 0, armour: 16, integrity: 38, turrets: 1, shields: 1, slots: 2},
	{name: "Ork Brute Ram Ship", class: "Raider", book: rules.BookBattlefleetKoronus, page: 51, races: []ShipRace{RaceOrk},
		speed: 9, manoeuvrability: 10, detection: -5, armour: 20, integrity: 35, turrets: 1, shields: 1, slots: 1},
	{name: "Eldar Hellebore-class Frigate", class: "Frigate", book: rules.BookBattlefleetKoronus, page: 56, races: []ShipRace{RaceEldar},
		speed: 12, manoeuvrability: 25, detection: 25, armour: 15, integrity: 35, turrets: 0, shields: 0, slots: 2},
	{name: "Eldar Aconite-class Frigate", class: "Frigate", book: rules.BookBattlefleetKoronus, page: 57, races: []ShipRace{RaceEldar},
		speed: 12, manoeuvrability: 30, detection: 20, armour: 14, integrity: 32, turrets: 0, shields: 0, slots: 2},
}

var raceWeights = map[ShipRace]int{
	RaceImperial: 6,
	RaceReaver:   2,
	RaceOrk:      1,
	RaceEldar:    1,
}

var arsenals = map[ShipRace][]string{
	RaceImperial: {"Sunsear Laser Battery", "Mars Pattern Macrocannons", "Thunderstrike Macrocannons", "Ryza Pattern Plasma Battery"},
	RaceReaver:   {"Mars Pattern Macrocannons", "Sunsear Laser Battery", "Godsbane Lance", "Boarding Torpedoes"},
	RaceOrk:      {"Big Gunz", "Heavy Gunz", "Grabba Klaw", "Torpedo Launcha"},
	RaceEldar:    {"Pulsar Lance", "Eldar Starcannon", "Eldar Torpedo Tubes"},
}

// machineSpiritQuirks is the pool a vessel draws its quirks from
var machineSpiritQuirks = []string{
	"Blasphemous Tendencies",
	"Rebellious",
	"Skittish",
	"Martial Hubris",
	"Stoic",
	"Wrathful",
	"Resolute",
	"Adventurous",
	"Cunning",
	"Ancient and Wise",
}

var (
	shipAdjectives = []string{"Crimson", "Silent", "Vengeful", "Iron", "Burning", "Hollow", "Restless", "Grim", "Gilded", "Feral"}
	shipNouns      = []string{"Maw", "Dawn", "Reckoning", "Talon", "Oath", "Wanderer", "Covenant", "Tithe", "Fang", "Lament"}
)

const (
	pirateRole      = "Pirate"
	independentRole = "Independent"
)

// ShipState holds the generated fields of a Ship
type ShipState struct {
	Role            string   `json:"role"`
	Race            ShipRace `json:"race"`
	Hull            string   `json:"hull"`
	HullClass       string   `json:"hullClass"`
	Speed           int      `json:"speed"`
	Manoeuvrability int      `json:"manoeuvrability"`
	Detection       int      `json:"detection"`
	Armour          int      `json:"armour"`
	HullIntegrity   int      `json:"hullIntegrity"`
	TurretRating    int      `json:"turretRating"`
	VoidShields     int      `json:"voidShields"`
	Weapons         []string `json:"weapons,omitempty"`
	Quirks          []string `json:"machineSpiritQuirks,omitempty"`
}

// Ship is a void-faring vessel
type Ship struct {
	BaseEntity
	ShipState
}

func NewShip() *Ship {
	return &Ship{BaseEntity: newBase(KindShip)}
}

// Reset keeps the pirate role of a ship placed by a Pirate Den
func (sh *Ship) Reset() {
	sh.resetBase()
	role := ""
	if sh.Role == pirateRole {
		role = pirateRole
	}
	sh.ShipState = ShipState{Role: role}
}

func (sh *Ship) state() any       { return &sh.ShipState }
func (sh *Ship) exportState() any { return &sh.ShipState }

// availableHulls lists hulls from enabled books, grouped by race
func availableHulls(settings rules.Settings) map[ShipRace][]hull {
	out := make(map[ShipRace][]hull)
	for _, h := range hulls {
		if !settings.BookEnabled(h.book) {
			continue
		}
		for _, race := range h.races {
			out[race] = append(out[race], h)
		}
	}
	return out
}

func (sh *Ship) populate(s *Session) error {
	r := s.Dice

	byRace := availableHulls(s.Settings)
	var races []dice.Weight[ShipRace]
	for _, race := range []ShipRace{RaceImperial, RaceReaver, RaceOrk, RaceEldar} {
		if len(byRace[race]) > 0 {
			races = append(races, dice.W(race, raceWeights[race]))
		}
	}
	if len(races) == 0 {
		return apperrors.UnsupportedSourcef("no ship hulls are available")
	}

	if sh.Role != pirateRole {
		sh.Role = independentRole
	}
	sh.Race = dice.Weighted("Ship Race", races...).Roll(r)

	h := dice.Pick(r, byRace[sh.Race])
	sh.Reference = rules.Ref(h.book, h.page, h.name)
	sh.Hull = h.name
	sh.HullClass = h.class
	sh.Speed = h.speed
	sh.Manoeuvrability = h.manoeuvrability
	sh.Detection = h.detection
	sh.Armour = h.armour
	sh.HullIntegrity = h.integrity - r.D(10) + 1
	sh.TurretRating = h.turrets
	sh.VoidShields = h.shields

	for i := 0; i < h.slots; i++ {
		sh.Weapons = append(sh.Weapons, dice.Pick(r, arsenals[sh.Race]))
	}
	sh.Quirks = dice.PickDistinct(r, machineSpiritQuirks)

	sh.setGeneratedName(fmt.Sprintf("%s %s", dice.Pick(r, shipAdjectives), dice.Pick(r, shipNouns)), NameOriginEvocative)
	return nil
}

func (sh *Ship) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, sh.Name)
	b.Field("Role", sh.Role)
	b.Field("Race", sh.Race)
	b.Field("Hull", fmt.Sprintf("%s (%s)", sh.Hull, sh.HullClass))
	b.Field("Profile", fmt.Sprintf("Speed %d, Manoeuvrability %+d, Detection %+d, Armour %d, Hull Integrity %d, Turret Rating %d, Void Shields %d",
		sh.Speed, sh.Manoeuvrability, sh.Detection, sh.Armour, sh.HullIntegrity, sh.TurretRating, sh.VoidShields))
	b.Section("Weapon Components", sh.Weapons)
	b.Section("Machine Spirit", sh.Quirks)
	finish(&sh.BaseEntity, b, settings)
}
