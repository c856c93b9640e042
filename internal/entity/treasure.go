package entity

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

// TreasureOrigin is the provenance of a treasure
type TreasureOrigin string

const (
	OriginFinelyWrought  TreasureOrigin = "Finely Wrought"
	OriginAncientMiracle TreasureOrigin = "Ancient Miracle"
	OriginAlienTech      TreasureOrigin = "Alien Technology"
	OriginCursedArtefact TreasureOrigin = "Cursed Artefact"
)

type originProfile struct {
	weight int
	book   rules.Book
	quirks []string
	titles []string
}

var originProfiles = map[TreasureOrigin]originProfile{
	OriginFinelyWrought: {
		weight: 4,
		book:   rules.BookCoreRulebook,
		quirks: []string{"Masterfully Balanced", "Gilded Filigree", "Crafted for Another", "Remarkably Light", "Bears a Noble Crest"},
		titles: []string{"Artisan's", "Duke's", "Forgemaster's", "Rogue's"},
	},
	OriginAncientMiracle: {
		weight: 2,
		book:   rules.BookCoreRulebook,
		quirks: []string{"Blessed by a Saint", "Ancient Machine Spirit", "Relic of a Lost Crusade", "Sacred Inscriptions", "Never Falters"},
		titles: []string{"Saint's", "Emperor's", "Martyr's", "Crusader's"},
	},
	OriginAlienTech: {
		weight: 2,
		book:   rules.BookIntoTheStorm,
		quirks: []string{"Unsettling Hum", "Shifts Shape", "Drinks Light", "Warm to the Touch", "Resists Sanctification"},
		titles: []string{"Stranger's", "Starborn", "Xenarch's", "Outsider's"},
	},
	OriginCursedArtefact: {
		weight: 2,
		book:   rules.BookCoreRulebook,
		quirks: []string{"Whispers in the Dark", "Thirsts for Blood", "Brings Misfortune", "Cannot Be Discarded", "Taints the Bearer"},
		titles: []string{"Heretic's", "Damned", "Traitor's", "Witch's"},
	},
}

var originOrder = []TreasureOrigin{OriginFinelyWrought, OriginAncientMiracle, OriginAlienTech, OriginCursedArtefact}

var treasureTypeTable = dice.NewTable("Treasure Type", 10,
	dice.B(3, "Melee Weapon"),
	dice.B(6, "Ranged Weapon"),
	dice.B(7, "Armour"),
	dice.B(9, "Gear"),
	dice.B(10, "Curio"),
)

var treasureItems = map[string][]string{
	"Melee Weapon":  {"Power Sword", "Chainsword", "Shock Maul", "Duelling Blade"},
	"Ranged Weapon": {"Hellpistol", "Bolt Pistol", "Needle Rifle", "Plasma Pistol"},
	"Armour":        {"Carapace Breastplate", "Mesh Cloak", "Storm Coat"},
	"Gear":          {"Auspex", "Chrono", "Void Suit", "Refractor Field"},
	"Curio":         {"Star Chart", "Reliquary", "Puzzle Box", "Psychic Focus"},
}

var craftsmanshipTable = dice.NewTable("Craftsmanship", 10,
	dice.B(2, "Common"),
	dice.B(7, "Good"),
	dice.B(10, "Best"),
)

var treasureNouns = []string{"Lament", "Glory", "Promise", "Reckoning", "Vigil", "Wrath", "Secret"}

// TreasureState holds the generated fields of a Treasure
type TreasureState struct {
	Origin        TreasureOrigin `json:"origin"`
	ItemType      string         `json:"itemType"`
	Item          string         `json:"item"`
	Craftsmanship string         `json:"craftsmanship"`
	Quirks        []string       `json:"quirks,omitempty"`
}

// Treasure is a notable item found in the Expanse
type Treasure struct {
	BaseEntity
	TreasureState
}

func NewTreasure() *Treasure {
	return &Treasure{BaseEntity: newBase(KindTreasure)}
}

func (t *Treasure) Reset() {
	t.resetBase()
	t.TreasureState = TreasureState{}
}

func (t *Treasure) state() any       { return &t.TreasureState }
func (t *Treasure) exportState() any { return &t.TreasureState }

func (t *Treasure) populate(s *Session) error {
	r := s.Dice

	var origins []dice.Weight[TreasureOrigin]
	for _, o := range originOrder {
		if p := originProfiles[o]; s.Settings.BookEnabled(p.book) {
			origins = append(origins, dice.W(o, p.weight))
		}
	}
	if len(origins) == 0 {
		return apperrors.UnsupportedSourcef("no treasure origins are available")
	}

	t.Origin = dice.Weighted("Treasure Origin", origins...).Roll(r)
	profile := originProfiles[t.Origin]
	t.Reference = rules.Ref(profile.book, 360, "Treasure Origin")
	t.ItemType = treasureTypeTable.Roll(r)
	t.Item = dice.Pick(r, treasureItems[t.ItemType])
	t.Craftsmanship = craftsmanshipTable.Roll(r)
	t.Quirks = dice.PickDistinct(r, profile.quirks)

	title := fmt.Sprintf("The %s %s", dice.Pick(r, profile.titles), dice.Pick(r, treasureNouns))
	t.setGeneratedName(title, NameOriginEvocative)
	return nil
}

func (t *Treasure) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, t.Name)
	b.Field("Item", fmt.Sprintf("%s %s (%s)", t.Craftsmanship, t.Item, t.ItemType))
	b.Field("Origin", t.Origin)
	b.Section("Quirks", t.Quirks)
	finish(&t.BaseEntity, b, settings)
}
