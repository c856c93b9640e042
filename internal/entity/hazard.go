package entity

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
)

type hazardProfile struct {
	die       int
	bonus     int
	reference rules.Reference
	// rule renders the hazard's game effect at the given intensity
	rule func(intensity int) string
}

var hazardProfiles = map[Kind]hazardProfile{
	KindDustCloud: {
		die:       10,
		reference: rules.Ref(rules.BookStarsOfInequity, 12, "Dust Cloud"),
		rule: func(n int) string {
			return fmt.Sprintf("Detection within the cloud is reduced by %d; passing through requires a Pilot (Space Craft) test at -%d.", n*5, n*2)
		},
	},
	KindGravityRiptide: {
		die:       5,
		reference: rules.Ref(rules.BookStarsOfInequity, 13, "Gravity Riptide"),
		rule: func(n int) string {
			return fmt.Sprintf("Vessels caught in the riptide must pass a Pilot (Space Craft) test at -%d or be dragged off course.", n*10)
		},
	},
	KindRadiationBursts: {
		die:       10,
		bonus:     2,
		reference: rules.Ref(rules.BookStarsOfInequity, 13, "Radiation Bursts"),
		rule: func(n int) string {
			return fmt.Sprintf("Detection is reduced by %d while the bursts persist and unshielded crew suffer radiation sickness.", n*3)
		},
	},
	KindSolarFlares: {
		die:       5,
		reference: rules.Ref(rules.BookStarsOfInequity, 13, "Solar Flares"),
		rule: func(n int) string {
			return fmt.Sprintf("Each day roll 1d10; on %d or less a flare strikes, dealing 1d5 damage to void shields and hull.", min(n+1, 9))
		},
	},
}

// HazardState holds the generated severity of a zone hazard
type HazardState struct {
	Intensity int `json:"intensity"`
}

// Hazard is the shared implementation of the four zone hazards
type Hazard struct {
	BaseEntity
	HazardState
}

func newHazard(kind Kind) *Hazard {
	return &Hazard{BaseEntity: newBase(kind)}
}

func (h *Hazard) Reset() {
	h.resetBase()
	h.HazardState = HazardState{}
}

func (h *Hazard) state() any       { return &h.HazardState }
func (h *Hazard) exportState() any { return &h.HazardState }

func (h *Hazard) populate(s *Session) error {
	profile := hazardProfiles[h.kind]
	h.Reference = profile.reference
	h.Intensity = dice.Clamp(s.Dice.D(profile.die)+profile.bonus, 1, profile.die+profile.bonus)
	return nil
}

func (h *Hazard) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, h.Name)
	b.Field("Intensity", h.Intensity)
	if rule := hazardProfiles[h.kind].rule; rule != nil {
		b.Paragraph(rule(h.Intensity))
	}
	finish(&h.BaseEntity, b, settings)
}
