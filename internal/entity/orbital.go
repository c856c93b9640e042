package entity

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/markup"
	"starforge/internal/rules"
)

// RingKind is the makeup of a planetary ring
type RingKind string

const (
	RingDebris RingKind = "Debris"
	RingDust   RingKind = "Dust"
)

// OrbitalFeaturesState records what the container holds besides entities
type OrbitalFeaturesState struct {
	Rings []RingKind `json:"rings,omitempty"`
}

// OrbitalFeatures groups everything orbiting a body: moons, lesser moons,
// large asteroids and rings
type OrbitalFeatures struct {
	BaseEntity
	OrbitalFeaturesState
}

func NewOrbitalFeatures() *OrbitalFeatures {
	return &OrbitalFeatures{BaseEntity: newBase(KindOrbitalFeatures)}
}

func (of *OrbitalFeatures) Reset() {
	of.resetBase()
	of.OrbitalFeaturesState = OrbitalFeaturesState{}
}

func (of *OrbitalFeatures) state() any       { return &of.OrbitalFeaturesState }
func (of *OrbitalFeatures) exportState() any { return &of.OrbitalFeaturesState }

// IsEmpty reports whether nothing orbits the body
func (of *OrbitalFeatures) IsEmpty() bool {
	return len(of.children) == 0 && len(of.Rings) == 0
}

// orbitPlan is how many features a host rolls for and on which table
type orbitPlan struct {
	count    int
	table    *dice.Table[orbitalFeatureRoll]
	modifier int
}

func planFor(host Entity, r *dice.Roller, cr *rules.CreationRules) orbitPlan {
	bonus := 0
	if cr.GravityTides {
		bonus = 1
	}
	switch h := host.(type) {
	case *Planet:
		g := gravityProfiles[h.Gravity]
		return orbitPlan{
			count:    max(r.D(5)+g.features+bonus, 0),
			table:    planetOrbitTable,
			modifier: g.featureRoll,
		}
	case *GasGiant:
		return orbitPlan{
			count:    max(r.D(10)+gasGiantProfiles[h.Class].features+bonus, 0),
			table:    gasGiantOrbitTable,
			modifier: gravityProfiles[h.Gravity].featureRoll,
		}
	}
	return orbitPlan{count: r.D(3), table: planetOrbitTable}
}

func (of *OrbitalFeatures) populate(s *Session) error {
	r := s.Dice
	cr := s.rulesFor(of)
	of.Reference = rules.Ref(rules.BookStarsOfInequity, 18, "Orbital Features")

	plan := planFor(of.parent, r, cr)
	for i := 0; i < plan.count; i++ {
		var kind Kind
		switch plan.table.RollModified(r, 100, plan.modifier) {
		case orbitNothing:
			continue
		case orbitRing:
			of.Rings = append(of.Rings, dice.Pick(r, []RingKind{RingDebris, RingDust}))
			continue
		case orbitLargeAsteroid:
			kind = KindAsteroid
		case orbitLesserMoon:
			kind = KindLesserMoon
		case orbitMoon:
			kind = KindPlanet
		}
		if _, err := s.generateChild(of, kind); err != nil {
			return err
		}
	}
	return nil
}

// generateOrbitalFeatures rolls a host's orbital features, keeping the
// container only when something was found
func generateOrbitalFeatures(host Entity, s *Session) error {
	of := s.spawn(host, KindOrbitalFeatures).(*OrbitalFeatures)
	if err := of.populate(s); err != nil {
		return fmt.Errorf("failed to generate orbital features: %w", err)
	}
	if of.IsEmpty() {
		Detach(of)
	}
	return nil
}

func (of *OrbitalFeatures) UpdateDescription(settings rules.Settings) {
	b := markup.New().Heading(3, of.Name)
	var items []string
	for _, c := range of.children {
		kind := c.Kind().Placeholder()
		if c.Kind() == KindPlanet {
			kind = moonPlaceholder
		}
		items = append(items, fmt.Sprintf("%s (%s)", c.Base().Name, kind))
	}
	for _, ring := range of.Rings {
		items = append(items, fmt.Sprintf("Planetary Ring (%s)", ring))
	}
	b.List(items)
	finish(&of.BaseEntity, b, settings)
}
