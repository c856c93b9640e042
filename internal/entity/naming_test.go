package entity

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/naming"
	"starforge/internal/rules"
)

// namingFixture is a hand-built system:
//
//	Inner Cauldron:    inner (spawned after outer)
//	Primary Biosphere: giant
//	Outer Reaches:     outer
type namingFixture struct {
	s      *Session
	sys    *System
	zones  []*Zone
	inner  *Planet
	giant  *GasGiant
	outer  *Planet
	satell *OrbitalFeatures
}

func newNamingFixture() *namingFixture {
	s := newTestSession(1)
	sys := NewSystem()
	sys.ID = s.IDs.NextID()
	sys.Rename("Helion")
	sys.NamingStyle = NamingProcedural

	f := &namingFixture{s: s, sys: sys}
	for _, kind := range ZoneKinds() {
		z := s.spawn(sys, KindZone).(*Zone)
		z.Zone = kind
		f.zones = append(f.zones, z)
	}
	f.outer = s.spawn(f.zones[2], KindPlanet).(*Planet)
	f.inner = s.spawn(f.zones[0], KindPlanet).(*Planet)
	f.giant = s.spawn(f.zones[1], KindGasGiant).(*GasGiant)

	f.satell = s.spawn(f.inner, KindOrbitalFeatures).(*OrbitalFeatures)
	s.spawn(f.satell, KindLesserMoon)
	s.spawn(f.satell, KindPlanet)
	s.spawn(f.satell, KindAsteroid)
	return f
}

func names(es []Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Base().Name
	}
	return out
}

func TestNaming_BodiesLetteredInZoneOrder(t *testing.T) {
	f := newNamingFixture()
	nameSystem(f.sys, f.s)

	assert.Equal(t, "Helion b", f.inner.Name)
	assert.Equal(t, "Helion c", f.giant.Name)
	assert.Equal(t, "Helion d", f.outer.Name)
	assert.Equal(t, []string{"Helion b I", "Helion b II", "Helion b III"}, names(f.satell.Children()))
	assert.Equal(t, NameOriginProcedural, f.inner.NameOrigin())
}

func TestNaming_NewSiblingShiftsPlaceholderLetters(t *testing.T) {
	f := newNamingFixture()
	nameSystem(f.sys, f.s)

	f.outer.Rename("Nostromo")
	late := f.s.spawn(f.zones[0], KindPlanet)
	nameSystem(f.sys, f.s)

	assert.Equal(t, "Helion b", f.inner.Name)
	assert.Equal(t, "Helion c", late.Base().Name)
	assert.Equal(t, "Helion d", f.giant.Name)
	assert.Equal(t, "Nostromo", f.outer.Name)
	assert.Equal(t, "Helion b I", f.satell.Children()[0].Base().Name)
}

func TestNaming_MajorSettlementTakesEvocativeName(t *testing.T) {
	f := newNamingFixture()
	f.giant.Inhabitants = &Inhabitants{Species: rules.SpeciesOrk, Development: DevelopmentBasicIndustry}
	giantMoons := f.s.spawn(f.giant, KindOrbitalFeatures)
	f.s.spawn(giantMoons, KindLesserMoon)
	f.s.spawn(giantMoons, KindLesserMoon)

	nameSystem(f.sys, f.s)

	assert.Equal(t, NameOriginEvocative, f.giant.NameOrigin())
	assert.False(t, strings.HasPrefix(f.giant.Name, "Helion "))
	assert.Equal(t, []string{f.giant.Name + " 1", f.giant.Name + " 2"}, names(giantMoons.Base().Children()))
	assert.Equal(t, "Helion b", f.inner.Name)

	evocative := f.giant.Name
	nameSystem(f.sys, f.s)
	assert.Equal(t, evocative, f.giant.Name, "an evocative name is kept across passes")
}

func TestNaming_HumanHomeworldMakesEveryBodyEvocative(t *testing.T) {
	f := newNamingFixture()
	f.outer.Rename("Nostromo")
	f.sys.Rules.Starfarers = true
	f.sys.Rules.StarfarerSpecies = rules.SpeciesHuman
	f.sys.Rules.HomeworldID = int64(f.inner.ID)
	f.inner.applyHomeworld(f.sys.Rules)
	require.True(t, f.sys.HasHumanHomeworld())

	nameSystem(f.sys, f.s)

	assert.Equal(t, NameOriginEvocative, f.inner.NameOrigin())
	assert.Equal(t, NameOriginEvocative, f.giant.NameOrigin())
	assert.Equal(t, "Nostromo", f.outer.Name)
	assert.NotEqual(t, f.inner.Name, f.giant.Name)
	assert.Equal(t, f.inner.Name+" 1", f.satell.Children()[0].Base().Name)
}

func TestNaming_RenamedBodySurvivesRegeneration(t *testing.T) {
	sys := generateSystem(t, 17)
	var target Entity
	for _, z := range sys.Zones() {
		for _, c := range z.Children() {
			if c.Kind() == KindPlanet {
				target = c
				break
			}
		}
		if target != nil {
			break
		}
	}
	if target == nil {
		t.Skip("system has no planets")
	}
	target.Base().Rename("Nostromo")
	home := ZoneOf(target)

	for _, z := range sys.Zones() {
		if z != home {
			require.NoError(t, Generate(z, sessionAfter(sys, 3)))
		}
	}
	assert.Equal(t, "Nostromo", target.Base().Name)

	require.NoError(t, Generate(target, sessionAfter(sys, 4)))
	assert.Equal(t, "Nostromo", target.Base().Name)
	assert.True(t, target.Base().NameCustomized)

	for i, body := range sys.Bodies() {
		b := body.Base()
		if b.NameOrigin() == NameOriginProcedural {
			assert.Equal(t, naming.Body(sys.Name, i), b.Name)
		}
	}
}

func TestNaming_RenamedSystemSurvivesRegeneration(t *testing.T) {
	sys := generateSystem(t, 23)
	sys.Rename("Koronus Gate")
	require.NoError(t, Generate(sys, sessionAfter(sys, 24)))

	assert.Equal(t, "Koronus Gate", sys.Name)
	for _, body := range sys.Bodies() {
		if body.Base().NameOrigin() == NameOriginProcedural {
			assert.True(t, strings.HasPrefix(body.Base().Name, "Koronus Gate "))
		}
	}
}

func TestNaming_LooseBodiesAreEvocative(t *testing.T) {
	for _, kind := range []Kind{KindPlanet, KindGasGiant} {
		e, err := Create(kind, newTestSession(8))
		require.NoError(t, err)
		assert.Equal(t, NameOriginEvocative, e.Base().NameOrigin(), kind)
		assert.NotEqual(t, kind.Placeholder(), e.Base().Name)

		if of := orbitalFeaturesOf(e); of != nil {
			for i, m := range of.Children() {
				assert.Equal(t, e.Base().Name+" "+strconv.Itoa(i+1), m.Base().Name)
			}
		}
	}
}

func TestNaming_GeneratedSystemsHaveUniqueNames(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		sys := generateSystem(t, seed)
		seen := map[string]bool{}
		Walk(sys, func(e Entity) bool {
			switch e.Kind() {
			case KindSystem, KindPlanet, KindGasGiant:
				name := e.Base().Name
				assert.False(t, seen[name], "duplicate name %q", name)
				seen[name] = true
			}
			return true
		})
	}
}
