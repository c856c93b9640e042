package entity

import (
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/markup"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
	"starforge/internal/territory"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestSession(seed uint64) *Session {
	return NewSession(seed, rules.DefaultSettings(), NewCounter(0), quietLogger)
}

// sessionAfter returns a session whose identities follow those already in root
func sessionAfter(root Entity, seed uint64) *Session {
	return NewSession(seed, rules.DefaultSettings(), NewCounter(MaxID(root)), quietLogger)
}

func generateSystem(t *testing.T, seed uint64) *System {
	t.Helper()
	e, err := Create(KindSystem, newTestSession(seed))
	require.NoError(t, err)
	return e.(*System)
}

func flatten(e Entity) []Entity {
	var out []Entity
	Walk(e, func(n Entity) bool {
		out = append(out, n)
		return true
	})
	return out
}

func assertShape(t *testing.T, sys *System) {
	t.Helper()
	require.Len(t, sys.Children(), 3)
	zones := sys.Zones()
	require.Len(t, zones, 3)
	for i, kind := range ZoneKinds() {
		assert.Equal(t, kind, zones[i].Zone)
	}
	Walk(sys, func(e Entity) bool {
		for _, c := range e.Base().Children() {
			assert.Same(t, e, c.Base().Parent(), "%s parent link", c.Kind())
			assert.True(t, CanContain(e.Kind(), c.Kind()), "%s in %s", c.Kind(), e.Kind())
		}
		if z, ok := e.(*Zone); ok {
			for _, h := range []Kind{KindDustCloud, KindGravityRiptide, KindRadiationBursts, KindSolarFlares} {
				assert.Equal(t, countKind(z, h), z.HazardCount(h), "%s %s", z.Zone, h)
			}
		}
		if countKind(e, KindOrbitalFeatures) > 1 {
			t.Errorf("%s has more than one orbital features container", e.Kind())
		}
		if of, ok := e.(*OrbitalFeatures); ok {
			assert.False(t, of.IsEmpty(), "empty orbital features kept")
		}
		return true
	})
}

func TestTables_BandCoverage(t *testing.T) {
	for _, table := range Tables() {
		assert.NoError(t, table.Validate(), table.Name())
	}
}

func TestSystem_ShapeHoldsAcrossSeeds(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		sys := generateSystem(t, seed)
		assertShape(t, sys)
		assert.NotEqual(t, KindSystem.Placeholder(), sys.Name)
		assert.NotEmpty(t, sys.Features)
		assert.LessOrEqual(t, len(sys.Features), 2)
	}
}

func TestGenerate_RegenerationDiscardsPreviousPass(t *testing.T) {
	sys := generateSystem(t, 3)
	old := flatten(sys)[1:]

	require.NoError(t, Generate(sys, sessionAfter(sys, 99)))
	require.NoError(t, Generate(sys, sessionAfter(sys, 100)))
	assertShape(t, sys)

	current := map[Entity]bool{}
	for _, e := range flatten(sys) {
		current[e] = true
	}
	for _, e := range old {
		assert.False(t, current[e], "%s from the first pass survived", e.Kind())
	}
}

func TestGenerate_ResetClearsGeneratedFields(t *testing.T) {
	sys := generateSystem(t, 5)
	sys.Reset()
	assert.Empty(t, sys.Children())
	assert.Empty(t, sys.Features)
	assert.Empty(t, sys.Description)
	assert.Equal(t, KindSystem.Placeholder(), sys.Name)
	assert.Equal(t, *rules.NewCreationRules(), *sys.Rules)

	p := NewPlanet()
	p.IsMoon = true
	p.Body = BodyVast
	p.Reset()
	assert.True(t, p.IsMoon)
	assert.Empty(t, p.Body)
	assert.Equal(t, moonPlaceholder, p.Name)
}

func TestGenerate_SameSeedSameTree(t *testing.T) {
	a, err := ToRecord(generateSystem(t, 42))
	require.NoError(t, err)
	b, err := ToRecord(generateSystem(t, 42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_RulesReacquiredFromSystem(t *testing.T) {
	sys := generateSystem(t, 11)
	s := sessionAfter(sys, 12)
	for _, p := range sys.Planets() {
		assert.Same(t, sys.Rules, s.rulesFor(p))
	}

	stale := sys.Rules
	require.NoError(t, Generate(sys, s))
	assert.NotSame(t, stale, sys.Rules)
	for _, z := range sys.Zones() {
		assert.Same(t, sys.Rules, s.rulesFor(z))
	}
}

func TestDetach_RecountsZoneHazards(t *testing.T) {
	sys := NewSystem()
	s := newTestSession(1)
	z := s.spawn(sys, KindZone).(*Zone)
	for i := 0; i < 3; i++ {
		_, err := CreateChild(z, KindDustCloud, s)
		require.NoError(t, err)
	}
	_, err := CreateChild(z, KindSolarFlares, s)
	require.NoError(t, err)
	assert.Equal(t, 3, z.DustClouds)
	assert.Equal(t, 1, z.SolarFlares)

	require.True(t, Detach(z.Children()[0]))
	assert.Equal(t, 2, z.DustClouds)
	assert.False(t, Detach(NewPlanet()))
}

func TestCreateChild_RejectsIllegalContainment(t *testing.T) {
	sys := generateSystem(t, 8)
	s := sessionAfter(sys, 9)

	_, err := CreateChild(sys, KindZone, s)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	_, err = CreateChild(sys.Zones()[0], KindXenos, s)
	require.Error(t, err)
	assert.Len(t, sys.Children(), 3)
}

func TestCreateChild_MoonUnderOrbitalFeatures(t *testing.T) {
	s := newTestSession(4)
	planet, err := Create(KindPlanet, s)
	require.NoError(t, err)

	of := orbitalFeaturesOf(planet)
	if of == nil {
		of = s.spawn(planet, KindOrbitalFeatures).(*OrbitalFeatures)
	}
	moon, err := CreateChild(of, KindPlanet, s)
	require.NoError(t, err)
	assert.True(t, moon.(*Planet).IsMoon)
	assert.Zero(t, countKind(moon, KindOrbitalFeatures))
}

func TestCreateChild_OneOrbitalFeaturesPerBody(t *testing.T) {
	s := newTestSession(6)
	giant, err := Create(KindGasGiant, s)
	require.NoError(t, err)
	if orbitalFeaturesOf(giant) == nil {
		s.spawn(giant, KindOrbitalFeatures)
	}

	_, err = CreateChild(giant, KindOrbitalFeatures, s)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
	assert.Equal(t, 1, countKind(giant, KindOrbitalFeatures))
}

func TestGravity_TitanicOnlyForGasGiants(t *testing.T) {
	assert.NotContains(t, gravityTable.Values(), GravityTitanic)

	s := newTestSession(11)
	for i := 0; i < 200; i++ {
		p, err := Create(KindPlanet, s)
		require.NoError(t, err)
		assert.NotEqual(t, GravityTitanic, p.(*Planet).Gravity)
	}
	assert.Equal(t, GravityTitanic, gasGiantProfiles[GasGiantNormal].gravity)
}

func TestBountifulAsteroids_RaisesAbundance(t *testing.T) {
	average := func(bountiful bool) float64 {
		s := newTestSession(2024)
		sys := NewSystem()
		sys.Rules.BountifulAsteroids = bountiful
		z := s.spawn(sys, KindZone)
		belt := s.spawn(z, KindAsteroidBelt).(*MineralBody)

		total := 0
		const trials = 2000
		for i := 0; i < trials; i++ {
			belt.Reset()
			require.NoError(t, belt.populate(s))
			for _, c := range []int{belt.Minerals.IndustrialMetals, belt.Minerals.Ornamentals, belt.Minerals.Radioactives, belt.Minerals.ExoticMaterials} {
				require.GreaterOrEqual(t, c, 0)
			}
			total += belt.Minerals.Total()
		}
		return float64(total) / trials
	}
	assert.Greater(t, average(true), average(false))
}

func TestPlanet_TerritoryCountsFollowHabitability(t *testing.T) {
	seen := map[territory.Habitability]bool{}
	s := newTestSession(77)
	for i := 0; i < 400; i++ {
		p, err := Create(KindPlanet, s)
		require.NoError(t, err)
		planet := p.(*Planet)
		n := len(planet.Environment.Territories)
		switch planet.Habitability {
		case territory.Inhospitable:
			assert.LessOrEqual(t, n, 2)
		case territory.Verdant:
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 8)
		}
		seen[planet.Habitability] = true

		if planet.Habitability.IsEcosystem() {
			assert.GreaterOrEqual(t, len(planet.NativeSpecies()), planet.Environment.NotableSpecies())
		} else {
			assert.Empty(t, planet.NativeSpecies())
		}
	}
	assert.True(t, seen[territory.Inhospitable])
	assert.True(t, seen[territory.Verdant])
}

func TestStarfarers_HomeworldSurvivesRegeneration(t *testing.T) {
	var sys *System
	for seed := uint64(1); seed < 400 && sys == nil; seed++ {
		if candidate := generateSystem(t, seed); candidate.HasFeature(FeatureStarfarers) {
			sys = candidate
		}
	}
	require.NotNil(t, sys, "no starfaring system in seed range")

	home := sys.Homeworld()
	require.NotNil(t, home)
	assert.True(t, home.Homeworld)
	assert.Equal(t, DevelopmentVoidfarers, home.Inhabitants.Development)
	assert.Equal(t, sys.Rules.StarfarerSpecies, home.Inhabitants.Species)
	assert.Equal(t, NameOriginEvocative, home.NameOrigin())

	require.NoError(t, Generate(home, sessionAfter(sys, 5)))
	assert.True(t, home.Homeworld)
	assert.Equal(t, DevelopmentVoidfarers, home.Inhabitants.Development)
}

func TestPirateDen_PlacesPirateShips(t *testing.T) {
	var sys *System
	for seed := uint64(1); seed < 400 && sys == nil; seed++ {
		if candidate := generateSystem(t, seed); candidate.HasFeature(FeaturePirateDen) {
			sys = candidate
		}
	}
	require.NotNil(t, sys, "no pirate den in seed range")

	ships := 0
	for _, z := range sys.Zones() {
		for _, ship := range childrenOfKind[*Ship](z) {
			ships++
			assert.Equal(t, pirateRole, ship.Role)
		}
	}
	assert.GreaterOrEqual(t, ships, 4)

	t.Run("added ship stays independent", func(t *testing.T) {
		s := sessionAfter(sys, 31)
		added, err := CreateChild(sys.Zones()[0], KindShip, s)
		require.NoError(t, err)
		assert.Equal(t, independentRole, added.(*Ship).Role)
	})

	t.Run("den ship stays a pirate when rerolled", func(t *testing.T) {
		var den *Ship
		for _, z := range sys.Zones() {
			for _, ship := range childrenOfKind[*Ship](z) {
				if den == nil && ship.Role == pirateRole {
					den = ship
				}
			}
		}
		require.NotNil(t, den)
		require.NoError(t, Generate(den, sessionAfter(sys, 32)))
		assert.Equal(t, pirateRole, den.Role)
	})
}

var tagPattern = regexp.MustCompile(`</?([a-z0-9]+)`)

func TestDescriptions_UseFixedVocabulary(t *testing.T) {
	allowed := map[string]bool{"h2": true, "h3": true, "p": true, "ul": true, "li": true, "strong": true, "span": true}
	for seed := uint64(1); seed <= 10; seed++ {
		for _, e := range flatten(generateSystem(t, seed)) {
			desc := e.Base().Description
			require.NotEmpty(t, desc, "%s has no description", e.Kind())
			for _, m := range tagPattern.FindAllStringSubmatch(desc, -1) {
				assert.True(t, allowed[m[1]], "tag %q in %s", m[1], e.Kind())
			}
		}
	}
}

func TestDescriptions_CitationsFollowSettings(t *testing.T) {
	sys := generateSystem(t, 6)
	assert.Contains(t, sys.Description, markup.PageRefClass)

	hidden := rules.DefaultSettings()
	hidden.ShowReferences = false
	RefreshDescriptions(sys, hidden)
	for _, e := range flatten(sys) {
		assert.NotContains(t, e.Base().Description, markup.PageRefClass)
	}
}

func TestCreate_UnknownKind(t *testing.T) {
	_, err := Create(Kind("Dyson Sphere"), newTestSession(1))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeMalformedInput, apperrors.GetType(err))
}
