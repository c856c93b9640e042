package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

func sessionWith(settings rules.Settings, seed uint64) *Session {
	return NewSession(seed, settings, NewCounter(0), quietLogger)
}

func TestXenos_DisabledSourceNeverChosen(t *testing.T) {
	settings := rules.DefaultSettings().WithXenosSource(rules.XenosSourceKoronusBestiary, false)
	s := sessionWith(settings, 5)

	for i := 0; i < 300; i++ {
		e, err := Create(KindXenos, s)
		require.NoError(t, err)
		assert.Equal(t, rules.XenosSourceStarsOfInequity, e.(*Xenos).Source)
	}
}

func TestXenos_BonusTraitsRespectBooks(t *testing.T) {
	settings := rules.DefaultSettings().
		WithBook(rules.BookKoronusBestiary, false).
		WithBook(rules.BookStarsOfInequity, true)
	s := sessionWith(settings, 6)

	for i := 0; i < 300; i++ {
		e, err := Create(KindXenos, s)
		require.NoError(t, err)
		x := e.(*Xenos)
		assert.False(t, hasTrait(x.Traits, "Regeneration"), "trait from a disabled book on %s", x.Archetype)
	}
}

func TestXenos_NoSourcesIsUnsupported(t *testing.T) {
	settings := rules.DefaultSettings().
		WithXenosSource(rules.XenosSourceStarsOfInequity, false).
		WithXenosSource(rules.XenosSourceKoronusBestiary, false)

	_, err := Create(KindXenos, sessionWith(settings, 1))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnsupportedSource, apperrors.GetType(err))

	for seed := uint64(1); seed <= 10; seed++ {
		sys, err := Create(KindSystem, sessionWith(settings, seed))
		require.NoError(t, err)
		assert.Zero(t, countKind(sys, KindXenos))
	}
}

func TestPrimitiveXenos_RequiresStarsOfInequity(t *testing.T) {
	settings := rules.DefaultSettings().WithBook(rules.BookStarsOfInequity, false)
	_, err := Create(KindPrimitiveXenos, sessionWith(settings, 1))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnsupportedSource, apperrors.GetType(err))

	e, err := Create(KindPrimitiveXenos, sessionWith(rules.DefaultSettings(), 1))
	require.NoError(t, err)
	p := e.(*PrimitiveXenos)
	assert.NotEmpty(t, p.Weapons)
	assert.NotEmpty(t, p.Traits)
}

func TestShip_DisabledFleetBookLimitsHulls(t *testing.T) {
	settings := rules.DefaultSettings().WithBook(rules.BookBattlefleetKoronus, false)
	s := sessionWith(settings, 9)

	for i := 0; i < 200; i++ {
		e, err := Create(KindShip, s)
		require.NoError(t, err)
		ship := e.(*Ship)
		assert.Contains(t, []ShipRace{RaceImperial, RaceReaver}, ship.Race)
		assert.Equal(t, rules.BookCoreRulebook, ship.Reference.Book)
		assert.Equal(t, independentRole, ship.Role)
	}
}

func TestTreasure_DisabledBookExcludesOrigin(t *testing.T) {
	settings := rules.DefaultSettings().WithBook(rules.BookIntoTheStorm, false)
	s := sessionWith(settings, 12)

	for i := 0; i < 200; i++ {
		e, err := Create(KindTreasure, s)
		require.NoError(t, err)
		tr := e.(*Treasure)
		assert.NotEqual(t, OriginAlienTech, tr.Origin)
		assert.NotEmpty(t, tr.Quirks)
	}
}
