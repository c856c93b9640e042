package workspace

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starforge/internal/entity"
	"starforge/internal/markup"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

func newTestService() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewRepository(), rules.DefaultSettings(), logger)
}

func firstOfKind(root entity.Entity, kind entity.Kind) entity.Entity {
	var found entity.Entity
	entity.Walk(root, func(e entity.Entity) bool {
		if found == nil && e.Kind() == kind {
			found = e
		}
		return found == nil
	})
	return found
}

func TestCreate_RootKindsOnly(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(entity.KindZone, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	_, err = svc.Create(entity.Kind("Nebula"), 1)
	require.Error(t, err)
	assert.Empty(t, svc.Roots())

	for i, kind := range entity.RootKinds() {
		e, err := svc.Create(kind, uint64(i+1))
		require.NoError(t, err, kind)
		assert.Equal(t, kind, e.Kind())
	}
	assert.Len(t, svc.Roots(), len(entity.RootKinds()))
}

func TestCreate_IdentitiesAreUniqueAndIncreasing(t *testing.T) {
	svc := newTestService()
	a, err := svc.Create(entity.KindSystem, 1)
	require.NoError(t, err)
	b, err := svc.Create(entity.KindSystem, 2)
	require.NoError(t, err)

	assert.Greater(t, b.Base().ID, entity.MaxID(a))
	assert.LessOrEqual(t, entity.MaxID(b), svc.LastID())

	seen := map[entity.ID]bool{}
	for _, root := range svc.Roots() {
		entity.Walk(root, func(e entity.Entity) bool {
			assert.False(t, seen[e.Base().ID], "duplicate id %d", e.Base().ID)
			seen[e.Base().ID] = true
			return true
		})
	}
}

func TestCreateChild_UnknownParent(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateChild(404, entity.KindShip, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestCreateChild_AddsHazardToZone(t *testing.T) {
	svc := newTestService()
	sys, err := svc.Create(entity.KindSystem, 3)
	require.NoError(t, err)
	zone := sys.(*entity.System).Zones()[0]
	before := zone.DustClouds

	child, err := svc.CreateChild(zone.ID, entity.KindDustCloud, 4)
	require.NoError(t, err)
	assert.Same(t, zone, child.Base().Parent())
	assert.Equal(t, before+1, zone.DustClouds)

	found, err := svc.Find(child.Base().ID)
	require.NoError(t, err)
	assert.Same(t, child, found)
}

func TestGenerate_KeepsIdentityOfTarget(t *testing.T) {
	svc := newTestService()
	sys, err := svc.Create(entity.KindSystem, 5)
	require.NoError(t, err)
	id := sys.Base().ID

	again, err := svc.Generate(id, 6)
	require.NoError(t, err)
	assert.Same(t, sys, again)
	assert.Equal(t, id, again.Base().ID)
	assert.Len(t, again.Base().Children(), 3)

	_, err = svc.Generate(9999, 1)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestRename_DerivedNamesFollow(t *testing.T) {
	svc := newTestService()
	sys, err := svc.Create(entity.KindSystem, 7)
	require.NoError(t, err)

	_, err = svc.Rename(sys.Base().ID, "  ")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	_, err = svc.Rename(sys.Base().ID, "Footfall")
	require.NoError(t, err)
	assert.Equal(t, "Footfall", sys.Base().Name)
	assert.True(t, sys.Base().NameCustomized)
	assert.Contains(t, sys.Base().Description, "Footfall")

	for _, body := range sys.(*entity.System).Bodies() {
		if body.Base().NameOrigin() == entity.NameOriginProcedural {
			assert.True(t, strings.HasPrefix(body.Base().Name, "Footfall "), body.Base().Name)
		}
	}
}

func TestRename_MoonsFollowTheirBody(t *testing.T) {
	svc := newTestService()
	var host entity.Entity
	for seed := uint64(1); seed < 50 && host == nil; seed++ {
		p, err := svc.Create(entity.KindPlanet, seed)
		require.NoError(t, err)
		if firstOfKind(p, entity.KindOrbitalFeatures) != nil {
			host = p
		}
	}
	require.NotNil(t, host, "no planet with orbital features")

	_, err := svc.Rename(host.Base().ID, "Hollow Crown")
	require.NoError(t, err)
	of := firstOfKind(host, entity.KindOrbitalFeatures)
	for _, m := range of.Base().Children() {
		assert.True(t, strings.HasPrefix(m.Base().Name, "Hollow Crown "), m.Base().Name)
	}
}

func TestSetNote_SurvivesRegeneration(t *testing.T) {
	svc := newTestService()
	ship, err := svc.Create(entity.KindShip, 8)
	require.NoError(t, err)

	require.NoError(t, svc.SetNote(ship.Base().ID, "Owes us a favour"))
	_, err = svc.Generate(ship.Base().ID, 9)
	require.NoError(t, err)
	assert.Equal(t, "Owes us a favour", ship.Base().CustomNote)

	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(svc.SetNote(12345, "x")))
}

func TestRemove(t *testing.T) {
	svc := newTestService()
	sys, err := svc.Create(entity.KindSystem, 10)
	require.NoError(t, err)
	treasure, err := svc.Create(entity.KindTreasure, 11)
	require.NoError(t, err)
	zone := sys.(*entity.System).Zones()[1]

	t.Run("zone is rejected", func(t *testing.T) {
		err := svc.Remove(zone.ID)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
		assert.Len(t, sys.Base().Children(), 3)
	})

	t.Run("hazard recounts its zone", func(t *testing.T) {
		cloud, err := svc.CreateChild(zone.ID, entity.KindSolarFlares, 12)
		require.NoError(t, err)
		before := zone.SolarFlares

		require.NoError(t, svc.Remove(cloud.Base().ID))
		assert.Equal(t, before-1, zone.SolarFlares)
		_, err = svc.Find(cloud.Base().ID)
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
	})

	t.Run("root leaves the workspace", func(t *testing.T) {
		require.NoError(t, svc.Remove(treasure.Base().ID))
		assert.Len(t, svc.Roots(), 1)
		assert.Same(t, sys, svc.Roots()[0])
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(svc.Remove(777777)))
	})
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	svc := newTestService()
	sys, err := svc.Create(entity.KindSystem, 13)
	require.NoError(t, err)
	_, err = svc.Create(entity.KindXenos, 14)
	require.NoError(t, err)
	_, err = svc.Rename(sys.Base().ID, "Winterscale's Realm")
	require.NoError(t, err)

	doc, err := svc.Save()
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, doc.Version)
	assert.Equal(t, svc.LastID(), doc.NodeIDCounter)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "version")
	assert.Contains(t, keys, "rootNodes")
	assert.Contains(t, keys, "nodeIdCounter")

	decoded, err := DecodeDocument(raw)
	require.NoError(t, err)

	loaded := newTestService()
	require.NoError(t, loaded.Load(decoded))
	require.Len(t, loaded.Roots(), 2)
	assert.Equal(t, "Winterscale's Realm", loaded.Roots()[0].Base().Name)
	assert.Equal(t, sys.Base().Description, loaded.Roots()[0].Base().Description)

	again, err := loaded.Save()
	require.NoError(t, err)
	assert.Equal(t, doc, again)

	fresh, err := loaded.Create(entity.KindShip, 15)
	require.NoError(t, err)
	assert.Greater(t, fresh.Base().ID, doc.NodeIDCounter)
}

func TestLoad_KeepsGoodRootsAndReportsBadOnes(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(entity.KindTreasure, 16)
	require.NoError(t, err)
	doc, err := svc.Save()
	require.NoError(t, err)

	doc.RootNodes = append(doc.RootNodes,
		entity.Record{Type: "Warp Rift", ID: 50},
		entity.Record{Type: entity.KindZone, ID: 51},
	)
	doc.NodeIDCounter = 1

	loaded := newTestService()
	err = loaded.Load(doc)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeMalformedInput, apperrors.GetType(err))
	assert.Contains(t, err.Error(), "Warp Rift#50")
	assert.Contains(t, err.Error(), "root 2")

	require.Len(t, loaded.Roots(), 1)
	assert.Equal(t, entity.KindTreasure, loaded.Roots()[0].Kind())
	assert.Equal(t, entity.MaxID(loaded.Roots()[0]), loaded.LastID(), "counter resumes past ids in use")
}

func TestLoad_RejectsIdentityReusedAcrossRoots(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(entity.KindTreasure, 20)
	require.NoError(t, err)
	_, err = svc.Create(entity.KindShip, 21)
	require.NoError(t, err)
	doc, err := svc.Save()
	require.NoError(t, err)

	doc.RootNodes[1].ID = doc.RootNodes[0].ID

	loaded := newTestService()
	err = loaded.Load(doc)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeMalformedInput, apperrors.GetType(err))
	assert.Contains(t, err.Error(), "root 1")
	assert.Contains(t, err.Error(), "already used by root 0")

	require.Len(t, loaded.Roots(), 1)
	assert.Equal(t, entity.KindTreasure, loaded.Roots()[0].Kind())
}

func TestEditSession_SeedsFollowWorkspace(t *testing.T) {
	seedAfter := func(seed uint64) uint64 {
		svc := newTestService()
		_, err := svc.Create(entity.KindSystem, seed)
		require.NoError(t, err)
		return svc.editSession().Dice.Seed()
	}

	assert.Equal(t, seedAfter(22), seedAfter(22))
	assert.NotEqual(t, seedAfter(22), seedAfter(23))
	assert.NotZero(t, seedAfter(22))

	svc := newTestService()
	_, err := svc.Create(entity.KindSystem, 22)
	require.NoError(t, err)
	first, second := svc.editSession(), svc.editSession()
	assert.NotEqual(t, first.Dice.Seed(), second.Dice.Seed(), "each edit draws a fresh seed")
}

func TestDecodeDocument_Rejects(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"rootNodes": [`))
	assert.Equal(t, apperrors.ErrorTypeMalformedInput, apperrors.GetType(err))

	_, err = DecodeDocument([]byte(`{"rootNodes": []}`))
	assert.Equal(t, apperrors.ErrorTypeMalformedInput, apperrors.GetType(err))
}

func TestExport(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }

	sys, err := svc.Create(entity.KindSystem, 17)
	require.NoError(t, err)
	_, err = svc.Create(entity.KindShip, 18)
	require.NoError(t, err)

	doc := svc.Export()
	assert.Equal(t, "2025-03-14T09:26:53Z", doc.ExportDate)
	require.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.Nodes[0].Children, 3)

	single, err := svc.ExportNode(sys.Base().ID, false)
	require.NoError(t, err)
	assert.Nil(t, single.Children)
	assert.Equal(t, sys.Base().Name, single.Name)

	_, err = svc.ExportNode(424242, true)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestSetSettings_RebuildsDescriptions(t *testing.T) {
	svc := newTestService()
	sys, err := svc.Create(entity.KindSystem, 19)
	require.NoError(t, err)
	require.Contains(t, sys.Base().Description, markup.PageRefClass)

	hidden := rules.DefaultSettings()
	hidden.ShowReferences = false
	svc.SetSettings(hidden)
	assert.NotContains(t, sys.Base().Description, markup.PageRefClass)
	assert.False(t, svc.Settings().ShowReferences)
}
