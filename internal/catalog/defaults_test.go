package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questdeck/internal/engine"
)

func TestDefaultRequirements_ReferenceCatalogedTypes(t *testing.T) {
	snap := Defaults()

	for typeID, reqs := range snap.Requirements() {
		_, ok := snap.TypeByID(typeID)
		assert.True(t, ok, "requirement references unknown type %s", typeID)
		for _, r := range reqs {
			assert.Equal(t, typeID, r.TypeID)
			assert.NotEmpty(t, r.Feature)
			assert.NotEmpty(t, r.Operator)
		}
	}
}

func TestDefaultTypes_AreRecognizedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, qt := range DefaultTypes() {
		assert.False(t, seen[qt.TypeID], "duplicate type id %s", qt.TypeID)
		seen[qt.TypeID] = true
		assert.True(t, qt.Category.Recognized(), "unrecognized category %q on %s", qt.Category, qt.TypeID)
		assert.Greater(t, qt.Priority, 0)
	}
}

func TestDefaultTypes_MandatoryTypesHaveNoRequirements(t *testing.T) {
	snap := Defaults()

	for _, id := range []string{engine.TypeMainIdea, engine.TypeDetail} {
		_, ok := snap.TypeByID(id)
		require.True(t, ok, "catalog missing %s", id)
		assert.Empty(t, snap.Requirements()[id], "%s must be unconditionally eligible", id)
	}
}

func TestSnapshot_Accessors(t *testing.T) {
	types := DefaultTypes()
	reqs := DefaultRequirements()
	snap := NewSnapshot(types, reqs, SourceStore)

	assert.Equal(t, SourceStore, snap.Source())
	assert.False(t, snap.LoadedAt().IsZero())
	assert.Len(t, snap.Types(), len(types))

	_, ok := snap.TypeByID("no_such_type")
	assert.False(t, ok)
}

func TestDefaultPassages_FeaturesSatisfySomeRules(t *testing.T) {
	snap := Defaults()

	for _, p := range DefaultPassages() {
		require.NotEmpty(t, p.TextID)
		require.NotEmpty(t, p.Features)

		eligibility := engine.CalculateEligibility(snap.Types(), snap.Requirements(), p.Features, false)
		assert.True(t, eligibility[engine.TypeMainIdea])
		assert.True(t, eligibility[engine.TypeDetail])
	}
}
