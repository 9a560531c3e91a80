package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoflow/quote-go/internal/domain/catalog"
)

func TestProfileForIsTotal(t *testing.T) {
	known := catalog.ProfileFor(catalog.CategoryConsole)
	assert.Equal(t, catalog.CategoryConsole, known.Category)
	assert.InDelta(t, 4.5, known.Weights.Typical, 1e-9)

	unknown := catalog.ProfileFor(catalog.Category("spaceship"))
	assert.Equal(t, catalog.CategoryDefault, unknown.Category)
}

func TestProfilesAreWellFormed(t *testing.T) {
	profiles := catalog.Profiles()
	require.NotEmpty(t, profiles)

	for _, p := range profiles {
		assert.NotEmpty(t, p.Keywords, "category %s", p.Category)
		assert.Greater(t, p.Weights.Min, 0.0, "category %s", p.Category)
		assert.GreaterOrEqual(t, p.Weights.Typical, p.Weights.Min, "category %s", p.Category)
		assert.GreaterOrEqual(t, p.Weights.Max, p.Weights.Typical, "category %s", p.Category)
		assert.False(t, p.Dimensions.IsEmpty(), "category %s", p.Category)
	}
}

func TestProfilesOrderIsStable(t *testing.T) {
	first := catalog.Profiles()
	second := catalog.Profiles()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category)
	}
}

func TestDefaultProfile(t *testing.T) {
	def := catalog.Default()
	assert.Equal(t, catalog.CategoryDefault, def.Category)
	assert.Empty(t, def.Keywords)
}
