package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
	"recipes": [
		{
			"RecipeName": "Super attack",
			"OutputItemName": "Super attack(4)",
			"RecipeType": "potion",
			"N": 4,
			"GogglesAllowed": true,
			"XP_per_craft": 50,
			"XP_per_hour": "2,000",
			"BaseMaterials": [{"ItemName": "Irit leaf", "Quantity": 4}],
			"SecondaryMaterials": [{"ItemName": "Eye of newt", "Quantity": 4}]
		},
		{
			"RecipeName": "  SURGE POTION  ",
			"OutputItemName": "Surge potion(4)",
			"N": 4,
			"XP_per_craft": 100,
			"XP_per_hour": 1000
		},
		{
			"RecipeName": "Odd one",
			"OutputItemName": null,
			"N": "__MISSING__",
			"XP_per_craft": 10,
			"XP_per_hour": 100,
			"BaseMaterials": {"not": "a list"}
		}
	]
}`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RecipeCatalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	recipes, err := Load(path)
	require.NoError(t, err)

	// Surge potion is excluded regardless of case and whitespace.
	require.Len(t, recipes, 2)
	for _, r := range recipes {
		assert.NotEqual(t, "surge potion", strings.ToLower(strings.TrimSpace(r.RecipeName)))
	}

	first := recipes[0]
	assert.Equal(t, "Super attack", first.RecipeName)
	assert.Equal(t, "Super attack(4)", first.OutputItemName)
	assert.True(t, first.GogglesAllowed)
	assert.Equal(t, "2,000", first.XPPerHour) // raw until normalization
	assert.True(t, first.BaseMaterialsShapeOK)
	require.Len(t, first.BaseMaterials, 1)
	assert.Equal(t, "Irit leaf", first.BaseMaterials[0].ItemName)
	assert.Equal(t, 4.0, first.BaseMaterials[0].Quantity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestParseFatalShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "garbage"},
		{"missing recipes key", `{"other": []}`},
		{"null recipes key", `{"recipes": null}`},
		{"recipes not an array", `{"recipes": {"a": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParseLenientPerRecipeShapes(t *testing.T) {
	recipes, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	odd := recipes[1]
	assert.Equal(t, "Odd one", odd.RecipeName)

	// A wrong-shaped materials field is not fatal; it is recorded for the
	// evaluator to turn into an invalidity reason.
	assert.False(t, odd.BaseMaterialsShapeOK)
	assert.True(t, odd.SecondaryMaterialsShapeOK)
	assert.Empty(t, odd.SecondaryMaterials)

	// A null output name surfaces as an explicit missing-marker.
	assert.Equal(t, "__MISSING__", odd.OutputItemName)
	assert.Equal(t, "__MISSING__", odd.N)
}

func TestParseAbsentMaterialsAreEmptyLists(t *testing.T) {
	recipes, err := Parse([]byte(`{"recipes": [{"RecipeName": "Bare", "OutputItemName": "X(4)", "N": 1, "XP_per_craft": 1, "XP_per_hour": 1}]}`))
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	assert.True(t, recipes[0].BaseMaterialsShapeOK)
	assert.True(t, recipes[0].SecondaryMaterialsShapeOK)
	assert.Empty(t, recipes[0].BaseMaterials)
}
