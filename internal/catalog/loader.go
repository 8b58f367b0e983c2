// Package catalog loads the recipe catalog from disk. Loading is the only
// per-recipe-tolerance boundary in the system: a malformed top-level document
// is fatal, but a malformed individual recipe field just gets carried along
// raw and turns into an invalidity reason during valuation.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/normalize"
)

// Sentinel errors for catalog loading
var (
	ErrCatalogNotFound = errors.New("recipe catalog not found")
	ErrInvalidCatalog  = errors.New("invalid recipe catalog")
)

// excludedRecipeName is stripped from the catalog before any evaluation.
// Surge potions have no GE-tradeable output, so their rows only pollute the
// tables.
const excludedRecipeName = "surge potion"

// rawRecipe mirrors the catalog JSON with the materials lists left undecoded
// so a wrong-shaped list can be recorded instead of failing the whole load.
type rawRecipe struct {
	RecipeName         any             `json:"RecipeName"`
	OutputItemName     any             `json:"OutputItemName"`
	RecipeType         any             `json:"RecipeType"`
	N                  any             `json:"N"`
	GogglesAllowed     bool            `json:"GogglesAllowed"`
	XPPerCraft         any             `json:"XP_per_craft"`
	XPPerHour          any             `json:"XP_per_hour"`
	BaseMaterials      json.RawMessage `json:"BaseMaterials"`
	SecondaryMaterials json.RawMessage `json:"SecondaryMaterials"`
}

type rawCatalog struct {
	Recipes json.RawMessage `json:"recipes"`
}

// Load reads the recipe catalog file, verifies the top-level shape and
// returns the recipes with the excluded entries already filtered out.
func Load(path string) ([]domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("failed to read recipe catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog bytes. A missing or non-array top-level "recipes" key
// is a fatal load error.
func Parse(data []byte) ([]domain.Recipe, error) {
	var cat rawCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if len(cat.Recipes) == 0 || string(cat.Recipes) == "null" {
		return nil, fmt.Errorf("%w: missing top-level key: recipes[]", ErrInvalidCatalog)
	}

	var raws []rawRecipe
	if err := json.Unmarshal(cat.Recipes, &raws); err != nil {
		return nil, fmt.Errorf("%w: recipes must be an array: %v", ErrInvalidCatalog, err)
	}

	recipes := make([]domain.Recipe, 0, len(raws))
	for _, raw := range raws {
		recipe := convert(raw)
		if strings.EqualFold(strings.TrimSpace(recipe.RecipeName), excludedRecipeName) {
			continue
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func convert(raw rawRecipe) domain.Recipe {
	recipe := domain.Recipe{
		RecipeName:     coerceString(raw.RecipeName),
		OutputItemName: coerceName(raw.OutputItemName),
		RecipeType:     coerceString(raw.RecipeType),
		N:              raw.N,
		GogglesAllowed: raw.GogglesAllowed,
		XPPerCraft:     raw.XPPerCraft,
		XPPerHour:      raw.XPPerHour,
	}

	recipe.BaseMaterials, recipe.BaseMaterialsShapeOK = decodeMaterials(raw.BaseMaterials)
	recipe.SecondaryMaterials, recipe.SecondaryMaterialsShapeOK = decodeMaterials(raw.SecondaryMaterials)

	return recipe
}

// decodeMaterials accepts an absent or null field as an empty list; anything
// that is not a JSON array is a shape problem reported through the ok flag.
func decodeMaterials(raw json.RawMessage) ([]domain.MaterialLine, bool) {
	if len(raw) == 0 {
		return []domain.MaterialLine{}, true
	}

	var lines []domain.MaterialLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, false
	}
	if lines == nil {
		lines = []domain.MaterialLine{}
	}
	return lines, true
}

// coerceString renders whatever the catalog holds as a display string.
func coerceString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// coerceName maps a null name to the explicit missing-marker so the evaluator
// reports "Missing OutputItemName" rather than a price gap.
func coerceName(v any) string {
	if v == nil {
		return normalize.MarkerMissing
	}
	return coerceString(v)
}
