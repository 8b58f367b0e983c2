package valuation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/pricing"
)

func testIndex(prices map[string]float64) *pricing.Index {
	idx := pricing.NewIndex()
	for name, price := range prices {
		idx.Set(name, price)
	}
	return idx
}

func validRecipe() domain.Recipe {
	return domain.Recipe{
		RecipeName:     "Super attack",
		OutputItemName: "Super attack(4)",
		RecipeType:     "potion",
		N:              4.0,
		XPPerCraft:     50.0,
		XPPerHour:      2000.0,
		BaseMaterials: []domain.MaterialLine{
			{ItemName: "Irit leaf", Quantity: 4.0},
		},
		SecondaryMaterials: []domain.MaterialLine{
			{ItemName: "Eye of newt", Quantity: 4.0},
		},
		BaseMaterialsShapeOK:      true,
		SecondaryMaterialsShapeOK: true,
	}
}

// Prices chosen so base cost totals 400, secondary cost totals 100 and the
// output sells for 50/dose. With N=4, XP 50/craft and 2000/h this is the
// worked example: expectedDoses 4.15, revenue 207.5 -> 203.35 after tax,
// total cost 500, profit -296.65/craft, 40 crafts/h, gp/h -11866.
func exampleIndex() *pricing.Index {
	return testIndex(map[string]float64{
		"Irit leaf":       100, // 4x -> 400
		"Eye of newt":     25,  // 4x -> 100
		"Super attack(4)": 200, // 50 per dose
	})
}

func TestEvaluateWorkedExample(t *testing.T) {
	e := NewEvaluator(exampleIndex())
	result := e.Evaluate(validRecipe())

	require.True(t, result.Valid, "reasons: %v", result.InvalidReasons)
	assert.Empty(t, result.InvalidReasons)

	require.NotNil(t, result.ProfitPerCraft)
	require.NotNil(t, result.CraftsPerHour)
	require.NotNil(t, result.GPPerHour)

	assert.InDelta(t, -296.65, *result.ProfitPerCraft, 1e-9)
	assert.InDelta(t, 40.0, *result.CraftsPerHour, 1e-9)
	assert.InDelta(t, -11866.0, *result.GPPerHour, 1e-9)

	// Huge loss, so no alert.
	assert.False(t, result.IsAlert)
}

func TestEvaluateDoseScaledMaterial(t *testing.T) {
	// A dose-scaled line with price-per-unit(4)=200, N=3, qty=2 contributes
	// (200/4)*3*2 = 300, independent of any direct per-unit price.
	idx := testIndex(map[string]float64{
		"Armadyl brew(4)": 200,
		"Output pot(4)":   0.0001,
	})
	recipe := domain.Recipe{
		RecipeName:     "Dose scaled",
		OutputItemName: "Output pot(4)",
		N:              3.0,
		XPPerCraft:     10.0,
		XPPerHour:      100.0,
		BaseMaterials: []domain.MaterialLine{
			{ItemName: "Armadyl brew(4)", Quantity: 2.0, IsDoseScaledFromFour: true},
		},
		SecondaryMaterials:        []domain.MaterialLine{},
		BaseMaterialsShapeOK:      true,
		SecondaryMaterialsShapeOK: true,
	}

	cost, ok := MaterialCost(idx, recipe.BaseMaterials, 3)
	require.True(t, ok)
	assert.InDelta(t, 300.0, cost, 1e-9)

	// The legacy alias field behaves identically.
	recipe.BaseMaterials[0].IsDoseScaledFromFour = false
	recipe.BaseMaterials[0].DoseScaledFromFourPerDose = true
	cost, ok = MaterialCost(idx, recipe.BaseMaterials, 3)
	require.True(t, ok)
	assert.InDelta(t, 300.0, cost, 1e-9)
}

func TestEvaluateStructuralReasons(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*domain.Recipe)
		wantReason string
	}{
		{
			"bad materials shape",
			func(r *domain.Recipe) { r.BaseMaterialsShapeOK = false },
			ReasonInvalidMaterialsShape,
		},
		{
			"missing output name",
			func(r *domain.Recipe) { r.OutputItemName = "__MISSING__" },
			ReasonMissingOutputItemName,
		},
		{
			"missing N",
			func(r *domain.Recipe) { r.N = nil },
			ReasonInvalidN,
		},
		{
			"zero N",
			func(r *domain.Recipe) { r.N = 0.0 },
			ReasonInvalidN,
		},
		{
			"unparsable N",
			func(r *domain.Recipe) { r.N = "four" },
			ReasonInvalidN,
		},
		{
			"missing xp per craft",
			func(r *domain.Recipe) { r.XPPerCraft = "__OCR_UNCERTAIN__50" },
			ReasonInvalidXPPerCraft,
		},
		{
			"negative xp per hour",
			func(r *domain.Recipe) { r.XPPerHour = -5.0 },
			ReasonInvalidXPPerHour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := validRecipe()
			tt.mutate(&recipe)

			result := NewEvaluator(exampleIndex()).Evaluate(recipe)

			assert.False(t, result.Valid)
			assert.Contains(t, result.InvalidReasons, tt.wantReason)

			// Invalid means absent economic fields, never zero.
			assert.Nil(t, result.ProfitPerCraft)
			assert.Nil(t, result.CraftsPerHour)
			assert.Nil(t, result.GPPerHour)
			assert.False(t, result.IsAlert)
		})
	}
}

func TestEvaluateNoDuplicateReasons(t *testing.T) {
	recipe := validRecipe()
	recipe.N = nil
	recipe.XPPerCraft = nil
	recipe.XPPerHour = nil
	recipe.OutputItemName = "__MISSING__"
	recipe.BaseMaterialsShapeOK = false

	result := NewEvaluator(exampleIndex()).Evaluate(recipe)

	seen := make(map[string]int)
	for _, reason := range result.InvalidReasons {
		seen[reason]++
	}
	for reason, count := range seen {
		assert.Equal(t, 1, count, "duplicate reason: %s", reason)
	}
	assert.Len(t, result.InvalidReasons, 5)
}

func TestEvaluateMaterialScans(t *testing.T) {
	t.Run("missing base material name", func(t *testing.T) {
		recipe := validRecipe()
		recipe.BaseMaterials = []domain.MaterialLine{
			{ItemName: "__MISSING__", Quantity: 1.0},
			{ItemName: "Unpriced thing", Quantity: 1.0},
		}
		result := NewEvaluator(exampleIndex()).Evaluate(recipe)

		// Scanning stops at the first problem.
		assert.Equal(t, []string{ReasonMissingBaseMaterialName}, result.InvalidReasons)
	})

	t.Run("missing base material price names the item", func(t *testing.T) {
		recipe := validRecipe()
		recipe.BaseMaterials = []domain.MaterialLine{
			{ItemName: "Dragon scale dust", Quantity: 1.0},
		}
		result := NewEvaluator(exampleIndex()).Evaluate(recipe)

		assert.Equal(t, []string{fmt.Sprintf(ReasonFmtMissingBasePrice, "Dragon scale dust")}, result.InvalidReasons)
	})

	t.Run("secondary scan runs only when base scan passes", func(t *testing.T) {
		recipe := validRecipe()
		recipe.SecondaryMaterials = []domain.MaterialLine{
			{ItemName: "__MISSING__", Quantity: 1.0},
		}
		result := NewEvaluator(exampleIndex()).Evaluate(recipe)
		assert.Equal(t, []string{ReasonMissingSecondaryMaterialName}, result.InvalidReasons)

		recipe.BaseMaterials = []domain.MaterialLine{
			{ItemName: "Nothing priced", Quantity: 1.0},
		}
		result = NewEvaluator(exampleIndex()).Evaluate(recipe)
		assert.Equal(t, []string{fmt.Sprintf(ReasonFmtMissingBasePrice, "Nothing priced")}, result.InvalidReasons)
	})

	t.Run("structural reason suppresses scans", func(t *testing.T) {
		recipe := validRecipe()
		recipe.N = nil
		recipe.BaseMaterials = []domain.MaterialLine{
			{ItemName: "Unpriced", Quantity: 1.0},
		}
		result := NewEvaluator(exampleIndex()).Evaluate(recipe)
		assert.Equal(t, []string{ReasonInvalidN}, result.InvalidReasons)
	})
}

func TestEvaluateUnparsableQuantity(t *testing.T) {
	// The price scans pass (the item is indexed) but cost computation still
	// fails on the quantity, surfacing the aggregate reason.
	recipe := validRecipe()
	recipe.BaseMaterials = []domain.MaterialLine{
		{ItemName: "Irit leaf", Quantity: "lots"},
	}
	result := NewEvaluator(exampleIndex()).Evaluate(recipe)

	assert.False(t, result.Valid)
	assert.Contains(t, result.InvalidReasons, ReasonMissingBaseMaterialPrices)
	assert.Nil(t, result.GPPerHour)
}

func TestEvaluateMissingOutputPrice(t *testing.T) {
	idx := testIndex(map[string]float64{
		"Irit leaf":   100,
		"Eye of newt": 25,
	})
	result := NewEvaluator(idx).Evaluate(validRecipe())

	assert.False(t, result.Valid)
	assert.Contains(t, result.InvalidReasons, ReasonMissingOutputPrice)
	assert.Nil(t, result.ProfitPerCraft)
}

func TestEvaluateGogglesMultiplier(t *testing.T) {
	base := NewEvaluator(exampleIndex()).Evaluate(validRecipe())

	withGoggles := validRecipe()
	withGoggles.GogglesAllowed = true
	goggled := NewEvaluator(exampleIndex()).Evaluate(withGoggles)

	require.NotNil(t, base.ProfitPerCraft)
	require.NotNil(t, goggled.ProfitPerCraft)

	// Goggles cut secondary cost (100) by 10%, so profit improves by 10.
	assert.InDelta(t, *base.ProfitPerCraft+10.0, *goggled.ProfitPerCraft, 1e-9)
}

func TestEvaluateAlertThresholds(t *testing.T) {
	// Threshold overrides keep the fixture numbers small.
	params := DefaultParams()
	params.AlertGPPerHour = 100
	params.AlertXPPerHour = 1500

	t.Run("both thresholds exceeded", func(t *testing.T) {
		idx := testIndex(map[string]float64{
			"Irit leaf":       1,
			"Eye of newt":     1,
			"Super attack(4)": 400,
		})
		result := NewEvaluatorWithParams(idx, params).Evaluate(validRecipe())
		require.True(t, result.Valid)
		require.NotNil(t, result.GPPerHour)
		require.Greater(t, *result.GPPerHour, params.AlertGPPerHour)
		assert.True(t, result.IsAlert)
	})

	t.Run("gp threshold alone is not enough", func(t *testing.T) {
		lowXP := params
		lowXP.AlertXPPerHour = 2500 // recipe has 2000 xp/h
		idx := testIndex(map[string]float64{
			"Irit leaf":       1,
			"Eye of newt":     1,
			"Super attack(4)": 400,
		})
		result := NewEvaluatorWithParams(idx, lowXP).Evaluate(validRecipe())
		require.True(t, result.Valid)
		assert.False(t, result.IsAlert)
	})

	t.Run("xp threshold alone is not enough", func(t *testing.T) {
		result := NewEvaluatorWithParams(exampleIndex(), params).Evaluate(validRecipe())
		require.True(t, result.Valid)
		assert.False(t, result.IsAlert, "negative gp/h must never alert")
	})
}

func TestEvaluateAllDeterministicOrder(t *testing.T) {
	recipes := make([]domain.Recipe, 20)
	for i := range recipes {
		r := validRecipe()
		r.RecipeName = fmt.Sprintf("Recipe %02d", i)
		recipes[i] = r
	}

	e := NewEvaluator(exampleIndex())
	sequential := e.EvaluateAll(context.Background(), recipes, 1)
	concurrent := e.EvaluateAll(context.Background(), recipes, 8)

	require.Len(t, concurrent, len(recipes))
	assert.Equal(t, sequential, concurrent)
	for i, r := range concurrent {
		assert.Equal(t, fmt.Sprintf("Recipe %02d", i), r.RecipeName)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	e := NewEvaluator(exampleIndex())
	first := e.Evaluate(validRecipe())
	second := e.Evaluate(validRecipe())
	assert.Equal(t, first, second)
}
