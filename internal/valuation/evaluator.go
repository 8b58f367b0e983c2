// Package valuation is the recipe valuation engine: it turns a recipe
// definition plus a price index into a validity determination and the derived
// economic metrics (cost, revenue, profit, throughput, alert status).
package valuation

import (
	"context"
	"fmt"
	"sync"

	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/normalize"
	"github.com/osrs-econ/herbsched/internal/pricing"
)

// Evaluator evaluates recipes against one immutable price index.
type Evaluator struct {
	index  *pricing.Index
	params Params
}

// NewEvaluator creates an evaluator over the given price index with the
// locked production parameters.
func NewEvaluator(index *pricing.Index) *Evaluator {
	return NewEvaluatorWithParams(index, DefaultParams())
}

// NewEvaluatorWithParams creates an evaluator with explicit parameters.
func NewEvaluatorWithParams(index *pricing.Index, params Params) *Evaluator {
	return &Evaluator{index: index, params: params}
}

// Evaluate runs the full validation and valuation pipeline for one recipe.
// Structural reasons are accumulated first; economic computation only happens
// once no reason exists, and any price gap found there appends further
// reasons. Each reason string appears at most once. Invalid recipes keep all
// economic fields absent.
func (e *Evaluator) Evaluate(recipe domain.Recipe) domain.EvaluatedRecipe {
	result := domain.EvaluatedRecipe{
		RecipeName:     recipe.RecipeName,
		OutputItemName: recipe.OutputItemName,
		RecipeType:     recipe.RecipeType,
		GogglesAllowed: recipe.GogglesAllowed,
		InvalidReasons: []string{},
	}

	n, nOK := normalize.Int(recipe.N)
	if nOK {
		result.N = &n
	}
	xpPerCraft, xcOK := normalize.Float(recipe.XPPerCraft)
	if xcOK {
		result.XPPerCraft = &xpPerCraft
	}
	xpPerHour, xhOK := normalize.Float(recipe.XPPerHour)
	if xhOK {
		result.XPPerHour = &xpPerHour
	}

	reasons := &result.InvalidReasons

	if !recipe.BaseMaterialsShapeOK || !recipe.SecondaryMaterialsShapeOK {
		*reasons = append(*reasons, ReasonInvalidMaterialsShape)
	}
	if normalize.IsMissing(recipe.OutputItemName) {
		*reasons = append(*reasons, ReasonMissingOutputItemName)
	}
	if !nOK || n <= 0 {
		*reasons = append(*reasons, ReasonInvalidN)
	}
	if !xcOK || xpPerCraft <= 0 {
		*reasons = append(*reasons, ReasonInvalidXPPerCraft)
	}
	if !xhOK || xpPerHour <= 0 {
		*reasons = append(*reasons, ReasonInvalidXPPerHour)
	}

	// Early price-existence scans. They give explicit missing item names and
	// only run once the structural checks all passed.
	if len(*reasons) == 0 {
		if reason, ok := e.scanMaterials(recipe.BaseMaterials, ReasonMissingBaseMaterialName, ReasonFmtMissingBasePrice); !ok {
			*reasons = append(*reasons, reason)
		}
	}
	if len(*reasons) == 0 {
		if reason, ok := e.scanMaterials(recipe.SecondaryMaterials, ReasonMissingSecondaryMaterialName, ReasonFmtMissingSecondaryPrice); !ok {
			*reasons = append(*reasons, reason)
		}
	}

	if len(*reasons) == 0 {
		e.computeEconomics(recipe, n, xpPerCraft, xpPerHour, &result)
	}

	result.Valid = len(result.InvalidReasons) == 0
	result.IsAlert = result.Valid && result.GPPerHour != nil && result.XPPerHour != nil &&
		*result.GPPerHour > e.params.AlertGPPerHour && *result.XPPerHour > e.params.AlertXPPerHour

	return result
}

// scanMaterials finds the first line with a missing item name, then the first
// line whose lowercased name is absent from the index. Scanning stops at the
// first problem.
func (e *Evaluator) scanMaterials(lines []domain.MaterialLine, missingNameReason, missingPriceFmt string) (string, bool) {
	for _, line := range lines {
		name, ok := normalize.String(line.ItemName)
		if !ok {
			return missingNameReason, false
		}
		if !e.index.Has(name) {
			return fmt.Sprintf(missingPriceFmt, name), false
		}
	}
	return "", true
}

// computeEconomics fills in the monetary fields. Runs only when no structural
// reason exists; XP_per_craft > 0 is already guaranteed so crafts/h cannot
// divide by zero.
func (e *Evaluator) computeEconomics(recipe domain.Recipe, n int, xpPerCraft, xpPerHour float64, result *domain.EvaluatedRecipe) {
	expectedDoses := float64(n) + e.params.AmuletBonusDoses

	baseCost, baseOK := MaterialCost(e.index, recipe.BaseMaterials, n)
	if !baseOK {
		result.InvalidReasons = append(result.InvalidReasons, ReasonMissingBaseMaterialPrices)
	}

	secondaryCost, secOK := MaterialCost(e.index, recipe.SecondaryMaterials, n)
	if !secOK {
		result.InvalidReasons = append(result.InvalidReasons, ReasonMissingSecondaryPrices)
	}

	totalCost := 0.0
	if baseOK && secOK {
		secMult := 1.0
		if recipe.GogglesAllowed {
			secMult = e.params.GogglesSecondaryMult
		}
		totalCost = baseCost + secondaryCost*secMult
	}

	pricePerDose, priceOK := e.index.PricePerDose(recipe.OutputItemName)
	if !priceOK {
		result.InvalidReasons = append(result.InvalidReasons, ReasonMissingOutputPrice)
	}

	if len(result.InvalidReasons) > 0 {
		return
	}

	revenueAfterTax := pricePerDose * expectedDoses * e.params.TaxMultiplier

	profitPerCraft := revenueAfterTax - totalCost
	craftsPerHour := xpPerHour / xpPerCraft
	gpPerHour := profitPerCraft * craftsPerHour

	result.ProfitPerCraft = &profitPerCraft
	result.CraftsPerHour = &craftsPerHour
	result.GPPerHour = &gpPerHour
}

// EvaluateAll evaluates every recipe. Recipes are independent, so evaluation
// fans out across a bounded number of goroutines; results land at their
// catalog position so the output order is deterministic before sorting.
func (e *Evaluator) EvaluateAll(ctx context.Context, recipes []domain.Recipe, workers int) []domain.EvaluatedRecipe {
	results := make([]domain.EvaluatedRecipe, len(recipes))

	if workers <= 1 || len(recipes) <= 1 {
		for i, r := range recipes {
			results[i] = e.Evaluate(r)
		}
		return results
	}

	if workers > len(recipes) {
		workers = len(recipes)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = e.Evaluate(recipes[i])
			}
		}()
	}

	for i := range recipes {
		select {
		case indexes <- i:
		case <-ctx.Done():
			// Leave the remaining entries zero-valued; the caller aborts the
			// run on context cancellation anyway.
			close(indexes)
			wg.Wait()
			return results
		}
	}
	close(indexes)
	wg.Wait()

	return results
}
