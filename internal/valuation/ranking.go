package valuation

import (
	"math"
	"sort"

	"github.com/osrs-econ/herbsched/internal/domain"
)

// sortKey is gp/h for valid recipes and negative infinity otherwise, which
// places every invalid recipe after every valid one regardless of its fields.
func sortKey(r domain.EvaluatedRecipe) float64 {
	if r.Valid && r.GPPerHour != nil {
		return *r.GPPerHour
	}
	return math.Inf(-1)
}

// SortTableA sorts evaluated recipes in place: valid recipes by gp/h
// descending, invalid recipes at the bottom keeping their relative catalog
// order (stable sort).
func SortTableA(recipes []domain.EvaluatedRecipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return sortKey(recipes[i]) > sortKey(recipes[j])
	})
}

// FilterAlerts returns the alert subset of a sorted Table A, preserving its
// order. Alert-eligible recipes are necessarily valid, so the subset is
// already gp/h descending.
func FilterAlerts(tableA []domain.EvaluatedRecipe) []domain.EvaluatedRecipe {
	alerts := make([]domain.EvaluatedRecipe, 0)
	for _, r := range tableA {
		if r.IsAlert {
			alerts = append(alerts, r)
		}
	}
	return alerts
}
