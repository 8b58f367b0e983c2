package domain

// EvaluatedRecipe carries a recipe's descriptive fields plus everything the
// valuation derived from the price snapshot. The economic fields are pointers:
// nil means "could not be computed", which is distinct from zero profit. A
// recipe with any InvalidReasons has all of them nil.
type EvaluatedRecipe struct {
	RecipeName     string   `json:"RecipeName"`
	OutputItemName string   `json:"OutputItemName"`
	RecipeType     string   `json:"RecipeType"`
	N              *int     `json:"N"`
	XPPerCraft     *float64 `json:"XP_per_craft"`
	XPPerHour      *float64 `json:"XP_per_hour"`
	GogglesAllowed bool     `json:"GogglesAllowed"`

	CraftsPerHour  *float64 `json:"crafts_per_hour"`
	ProfitPerCraft *float64 `json:"profit_per_craft"`
	GPPerHour      *float64 `json:"gp_per_hour"`

	Valid          bool     `json:"valid"`
	InvalidReasons []string `json:"invalid_reasons"`
	IsAlert        bool     `json:"is_alert"`
}

// RunReport is the full result of one scheduling run. TableA holds every
// catalog recipe sorted by gp/h descending with invalid recipes at the bottom;
// TableB is the alert subset in TableA order.
type RunReport struct {
	TimestampUTC string            `json:"timestamp_utc"`
	PriceSource  string            `json:"price_source"`
	TableA       []EvaluatedRecipe `json:"table_a"`
	TableB       []EvaluatedRecipe `json:"table_b"`
}

// InvalidRecipes returns the TableA entries that failed validation, in table
// order.
func (r *RunReport) InvalidRecipes() []EvaluatedRecipe {
	var out []EvaluatedRecipe
	for _, rec := range r.TableA {
		if !rec.Valid {
			out = append(out, rec)
		}
	}
	return out
}
