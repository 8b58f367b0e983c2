package domain

// MaterialLine represents a single material requirement for a recipe.
// ItemName and Quantity come straight from the catalog JSON and may carry
// missing-markers or numeric strings; normalization happens at evaluation time.
type MaterialLine struct {
	ItemName any `json:"ItemName"`
	Quantity any `json:"Quantity"`

	// IsDoseScaledFromFour marks a base potion consumed proportionally to N:
	// its cost is (Price(item(4))/4) * N * qty rather than Price(item) * qty.
	IsDoseScaledFromFour bool `json:"IsDoseScaledFromFour,omitempty"`

	// DoseScaledFromFourPerDose is a legacy alias for IsDoseScaledFromFour
	// still present in older catalog entries.
	DoseScaledFromFourPerDose bool `json:"DoseScaledFromFourPerDose,omitempty"`
}

// DoseScaled reports whether the line uses dose-scaled cost, honoring the
// legacy field name.
func (m MaterialLine) DoseScaled() bool {
	return m.IsDoseScaledFromFour || m.DoseScaledFromFourPerDose
}

// Recipe represents one Herblore recipe from the catalog. Numeric fields are
// kept raw (any-typed) because OCR-sourced catalogs mix numbers, numeric
// strings and missing-markers.
type Recipe struct {
	RecipeName     string `json:"RecipeName"`
	OutputItemName string `json:"OutputItemName"`
	RecipeType     string `json:"RecipeType"`
	N              any    `json:"N"`
	GogglesAllowed bool   `json:"GogglesAllowed"`
	XPPerCraft     any    `json:"XP_per_craft"`
	XPPerHour      any    `json:"XP_per_hour"`

	BaseMaterials      []MaterialLine `json:"BaseMaterials"`
	SecondaryMaterials []MaterialLine `json:"SecondaryMaterials"`

	// BaseMaterialsShapeOK / SecondaryMaterialsShapeOK record whether the
	// corresponding catalog field decoded as a proper list. The evaluator
	// turns a false here into an invalidity reason instead of a load error.
	BaseMaterialsShapeOK      bool `json:"-"`
	SecondaryMaterialsShapeOK bool `json:"-"`
}
