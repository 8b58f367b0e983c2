package valuation

// Locked engine constants. The GE always takes its cut and the amulet bonus
// always applies; neither is configurable in-game.
const (
	GETax                = 0.02
	TaxMultiplier        = 1.0 - GETax
	AmuletBonusDoses     = 0.15
	GogglesSecondaryMult = 0.9
)

// Alert thresholds. Both must hold for a recipe to alert.
const (
	AlertGPPerHour = 3_000_000
	AlertXPPerHour = 250_000
)

// Invalidity reason messages
const (
	ReasonInvalidMaterialsShape        = "Invalid materials list shape"
	ReasonMissingOutputItemName        = "Missing OutputItemName"
	ReasonInvalidN                     = "Missing/invalid N"
	ReasonInvalidXPPerCraft            = "Missing/invalid XP_per_craft"
	ReasonInvalidXPPerHour             = "Missing/invalid XP_per_hour"
	ReasonMissingBaseMaterialName      = "Missing base material ItemName"
	ReasonMissingSecondaryMaterialName = "Missing secondary material ItemName"
	ReasonMissingBaseMaterialPrices    = "Missing price for base materials"
	ReasonMissingSecondaryPrices       = "Missing price for secondary materials"
	ReasonMissingOutputPrice           = "Missing price for output item"
)

// Formatted invalidity reason messages
const (
	ReasonFmtMissingBasePrice      = "Missing price for base material: '%s'"
	ReasonFmtMissingSecondaryPrice = "Missing price for secondary material: '%s'"
)
