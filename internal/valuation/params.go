package valuation

// Params holds the engine constants as injectable configuration so tests can
// override thresholds without touching logic.
type Params struct {
	TaxMultiplier        float64
	AmuletBonusDoses     float64
	GogglesSecondaryMult float64
	AlertGPPerHour       float64
	AlertXPPerHour       float64
}

// DefaultParams returns the locked production constants.
func DefaultParams() Params {
	return Params{
		TaxMultiplier:        TaxMultiplier,
		AmuletBonusDoses:     AmuletBonusDoses,
		GogglesSecondaryMult: GogglesSecondaryMult,
		AlertGPPerHour:       AlertGPPerHour,
		AlertXPPerHour:       AlertXPPerHour,
	}
}
