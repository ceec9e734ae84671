package model

// SeverityFactors holds the five severity inputs (P, I, A, T, C) in their
// valid ranges. It standardizes what the scoring rules consume; it does not
// compute anything itself.
type SeverityFactors struct {
	Population    int64   // P: people affected, >= 0
	InfraDamage   int     // I: infrastructure damage 0-100
	Accessibility int     // A: accessibility difficulty 0-100
	SpreadRate    float64 // T: spread rate, >= 0, category-dependent unit
	CascadingRisk int     // C: cascading risk 0-100
}

// NewSeverityFactors clamps each input into its valid range.
func NewSeverityFactors(population int64, infra, accessibility int, spread float64, cascading int) SeverityFactors {
	if population < 0 {
		population = 0
	}
	if spread < 0 {
		spread = 0
	}
	return SeverityFactors{
		Population:    population,
		InfraDamage:   ClampPercent(infra),
		Accessibility: ClampPercent(accessibility),
		SpreadRate:    spread,
		CascadingRisk: ClampPercent(cascading),
	}
}

// ClampPercent forces v into the inclusive range [0, 100].
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
