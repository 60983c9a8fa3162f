package valueobject

// DefaultImpactThreshold is the CO2-per-kg value above which a material is
// rated "High".
const DefaultImpactThreshold = 10.0

// ImpactRating is the qualitative label derived from predicted CO2 emissions.
type ImpactRating struct {
	value string
}

var (
	ImpactRatingHigh        = ImpactRating{value: "High"}
	ImpactRatingLowModerate = ImpactRating{value: "Low/Moderate"}
)

// ImpactRatingFromCO2 rates emissions strictly above threshold as High.
func ImpactRatingFromCO2(co2PerKg, threshold float64) ImpactRating {
	if co2PerKg > threshold {
		return ImpactRatingHigh
	}
	return ImpactRatingLowModerate
}

// String returns the label.
func (r ImpactRating) String() string {
	return r.value
}
