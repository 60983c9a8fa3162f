package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecosnap/ecosnap/internal/domain/valueobject"
)

func TestImpactRating_FromCO2(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.ImpactRating
		co2      float64
	}{
		{name: "zero is Low/Moderate", expected: valueobject.ImpactRatingLowModerate, co2: 0},
		{name: "9.99 is Low/Moderate", expected: valueobject.ImpactRatingLowModerate, co2: 9.99},
		{name: "exactly 10 is Low/Moderate", expected: valueobject.ImpactRatingLowModerate, co2: 10},
		{name: "10.01 is High", expected: valueobject.ImpactRatingHigh, co2: 10.01},
		{name: "25 is High", expected: valueobject.ImpactRatingHigh, co2: 25},
		{name: "negative is Low/Moderate", expected: valueobject.ImpactRatingLowModerate, co2: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.ImpactRatingFromCO2(tt.co2, valueobject.DefaultImpactThreshold)
			assert.Equal(t, tt.expected, result,
				"expected %s for co2 %v, got %s", tt.expected, tt.co2, result)
		})
	}
}

func TestImpactRating_CustomThreshold(t *testing.T) {
	assert.Equal(t, valueobject.ImpactRatingHigh, valueobject.ImpactRatingFromCO2(5.5, 5))
	assert.Equal(t, valueobject.ImpactRatingLowModerate, valueobject.ImpactRatingFromCO2(5.5, 6))
}

func TestImpactRating_String(t *testing.T) {
	assert.Equal(t, "High", valueobject.ImpactRatingHigh.String())
	assert.Equal(t, "Low/Moderate", valueobject.ImpactRatingLowModerate.String())
}
