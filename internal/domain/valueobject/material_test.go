package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecosnap/ecosnap/internal/domain/valueobject"
)

func TestNormalizeMaterial(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{" plastic ", "Plastic"},
		{"GLASS", "Glass"},
		{"mixed Paper", "Mixed Paper"},
		{"Plastic", "Plastic"},
		{"\taluminium\n", "Aluminium"},
		{"", ""},
		{"   ", ""},
		{"stainless STEEL", "Stainless Steel"},
		{"o'neil", "O'Neil"},
		{"it's", "It'S"},
		{"e-waste", "E-Waste"},
		{"cardboard/paper", "Cardboard/Paper"},
		{"PET1", "Pet1"},
		{"123abc", "123Abc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, valueobject.NormalizeMaterial(tt.input))
		})
	}
}

func TestNormalizeMaterial_Idempotent(t *testing.T) {
	inputs := []string{
		" plastic ", "GLASS", "mixed Paper", "", "  ", "e-waste", "o'neil",
		"ÉCORCE de bois", "123abc", "''tin''", "card-board BOX", "ñandú", "a  b",
	}

	for _, in := range inputs {
		once := valueobject.NormalizeMaterial(in)
		twice := valueobject.NormalizeMaterial(once)
		assert.Equal(t, once, twice, "normalization not idempotent for %q", in)
	}
}

func TestNewMaterial(t *testing.T) {
	m := valueobject.NewMaterial("  recycled glass ")

	assert.Equal(t, "  recycled glass ", m.Raw())
	assert.Equal(t, "Recycled Glass", m.Normalized())
	assert.Equal(t, "Recycled Glass", m.String())
}
