package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosnap/ecosnap/internal/domain/model"
	"github.com/ecosnap/ecosnap/internal/infrastructure/dataset"
	"github.com/ecosnap/ecosnap/pkg/observability"
)

const validCSV = `Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score
Plastic,6.0,0.3,35
Glass, 0.85 ,0.75,70
Aluminium,11.5,0.9,55
`

func TestCSVReader_Parse(t *testing.T) {
	reader := dataset.NewCSVReader(observability.Discard())

	samples, err := reader.Parse(context.Background(), strings.NewReader(validCSV))

	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, model.TrainingSample{Material: "Plastic", Targets: []float64{6.0, 0.3, 35}}, samples[0])
	assert.Equal(t, []float64{0.85, 0.75, 70}, samples[1].Targets)
}

func TestCSVReader_ParseReorderedColumns(t *testing.T) {
	reader := dataset.NewCSVReader(observability.Discard())
	src := "\ufeffTotal_Sustainability_Score,Recyclability_Score,Notes,Material,CO2_per_kg\n" +
		"35,0.3,bottle,Plastic,6\n"

	samples, err := reader.Parse(context.Background(), strings.NewReader(src))

	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "Plastic", samples[0].Material)
	assert.Equal(t, []float64{6, 0.3, 35}, samples[0].Targets)
}

func TestCSVReader_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"empty input", "", "no rows"},
		{"header only", "Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score\n", "no rows"},
		{"missing column", "Material,CO2_per_kg\nPlastic,6\n", "missing required columns: Recyclability_Score, Total_Sustainability_Score"},
		{"bad number", "Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score\nPlastic,six,0.3,35\n", `line 2, column CO2_per_kg: invalid number "six"`},
		{"NaN target", "Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score\nPlastic,NaN,0.3,35\n", `line 2, column CO2_per_kg: non-finite number "NaN"`},
		{"infinite target", "Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score\nPlastic,6,0.3,-Inf\n", `line 2, column Total_Sustainability_Score: non-finite number "-Inf"`},
		{"overflowing target", "Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score\nPlastic,6,1e400,35\n", `line 2, column Recyclability_Score: invalid number "1e400"`},
		{"ragged row", "Material,CO2_per_kg,Recyclability_Score,Total_Sustainability_Score\nPlastic,6\n", "read row"},
	}

	reader := dataset.NewCSVReader(observability.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.Parse(context.Background(), strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCSVReader_Read(t *testing.T) {
	reader := dataset.NewCSVReader(observability.Discard())
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "sustainability_dataset.csv")
		require.NoError(t, os.WriteFile(path, []byte(validCSV), 0o644))

		samples, err := reader.Read(context.Background(), path)
		require.NoError(t, err)
		assert.Len(t, samples, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := reader.Read(context.Background(), filepath.Join(dir, "absent.csv"))
		require.ErrorIs(t, err, dataset.ErrDatasetNotFound)
	})
}
