package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosnap/ecosnap/internal/domain/model"
	"github.com/ecosnap/ecosnap/internal/infrastructure/ml"
	"github.com/ecosnap/ecosnap/pkg/observability"
)

func TestLoadModel(t *testing.T) {
	store := ml.NewArtifactStore(observability.Discard())
	dir := t.TempDir()

	t.Run("missing artifact leaves predictor unset", func(t *testing.T) {
		predictor := loadModel(store, filepath.Join(dir, "eco_snap_model.pkl"), observability.Discard())
		assert.Nil(t, predictor)
	})

	t.Run("corrupt artifact leaves predictor unset", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.pkl")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		assert.Nil(t, loadModel(store, path, observability.Discard()))
	})

	t.Run("valid artifact is loaded", func(t *testing.T) {
		p, err := ml.NewTrainer(ml.ForestConfig{NEstimators: 5, Seed: 42}).FitPipeline(context.Background(),
			[]model.TrainingSample{
				{Material: "Plastic", Targets: []float64{6, 0.3, 35}},
				{Material: "Glass", Targets: []float64{0.85, 0.75, 70}},
			})
		require.NoError(t, err)
		path := filepath.Join(dir, "eco_snap_model.pkl")
		require.NoError(t, store.Save(path, p))

		predictor := loadModel(store, path, observability.Discard())
		require.NotNil(t, predictor)
		_, err = predictor.Predict(context.Background(), model.FeatureRecord{Material: "Glass"})
		assert.NoError(t, err)
	})
}
