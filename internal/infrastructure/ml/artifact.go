package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ecosnap/ecosnap/internal/domain/model"
	"github.com/ecosnap/ecosnap/internal/domain/port"
)

// ArtifactFormatVersion is bumped whenever the document layout changes.
const ArtifactFormatVersion = 1

type artifactDocument struct {
	TrainedAt     time.Time         `json:"trained_at"`
	ModelID       uuid.UUID         `json:"model_id"`
	Targets       []string          `json:"targets"`
	Categories    []string          `json:"categories"`
	Trees         []*RegressionTree `json:"trees"`
	FormatVersion int               `json:"format_version"`
	NEstimators   int               `json:"n_estimators"`
	Seed          uint64            `json:"seed"`
}

// ArtifactStore reads and writes fitted pipelines as JSON documents.
// It implements port.ArtifactStore.
type ArtifactStore struct {
	logger *slog.Logger
}

var _ port.ArtifactStore = (*ArtifactStore)(nil)

// NewArtifactStore creates a new ArtifactStore.
func NewArtifactStore(logger *slog.Logger) *ArtifactStore {
	return &ArtifactStore{logger: logger}
}

// Save writes the pipeline to path. The document is written to a temporary
// file in the same directory and renamed into place, so readers see either
// the previous artifact or the complete new one.
func (s *ArtifactStore) Save(path string, predictor port.DescribedPredictor) error {
	p, ok := predictor.(*Pipeline)
	if !ok {
		return fmt.Errorf("save artifact: unsupported predictor type %T", predictor)
	}

	doc := artifactDocument{
		FormatVersion: ArtifactFormatVersion,
		ModelID:       p.modelID,
		TrainedAt:     p.trainedAt,
		NEstimators:   len(p.forest.Trees()),
		Seed:          p.forest.Config().Seed,
		Targets:       model.Targets,
		Categories:    p.encoder.Categories(),
		Trees:         p.forest.Trees(),
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := json.NewEncoder(tmp).Encode(doc); err != nil {
		return fmt.Errorf("save artifact: encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("save artifact: sync: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("save artifact: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save artifact: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save artifact: rename: %w", err)
	}
	committed = true

	s.logger.Info("model artifact written",
		slog.String("path", path),
		slog.String("model_id", p.modelID.String()),
		slog.Int("trees", doc.NEstimators),
	)
	return nil
}

// Load restores a pipeline written by Save. A missing file yields an error
// matching os.ErrNotExist; a malformed one yields ErrInvalidArtifact.
func (s *ArtifactStore) Load(path string) (port.DescribedPredictor, error) {
	p, err := s.LoadPipeline(path)
	if err != nil {
		// A nil *Pipeline in the interface would compare non-nil.
		return nil, err
	}
	return p, nil
}

// LoadPipeline is Load returning the concrete type.
func (s *ArtifactStore) LoadPipeline(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	defer f.Close()

	var doc artifactDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}

	p, err := doc.pipeline()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	return p, nil
}

func (d artifactDocument) pipeline() (*Pipeline, error) {
	if d.FormatVersion != ArtifactFormatVersion {
		return nil, fmt.Errorf("unsupported format version %d", d.FormatVersion)
	}
	if !slices.Equal(d.Targets, model.Targets) {
		return nil, fmt.Errorf("unexpected targets %v", d.Targets)
	}

	encoder, err := newFittedEncoder(d.Categories)
	if err != nil {
		return nil, err
	}
	forest, err := restoreForest(
		ForestConfig{NEstimators: d.NEstimators, Seed: d.Seed},
		d.Trees,
		encoder.Width(),
		len(model.Targets),
	)
	if err != nil {
		return nil, err
	}
	if d.NEstimators != len(d.Trees) {
		return nil, errors.New("n_estimators does not match tree count")
	}

	return &Pipeline{
		modelID:   d.ModelID,
		trainedAt: d.TrainedAt,
		encoder:   encoder,
		forest:    forest,
	}, nil
}
