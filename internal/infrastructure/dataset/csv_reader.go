package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ecosnap/ecosnap/internal/domain/model"
	"github.com/ecosnap/ecosnap/internal/domain/port"
)

var (
	// ErrDatasetNotFound is returned when the dataset file does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrEmptyDataset is returned when the file has a header but no rows.
	ErrEmptyDataset = errors.New("dataset has no rows")
)

// CSVReader loads training samples from a comma-separated file with a header
// row. Columns are located by name, so their order does not matter and extra
// columns are ignored.
type CSVReader struct {
	logger *slog.Logger
}

var _ port.DatasetReader = (*CSVReader)(nil)

// NewCSVReader creates a new CSVReader.
func NewCSVReader(logger *slog.Logger) *CSVReader {
	return &CSVReader{logger: logger}
}

// Read opens path and parses it.
func (r *CSVReader) Read(ctx context.Context, path string) ([]model.TrainingSample, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	samples, err := r.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r.logger.Info("dataset loaded", slog.String("path", path), slog.Int("rows", len(samples)))
	return samples, nil
}

// Parse reads samples from src.
func (r *CSVReader) Parse(ctx context.Context, src io.Reader) ([]model.TrainingSample, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var samples []model.TrainingSample
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		sample := model.TrainingSample{
			Material: strings.TrimSpace(record[columns.material]),
			Targets:  make([]float64, len(columns.targets)),
		}
		for i, col := range columns.targets {
			cell := strings.TrimSpace(record[col])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: invalid number %q", line, model.Targets[i], cell)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d, column %s: non-finite number %q", line, model.Targets[i], cell)
			}
			sample.Targets[i] = v
		}
		samples = append(samples, sample)
	}

	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	return samples, nil
}

type columnIndex struct {
	targets  []int
	material int
}

func locateColumns(header []string) (columnIndex, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		byName[name] = i
	}

	idx := columnIndex{targets: make([]int, len(model.Targets))}
	var missing []string

	if col, ok := byName[model.FeatureMaterial]; ok {
		idx.material = col
	} else {
		missing = append(missing, model.FeatureMaterial)
	}
	for i, name := range model.Targets {
		col, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx.targets[i] = col
	}

	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
