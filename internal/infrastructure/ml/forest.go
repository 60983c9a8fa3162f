package ml

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultNEstimators is the number of trees in the forest.
	DefaultNEstimators = 50
	// DefaultSeed makes bootstrap sampling reproducible.
	DefaultSeed uint64 = 42
)

// ForestConfig configures a RandomForest.
type ForestConfig struct {
	NEstimators int
	Seed        uint64
	// Workers bounds concurrent tree fitting; <= 0 means unbounded.
	Workers int
}

// DefaultForestConfig returns the standard training configuration.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NEstimators: DefaultNEstimators,
		Seed:        DefaultSeed,
	}
}

// RandomForest is a bagged ensemble of multi-output regression trees.
type RandomForest struct {
	cfg      ForestConfig
	trees    []*RegressionTree
	features int
	outputs  int
}

// NewRandomForest returns an unfitted forest.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	return &RandomForest{cfg: cfg}
}

// Fit grows cfg.NEstimators trees, each on a bootstrap sample of the rows.
// Tree i draws from a PCG stream keyed by (Seed, i), so the fitted forest is
// identical for a given seed however the goroutines are scheduled.
func (f *RandomForest) Fit(ctx context.Context, x, y *mat.Dense) error {
	if f.cfg.NEstimators <= 0 {
		return fmt.Errorf("n_estimators must be positive, got %d", f.cfg.NEstimators)
	}

	rows, features := x.Dims()
	yRows, outputs := y.Dims()
	if rows != yRows {
		return fmt.Errorf("feature rows (%d) and target rows (%d) differ", rows, yRows)
	}

	trees := make([]*RegressionTree, f.cfg.NEstimators)

	g, ctx := errgroup.WithContext(ctx)
	if f.cfg.Workers > 0 {
		g.SetLimit(f.cfg.Workers)
	}
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(f.cfg.Seed, uint64(i)))
			sample := make([]int, rows)
			for k := range sample {
				sample[k] = rng.IntN(rows)
			}
			trees[i] = fitTree(x, y, sample)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fit forest: %w", err)
	}

	f.trees = trees
	f.features = features
	f.outputs = outputs
	return nil
}

// Predict averages tree outputs for every row of x.
func (f *RandomForest) Predict(x *mat.Dense) (*mat.Dense, error) {
	if len(f.trees) == 0 {
		return nil, ErrNotFitted
	}
	rows, features := x.Dims()
	if features != f.features {
		return nil, fmt.Errorf("expected %d features, got %d", f.features, features)
	}

	out := mat.NewDense(rows, f.outputs, nil)
	row := make([]float64, features)
	acc := make([]float64, f.outputs)
	n := float64(len(f.trees))
	for r := 0; r < rows; r++ {
		mat.Row(row, r, x)
		for o := range acc {
			acc[o] = 0
		}
		for _, t := range f.trees {
			for o, v := range t.predictRow(row) {
				acc[o] += v
			}
		}
		for o, v := range acc {
			out.Set(r, o, v/n)
		}
	}
	return out, nil
}

// Config returns the forest configuration.
func (f *RandomForest) Config() ForestConfig {
	return f.cfg
}

// Trees exposes the fitted trees for serialization.
func (f *RandomForest) Trees() []*RegressionTree {
	return f.trees
}

// restoreForest rebuilds a fitted forest from decoded trees.
func restoreForest(cfg ForestConfig, trees []*RegressionTree, features, outputs int) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	for i, t := range trees {
		if t == nil {
			return nil, fmt.Errorf("tree %d is empty", i)
		}
		if err := t.validate(features, outputs); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	cfg.NEstimators = len(trees)
	return &RandomForest{cfg: cfg, trees: trees, features: features, outputs: outputs}, nil
}
