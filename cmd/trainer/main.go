package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecosnap/ecosnap/internal/application/dto"
	"github.com/ecosnap/ecosnap/internal/application/usecase"
	"github.com/ecosnap/ecosnap/internal/infrastructure/config"
	"github.com/ecosnap/ecosnap/internal/infrastructure/dataset"
	"github.com/ecosnap/ecosnap/internal/infrastructure/ml"
	"github.com/ecosnap/ecosnap/pkg/observability"
)

type trainOptions struct {
	datasetPath string
	outputPath  string
	logLevel    string
	logFormat   string
	trees       int
	workers     int
	seed        uint64
}

func newRootCommand() *cobra.Command {
	opts := trainOptions{}

	cmd := &cobra.Command{
		Use:   "trainer",
		Short: "Train the EcoSnap sustainability model",
		Long: `Trainer reads the sustainability dataset, fits a one-hot encoder and a
random forest regressor mapping Material to CO2_per_kg, Recyclability_Score and
Total_Sustainability_Score, and writes the fitted pipeline to the model artifact.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.datasetPath, "dataset", config.DefaultDatasetPath, "CSV dataset to train on")
	flags.StringVar(&opts.outputPath, "output", config.DefaultModelPath, "model artifact to write")
	flags.IntVar(&opts.trees, "trees", ml.DefaultNEstimators, "number of trees in the forest")
	flags.Uint64Var(&opts.seed, "seed", ml.DefaultSeed, "random seed for bootstrap sampling")
	flags.IntVar(&opts.workers, "workers", 0, "max trees fitted concurrently (0 = unbounded)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format (json, text)")

	return cmd
}

func runTrain(cmd *cobra.Command, opts trainOptions) error {
	logger := observability.InitLogger(observability.LogConfig{
		Level:  opts.logLevel,
		Format: opts.logFormat,
		Output: cmd.ErrOrStderr(),
	})

	uc := usecase.NewTrainModel(
		dataset.NewCSVReader(logger),
		ml.NewTrainer(ml.ForestConfig{NEstimators: opts.trees, Seed: opts.seed, Workers: opts.workers}),
		ml.NewArtifactStore(logger),
		logger,
	)

	resp, err := uc.Execute(cmd.Context(), dto.TrainModelRequest{
		DatasetPath: opts.datasetPath,
		OutputPath:  opts.outputPath,
	})
	if err != nil {
		logger.Error("training failed", "error", err)
		return err
	}

	logger.Info("training complete",
		"model_id", resp.ModelID,
		"rows", resp.Rows,
		"categories", resp.Categories,
		"trees", resp.NEstimators,
		"output", resp.OutputPath,
	)
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
