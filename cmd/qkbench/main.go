// Command qkbench benchmarks classical classifiers against quantum-kernel
// SVCs on a synthetic binary dataset and writes the results to a
// spreadsheet. Configuration is deliberately in-code: the run is an
// interactive analysis, not a service.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/qkbench/qkbench/benchmark"
	"github.com/qkbench/qkbench/dataset"
	"github.com/qkbench/qkbench/pkg/log"
	"github.com/qkbench/qkbench/report"
)

const (
	datasetSize = 100
	featureDim  = 4
	seed        = 7

	workbookPath = "qkbench_results.xlsx"
	chartPath    = "qkbench_accuracy.png"
)

func main() {
	logger := log.NewConsoleLogger(zerolog.InfoLevel)
	log.SetLogger(logger)

	data, err := dataset.Generate(dataset.Config{
		NSamples:  datasetSize,
		NFeatures: featureDim,
		Seed:      seed,
	})
	if err != nil {
		fail(logger, "dataset generation failed", err)
	}
	logger.Info("dataset generated",
		log.SamplesKey, data.NumSamples(), log.FeaturesKey, data.NumFeatures())

	classical, err := benchmark.NewClassicalEvaluator(seed).Run(data.X, data.Y)
	if err != nil {
		fail(logger, "classical evaluation failed", err)
	}

	quantum, err := benchmark.NewQuantumEvaluator(seed).Run(data.X, data.Y)
	if err != nil {
		fail(logger, "quantum evaluation failed", err)
	}

	summaries := report.SummarizeClassical(classical)
	ranked := report.SortQuantum(quantum)

	if err := report.WriteWorkbook(workbookPath, classical, ranked); err != nil {
		fail(logger, "spreadsheet export failed", err)
	}
	if err := report.SaveAccuracyChart(chartPath, ranked); err != nil {
		fail(logger, "chart export failed", err)
	}

	report.PrintSummary(os.Stdout, summaries, ranked, workbookPath)
}

func fail(logger log.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
