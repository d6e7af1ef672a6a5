package benchmark

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/core/model"
	"github.com/qkbench/qkbench/linear"
	"github.com/qkbench/qkbench/metrics"
	"github.com/qkbench/qkbench/modelselection"
	"github.com/qkbench/qkbench/pkg/errors"
	"github.com/qkbench/qkbench/pkg/log"
	"github.com/qkbench/qkbench/preprocessing"
	"github.com/qkbench/qkbench/svm"
)

// ModelSpec is a tagged model family: a name, a hyperparameter grid, and a
// constructor turning one grid assignment into a fresh classifier.
type ModelSpec struct {
	Name string
	Grid modelselection.ParamGrid
	New  modelselection.Constructor
}

// DefaultModelCatalog returns the four classical families the benchmark
// compares, with sklearn-equivalent grids.
func DefaultModelCatalog() []ModelSpec {
	return []ModelSpec{
		{
			Name: "logistic_regression",
			Grid: modelselection.ParamGrid{"C": {0.1, 1, 10}},
			New: func(p modelselection.Params) model.Classifier {
				return linear.NewLogisticRegression(linear.WithC(p["C"]))
			},
		},
		{
			Name: "svc_linear",
			Grid: modelselection.ParamGrid{"C": {0.1, 1, 10}},
			New: func(p modelselection.Params) model.Classifier {
				return svm.NewSVC(svm.WithKernel(svm.Linear), svm.WithC(p["C"]))
			},
		},
		{
			Name: "svc_poly",
			Grid: modelselection.ParamGrid{"C": {0.1, 1, 10}, "degree": {2, 3}},
			New: func(p modelselection.Params) model.Classifier {
				return svm.NewSVC(
					svm.WithKernel(svm.Poly),
					svm.WithC(p["C"]),
					svm.WithDegree(int(p["degree"])),
					svm.WithGamma(1.0),
					svm.WithCoef0(1.0),
				)
			},
		},
		{
			Name: "svc_rbf",
			Grid: modelselection.ParamGrid{"C": {0.1, 1, 10}, "gamma": {0.1, 1}},
			New: func(p modelselection.Params) model.Classifier {
				return svm.NewSVC(
					svm.WithKernel(svm.RBF),
					svm.WithC(p["C"]),
					svm.WithGamma(p["gamma"]),
				)
			},
		},
	}
}

// ClassicalEvaluator benchmarks the classical model families over repeated
// stratified shuffle splits, selecting hyperparameters by grid search on
// each training partition.
type ClassicalEvaluator struct {
	NSplits  int
	TestSize float64
	CVFolds  int
	Seed     uint64
	Models   []ModelSpec
	Logger   log.Logger
}

// NewClassicalEvaluator creates an evaluator with the reference settings:
// 3 shuffle splits, 70/30, 3-fold grid search CV, default model catalog.
func NewClassicalEvaluator(seed uint64) *ClassicalEvaluator {
	return &ClassicalEvaluator{
		NSplits:  3,
		TestSize: 0.3,
		CVFolds:  3,
		Seed:     seed,
		Models:   DefaultModelCatalog(),
		Logger:   log.GetLogger(),
	}
}

// Run evaluates every model family on every split of X and y, returning one
// row per (split, model) pair. Any fit failure aborts the run.
//
// Features are standardized once on the full set before splitting, matching
// the reference pipeline. This leaks test-set distribution into the scaler;
// it is kept deliberately so the published numbers stay comparable.
func (e *ClassicalEvaluator) Run(X mat.Matrix, y *mat.VecDense) ([]ClassicalResult, error) {
	logger := e.Logger.With(log.ComponentKey, "classical_evaluator")
	r, c := X.Dims()
	logger.Info("starting classical evaluation",
		log.SamplesKey, r, log.FeaturesKey, c, "n_models", len(e.Models))
	logger.Warn("scaler fitted on train+test combined; kept for comparability with reference results")

	XScaled, err := preprocessing.NewStandardScaler().FitTransform(X)
	if err != nil {
		return nil, errors.Wrap(err, "standardization failed")
	}

	splits, err := modelselection.NewStratifiedShuffleSplit(e.NSplits, e.TestSize, e.Seed).Split(y)
	if err != nil {
		return nil, err
	}

	results := make([]ClassicalResult, 0, len(splits)*len(e.Models))
	for si, split := range splits {
		XTrain := modelselection.TakeRows(XScaled, split.TrainIndices)
		yTrain := modelselection.TakeVec(y, split.TrainIndices)
		XTest := modelselection.TakeRows(XScaled, split.TestIndices)
		yTest := modelselection.TakeVec(y, split.TestIndices)

		for _, spec := range e.Models {
			search := &modelselection.GridSearchCV{
				New:  spec.New,
				Grid: spec.Grid,
				CV:   e.CVFolds,
				Seed: e.Seed + uint64(si),
			}
			found, err := search.Fit(XTrain, yTrain)
			if err != nil {
				return nil, errors.Wrapf(err, "grid search failed for %s on split %d", spec.Name, si)
			}

			clf := spec.New(found.BestParams)
			start := time.Now()
			if err := clf.Fit(XTrain, yTrain); err != nil {
				return nil, errors.Wrapf(err, "final fit failed for %s on split %d", spec.Name, si)
			}
			elapsed := time.Since(start)

			pred, err := clf.Predict(XTest)
			if err != nil {
				return nil, errors.Wrapf(err, "prediction failed for %s on split %d", spec.Name, si)
			}
			acc, err := metrics.Accuracy(yTest, pred)
			if err != nil {
				return nil, err
			}
			f1, err := metrics.F1(yTest, pred)
			if err != nil {
				return nil, err
			}

			logger.Info("classical model scored",
				log.SplitKey, si,
				log.ModelKey, spec.Name,
				log.AccuracyKey, acc,
				log.F1Key, f1,
				log.DurationKey, elapsed.Seconds())

			results = append(results, ClassicalResult{
				Split:      si,
				Model:      spec.Name,
				Accuracy:   acc,
				F1:         f1,
				FitSeconds: elapsed.Seconds(),
			})
		}
	}
	return results, nil
}
