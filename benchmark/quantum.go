package benchmark

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/metrics"
	"github.com/qkbench/qkbench/modelselection"
	"github.com/qkbench/qkbench/pkg/errors"
	"github.com/qkbench/qkbench/pkg/log"
	"github.com/qkbench/qkbench/preprocessing"
	"github.com/qkbench/qkbench/quantum"
	"github.com/qkbench/qkbench/svm"
)

// KernelFactory builds a kernel backend for one feature-map configuration.
// The evaluator never touches the simulator directly, so tests can inject a
// stub that returns valid similarity values without simulating circuits.
type KernelFactory func(cfg quantum.FeatureMapConfig) quantum.Kernel

// QuantumEvaluator benchmarks precomputed-kernel SVCs across the feature-map
// catalog. For each variant it runs repeated stratified splits, computes the
// split's kernel matrices once, selects the regularization constant by
// nested cross-validation over re-sliced kernel blocks, and scores the final
// classifier on the held-out test block.
type QuantumEvaluator struct {
	NSplits   int
	TestSize  float64
	CVFolds   int
	Cs        []float64
	Seed      uint64
	Catalog   []quantum.FeatureMapConfig
	NewKernel KernelFactory
	Logger    log.Logger
}

// NewQuantumEvaluator creates an evaluator with the reference settings:
// 10 shuffle splits, 70/30, 10-fold nested CV over C in {0.1, 1, 10}, the
// full feature-map catalog, and the statevector fidelity backend.
func NewQuantumEvaluator(seed uint64) *QuantumEvaluator {
	return &QuantumEvaluator{
		NSplits:  10,
		TestSize: 0.3,
		CVFolds:  10,
		Cs:       []float64{0.1, 1, 10},
		Seed:     seed,
		Catalog:  quantum.Catalog(),
		NewKernel: func(cfg quantum.FeatureMapConfig) quantum.Kernel {
			return quantum.NewFidelityKernel(cfg)
		},
		Logger: log.GetLogger(),
	}
}

// Run evaluates every catalog entry, returning one summary row per
// feature map. A kernel failure aborts the whole evaluation.
//
// Features are min-max rescaled into [0, pi] on the full set before
// splitting, matching the reference pipeline; the same leakage caveat as
// the classical evaluator applies and is kept deliberately.
func (e *QuantumEvaluator) Run(X mat.Matrix, y *mat.VecDense) ([]QuantumResult, error) {
	logger := e.Logger.With(log.ComponentKey, "quantum_evaluator")
	r, c := X.Dims()
	logger.Info("starting quantum evaluation",
		log.SamplesKey, r, log.FeaturesKey, c, "n_feature_maps", len(e.Catalog))
	logger.Warn("scaler fitted on train+test combined; kept for comparability with reference results")

	XScaled, err := preprocessing.NewMinMaxScaler([2]float64{0, math.Pi}).FitTransform(X)
	if err != nil {
		return nil, errors.Wrap(err, "angle rescaling failed")
	}

	results := make([]QuantumResult, 0, len(e.Catalog))
	for mi, cfg := range e.Catalog {
		kernel := e.NewKernel(cfg)
		mapSeed := e.Seed + uint64(mi)*0x9e3779b9

		splits, err := modelselection.NewStratifiedShuffleSplit(e.NSplits, e.TestSize, mapSeed).Split(y)
		if err != nil {
			return nil, err
		}

		accs := make([]float64, 0, len(splits))
		f1s := make([]float64, 0, len(splits))
		for si, split := range splits {
			acc, f1, err := e.evaluateSplit(kernel, cfg, XScaled, y, split, mapSeed+uint64(si))
			if err != nil {
				return nil, errors.Wrapf(err, "feature map %s, split %d", cfg.Name, si)
			}
			logger.Debug("quantum split scored",
				log.FeatureMapKey, cfg.Name,
				log.SplitKey, si,
				log.AccuracyKey, acc,
				log.F1Key, f1)
			accs = append(accs, acc)
			f1s = append(f1s, f1)
		}

		meanAcc, stdAcc := metrics.MeanStd(accs)
		meanF1, _ := metrics.MeanStd(f1s)
		logger.Info("feature map evaluated",
			log.FeatureMapKey, cfg.Name,
			"mean_accuracy", meanAcc,
			"std_accuracy", stdAcc,
			"mean_f1", meanF1)

		results = append(results, QuantumResult{
			FeatureMap:   cfg.Name,
			MeanAccuracy: meanAcc,
			StdAccuracy:  stdAcc,
			MeanF1:       meanF1,
		})
	}
	return results, nil
}

// evaluateSplit runs one split: compute the two kernel blocks, select C by
// nested CV over the training block, then fit and score the final model.
func (e *QuantumEvaluator) evaluateSplit(kernel quantum.Kernel, cfg quantum.FeatureMapConfig, X mat.Matrix, y *mat.VecDense, split modelselection.Split, seed uint64) (acc, f1 float64, err error) {
	XTrain := scaleFeatures(modelselection.TakeRows(X, split.TrainIndices), cfg.Scale)
	XTest := scaleFeatures(modelselection.TakeRows(X, split.TestIndices), cfg.Scale)
	yTrain := modelselection.TakeVec(y, split.TrainIndices)
	yTest := modelselection.TakeVec(y, split.TestIndices)

	// Kernel values are computed once per split and only re-sliced by the
	// nested CV below.
	KTrain, err := kernel.Matrix(XTrain, XTrain)
	if err != nil {
		return 0, 0, err
	}
	KTest, err := kernel.Matrix(XTest, XTrain)
	if err != nil {
		return 0, 0, err
	}

	bestC, err := e.selectC(KTrain, yTrain, seed)
	if err != nil {
		return 0, 0, err
	}

	clf := svm.NewSVC(svm.WithKernel(svm.Precomputed), svm.WithC(bestC))
	if err := clf.Fit(KTrain, yTrain); err != nil {
		return 0, 0, err
	}
	pred, err := clf.Predict(KTest)
	if err != nil {
		return 0, 0, err
	}

	acc, err = metrics.Accuracy(yTest, pred)
	if err != nil {
		return 0, 0, err
	}
	f1, err = metrics.F1(yTest, pred)
	if err != nil {
		return 0, 0, err
	}
	return acc, f1, nil
}

// selectC picks the regularization constant with the best mean validation
// accuracy over stratified folds of the training kernel matrix. Comparison
// is strictly-greater, so ties keep the first candidate in e.Cs order.
func (e *QuantumEvaluator) selectC(KTrain *mat.Dense, yTrain *mat.VecDense, seed uint64) (float64, error) {
	if len(e.Cs) == 0 {
		return 0, errors.NewValueError("QuantumEvaluator.selectC", "no regularization candidates")
	}

	folds, err := modelselection.NewStratifiedKFold(e.CVFolds, seed).Split(yTrain)
	if err != nil {
		return 0, err
	}

	bestC := e.Cs[0]
	bestScore := math.Inf(-1)
	for _, c := range e.Cs {
		total := 0.0
		for _, fold := range folds {
			KFit := modelselection.TakeBlock(KTrain, fold.TrainIndices, fold.TrainIndices)
			yFit := modelselection.TakeVec(yTrain, fold.TrainIndices)
			clf := svm.NewSVC(svm.WithKernel(svm.Precomputed), svm.WithC(c))
			if err := clf.Fit(KFit, yFit); err != nil {
				return 0, err
			}

			KVal := modelselection.TakeBlock(KTrain, fold.TestIndices, fold.TrainIndices)
			yVal := modelselection.TakeVec(yTrain, fold.TestIndices)
			pred, err := clf.Predict(KVal)
			if err != nil {
				return 0, err
			}
			a, err := metrics.Accuracy(yVal, pred)
			if err != nil {
				return 0, err
			}
			total += a
		}
		score := total / float64(len(folds))
		if score > bestScore {
			bestScore = score
			bestC = c
		}
	}
	return bestC, nil
}

// scaleFeatures multiplies every entry of X by scale. Scale 1 returns X
// unchanged.
func scaleFeatures(X *mat.Dense, scale float64) *mat.Dense {
	if scale == 1 {
		return X
	}
	out := mat.DenseCopyOf(X)
	out.Scale(scale, out)
	return out
}
