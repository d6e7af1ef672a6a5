package modelselection

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/core/model"
	"github.com/qkbench/qkbench/core/parallel"
	"github.com/qkbench/qkbench/metrics"
	"github.com/qkbench/qkbench/pkg/errors"
)

// ParamGrid maps a hyperparameter name to its candidate values.
type ParamGrid map[string][]float64

// Params is one concrete hyperparameter assignment drawn from a grid.
type Params map[string]float64

// Constructor builds a fresh, unfitted classifier for a parameter
// assignment. Model families stay tagged variants behind this closure; no
// class hierarchy is involved.
type Constructor func(p Params) model.Classifier

// GridSearchCV selects the best parameter assignment from Grid by k-fold
// stratified cross-validation scored with accuracy, then refits the winner
// on the full training data. Candidates are fitted in parallel; folds within
// a candidate run sequentially.
type GridSearchCV struct {
	New  Constructor
	Grid ParamGrid
	CV   int
	Seed uint64
}

// GridSearchResult holds the winning assignment and its refitted estimator.
type GridSearchResult struct {
	BestParams    Params
	BestScore     float64
	BestEstimator model.Classifier
}

// Fit runs the search over X and y. The best candidate is the one with the
// strictly greatest mean validation accuracy; ties keep the earliest
// candidate in grid enumeration order.
func (g *GridSearchCV) Fit(X mat.Matrix, y *mat.VecDense) (*GridSearchResult, error) {
	if g.New == nil {
		return nil, errors.NewValueError("GridSearchCV.Fit", "nil constructor")
	}
	if g.CV < 2 {
		return nil, errors.NewValidationError("cv", "must be >= 2", g.CV)
	}

	if len(g.Grid) == 0 {
		return nil, errors.NewValueError("GridSearchCV.Fit", "empty parameter grid")
	}
	candidates := g.Grid.Enumerate()

	folds, err := NewStratifiedKFold(g.CV, g.Seed).Split(y)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(candidates))
	errs := make([]error, len(candidates))
	parallel.Parallelize(len(candidates), func(start, end int) {
		for c := start; c < end; c++ {
			scores[c], errs[c] = g.scoreCandidate(candidates[c], X, y, folds)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	best := 0
	for c := 1; c < len(candidates); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}

	estimator := g.New(candidates[best])
	if err := estimator.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "refit of best candidate failed")
	}

	return &GridSearchResult{
		BestParams:    candidates[best],
		BestScore:     scores[best],
		BestEstimator: estimator,
	}, nil
}

// scoreCandidate returns the mean validation accuracy of one parameter
// assignment across the supplied folds.
func (g *GridSearchCV) scoreCandidate(p Params, X mat.Matrix, y *mat.VecDense, folds []Split) (float64, error) {
	total := 0.0
	for _, fold := range folds {
		clf := g.New(p)
		XTrain := TakeRows(X, fold.TrainIndices)
		yTrain := TakeVec(y, fold.TrainIndices)
		if err := clf.Fit(XTrain, yTrain); err != nil {
			return 0, err
		}

		XVal := TakeRows(X, fold.TestIndices)
		yVal := TakeVec(y, fold.TestIndices)
		pred, err := clf.Predict(XVal)
		if err != nil {
			return 0, err
		}
		acc, err := metrics.Accuracy(yVal, pred)
		if err != nil {
			return 0, err
		}
		total += acc
	}
	return total / float64(len(folds)), nil
}

// Enumerate expands the grid into the cartesian product of its values.
// Parameter names are iterated in sorted order so enumeration order, and
// therefore tie-breaking, is deterministic.
func (g ParamGrid) Enumerate() []Params {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	out := []Params{{}}
	for _, name := range names {
		values := g[name]
		next := make([]Params, 0, len(out)*len(values))
		for _, base := range out {
			for _, v := range values {
				p := make(Params, len(base)+1)
				for k, bv := range base {
					p[k] = bv
				}
				p[name] = v
				next = append(next, p)
			}
		}
		out = next
	}
	return out
}
