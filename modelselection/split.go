// Package modelselection provides stratified data splitting and
// cross-validated grid search. All randomness flows through explicit seeds;
// there is no process-wide random state, so the classical and quantum
// evaluators can run independently and still reproduce.
package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/pkg/errors"
)

// Split is one train/test partition of sample indices. Train and test are
// disjoint and together cover the full index range.
type Split struct {
	TrainIndices []int
	TestIndices  []int
}

// StratifiedShuffleSplit generates repeated random train/test partitions
// that preserve per-class label proportions.
type StratifiedShuffleSplit struct {
	NSplits  int
	TestSize float64
	Seed     uint64
}

// NewStratifiedShuffleSplit creates a splitter producing nSplits partitions
// with the given test fraction.
func NewStratifiedShuffleSplit(nSplits int, testSize float64, seed uint64) *StratifiedShuffleSplit {
	return &StratifiedShuffleSplit{NSplits: nSplits, TestSize: testSize, Seed: seed}
}

// Split partitions the indices of y into NSplits independent stratified
// train/test splits.
func (s *StratifiedShuffleSplit) Split(y *mat.VecDense) ([]Split, error) {
	if s.NSplits < 1 {
		return nil, errors.NewValidationError("n_splits", "must be >= 1", s.NSplits)
	}
	if s.TestSize <= 0 || s.TestSize >= 1 {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", s.TestSize)
	}

	classes, err := groupByClass(y)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	splits := make([]Split, 0, s.NSplits)
	for rep := 0; rep < s.NSplits; rep++ {
		var sp Split
		for _, cls := range classes {
			idx := make([]int, len(cls))
			copy(idx, cls)
			rng.Shuffle(len(idx), func(i, j int) {
				idx[i], idx[j] = idx[j], idx[i]
			})

			nTest := int(math.Round(s.TestSize * float64(len(idx))))
			if nTest < 1 {
				nTest = 1
			}
			if nTest >= len(idx) {
				nTest = len(idx) - 1
			}
			sp.TestIndices = append(sp.TestIndices, idx[:nTest]...)
			sp.TrainIndices = append(sp.TrainIndices, idx[nTest:]...)
		}
		sort.Ints(sp.TrainIndices)
		sort.Ints(sp.TestIndices)
		splits = append(splits, sp)
	}
	return splits, nil
}

// StratifiedKFold partitions indices into k folds, each with near-equal
// class proportions. Fold i serves as the validation set of split i.
type StratifiedKFold struct {
	NSplits int
	Seed    uint64
}

// NewStratifiedKFold creates a k-fold splitter.
func NewStratifiedKFold(nSplits int, seed uint64) *StratifiedKFold {
	return &StratifiedKFold{NSplits: nSplits, Seed: seed}
}

// Split returns NSplits train/validation partitions of the indices of y.
func (s *StratifiedKFold) Split(y *mat.VecDense) ([]Split, error) {
	if s.NSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be >= 2", s.NSplits)
	}
	n := y.Len()
	if s.NSplits > n {
		return nil, errors.NewValidationError("n_splits", "cannot exceed number of samples", s.NSplits)
	}

	classes, err := groupByClass(y)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0xda942042e4dd58b5))
	folds := make([][]int, s.NSplits)
	for _, cls := range classes {
		idx := make([]int, len(cls))
		copy(idx, cls)
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
		// Round-robin assignment keeps every fold within one sample of the
		// full-set class proportion.
		for i, sample := range idx {
			f := i % s.NSplits
			folds[f] = append(folds[f], sample)
		}
	}

	splits := make([]Split, s.NSplits)
	for f := 0; f < s.NSplits; f++ {
		var sp Split
		sp.TestIndices = append(sp.TestIndices, folds[f]...)
		for other := 0; other < s.NSplits; other++ {
			if other == f {
				continue
			}
			sp.TrainIndices = append(sp.TrainIndices, folds[other]...)
		}
		sort.Ints(sp.TrainIndices)
		sort.Ints(sp.TestIndices)
		splits[f] = sp
	}
	return splits, nil
}

// groupByClass maps each distinct label to the ordered indices carrying it.
// Classes come back in ascending label order for determinism.
func groupByClass(y *mat.VecDense) ([][]int, error) {
	n := y.Len()
	if n == 0 {
		return nil, errors.NewValueError("Split", "empty label vector")
	}

	byLabel := make(map[float64][]int)
	for i := 0; i < n; i++ {
		v := y.AtVec(i)
		byLabel[v] = append(byLabel[v], i)
	}
	if len(byLabel) < 2 {
		return nil, errors.WithStack(errors.ErrSingleClass)
	}

	labels := make([]float64, 0, len(byLabel))
	for v := range byLabel {
		labels = append(labels, v)
	}
	sort.Float64s(labels)

	classes := make([][]int, 0, len(labels))
	for _, v := range labels {
		classes = append(classes, byLabel[v])
	}
	return classes, nil
}

// TakeRows copies the given rows of X into a new dense matrix.
func TakeRows(X mat.Matrix, idx []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for i, row := range idx {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(row, j))
		}
	}
	return out
}

// TakeVec copies the given elements of y into a new vector.
func TakeVec(y *mat.VecDense, idx []int) *mat.VecDense {
	out := mat.NewVecDense(len(idx), nil)
	for i, row := range idx {
		out.SetVec(i, y.AtVec(row))
	}
	return out
}

// TakeBlock copies the (rows x cols) sub-block of K. The nested
// cross-validation uses it to re-slice a precomputed kernel matrix per fold
// instead of recomputing kernel values.
func TakeBlock(K mat.Matrix, rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			out.Set(i, j, K.At(r, c))
		}
	}
	return out
}
