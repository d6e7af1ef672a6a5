// Package metrics provides the classification metrics the benchmark reports:
// accuracy and binary F1 over -1/+1 labels, plus mean/std aggregation.
package metrics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/qkbench/qkbench/pkg/errors"
)

// Accuracy computes the fraction of matching labels in yTrue and yPred.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// F1 computes the binary F1 score with +1 as the positive class. Labels must
// be -1 or +1. When precision and recall are both undefined (no predicted
// and no actual positives) the score is 0.
func F1(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("F1", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("F1", n, yPred.Len(), 0)
	}

	var tp, fp, fn int
	for i := 0; i < n; i++ {
		t, p := yTrue.AtVec(i), yPred.AtVec(i)
		if t != -1 && t != 1 {
			return 0, errors.NewValueError("F1", "labels must be -1 or +1")
		}
		if p != -1 && p != 1 {
			return 0, errors.NewValueError("F1", "predictions must be -1 or +1")
		}
		switch {
		case p == 1 && t == 1:
			tp++
		case p == 1 && t == -1:
			fp++
		case p == -1 && t == 1:
			fn++
		}
	}

	denom := float64(2*tp + fp + fn)
	if denom == 0 {
		return 0, nil
	}
	return 2 * float64(tp) / denom, nil
}

// MeanStd returns the mean and sample standard deviation of xs. A single
// observation has zero deviation.
func MeanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(xs, nil)
	if len(xs) < 2 {
		return mean, 0
	}
	return mean, stat.StdDev(xs, nil)
}
