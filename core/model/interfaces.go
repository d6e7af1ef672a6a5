package model

import "gonum.org/v1/gonum/mat"

// Classifier is the contract every model family in the benchmark satisfies.
// Labels are -1/+1. X is n_samples x n_features, or a kernel block for
// precomputed-kernel classifiers.
type Classifier interface {
	// Fit trains the classifier on X and label vector y.
	Fit(X mat.Matrix, y *mat.VecDense) error

	// Predict returns a vector of -1/+1 labels, one per row of X.
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Transformer is a fit-once, apply-many feature transformation such as the
// scalers in the preprocessing package.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
