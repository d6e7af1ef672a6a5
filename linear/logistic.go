// Package linear provides the logistic regression model family used as the
// classical baseline.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/core/model"
	"github.com/qkbench/qkbench/pkg/errors"
)

// LogisticRegression implements binary L2-regularized logistic regression
// over -1/+1 labels, trained by full-batch gradient descent.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	c            float64 // inverse regularization strength
	learningRate float64
	maxIter      int
	tol          float64

	// Fitted parameters
	coef      []float64
	intercept float64
}

// Option is a functional option for LogisticRegression.
type Option func(*LogisticRegression)

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(lr *LogisticRegression) { lr.c = c }
}

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(eta float64) Option {
	return func(lr *LogisticRegression) { lr.learningRate = eta }
}

// WithMaxIter sets the maximum number of gradient steps.
func WithMaxIter(n int) Option {
	return func(lr *LogisticRegression) { lr.maxIter = n }
}

// WithTol sets the gradient-norm stopping tolerance.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) { lr.tol = tol }
}

// NewLogisticRegression creates a LogisticRegression with sklearn-like
// defaults (C=1, 1000 iterations).
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		c:            1.0,
		learningRate: 0.1,
		maxIter:      1000,
		tol:          1e-4,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit trains the model on X and -1/+1 labels y.
func (lr *LogisticRegression) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("LogisticRegression.Fit", r, y.Len(), 0)
	}
	if lr.c <= 0 {
		return errors.NewValidationError("C", "must be positive", lr.c)
	}
	for i := 0; i < r; i++ {
		if v := y.AtVec(i); v != -1 && v != 1 {
			return errors.NewValueError("LogisticRegression.Fit", "labels must be -1 or +1")
		}
	}

	lr.coef = make([]float64, c)
	lr.intercept = 0
	lambda := 1.0 / (lr.c * float64(r))

	grad := make([]float64, c)
	for iter := 0; iter < lr.maxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0

		for i := 0; i < r; i++ {
			margin := lr.intercept
			for j := 0; j < c; j++ {
				margin += lr.coef[j] * X.At(i, j)
			}
			// d/dz of log(1+exp(-y z)) is -y * sigmoid(-y z).
			g := -y.AtVec(i) * sigmoid(-y.AtVec(i)*margin) / float64(r)
			for j := 0; j < c; j++ {
				grad[j] += g * X.At(i, j)
			}
			gradB += g
		}

		norm := gradB * gradB
		for j := 0; j < c; j++ {
			grad[j] += lambda * lr.coef[j]
			norm += grad[j] * grad[j]
		}

		for j := 0; j < c; j++ {
			lr.coef[j] -= lr.learningRate * grad[j]
		}
		lr.intercept -= lr.learningRate * gradB

		if math.Sqrt(norm) < lr.tol {
			break
		}
	}

	lr.state.SetDimensions(c, r)
	lr.state.SetFitted()
	return nil
}

// Predict returns -1/+1 labels for each row of X.
func (lr *LogisticRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "Predict")
	}
	r, c := X.Dims()
	if c != len(lr.coef) {
		return nil, errors.NewDimensionError("LogisticRegression.Predict", len(lr.coef), c, 1)
	}

	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		margin := lr.intercept
		for j := 0; j < c; j++ {
			margin += lr.coef[j] * X.At(i, j)
		}
		if margin >= 0 {
			out.SetVec(i, 1)
		} else {
			out.SetVec(i, -1)
		}
	}
	return out, nil
}

// DecisionFunction returns the raw margin for each row of X.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "DecisionFunction")
	}
	r, c := X.Dims()
	if c != len(lr.coef) {
		return nil, errors.NewDimensionError("LogisticRegression.DecisionFunction", len(lr.coef), c, 1)
	}

	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		margin := lr.intercept
		for j := 0; j < c; j++ {
			margin += lr.coef[j] * X.At(i, j)
		}
		out.SetVec(i, margin)
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
