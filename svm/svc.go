// Package svm implements a binary support-vector classifier with linear,
// polynomial, RBF, and precomputed kernels. The precomputed mode is what the
// quantum evaluator uses: it accepts a Gram matrix instead of raw features,
// so kernel values computed once per split can be re-sliced across folds.
package svm

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/core/model"
	"github.com/qkbench/qkbench/pkg/errors"
)

// KernelType selects the similarity function of an SVC.
type KernelType int

const (
	// Linear is the inner-product kernel.
	Linear KernelType = iota
	// Poly is the polynomial kernel (gamma*<a,b> + coef0)^degree.
	Poly
	// RBF is the Gaussian kernel exp(-gamma*||a-b||^2).
	RBF
	// Precomputed consumes a caller-supplied Gram matrix. Fit expects the
	// square train-train block; Predict expects a rows x n_train block.
	Precomputed
)

// String returns the kernel name used in reports.
func (k KernelType) String() string {
	switch k {
	case Linear:
		return "linear"
	case Poly:
		return "poly"
	case RBF:
		return "rbf"
	case Precomputed:
		return "precomputed"
	default:
		return "unknown"
	}
}

// SVC is a C-regularized support-vector classifier over -1/+1 labels,
// trained with a simplified SMO optimizer.
type SVC struct {
	state *model.StateManager

	// Hyperparameters
	kernel    KernelType
	c         float64
	gamma     float64
	coef0     float64
	degree    int
	tol       float64
	maxPasses int
	maxIter   int
	seed      uint64

	// Fitted parameters. alphaY[i] = alpha_i * y_i over the training set;
	// for explicit kernels entries below the support threshold are kept but
	// contribute nothing.
	x      *mat.Dense // training features; nil for precomputed
	alphaY []float64
	b      float64
	nTrain int
}

// SVCOption is a functional option for SVC.
type SVCOption func(*SVC)

// WithKernel selects the kernel function.
func WithKernel(k KernelType) SVCOption {
	return func(s *SVC) { s.kernel = k }
}

// WithC sets the regularization constant.
func WithC(c float64) SVCOption {
	return func(s *SVC) { s.c = c }
}

// WithGamma sets the kernel coefficient for Poly and RBF.
func WithGamma(gamma float64) SVCOption {
	return func(s *SVC) { s.gamma = gamma }
}

// WithCoef0 sets the independent term of the Poly kernel.
func WithCoef0(c float64) SVCOption {
	return func(s *SVC) { s.coef0 = c }
}

// WithDegree sets the Poly kernel degree.
func WithDegree(d int) SVCOption {
	return func(s *SVC) { s.degree = d }
}

// WithTol sets the KKT violation tolerance.
func WithTol(tol float64) SVCOption {
	return func(s *SVC) { s.tol = tol }
}

// WithSeed sets the seed of the SMO working-pair selection.
func WithSeed(seed uint64) SVCOption {
	return func(s *SVC) { s.seed = seed }
}

// NewSVC creates an SVC with sklearn-like defaults: RBF kernel, C=1,
// gamma=1, degree=3.
func NewSVC(opts ...SVCOption) *SVC {
	s := &SVC{
		state:     model.NewStateManager(),
		kernel:    RBF,
		c:         1.0,
		gamma:     1.0,
		coef0:     0.0,
		degree:    3,
		tol:       1e-3,
		maxPasses: 5,
		maxIter:   1000,
		seed:      42,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit trains the classifier. For Precomputed, X must be the square
// train-train Gram matrix; otherwise X is n_samples x n_features.
func (s *SVC) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SVC.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return errors.NewDimensionError("SVC.Fit", r, y.Len(), 0)
	}
	if s.c <= 0 {
		return errors.NewValidationError("C", "must be positive", s.c)
	}
	if s.kernel == Precomputed && r != c {
		return errors.NewDimensionError("SVC.Fit", r, c, 1)
	}

	hasPos, hasNeg := false, false
	for i := 0; i < r; i++ {
		switch y.AtVec(i) {
		case 1:
			hasPos = true
		case -1:
			hasNeg = true
		default:
			return errors.NewValueError("SVC.Fit", "labels must be -1 or +1")
		}
	}
	if !hasPos || !hasNeg {
		return errors.WithStack(errors.ErrSingleClass)
	}

	// Materialize the Gram matrix once; SMO touches entries many times.
	K := mat.NewDense(r, r, nil)
	if s.kernel == Precomputed {
		s.x = nil
		K.Copy(X)
	} else {
		s.x = mat.DenseCopyOf(X)
		for i := 0; i < r; i++ {
			for j := i; j < r; j++ {
				v := s.kernelValue(s.row(i), s.row(j))
				K.Set(i, j, v)
				K.Set(j, i, v)
			}
		}
	}

	alpha := make([]float64, r)
	s.b = 0
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0xe7037ed1a0b428db))

	f := func(i int) float64 {
		sum := s.b
		for k := 0; k < r; k++ {
			if alpha[k] != 0 {
				sum += alpha[k] * y.AtVec(k) * K.At(i, k)
			}
		}
		return sum
	}

	passes := 0
	for iter := 0; passes < s.maxPasses && iter < s.maxIter; iter++ {
		changed := 0
		for i := 0; i < r; i++ {
			Ei := f(i) - y.AtVec(i)
			yi := y.AtVec(i)
			if !((yi*Ei < -s.tol && alpha[i] < s.c) || (yi*Ei > s.tol && alpha[i] > 0)) {
				continue
			}

			j := rng.IntN(r - 1)
			if j >= i {
				j++
			}
			Ej := f(j) - y.AtVec(j)
			yj := y.AtVec(j)

			aiOld, ajOld := alpha[i], alpha[j]
			var lo, hi float64
			if yi != yj {
				lo = math.Max(0, ajOld-aiOld)
				hi = math.Min(s.c, s.c+ajOld-aiOld)
			} else {
				lo = math.Max(0, aiOld+ajOld-s.c)
				hi = math.Min(s.c, aiOld+ajOld)
			}
			if lo == hi {
				continue
			}

			eta := 2*K.At(i, j) - K.At(i, i) - K.At(j, j)
			if eta >= 0 {
				continue
			}

			aj := ajOld - yj*(Ei-Ej)/eta
			if aj > hi {
				aj = hi
			} else if aj < lo {
				aj = lo
			}
			if math.Abs(aj-ajOld) < 1e-5 {
				continue
			}
			ai := aiOld + yi*yj*(ajOld-aj)

			b1 := s.b - Ei - yi*(ai-aiOld)*K.At(i, i) - yj*(aj-ajOld)*K.At(i, j)
			b2 := s.b - Ej - yi*(ai-aiOld)*K.At(i, j) - yj*(aj-ajOld)*K.At(j, j)
			switch {
			case ai > 0 && ai < s.c:
				s.b = b1
			case aj > 0 && aj < s.c:
				s.b = b2
			default:
				s.b = (b1 + b2) / 2
			}

			alpha[i], alpha[j] = ai, aj
			changed++
		}
		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}

	s.alphaY = make([]float64, r)
	for i := 0; i < r; i++ {
		s.alphaY[i] = alpha[i] * y.AtVec(i)
	}
	s.nTrain = r

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Predict returns -1/+1 labels for each row of X. For Precomputed, X must
// be a rows x n_train kernel block against the training samples, in
// training order.
func (s *SVC) Predict(X mat.Matrix) (*mat.VecDense, error) {
	df, err := s.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(df.Len(), nil)
	for i := 0; i < df.Len(); i++ {
		if df.AtVec(i) >= 0 {
			out.SetVec(i, 1)
		} else {
			out.SetVec(i, -1)
		}
	}
	return out, nil
}

// DecisionFunction returns the signed margin for each row of X.
func (s *SVC) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "DecisionFunction")
	}
	r, c := X.Dims()

	out := mat.NewVecDense(r, nil)
	if s.kernel == Precomputed {
		if c != s.nTrain {
			return nil, errors.NewDimensionError("SVC.DecisionFunction", s.nTrain, c, 1)
		}
		for i := 0; i < r; i++ {
			sum := s.b
			for k := 0; k < s.nTrain; k++ {
				if s.alphaY[k] != 0 {
					sum += s.alphaY[k] * X.At(i, k)
				}
			}
			out.SetVec(i, sum)
		}
		return out, nil
	}

	_, nf := s.x.Dims()
	if c != nf {
		return nil, errors.NewDimensionError("SVC.DecisionFunction", nf, c, 1)
	}
	xi := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			xi[j] = X.At(i, j)
		}
		sum := s.b
		for k := 0; k < s.nTrain; k++ {
			if s.alphaY[k] != 0 {
				sum += s.alphaY[k] * s.kernelValue(s.row(k), xi)
			}
		}
		out.SetVec(i, sum)
	}
	return out, nil
}

// Kernel returns the configured kernel type.
func (s *SVC) Kernel() KernelType {
	return s.kernel
}

func (s *SVC) row(i int) []float64 {
	return s.x.RawRowView(i)
}

func (s *SVC) kernelValue(a, b []float64) float64 {
	switch s.kernel {
	case Linear:
		return dot(a, b)
	case Poly:
		return math.Pow(s.gamma*dot(a, b)+s.coef0, float64(s.degree))
	case RBF:
		d := 0.0
		for i := range a {
			diff := a[i] - b[i]
			d += diff * diff
		}
		return math.Exp(-s.gamma * d)
	default:
		return 0
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
