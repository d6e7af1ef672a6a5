// Package dataset generates the synthetic binary classification data the
// benchmark runs on: two Gaussian clusters displaced along a random
// direction, linearly separable for the default separation, labels in
// {-1, +1}.
package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/pkg/errors"
)

// Config controls the synthetic generator. Determinism follows from Seed
// alone; no process-wide random state is touched.
type Config struct {
	// NSamples is the total number of samples across both classes.
	NSamples int

	// NFeatures is the feature dimensionality.
	NFeatures int

	// ClassSep is the distance between the two class centroids. Larger
	// values give cleaner linear separability. Zero selects the default.
	ClassSep float64

	// PositiveFraction is the share of samples labeled +1. Zero selects a
	// balanced set.
	PositiveFraction float64

	// Seed drives all sampling.
	Seed uint64
}

// Dataset is the immutable sample set: X is NSamples x NFeatures, Y holds
// -1/+1 labels. Neither is mutated after generation.
type Dataset struct {
	X *mat.Dense
	Y *mat.VecDense
}

const (
	defaultClassSep         = 2.0
	defaultPositiveFraction = 0.5
)

// Generate builds a Dataset from cfg. Invalid configuration is fatal for
// the caller; there is nothing to retry.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.NSamples < 4 {
		return nil, errors.NewValidationError("n_samples", "must be >= 4", cfg.NSamples)
	}
	if cfg.NFeatures < 1 {
		return nil, errors.NewValidationError("n_features", "must be >= 1", cfg.NFeatures)
	}
	sep := cfg.ClassSep
	if sep == 0 {
		sep = defaultClassSep
	}
	if sep < 0 {
		return nil, errors.NewValidationError("class_sep", "must be positive", cfg.ClassSep)
	}
	frac := cfg.PositiveFraction
	if frac == 0 {
		frac = defaultPositiveFraction
	}
	if frac <= 0 || frac >= 1 {
		return nil, errors.NewValidationError("positive_fraction", "must be in (0, 1)", cfg.PositiveFraction)
	}

	nPos := int(math.Round(frac * float64(cfg.NSamples)))
	if nPos < 1 {
		nPos = 1
	}
	if nPos > cfg.NSamples-1 {
		nPos = cfg.NSamples - 1
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xa0761d6478bd642f))

	// Random unit direction separating the two centroids.
	direction := make([]float64, cfg.NFeatures)
	for {
		for j := range direction {
			direction[j] = rng.NormFloat64()
		}
		if norm := floats.Norm(direction, 2); norm > 1e-12 {
			floats.Scale(1/norm, direction)
			break
		}
	}

	X := mat.NewDense(cfg.NSamples, cfg.NFeatures, nil)
	Y := mat.NewVecDense(cfg.NSamples, nil)
	for i := 0; i < cfg.NSamples; i++ {
		label := -1.0
		offset := -sep / 2
		if i < nPos {
			label = 1.0
			offset = sep / 2
		}
		for j := 0; j < cfg.NFeatures; j++ {
			X.Set(i, j, rng.NormFloat64()+offset*direction[j])
		}
		Y.SetVec(i, label)
	}

	return &Dataset{X: X, Y: Y}, nil
}

// NumSamples returns the number of samples in the set.
func (d *Dataset) NumSamples() int {
	r, _ := d.X.Dims()
	return r
}

// NumFeatures returns the feature dimensionality.
func (d *Dataset) NumFeatures() int {
	_, c := d.X.Dims()
	return c
}
