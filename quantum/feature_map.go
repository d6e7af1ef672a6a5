// Package quantum provides the fidelity (overlap) kernel the quantum
// evaluator scores: a parameterized feature map encodes each sample into a
// statevector, and the kernel value is the squared overlap of two encoded
// states. The evaluator depends only on the Kernel interface, so tests can
// substitute a stub backend.
package quantum

import "fmt"

// FeatureMapConfig describes one feature-map variant: how many times the
// base rotation layer repeats, whether a linear nearest-neighbor entangling
// chain follows it, and a uniform rescaling applied to the input angles.
//
// Scale is not part of the encoding itself: callers multiply feature values
// by Scale before handing them to the kernel.
type FeatureMapConfig struct {
	Name     string
	Reps     int
	Entangle bool
	Scale    float64
}

// String returns the catalog name of the configuration.
func (c FeatureMapConfig) String() string {
	return c.Name
}

// Catalog returns the fixed, ordered set of feature-map variants the
// benchmark sweeps. Order matters for reporting and reproducibility.
func Catalog() []FeatureMapConfig {
	return []FeatureMapConfig{
		{Name: "base-d1", Reps: 1, Entangle: false, Scale: 1.0},
		{Name: "base-d2", Reps: 2, Entangle: false, Scale: 1.0},
		{Name: "base-d1-s05", Reps: 1, Entangle: false, Scale: 0.5},
		{Name: "entangled-d1", Reps: 1, Entangle: true, Scale: 1.0},
		{Name: "entangled-d1-s05", Reps: 1, Entangle: true, Scale: 0.5},
	}
}

// Validate checks the configuration is usable.
func (c FeatureMapConfig) Validate() error {
	if c.Reps < 1 {
		return fmt.Errorf("feature map %q: reps must be >= 1, got %d", c.Name, c.Reps)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("feature map %q: scale must be positive, got %g", c.Name, c.Scale)
	}
	return nil
}
