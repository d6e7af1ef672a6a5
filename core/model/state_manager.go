// Package model provides the shared estimator plumbing: fitted-state
// management and the interfaces the evaluators consume.
package model

import "fmt"

// StateManager manages the fitted state of an estimator. Estimators hold it
// by composition rather than embedding so the state API stays out of their
// exported surface.
type StateManager struct {
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	return s.fitted
}

// SetFitted marks the estimator as fitted.
func (s *StateManager) SetFitted() {
	s.fitted = true
}

// Reset returns the estimator to its unfitted state.
func (s *StateManager) Reset() {
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the training data shape.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// GetDimensions returns the training data shape seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	return s.nFeatures, s.nSamples
}

// RequireFitted returns an error if the estimator has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.fitted {
		return fmt.Errorf("model has not been fitted yet. Call Fit() first")
	}
	return nil
}
