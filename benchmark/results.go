// Package benchmark runs the two evaluation pipelines: classical models
// under cross-validated grid search, and quantum-kernel SVCs under nested
// cross-validation over the feature-map catalog.
package benchmark

// ClassicalResult is one evaluation outcome of a classical model on one
// train/test split. Rows are append-only.
type ClassicalResult struct {
	Split      int
	Model      string
	Accuracy   float64
	F1         float64
	FitSeconds float64
}

// QuantumResult is the aggregate of one feature-map variant across all its
// splits.
type QuantumResult struct {
	FeatureMap   string
	MeanAccuracy float64
	StdAccuracy  float64
	MeanF1       float64
}
