// Package qkbench benchmarks classical machine-learning classifiers against
// quantum-kernel support-vector classifiers on a synthetic binary dataset.
//
// The pipeline generates a linearly-separable sample set, evaluates four
// classical model families under cross-validated grid search, sweeps five
// quantum feature-map variants with a fidelity kernel and nested
// cross-validation, and exports comparative accuracy/F1 statistics to a
// two-sheet spreadsheet.
//
// See cmd/qkbench for the runnable entry point.
package qkbench
