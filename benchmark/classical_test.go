package benchmark

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/pkg/log"
)

// toyData is the 8-sample, 2-class, 2-feature set used to pin down the
// evaluator's row count and metric ranges.
func toyData() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(8, 2, []float64{
		-2.0, -1.8,
		-1.6, -2.2,
		-2.3, -2.1,
		-1.9, -1.5,
		2.0, 1.8,
		1.6, 2.2,
		2.3, 2.1,
		1.9, 1.5,
	})
	y := mat.NewVecDense(8, []float64{-1, -1, -1, -1, 1, 1, 1, 1})
	return X, y
}

func TestClassicalEvaluatorRowCount(t *testing.T) {
	X, y := toyData()
	eval := NewClassicalEvaluator(13)
	eval.Logger = log.NewNopLogger()

	rows, err := eval.Run(X, y)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rows) != eval.NSplits*len(eval.Models) {
		t.Fatalf("got %d rows, want %d (splits x models)", len(rows), eval.NSplits*len(eval.Models))
	}

	counts := make(map[string]int)
	for _, row := range rows {
		if row.Accuracy < 0 || row.Accuracy > 1 {
			t.Errorf("row %+v: accuracy outside [0,1]", row)
		}
		if row.F1 < 0 || row.F1 > 1 {
			t.Errorf("row %+v: F1 outside [0,1]", row)
		}
		if row.FitSeconds < 0 {
			t.Errorf("row %+v: negative fit time", row)
		}
		if row.Split < 0 || row.Split >= eval.NSplits {
			t.Errorf("row %+v: split index out of range", row)
		}
		counts[row.Model]++
	}
	for _, spec := range eval.Models {
		if counts[spec.Name] != eval.NSplits {
			t.Errorf("model %s has %d rows, want %d", spec.Name, counts[spec.Name], eval.NSplits)
		}
	}
}

func TestClassicalEvaluatorDeterminism(t *testing.T) {
	X, y := toyData()

	run := func() []ClassicalResult {
		eval := NewClassicalEvaluator(29)
		eval.Logger = log.NewNopLogger()
		rows, err := eval.Run(X, y)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return rows
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		// Fit times are wall clock and may differ; everything else must
		// reproduce exactly.
		if a[i].Split != b[i].Split || a[i].Model != b[i].Model ||
			a[i].Accuracy != b[i].Accuracy || a[i].F1 != b[i].F1 {
			t.Errorf("row %d differs across identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDefaultModelCatalog(t *testing.T) {
	catalog := DefaultModelCatalog()
	if len(catalog) != 4 {
		t.Fatalf("catalog has %d families, want 4", len(catalog))
	}

	wantNames := []string{"logistic_regression", "svc_linear", "svc_poly", "svc_rbf"}
	for i, spec := range catalog {
		if spec.Name != wantNames[i] {
			t.Errorf("catalog[%d].Name = %q, want %q", i, spec.Name, wantNames[i])
		}
		if len(spec.Grid) == 0 {
			t.Errorf("catalog[%d] has an empty grid", i)
		}
		clf := spec.New(spec.Grid.Enumerate()[0])
		if clf == nil {
			t.Errorf("catalog[%d] constructor returned nil", i)
		}
	}
}
