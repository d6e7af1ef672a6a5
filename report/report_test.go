package report

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/qkbench/qkbench/benchmark"
)

func sampleClassical() []benchmark.ClassicalResult {
	return []benchmark.ClassicalResult{
		{Split: 0, Model: "svc_rbf", Accuracy: 0.9, F1: 0.8, FitSeconds: 0.01},
		{Split: 0, Model: "logistic_regression", Accuracy: 0.7, F1: 0.6, FitSeconds: 0.02},
		{Split: 1, Model: "svc_rbf", Accuracy: 0.7, F1: 0.6, FitSeconds: 0.03},
		{Split: 1, Model: "logistic_regression", Accuracy: 0.9, F1: 0.8, FitSeconds: 0.04},
	}
}

func sampleQuantum() []benchmark.QuantumResult {
	return []benchmark.QuantumResult{
		{FeatureMap: "base-d1", MeanAccuracy: 0.75, StdAccuracy: 0.05, MeanF1: 0.7},
		{FeatureMap: "base-d2", MeanAccuracy: 0.95, StdAccuracy: 0.02, MeanF1: 0.9},
		{FeatureMap: "entangled-d1", MeanAccuracy: 0.85, StdAccuracy: 0.03, MeanF1: 0.8},
	}
}

func TestSummarizeClassical(t *testing.T) {
	summaries := SummarizeClassical(sampleClassical())
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	// First-seen model order is preserved.
	if summaries[0].Model != "svc_rbf" || summaries[1].Model != "logistic_regression" {
		t.Errorf("unexpected model order: %q, %q", summaries[0].Model, summaries[1].Model)
	}

	for _, s := range summaries {
		if math.Abs(s.MeanAccuracy-0.8) > 1e-9 {
			t.Errorf("%s: mean accuracy = %v, want 0.8", s.Model, s.MeanAccuracy)
		}
		if math.Abs(s.MeanF1-0.7) > 1e-9 {
			t.Errorf("%s: mean F1 = %v, want 0.7", s.Model, s.MeanF1)
		}
		if s.StdAccuracy <= 0 {
			t.Errorf("%s: std accuracy = %v, want > 0", s.Model, s.StdAccuracy)
		}
	}
}

func TestSortQuantum(t *testing.T) {
	original := sampleQuantum()
	sorted := SortQuantum(original)

	wantOrder := []string{"base-d2", "entangled-d1", "base-d1"}
	for i, name := range wantOrder {
		if sorted[i].FeatureMap != name {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].FeatureMap, name)
		}
	}

	// Input order is untouched.
	if original[0].FeatureMap != "base-d1" {
		t.Error("SortQuantum mutated its input")
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := WriteWorkbook(path, sampleClassical(), sampleQuantum()); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != ClassicalSheet || sheets[1] != QuantumSheet {
		t.Fatalf("sheets = %v, want [%q, %q]", sheets, ClassicalSheet, QuantumSheet)
	}

	model, err := f.GetCellValue(ClassicalSheet, "B2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if model != "svc_rbf" {
		t.Errorf("classical B2 = %q, want %q", model, "svc_rbf")
	}

	fm, err := f.GetCellValue(QuantumSheet, "A2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if fm != "base-d1" {
		t.Errorf("quantum A2 = %q, want %q", fm, "base-d1")
	}
}

func TestWriteWorkbookOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := WriteWorkbook(path, sampleClassical(), sampleQuantum()); err != nil {
		t.Fatalf("first WriteWorkbook() error = %v", err)
	}
	if err := WriteWorkbook(path, sampleClassical()[:1], sampleQuantum()[:1]); err != nil {
		t.Fatalf("second WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(ClassicalSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 { // header + one row
		t.Errorf("classical sheet has %d rows, want 2 after overwrite", len(rows))
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, SummarizeClassical(sampleClassical()), SortQuantum(sampleQuantum()), "out.xlsx")

	out := buf.String()
	for _, want := range []string{"svc_rbf", "logistic_regression", "base-d2", "out.xlsx"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q", want)
		}
	}
}

func TestSaveAccuracyChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := SaveAccuracyChart(path, sampleQuantum()); err != nil {
		t.Fatalf("SaveAccuracyChart() error = %v", err)
	}

	if err := SaveAccuracyChart(path, nil); err == nil {
		t.Error("SaveAccuracyChart() with no rows should return an error")
	}
}
