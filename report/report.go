// Package report aggregates evaluation rows into summary tables and writes
// the run artifacts: a two-sheet spreadsheet, console tables, and an
// accuracy chart.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"

	"github.com/qkbench/qkbench/benchmark"
	"github.com/qkbench/qkbench/metrics"
	"github.com/qkbench/qkbench/pkg/errors"
)

// Sheet names of the output workbook.
const (
	ClassicalSheet = "Classical Results"
	QuantumSheet   = "Quantum Results"
)

// ClassicalSummary aggregates all splits of one classical model family.
type ClassicalSummary struct {
	Model          string
	MeanAccuracy   float64
	StdAccuracy    float64
	MeanF1         float64
	StdF1          float64
	MeanFitSeconds float64
}

// SummarizeClassical groups result rows by model name, preserving first-seen
// model order, and computes mean/std statistics per group.
func SummarizeClassical(rows []benchmark.ClassicalResult) []ClassicalSummary {
	order := make([]string, 0)
	accs := make(map[string][]float64)
	f1s := make(map[string][]float64)
	fits := make(map[string][]float64)
	for _, row := range rows {
		if _, seen := accs[row.Model]; !seen {
			order = append(order, row.Model)
		}
		accs[row.Model] = append(accs[row.Model], row.Accuracy)
		f1s[row.Model] = append(f1s[row.Model], row.F1)
		fits[row.Model] = append(fits[row.Model], row.FitSeconds)
	}

	out := make([]ClassicalSummary, 0, len(order))
	for _, name := range order {
		meanAcc, stdAcc := metrics.MeanStd(accs[name])
		meanF1, stdF1 := metrics.MeanStd(f1s[name])
		meanFit, _ := metrics.MeanStd(fits[name])
		out = append(out, ClassicalSummary{
			Model:          name,
			MeanAccuracy:   meanAcc,
			StdAccuracy:    stdAcc,
			MeanF1:         meanF1,
			StdF1:          stdF1,
			MeanFitSeconds: meanFit,
		})
	}
	return out
}

// SortQuantum returns a copy of rows ordered by descending mean accuracy.
// Equal accuracies keep their catalog order.
func SortQuantum(rows []benchmark.QuantumResult) []benchmark.QuantumResult {
	out := make([]benchmark.QuantumResult, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanAccuracy > out[j].MeanAccuracy
	})
	return out
}

// WriteWorkbook writes raw classical rows and quantum summary rows as two
// sheets of one xlsx file, overwriting any existing file at path.
func WriteWorkbook(path string, classical []benchmark.ClassicalResult, quantum []benchmark.QuantumResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ClassicalSheet); err != nil {
		return errors.Wrap(err, "renaming classical sheet")
	}
	if _, err := f.NewSheet(QuantumSheet); err != nil {
		return errors.Wrap(err, "creating quantum sheet")
	}

	classicalHeader := []interface{}{"split", "model", "accuracy", "f1", "fit_time_s"}
	if err := setRow(f, ClassicalSheet, 1, classicalHeader); err != nil {
		return err
	}
	for i, row := range classical {
		values := []interface{}{row.Split, row.Model, row.Accuracy, row.F1, row.FitSeconds}
		if err := setRow(f, ClassicalSheet, i+2, values); err != nil {
			return err
		}
	}

	quantumHeader := []interface{}{"feature_map", "mean_accuracy", "std_accuracy", "mean_f1"}
	if err := setRow(f, QuantumSheet, 1, quantumHeader); err != nil {
		return err
	}
	for i, row := range quantum {
		values := []interface{}{row.FeatureMap, row.MeanAccuracy, row.StdAccuracy, row.MeanF1}
		if err := setRow(f, QuantumSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving workbook %s", path)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "writing row %d of %s", row, sheet)
	}
	return nil
}

// PrintSummary writes both summary tables to w, followed by a completion
// line naming the output file.
func PrintSummary(w io.Writer, classical []ClassicalSummary, quantum []benchmark.QuantumResult, outPath string) {
	fmt.Fprintln(w, "Classical models (grouped over splits):")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "model\tmean acc\tstd acc\tmean f1\tstd f1\tmean fit [s]")
	for _, s := range classical {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4g\n",
			s.Model, s.MeanAccuracy, s.StdAccuracy, s.MeanF1, s.StdF1, s.MeanFitSeconds)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quantum feature maps (sorted by mean accuracy):")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "feature map\tmean acc\tstd acc\tmean f1")
	for _, q := range quantum {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\n",
			q.FeatureMap, q.MeanAccuracy, q.StdAccuracy, q.MeanF1)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Benchmark complete. Results written to %s\n", outPath)
}
