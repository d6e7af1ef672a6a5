package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/qkbench/qkbench/benchmark"
	"github.com/qkbench/qkbench/pkg/errors"
)

// SaveAccuracyChart renders mean accuracy per feature map as a bar chart
// PNG at path, overwriting any existing file.
func SaveAccuracyChart(path string, quantum []benchmark.QuantumResult) error {
	if len(quantum) == 0 {
		return errors.NewValueError("SaveAccuracyChart", "no quantum results")
	}

	p := plot.New()
	p.Title.Text = "Quantum kernel SVC accuracy by feature map"
	p.Y.Label.Text = "mean accuracy"
	p.Y.Min = 0
	p.Y.Max = 1

	values := make(plotter.Values, len(quantum))
	names := make([]string, len(quantum))
	for i, q := range quantum {
		values[i] = q.MeanAccuracy
		names[i] = q.FeatureMap
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving chart %s", path)
	}
	return nil
}
