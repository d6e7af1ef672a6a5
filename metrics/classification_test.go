package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "All correct",
			yTrue: []float64{-1, 1, -1, 1},
			yPred: []float64{-1, 1, -1, 1},
			want:  1.0,
		},
		{
			name:  "All wrong",
			yTrue: []float64{-1, 1, -1, 1},
			yPred: []float64{1, -1, 1, -1},
			want:  0.0,
		},
		{
			name:  "Half correct",
			yTrue: []float64{-1, 1, -1, 1},
			yPred: []float64{-1, 1, 1, -1},
			want:  0.5,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{-1, 1},
			yPred:   []float64{-1},
			wantErr: true,
		},
		{
			name:    "Empty vectors",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(vecOrEmpty(tt.yTrue), vecOrEmpty(tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Errorf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestF1(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect predictions",
			yTrue: []float64{-1, -1, 1, 1},
			yPred: []float64{-1, -1, 1, 1},
			want:  1.0,
		},
		{
			name:  "One false positive one false negative",
			yTrue: []float64{1, 1, -1, -1},
			yPred: []float64{1, -1, 1, -1},
			want:  0.5,
		},
		{
			name:  "No positives anywhere",
			yTrue: []float64{-1, -1, -1},
			yPred: []float64{-1, -1, -1},
			want:  0.0,
		},
		{
			name:  "All predicted negative with actual positives",
			yTrue: []float64{1, 1, -1},
			yPred: []float64{-1, -1, -1},
			want:  0.0,
		},
		{
			name:    "Non-binary label",
			yTrue:   []float64{0, 1},
			yPred:   []float64{1, 1},
			wantErr: true,
		},
		{
			name:    "Non-binary prediction",
			yTrue:   []float64{-1, 1},
			yPred:   []float64{0.5, 1},
			wantErr: true,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{-1, 1},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := F1(vecOrEmpty(tt.yTrue), vecOrEmpty(tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Errorf("F1() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("F1() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		wantMean float64
		wantStd  float64
	}{
		{
			name:     "Constant values",
			xs:       []float64{0.5, 0.5, 0.5},
			wantMean: 0.5,
			wantStd:  0.0,
		},
		{
			name:     "Known sample deviation",
			xs:       []float64{1, 2, 3, 4},
			wantMean: 2.5,
			wantStd:  math.Sqrt(5.0 / 3.0),
		},
		{
			name:     "Single observation",
			xs:       []float64{0.9},
			wantMean: 0.9,
			wantStd:  0.0,
		},
		{
			name:     "Empty input",
			xs:       nil,
			wantMean: 0.0,
			wantStd:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := MeanStd(tt.xs)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("MeanStd() mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("MeanStd() std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func vecOrEmpty(xs []float64) *mat.VecDense {
	if len(xs) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(xs), xs)
}
