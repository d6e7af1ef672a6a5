package quantum

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func angleBatch() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		0.1, 0.7, 1.3, 2.9,
		2.2, 0.4, 3.1, 0.8,
		1.0, 1.0, 1.0, 1.0,
		0.0, 3.0, 0.5, 2.5,
	})
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 5 {
		t.Fatalf("Catalog() has %d entries, want 5", len(catalog))
	}

	want := []FeatureMapConfig{
		{Name: "base-d1", Reps: 1, Entangle: false, Scale: 1.0},
		{Name: "base-d2", Reps: 2, Entangle: false, Scale: 1.0},
		{Name: "base-d1-s05", Reps: 1, Entangle: false, Scale: 0.5},
		{Name: "entangled-d1", Reps: 1, Entangle: true, Scale: 1.0},
		{Name: "entangled-d1-s05", Reps: 1, Entangle: true, Scale: 0.5},
	}
	for i, cfg := range catalog {
		if cfg != want[i] {
			t.Errorf("Catalog()[%d] = %+v, want %+v", i, cfg, want[i])
		}
	}
}

func TestFidelityKernelTrainBlock(t *testing.T) {
	X := angleBatch()
	for _, cfg := range Catalog() {
		t.Run(cfg.Name, func(t *testing.T) {
			K, err := NewFidelityKernel(cfg).Matrix(X, X)
			if err != nil {
				t.Fatalf("Matrix() error = %v", err)
			}

			r, c := K.Dims()
			if r != 4 || c != 4 {
				t.Fatalf("Matrix() dims = (%d, %d), want (4, 4)", r, c)
			}
			for i := 0; i < r; i++ {
				if math.Abs(K.At(i, i)-1) > 1e-9 {
					t.Errorf("diagonal entry (%d,%d) = %v, want 1", i, i, K.At(i, i))
				}
				for j := 0; j < c; j++ {
					v := K.At(i, j)
					if v < 0 || v > 1 {
						t.Errorf("entry (%d,%d) = %v outside [0,1]", i, j, v)
					}
					if math.Abs(v-K.At(j, i)) > 1e-9 {
						t.Errorf("asymmetry at (%d,%d): %v vs %v", i, j, v, K.At(j, i))
					}
				}
			}
		})
	}
}

func TestFidelityKernelRectangularBlock(t *testing.T) {
	A := angleBatch()
	B := mat.NewDense(2, 4, []float64{
		0.3, 0.6, 0.9, 1.2,
		2.0, 1.5, 1.0, 0.5,
	})

	K, err := NewFidelityKernel(Catalog()[0]).Matrix(B, A)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	r, c := K.Dims()
	if r != 2 || c != 4 {
		t.Errorf("Matrix() dims = (%d, %d), want (2, 4)", r, c)
	}
}

func TestFidelityKernelScaleChangesValues(t *testing.T) {
	X := angleBatch()
	kernel := NewFidelityKernel(FeatureMapConfig{Name: "base-d1", Reps: 1, Scale: 1})

	full, err := kernel.Matrix(X, X)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}

	half := mat.DenseCopyOf(X)
	half.Scale(0.5, half)
	scaled, err := kernel.Matrix(half, half)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}

	if mat.EqualApprox(full, scaled, 1e-12) {
		t.Error("halving the input angles left the kernel matrix unchanged")
	}
}

func TestFidelityKernelEntanglementChangesValues(t *testing.T) {
	X := angleBatch()
	plain, err := NewFidelityKernel(FeatureMapConfig{Name: "base", Reps: 1, Scale: 1}).Matrix(X, X)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	entangled, err := NewFidelityKernel(FeatureMapConfig{Name: "chain", Reps: 1, Entangle: true, Scale: 1}).Matrix(X, X)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	if mat.EqualApprox(plain, entangled, 1e-12) {
		t.Error("entangling chain left the kernel matrix unchanged")
	}
}

func TestFidelityKernelDeterminism(t *testing.T) {
	X := angleBatch()
	kernel := NewFidelityKernel(Catalog()[3])
	a, err := kernel.Matrix(X, X)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	b, err := kernel.Matrix(X, X)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	if !mat.EqualApprox(a, b, 0) {
		t.Error("identical inputs produced different kernel matrices")
	}
}

func TestFidelityKernelErrors(t *testing.T) {
	X := angleBatch()

	t.Run("Dimension mismatch", func(t *testing.T) {
		B := mat.NewDense(2, 3, nil)
		if _, err := NewFidelityKernel(Catalog()[0]).Matrix(X, B); err == nil {
			t.Error("mismatched feature dimensions should return an error")
		}
	})

	t.Run("Register too large", func(t *testing.T) {
		wide := mat.NewDense(1, 25, nil)
		if _, err := NewFidelityKernel(Catalog()[0]).Matrix(wide, wide); err == nil {
			t.Error("25 qubits should exceed the simulator limit")
		}
	})

	t.Run("Empty batch", func(t *testing.T) {
		empty := &mat.Dense{}
		if _, err := NewFidelityKernel(Catalog()[0]).Matrix(empty, X); err == nil {
			t.Error("empty batch should return an error")
		}
	})

	t.Run("Invalid config", func(t *testing.T) {
		bad := FeatureMapConfig{Name: "bad", Reps: 0, Scale: 1}
		if _, err := NewFidelityKernel(bad).Matrix(X, X); err == nil {
			t.Error("reps=0 should return an error")
		}
	})
}
