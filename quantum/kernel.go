package quantum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/qkbench/qkbench/pkg/errors"
)

// Kernel computes a similarity matrix between two batches of feature
// vectors. Entry (i, j) is the similarity of row i of A and row j of B, in
// [0, 1]. Implementations must be deterministic for fixed inputs.
type Kernel interface {
	Matrix(A, B mat.Matrix) (*mat.Dense, error)
}

// maxQubits caps the simulated register; statevectors grow as 2^n.
const maxQubits = 20

// FidelityKernel is a statevector-simulation backend. One qubit per
// feature; each repetition applies RY(x_i) then RZ(x_i) on qubit i, and an
// optional linear chain of ZZ interactions with angle x_i*x_{i+1} entangles
// neighbors once after the rotation layers. The entangling angles must be
// data-dependent: a fixed unitary applied to both encoded states cancels in
// the overlap and would leave the kernel unchanged. The kernel value is
// |<phi(a)|phi(b)>|^2.
type FidelityKernel struct {
	Config FeatureMapConfig
}

// NewFidelityKernel creates a kernel for the given feature map.
func NewFidelityKernel(cfg FeatureMapConfig) *FidelityKernel {
	return &FidelityKernel{Config: cfg}
}

// Matrix computes the pairwise fidelity matrix of the rows of A against the
// rows of B. Any backend failure aborts the computation; there is no retry.
func (k *FidelityKernel) Matrix(A, B mat.Matrix) (*mat.Dense, error) {
	if err := k.Config.Validate(); err != nil {
		return nil, errors.NewKernelError(k.Config.Name, "invalid feature map", err)
	}

	ra, ca := A.Dims()
	rb, cb := B.Dims()
	if ra == 0 || rb == 0 {
		return nil, errors.NewKernelError(k.Config.Name, "empty batch", errors.ErrEmptyData)
	}
	if ca != cb {
		return nil, errors.NewKernelError(k.Config.Name, "batch dimension mismatch",
			errors.NewDimensionError("FidelityKernel.Matrix", ca, cb, 1))
	}
	if ca > maxQubits {
		return nil, errors.NewKernelError(k.Config.Name, "register too large",
			errors.Newf("%d qubits exceeds simulator limit %d", ca, maxQubits))
	}

	statesA := make([][]complex128, ra)
	for i := 0; i < ra; i++ {
		statesA[i] = k.encode(rowOf(A, i))
	}
	statesB := make([][]complex128, rb)
	for j := 0; j < rb; j++ {
		statesB[j] = k.encode(rowOf(B, j))
	}

	K := mat.NewDense(ra, rb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < rb; j++ {
			K.Set(i, j, fidelity(statesA[i], statesB[j]))
		}
	}
	return K, nil
}

// encode prepares the statevector for one feature vector.
func (k *FidelityKernel) encode(x []float64) []complex128 {
	n := len(x)
	state := make([]complex128, 1<<uint(n))
	state[0] = 1

	for rep := 0; rep < k.Config.Reps; rep++ {
		for q := 0; q < n; q++ {
			applyRY(state, q, x[q])
			applyRZ(state, q, x[q])
		}
	}
	if k.Config.Entangle {
		for q := 0; q < n-1; q++ {
			applyRZZ(state, q, q+1, x[q]*x[q+1])
		}
	}
	return state
}

// fidelity returns |<a|b>|^2.
func fidelity(a, b []complex128) float64 {
	var overlap complex128
	for i := range a {
		overlap += cmplx.Conj(a[i]) * b[i]
	}
	f := real(overlap)*real(overlap) + imag(overlap)*imag(overlap)
	// Clamp float noise so downstream code can rely on [0, 1].
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// applyRY applies a Y-rotation by theta on the given qubit.
func applyRY(state []complex128, qubit int, theta float64) {
	cos := complex(math.Cos(theta/2), 0)
	sin := complex(math.Sin(theta/2), 0)
	bit := 1 << uint(qubit)
	for i := range state {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a, b := state[i], state[j]
		state[i] = cos*a - sin*b
		state[j] = sin*a + cos*b
	}
}

// applyRZ applies a Z-rotation by theta on the given qubit.
func applyRZ(state []complex128, qubit int, theta float64) {
	phaseLo := cmplx.Exp(complex(0, -theta/2))
	phaseHi := cmplx.Exp(complex(0, theta/2))
	bit := 1 << uint(qubit)
	for i := range state {
		if i&bit == 0 {
			state[i] *= phaseLo
		} else {
			state[i] *= phaseHi
		}
	}
}

// applyRZZ applies exp(-i theta/2 Z⊗Z) between two qubits: amplitudes pick
// up a phase whose sign depends on the parity of the two bits.
func applyRZZ(state []complex128, q1, q2 int, theta float64) {
	even := cmplx.Exp(complex(0, -theta/2))
	odd := cmplx.Exp(complex(0, theta/2))
	b1 := 1 << uint(q1)
	b2 := 1 << uint(q2)
	for i := range state {
		if (i&b1 != 0) != (i&b2 != 0) {
			state[i] *= odd
		} else {
			state[i] *= even
		}
	}
}

func rowOf(m mat.Matrix, i int) []float64 {
	_, c := m.Dims()
	row := make([]float64, c)
	for j := 0; j < c; j++ {
		row[j] = m.At(i, j)
	}
	return row
}
