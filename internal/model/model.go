package model

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Params holds the weights of the two-layer sigmoid classifier.
//
// W1 is (H, 2): column 0 carries each hidden unit's bias, column 1 its
// weight on the scalar input. W2 is (1, H+1): column 0 is the output bias,
// columns 1..H the weights on the hidden activations.
type Params struct {
	W1 *mat.Dense
	W2 *mat.Dense
}

// NewParams draws initial weights from a seeded source so runs are
// reproducible. Draws are 0.5x standard normal, small enough to keep the
// initial activations off the sigmoid's saturated tails.
func NewParams(hidden int, seed int64) Params {
	rng := rand.New(rand.NewSource(seed))
	w1 := make([]float64, hidden*2)
	for i := range w1 {
		w1[i] = 0.5 * rng.NormFloat64()
	}
	w2 := make([]float64, hidden+1)
	for i := range w2 {
		w2[i] = 0.5 * rng.NormFloat64()
	}
	return Params{
		W1: mat.NewDense(hidden, 2, w1),
		W2: mat.NewDense(1, hidden+1, w2),
	}
}

// Hidden returns the hidden-layer width H.
func (p Params) Hidden() int {
	h, _ := p.W1.Dims()
	return h
}

// Clone deep-copies the weights.
func (p Params) Clone() Params {
	return Params{
		W1: mat.DenseCopyOf(p.W1),
		W2: mat.DenseCopyOf(p.W2),
	}
}

// Predict returns the output probability for x and the 0/1 class decision
// at the 0.5 boundary.
func (p Params) Predict(x float64) (float64, int) {
	z := p.Forward(x).Output
	if z >= 0.5 {
		return z, 1
	}
	return z, 0
}
