package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activations captures the intermediates of one forward pass.
type Activations struct {
	Hidden    *mat.VecDense // sigmoid hidden activations, length H
	HiddenAug *mat.VecDense // [1, Hidden...], length H+1
	Output    float64       // sigmoid output probability
}

// Forward evaluates the network on one input: y = sigmoid(W1 * [1, x]),
// z = sigmoid(W2 * [1, y]). Pure: the weights are only read, and repeated
// calls with the same input yield identical activations.
func (p Params) Forward(x float64) Activations {
	h := p.Hidden()
	in := mat.NewVecDense(2, []float64{1, x})

	pre := mat.NewVecDense(h, nil)
	pre.MulVec(p.W1, in)

	hidden := mat.NewVecDense(h, nil)
	aug := mat.NewVecDense(h+1, nil)
	aug.SetVec(0, 1)
	for i := 0; i < h; i++ {
		y := sigmoid(pre.AtVec(i))
		hidden.SetVec(i, y)
		aug.SetVec(i+1, y)
	}

	z := sigmoid(mat.Dot(p.W2.RowView(0), aug))
	return Activations{Hidden: hidden, HiddenAug: aug, Output: z}
}

// Gradients holds one sample's weight-update contribution, or the batch
// accumulation of several. Shapes match W1 and W2.
type Gradients struct {
	DW1 *mat.Dense
	DW2 *mat.Dense
}

// NewGradients returns zeroed accumulators for a width-H network.
func NewGradients(hidden int) Gradients {
	return Gradients{
		DW1: mat.NewDense(hidden, 2, nil),
		DW2: mat.NewDense(1, hidden+1, nil),
	}
}

// Accumulate adds other into g.
func (g Gradients) Accumulate(other Gradients) {
	g.DW1.Add(g.DW1, other.DW1)
	g.DW2.Add(g.DW2, other.DW2)
}

// Zero resets the accumulators in place.
func (g Gradients) Zero() {
	g.DW1.Zero()
	g.DW2.Zero()
}

// Gradients computes the hand-derived backpropagation contribution for one
// sample. The output error signal is deltaO = t - z: for a sigmoid output
// under cross-entropy the sigmoid-derivative factor cancels, so none is
// applied at the output layer. The hidden signal applies the derivative
// y*(1-y) to the back-propagated error. Contributions are scaled by lr and
// point in the loss-decreasing direction; the caller adds them to the
// weights.
func (p Params) Gradients(x float64, label int, act Activations, lr float64) Gradients {
	h := p.Hidden()
	deltaO := float64(label) - act.Output

	one := mat.NewVecDense(1, []float64{1})
	dw2 := mat.NewDense(1, h+1, nil)
	dw2.Outer(lr*deltaO, one, act.HiddenAug)

	// W2's bias column does not feed back into the hidden layer.
	deltaH := mat.NewVecDense(h, nil)
	for i := 0; i < h; i++ {
		y := act.Hidden.AtVec(i)
		deltaH.SetVec(i, y*(1-y)*p.W2.At(0, i+1)*deltaO)
	}

	in := mat.NewVecDense(2, []float64{1, x})
	dw1 := mat.NewDense(h, 2, nil)
	dw1.Outer(lr, deltaH, in)

	return Gradients{DW1: dw1, DW2: dw2}
}

// SampleLoss is the binary cross-entropy of predicted probability z
// against label t. eps guards log(0) when z saturates in floating point;
// the guarded argument is capped at 1 so the loss stays non-negative. eps
// only affects the reported value, never the gradient.
func SampleLoss(label int, z, eps float64) float64 {
	t := float64(label)
	return -(t*math.Log(math.Min(z+eps, 1)) + (1-t)*math.Log(math.Min(1-z+eps, 1)))
}

// sigmoid is the logistic function 1/(1+e^-a), computed so large negative
// inputs do not overflow exp.
func sigmoid(a float64) float64 {
	if a >= 0 {
		return 1 / (1 + math.Exp(-a))
	}
	e := math.Exp(a)
	return e / (1 + e)
}
