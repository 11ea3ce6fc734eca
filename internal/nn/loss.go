package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gradnet-ml/gradnet/internal/parallel"
)

// Loss pairs the two loss figures tracked per batch.
type Loss struct {
	CrossEntropy float64 // Mean categorical cross-entropy.
	Misclass     float64 // Fraction of samples whose arg-max disagrees with the label.
}

// Evaluator is the pluggable loss-evaluation capability of a Network. It
// compares output-layer activations against one-hot labels and returns the
// loss figures together with the gradient of the loss with respect to the
// output layer's pre-softmax signals.
type Evaluator interface {
	Evaluate(outputs, oneHot *mat.Dense) (Loss, *mat.Dense)
}

// SoftmaxEvaluator fuses a row-wise softmax, categorical cross-entropy, the
// misclassification rate, and the closed-form loss gradient
// (1/N)·(softmax(outputs) − oneHot) into one evaluation.
//
// The closed form is the gradient with respect to the output layer's
// pre-softmax signals and holds only when that layer's own activation is
// the identity; the output layer's SeedBackProp applies the (unit)
// derivative correction.
//
// Neither the softmax nor the logarithm is stabilized: a true-class
// probability of zero drives the cross-entropy to +Inf.
type SoftmaxEvaluator struct{}

// Evaluate implements Evaluator.
//
// outputs and oneHot must both be N×C with N > 0; ties in the per-row
// arg-max resolve to the highest maximal index.
func (SoftmaxEvaluator) Evaluate(outputs, oneHot *mat.Dense) (Loss, *mat.Dense) {
	n, c := outputs.Dims()

	probs := Softmax(outputs, AxisRows)

	// Cross-entropy over the probability each row assigns to its true class.
	sumLog := 0.0
	for i := 0; i < n; i++ {
		row := probs.RawRowView(i)
		label := oneHot.RawRowView(i)
		selected := 0.0
		for j := range row {
			selected += row[j] * label[j]
		}
		sumLog += math.Log(selected)
	}
	crossEntropy := -sumLog / float64(n)

	// Predicted class per row, scanned as an unordered fan-out. Each row's
	// scan runs tail-first, so ties resolve to the highest column index.
	predicted := make([]int, n)
	parallel.For(n, func(i int) {
		row := probs.RawRowView(i)
		best := len(row) - 1
		for j := len(row) - 2; j >= 0; j-- {
			if row[j] > row[best] {
				best = j
			}
		}
		predicted[i] = best
	}, fanout)

	truth := ClassIndices(oneHot)
	wrong := 0
	for i, p := range predicted {
		if p != truth[i] {
			wrong++
		}
	}
	misclass := float64(wrong) / float64(n)

	gradient := mat.NewDense(n, c, nil)
	gradient.Sub(probs, oneHot)
	gradient.Scale(1/float64(n), gradient)

	return Loss{CrossEntropy: crossEntropy, Misclass: misclass}, gradient
}
