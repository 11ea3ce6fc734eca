package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSoftmaxEvaluatorTiedRow(t *testing.T) {
	outputs := mat.NewDense(3, 2, []float64{
		10, 0,
		0, 10,
		5, 5,
	})
	labels := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 0,
	})

	loss, gradient := SoftmaxEvaluator{}.Evaluate(outputs, labels)

	// Rows one and two are confidently correct; the tied third row scans
	// to column 1 and disagrees with its label.
	assert.InDelta(t, 1.0/3.0, loss.Misclass, 1e-12)

	// -(1/3)·(log p0 + log p1 + log 0.5) with p = sigmoid(10).
	p := 1 / (1 + math.Exp(-10))
	wantCE := -(math.Log(p) + math.Log(p) + math.Log(0.5)) / 3
	assert.InDelta(t, wantCE, loss.CrossEntropy, 1e-12)

	// Gradient = (1/3)·(softmax(outputs) - labels).
	assert.InDelta(t, (p-1)/3, gradient.At(0, 0), 1e-12)
	assert.InDelta(t, (1-p)/3, gradient.At(0, 1), 1e-12)
	assert.InDelta(t, (0.5-1)/3, gradient.At(2, 0), 1e-12)
	assert.InDelta(t, 0.5/3, gradient.At(2, 1), 1e-12)
}

func TestSoftmaxEvaluatorPeakedLogits(t *testing.T) {
	// Strongly peaked logits matching their labels: cross-entropy collapses
	// toward zero and nothing is misclassified.
	outputs := mat.NewDense(2, 3, []float64{
		100, 0, 0,
		0, 0, 100,
	})
	labels := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		0, 0, 1,
	})

	loss, _ := SoftmaxEvaluator{}.Evaluate(outputs, labels)

	assert.Equal(t, 0.0, loss.Misclass)
	assert.InDelta(t, 0.0, loss.CrossEntropy, 1e-12)
}

func TestSoftmaxEvaluatorZeroProbability(t *testing.T) {
	// exp(-746) underflows to exactly zero, so the true class gets
	// probability 0 and log(0) drives the cross-entropy to +Inf. There is
	// no error path for this.
	outputs := mat.NewDense(1, 2, []float64{-746, 0})
	labels := mat.NewDense(1, 2, []float64{1, 0})

	loss, _ := SoftmaxEvaluator{}.Evaluate(outputs, labels)

	assert.True(t, math.IsInf(loss.CrossEntropy, 1), "got %v", loss.CrossEntropy)
	assert.Equal(t, 1.0, loss.Misclass)
}

func TestSoftmaxEvaluatorGradientShape(t *testing.T) {
	outputs := mat.NewDense(4, 3, []float64{
		1, 2, 3,
		3, 2, 1,
		0, 0, 1,
		1, 0, 0,
	})
	labels := mat.NewDense(4, 3, []float64{
		0, 0, 1,
		1, 0, 0,
		0, 0, 1,
		1, 0, 0,
	})

	_, gradient := SoftmaxEvaluator{}.Evaluate(outputs, labels)

	r, c := gradient.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)

	// The gradient of each correctly normalized row sums to zero.
	for i := 0; i < r; i++ {
		sum := 0.0
		for _, v := range gradient.RawRowView(i) {
			sum += v
		}
		assert.InDelta(t, 0.0, sum, 1e-12, "row %d", i)
	}
}
