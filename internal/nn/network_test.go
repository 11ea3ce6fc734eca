package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// separableBatch is a linearly separable two-class toy set: class 1 iff the
// first feature is high.
func separableBatch(t *testing.T) (*mat.Dense, *mat.Dense) {
	t.Helper()
	inputs := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	labels, err := OneHot([]int{0, 0, 1, 1}, 2)
	require.NoError(t, err)
	return inputs, labels
}

func TestTrainDecreasesCrossEntropy(t *testing.T) {
	inputs, labels := separableBatch(t)

	net := New(inputs, labels, NewLinear(2, 2, 1.0, 42, Identity()))

	first := math.NaN()
	prev := math.Inf(1)
	for step := 0; step < 200; step++ {
		loss, err := net.Train(0.05)
		require.NoError(t, err)
		require.LessOrEqual(t, loss.CrossEntropy, prev+1e-12,
			"cross-entropy rose at step %d: %v -> %v", step, prev, loss.CrossEntropy)
		prev = loss.CrossEntropy
		if step == 0 {
			first = loss.CrossEntropy
		}
	}

	assert.Less(t, prev, first, "training made no progress")
}

func TestTrainWithHiddenLayers(t *testing.T) {
	inputs, labels := separableBatch(t)

	net := New(inputs, labels, NewLinear(3, 2, 1.0, 3, Identity()))
	net.PushLayer(NewLinear(2, 4, 1.0, 1, Identity()))
	net.PushLayer(NewLinear(4, 3, 1.0, 2, Identity()))

	first, err := net.Train(0.01)
	require.NoError(t, err)

	var last Loss
	for i := 0; i < 300; i++ {
		last, err = net.Train(0.01)
		require.NoError(t, err)
	}

	assert.Less(t, last.CrossEntropy, first.CrossEntropy)
	assert.Equal(t, last, net.Loss())
}

func TestTrainOnMatchesDefaultDataset(t *testing.T) {
	inputs, labels := separableBatch(t)

	a := New(inputs, labels, NewLinear(2, 2, 1.0, 9, Identity()))
	b := New(inputs, labels, NewLinear(2, 2, 1.0, 9, Identity()))

	lossA, err := a.Train(0.1)
	require.NoError(t, err)
	lossB, err := b.TrainOn(0.1, inputs, labels)
	require.NoError(t, err)

	assert.Equal(t, lossA, lossB)
}

func TestTrainNegativeLearningRate(t *testing.T) {
	inputs, labels := separableBatch(t)

	output := NewLinear(2, 2, 1.0, 42, Identity())
	hidden := NewLinear(2, 2, 1.0, 7, Identity())
	net := New(inputs, labels, output)
	net.PushLayer(hidden)

	wantLoss, err := net.Train(0.1)
	require.NoError(t, err)

	outputBefore := mat.DenseCopyOf(output.Weights())
	hiddenBefore := mat.DenseCopyOf(hidden.Weights())

	_, err = net.Train(-1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	assert.True(t, mat.Equal(outputBefore, output.Weights()), "output weights must be untouched")
	assert.True(t, mat.Equal(hiddenBefore, hidden.Weights()), "hidden weights must be untouched")
	assert.Equal(t, wantLoss, net.Loss(), "running loss must keep its previous value")
}

func TestTestDoesNotMutate(t *testing.T) {
	inputs, labels := separableBatch(t)

	output := NewLinear(2, 2, 1.0, 5, Identity())
	net := New(inputs, labels, output)

	trained, err := net.Train(0.1)
	require.NoError(t, err)

	before := mat.DenseCopyOf(output.Weights())
	loss := net.Test(inputs, labels)

	assert.True(t, mat.Equal(before, output.Weights()))
	assert.Equal(t, trained, net.Loss(), "Test must not touch the running loss state")
	assert.False(t, math.IsNaN(loss.CrossEntropy))
}

// TestPushPopRestoresBehavior pins the push/pop contract: pushing a layer
// and popping it right away must leave training bit-identical to a network
// that never saw the layer.
func TestPushPopRestoresBehavior(t *testing.T) {
	inputs, labels := separableBatch(t)

	plain := New(inputs, labels, NewLinear(2, 2, 1.0, 11, Identity()))
	pushed := New(inputs, labels, NewLinear(2, 2, 1.0, 11, Identity()))

	pushed.PushLayer(NewLinear(2, 3, 1.0, 13, Identity()))
	popped := pushed.PopLayer()
	require.NotNil(t, popped)

	for i := 0; i < 5; i++ {
		lossPlain, err := plain.Train(0.1)
		require.NoError(t, err)
		lossPushed, err := pushed.Train(0.1)
		require.NoError(t, err)
		assert.Equal(t, lossPlain, lossPushed, "step %d", i)
	}
}

func TestPopLayerEmpty(t *testing.T) {
	inputs, labels := separableBatch(t)
	net := New(inputs, labels, NewLinear(2, 2, 1.0, 1, Identity()))

	assert.Nil(t, net.PopLayer())
}

// TestUpdatePassPairing replays one training step by hand against a twin
// network. The hidden layers have pairwise distinct dimensions, so if the
// orchestrator handed any layer a gradient or an input batch belonging to a
// different layer the shapes would not even line up; value equality then
// pins the exact input/gradient pairing.
func TestUpdatePassPairing(t *testing.T) {
	inputs := mat.NewDense(5, 4, []float64{
		0.1, 0.9, -0.3, 0.2,
		0.8, 0.1, 0.4, -0.5,
		-0.2, 0.3, 0.7, 0.1,
		0.5, -0.6, 0.2, 0.9,
		0.0, 0.4, -0.8, 0.3,
	})
	labels, err := OneHot([]int{0, 1, 1, 0, 1}, 2)
	require.NoError(t, err)

	const lr = 0.1

	// Twin layer stacks from identical seeds.
	h1 := NewLinear(4, 3, 1.0, 1, Sigmoid())
	h2 := NewLinear(3, 2, 1.0, 2, Tanh())
	out := NewLinear(2, 2, 1.0, 3, Identity())

	r1 := NewLinear(4, 3, 1.0, 1, Sigmoid())
	r2 := NewLinear(3, 2, 1.0, 2, Tanh())
	rOut := NewLinear(2, 2, 1.0, 3, Identity())

	require.True(t, mat.Equal(h1.Weights(), r1.Weights()))

	net := New(inputs, labels, out)
	net.PushLayer(h1)
	net.PushLayer(h2)
	_, err = net.Train(lr)
	require.NoError(t, err)

	// Manual replay of one step on the replica stack.
	s1, o1 := r1.FeedForward(inputs)
	s2, o2 := r2.FeedForward(o1)
	sOut, final := rOut.FeedForward(o2)

	_, lossGrad := SoftmaxEvaluator{}.Evaluate(final, labels)

	gOut, down := rOut.SeedBackProp(sOut, lossGrad)
	g2, down2 := r2.BackPropagate(s2, down)
	g1, _ := r1.BackPropagate(s1, down2)

	rOut.UpdateWeights(o2, gOut, lr)
	r2.UpdateWeights(o1, g2, lr)
	r1.UpdateWeights(inputs, g1, lr)

	assert.True(t, mat.Equal(rOut.Weights(), out.Weights()), "output layer pairing")
	assert.True(t, mat.Equal(r2.Weights(), h2.Weights()), "second hidden layer pairing")
	assert.True(t, mat.Equal(r1.Weights(), h1.Weights()), "first hidden layer pairing")
}
