package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Activation is an elementwise scalar activation function paired with its
// derivative.
type Activation struct {
	Fn         func(float64) float64
	Derivative func(float64) float64
}

// Identity returns the identity activation. An output layer must use it for
// SoftmaxEvaluator's closed-form gradient to hold.
func Identity() Activation {
	return Activation{
		Fn:         func(x float64) float64 { return x },
		Derivative: func(float64) float64 { return 1 },
	}
}

// Sigmoid returns the logistic activation.
func Sigmoid() Activation {
	logistic := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
	return Activation{
		Fn: logistic,
		Derivative: func(x float64) float64 {
			s := logistic(x)
			return s * (1 - s)
		},
	}
}

// Tanh returns the hyperbolic tangent activation.
func Tanh() Activation {
	return Activation{
		Fn: math.Tanh,
		Derivative: func(x float64) float64 {
			t := math.Tanh(x)
			return 1 - t*t
		},
	}
}

// Layer is the capability set the network orchestrator drives. A layer owns
// its weight matrix; the network references layers, it never copies them.
type Layer interface {
	// FeedForward computes the layer's pre-activation signals and activated
	// outputs for a batch. It must not mutate the layer's weights.
	FeedForward(inputs *mat.Dense) (signals, outputs *mat.Dense)

	// BackPropagate consumes the signals this layer produced on the forward
	// pass and the transformed gradient handed down from the layer after
	// it, returning the layer's own gradient and the transformed gradient
	// for the layer before it.
	BackPropagate(signals, downstream *mat.Dense) (gradient, upstream *mat.Dense)

	// SeedBackProp is BackPropagate for the output layer: identical
	// arithmetic, but its gradient argument originates from the loss unit
	// rather than from another layer.
	SeedBackProp(signals, lossGrad *mat.Dense) (gradient, upstream *mat.Dense)

	// UpdateWeights applies one gradient-descent step in place, using the
	// inputs the layer saw on the forward pass and the gradient it produced
	// on the backward pass. Learning-rate validation is the caller's job.
	UpdateWeights(inputs, gradient *mat.Dense, lr float64)
}

// Linear is an affine layer with a pointwise activation. Its weight matrix
// has shape (inDim+1)×outDim; the extra final row is the bias, folded into
// the affine transform by augmenting every input batch with a trailing
// column of ones.
//
// Shapes are a documented caller responsibility: feeding a batch whose
// feature count differs from inDim panics.
type Linear struct {
	inDim   int
	outDim  int
	act     Activation
	weights *mat.Dense
}

// NewLinear creates a layer with weights drawn uniformly from
// [-maxWeight, maxWeight) by a generator seeded with seed. Construction is
// the only time the weight matrix is replaced; afterwards it is mutated in
// place by UpdateWeights only.
//
// Panics unless inDim and outDim are positive.
func NewLinear(inDim, outDim int, maxWeight float64, seed int64, act Activation) *Linear {
	if inDim <= 0 || outDim <= 0 {
		panic(fmt.Sprintf("nn: layer dimensions must be positive, got %d×%d", inDim, outDim))
	}

	rng := rand.New(rand.NewSource(seed))
	weights := mat.NewDense(inDim+1, outDim, nil)
	for i := 0; i <= inDim; i++ {
		row := weights.RawRowView(i)
		for j := range row {
			row[j] = maxWeight * (2*rng.Float64() - 1)
		}
	}

	return &Linear{inDim: inDim, outDim: outDim, act: act, weights: weights}
}

// FeedForward implements Layer. Pure: the weight matrix is read, never
// written.
func (l *Linear) FeedForward(inputs *mat.Dense) (*mat.Dense, *mat.Dense) {
	aug := l.augmentOnes(inputs)
	rows, _ := inputs.Dims()

	signals := mat.NewDense(rows, l.outDim, nil)
	signals.Mul(aug, l.weights)

	outputs := mat.NewDense(rows, l.outDim, nil)
	outputs.Apply(func(_, _ int, v float64) float64 { return l.act.Fn(v) }, signals)

	return signals, outputs
}

// BackPropagate implements Layer.
func (l *Linear) BackPropagate(signals, downstream *mat.Dense) (*mat.Dense, *mat.Dense) {
	return l.propagate(signals, downstream)
}

// SeedBackProp implements Layer. It corrects the loss gradient by the
// layer's activation derivative before transforming it for the layer below.
func (l *Linear) SeedBackProp(signals, lossGrad *mat.Dense) (*mat.Dense, *mat.Dense) {
	return l.propagate(signals, lossGrad)
}

func (l *Linear) propagate(signals, downstream *mat.Dense) (*mat.Dense, *mat.Dense) {
	rows, cols := signals.Dims()

	local := mat.NewDense(rows, cols, nil)
	local.Apply(func(_, _ int, v float64) float64 { return l.act.Derivative(v) }, signals)

	gradient := mat.NewDense(rows, cols, nil)
	gradient.MulElem(local, downstream)

	// The bias row receives no signal from the layer below, so it is
	// excluded from the transform handed upstream.
	upstream := mat.NewDense(rows, l.inDim, nil)
	upstream.Mul(gradient, l.weights.Slice(0, l.inDim, 0, l.outDim).T())

	return gradient, upstream
}

// UpdateWeights implements Layer: W -= lr · augmented(inputs)ᵀ · gradient,
// in place.
func (l *Linear) UpdateWeights(inputs, gradient *mat.Dense, lr float64) {
	aug := l.augmentOnes(inputs)

	var step mat.Dense
	step.Mul(aug.T(), gradient)
	step.Scale(lr, &step)

	l.weights.Sub(l.weights, &step)
}

// augmentOnes appends the trailing bias column of ones to a batch.
func (l *Linear) augmentOnes(inputs *mat.Dense) *mat.Dense {
	rows, cols := inputs.Dims()
	if cols != l.inDim {
		panic(fmt.Sprintf("nn: expected inputs with %d features, got %d", l.inDim, cols))
	}

	aug := mat.NewDense(rows, l.inDim+1, nil)
	for i := 0; i < rows; i++ {
		row := aug.RawRowView(i)
		copy(row, inputs.RawRowView(i))
		row[l.inDim] = 1
	}
	return aug
}

// InDim returns the layer's input dimension.
func (l *Linear) InDim() int { return l.inDim }

// OutDim returns the layer's output dimension.
func (l *Linear) OutDim() int { return l.outDim }

// Weights returns the layer's live weight storage. Mutating it mutates the
// layer.
func (l *Linear) Weights() *mat.Dense { return l.weights }
