package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Network owns an ordered pipeline of hidden layers plus one fixed output
// layer and drives the forward, backward, and weight-update passes. It also
// holds a default training dataset and the running loss recorded by the
// most recent training step.
//
// The three stages of a training step run strictly sequentially; each
// consumes the previous stage's output. Weight matrices are only mutated
// inside the update pass, one layer at a time, so no locking is needed.
type Network struct {
	hidden []Layer
	output Layer

	inputs *mat.Dense // Default training inputs.
	labels *mat.Dense // Default one-hot labels.

	eval Evaluator
	loss Loss
}

// New builds a network around a fixed output layer with a default training
// dataset. Loss evaluation defaults to the fused SoftmaxEvaluator; see
// SetEvaluator.
func New(inputs, oneHot *mat.Dense, output Layer) *Network {
	return &Network{
		output: output,
		inputs: inputs,
		labels: oneHot,
		eval:   SoftmaxEvaluator{},
	}
}

// SetEvaluator swaps the network's loss-evaluation capability.
func (n *Network) SetEvaluator(e Evaluator) { n.eval = e }

// PushLayer appends a hidden layer at the tail of the pipeline. The most
// recently pushed layer sits nearest the output layer. The network holds
// the layer for its remaining lifetime; it does not copy it.
func (n *Network) PushLayer(l Layer) {
	n.hidden = append(n.hidden, l)
}

// PopLayer removes and returns the most recently pushed hidden layer, or
// nil when there are no hidden layers.
func (n *Network) PopLayer() Layer {
	if len(n.hidden) == 0 {
		return nil
	}
	l := n.hidden[len(n.hidden)-1]
	n.hidden = n.hidden[:len(n.hidden)-1]
	return l
}

// Loss returns the running loss state recorded by the most recent training
// step.
func (n *Network) Loss() Loss { return n.loss }

// Train runs one training step over the network's default dataset.
func (n *Network) Train(lr float64) (Loss, error) {
	return n.TrainOn(lr, n.inputs, n.labels)
}

// TrainOn runs one training step: forward pass, loss evaluation, backward
// pass, and a synchronized weight update across every layer. The returned
// loss is also stored as the network's running loss state.
//
// Returns an error wrapping ErrInvalidArgument when lr is negative. The
// check precedes every stage, so a failed call leaves all weight matrices
// and the running loss state untouched.
func (n *Network) TrainOn(lr float64, inputs, oneHot *mat.Dense) (Loss, error) {
	if lr < 0 {
		return Loss{}, fmt.Errorf("%w: learning rate must be non-negative, got %g", ErrInvalidArgument, lr)
	}

	state := n.forward(inputs)

	loss, gradient := n.eval.Evaluate(state.final, oneHot)
	n.loss = loss

	grads := n.backward(state, gradient)
	n.update(state, grads, lr)

	return loss, nil
}

// Test runs the forward pass and loss evaluation only. No weights change
// and the running loss state keeps its previous value.
func (n *Network) Test(inputs, oneHot *mat.Dense) Loss {
	state := n.forward(inputs)
	loss, _ := n.eval.Evaluate(state.final, oneHot)
	return loss
}

// forwardState records what one forward pass saw. layerInputs holds the
// batch each layer consumed, in forward order; its last entry fed the
// output layer. signals holds each hidden layer's pre-activation signals,
// also in forward order.
type forwardState struct {
	layerInputs []*mat.Dense
	signals     []*mat.Dense
	finalSignal *mat.Dense
	final       *mat.Dense
}

func (n *Network) forward(inputs *mat.Dense) forwardState {
	state := forwardState{
		layerInputs: make([]*mat.Dense, 0, len(n.hidden)+1),
		signals:     make([]*mat.Dense, 0, len(n.hidden)),
	}

	next := inputs
	for _, l := range n.hidden {
		state.layerInputs = append(state.layerInputs, next)
		signals, outputs := l.FeedForward(next)
		state.signals = append(state.signals, signals)
		next = outputs
	}

	state.layerInputs = append(state.layerInputs, next)
	state.finalSignal, state.final = n.output.FeedForward(next)
	return state
}

// backward produces the gradient sequence for one training step: seeded by
// the output layer, then each hidden layer in reverse insertion order. The
// sequence is ordered output-layer-first, earliest-hidden-layer-last — the
// mirror image of forward order.
func (n *Network) backward(state forwardState, lossGrad *mat.Dense) []*mat.Dense {
	grads := make([]*mat.Dense, 0, len(n.hidden)+1)

	gradient, upstream := n.output.SeedBackProp(state.finalSignal, lossGrad)
	grads = append(grads, gradient)

	for k := len(n.hidden) - 1; k >= 0; k-- {
		gradient, upstream = n.hidden[k].BackPropagate(state.signals[k], upstream)
		grads = append(grads, gradient)
	}

	return grads
}

// update applies gradient descent to every layer. Recorded layer inputs
// are ordered input-first while the gradient sequence is ordered
// output-first, so the two lists are indexed from opposite ends in
// lockstep: hidden layer k pairs layerInputs[k] with grads[len(grads)-1-k],
// and the output layer pairs the last recorded input with grads[0].
func (n *Network) update(state forwardState, grads []*mat.Dense, lr float64) {
	n.output.UpdateWeights(state.layerInputs[len(state.layerInputs)-1], grads[0], lr)
	for k, l := range n.hidden {
		l.UpdateWeights(state.layerInputs[k], grads[len(grads)-1-k], lr)
	}
}
