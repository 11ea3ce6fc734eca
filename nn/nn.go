// Copyright 2026 GradNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gradnet-ml/gradnet/internal/nn"
)

// ErrInvalidArgument is returned for a negative learning rate and for class
// indices outside [0, numClasses). Test with errors.Is.
var ErrInvalidArgument = nn.ErrInvalidArgument

// Axis selects the direction Softmax normalizes along.
type Axis = nn.Axis

// Axis constants.
const (
	AxisNone Axis = nn.AxisNone
	AxisRows Axis = nn.AxisRows
	AxisCols Axis = nn.AxisCols
)

// Softmax exponentiates every entry of m and divides by the sum along the
// requested axis. No numerical stabilization is applied; large entries
// overflow to IEEE special values.
func Softmax(m *mat.Dense, axis Axis) *mat.Dense {
	return nn.Softmax(m, axis)
}

// ClassIndices converts a one-hot label matrix to per-row class indices.
// Only correct for valid one-hot rows; invalid rows silently produce a
// number.
func ClassIndices(oneHot *mat.Dense) []int {
	return nn.ClassIndices(oneHot)
}

// OneHot converts class indices to a one-hot matrix with numClasses
// columns. Fails wrapping ErrInvalidArgument on out-of-range indices.
func OneHot(indices []int, numClasses int) (*mat.Dense, error) {
	return nn.OneHot(indices, numClasses)
}

// Loss pairs mean categorical cross-entropy with the misclassification
// rate.
type Loss = nn.Loss

// Evaluator is the pluggable loss-evaluation capability of a Network.
type Evaluator = nn.Evaluator

// SoftmaxEvaluator is the fused softmax + categorical cross-entropy
// evaluator. It assumes an identity-activation output layer.
type SoftmaxEvaluator = nn.SoftmaxEvaluator

// Activation is an elementwise activation function paired with its
// derivative.
type Activation = nn.Activation

// Identity returns the identity activation.
func Identity() Activation { return nn.Identity() }

// Sigmoid returns the logistic activation.
func Sigmoid() Activation { return nn.Sigmoid() }

// Tanh returns the hyperbolic tangent activation.
func Tanh() Activation { return nn.Tanh() }

// Layer is the capability set a Network drives: FeedForward, BackPropagate,
// SeedBackProp, UpdateWeights.
type Layer = nn.Layer

// Linear is an affine layer with bias (folded into the weight matrix's
// final row) and a pointwise activation.
type Linear = nn.Linear

// NewLinear creates a Linear layer with weights drawn uniformly from
// [-maxWeight, maxWeight) by a generator seeded with seed.
//
// Example:
//
//	layer := nn.NewLinear(4, 3, 1.0, 42, nn.Identity())
func NewLinear(inDim, outDim int, maxWeight float64, seed int64, act Activation) *Linear {
	return nn.NewLinear(inDim, outDim, maxWeight, seed, act)
}

// Network owns an ordered hidden-layer pipeline plus one fixed output layer
// and a default training dataset.
type Network = nn.Network

// New builds a network around a fixed output layer. Loss evaluation
// defaults to SoftmaxEvaluator.
//
// Example:
//
//	net := nn.New(inputs, oneHotLabels, nn.NewLinear(4, 3, 1.0, 42, nn.Identity()))
//	net.PushLayer(nn.NewLinear(4, 4, 1.0, 42, nn.Identity()))
//	loss, err := net.Train(0.1)
func New(inputs, oneHot *mat.Dense, output Layer) *Network {
	return nn.New(inputs, oneHot, output)
}
