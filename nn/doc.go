// Copyright 2026 GradNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn is the public API of the GradNet feedforward training engine.
//
// It re-exports the engine's core types and constructors:
//   - Linear: an affine layer (with bias) plus a pointwise activation and
//     its derivative
//   - Network: an ordered hidden-layer pipeline plus one output layer,
//     driving forward, backward, and weight-update passes
//   - SoftmaxEvaluator: fused softmax + categorical cross-entropy loss,
//     misclassification rate, and loss gradient
//   - Softmax, ClassIndices, OneHot: the standalone operators
//
// Example:
//
//	hidden := nn.NewLinear(4, 4, 1.0, 42, nn.Identity())
//	output := nn.NewLinear(4, 3, 1.0, 42, nn.Identity())
//
//	net := nn.New(trainInputs, trainLabels, output)
//	net.PushLayer(hidden)
//
//	loss, err := net.Train(0.1)
package nn
