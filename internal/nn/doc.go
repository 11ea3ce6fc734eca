// Package nn implements a minimal feedforward training engine: forward
// propagation, backpropagation, and gradient-descent weight updates for
// multi-class classification with a softmax output and categorical
// cross-entropy loss.
//
// The pipeline is hand-rolled and statically composed; there is no
// computation graph and no automatic differentiation. A Network owns an
// ordered stack of hidden layers plus one fixed output layer and drives
// three strictly sequential stages per training step:
//
//   - forward: inputs flow through the hidden layers in insertion order,
//     then the output layer, recording each layer's pre-activation signals
//     and activated outputs
//   - backward: the loss gradient seeds the output layer and flows through
//     the hidden layers in reverse order, each producing its own local
//     gradient and a transformed gradient for its predecessor
//   - update: every layer applies gradient descent using the inputs it saw
//     on the forward pass paired with its own backward-pass gradient
//
// All internal math runs on one canonical floating-point matrix type,
// gonum's *mat.Dense. Boolean one-hot label matrices are converted to 0/1
// float matrices at the system boundary, and class indices cross the
// boundary as []int.
//
// Softmax and the cross-entropy logarithm are deliberately not numerically
// stabilized: overflowing exponentials and log(0) propagate as IEEE special
// values rather than errors.
package nn
