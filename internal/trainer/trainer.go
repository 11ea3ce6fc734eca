// Package trainer runs the epoch loop around a network: full-batch
// gradient descent with a decaying learning rate, stopped early once the
// validation cross-entropy stalls.
package trainer

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gradnet-ml/gradnet/internal/nn"
)

// Config captures the knobs of a training run.
type Config struct {
	// LearningRate is the base step size; epoch e trains with
	// LearningRate / (1 + e·DecayRate).
	LearningRate float64
	DecayRate    float64

	// Patience is how many consecutive epochs the validation
	// cross-entropy may fail to improve before training stops.
	// Non-positive means 3.
	Patience int

	// MaxEpochs caps the loop regardless of validation progress.
	// Non-positive means 1000.
	MaxEpochs int

	// LogEvery logs progress every n epochs; non-positive disables
	// logging.
	LogEvery int
}

// Result reports where a run ended up.
type Result struct {
	Epochs     int
	Training   nn.Loss
	Validation nn.Loss
}

// Fit trains net on its default dataset until the validation
// cross-entropy has failed to improve Patience epochs in a row, or
// MaxEpochs is reached.
func Fit(net *nn.Network, valInputs, valLabels *mat.Dense, cfg Config) (Result, error) {
	if net == nil {
		return Result{}, errors.New("trainer: nil network")
	}
	if cfg.LearningRate < 0 {
		return Result{}, fmt.Errorf("trainer: learning rate must be >= 0 (got %v)", cfg.LearningRate)
	}
	if cfg.DecayRate < 0 {
		return Result{}, fmt.Errorf("trainer: decay rate must be >= 0 (got %v)", cfg.DecayRate)
	}
	if cfg.Patience <= 0 {
		cfg.Patience = 3
	}
	if cfg.MaxEpochs <= 0 {
		cfg.MaxEpochs = 1000
	}

	var res Result
	stalled := 0
	bestVal := math.Inf(1)
	lr := cfg.LearningRate

	for epoch := 1; epoch <= cfg.MaxEpochs; epoch++ {
		training, err := net.Train(lr)
		if err != nil {
			return Result{}, err
		}
		validation := net.Test(valInputs, valLabels)

		if validation.CrossEntropy < bestVal {
			bestVal = validation.CrossEntropy
			stalled = 0
		} else {
			stalled++
		}

		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			log.Printf("epoch=%d lr=%.6f train_ce=%.4f val_ce=%.4f val_misclass=%.4f",
				epoch, lr, training.CrossEntropy, validation.CrossEntropy, validation.Misclass)
		}

		res = Result{Epochs: epoch, Training: training, Validation: validation}
		if stalled >= cfg.Patience {
			break
		}
		lr = cfg.LearningRate / (1 + float64(epoch)*cfg.DecayRate)
	}
	return res, nil
}
