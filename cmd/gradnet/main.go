// Command gradnet trains a feedforward classifier on whitespace-delimited
// data tables and reports the held-out misclassification rate.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/gradnet-ml/gradnet/internal/config"
	"github.com/gradnet-ml/gradnet/internal/dataset"
	"github.com/gradnet-ml/gradnet/internal/trainer"
	"github.com/gradnet-ml/gradnet/nn"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	dataDir := flag.String("data", "", "Override data directory")
	seed := flag.Int64("seed", 0, "PRNG seed")
	maxEpochs := flag.Int("max-epochs", 0, "Cap on training epochs")
	logEvery := flag.Int("log-every", 0, "Log every N epochs")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		DataDir:   *dataDir,
		Seed:      *seed,
		MaxEpochs: *maxEpochs,
		LogEvery:  *logEvery,
	})

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	trainX, trainY, err := loadSplit(cfg, cfg.TrainFile)
	if err != nil {
		return err
	}
	valX, valY, err := loadSplit(cfg, cfg.ValidationFile)
	if err != nil {
		return err
	}
	testX, testY, err := loadSplit(cfg, cfg.TestFile)
	if err != nil {
		return err
	}

	_, featureDim := trainX.Dims()
	log.Printf("train=%d validation=%d test=%d features=%d classes=%d",
		rows(trainX), rows(valX), rows(testX), featureDim, cfg.NumClasses)

	net := buildNetwork(cfg, featureDim, trainX, trainY)

	res, err := trainer.Fit(net, valX, valY, trainer.Config{
		LearningRate: cfg.LearningRate,
		DecayRate:    cfg.DecayRate,
		Patience:     cfg.Patience,
		MaxEpochs:    cfg.MaxEpochs,
		LogEvery:     cfg.LogEvery,
	})
	if err != nil {
		return err
	}
	log.Printf("stopped after %d epochs: train_ce=%.4f val_ce=%.4f",
		res.Epochs, res.Training.CrossEntropy, res.Validation.CrossEntropy)

	held := net.Test(testX, testY)
	fmt.Printf("test cross-entropy:     %.4f\n", held.CrossEntropy)
	fmt.Printf("test misclassification: %.4f\n", held.Misclass)
	return nil
}

// buildNetwork assembles the layer stack: hidden layers in the configured
// order, then an identity-activation output layer so the fused
// softmax/cross-entropy gradient stays exact.
func buildNetwork(cfg *config.Config, featureDim int, inputs, labels *mat.Dense) *nn.Network {
	prev := featureDim
	hidden := make([]*nn.Linear, 0, len(cfg.HiddenDims))
	for _, dim := range cfg.HiddenDims {
		hidden = append(hidden, nn.NewLinear(prev, dim, cfg.MaxWeight, cfg.Seed, nn.Identity()))
		prev = dim
	}

	net := nn.New(inputs, labels, nn.NewLinear(prev, cfg.NumClasses, cfg.MaxWeight, cfg.Seed, nn.Identity()))
	for _, layer := range hidden {
		net.PushLayer(layer)
	}
	return net
}

func loadSplit(cfg *config.Config, name string) (*mat.Dense, *mat.Dense, error) {
	table, err := dataset.Load(filepath.Join(cfg.DataDir, name))
	if err != nil {
		return nil, nil, err
	}
	return dataset.Split(table, cfg.NumClasses)
}

func rows(m *mat.Dense) int {
	r, _ := m.Dims()
	return r
}
