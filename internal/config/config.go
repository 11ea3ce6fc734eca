// Package config loads the YAML run configuration for the gradnet
// command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	TrainFile      string `yaml:"train_file"`
	ValidationFile string `yaml:"validation_file"`
	TestFile       string `yaml:"test_file"`

	NumClasses int   `yaml:"num_classes"`
	HiddenDims []int `yaml:"hidden_dims"`

	MaxWeight float64 `yaml:"max_weight"`
	Seed      int64   `yaml:"seed"`

	LearningRate float64 `yaml:"learning_rate"`
	DecayRate    float64 `yaml:"decay_rate"`
	Patience     int     `yaml:"patience"`
	MaxEpochs    int     `yaml:"max_epochs"`
	LogEvery     int     `yaml:"log_every"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataDir   string
	Seed      int64
	MaxEpochs int
	LogEvery  int
}

// Default is the iris run the engine grew up on: one 4→4 hidden layer
// feeding a 3-class output layer.
func Default() *Config {
	return &Config{
		DataDir:        "data/iris",
		TrainFile:      "iris_training.dat",
		ValidationFile: "iris_validation.dat",
		TestFile:       "iris_test.dat",
		NumClasses:     3,
		HiddenDims:     []int{4},
		MaxWeight:      1.0,
		Seed:           42,
		LearningRate:   0.1,
		DecayRate:      0.1,
		Patience:       3,
		MaxEpochs:      1000,
		LogEvery:       10,
	}
}

// Load reads and validates a Config from YAML, with absent keys filled
// from Default.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.MaxEpochs > 0 {
		c.MaxEpochs = o.MaxEpochs
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	for _, name := range []string{c.TrainFile, c.ValidationFile, c.TestFile} {
		if name == "" {
			return errors.New("train_file, validation_file and test_file must all be set")
		}
	}
	if c.NumClasses <= 0 {
		return fmt.Errorf("num_classes must be > 0 (got %d)", c.NumClasses)
	}
	for _, dim := range c.HiddenDims {
		if dim <= 0 {
			return fmt.Errorf("hidden_dims entries must be > 0 (got %d)", dim)
		}
	}
	if c.MaxWeight < 0 {
		return fmt.Errorf("max_weight must be >= 0 (got %v)", c.MaxWeight)
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("learning_rate must be >= 0 (got %v)", c.LearningRate)
	}
	if c.DecayRate < 0 {
		return fmt.Errorf("decay_rate must be >= 0 (got %v)", c.DecayRate)
	}
	if c.MaxEpochs <= 0 {
		return fmt.Errorf("max_epochs must be > 0 (got %d)", c.MaxEpochs)
	}
	return nil
}
