package config

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	DatasetPath     string  `yaml:"dataset"`
	HiddenUnits     int     `yaml:"hidden_units"`
	LearningRate    float64 `yaml:"learning_rate"`
	MaxEpochs       int     `yaml:"max_epochs"`
	TargetErrorRate float64 `yaml:"target_error_rate"`
	LossEpsilon     float64 `yaml:"loss_epsilon"`
	NumWorkers      int     `yaml:"num_workers"`
	Seed            int64   `yaml:"seed"`
	LogEvery        int     `yaml:"log_every"`
}

// Default returns the configuration for the built-in separation exercise.
// The zero target error rate keeps the exact-zero convergence rule, which
// only separable datasets are guaranteed to satisfy.
func Default() *Config {
	return &Config{
		HiddenUnits:     3,
		LearningRate:    0.1,
		MaxEpochs:       20000,
		TargetErrorRate: 0,
		LossEpsilon:     1e-12,
		NumWorkers:      1,
		Seed:            1,
		LogEvery:        100,
	}
}

// Overrides captures CLI supplied values. A negative TargetErrorRate means
// unset, since zero is a meaningful target. Seed 0 likewise means unset;
// explicit seeds must be non-zero.
type Overrides struct {
	DatasetPath     string
	HiddenUnits     int
	LearningRate    float64
	MaxEpochs       int
	TargetErrorRate float64
	NumWorkers      int
	Seed            int64
	LogEvery        int
}

// Load reads and validates a Config from YAML, starting from defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any set override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DatasetPath != "" {
		c.DatasetPath = o.DatasetPath
	}
	if o.HiddenUnits > 0 {
		c.HiddenUnits = o.HiddenUnits
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.MaxEpochs > 0 {
		c.MaxEpochs = o.MaxEpochs
	}
	if o.TargetErrorRate >= 0 {
		c.TargetErrorRate = o.TargetErrorRate
	}
	if o.NumWorkers > 0 {
		c.NumWorkers = o.NumWorkers
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is trainable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.HiddenUnits < 1 {
		return errors.Errorf("hidden_units must be >= 1 (got %d)", c.HiddenUnits)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.MaxEpochs <= 0 {
		return errors.Errorf("max_epochs must be > 0 (got %d)", c.MaxEpochs)
	}
	if c.TargetErrorRate < 0 || c.TargetErrorRate >= 1 {
		return errors.Errorf("target_error_rate must be in [0, 1) (got %g)", c.TargetErrorRate)
	}
	if c.LossEpsilon <= 0 {
		c.LossEpsilon = 1e-12
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = 1
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 100
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("line %d: missing ':'", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")
		switch key {
		case "dataset":
			cfg.DatasetPath = value
		case "hidden_units":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: hidden_units", lineNo)
			}
			cfg.HiddenUnits = v
		case "learning_rate":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: learning_rate", lineNo)
			}
			cfg.LearningRate = v
		case "max_epochs":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: max_epochs", lineNo)
			}
			cfg.MaxEpochs = v
		case "target_error_rate":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: target_error_rate", lineNo)
			}
			cfg.TargetErrorRate = v
		case "loss_epsilon":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: loss_epsilon", lineNo)
			}
			cfg.LossEpsilon = v
		case "num_workers":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: num_workers", lineNo)
			}
			cfg.NumWorkers = v
		case "seed":
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: seed", lineNo)
			}
			cfg.Seed = v
		case "log_every":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: log_every", lineNo)
			}
			cfg.LogEvery = v
		default:
			return nil, errors.Errorf("line %d: unknown key %s", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}
