package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `# training run
dataset: "data/toy.txt"
hidden_units: 5
learning_rate: 0.05
max_epochs: 500
target_error_rate: 0.1
num_workers: 2
seed: 7
log_every: 25
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DatasetPath != "data/toy.txt" {
		t.Fatalf("dataset = %q", cfg.DatasetPath)
	}
	if cfg.HiddenUnits != 5 || cfg.LearningRate != 0.05 || cfg.MaxEpochs != 500 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TargetErrorRate != 0.1 || cfg.NumWorkers != 2 || cfg.Seed != 7 || cfg.LogEvery != 25 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.LossEpsilon != 1e-12 {
		t.Fatalf("loss_epsilon default lost: %v", cfg.LossEpsilon)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "momentum: 0.9\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	if _, err := Load(writeConfig(t, "hidden_units 3\n")); err == nil {
		t.Fatalf("expected error for line without ':'")
	}
	if _, err := Load(writeConfig(t, "hidden_units: three\n")); err == nil {
		t.Fatalf("expected error for non-integer value")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		HiddenUnits:     8,
		LearningRate:    0.2,
		TargetErrorRate: 0.05,
		Seed:            99,
	})
	if cfg.HiddenUnits != 8 || cfg.LearningRate != 0.2 || cfg.Seed != 99 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.TargetErrorRate != 0.05 {
		t.Fatalf("target error rate not applied: %v", cfg.TargetErrorRate)
	}
	// Unset values leave the config alone; a negative target and a zero
	// seed both mean unset.
	cfg.ApplyOverrides(Overrides{TargetErrorRate: -1})
	if cfg.TargetErrorRate != 0.05 || cfg.MaxEpochs != 20000 || cfg.Seed != 99 {
		t.Fatalf("unset overrides clobbered config: %+v", cfg)
	}
	// Zero is an explicit, settable target.
	cfg.ApplyOverrides(Overrides{TargetErrorRate: 0})
	if cfg.TargetErrorRate != 0 {
		t.Fatalf("explicit zero target not applied: %v", cfg.TargetErrorRate)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero hidden units", func(c *Config) { c.HiddenUnits = 0 }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"negative learning rate", func(c *Config) { c.LearningRate = -0.1 }},
		{"zero max epochs", func(c *Config) { c.MaxEpochs = 0 }},
		{"target out of range", func(c *Config) { c.TargetErrorRate = 1 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	cfg := Default()
	cfg.LogEvery = 0
	cfg.NumWorkers = 0
	cfg.LossEpsilon = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogEvery != 100 || cfg.NumWorkers != 1 || cfg.LossEpsilon != 1e-12 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
