package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gonum.org/v1/gonum/mat"

	"patternnet/internal/config"
	"patternnet/internal/dataset"
	"patternnet/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults apply when empty)")
	datasetPath := flag.String("dataset", "", "Dataset file with one \"x label\" pair per line")
	hidden := flag.Int("hidden", 0, "Hidden-layer width")
	lr := flag.Float64("lr", 0, "Learning rate")
	maxEpochs := flag.Int("max-epochs", 0, "Epoch budget")
	targetError := flag.Float64("target-error", -1, "Error-rate convergence target")
	workers := flag.Int("workers", 0, "Gradient accumulation workers")
	seed := flag.Int64("seed", 0, "PRNG seed for weight initialization")
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
		DatasetPath:     *datasetPath,
		HiddenUnits:     *hidden,
		LearningRate:    *lr,
		MaxEpochs:       *maxEpochs,
		TargetErrorRate: *targetError,
		NumWorkers:      *workers,
		Seed:            *seed,
		LogEvery:        *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	data := dataset.Canonical()
	if cfg.DatasetPath != "" {
		loaded, err := dataset.Load(cfg.DatasetPath)
		if err != nil {
			log.Fatalf("failed to load dataset %s: %v", cfg.DatasetPath, err)
		}
		data = loaded
	}
	log.Printf("samples=%d hidden=%d lr=%g max_epochs=%d target_error=%g seed=%d",
		data.Len(), cfg.HiddenUnits, cfg.LearningRate, cfg.MaxEpochs, cfg.TargetErrorRate, cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := trainer.Run(ctx, trainer.RunConfig{
		Data:            data,
		HiddenUnits:     cfg.HiddenUnits,
		LearningRate:    cfg.LearningRate,
		MaxEpochs:       cfg.MaxEpochs,
		TargetErrorRate: cfg.TargetErrorRate,
		LossEpsilon:     cfg.LossEpsilon,
		NumWorkers:      cfg.NumWorkers,
		LogEvery:        cfg.LogEvery,
		Seed:            cfg.Seed,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	last := result.History[len(result.History)-1]
	log.Printf("outcome=%s epochs=%d final_loss=%.4f final_error_rate=%.4f min_error_rate=%.4f",
		result.Outcome,
		result.EpochsRun,
		last.Loss,
		last.ErrorRate,
		result.MinErrorRate,
	)
	for _, p := range result.Predictions {
		log.Printf("x=%+g label=%d prob=%.4f class=%d", p.X, p.Label, p.Prob, p.Class)
	}
	log.Printf("W1 =\n%v", mat.Formatted(result.Params.W1, mat.Squeeze()))
	log.Printf("W2 =\n%v", mat.Formatted(result.Params.W2, mat.Squeeze()))
}
