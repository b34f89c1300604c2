package trainer

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"patternnet/internal/dataset"
	"patternnet/internal/metrics"
	"patternnet/internal/model"
)

// Outcome is the terminal state of a training run.
type Outcome int

const (
	// Converged means the training error rate reached the configured
	// target.
	Converged Outcome = iota
	// MaxEpochsReached means the epoch budget ran out first. This is a
	// reported result, not an error: the caller still gets the final
	// weights and the full history.
	MaxEpochsReached
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case MaxEpochsReached:
		return "max-epochs-reached"
	default:
		return "unknown"
	}
}

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Data            *dataset.Dataset
	HiddenUnits     int
	LearningRate    float64
	MaxEpochs       int
	TargetErrorRate float64
	LossEpsilon     float64
	NumWorkers      int
	LogEvery        int
	Seed            int64
}

// Prediction is the final network verdict on one training sample.
type Prediction struct {
	X     float64
	Label int
	Prob  float64
	Class int
}

// Result carries everything downstream reporting reads: the final weights,
// the per-epoch history, and the per-sample predictions. Intra-epoch state
// never escapes the loop.
type Result struct {
	Params       model.Params
	History      []metrics.Epoch
	MinErrorRate float64
	Outcome      Outcome
	EpochsRun    int
	Predictions  []Prediction
}

// Run executes full-batch gradient descent until the error-rate target is
// met or the epoch budget is exhausted. Weights are updated exactly once
// per epoch; every sample in an epoch is evaluated against the weights as
// they stood when the epoch began.
func Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Data == nil || cfg.Data.Len() == 0 {
		return nil, errors.New("trainer: dataset must be non-empty")
	}
	if cfg.HiddenUnits < 1 {
		return nil, errors.Errorf("trainer: hidden units must be >= 1 (got %d)", cfg.HiddenUnits)
	}
	if cfg.LearningRate <= 0 {
		return nil, errors.Errorf("trainer: learning rate must be > 0 (got %g)", cfg.LearningRate)
	}
	if cfg.MaxEpochs <= 0 {
		return nil, errors.Errorf("trainer: max epochs must be > 0 (got %d)", cfg.MaxEpochs)
	}
	if cfg.TargetErrorRate < 0 || cfg.TargetErrorRate >= 1 {
		return nil, errors.Errorf("trainer: target error rate must be in [0, 1) (got %g)", cfg.TargetErrorRate)
	}
	if cfg.LossEpsilon <= 0 {
		cfg.LossEpsilon = 1e-12
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 100
	}

	params := model.NewParams(cfg.HiddenUnits, cfg.Seed)
	n := cfg.Data.Len()

	var history metrics.History
	var window metrics.Window
	outcome := MaxEpochsReached
	epochsRun := 0

	for epoch := 1; epoch <= cfg.MaxEpochs; epoch++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := time.Now()
		batch := accumulate(params, cfg)

		// The single per-epoch update.
		params.W2.Add(params.W2, batch.grads.DW2)
		params.W1.Add(params.W1, batch.grads.DW1)

		errRate := 1 - float64(batch.correct)/float64(n)
		history.Record(batch.loss, errRate)
		window.Record(n, time.Since(start), batch.loss, errRate)
		epochsRun = epoch

		if epoch%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			log.Printf("epoch=%d loss=%.4f error_rate=%.4f epochs_per_sec=%.0f samples_per_sec=%.0f epoch_ms=%.3f",
				epoch,
				snap.LastLoss,
				snap.LastErrorRate,
				snap.EpochsPerSec,
				snap.SamplesPerSec,
				snap.AvgEpochMS,
			)
		}

		if errRate <= cfg.TargetErrorRate {
			outcome = Converged
			break
		}
	}

	preds := make([]Prediction, 0, n)
	for i := 0; i < n; i++ {
		s := cfg.Data.At(i)
		prob, class := params.Predict(s.X)
		preds = append(preds, Prediction{X: s.X, Label: s.Label, Prob: prob, Class: class})
	}

	return &Result{
		Params:       params,
		History:      history.Epochs(),
		MinErrorRate: history.MinErrorRate(),
		Outcome:      outcome,
		EpochsRun:    epochsRun,
		Predictions:  preds,
	}, nil
}
