package trainer

import (
	"sync"

	"patternnet/internal/model"
)

// partial is one worker's share of the batch reduction.
type partial struct {
	grads   model.Gradients
	loss    float64
	correct int
}

// accumulate folds the whole dataset into one gradient update against the
// weights as they stand at the call. With NumWorkers > 1 the fold runs
// over contiguous chunks whose partials are merged in chunk order, so the
// summation order is fixed for a given worker count.
func accumulate(params model.Params, cfg RunConfig) partial {
	n := cfg.Data.Len()
	workers := cfg.NumWorkers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return foldRange(params, cfg, 0, n)
	}

	parts := make([]partial, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * n / workers
		hi := (w + 1) * n / workers
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			parts[w] = foldRange(params, cfg, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	total := parts[0]
	for _, p := range parts[1:] {
		total.grads.Accumulate(p.grads)
		total.loss += p.loss
		total.correct += p.correct
	}
	return total
}

// foldRange processes samples [lo, hi) in dataset order against fixed
// weights.
func foldRange(params model.Params, cfg RunConfig, lo, hi int) partial {
	p := partial{grads: model.NewGradients(params.Hidden())}
	for i := lo; i < hi; i++ {
		s := cfg.Data.At(i)
		act := params.Forward(s.X)

		p.grads.Accumulate(params.Gradients(s.X, s.Label, act, cfg.LearningRate))
		p.loss += model.SampleLoss(s.Label, act.Output, cfg.LossEpsilon)

		class := 0
		if act.Output >= 0.5 {
			class = 1
		}
		if class == s.Label {
			p.correct++
		}
	}
	return p
}
