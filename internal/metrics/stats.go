package metrics

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Epoch is one epoch's recorded totals: summed cross-entropy loss and the
// training error rate over the full batch.
type Epoch struct {
	Loss      float64
	ErrorRate float64
}

// History is the append-only per-epoch training record. Its length always
// equals the number of epochs actually executed.
type History struct {
	epochs []Epoch
}

// Record appends one epoch.
func (h *History) Record(loss, errRate float64) {
	h.epochs = append(h.epochs, Epoch{Loss: loss, ErrorRate: errRate})
}

// Len returns the number of epochs recorded.
func (h *History) Len() int { return len(h.epochs) }

// Last returns the most recent epoch; ok is false when nothing has been
// recorded yet.
func (h *History) Last() (Epoch, bool) {
	if len(h.epochs) == 0 {
		return Epoch{}, false
	}
	return h.epochs[len(h.epochs)-1], true
}

// Epochs returns a copy of the record in execution order.
func (h *History) Epochs() []Epoch {
	out := make([]Epoch, len(h.epochs))
	copy(out, h.epochs)
	return out
}

// MinErrorRate returns the lowest error rate recorded, or 0 for an empty
// history.
func (h *History) MinErrorRate() float64 {
	if len(h.epochs) == 0 {
		return 0
	}
	rates := make([]float64, len(h.epochs))
	for i, e := range h.epochs {
		rates[i] = e.ErrorRate
	}
	return floats.Min(rates)
}

// Window accumulates throughput stats between log lines.
type Window struct {
	samples   int
	compute   time.Duration
	epochs    int
	lastLoss  float64
	lastError float64
}

// Record adds one epoch's measurement to the window.
func (w *Window) Record(samples int, compute time.Duration, loss, errRate float64) {
	w.samples += samples
	w.compute += compute
	w.epochs++
	w.lastLoss = loss
	w.lastError = errRate
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{LastLoss: w.lastLoss, LastErrorRate: w.lastError}
	if w.compute > 0 {
		snap.EpochsPerSec = float64(w.epochs) / w.compute.Seconds()
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgEpochMS = (w.compute.Seconds() * 1000) / float64(w.epochs)
	}

	w.samples = 0
	w.compute = 0
	w.epochs = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	EpochsPerSec  float64
	SamplesPerSec float64
	AvgEpochMS    float64
	LastLoss      float64
	LastErrorRate float64
}
