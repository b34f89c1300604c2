package metrics

import (
	"math"
	"testing"
	"time"
)

func TestHistoryRecord(t *testing.T) {
	var h History
	h.Record(3.2, 0.5)
	h.Record(2.1, 0.25)
	h.Record(2.4, 0.375)

	if h.Len() != 3 {
		t.Fatalf("expected 3 epochs, got %d", h.Len())
	}
	last, ok := h.Last()
	if !ok || last.Loss != 2.4 || last.ErrorRate != 0.375 {
		t.Fatalf("unexpected last epoch %+v (ok=%v)", last, ok)
	}
	if min := h.MinErrorRate(); min != 0.25 {
		t.Fatalf("expected min error rate 0.25, got %v", min)
	}
}

func TestHistoryEpochsCopy(t *testing.T) {
	var h History
	h.Record(1.0, 1.0)
	epochs := h.Epochs()
	epochs[0].Loss = 99

	got, _ := h.Last()
	if got.Loss != 1.0 {
		t.Fatalf("Epochs() must return a copy; history was mutated")
	}
}

func TestHistoryEmpty(t *testing.T) {
	var h History
	if _, ok := h.Last(); ok {
		t.Fatalf("Last on empty history reported ok")
	}
	if min := h.MinErrorRate(); min != 0 {
		t.Fatalf("expected 0 for empty history, got %v", min)
	}
}

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(8, 20*time.Millisecond, 1.2, 0.5)
	w.Record(8, 20*time.Millisecond, 0.8, 0.25)

	snap := w.Snapshot()
	if math.Abs(snap.EpochsPerSec-50) > 0.1 {
		t.Fatalf("unexpected epochs/sec %.2f", snap.EpochsPerSec)
	}
	if math.Abs(snap.SamplesPerSec-400) > 1 {
		t.Fatalf("unexpected samples/sec %.2f", snap.SamplesPerSec)
	}
	if math.Abs(snap.AvgEpochMS-20) > 0.01 {
		t.Fatalf("unexpected avg epoch ms %.2f", snap.AvgEpochMS)
	}
	if snap.LastLoss != 0.8 || snap.LastErrorRate != 0.25 {
		t.Fatalf("unexpected last loss/error %v/%v", snap.LastLoss, snap.LastErrorRate)
	}
	if w.samples != 0 || w.epochs != 0 || w.compute != 0 {
		t.Fatalf("window was not reset")
	}
}
