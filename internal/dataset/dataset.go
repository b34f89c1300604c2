package dataset

import "github.com/pkg/errors"

// Sample is one labeled scalar observation. Label 0 marks class R1 and
// label 1 class R2.
type Sample struct {
	X     float64
	Label int
}

// Dataset is an immutable ordered collection of labeled samples. The order
// is fixed at construction; the trainer iterates it deterministically so
// recorded histories are reproducible.
type Dataset struct {
	samples []Sample
}

// New copies samples into a Dataset, rejecting empty input and labels
// outside {0, 1}.
func New(samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, errors.New("dataset: no samples")
	}
	copied := make([]Sample, len(samples))
	copy(copied, samples)
	for i, s := range copied {
		if s.Label != 0 && s.Label != 1 {
			return nil, errors.Errorf("dataset: sample %d: label must be 0 or 1 (got %d)", i, s.Label)
		}
	}
	return &Dataset{samples: copied}, nil
}

// Canonical returns the built-in two-class separation exercise: eight
// scalar points, nearly linearly separable except for one label flip on
// each side of the origin.
func Canonical() *Dataset {
	xs := []float64{-4, -3, -2, -1, 1, 2, 3, 4}
	ts := []int{0, 0, 0, 1, 0, 1, 1, 1}
	samples := make([]Sample, len(xs))
	for i := range xs {
		samples[i] = Sample{X: xs[i], Label: ts[i]}
	}
	d, err := New(samples)
	if err != nil {
		panic(err) // unreachable: the literals above are well formed
	}
	return d
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.samples) }

// At returns sample i in training order.
func (d *Dataset) At(i int) Sample { return d.samples[i] }

// Samples returns a copy of the sample sequence.
func (d *Dataset) Samples() []Sample {
	out := make([]Sample, len(d.samples))
	copy(out, d.samples)
	return out
}
