// Package loss scores a fitted model with mean binary cross-entropy.
package loss

import (
	"fmt"
	"math"

	"sepal/internal/dataset"
)

var (
	ErrLogDomain = fmt.Errorf("probability outside the log domain")
	ErrNoData    = fmt.Errorf("dataset is empty")
)

// DefaultEpsilon clamps probabilities into [eps, 1-eps] so the loss
// stays finite on saturated predictions.
const DefaultEpsilon = 1e-15

// Prober yields the class-1 probability at a point.
type Prober interface {
	Prob(x1, x2 float64) float64
}

type Option func(*Evaluator)

// WithEpsilon overrides the clamp width. Zero selects strict mode: a
// saturated probability on the wrong label surfaces ErrLogDomain
// instead of being clamped.
func WithEpsilon(eps float64) Option {
	return func(e *Evaluator) {
		e.eps = eps
	}
}

type Evaluator struct {
	eps float64
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{eps: DefaultEpsilon}
	for _, f := range opts {
		f(e)
	}
	return e
}

// Evaluate returns the mean of -[y*ln(p) + (1-y)*ln(1-p)] over the
// dataset. With the default clamp the result is always finite and
// non-negative; in strict mode rows with (y=1, p=0) or (y=0, p=1)
// return ErrLogDomain.
func (e *Evaluator) Evaluate(m Prober, ds *dataset.Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, ErrNoData
	}
	var sum float64
	for i, p := range ds.Points {
		prob := m.Prob(p.Dim(0), p.Dim(1))
		if e.eps > 0 {
			prob = clamp(prob, e.eps, 1-e.eps)
		}
		if ds.Labels[i] == 1 {
			if prob == 0 {
				return 0, fmt.Errorf("row %d: %w", i, ErrLogDomain)
			}
			sum -= math.Log(prob)
			continue
		}
		if prob == 1 {
			return 0, fmt.Errorf("row %d: %w", i, ErrLogDomain)
		}
		sum -= math.Log(1 - prob)
	}
	return sum / float64(ds.Len()), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
