// Package margin measures the width of the low-confidence band between
// the two class regions of a fitted probability surface.
package margin

import (
	"context"
	"fmt"
	"math"

	"sepal/internal/geom"
	"sepal/internal/logging"
	"sepal/internal/surface"
)

var (
	// ErrUndefined marks a surface on which a confidence region is
	// empty, so no band width exists.
	ErrUndefined = fmt.Errorf("margin is undefined")
	// ErrBadLevels marks confidence levels outside 0 < lo < hi < 1.
	ErrBadLevels = fmt.Errorf("confidence levels must satisfy 0 < lo < hi < 1")
)

// Model exposes what the estimators need from a fitted classifier.
type Model interface {
	Prob(x1, x2 float64) float64
	Coefficients() (beta0, beta1, beta2 float64)
}

// Estimator measures the band width between the class-1 region
// {p >= hi} and the class-0 region {p <= lo}.
type Estimator interface {
	Width(ctx context.Context, m Model, surf *surface.Surface) (float64, error)
}

type EstimatorType string

const (
	EstimatorTypeContour    EstimatorType = "CONTOUR"
	EstimatorTypeClosedForm EstimatorType = "CLOSED_FORM"
)

// For returns an estimator instance for the type.
func For(t EstimatorType, opts ...Option) (Estimator, error) {
	switch t {
	case EstimatorTypeContour:
		return NewContour(opts...)
	case EstimatorTypeClosedForm:
		return NewClosedForm(opts...)
	default:
		return nil, fmt.Errorf("unknown estimator type: %s", t)
	}
}

type Option func(*Options)

// WithLevels sets the high and low confidence levels bounding the band.
func WithLevels(hi, lo float64) Option {
	return func(o *Options) {
		o.hi = hi
		o.lo = lo
	}
}

func WithDistanceFunc(d geom.DistanceFuncType) Option {
	return func(o *Options) {
		o.distanceFuncType = d
	}
}

var defaultOptions = Options{
	hi:               0.7,
	lo:               0.3,
	distanceFuncType: geom.DistanceFuncTypeEuclidean,
}

type Options struct {
	hi, lo           float64
	distanceFuncType geom.DistanceFuncType
}

func (o Options) validate() error {
	if o.lo <= 0 || o.hi >= 1 || o.lo >= o.hi {
		return ErrBadLevels
	}
	return nil
}

var (
	_ Estimator = (*ContourEstimator)(nil)
	_ Estimator = (*ClosedFormEstimator)(nil)
)

// ContourEstimator traces both region boundaries on the sampled lattice
// and reports the smallest pairwise vertex distance between them.
type ContourEstimator struct {
	opts   Options
	distFn geom.PointsDistanceFn
}

func NewContour(opts ...Option) (*ContourEstimator, error) {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	distFn, err := geom.DistanceFuncFor(o.distanceFuncType)
	if err != nil {
		return nil, fmt.Errorf("unable creating contour estimator instance, %v", err)
	}

	return &ContourEstimator{opts: o, distFn: distFn}, nil
}

func (e *ContourEstimator) Width(ctx context.Context, _ Model, surf *surface.Surface) (float64, error) {
	logger := logging.FromContext(ctx)

	hi, ok := regionRing(surf, 1, e.opts.hi)
	if !ok {
		return 0, fmt.Errorf("class 1 region at level %.2f is empty: %w", e.opts.hi, ErrUndefined)
	}

	lo, ok := regionRing(surf, 0, 1-e.opts.lo)
	if !ok {
		return 0, fmt.Errorf("class 0 region at level %.2f is empty: %w", 1-e.opts.lo, ErrUndefined)
	}

	width, err := geom.MinDistance(hi, lo, e.distFn)
	if err != nil {
		return 0, fmt.Errorf("contour width: %w", err)
	}

	logger.Debugf("contour margin: %dx%d ring vertices, width %f", len(hi), len(lo), width)

	return width, nil
}

// ClosedFormEstimator computes the band width of a linear logit
// exactly: (logit(hi)-logit(lo)) / |(b1,b2)|. The surface argument is
// unused beyond the estimator contract.
type ClosedFormEstimator struct {
	opts Options
}

func NewClosedForm(opts ...Option) (*ClosedFormEstimator, error) {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &ClosedFormEstimator{opts: o}, nil
}

func (e *ClosedFormEstimator) Width(_ context.Context, m Model, _ *surface.Surface) (float64, error) {
	_, b1, b2 := m.Coefficients()

	norm := math.Hypot(b1, b2)
	if norm == 0 {
		return 0, fmt.Errorf("probability field is flat: %w", ErrUndefined)
	}

	return (logit(e.opts.hi) - logit(e.opts.lo)) / norm, nil
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// Band is the set of closed rings bounding one confidence region: for
// class 1 the region {p >= level}, for class 0 the mirror {p <= 1-level}.
type Band struct {
	Level float64
	Class int
	Rings []geom.Polyline
}

// Bands extracts both classes' region boundaries at every level, kept
// in level order.
func Bands(surf *surface.Surface, levels []float64) []Band {
	bands := make([]Band, 0, 2*len(levels))
	for _, level := range levels {
		bands = append(bands,
			Band{Level: level, Class: 1, Rings: Rings(surf, 1, level)},
			Band{Level: level, Class: 0, Rings: Rings(surf, 0, level)},
		)
	}
	return bands
}

// Rings traces the closed boundary rings of the class confidence region
// at the level. Class 0 runs on the inverted field, so the same level
// means the same confidence for either class.
func Rings(surf *surface.Surface, class int, level float64) []geom.Polyline {
	f := newScalarField(surf.Xs, surf.Ys, surf.At, class == 0)
	return f.rings(level)
}

// regionRing reduces a region to its dominant ring: the largest by
// enclosed area, ties broken by the lexicographically smallest starting
// vertex of the canonical rotation.
func regionRing(surf *surface.Surface, class int, level float64) (geom.Polyline, bool) {
	rings := Rings(surf, class, level)
	if len(rings) == 0 {
		return nil, false
	}

	best := rings[0].Canon()
	bestArea := math.Abs(rings[0].Area())
	for _, r := range rings[1:] {
		area := math.Abs(r.Area())
		if area < bestArea {
			continue
		}

		c := r.Canon()
		if area > bestArea || startLess(c, best) {
			best, bestArea = c, area
		}
	}

	return best, true
}

func startLess(a, b geom.Polyline) bool {
	if a[0].Dim(0) != b[0].Dim(0) {
		return a[0].Dim(0) < b[0].Dim(0)
	}
	return a[0].Dim(1) < b[0].Dim(1)
}
