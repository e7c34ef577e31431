// Package sweep runs the shift-distance experiment series: at each
// distance it regenerates the clusters, refits the classifier and
// collects the per-step metrics and panel descriptors.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"sepal/internal/classifier"
	"sepal/internal/dataset"
	"sepal/internal/geom"
	"sepal/internal/logging"
	"sepal/internal/loss"
	"sepal/internal/margin"
	"sepal/internal/surface"
)

var (
	ErrBadSteps  = fmt.Errorf("steps count must be positive")
	ErrBadWindow = fmt.Errorf("sweep window end must not precede start")
)

// ProvideFn builds a configured runner.
type ProvideFn func() (*Runner, error)

// Generator yields a fresh labelled dataset for a shift distance.
type Generator interface {
	Generate(distance float64) (*dataset.Dataset, error)
}

// Fitter fits the classifier on a dataset.
type Fitter interface {
	Fit(ctx context.Context, ds *dataset.Dataset) (*classifier.Model, error)
}

// Evaluator scores a fitted model against the data it was fitted on.
type Evaluator interface {
	Evaluate(m loss.Prober, ds *dataset.Dataset) (float64, error)
}

// SurfaceBuilder samples the model probability over the data window.
type SurfaceBuilder interface {
	Build(m surface.Prober, bounds geom.Rect) (*surface.Surface, error)
}

// Record is the metric row of one experiment. Numeric fields hold NaN
// from the failing stage on, with Err labelling the failure.
type Record struct {
	Distance    float64
	Beta0       float64
	Beta1       float64
	Beta2       float64
	Slope       float64
	Intercept   float64
	Loss        float64
	MarginWidth float64
	Err         string
}

// Panel is the immutable drawing descriptor of one experiment.
type Panel struct {
	Distance   float64
	Class0     []geom.Point
	Class1     []geom.Point
	Slope      float64
	Intercept  float64
	BoundaryOK bool
	Window     geom.Rect
	Bands      []margin.Band
}

// Result collects a full sweep. Records always carries one row per
// shift; Panels only the iterations that ran to completion.
type Result struct {
	RunID   string
	Shifts  []float64
	Records []Record
	Panels  []Panel
}

// Shifts spans steps evenly spaced distances from start to end, both
// inclusive. A single step degenerates to the start alone.
func Shifts(start, end float64, steps int) ([]float64, error) {
	if steps < 1 {
		return nil, ErrBadSteps
	}
	if end < start {
		return nil, ErrBadWindow
	}
	if steps == 1 {
		return []float64{start}, nil
	}
	return floats.Span(make([]float64, steps), start, end), nil
}

type Option func(*Options)

func WithGenerator(g Generator) Option {
	return func(o *Options) {
		o.generator = g
	}
}

func WithFitter(f Fitter) Option {
	return func(o *Options) {
		o.fitter = f
	}
}

func WithEvaluator(e Evaluator) Option {
	return func(o *Options) {
		o.evaluator = e
	}
}

func WithSurfaceBuilder(b SurfaceBuilder) Option {
	return func(o *Options) {
		o.surfaces = b
	}
}

func WithEstimator(e margin.Estimator) Option {
	return func(o *Options) {
		o.estimator = e
	}
}

// WithWindow sets the swept shift-distance range.
func WithWindow(start, end float64) Option {
	return func(o *Options) {
		o.start, o.end = start, end
	}
}

func WithSteps(n int) Option {
	return func(o *Options) {
		o.steps = n
	}
}

// WithBandLevels sets the confidence levels extracted for the panels.
func WithBandLevels(levels ...float64) Option {
	return func(o *Options) {
		o.bandLevels = levels
	}
}

var defaultOptions = Options{
	start:      0.25,
	end:        2.0,
	steps:      8,
	bandLevels: []float64{0.7, 0.8, 0.9},
}

type Options struct {
	start      float64
	end        float64
	steps      int
	bandLevels []float64

	generator Generator
	fitter    Fitter
	evaluator Evaluator
	surfaces  SurfaceBuilder
	estimator margin.Estimator
}

// Runner drives the sweep over its collaborators, one iteration per
// shift distance, strictly in order.
type Runner struct {
	opts Options
}

func New(opts ...Option) (*Runner, error) {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}

	if o.generator == nil {
		return nil, fmt.Errorf("unable creating sweep runner instance, generator is required")
	}
	if o.fitter == nil {
		return nil, fmt.Errorf("unable creating sweep runner instance, fitter is required")
	}
	if o.evaluator == nil {
		return nil, fmt.Errorf("unable creating sweep runner instance, evaluator is required")
	}
	if o.surfaces == nil {
		return nil, fmt.Errorf("unable creating sweep runner instance, surface builder is required")
	}
	if o.estimator == nil {
		return nil, fmt.Errorf("unable creating sweep runner instance, margin estimator is required")
	}
	if _, err := Shifts(o.start, o.end, o.steps); err != nil {
		return nil, fmt.Errorf("unable creating sweep runner instance, %v", err)
	}
	for _, level := range o.bandLevels {
		if level <= 0 || level >= 1 {
			return nil, fmt.Errorf("unable creating sweep runner instance, band level %v out of range", level)
		}
	}

	return &Runner{opts: o}, nil
}

// Run executes every iteration in shift order. Iteration failures are
// recorded and skipped over; only a broken shift grid aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)

	shifts, err := Shifts(r.opts.start, r.opts.end, r.opts.steps)
	if err != nil {
		return nil, fmt.Errorf("shift grid: %w", err)
	}

	res := &Result{
		RunID:   uuid.New().String(),
		Shifts:  shifts,
		Records: make([]Record, 0, len(shifts)),
		Panels:  make([]Panel, 0, len(shifts)),
	}

	for _, distance := range shifts {
		rec, panel := r.step(ctx, distance)

		res.Records = append(res.Records, rec)
		if panel != nil {
			res.Panels = append(res.Panels, *panel)
		}

		if rec.Err != "" {
			logger.Warnf("shift %.2f: %s", distance, rec.Err)
			continue
		}
		logger.Infof("shift %.2f: beta=(%.3f, %.3f, %.3f) loss=%.4f margin=%.4f",
			distance, rec.Beta0, rec.Beta1, rec.Beta2, rec.Loss, rec.MarginWidth)
	}

	return res, nil
}

func (r *Runner) step(ctx context.Context, distance float64) (Record, *Panel) {
	nan := math.NaN()
	rec := Record{
		Distance:    distance,
		Beta0:       nan,
		Beta1:       nan,
		Beta2:       nan,
		Slope:       nan,
		Intercept:   nan,
		Loss:        nan,
		MarginWidth: nan,
	}

	ds, err := r.opts.generator.Generate(distance)
	if err != nil {
		rec.Err = fmt.Sprintf("generate: %v", err)
		return rec, nil
	}

	model, err := r.opts.fitter.Fit(ctx, ds)
	if err != nil {
		rec.Err = fmt.Sprintf("fit: %v", err)
		return rec, nil
	}
	rec.Beta0, rec.Beta1, rec.Beta2 = model.Coefficients()

	// a vertical boundary only suppresses the drawn line
	boundaryOK := true
	if slope, intercept, err := model.Boundary(); err != nil {
		boundaryOK = false
	} else {
		rec.Slope, rec.Intercept = slope, intercept
	}

	if rec.Loss, err = r.opts.evaluator.Evaluate(model, ds); err != nil {
		rec.Loss = nan
		rec.Err = fmt.Sprintf("loss: %v", err)
		return rec, nil
	}

	bounds, err := ds.Bounds()
	if err != nil {
		rec.Err = fmt.Sprintf("bounds: %v", err)
		return rec, nil
	}

	surf, err := r.opts.surfaces.Build(model, bounds)
	if err != nil {
		rec.Err = fmt.Sprintf("surface: %v", err)
		return rec, nil
	}

	if rec.MarginWidth, err = r.opts.estimator.Width(ctx, model, surf); err != nil {
		rec.MarginWidth = nan
		rec.Err = fmt.Sprintf("margin: %v", err)
		return rec, nil
	}

	return rec, &Panel{
		Distance:   distance,
		Class0:     ds.Class(0),
		Class1:     ds.Class(1),
		Slope:      rec.Slope,
		Intercept:  rec.Intercept,
		BoundaryOK: boundaryOK,
		Window:     surf.Window(),
		Bands:      margin.Bands(surf, r.opts.bandLevels),
	}
}
