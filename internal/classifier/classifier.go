// Package classifier fits a two-feature L2-regularised logistic
// regression and exposes the fitted linear model.
package classifier

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"sepal/internal/dataset"
	"sepal/internal/logging"
)

var (
	ErrSingleClass      = fmt.Errorf("training data must contain both classes")
	ErrVerticalBoundary = fmt.Errorf("decision boundary is vertical: x2 coefficient is zero")
)

// defaultGradientTolerance stops the optimizer once the gradient norm is
// numerically negligible. gonum's 1e-12 default drives the linesearcher
// past machine precision on an already converged fit and surfaces a
// linesearch failure instead of the optimum.
const defaultGradientTolerance = 1e-6

// Model is the fitted logistic regression p(y=1|x) = sigmoid(b0 + b1*x1 + b2*x2).
type Model struct {
	Beta0, Beta1, Beta2 float64
}

func (m *Model) Coefficients() (beta0, beta1, beta2 float64) {
	return m.Beta0, m.Beta1, m.Beta2
}

func (m *Model) Logit(x1, x2 float64) float64 {
	return m.Beta0 + m.Beta1*x1 + m.Beta2*x2
}

func (m *Model) Prob(x1, x2 float64) float64 {
	return sigmoid(m.Logit(x1, x2))
}

func (m *Model) Predict(x1, x2 float64) int {
	if m.Logit(x1, x2) >= 0 {
		return 1
	}
	return 0
}

// Boundary expresses the p = 0.5 line as x2 = slope*x1 + intercept.
func (m *Model) Boundary() (slope, intercept float64, err error) {
	if m.Beta2 == 0 {
		return 0, 0, ErrVerticalBoundary
	}
	return -m.Beta1 / m.Beta2, -m.Beta0 / m.Beta2, nil
}

type Option func(*Fitter)

// WithLambda sets the L2 strength on the slope coefficients. The
// intercept is never regularised.
func WithLambda(l float64) Option {
	return func(f *Fitter) {
		f.opts.lambda = l
	}
}

func WithMethod(m MethodType) Option {
	return func(f *Fitter) {
		f.opts.methodType = m
	}
}

func WithMaxIterations(n int) Option {
	return func(f *Fitter) {
		f.opts.maxIterations = n
	}
}

var defaultOptions = Options{lambda: 1, methodType: MethodTypeLBFGS}

type Options struct {
	lambda        float64
	methodType    MethodType
	maxIterations int
}

type Fitter struct {
	opts   Options
	method optimize.Method
}

func New(opts ...Option) (*Fitter, error) {
	f := &Fitter{opts: defaultOptions}
	for _, fn := range opts {
		fn(f)
	}
	method, err := MethodFor(f.opts.methodType)
	if err != nil {
		return nil, fmt.Errorf("unable creating fitter instance, %v", err)
	}
	f.method = method
	return f, nil
}

// Fit minimises the regularised cross-entropy from the zero vector. The
// objective is convex, so the optimizer's stationary point is the
// global fit.
func (f *Fitter) Fit(ctx context.Context, ds *dataset.Dataset) (*Model, error) {
	logger := logging.FromContext(ctx)
	if !hasBothClasses(ds) {
		return nil, ErrSingleClass
	}

	problem := optimize.Problem{
		Func: f.objective(ds),
		Grad: f.gradient(ds),
	}
	result, err := optimize.Minimize(problem, []float64{0, 0, 0}, f.settings(), f.method)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	model := &Model{Beta0: result.X[0], Beta1: result.X[1], Beta2: result.X[2]}
	logger.Debugf("fitted model: beta0=%f beta1=%f beta2=%f", model.Beta0, model.Beta1, model.Beta2)
	return model, nil
}

func (f *Fitter) settings() *optimize.Settings {
	s := &optimize.Settings{GradientThreshold: defaultGradientTolerance}
	if f.opts.maxIterations > 0 {
		s.MajorIterations = f.opts.maxIterations
	}
	return s
}

// objective is sum softplus(z) - y*z over rows plus lambda/2 * |w|^2.
func (f *Fitter) objective(ds *dataset.Dataset) func(x []float64) float64 {
	return func(x []float64) float64 {
		var sum float64
		for i, p := range ds.Points {
			z := x[0] + x[1]*p.Dim(0) + x[2]*p.Dim(1)
			sum += softplus(z) - float64(ds.Labels[i])*z
		}
		return sum + 0.5*f.opts.lambda*(x[1]*x[1]+x[2]*x[2])
	}
}

func (f *Fitter) gradient(ds *dataset.Dataset) func(grad, x []float64) {
	return func(grad, x []float64) {
		grad[0], grad[1], grad[2] = 0, 0, 0
		for i, p := range ds.Points {
			z := x[0] + x[1]*p.Dim(0) + x[2]*p.Dim(1)
			r := sigmoid(z) - float64(ds.Labels[i])
			grad[0] += r
			grad[1] += r * p.Dim(0)
			grad[2] += r * p.Dim(1)
		}
		grad[1] += f.opts.lambda * x[1]
		grad[2] += f.opts.lambda * x[2]
	}
}

func hasBothClasses(ds *dataset.Dataset) bool {
	var seen [2]bool
	for _, label := range ds.Labels {
		if label == 0 || label == 1 {
			seen[label] = true
		}
		if seen[0] && seen[1] {
			return true
		}
	}
	return false
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// softplus is ln(1+e^z) evaluated without overflow for large |z|.
func softplus(z float64) float64 {
	return math.Max(z, 0) + math.Log1p(math.Exp(-math.Abs(z)))
}
