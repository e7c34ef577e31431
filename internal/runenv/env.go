// Package runenv carries the configured collaborators of one program
// run, assembled by setup and consumed by the command.
package runenv

import (
	"sepal/internal/classifier"
	"sepal/internal/dataset"
	"sepal/internal/loss"
	"sepal/internal/margin"
	"sepal/internal/render"
	"sepal/internal/surface"
	"sepal/internal/sweep"
)

type Option func(*Env) *Env

func New(opts ...Option) *Env {
	env := &Env{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type Env struct {
	generator *dataset.Generator
	fitter    *classifier.Fitter
	evaluator *loss.Evaluator
	surfaces  *surface.Builder
	estimator margin.Estimator
	sweeper   sweep.ProvideFn
	renderer  render.ProvideFn
}

func (e *Env) Generator() *dataset.Generator {
	return e.generator
}

func (e *Env) Fitter() *classifier.Fitter {
	return e.fitter
}

func (e *Env) Evaluator() *loss.Evaluator {
	return e.evaluator
}

func (e *Env) SurfaceBuilder() *surface.Builder {
	return e.surfaces
}

func (e *Env) MarginEstimator() margin.Estimator {
	return e.estimator
}

func (e *Env) ProvideSweeper() sweep.ProvideFn {
	return e.sweeper
}

func (e *Env) ProvideRenderer() render.ProvideFn {
	return e.renderer
}

func WithGenerator(g *dataset.Generator) Option {
	return func(e *Env) *Env {
		e.generator = g
		return e
	}
}

func WithFitter(f *classifier.Fitter) Option {
	return func(e *Env) *Env {
		e.fitter = f
		return e
	}
}

func WithEvaluator(ev *loss.Evaluator) Option {
	return func(e *Env) *Env {
		e.evaluator = ev
		return e
	}
}

func WithSurfaceBuilder(b *surface.Builder) Option {
	return func(e *Env) *Env {
		e.surfaces = b
		return e
	}
}

func WithEstimator(est margin.Estimator) Option {
	return func(e *Env) *Env {
		e.estimator = est
		return e
	}
}

func WithSweeper(fn sweep.ProvideFn) Option {
	return func(e *Env) *Env {
		e.sweeper = fn
		return e
	}
}

func WithRenderer(fn render.ProvideFn) Option {
	return func(e *Env) *Env {
		e.renderer = fn
		return e
	}
}
