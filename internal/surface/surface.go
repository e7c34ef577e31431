// Package surface evaluates a model's class-1 probability on a regular
// lattice over the padded data window.
package surface

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"sepal/internal/geom"
)

var ErrResolution = fmt.Errorf("resolution must be at least 2")

// Prober yields the class-1 probability at a point.
type Prober interface {
	Prob(x1, x2 float64) float64
}

// Surface is a probability field sampled on the lattice Xs x Ys. Z is
// row-major with the y index as the row.
type Surface struct {
	Xs, Ys []float64
	Z      []float64
}

func (s *Surface) At(ix, iy int) float64 {
	return s.Z[iy*len(s.Xs)+ix]
}

func (s *Surface) Resolution() (nx, ny int) {
	return len(s.Xs), len(s.Ys)
}

// Window is the lattice extent.
func (s *Surface) Window() geom.Rect {
	return geom.Rect{
		XMin: s.Xs[0], XMax: s.Xs[len(s.Xs)-1],
		YMin: s.Ys[0], YMax: s.Ys[len(s.Ys)-1],
	}
}

type Option func(*Builder)

func WithResolution(n int) Option {
	return func(b *Builder) {
		b.opts.resolution = n
	}
}

// WithPadding sets the margin added around the data bounds before
// sampling.
func WithPadding(p float64) Option {
	return func(b *Builder) {
		b.opts.padding = p
	}
}

var defaultOptions = Options{resolution: 200, padding: 1}

type Options struct {
	resolution int
	padding    float64
}

type Builder struct {
	opts Options
}

func New(opts ...Option) (*Builder, error) {
	b := &Builder{opts: defaultOptions}
	for _, f := range opts {
		f(b)
	}
	if b.opts.resolution < 2 {
		return nil, ErrResolution
	}
	return b, nil
}

// Build samples the prober on a resolution x resolution lattice spanning
// bounds padded on every side. Both axes include their endpoints.
func (b *Builder) Build(m Prober, bounds geom.Rect) (*Surface, error) {
	if m == nil {
		return nil, fmt.Errorf("prober is nil")
	}
	res := b.opts.resolution
	window := bounds.Pad(b.opts.padding)
	xs := floats.Span(make([]float64, res), window.XMin, window.XMax)
	ys := floats.Span(make([]float64, res), window.YMin, window.YMax)

	z := make([]float64, res*res)
	for iy, y := range ys {
		for ix, x := range xs {
			z[iy*res+ix] = m.Prob(x, y)
		}
	}
	return &Surface{Xs: xs, Ys: ys, Z: z}, nil
}
