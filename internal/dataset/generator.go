package dataset

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"sepal/internal/geom"
)

var (
	ErrNoSamples     = fmt.Errorf("samples count must be positive")
	ErrInvalidSpread = fmt.Errorf("spread does not yield a positive definite covariance")
)

// covRatio couples the two coordinates: cov = [[s, covRatio*s], [covRatio*s, s]].
const covRatio = 0.8

type Option func(*Generator)

func WithSamples(n int) Option {
	return func(g *Generator) {
		g.opts.samples = n
	}
}

func WithSpread(s float64) Option {
	return func(g *Generator) {
		g.opts.spread = s
	}
}

func WithBase(x, y float64) Option {
	return func(g *Generator) {
		g.opts.baseX, g.opts.baseY = x, y
	}
}

func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.opts.seed = seed
	}
}

var defaultOptions = Options{samples: 100, spread: 0.5, baseX: 1, baseY: 1}

type Options struct {
	samples      int
	spread       float64
	baseX, baseY float64
	seed         uint64
}

type Generator struct {
	opts Options
}

func New(opts ...Option) *Generator {
	g := &Generator{opts: defaultOptions}
	for _, f := range opts {
		f(g)
	}
	return g
}

// Generate samples one cluster per class: class 0 at the base center,
// class 1 shifted by distance along both axes. The random stream is
// rebuilt from the seed on every call, so equal inputs reproduce the
// dataset bit for bit and consecutive calls stay independent.
func (g *Generator) Generate(distance float64) (*Dataset, error) {
	if g.opts.samples < 1 {
		return nil, ErrNoSamples
	}
	s := g.opts.spread
	sigma := mat.NewSymDense(2, []float64{s, covRatio * s, covRatio * s, s})
	src := rand.NewSource(g.opts.seed)

	first, ok := distmv.NewNormal([]float64{g.opts.baseX, g.opts.baseY}, sigma, src)
	if !ok {
		return nil, fmt.Errorf("cluster 0: %w", ErrInvalidSpread)
	}
	second, ok := distmv.NewNormal([]float64{g.opts.baseX + distance, g.opts.baseY + distance}, sigma, src)
	if !ok {
		return nil, fmt.Errorf("cluster 1: %w", ErrInvalidSpread)
	}

	ds := &Dataset{
		Points: make([]geom.Point, 0, 2*g.opts.samples),
		Labels: make([]int, 0, 2*g.opts.samples),
	}
	for i := 0; i < g.opts.samples; i++ {
		ds.Points = append(ds.Points, geom.New(first.Rand(nil)...))
		ds.Labels = append(ds.Labels, 0)
	}
	for i := 0; i < g.opts.samples; i++ {
		ds.Points = append(ds.Points, geom.New(second.Rand(nil)...))
		ds.Labels = append(ds.Labels, 1)
	}
	return ds, nil
}
