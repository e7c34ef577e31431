// Package sepal is the root configuration: one struct sourced from the
// environment that provides every collaborator config.
package sepal

import (
	"sepal/internal/classifier"
	"sepal/internal/dataset"
	"sepal/internal/loss"
	"sepal/internal/margin"
	"sepal/internal/render"
	"sepal/internal/setup"
	"sepal/internal/surface"
	"sepal/internal/sweep"
)

var (
	_ setup.GeneratorConfigProvider = (*Config)(nil)
	_ setup.FitterConfigProvider    = (*Config)(nil)
	_ setup.LossConfigProvider      = (*Config)(nil)
	_ setup.SurfaceConfigProvider   = (*Config)(nil)
	_ setup.MarginConfigProvider    = (*Config)(nil)
	_ setup.SweepConfigProvider     = (*Config)(nil)
	_ setup.RenderConfigProvider    = (*Config)(nil)
	_ setup.ScenarioConfigProvider  = (*Config)(nil)
)

type Config struct {
	Debug        bool   `envconfig:"SEPAL_DEBUG" default:"false"`
	ScenarioFile string `envconfig:"SEPAL_SCENARIO" default:""`
	Generator    dataset.Config
	Fitter       classifier.Config
	Loss         loss.Config
	Surface      surface.Config
	Margin       margin.Config
	Sweep        sweep.Config
	Render       render.Config
}

func (c Config) ScenarioPath() string {
	return c.ScenarioFile
}

func (c Config) GeneratorConfig() *dataset.Config {
	return &c.Generator
}

func (c Config) FitterConfig() *classifier.Config {
	return &c.Fitter
}

func (c Config) LossConfig() *loss.Config {
	return &c.Loss
}

func (c Config) SurfaceConfig() *surface.Config {
	return &c.Surface
}

func (c Config) MarginConfig() *margin.Config {
	return &c.Margin
}

func (c Config) SweepConfig() *sweep.Config {
	return &c.Sweep
}

func (c Config) RenderConfig() *render.Config {
	return &c.Render
}
