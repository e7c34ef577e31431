// Package setup turns the process environment into a ready runtime
// environment: it loads the configuration, applies the optional
// scenario file and assembles every collaborator.
package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"sepal/internal/classifier"
	"sepal/internal/dataset"
	"sepal/internal/logging"
	"sepal/internal/loss"
	"sepal/internal/margin"
	"sepal/internal/render"
	"sepal/internal/runenv"
	"sepal/internal/surface"
	"sepal/internal/sweep"
)

type GeneratorConfigProvider interface {
	GeneratorConfig() *dataset.Config
}

type FitterConfigProvider interface {
	FitterConfig() *classifier.Config
}

type LossConfigProvider interface {
	LossConfig() *loss.Config
}

type SurfaceConfigProvider interface {
	SurfaceConfig() *surface.Config
}

type MarginConfigProvider interface {
	MarginConfig() *margin.Config
}

type SweepConfigProvider interface {
	SweepConfig() *sweep.Config
}

type RenderConfigProvider interface {
	RenderConfig() *render.Config
}

// ScenarioConfigProvider merges a TOML scenario file over the
// environment-sourced configuration.
type ScenarioConfigProvider interface {
	ScenarioPath() string
	ApplyScenarioFile(path string) error
}

func Setup(ctx context.Context, config interface{}) (*runenv.Env, error) {
	logger := logging.FromContext(ctx)

	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if scenarioConfigProvider, ok := config.(ScenarioConfigProvider); ok {
		if path := scenarioConfigProvider.ScenarioPath(); path != "" {
			logger.Infof("Applying scenario %s", path)
			if err := scenarioConfigProvider.ApplyScenarioFile(path); err != nil {
				return nil, fmt.Errorf("unable apply scenario: %v", err)
			}
		}
	}

	var envOpts []runenv.Option

	var (
		generator *dataset.Generator
		fitter    *classifier.Fitter
		evaluator *loss.Evaluator
		surfaces  *surface.Builder
		estimator margin.Estimator
	)

	if generatorConfigProvider, ok := config.(GeneratorConfigProvider); ok {
		logger.Info("Configuring generator")
		generator = ProvideGeneratorFor(generatorConfigProvider.GeneratorConfig())
		envOpts = append(envOpts, runenv.WithGenerator(generator))
	}

	if fitterConfigProvider, ok := config.(FitterConfigProvider); ok {
		logger.Info("Configuring fitter")
		f, err := ProvideFitterFor(fitterConfigProvider.FitterConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create fitter: %v", err)
		}
		fitter = f
		envOpts = append(envOpts, runenv.WithFitter(fitter))
	}

	if lossConfigProvider, ok := config.(LossConfigProvider); ok {
		logger.Info("Configuring loss evaluator")
		evaluator = ProvideEvaluatorFor(lossConfigProvider.LossConfig())
		envOpts = append(envOpts, runenv.WithEvaluator(evaluator))
	}

	if surfaceConfigProvider, ok := config.(SurfaceConfigProvider); ok {
		logger.Info("Configuring surface builder")
		b, err := ProvideSurfaceBuilderFor(surfaceConfigProvider.SurfaceConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create surface builder: %v", err)
		}
		surfaces = b
		envOpts = append(envOpts, runenv.WithSurfaceBuilder(surfaces))
	}

	if marginConfigProvider, ok := config.(MarginConfigProvider); ok {
		logger.Info("Configuring margin estimator")
		est, err := ProvideEstimatorFor(marginConfigProvider.MarginConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create margin estimator: %v", err)
		}
		estimator = est
		envOpts = append(envOpts, runenv.WithEstimator(estimator))
	}

	if sweepConfigProvider, ok := config.(SweepConfigProvider); ok {
		logger.Info("Configuring sweep runner")
		provideFn, err := ProvideSweeperFor(sweepConfigProvider, generator, fitter, evaluator, surfaces, estimator)
		if err != nil {
			return nil, fmt.Errorf("unable create sweeper provide function: %v", err)
		}
		envOpts = append(envOpts, runenv.WithSweeper(provideFn))
	}

	if renderConfigProvider, ok := config.(RenderConfigProvider); ok {
		logger.Info("Configuring renderer")
		provideFn, err := ProvideRendererFor(renderConfigProvider)
		if err != nil {
			return nil, fmt.Errorf("unable create renderer provide function: %v", err)
		}
		envOpts = append(envOpts, runenv.WithRenderer(provideFn))
	}

	return runenv.New(envOpts...), nil
}

func ProvideGeneratorFor(cfg *dataset.Config) *dataset.Generator {
	return dataset.New(
		dataset.WithSamples(cfg.Samples),
		dataset.WithSpread(cfg.Spread),
		dataset.WithBase(cfg.BaseX, cfg.BaseY),
		dataset.WithSeed(cfg.Seed),
	)
}

func ProvideFitterFor(cfg *classifier.Config) (*classifier.Fitter, error) {
	return classifier.New(
		classifier.WithLambda(cfg.Lambda),
		classifier.WithMethod(cfg.Method),
		classifier.WithMaxIterations(cfg.MaxIterations),
	)
}

func ProvideEvaluatorFor(cfg *loss.Config) *loss.Evaluator {
	return loss.New(loss.WithEpsilon(cfg.Epsilon))
}

func ProvideSurfaceBuilderFor(cfg *surface.Config) (*surface.Builder, error) {
	return surface.New(
		surface.WithResolution(cfg.Resolution),
		surface.WithPadding(cfg.Padding),
	)
}

func ProvideEstimatorFor(cfg *margin.Config) (margin.Estimator, error) {
	return margin.For(
		cfg.Estimator,
		margin.WithLevels(cfg.Hi, cfg.Lo),
		margin.WithDistanceFunc(cfg.DistanceFunc),
	)
}

func ProvideSweeperFor(
	provider SweepConfigProvider,
	generator *dataset.Generator,
	fitter *classifier.Fitter,
	evaluator *loss.Evaluator,
	surfaces *surface.Builder,
	estimator margin.Estimator,
) (sweep.ProvideFn, error) {
	if generator == nil || fitter == nil || evaluator == nil || surfaces == nil || estimator == nil {
		return nil, fmt.Errorf("sweep collaborators are not configured")
	}

	cfg := provider.SweepConfig()
	return func() (*sweep.Runner, error) {
		return sweep.New(
			sweep.WithGenerator(generator),
			sweep.WithFitter(fitter),
			sweep.WithEvaluator(evaluator),
			sweep.WithSurfaceBuilder(surfaces),
			sweep.WithEstimator(estimator),
			sweep.WithWindow(cfg.Start, cfg.End),
			sweep.WithSteps(cfg.Steps),
		)
	}, nil
}

func ProvideRendererFor(provider RenderConfigProvider) (render.ProvideFn, error) {
	cfg := provider.RenderConfig()
	return func() (*render.PNGRenderer, error) {
		return render.New(
			render.WithDir(cfg.Dir),
			render.WithDPI(cfg.DPI),
		)
	}, nil
}
