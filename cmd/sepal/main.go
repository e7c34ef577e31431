package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"sepal/internal/buildinfo"
	sepal "sepal/internal/config"
	"sepal/internal/logging"
	"sepal/internal/setup"
	"sepal/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	defer done()

	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	config := sepal.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	logger := logging.NewLogger(config.Debug)
	ctx = logging.WithLogger(ctx, logger)

	sweeper, err := env.ProvideSweeper()()
	if err != nil {
		return fmt.Errorf("sweeper provider function error: %w", err)
	}

	renderer, err := env.ProvideRenderer()()
	if err != nil {
		return fmt.Errorf("renderer provider function error: %w", err)
	}

	res, err := sweeper.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep run: %w", err)
	}

	if err := renderer.Render(ctx, res); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	logger.Infof("run %s complete: %s", res.RunID, strings.Join(renderer.Paths(), ", "))
	return nil
}
