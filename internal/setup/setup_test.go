package setup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sepal "sepal/internal/config"
	"sepal/internal/setup"
)

func TestSetup(t *testing.T) {
	config := sepal.Config{}

	env, err := setup.Setup(context.Background(), &config)
	require.NoError(t, err, "the error should not be returned")

	assert.NotNil(t, env.Generator())
	assert.NotNil(t, env.Fitter())
	assert.NotNil(t, env.Evaluator())
	assert.NotNil(t, env.SurfaceBuilder())
	assert.NotNil(t, env.MarginEstimator())
	require.NotNil(t, env.ProvideSweeper())
	require.NotNil(t, env.ProvideRenderer())

	sweeper, err := env.ProvideSweeper()()
	assert.NoError(t, err, "the error should not be returned")
	assert.NotNil(t, sweeper)

	renderer, err := env.ProvideRenderer()()
	assert.NoError(t, err, "the error should not be returned")
	assert.NotNil(t, renderer)
}

func TestSetup_AppliesScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte("steps = 3\nsamples = 25\n"), 0o644))
	t.Setenv("SEPAL_SCENARIO", path)

	config := sepal.Config{}

	_, err := setup.Setup(context.Background(), &config)
	require.NoError(t, err, "the error should not be returned")

	assert.Equal(t, 3, config.Sweep.Steps)
	assert.Equal(t, 25, config.Generator.Samples)
	assert.InDelta(t, 0.25, config.Sweep.Start, 1e-12)
}

func TestSetup_UnknownEstimator(t *testing.T) {
	t.Setenv("SEPAL_MARGIN_ESTIMATOR", "KERNEL")

	config := sepal.Config{}

	_, err := setup.Setup(context.Background(), &config)
	assert.Error(t, err, "the error should be returned")
}

func TestSetup_MissingScenarioFile(t *testing.T) {
	t.Setenv("SEPAL_SCENARIO", filepath.Join(t.TempDir(), "absent.toml"))

	config := sepal.Config{}

	_, err := setup.Setup(context.Background(), &config)
	assert.Error(t, err, "the error should be returned")
}
