package sweep

type Config struct {
	Start float64 `envconfig:"SEPAL_SWEEP_START" default:"0.25"`
	End   float64 `envconfig:"SEPAL_SWEEP_END" default:"2.0"`
	Steps int     `envconfig:"SEPAL_SWEEP_STEPS" default:"8"`
}
