package loss

type Config struct {
	Epsilon float64 `envconfig:"SEPAL_LOSS_EPSILON" default:"1e-15"`
}
