package classifier

type Config struct {
	Lambda        float64    `envconfig:"SEPAL_FIT_LAMBDA" default:"1"`
	Method        MethodType `envconfig:"SEPAL_FIT_METHOD" default:"LBFGS"`
	MaxIterations int        `envconfig:"SEPAL_FIT_MAX_ITERATIONS" default:"0"`
}
