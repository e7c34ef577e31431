package dataset

type Config struct {
	Samples int     `envconfig:"SEPAL_GEN_SAMPLES" default:"100"`
	Spread  float64 `envconfig:"SEPAL_GEN_SPREAD" default:"0.5"`
	BaseX   float64 `envconfig:"SEPAL_GEN_BASE_X" default:"1"`
	BaseY   float64 `envconfig:"SEPAL_GEN_BASE_Y" default:"1"`
	Seed    uint64  `envconfig:"SEPAL_GEN_SEED" default:"0"`
}
