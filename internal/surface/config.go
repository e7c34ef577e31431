package surface

type Config struct {
	Resolution int     `envconfig:"SEPAL_SURFACE_RESOLUTION" default:"200"`
	Padding    float64 `envconfig:"SEPAL_SURFACE_PADDING" default:"1"`
}
