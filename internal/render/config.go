package render

type Config struct {
	Dir string `envconfig:"SEPAL_RENDER_DIR" default:"results"`
	DPI int    `envconfig:"SEPAL_RENDER_DPI" default:"96"`
}
