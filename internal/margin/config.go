package margin

import "sepal/internal/geom"

type Config struct {
	Estimator    EstimatorType         `envconfig:"SEPAL_MARGIN_ESTIMATOR" default:"CONTOUR"`
	Hi           float64               `envconfig:"SEPAL_MARGIN_HI" default:"0.7"`
	Lo           float64               `envconfig:"SEPAL_MARGIN_LO" default:"0.3"`
	DistanceFunc geom.DistanceFuncType `envconfig:"SEPAL_MARGIN_DISTANCE_FUNC" default:"EUCLIDEAN"`
}
