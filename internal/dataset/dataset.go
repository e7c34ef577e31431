// Package dataset samples two correlated Gaussian clusters on the plane,
// class 0 around a base center and class 1 shifted along the diagonal.
package dataset

import (
	"sepal/internal/geom"
)

// Dataset holds labelled sample points. Points and Labels are aligned by
// index; class-0 rows come first.
type Dataset struct {
	Points []geom.Point
	Labels []int
}

func (d *Dataset) Len() int {
	return len(d.Points)
}

// Class returns copies of the points carrying the given label, in
// sample order, so callers cannot alias the dataset rows.
func (d *Dataset) Class(label int) []geom.Point {
	var pts []geom.Point
	for i, p := range d.Points {
		if d.Labels[i] == label {
			pts = append(pts, p.Copy())
		}
	}
	return pts
}

// Bounds is the tight bounding window of all sample points.
func (d *Dataset) Bounds() (geom.Rect, error) {
	return geom.BoundingBox(d.Points)
}
