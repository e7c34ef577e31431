package geom

import "fmt"

var ErrNoPoints = fmt.Errorf("no points given")

// Rect is an axis-aligned window on the plane.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// BoundingBox returns the tightest Rect covering the points. The points
// must carry at least two dimensions; extra dimensions are ignored.
func BoundingBox(pts []Point) (Rect, error) {
	if len(pts) == 0 {
		return Rect{}, ErrNoPoints
	}
	if pts[0].Dimensions() < 2 {
		return Rect{}, ErrDimNotEqual
	}
	r := Rect{
		XMin: pts[0].Dim(0), XMax: pts[0].Dim(0),
		YMin: pts[0].Dim(1), YMax: pts[0].Dim(1),
	}
	for _, p := range pts[1:] {
		if p.Dimensions() < 2 {
			return Rect{}, ErrDimNotEqual
		}
		if p.Dim(0) < r.XMin {
			r.XMin = p.Dim(0)
		}
		if p.Dim(0) > r.XMax {
			r.XMax = p.Dim(0)
		}
		if p.Dim(1) < r.YMin {
			r.YMin = p.Dim(1)
		}
		if p.Dim(1) > r.YMax {
			r.YMax = p.Dim(1)
		}
	}
	return r, nil
}

// Pad grows the window by m on every side.
func (r Rect) Pad(m float64) Rect {
	return Rect{
		XMin: r.XMin - m, XMax: r.XMax + m,
		YMin: r.YMin - m, YMax: r.YMax + m,
	}
}

func (r Rect) Width() float64 {
	return r.XMax - r.XMin
}

func (r Rect) Height() float64 {
	return r.YMax - r.YMin
}
