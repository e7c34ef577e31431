package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Polyline is a chain of 2-D points. Ring operations treat it as closed,
// the last vertex joining back to the first.
type Polyline []Point

// Area is the signed shoelace area of the closed ring, zero for fewer
// than three vertices. Callers comparing ring sizes take the magnitude.
func (l Polyline) Area() float64 {
	if len(l) < 3 {
		return 0
	}
	var s float64
	for i := range l {
		j := (i + 1) % len(l)
		s += l[i].Dim(0)*l[j].Dim(1) - l[j].Dim(0)*l[i].Dim(1)
	}
	return s / 2
}

// Canon rotates the ring so the lexicographically smallest vertex
// (x first, then y) comes first. Vertex order is preserved.
func (l Polyline) Canon() Polyline {
	if len(l) == 0 {
		return l
	}
	start := 0
	for i := 1; i < len(l); i++ {
		if lexLess(l[i], l[start]) {
			start = i
		}
	}
	out := make(Polyline, 0, len(l))
	out = append(out, l[start:]...)
	out = append(out, l[:start]...)
	return out
}

func lexLess(a, b Point) bool {
	if a.Dim(0) != b.Dim(0) {
		return a.Dim(0) < b.Dim(0)
	}
	return a.Dim(1) < b.Dim(1)
}

// DistanceMatrix fills the full |a| x |b| pairwise distance matrix.
func DistanceMatrix(a, b Polyline, distFn PointsDistanceFn) (*mat.Dense, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrNoPoints
	}
	m := mat.NewDense(len(a), len(b), nil)
	for i := range a {
		for j := range b {
			d, err := distFn(a[i], b[j])
			if err != nil {
				return nil, err
			}
			m.Set(i, j, d)
		}
	}
	return m, nil
}

// MinDistance is the smallest entry of the pairwise distance matrix
// between the vertex sets of a and b.
func MinDistance(a, b Polyline, distFn PointsDistanceFn) (float64, error) {
	m, err := DistanceMatrix(a, b, distFn)
	if err != nil {
		return 0, err
	}
	rows, cols := m.Dims()
	min := math.Inf(1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v < min {
				min = v
			}
		}
	}
	return min, nil
}
