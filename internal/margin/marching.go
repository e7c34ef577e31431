package margin

import "sepal/internal/geom"

// borderValue rings the lattice with a value below any probability, so
// every level set closes into rings inside the padded field.
const borderValue = -1.0

// scalarField is the node lattice marching squares runs on: sampled
// values wrapped in a one-node sentinel ring. Class-0 regions use the
// inverted field 1-p, so a single extraction routine serves both
// classes.
type scalarField struct {
	xs, ys []float64
	vals   []float64
}

func newScalarField(xs, ys []float64, at func(ix, iy int) float64, invert bool) *scalarField {
	nx, ny := len(xs)+2, len(ys)+2

	f := &scalarField{
		xs:   make([]float64, nx),
		ys:   make([]float64, ny),
		vals: make([]float64, nx*ny),
	}

	copy(f.xs[1:], xs)
	f.xs[0] = 2*xs[0] - xs[1]
	f.xs[nx-1] = 2*xs[len(xs)-1] - xs[len(xs)-2]

	copy(f.ys[1:], ys)
	f.ys[0] = 2*ys[0] - ys[1]
	f.ys[ny-1] = 2*ys[len(ys)-1] - ys[len(ys)-2]

	for i := range f.vals {
		f.vals[i] = borderValue
	}

	for iy := 0; iy < len(ys); iy++ {
		for ix := 0; ix < len(xs); ix++ {
			v := at(ix, iy)
			if invert {
				v = 1 - v
			}

			f.vals[(iy+1)*nx+(ix+1)] = v
		}
	}

	return f
}

func (f *scalarField) nx() int {
	return len(f.xs)
}

func (f *scalarField) ny() int {
	return len(f.ys)
}

func (f *scalarField) at(ix, iy int) float64 {
	return f.vals[iy*f.nx()+ix]
}

func (f *scalarField) cellMean(ix, iy int) float64 {
	return (f.at(ix, iy) + f.at(ix+1, iy) + f.at(ix, iy+1) + f.at(ix+1, iy+1)) / 4
}

// fieldEdge identifies a lattice edge by its lower-index node. Vertical
// edges run from (ix,iy) to (ix,iy+1), horizontal ones to (ix+1,iy).
// Keying crossings by edge identity makes shared ring vertices
// bit-identical across neighbouring cells.
type fieldEdge struct {
	ix, iy   int
	vertical bool
}

// crossing interpolates the point where the level cuts the edge,
// always walking from the lower-index node to the higher one.
func (f *scalarField) crossing(e fieldEdge, level float64) geom.Point {
	v0 := f.at(e.ix, e.iy)

	if e.vertical {
		t := crossingFraction(v0, f.at(e.ix, e.iy+1), level)
		return geom.New(f.xs[e.ix], f.ys[e.iy]+t*(f.ys[e.iy+1]-f.ys[e.iy]))
	}

	t := crossingFraction(v0, f.at(e.ix+1, e.iy), level)
	return geom.New(f.xs[e.ix]+t*(f.xs[e.ix+1]-f.xs[e.ix]), f.ys[e.iy])
}

func crossingFraction(v0, v1, level float64) float64 {
	if v1 == v0 {
		return 0.5
	}

	t := (level - v0) / (v1 - v0)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}

	return t
}

type fieldSegment struct {
	a, b fieldEdge
}

// rings walks marching squares over the field and stitches the level
// set {v >= level} into closed rings. Every crossed edge belongs to
// exactly two cell segments, so chaining the segment adjacency always
// comes back to its start.
func (f *scalarField) rings(level float64) []geom.Polyline {
	segs := f.segments(level)

	adjacent := make(map[fieldEdge][]fieldEdge, 2*len(segs))
	for _, s := range segs {
		adjacent[s.a] = append(adjacent[s.a], s.b)
		adjacent[s.b] = append(adjacent[s.b], s.a)
	}

	visited := make(map[fieldEdge]bool, len(adjacent))

	var rings []geom.Polyline
	for _, s := range segs {
		if visited[s.a] {
			continue
		}

		var ring geom.Polyline
		for cur, ok := s.a, true; ok; {
			visited[cur] = true
			ring = append(ring, f.crossing(cur, level))
			cur, ok = nextEdge(adjacent[cur], visited)
		}

		if len(ring) > 2 {
			rings = append(rings, ring)
		}
	}

	return rings
}

// segments emits the cut segments cell by cell. Corner bits follow the
// usual convention: 1 bottom-left, 2 bottom-right, 4 top-right,
// 8 top-left. The two saddle cases disambiguate on the cell average.
func (f *scalarField) segments(level float64) []fieldSegment {
	var segs []fieldSegment

	for iy := 0; iy < f.ny()-1; iy++ {
		for ix := 0; ix < f.nx()-1; ix++ {
			var mask int
			if f.at(ix, iy) >= level {
				mask |= 1
			}
			if f.at(ix+1, iy) >= level {
				mask |= 2
			}
			if f.at(ix+1, iy+1) >= level {
				mask |= 4
			}
			if f.at(ix, iy+1) >= level {
				mask |= 8
			}

			bottom := fieldEdge{ix: ix, iy: iy}
			top := fieldEdge{ix: ix, iy: iy + 1}
			left := fieldEdge{ix: ix, iy: iy, vertical: true}
			right := fieldEdge{ix: ix + 1, iy: iy, vertical: true}

			switch mask {
			case 0, 15:
			case 1, 14:
				segs = append(segs, fieldSegment{a: left, b: bottom})
			case 2, 13:
				segs = append(segs, fieldSegment{a: bottom, b: right})
			case 3, 12:
				segs = append(segs, fieldSegment{a: left, b: right})
			case 4, 11:
				segs = append(segs, fieldSegment{a: right, b: top})
			case 6, 9:
				segs = append(segs, fieldSegment{a: bottom, b: top})
			case 7, 8:
				segs = append(segs, fieldSegment{a: left, b: top})
			case 5:
				if f.cellMean(ix, iy) >= level {
					segs = append(segs, fieldSegment{a: bottom, b: right}, fieldSegment{a: left, b: top})
				} else {
					segs = append(segs, fieldSegment{a: left, b: bottom}, fieldSegment{a: right, b: top})
				}
			case 10:
				if f.cellMean(ix, iy) >= level {
					segs = append(segs, fieldSegment{a: left, b: bottom}, fieldSegment{a: right, b: top})
				} else {
					segs = append(segs, fieldSegment{a: bottom, b: right}, fieldSegment{a: left, b: top})
				}
			}
		}
	}

	return segs
}

func nextEdge(neighbours []fieldEdge, visited map[fieldEdge]bool) (fieldEdge, bool) {
	for _, n := range neighbours {
		if !visited[n] {
			return n, true
		}
	}

	return fieldEdge{}, false
}
