package pointmap

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/precision"
)

// maxDims is the largest key dimension supported by the container.
const maxDims = 3

// space describes how keys of a particular dimension are ordered, measured
// and validated. The ordering is lexicographic per coordinate using the
// precision context, so the primary sort axis is always coordinate 0.
type space[P any] struct {
	dims    int
	compare func(prec precision.Context, a, b P) int
	dist    func(a, b P) float64
	// coords writes the key's coordinates into buf and is used for
	// finiteness checks and bounding-interval folding.
	coords func(p P, buf *[maxDims]float64)
}

func (s *space[P]) isFinite(p P) bool {
	var buf [maxDims]float64
	s.coords(p, &buf)
	for i := 0; i < s.dims; i++ {
		if math.IsNaN(buf[i]) || math.IsInf(buf[i], 0) {
			return false
		}
	}
	return true
}

// axisDist returns the absolute distance between two keys along the primary
// sort axis. This is a lower bound on the Euclidean distance.
func (s *space[P]) axisDist(a, b P) float64 {
	var bufA, bufB [maxDims]float64
	s.coords(a, &bufA)
	s.coords(b, &bufB)
	return math.Abs(bufA[0] - bufB[0])
}

func space1D() *space[float64] {
	return &space[float64]{
		dims: 1,
		compare: func(prec precision.Context, a, b float64) int {
			return prec.Compare(a, b)
		},
		dist: func(a, b float64) float64 { return math.Abs(a - b) },
		coords: func(p float64, buf *[maxDims]float64) {
			buf[0] = p
		},
	}
}

func space2D() *space[r2.Point] {
	return &space[r2.Point]{
		dims: 2,
		compare: func(prec precision.Context, a, b r2.Point) int {
			if cmp := prec.Compare(a.X, b.X); cmp != 0 {
				return cmp
			}
			return prec.Compare(a.Y, b.Y)
		},
		dist: func(a, b r2.Point) float64 { return a.Sub(b).Norm() },
		coords: func(p r2.Point, buf *[maxDims]float64) {
			buf[0], buf[1] = p.X, p.Y
		},
	}
}

func space3D() *space[r3.Vector] {
	return &space[r3.Vector]{
		dims: 3,
		compare: func(prec precision.Context, a, b r3.Vector) int {
			if cmp := prec.Compare(a.X, b.X); cmp != 0 {
				return cmp
			}
			if cmp := prec.Compare(a.Y, b.Y); cmp != 0 {
				return cmp
			}
			return prec.Compare(a.Z, b.Z)
		},
		dist: func(a, b r3.Vector) float64 { return a.Sub(b).Norm() },
		coords: func(p r3.Vector, buf *[maxDims]float64) {
			buf[0], buf[1], buf[2] = p.X, p.Y, p.Z
		},
	}
}
