package spatial

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/geomlabs/euclid/precision"
)

// ConvexVolume is a bounded convex region described by the intersection of
// half-spaces, together with an outward-wound triangulation of its boundary.
// Instances are immutable once constructed.
type ConvexVolume struct {
	planes     []Plane
	boundaries []*Triangle
}

// NewConvexVolume creates a convex volume from its bounding planes and a
// consistent outward-oriented boundary triangulation. The caller is
// responsible for the two agreeing; hull and bounds construction in this
// module always produce matching pairs.
func NewConvexVolume(planes []Plane, boundaries []*Triangle) *ConvexVolume {
	return &ConvexVolume{planes: planes, boundaries: boundaries}
}

// Planes returns the bounding planes, outward normals.
func (cv *ConvexVolume) Planes() []Plane {
	return cv.planes
}

// Boundaries returns the boundary triangulation.
func (cv *ConvexVolume) Boundaries() []*Triangle {
	return cv.boundaries
}

// Contains reports whether pt lies inside or on the volume under the given
// precision, i.e. on or behind every bounding plane.
func (cv *ConvexVolume) Contains(pt r3.Vector, prec precision.Context) bool {
	for _, p := range cv.planes {
		if prec.Gt(p.Offset(pt), 0) {
			return false
		}
	}
	return true
}

// Size returns the enclosed volume, computed with the divergence theorem
// over the boundary triangles.
func (cv *ConvexVolume) Size() float64 {
	var size float64
	for _, tri := range cv.boundaries {
		pts := tri.Points()
		m := mat.NewDense(3, 3, []float64{
			pts[0].X, pts[0].Y, pts[0].Z,
			pts[1].X, pts[1].Y, pts[1].Z,
			pts[2].X, pts[2].Y, pts[2].Z,
		})
		size += mat.Det(m)
	}
	return size / 6
}
