// Package spatial provides the Euclidean 3D geometry value types shared by
// the rest of the module: planes, triangles, meshes, convex volumes, and
// axis-aligned bounds with slab-method linecasting. All comparisons against
// geometric boundaries go through a precision.Context.
package spatial

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/precision"
)

// Side identifies where a point lies relative to a plane.
type Side int

const (
	// SideMinus is the half-space opposite the plane normal.
	SideMinus Side = iota - 1
	// SideOn is on the plane to within precision.
	SideOn
	// SidePlus is the half-space the plane normal points into.
	SidePlus
)

// Plane is an oriented plane in Hessian normal form: the set of points x
// with Dot(normal, x) == dist, where normal has unit length.
type Plane struct {
	normal r3.Vector
	dist   float64
}

// NewPlane returns the plane through point with the given (not necessarily
// unit) normal. Errors if the normal has zero length or any input is
// non-finite.
func NewPlane(normal, point r3.Vector) (Plane, error) {
	if !vectorIsFinite(normal) {
		return Plane{}, newNonFiniteVectorError(normal)
	}
	if !vectorIsFinite(point) {
		return Plane{}, newNonFiniteVectorError(point)
	}
	norm := normal.Norm()
	if norm == 0 {
		return Plane{}, newZeroNormalError()
	}
	unit := normal.Mul(1 / norm)
	return Plane{normal: unit, dist: unit.Dot(point)}, nil
}

// PlaneFromTriangle returns the supporting plane of the triangle, oriented
// by its winding. Errors if the triangle is degenerate.
func PlaneFromTriangle(tri *Triangle) (Plane, error) {
	return tri.Plane()
}

// Normal returns the plane's unit normal.
func (p Plane) Normal() r3.Vector {
	return p.normal
}

// Offset returns the signed distance from pt to the plane; positive values
// lie on the normal side.
func (p Plane) Offset(pt r3.Vector) float64 {
	return p.normal.Dot(pt) - p.dist
}

// Classify locates pt relative to the plane under the given precision.
func (p Plane) Classify(pt r3.Vector, prec precision.Context) Side {
	return Side(prec.Sign(p.Offset(pt)))
}

// Contains reports whether pt lies on the plane under the given precision.
func (p Plane) Contains(pt r3.Vector, prec precision.Context) bool {
	return prec.EqZero(p.Offset(pt))
}

// Reverse returns the same plane with the opposite orientation.
func (p Plane) Reverse() Plane {
	return Plane{normal: p.normal.Mul(-1), dist: -p.dist}
}

// Project returns the orthogonal projection of pt onto the plane.
func (p Plane) Project(pt r3.Vector) r3.Vector {
	return pt.Sub(p.normal.Mul(p.Offset(pt)))
}

func vectorIsFinite(v r3.Vector) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
