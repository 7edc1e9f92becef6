package spatial

import (
	"github.com/golang/geo/r3"
)

// Triangle is an oriented triangle. The normal follows the right-hand rule
// over the vertex winding p0, p1, p2 and is the zero vector for degenerate
// (collinear-vertex) triangles.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle creates a Triangle from three vertices.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// PlaneNormal returns the unit normal of the plane through the three given
// points, or the zero vector if the points are collinear.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	cross := p1.Sub(p0).Cross(p2.Sub(p0))
	norm := cross.Norm()
	if norm == 0 {
		return r3.Vector{}
	}
	return cross.Mul(1 / norm)
}

// Points returns the vertices in winding order.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the triangle's unit normal, zero if degenerate.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Plane returns the triangle's supporting plane. Errors for degenerate
// triangles, which have no unique plane.
func (t *Triangle) Plane() (Plane, error) {
	if t.normal == (r3.Vector{}) {
		return Plane{}, newDegenerateTriangleError(t.p0, t.p1, t.p2)
	}
	return Plane{normal: t.normal, dist: t.normal.Dot(t.p0)}, nil
}

// Reverse returns the triangle with opposite winding and flipped normal.
func (t *Triangle) Reverse() *Triangle {
	return &Triangle{
		p0:     t.p0,
		p1:     t.p2,
		p2:     t.p1,
		normal: t.normal.Mul(-1),
	}
}

// Centroid returns the arithmetic mean of the vertices.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1.0 / 3.0)
}

// Area returns the triangle's area.
func (t *Triangle) Area() float64 {
	return t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm() / 2
}
