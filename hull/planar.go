package hull

import (
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/spatial"
)

// planarVertices computes the convex polygon hull of a coplanar point set,
// returned as 3D points wound counterclockwise around the plane normal of
// the seed triangle (p1, p2, p3).
func (b *Builder) planarVertices(pts []r3.Vector, p1, p2, p3 int) []r3.Vector {
	tri := spatial.NewTriangle(pts[p1], pts[p2], pts[p3])
	normal := tri.Normal()

	// orthonormal in-plane basis
	u := pts[p2].Sub(pts[p1]).Normalize()
	v := normal.Cross(u)

	projected := make([]planarPoint, len(pts))
	for i, pt := range pts {
		rel := pt.Sub(pts[p1])
		projected[i] = planarPoint{
			coords: r2.Point{X: rel.Dot(u), Y: rel.Dot(v)},
			id:     i,
		}
	}

	hull := monotoneChain(projected)
	out := make([]r3.Vector, len(hull))
	for i, pp := range hull {
		out[i] = pts[pp.id]
	}
	return out
}

type planarPoint struct {
	coords r2.Point
	id     int
}

// monotoneChain computes the 2D convex hull in counterclockwise order,
// dropping collinear interior points. Requires at least three
// non-collinear points.
func monotoneChain(pts []planarPoint) []planarPoint {
	sorted := make([]planarPoint, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].coords, sorted[j].coords
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	var lower []planarPoint
	for _, pt := range sorted {
		for len(lower) >= 2 && crossZ(lower[len(lower)-2].coords, lower[len(lower)-1].coords, pt.coords) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}

	var upper []planarPoint
	for i := len(sorted) - 1; i >= 0; i-- {
		pt := sorted[i]
		for len(upper) >= 2 && crossZ(upper[len(upper)-2].coords, upper[len(upper)-1].coords, pt.coords) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}

	// each chain's final point starts the other chain
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// crossZ returns the z component of (b-a) x (c-a); positive when the turn
// a -> b -> c is counterclockwise.
func crossZ(a, b, c r2.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
