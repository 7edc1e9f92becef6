package hull

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

func newNoPointsError() error {
	return errors.New("cannot construct convex hull: no points provided")
}

func newNonFinitePointError(pt r3.Vector) error {
	return errors.Errorf("cannot construct convex hull: point coordinates must be finite, got (%v, %v, %v)",
		pt.X, pt.Y, pt.Z)
}

func newMissingNeighborError(start, end int) error {
	return errors.Errorf("hull surface invariant violated: no facet shares edge (%d, %d)", end, start)
}

func newDuplicateEdgeError(start, end int) error {
	return errors.Errorf("hull surface invariant violated: edge (%d, %d) already mapped to a facet", start, end)
}

func newDegenerateFacetError(verts [3]int) error {
	return errors.Errorf("hull surface invariant violated: facet vertices %v are collinear", verts)
}
