package spatial

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

func newNonFiniteVectorError(v r3.Vector) error {
	return errors.Errorf("vector coordinates must be finite, got (%v, %v, %v)", v.X, v.Y, v.Z)
}

func newZeroNormalError() error {
	return errors.New("plane normal must have non-zero length")
}

func newDegenerateTriangleError(p0, p1, p2 r3.Vector) error {
	return errors.Errorf("triangle vertices do not define a plane: %v, %v, %v", p0, p1, p2)
}

func newNoPointsError() error {
	return errors.New("cannot construct bounds: no points given")
}

func newNonFiniteBoundsError(axis string, min, max float64) error {
	return errors.Errorf("cannot construct bounds: %s extrema are not finite [%v, %v]", axis, min, max)
}

func newDegenerateBoundsError(b *Bounds3D) error {
	return errors.Errorf("bounds must have non-zero size on every axis: min %v, max %v", b.min, b.max)
}

func newCoincidentSegmentPointsError(start, end r3.Vector) error {
	return errors.Errorf("segment endpoints are equivalent: %v, %v", start, end)
}
