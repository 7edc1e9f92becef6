package spatial

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"github.com/geomlabs/euclid/precision"
)

// Box vertex i has the min coordinate on each axis whose bit in i is unset
// and the max coordinate where it is set (bit 0 = X, bit 1 = Y, bit 2 = Z).
var boxVertexMask = [8][3]bool{
	{false, false, false},
	{true, false, false},
	{false, true, false},
	{true, true, false},
	{false, false, true},
	{true, false, true},
	{false, true, true},
	{true, true, true},
}

// Outward-wound triangulation of the box exterior, two triangles per face.
var boxTriangleIndices = [12][3]int{
	{0, 6, 2}, {0, 4, 6},
	{1, 3, 7}, {1, 7, 5},
	{0, 1, 5}, {0, 5, 4},
	{2, 6, 7}, {2, 7, 3},
	{0, 2, 3}, {0, 3, 1},
	{4, 5, 7}, {4, 7, 6},
}

// Bounds3D is an immutable axis-aligned bounding box with componentwise
// min <= max. Zero-size boxes are permitted as degenerate values.
type Bounds3D struct {
	min r3.Vector
	max r3.Vector
}

// NewBounds3DFromPoints returns the tight axis-aligned bounds of the given
// points. Errors if no points are given or the resulting extrema are not
// finite.
func NewBounds3DFromPoints(pts ...r3.Vector) (*Bounds3D, error) {
	b := NewBounds3DBuilder()
	b.Add(pts...)
	return b.Build()
}

// Min returns the componentwise minimum corner.
func (b *Bounds3D) Min() r3.Vector {
	return b.min
}

// Max returns the componentwise maximum corner.
func (b *Bounds3D) Max() r3.Vector {
	return b.max
}

// Center returns the box center.
func (b *Bounds3D) Center() r3.Vector {
	return b.min.Add(b.max).Mul(0.5)
}

// Diagonal returns the vector from the min corner to the max corner.
func (b *Bounds3D) Diagonal() r3.Vector {
	return b.max.Sub(b.min)
}

// Contains reports strict containment of pt, boundary inclusive.
func (b *Bounds3D) Contains(pt r3.Vector) bool {
	return pt.X >= b.min.X && pt.X <= b.max.X &&
		pt.Y >= b.min.Y && pt.Y <= b.max.Y &&
		pt.Z >= b.min.Z && pt.Z <= b.max.Z
}

// ContainsEps reports containment of pt with the box faces widened by the
// precision epsilon.
func (b *Bounds3D) ContainsEps(pt r3.Vector, prec precision.Context) bool {
	return prec.Gte(pt.X, b.min.X) && prec.Lte(pt.X, b.max.X) &&
		prec.Gte(pt.Y, b.min.Y) && prec.Lte(pt.Y, b.max.Y) &&
		prec.Gte(pt.Z, b.min.Z) && prec.Lte(pt.Z, b.max.Z)
}

// ContainsBounds reports whether other lies entirely within b.
func (b *Bounds3D) ContainsBounds(other *Bounds3D) bool {
	return b.Contains(other.min) && b.Contains(other.max)
}

// Intersects reports whether the two boxes overlap, boundary touches
// included.
func (b *Bounds3D) Intersects(other *Bounds3D) bool {
	return b.min.X <= other.max.X && b.max.X >= other.min.X &&
		b.min.Y <= other.max.Y && b.max.Y >= other.min.Y &&
		b.min.Z <= other.max.Z && b.max.Z >= other.min.Z
}

// Intersection returns the overlapping region of the two boxes, or nil if
// they are disjoint. Boundary touches yield zero-size boxes.
func (b *Bounds3D) Intersection(other *Bounds3D) *Bounds3D {
	if !b.Intersects(other) {
		return nil
	}
	return &Bounds3D{
		min: r3.Vector{
			X: math.Max(b.min.X, other.min.X),
			Y: math.Max(b.min.Y, other.min.Y),
			Z: math.Max(b.min.Z, other.min.Z),
		},
		max: r3.Vector{
			X: math.Min(b.max.X, other.max.X),
			Y: math.Min(b.max.Y, other.max.Y),
			Z: math.Min(b.max.Z, other.max.Z),
		},
	}
}

// IsDegenerate reports whether the box has zero width on any axis under the
// given precision.
func (b *Bounds3D) IsDegenerate(prec precision.Context) bool {
	d := b.Diagonal()
	return prec.EqZero(d.X) || prec.EqZero(d.Y) || prec.EqZero(d.Z)
}

// Vertices returns the 8 box corners, indexed per boxVertexMask.
func (b *Bounds3D) Vertices() []r3.Vector {
	verts := make([]r3.Vector, 0, 8)
	for _, mask := range boxVertexMask {
		v := b.min
		if mask[0] {
			v.X = b.max.X
		}
		if mask[1] {
			v.Y = b.max.Y
		}
		if mask[2] {
			v.Z = b.max.Z
		}
		verts = append(verts, v)
	}
	return verts
}

// ToRegion returns the box as a convex volume bounded by its six face
// planes. Errors for degenerate boxes, which do not enclose a volume.
func (b *Bounds3D) ToRegion(prec precision.Context) (*ConvexVolume, error) {
	if b.IsDegenerate(prec) {
		return nil, newDegenerateBoundsError(b)
	}

	planes := make([]Plane, 0, 6)
	for axis := 0; axis < 3; axis++ {
		minus := r3.Vector{}
		setAxis(&minus, axis, -1)
		pMin, err := NewPlane(minus, b.min)
		if err != nil {
			return nil, err
		}
		plus := r3.Vector{}
		setAxis(&plus, axis, 1)
		pMax, err := NewPlane(plus, b.max)
		if err != nil {
			return nil, err
		}
		planes = append(planes, pMin, pMax)
	}

	verts := b.Vertices()
	triangles := make([]*Triangle, 0, 12)
	for _, tri := range boxTriangleIndices {
		triangles = append(triangles, NewTriangle(verts[tri[0]], verts[tri[1]], verts[tri[2]]))
	}
	return NewConvexVolume(planes, triangles), nil
}

// String returns a human readable representation of the bounds.
func (b *Bounds3D) String() string {
	return fmt.Sprintf("Bounds3D[min=(%v, %v, %v), max=(%v, %v, %v)]",
		b.min.X, b.min.Y, b.min.Z, b.max.X, b.max.Y, b.max.Z)
}

// Bounds3DBuilder accumulates points into axis-aligned extrema. The zero
// extrema converge toward infinities until the first point is folded in.
type Bounds3DBuilder struct {
	min r3.Vector
	max r3.Vector
}

// NewBounds3DBuilder returns an empty builder.
func NewBounds3DBuilder() *Bounds3DBuilder {
	inf := math.Inf(1)
	return &Bounds3DBuilder{
		min: r3.Vector{X: inf, Y: inf, Z: inf},
		max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// Add folds the given points into the extrema.
func (b *Bounds3DBuilder) Add(pts ...r3.Vector) *Bounds3DBuilder {
	for _, pt := range pts {
		b.min.X = math.Min(b.min.X, pt.X)
		b.min.Y = math.Min(b.min.Y, pt.Y)
		b.min.Z = math.Min(b.min.Z, pt.Z)
		b.max.X = math.Max(b.max.X, pt.X)
		b.max.Y = math.Max(b.max.Y, pt.Y)
		b.max.Z = math.Max(b.max.Z, pt.Z)
	}
	return b
}

// AddBounds folds another box's extrema into the builder.
func (b *Bounds3DBuilder) AddBounds(other *Bounds3D) *Bounds3DBuilder {
	return b.Add(other.min, other.max)
}

// AddBoundarySource folds in every vertex of the source's boundary
// triangles.
func (b *Bounds3DBuilder) AddBoundarySource(src BoundarySource) *Bounds3DBuilder {
	for _, tri := range src.Boundaries() {
		b.Add(tri.Points()...)
	}
	return b
}

// HasBounds reports whether all six extrema are finite, i.e. at least one
// finite point has been folded into every axis and no non-finite coordinate
// has poisoned an extremum.
func (b *Bounds3DBuilder) HasBounds() bool {
	for _, c := range []float64{b.min.X, b.min.Y, b.min.Z, b.max.X, b.max.Y, b.max.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Build returns the accumulated bounds. An untouched builder errors with a
// no-points error; non-finite extrema (NaN or infinite input points) yield
// one error per poisoned axis, combined.
func (b *Bounds3DBuilder) Build() (*Bounds3D, error) {
	if b.HasBounds() {
		return &Bounds3D{min: b.min, max: b.max}, nil
	}
	if math.IsInf(b.min.X, 1) && math.IsInf(b.max.X, -1) &&
		math.IsInf(b.min.Y, 1) && math.IsInf(b.max.Y, -1) &&
		math.IsInf(b.min.Z, 1) && math.IsInf(b.max.Z, -1) {
		return nil, newNoPointsError()
	}

	var err error
	for axis, ext := range [3][2]float64{
		{b.min.X, b.max.X},
		{b.min.Y, b.max.Y},
		{b.min.Z, b.max.Z},
	} {
		if math.IsNaN(ext[0]) || math.IsInf(ext[0], 0) || math.IsNaN(ext[1]) || math.IsInf(ext[1], 0) {
			err = multierr.Append(err, newNonFiniteBoundsError(axisName(axis), ext[0], ext[1]))
		}
	}
	return nil, err
}

func axisName(axis int) string {
	return [3]string{"x", "y", "z"}[axis]
}

func setAxis(v *r3.Vector, axis int, val float64) {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}
