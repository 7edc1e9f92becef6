package spatial

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/precision"
)

// LinecastPoint is a single intersection between a cast segment and a box
// face: the intersection point, the outward normal of the face that was hit,
// and the abscissa of the point along the cast segment.
type LinecastPoint struct {
	Point    r3.Vector
	Normal   r3.Vector
	Abscissa float64
}

// Linecast intersects the segment against the box faces using the slab
// method and returns one LinecastPoint per touched face, sorted by ascending
// abscissa. A cast through an edge or vertex returns multiple co-located
// points with distinct normals; among equal abscissae the order is by axis
// X, Y, Z with the minus face before the plus face.
func (b *Bounds3D) Linecast(seg *Segment) []LinecastPoint {
	c := newLinecaster(b, seg)
	if !c.computeNearFar() {
		return nil
	}

	results := make([]LinecastPoint, 0, 6)
	results = c.appendIntersections(results, c.near)
	if !c.prec.Eq(c.near, c.far) {
		results = c.appendIntersections(results, c.far)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Abscissa < results[j].Abscissa
	})
	return results
}

// LinecastFirst returns the boundary intersection with the smallest
// abscissa, if any.
func (b *Bounds3D) LinecastFirst(seg *Segment) (LinecastPoint, bool) {
	results := b.Linecast(seg)
	if len(results) == 0 {
		return LinecastPoint{}, false
	}
	return results[0], true
}

// IntersectsSegment reports whether the segment passes through the box,
// boundary touches included.
func (b *Bounds3D) IntersectsSegment(seg *Segment) bool {
	c := newLinecaster(b, seg)
	return c.computeNearFar() &&
		c.prec.Gte(seg.Length(), c.near) &&
		c.prec.Lte(0, c.far)
}

// SegmentIntersection returns the part of the segment inside the box. The
// result may be degenerate (a single touch point) and is reported with the
// second return value false when the segment misses the box entirely.
func (b *Bounds3D) SegmentIntersection(seg *Segment) (*Segment, bool) {
	c := newLinecaster(b, seg)
	if !c.computeNearFar() ||
		!c.prec.Gte(seg.Length(), c.near) ||
		!c.prec.Lte(0, c.far) {
		return nil, false
	}
	start := math.Max(c.near, 0)
	end := math.Min(c.far, seg.Length())
	// built directly since the clip may legitimately collapse to a point
	return &Segment{
		start:  seg.PointAt(start),
		end:    seg.PointAt(end),
		dir:    seg.Direction(),
		length: end - start,
		prec:   c.prec,
	}, true
}

// linecaster carries the state of one slab-method cast: the running
// [near, far] parametric window and a bitmask of axes the segment direction
// is parallel to.
type linecaster struct {
	bounds *Bounds3D
	seg    *Segment
	prec   precision.Context

	near         float64
	far          float64
	parallelAxes int
}

func newLinecaster(b *Bounds3D, seg *Segment) *linecaster {
	return &linecaster{
		bounds: b,
		seg:    seg,
		prec:   seg.Precision(),
		near:   math.Inf(-1),
		far:    math.Inf(1),
	}
}

// computeNearFar tightens the parametric window against each axis slab in
// turn, returning false as soon as the window becomes empty.
func (c *linecaster) computeNearFar() bool {
	for axis := 0; axis < 3; axis++ {
		if !c.tightenAxis(axis) {
			return false
		}
	}
	return true
}

func (c *linecaster) tightenAxis(axis int) bool {
	dir := axisCoord(c.seg.Direction(), axis)
	origin := axisCoord(c.seg.Start(), axis)
	min := axisCoord(c.bounds.min, axis)
	max := axisCoord(c.bounds.max, axis)

	if c.prec.EqZero(dir) {
		// parallel to this slab: the whole line is either inside it or misses
		c.parallelAxes |= 1 << axis
		return c.prec.Gte(origin, min) && c.prec.Lte(origin, max)
	}

	t1 := (min - origin) / dir
	t2 := (max - origin) / dir
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > c.near {
		c.near = t1
	}
	if t2 < c.far {
		c.far = t2
	}
	return !c.prec.Gt(c.near, c.far)
}

// appendIntersections emits one LinecastPoint per face plane touched at the
// given abscissa, provided the abscissa lies on the segment itself. Faces
// are visited X, Y, Z with the minus face before the plus face, which fixes
// the order of equal-abscissa results.
func (c *linecaster) appendIntersections(results []LinecastPoint, abscissa float64) []LinecastPoint {
	if !c.seg.ContainsAbscissa(abscissa) {
		return results
	}
	pt := c.seg.PointAt(abscissa)

	for axis := 0; axis < 3; axis++ {
		if c.parallelAxes&(1<<axis) != 0 {
			continue
		}
		coord := axisCoord(pt, axis)

		if c.prec.Eq(coord, axisCoord(c.bounds.min, axis)) {
			normal := r3.Vector{}
			setAxis(&normal, axis, -1)
			results = append(results, LinecastPoint{Point: pt, Normal: normal, Abscissa: abscissa})
		}
		if c.prec.Eq(coord, axisCoord(c.bounds.max, axis)) {
			normal := r3.Vector{}
			setAxis(&normal, axis, 1)
			results = append(results, LinecastPoint{Point: pt, Normal: normal, Abscissa: abscissa})
		}
	}
	return results
}

func axisCoord(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
