package spatial

import (
	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/precision"
)

// Segment is an immutable, finite, directed line segment. Points along the
// containing line are addressed by their abscissa: the signed distance from
// the segment start along the unit direction, so the segment itself covers
// abscissae in [0, Length].
type Segment struct {
	start  r3.Vector
	end    r3.Vector
	dir    r3.Vector
	length float64
	prec   precision.Context
}

// NewSegment creates a segment between two points. Errors if either point is
// non-finite or the points are equivalent under the precision, in which case
// no direction exists.
func NewSegment(start, end r3.Vector, prec precision.Context) (*Segment, error) {
	if !vectorIsFinite(start) {
		return nil, newNonFiniteVectorError(start)
	}
	if !vectorIsFinite(end) {
		return nil, newNonFiniteVectorError(end)
	}
	delta := end.Sub(start)
	length := delta.Norm()
	if prec.EqZero(length) {
		return nil, newCoincidentSegmentPointsError(start, end)
	}
	return &Segment{
		start:  start,
		end:    end,
		dir:    delta.Mul(1 / length),
		length: length,
		prec:   prec,
	}, nil
}

// Start returns the segment start point.
func (s *Segment) Start() r3.Vector {
	return s.start
}

// End returns the segment end point.
func (s *Segment) End() r3.Vector {
	return s.end
}

// Direction returns the unit direction from start to end.
func (s *Segment) Direction() r3.Vector {
	return s.dir
}

// Length returns the segment length.
func (s *Segment) Length() float64 {
	return s.length
}

// Precision returns the precision context the segment was built with.
func (s *Segment) Precision() precision.Context {
	return s.prec
}

// PointAt returns the point at the given abscissa on the segment's line.
func (s *Segment) PointAt(abscissa float64) r3.Vector {
	return s.start.Add(s.dir.Mul(abscissa))
}

// ContainsAbscissa reports whether the abscissa lies within the segment's
// own parametric range, boundary compared with the segment precision.
func (s *Segment) ContainsAbscissa(abscissa float64) bool {
	return s.prec.Gte(abscissa, 0) && s.prec.Lte(abscissa, s.length)
}

// Reverse returns the segment traversed in the opposite direction.
func (s *Segment) Reverse() *Segment {
	return &Segment{
		start:  s.end,
		end:    s.start,
		dir:    s.dir.Mul(-1),
		length: s.length,
		prec:   s.prec,
	}
}
