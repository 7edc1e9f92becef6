package spatial

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func unitBounds(t *testing.T) *Bounds3D {
	t.Helper()
	b, err := NewBounds3DFromPoints(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, err, test.ShouldBeNil)
	return b
}

func mustSegment(t *testing.T, start, end r3.Vector) *Segment {
	t.Helper()
	seg, err := NewSegment(start, end, prec(t, 1e-9))
	test.That(t, err, test.ShouldBeNil)
	return seg
}

func TestSegmentValidation(t *testing.T) {
	pt := r3.Vector{X: 1, Y: 1, Z: 1}
	_, err := NewSegment(pt, pt, prec(t, 1e-9))
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewSegment(pt, r3.Vector{X: 1 + 1e-12, Y: 1, Z: 1}, prec(t, 1e-9))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLinecastThroughBox(t *testing.T) {
	b := unitBounds(t)
	seg := mustSegment(t, r3.Vector{X: -1, Y: 0.5, Z: 0.5}, r3.Vector{X: 2, Y: 0.5, Z: 0.5})

	hits := b.Linecast(seg)
	test.That(t, len(hits), test.ShouldEqual, 2)

	test.That(t, hits[0].Point, test.ShouldResemble, r3.Vector{X: 0, Y: 0.5, Z: 0.5})
	test.That(t, hits[0].Normal, test.ShouldResemble, r3.Vector{X: -1})
	test.That(t, hits[1].Point, test.ShouldResemble, r3.Vector{X: 1, Y: 0.5, Z: 0.5})
	test.That(t, hits[1].Normal, test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, hits[0].Abscissa, test.ShouldBeLessThan, hits[1].Abscissa)

	first, ok := b.LinecastFirst(seg)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, first, test.ShouldResemble, hits[0])
}

func TestLinecastMiss(t *testing.T) {
	b := unitBounds(t)
	seg := mustSegment(t, r3.Vector{X: -1, Y: 2, Z: 0.5}, r3.Vector{X: 2, Y: 2, Z: 0.5})

	test.That(t, len(b.Linecast(seg)), test.ShouldEqual, 0)
	test.That(t, b.IntersectsSegment(seg), test.ShouldBeFalse)
	_, ok := b.LinecastFirst(seg)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = b.SegmentIntersection(seg)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestLinecastSegmentStopsShort(t *testing.T) {
	b := unitBounds(t)
	// the containing line crosses the box but the segment ends before it
	seg := mustSegment(t, r3.Vector{X: -3, Y: 0.5, Z: 0.5}, r3.Vector{X: -2, Y: 0.5, Z: 0.5})

	test.That(t, len(b.Linecast(seg)), test.ShouldEqual, 0)
	test.That(t, b.IntersectsSegment(seg), test.ShouldBeFalse)
}

func TestLinecastThroughVertex(t *testing.T) {
	b := unitBounds(t)
	// diagonal cast exactly through the origin corner
	seg := mustSegment(t, r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})

	hits := b.Linecast(seg)
	// entry corner and exit corner each touch three faces
	test.That(t, len(hits), test.ShouldEqual, 6)

	// equal-abscissa order is by axis, minus faces then plus faces
	test.That(t, hits[0].Normal, test.ShouldResemble, r3.Vector{X: -1})
	test.That(t, hits[1].Normal, test.ShouldResemble, r3.Vector{Y: -1})
	test.That(t, hits[2].Normal, test.ShouldResemble, r3.Vector{Z: -1})
	test.That(t, hits[3].Normal, test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, hits[4].Normal, test.ShouldResemble, r3.Vector{Y: 1})
	test.That(t, hits[5].Normal, test.ShouldResemble, r3.Vector{Z: 1})

	for _, hit := range hits[:3] {
		test.That(t, hit.Point.Norm(), test.ShouldAlmostEqual, 0, 1e-12)
		test.That(t, hit.Abscissa, test.ShouldAlmostEqual, hits[0].Abscissa)
	}
}

func TestLinecastAlongEdge(t *testing.T) {
	b := unitBounds(t)
	// cast along the box edge where the y=0 and z=0 faces meet
	seg := mustSegment(t, r3.Vector{X: -1, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 0, Z: 0})

	hits := b.Linecast(seg)
	// y and z slabs are parallel; only the x faces emit points
	test.That(t, len(hits), test.ShouldEqual, 2)
	test.That(t, hits[0].Normal, test.ShouldResemble, r3.Vector{X: -1})
	test.That(t, hits[1].Normal, test.ShouldResemble, r3.Vector{X: 1})
}

func TestLinecastParallelOutsideSlab(t *testing.T) {
	b := unitBounds(t)
	seg := mustSegment(t, r3.Vector{X: -1, Y: 0.5, Z: 2}, r3.Vector{X: 2, Y: 0.5, Z: 2})
	test.That(t, len(b.Linecast(seg)), test.ShouldEqual, 0)
}

func TestLinecastSymmetry(t *testing.T) {
	b := unitBounds(t)
	seg := mustSegment(t, r3.Vector{X: -0.5, Y: 0.2, Z: 0.7}, r3.Vector{X: 1.5, Y: 0.9, Z: 0.1})

	forward := b.Linecast(seg)
	backward := b.Linecast(seg.Reverse())
	test.That(t, len(forward), test.ShouldEqual, len(backward))

	// same (point, normal) pairs, traversed in the opposite order
	for i, hit := range forward {
		rev := backward[len(backward)-1-i]
		test.That(t, hit.Point.Sub(rev.Point).Norm(), test.ShouldAlmostEqual, 0, 1e-12)
		test.That(t, hit.Normal, test.ShouldResemble, rev.Normal)
	}
}

func TestSegmentIntersectionClipping(t *testing.T) {
	b := unitBounds(t)

	// segment fully crossing the box clips to the chord
	seg := mustSegment(t, r3.Vector{X: -1, Y: 0.5, Z: 0.5}, r3.Vector{X: 2, Y: 0.5, Z: 0.5})
	clipped, ok := b.SegmentIntersection(seg)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, clipped.Start(), test.ShouldResemble, r3.Vector{X: 0, Y: 0.5, Z: 0.5})
	test.That(t, clipped.End(), test.ShouldResemble, r3.Vector{X: 1, Y: 0.5, Z: 0.5})
	test.That(t, clipped.Length(), test.ShouldAlmostEqual, 1)

	// segment starting inside clips at its own start
	seg = mustSegment(t, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vector{X: 3, Y: 0.5, Z: 0.5})
	clipped, ok = b.SegmentIntersection(seg)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, clipped.Start(), test.ShouldResemble, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	test.That(t, clipped.End(), test.ShouldResemble, r3.Vector{X: 1, Y: 0.5, Z: 0.5})
}
