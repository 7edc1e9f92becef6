// Package hull constructs 3D convex hulls from point sets with a
// QuickHull-style incremental algorithm. Degenerate inputs (a single
// equivalence cluster, collinear points, coplanar points) produce a hull
// with a reduced vertex list and no region.
package hull

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/pointmap"
	"github.com/geomlabs/euclid/precision"
	"github.com/geomlabs/euclid/spatial"
)

// ConvexHull3D is the convex hull of a 3D point set. When the input spans a
// volume, Region returns the enclosed convex region and Vertices the hull
// corners; for degenerate inputs Region is nil and Vertices holds the
// reduced representative point set. Instances are immutable.
type ConvexHull3D struct {
	vertices []r3.Vector
	region   *spatial.ConvexVolume
}

// Vertices returns the hull vertices. The slice must not be modified.
func (h *ConvexHull3D) Vertices() []r3.Vector {
	return h.vertices
}

// Region returns the convex region bounded by the hull, or nil if the input
// did not span a 3D volume.
func (h *ConvexHull3D) Region() *spatial.ConvexVolume {
	return h.region
}

// HasSize reports whether the hull encloses a volume.
func (h *ConvexHull3D) HasSize() bool {
	return h.region != nil
}

// Bounds returns the axis-aligned bounds of the hull vertices.
func (h *ConvexHull3D) Bounds() (*spatial.Bounds3D, error) {
	return spatial.NewBounds3DFromPoints(h.vertices...)
}

// String returns a short human readable description of the hull.
func (h *ConvexHull3D) String() string {
	return fmt.Sprintf("ConvexHull3D[vertices=%d, hasSize=%t]", len(h.vertices), h.region != nil)
}

// Builder accumulates points and constructs their convex hull. Builders are
// single-use and not safe for concurrent mutation.
type Builder struct {
	prec   precision.Context
	points []r3.Vector
	logger golog.Logger
}

// NewBuilder returns a Builder using the given precision context for every
// floating point comparison made during construction. The chosen epsilon
// decides which near-degenerate inputs collapse to degenerate hulls; it is
// deliberately caller-controlled.
func NewBuilder(prec precision.Context) *Builder {
	return &Builder{prec: prec}
}

// SetLogger attaches a debug logger to the builder. Without one the build
// is silent.
func (b *Builder) SetLogger(logger golog.Logger) *Builder {
	b.logger = logger
	return b
}

// Add accumulates a single point.
func (b *Builder) Add(pt r3.Vector) *Builder {
	b.points = append(b.points, pt)
	return b
}

// AddPoints accumulates a collection of points.
func (b *Builder) AddPoints(pts ...r3.Vector) *Builder {
	b.points = append(b.points, pts...)
	return b
}

// AddBoundarySource accumulates every vertex of the source's boundary
// triangles.
func (b *Builder) AddBoundarySource(src spatial.BoundarySource) *Builder {
	for _, tri := range src.Boundaries() {
		b.AddPoints(tri.Points()...)
	}
	return b
}

// Build constructs the convex hull of the accumulated points. Errors if no
// points were added or any point is non-finite.
func (b *Builder) Build() (*ConvexHull3D, error) {
	if len(b.points) == 0 {
		return nil, newNoPointsError()
	}

	pts, err := b.canonicalize()
	if err != nil {
		return nil, err
	}
	b.debugf("hull input: %d points, %d canonical", len(b.points), len(pts))

	extremal := extremalPoints(pts)
	b.debugf("extremal candidates: %v", extremal)

	ids := make([]int, len(pts))
	for i := range pts {
		ids[i] = i
	}

	p1, p2, ok := b.maxSegment(pts, extremal)
	if !ok {
		// all points equivalent; a single representative remains
		return &ConvexHull3D{vertices: []r3.Vector{pts[extremal[0]]}}, nil
	}

	// the extremal set can miss the farthest point in skewed
	// configurations, so degenerate verdicts are confirmed with a full
	// scan before reducing the hull
	p3, ok := b.maxTriangle(pts, extremal, p1, p2)
	if !ok {
		p3, ok = b.maxTriangle(pts, ids, p1, p2)
	}
	if !ok {
		// collinear input reduces to the extremal segment endpoints
		return &ConvexHull3D{vertices: []r3.Vector{pts[p1], pts[p2]}}, nil
	}

	p4, above, ok := b.maxTetrahedron(pts, extremal, p1, p2, p3)
	if !ok {
		p4, above, ok = b.maxTetrahedron(pts, ids, p1, p2, p3)
	}
	if !ok {
		// coplanar input: return the planar polygon hull with no region
		return &ConvexHull3D{vertices: b.planarVertices(pts, p1, p2, p3)}, nil
	}
	if above {
		// flip the base so all tetrahedron normals point outward
		p2, p3 = p3, p2
	}
	b.debugf("seed tetrahedron: %v %v %v %v", pts[p1], pts[p2], pts[p3], pts[p4])

	q := newQuickhull(b.prec, pts)
	for _, verts := range [4][3]int{
		{p1, p2, p3},
		{p2, p1, p4},
		{p3, p2, p4},
		{p1, p3, p4},
	} {
		if _, err := q.addFacet(verts); err != nil {
			return nil, err
		}
	}

	q.assignOutside(ids, q.liveFacets())

	if err := q.run(); err != nil {
		return nil, err
	}
	b.debugf("hull converged: %d facets", q.live)

	return collectHull(q), nil
}

// canonicalize validates the input and deduplicates equivalent points,
// keeping the first-seen representative of each equivalence slot.
func (b *Builder) canonicalize() ([]r3.Vector, error) {
	seen := pointmap.NewSet3D(b.prec)
	pts := make([]r3.Vector, 0, len(b.points))
	for _, pt := range b.points {
		if math.IsNaN(pt.X) || math.IsInf(pt.X, 0) ||
			math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) ||
			math.IsNaN(pt.Z) || math.IsInf(pt.Z, 0) {
			return nil, newNonFinitePointError(pt)
		}
		if seen.Contains(pt) {
			continue
		}
		if err := seen.Add(pt); err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

// extremalPoints returns the deduplicated indices of the points achieving
// the min and max coordinate on each axis. The seed searches scan this set
// before falling back to the full input, keeping seeding near O(n).
func extremalPoints(pts []r3.Vector) []int {
	minIdx := [3]int{}
	maxIdx := [3]int{}
	for i, pt := range pts {
		for axis, c := range [3]float64{pt.X, pt.Y, pt.Z} {
			if c < coord(pts[minIdx[axis]], axis) {
				minIdx[axis] = i
			}
			if c > coord(pts[maxIdx[axis]], axis) {
				maxIdx[axis] = i
			}
		}
	}

	var out []int
	for _, idx := range []int{minIdx[0], maxIdx[0], minIdx[1], maxIdx[1], minIdx[2], maxIdx[2]} {
		dup := false
		for _, existing := range out {
			if existing == idx {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, idx)
		}
	}
	return out
}

// maxSegment finds the most distant pair among the extremal points. Returns
// ok false when every pairwise distance is equivalent to zero.
func (b *Builder) maxSegment(pts []r3.Vector, extremal []int) (int, int, bool) {
	best1, best2 := -1, -1
	maxDist := 0.0
	for i := 0; i < len(extremal)-1; i++ {
		for j := i + 1; j < len(extremal); j++ {
			dist := pts[extremal[i]].Sub(pts[extremal[j]]).Norm()
			if dist > maxDist {
				maxDist = dist
				best1, best2 = extremal[i], extremal[j]
			}
		}
	}
	if best1 < 0 || b.prec.EqZero(maxDist) {
		return 0, 0, false
	}
	return best1, best2, true
}

// maxTriangle finds the candidate point farthest from the segment line by
// perpendicular distance. Returns ok false when every candidate is
// collinear with the segment.
func (b *Builder) maxTriangle(pts []r3.Vector, candidates []int, p1, p2 int) (int, bool) {
	dir := pts[p2].Sub(pts[p1]).Normalize()
	best := -1
	maxDist := 0.0
	for _, idx := range candidates {
		if idx == p1 || idx == p2 {
			continue
		}
		dist := pts[idx].Sub(pts[p1]).Cross(dir).Norm()
		if dist > maxDist {
			maxDist = dist
			best = idx
		}
	}
	if best < 0 || b.prec.EqZero(maxDist) {
		return 0, false
	}
	return best, true
}

// maxTetrahedron finds the candidate point with the largest absolute signed
// distance from the seed triangle plane. The second result reports whether
// that point lies on the plane's positive side. Returns ok false when every
// candidate is coplanar with the triangle.
func (b *Builder) maxTetrahedron(pts []r3.Vector, candidates []int, p1, p2, p3 int) (int, bool, bool) {
	plane, err := spatial.NewTriangle(pts[p1], pts[p2], pts[p3]).Plane()
	if err != nil {
		return 0, false, false
	}

	best := -1
	maxOffset := 0.0
	maxAbs := 0.0
	for _, idx := range candidates {
		if idx == p1 || idx == p2 || idx == p3 {
			continue
		}
		offset := plane.Offset(pts[idx])
		if abs := math.Abs(offset); abs > maxAbs {
			maxAbs = abs
			maxOffset = offset
			best = idx
		}
	}
	if best < 0 || b.prec.EqZero(maxAbs) {
		return 0, false, false
	}
	return best, maxOffset > 0, true
}

// collectHull gathers the live facets into the final immutable hull value:
// one plane and boundary triangle per facet, and the referenced vertices in
// order of first use.
func collectHull(q *quickhull) *ConvexHull3D {
	handles := q.liveFacets()
	planes := make([]spatial.Plane, 0, len(handles))
	triangles := make([]*spatial.Triangle, 0, len(handles))
	var vertices []r3.Vector
	used := make(map[int]bool)

	for _, handle := range handles {
		f := &q.facets[handle]
		planes = append(planes, f.plane)
		triangles = append(triangles, f.tri)
		for _, id := range f.verts {
			if !used[id] {
				used[id] = true
				vertices = append(vertices, q.pts[id])
			}
		}
	}

	return &ConvexHull3D{
		vertices: vertices,
		region:   spatial.NewConvexVolume(planes, triangles),
	}
}

func (b *Builder) debugf(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Debugf(format, args...)
	}
}

func coord(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
