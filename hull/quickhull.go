package hull

import (
	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/precision"
	"github.com/geomlabs/euclid/spatial"
)

// edge is a directed edge between two canonical vertex ids. Every live facet
// owns three directed edges; the facet sharing an edge in the reverse
// direction is its neighbor across that edge.
type edge struct {
	start int
	end   int
}

func (e edge) reverse() edge {
	return edge{start: e.end, end: e.start}
}

// facet is one triangular face of the evolving hull along with the input
// points still outside its supporting plane. Facets live in the quickhull
// arena and are addressed by their index (handle); removed facets stay in
// the arena with alive unset so handles remain stable.
type facet struct {
	verts [3]int
	tri   *spatial.Triangle
	plane spatial.Plane

	outside      []int
	farthest     int
	farthestDist float64

	alive bool
}

func (f *facet) requiresProcessing() bool {
	return f.alive && f.farthest >= 0
}

// addOutside records id as outside the facet if it lies strictly on the
// positive side of the facet plane, tracking the farthest such point.
func (f *facet) addOutside(id int, pt r3.Vector, prec precision.Context) bool {
	dist := f.plane.Offset(pt)
	if !prec.Gt(dist, 0) {
		return false
	}
	f.outside = append(f.outside, id)
	if dist > f.farthestDist {
		f.farthestDist = dist
		f.farthest = id
	}
	return true
}

// quickhull incrementally expands a tetrahedron into the convex hull of a
// canonical point set. It is single-writer state owned by Builder.Build.
type quickhull struct {
	prec precision.Context
	pts  []r3.Vector

	facets []facet
	live   int
	edges  map[edge]int
}

func newQuickhull(prec precision.Context, pts []r3.Vector) *quickhull {
	return &quickhull{
		prec:  prec,
		pts:   pts,
		edges: make(map[edge]int),
	}
}

// addFacet creates a live facet with the given outward winding and indexes
// its edges. Errors if the vertices are collinear or an edge is already
// owned by another live facet.
func (q *quickhull) addFacet(verts [3]int) (int, error) {
	tri := spatial.NewTriangle(q.pts[verts[0]], q.pts[verts[1]], q.pts[verts[2]])
	plane, err := tri.Plane()
	if err != nil {
		return 0, newDegenerateFacetError(verts)
	}

	handle := len(q.facets)
	q.facets = append(q.facets, facet{
		verts:    verts,
		tri:      tri,
		plane:    plane,
		farthest: -1,
		alive:    true,
	})

	for _, e := range facetEdges(verts) {
		if _, taken := q.edges[e]; taken {
			return 0, newDuplicateEdgeError(e.start, e.end)
		}
		q.edges[e] = handle
	}
	q.live++
	return handle, nil
}

// removeFacet kills a facet and drops its edge index entries.
func (q *quickhull) removeFacet(handle int) {
	f := &q.facets[handle]
	if !f.alive {
		return
	}
	f.alive = false
	q.live--
	for _, e := range facetEdges(f.verts) {
		if q.edges[e] == handle {
			delete(q.edges, e)
		}
	}
}

// assignOutside distributes each point id to the first facet handle whose
// plane it lies strictly outside of. Points behind every facet are dropped:
// they are interior to the current hull.
func (q *quickhull) assignOutside(ids, handles []int) {
	for _, id := range ids {
		pt := q.pts[id]
		for _, handle := range handles {
			f := &q.facets[handle]
			if f.alive && f.addOutside(id, pt, q.prec) {
				break
			}
		}
	}
}

// nextFacet returns a handle of some live facet that still has outside
// points, or -1 when the hull has converged.
func (q *quickhull) nextFacet() int {
	for handle := range q.facets {
		if q.facets[handle].requiresProcessing() {
			return handle
		}
	}
	return -1
}

// run processes facets until none has outside points left.
func (q *quickhull) run() error {
	for {
		handle := q.nextFacet()
		if handle < 0 {
			return nil
		}
		if err := q.expand(handle); err != nil {
			return err
		}
	}
}

// expand adds the facet's farthest outside point to the hull: it computes
// the horizon of facets visible from that point, removes them, and stitches
// one new facet per horizon edge.
func (q *quickhull) expand(handle int) error {
	vertexID := q.facets[handle].farthest
	vertex := q.pts[vertexID]

	visible, horizon, err := q.computeHorizon(handle, vertex)
	if err != nil {
		return err
	}

	// points outside any removed facet must be re-tested against the new
	// facets; the new vertex itself is consumed
	var orphans []int
	for _, h := range visible {
		for _, id := range q.facets[h].outside {
			if id != vertexID {
				orphans = append(orphans, id)
			}
		}
		q.removeFacet(h)
	}

	created := make([]int, 0, len(horizon))
	for _, e := range horizon {
		nh, err := q.addFacet([3]int{e.start, e.end, vertexID})
		if err != nil {
			return err
		}
		created = append(created, nh)
	}

	// every new facet must now have a neighbor across each edge
	for _, nh := range created {
		for _, e := range facetEdges(q.facets[nh].verts) {
			if _, ok := q.edges[e.reverse()]; !ok {
				return newMissingNeighborError(e.start, e.end)
			}
		}
	}

	q.assignOutside(orphans, created)
	return nil
}

// computeHorizon walks outward from the seed facet with an explicit
// worklist, classifying neighbors against the new vertex. It returns the
// handles of all visible facets and the directed boundary edges separating
// them from hidden facets, oriented as they appear in the visible facets.
func (q *quickhull) computeHorizon(seed int, vertex r3.Vector) ([]int, []edge, error) {
	visible := []int{seed}
	visited := map[int]bool{seed: true}
	var horizon []edge

	stack := append([]edge(nil), facetEdges(q.facets[seed].verts)...)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		neighbor, ok := q.edges[e.reverse()]
		if !ok {
			return nil, nil, newMissingNeighborError(e.start, e.end)
		}
		if visited[neighbor] {
			continue
		}
		if q.prec.Gt(q.facets[neighbor].plane.Offset(vertex), 0) {
			// neighbor is visible from the new vertex and will be removed
			visited[neighbor] = true
			visible = append(visible, neighbor)
			stack = append(stack, facetEdges(q.facets[neighbor].verts)...)
		} else {
			// the crossing edge is part of the horizon boundary
			horizon = append(horizon, e)
		}
	}
	return visible, horizon, nil
}

// liveFacets returns the handles of all live facets in arena order.
func (q *quickhull) liveFacets() []int {
	handles := make([]int, 0, q.live)
	for handle := range q.facets {
		if q.facets[handle].alive {
			handles = append(handles, handle)
		}
	}
	return handles
}

func facetEdges(verts [3]int) []edge {
	return []edge{
		{start: verts[0], end: verts[1]},
		{start: verts[1], end: verts[2]},
		{start: verts[2], end: verts[0]},
	}
}
