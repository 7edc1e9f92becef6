package spatial

// BoundarySource is a supplier of oriented boundary triangles. Hull and
// bounds builders pull vertices from a BoundarySource without needing to
// know how the boundary was produced.
type BoundarySource interface {
	Boundaries() []*Triangle
}

// Mesh is an immutable collection of triangles representing a surface.
type Mesh struct {
	triangles []*Triangle
}

// NewMesh creates a mesh from the given triangles.
func NewMesh(triangles []*Triangle) *Mesh {
	return &Mesh{triangles: triangles}
}

// Boundaries returns the mesh triangles.
func (m *Mesh) Boundaries() []*Triangle {
	return m.triangles
}
