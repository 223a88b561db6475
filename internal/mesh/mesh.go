package mesh

import (
	"github.com/unixpickle/model3d/model3d"
)

// Vertex is a point in mesh space.
type Vertex = model3d.Coord3D

// Face is a triangle given as three vertex indices. The winding order is
// significant: seen from outside the solid the vertices run counter-clockwise.
type Face [3]int

// Mesh is an indexed triangle mesh. It owns its vertices; faces refer to
// them by index.
type Mesh struct {
	vertices []Vertex
	faces    []Face
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(x, y, z float64) int {
	m.vertices = append(m.vertices, Vertex{X: x, Y: y, Z: z})
	return len(m.vertices) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(v1, v2, v3 int) {
	m.faces = append(m.faces, Face{v1, v2, v3})
}

// Vertices returns the vertex slice. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Faces returns the face slice. Callers must not modify it.
func (m *Mesh) Faces() []Face { return m.faces }

// Empty reports whether the mesh has no faces.
func (m *Mesh) Empty() bool { return len(m.faces) == 0 }

// Clear drops all vertices and faces.
func (m *Mesh) Clear() {
	m.vertices = m.vertices[:0]
	m.faces = m.faces[:0]
}

// Triangle returns the corner coordinates of f in winding order.
func (m *Mesh) Triangle(f Face) (Vertex, Vertex, Vertex) {
	return m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]]
}

// Normal returns the unit normal of f, the normalized cross product of
// (v2-v1) and (v3-v1). Degenerate triangles yield the zero vector.
func (m *Mesh) Normal(f Face) Vertex {
	a, b, c := m.Triangle(f)
	n := b.Sub(a).Cross(c.Sub(a))
	length := n.Norm()
	if length == 0 {
		return Vertex{}
	}
	return n.Scale(1 / length)
}

// Model3D converts m to a model3d mesh, for use with that package's
// analysis and repair routines.
func (m *Mesh) Model3D() *model3d.Mesh {
	out := model3d.NewMesh()
	for _, f := range m.faces {
		a, b, c := m.Triangle(f)
		out.Add(&model3d.Triangle{a, b, c})
	}
	return out
}
