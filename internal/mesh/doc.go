// Package mesh builds closed triangle meshes from binary occupancy grids and
// writes them as ASCII STL.
//
// Build runs marching squares over a Grid on a 2× supersampled lattice,
// emitting a top cap, a bottom cap and vertical walls along the contour.
// A VertexCache keyed by lattice point and layer keeps shared vertices
// unique, so the output is watertight and consistently wound.
//
// Example:
//
//	m := mesh.Build(occupancy)
//	if err := mesh.SaveSTL(m, "red.stl"); err != nil {
//		log.Fatal(err)
//	}
package mesh
