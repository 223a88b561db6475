package mesh

import "math"

// Grid is a read-only binary occupancy grid. At must return false for
// coordinates outside [0, Rows) × [0, Cols).
type Grid interface {
	Rows() int
	Cols() int
	At(row, col int) bool
}

// Thickness returns the extrusion height used for a grid of the given size.
func Thickness(rows, cols int) float64 {
	return math.Sqrt(float64(rows*cols)) / 5
}

// Build extrudes the occupied region of g into a closed triangle mesh.
//
// Marching squares runs over every 2×2 window of g, including the windows
// that straddle its border, so the result is closed even when occupied
// cells touch the edge. Coordinates are on a 2× supersampled grid centered
// on the grid: x = sx - (cols-1), y = (rows-1) - sy, with the solid spanning
// z in [-t/2, +t/2] for t = Thickness(rows, cols). Caps face ±z and walls
// face away from the region.
func Build(g Grid) *Mesh {
	b := newBuilder(g)
	for i := -1; i < b.rows; i++ {
		for j := -1; j < b.cols; j++ {
			b.square(i, j)
		}
	}
	return b.mesh
}

type builder struct {
	grid       Grid
	rows, cols int
	half       float64
	mesh       *Mesh
	cache      *VertexCache
}

func newBuilder(g Grid) *builder {
	rows, cols := g.Rows(), g.Cols()
	return &builder{
		grid:  g,
		rows:  rows,
		cols:  cols,
		half:  Thickness(rows, cols) / 2,
		mesh:  New(),
		cache: NewVertexCache(),
	}
}

// caseIndex returns the configuration of the square whose top-left cell is (i, j).
func (b *builder) caseIndex(i, j int) int {
	idx := 0
	if b.grid.At(i, j) {
		idx |= 1
	}
	if b.grid.At(i, j+1) {
		idx |= 2
	}
	if b.grid.At(i+1, j+1) {
		idx |= 4
	}
	if b.grid.At(i+1, j) {
		idx |= 8
	}
	return idx
}

func (b *builder) vertex(sx, sy int, layer Layer) int {
	if idx, ok := b.cache.Lookup(sx, sy, layer); ok {
		return idx
	}
	z := b.half
	if layer == LayerBottom {
		z = -b.half
	}
	idx := b.mesh.AddVertex(float64(sx-(b.cols-1)), float64((b.rows-1)-sy), z)
	b.cache.Store(sx, sy, layer, idx)
	return idx
}

func (b *builder) square(i, j int) {
	c := &cases[b.caseIndex(i, j)]
	if len(c.verts) == 0 {
		return
	}

	bottom := make([]int, len(c.verts))
	top := make([]int, len(c.verts))
	for k, o := range c.verts {
		sx, sy := 2*j+o.dx, 2*i+o.dy
		bottom[k] = b.vertex(sx, sy, LayerBottom)
		top[k] = b.vertex(sx, sy, LayerTop)
	}

	for _, t := range c.caps {
		b.mesh.AddFace(top[t[0]], top[t[1]], top[t[2]])
	}
	for _, t := range c.caps {
		b.mesh.AddFace(bottom[t[0]], bottom[t[2]], bottom[t[1]])
	}
	for _, w := range c.walls {
		a, e := w[0], w[1]
		b.mesh.AddFace(bottom[a], bottom[e], top[e])
		b.mesh.AddFace(bottom[a], top[e], top[a])
	}
}
