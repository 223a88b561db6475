package mesh

// Layer is the height a cached vertex sits at.
type Layer int

const (
	// LayerBottom is the floor of the extruded solid, z = -thickness/2.
	LayerBottom Layer = iota
	// LayerTop is the cap of the extruded solid, z = +thickness/2.
	LayerTop
)

type cacheKey struct {
	x, y  int
	layer Layer
}

// VertexCache maps supersampled grid points to mesh vertex indices so each
// physical point is added to the mesh once, however many squares share it.
// The mesh owns the vertices; the cache only indexes them.
type VertexCache struct {
	index map[cacheKey]int
}

// NewVertexCache returns an empty cache.
func NewVertexCache() *VertexCache {
	return &VertexCache{index: make(map[cacheKey]int)}
}

// Lookup returns the vertex index stored for (x, y, layer).
func (c *VertexCache) Lookup(x, y int, layer Layer) (int, bool) {
	i, ok := c.index[cacheKey{x, y, layer}]
	return i, ok
}

// Store records idx as the vertex for (x, y, layer).
func (c *VertexCache) Store(x, y int, layer Layer, idx int) {
	c.index[cacheKey{x, y, layer}] = idx
}

// Len returns the number of cached points.
func (c *VertexCache) Len() int { return len(c.index) }
