package mesh

// offset is a position inside one marching square on the 2× supersampled
// grid. Corners sit at 0 and 2, edge midpoints at 1.
type offset struct{ dx, dy int }

var (
	oTL = offset{0, 0}
	oT  = offset{1, 0}
	oTR = offset{2, 0}
	oR  = offset{2, 1}
	oBR = offset{2, 2}
	oB  = offset{1, 2}
	oBL = offset{0, 2}
	oL  = offset{0, 1}
)

// squareCase describes the geometry of one corner configuration.
//
// verts lists the points that carry a bottom/top vertex pair. caps are the
// top-cap triangles as indices into verts, counter-clockwise seen from +z
// (image y grows downward, mesh y upward, so they run clockwise on the
// image); the bottom cap uses the same triangles reversed. walls are the
// contour segments, directed so the solid lies on their left seen from +z;
// each becomes a vertical quad of two triangles facing outward.
type squareCase struct {
	verts []offset
	caps  [][3]int
	walls [][2]int
}

// Configuration index bits: 1 = top-left, 2 = top-right, 4 = bottom-right,
// 8 = bottom-left. Only edges with exactly one occupied corner get a
// midpoint, so neighboring squares always agree on their shared edge.
// Saddles (5 and 10) keep the two corners apart, matching 4-connectivity.
var cases = [16]squareCase{
	0: {},
	1: {
		verts: []offset{oTL, oL, oT},
		caps:  [][3]int{{0, 1, 2}},
		walls: [][2]int{{1, 2}},
	},
	2: {
		verts: []offset{oR, oTR, oT},
		caps:  [][3]int{{0, 1, 2}},
		walls: [][2]int{{2, 0}},
	},
	3: {
		verts: []offset{oTL, oL, oR, oTR},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}},
		walls: [][2]int{{1, 2}},
	},
	4: {
		verts: []offset{oB, oBR, oR},
		caps:  [][3]int{{0, 1, 2}},
		walls: [][2]int{{2, 0}},
	},
	5: {
		verts: []offset{oTL, oL, oT, oB, oBR, oR},
		caps:  [][3]int{{0, 1, 2}, {3, 4, 5}},
		walls: [][2]int{{1, 2}, {5, 3}},
	},
	6: {
		verts: []offset{oB, oBR, oTR, oT},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}},
		walls: [][2]int{{3, 0}},
	},
	7: {
		verts: []offset{oTL, oL, oB, oBR, oTR},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}},
		walls: [][2]int{{1, 2}},
	},
	8: {
		verts: []offset{oL, oBL, oB},
		caps:  [][3]int{{0, 1, 2}},
		walls: [][2]int{{2, 0}},
	},
	9: {
		verts: []offset{oTL, oBL, oB, oT},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}},
		walls: [][2]int{{2, 3}},
	},
	10: {
		verts: []offset{oL, oBL, oB, oR, oTR, oT},
		caps:  [][3]int{{0, 1, 2}, {3, 4, 5}},
		walls: [][2]int{{2, 0}, {5, 3}},
	},
	11: {
		verts: []offset{oTL, oBL, oB, oR, oTR},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}},
		walls: [][2]int{{2, 3}},
	},
	12: {
		verts: []offset{oL, oBL, oBR, oR},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}},
		walls: [][2]int{{3, 0}},
	},
	13: {
		verts: []offset{oTL, oBL, oBR, oR, oT},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}},
		walls: [][2]int{{3, 4}},
	},
	14: {
		verts: []offset{oL, oBL, oBR, oTR, oT},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}},
		walls: [][2]int{{4, 0}},
	},
	15: {
		verts: []offset{oTL, oBL, oBR, oTR},
		caps:  [][3]int{{0, 1, 2}, {0, 2, 3}},
	},
}
