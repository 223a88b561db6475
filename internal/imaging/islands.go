package imaging

import (
	"log"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
)

// 4-connectivity as (dx, dy), in the order neighbors are visited and
// tallied: right, down, left, up.
var neighbors4 = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// SmoothIslands returns a copy of src in which every island of at most
// maxSize pixels is recolored to the majority color around it.
//
// An island is a maximal 4-connected region of pixels with identical
// channel values. Islands are discovered in row-major order of their first
// pixel and handled one at a time, so a recolored island is seen with its
// new color by the islands discovered after it. The replacement is the most
// frequent color among pixels 4-adjacent to the island but outside it; on a
// tie the color encountered first wins. Islands with no opaque outside
// neighbor, and transparent islands, are left alone.
//
// The pass is sequential: flood fills cross row boundaries, so there is no
// row partition that keeps workers apart.
//
// maxSize <= 0 disables smoothing. An empty src is logged and returned
// unchanged.
func SmoothIslands(src *Buffer, maxSize int) *Buffer {
	if src.Empty() {
		log.Printf("island smoothing skipped: %v", ErrEmptyImage)
		return src
	}
	out := src.Clone()
	if maxSize <= 0 {
		return out
	}

	w, h := out.Width, out.Height
	label := make([]int32, w*h) // 0 = unvisited, otherwise island number
	var stack, island []int
	var current int32
	recolored := 0

	for start := 0; start < w*h; start++ {
		if label[start] != 0 {
			continue
		}
		current++
		key := out.pixelKey(start)

		// Iterative flood fill.
		island = island[:0]
		stack = append(stack[:0], start)
		label[start] = current
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			island = append(island, p)

			px, py := p%w, p/w
			for _, d := range neighbors4 {
				nx, ny := px+d[0], py+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if label[n] == 0 && out.pixelKey(n) == key {
					label[n] = current
					stack = append(stack, n)
				}
			}
		}

		if len(island) > maxSize || out.Transparent(start%w, start/w) {
			continue
		}
		if donor, ok := majorityNeighbor(out, label, island, current); ok {
			for _, p := range island {
				copy(out.Pix[p*out.Channels:(p+1)*out.Channels], out.Pix[donor*out.Channels:(donor+1)*out.Channels])
			}
			recolored++
		}
	}

	if cfg.Debug {
		log.Printf("island smoothing: %d islands, %d recolored (max size %d)", current, recolored, maxSize)
	}
	return out
}

// majorityNeighbor tallies the colors of opaque pixels bordering island and
// returns the index of a pixel holding the winning color.
func majorityNeighbor(b *Buffer, label []int32, island []int, id int32) (int, bool) {
	w, h := b.Width, b.Height
	counts := make(map[uint32]int)
	var order []uint32
	donors := make(map[uint32]int)

	for _, p := range island {
		px, py := p%w, p/w
		for _, d := range neighbors4 {
			nx, ny := px+d[0], py+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			n := ny*w + nx
			if label[n] == id || b.Transparent(nx, ny) {
				continue
			}
			k := b.pixelKey(n)
			if _, seen := counts[k]; !seen {
				order = append(order, k)
				donors[k] = n
			}
			counts[k]++
		}
	}
	if len(order) == 0 {
		return 0, false
	}

	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return donors[best], true
}
