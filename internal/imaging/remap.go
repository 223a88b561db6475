package imaging

import (
	"log"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

// Remap returns a copy of src with every non-transparent pixel replaced by
// its nearest palette color under metric m. Alpha is preserved.
//
// Rows are split across cfg.Workers goroutines. Workers read src and p and
// write disjoint rows of the output, so no locking is involved; p must not
// be mutated until Remap returns.
//
// An empty src is logged and returned unchanged. An empty palette is logged
// and yields an unmodified copy.
func Remap(src *Buffer, p *palette.Palette, m palette.Metric) *Buffer {
	if src.Empty() {
		log.Printf("remap skipped: %v", ErrEmptyImage)
		return src
	}
	out := src.Clone()
	if p == nil || p.Len() == 0 {
		log.Printf("remap skipped: %v", palette.ErrEmptyPalette)
		return out
	}
	if cfg.Debug {
		log.Printf("remapping %dx%d image to %d colors (%s)", src.Width, src.Height, p.Len(), m)
	}

	parallelRows(src.Height, func(y0, y1 int) {
		// Per-worker memo; photos repeat colors heavily.
		memo := make(map[palette.Color]palette.Color)
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				if src.Transparent(x, y) {
					continue
				}
				c := src.Color(x, y)
				nc, ok := memo[c]
				if !ok {
					nc, _ = p.Closest(c, m)
					memo[c] = nc
				}
				out.SetColor(x, y, nc)
			}
		}
	})
	return out
}
