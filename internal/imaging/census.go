package imaging

import (
	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

// ColorCount is the number of pixels holding one palette color.
type ColorCount struct {
	Hex    string `json:"hex"`
	Pixels int    `json:"pixels"`
}

// ColorCounts counts, for each palette entry in order, the non-transparent
// pixels of b that equal it exactly. Duplicate palette entries report the
// same count.
func ColorCounts(b *Buffer, p *palette.Palette) []ColorCount {
	colors := p.Colors()
	out := make([]ColorCount, len(colors))
	tally := make(map[rgbKey]int, len(colors))
	for i, c := range colors {
		out[i].Hex = c.Hex()
		tally[keyOf(c)] = 0
	}
	if b.Empty() {
		return out
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Transparent(x, y) {
				continue
			}
			i := b.offset(x, y)
			key := rgbKey{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
			if n, ok := tally[key]; ok {
				tally[key] = n + 1
			}
		}
	}
	for i, c := range colors {
		out[i].Pixels = tally[keyOf(c)]
	}
	return out
}

// rgbKey identifies a color by its channels alone, so a zero Color and
// FromRGB(0, 0, 0) count as the same entry.
type rgbKey [3]uint8

func keyOf(c palette.Color) rgbKey {
	r, g, b := c.RGB()
	return rgbKey{r, g, b}
}
