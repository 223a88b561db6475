package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

// Legend layout, in pixels.
const (
	swatchRowHeight  = 24
	swatchBlockWidth = 40
	swatchWidth      = 220
	swatchFontSize   = 12
)

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// Swatch renders a palette legend: one row per color with a filled block
// and its hex code. When counts is given (as returned by ColorCounts for
// the same palette) each row also shows the color's pixel count.
//
// The result is an opaque 3-channel buffer on a white background.
func Swatch(p *palette.Palette, counts []ColorCount) (*Buffer, error) {
	if p == nil || p.Len() == 0 {
		return nil, palette.ErrEmptyPalette
	}
	f, err := loadLabelFont()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse label font")
	}

	colors := p.Colors()
	img := image.NewNRGBA(image.Rect(0, 0, swatchWidth, len(colors)*swatchRowHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(swatchFontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	for i, c := range colors {
		top := i * swatchRowHeight
		cr, cg, cb := c.RGB()
		block := image.Rect(2, top+2, 2+swatchBlockWidth, top+swatchRowHeight-2)
		draw.Draw(img, block, image.NewUniform(color.NRGBA{cr, cg, cb, 255}), image.Point{}, draw.Src)

		label := c.Hex()
		if i < len(counts) {
			label = fmt.Sprintf("%s  %d px", label, counts[i].Pixels)
		}
		baseline := top + (swatchRowHeight+swatchFontSize)/2 - 2
		if _, err := ctx.DrawString(label, freetype.Pt(swatchBlockWidth+10, baseline)); err != nil {
			return nil, errors.Wrap(err, "failed to draw label")
		}
	}

	return fromNRGBA(img, 3), nil
}
