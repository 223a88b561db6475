package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

var (
	// ErrEmptyImage is reported when an operation runs before any pixels
	// were loaded. Pipeline steps log it and pass their input through.
	ErrEmptyImage = errors.New("no image loaded")

	// ErrUnsupportedChannelCount is returned for buffers that are neither
	// RGB (3 channels) nor RGBA (4 channels).
	ErrUnsupportedChannelCount = errors.New("unsupported channel count")
)

// Buffer is a fully decoded, row-major pixel grid.
//
// Each pixel occupies Channels consecutive bytes: R, G, B and, for 4-channel
// buffers, non-premultiplied alpha. A pixel whose alpha is 0 is transparent
// and is skipped by Remap and ExtractOccupancy.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if channels != 3 && channels != 4 {
		return nil, errors.Wrapf(ErrUnsupportedChannelCount, "got %d, want 3 or 4", channels)
	}
	if width < 0 || height < 0 {
		return nil, errors.Errorf("invalid buffer size %dx%d", width, height)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// FromPixels wraps an existing pixel slice. The slice is used as-is, not
// copied, and must hold exactly width*height*channels bytes.
func FromPixels(width, height, channels int, pix []uint8) (*Buffer, error) {
	if channels != 3 && channels != 4 {
		return nil, errors.Wrapf(ErrUnsupportedChannelCount, "got %d, want 3 or 4", channels)
	}
	if want := width * height * channels; len(pix) != want || width < 0 || height < 0 {
		return nil, errors.Errorf("pixel data is %d bytes, want %d for %dx%dx%d",
			len(pix), want, width, height, channels)
	}
	return &Buffer{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// FromImage decodes any image.Image into a Buffer. Opaque images become
// 3-channel buffers; anything with transparency keeps its alpha.
func FromImage(img image.Image) *Buffer {
	if img == nil {
		return nil
	}
	nrgba := imaging.Clone(img)
	channels := 4
	if nrgba.Opaque() {
		channels = 3
	}
	return fromNRGBA(nrgba, channels)
}

func fromNRGBA(src *image.NRGBA, channels int) *Buffer {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	b := &Buffer{Width: w, Height: h, Channels: channels, Pix: make([]uint8, w*h*channels)}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(b.Pix[(y*w+x)*channels:(y*w+x+1)*channels], row[x*4:x*4+channels])
		}
	}
	return b
}

// ToImage converts the buffer to an *image.NRGBA for encoding. 3-channel
// buffers become fully opaque.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i := 0; i < b.Width*b.Height; i++ {
		src := b.Pix[i*b.Channels : (i+1)*b.Channels]
		dst := img.Pix[i*4 : i*4+4]
		copy(dst, src)
		if b.Channels == 3 {
			dst[3] = 255
		}
	}
	return img
}

// Empty reports whether b is nil or has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0 || len(b.Pix) == 0
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels, Pix: pix}
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// Color returns the RGB part of the pixel at (x, y).
func (b *Buffer) Color(x, y int) palette.Color {
	i := b.offset(x, y)
	return palette.FromRGB(int(b.Pix[i]), int(b.Pix[i+1]), int(b.Pix[i+2]))
}

// Alpha returns the alpha of the pixel at (x, y); 3-channel buffers are
// always opaque.
func (b *Buffer) Alpha(x, y int) uint8 {
	if b.Channels == 3 {
		return 255
	}
	return b.Pix[b.offset(x, y)+3]
}

// Transparent reports whether the pixel at (x, y) has alpha 0.
func (b *Buffer) Transparent(x, y int) bool {
	return b.Alpha(x, y) == 0
}

// SetColor overwrites the RGB part of the pixel at (x, y), leaving alpha.
func (b *Buffer) SetColor(x, y int, c palette.Color) {
	i := b.offset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.RGB()
}

// pixelKey packs every channel of pixel index i into one comparable value.
func (b *Buffer) pixelKey(i int) uint32 {
	p := b.Pix[i*b.Channels : (i+1)*b.Channels]
	k := uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8
	if b.Channels == 4 {
		k |= uint32(p[3])
	}
	return k
}
