package palette

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ErrInvalidHexFormat is returned when a color string is not "#" followed by
// exactly six hex digits.
var ErrInvalidHexFormat = errors.New("invalid hex color format, expected #RRGGBB")

// Color is an 8-bit RGB triple with its "#RRGGBB" encoding cached.
//
// Color is a value type. Every constructor and setter recomputes the hex
// string, so Hex always matches the channels. The zero value is black, but
// it compares unequal to FromRGB(0, 0, 0) with ==; use Equal, or key maps on
// RGB, when colors may come from either.
type Color struct {
	r, g, b uint8
	hex     string
}

// FromRGB builds a Color from integer channels, clamping each to [0,255].
func FromRGB(r, g, b int) Color {
	c := Color{r: clampChannel(r), g: clampChannel(g), b: clampChannel(b)}
	c.hex = encodeHex(c.r, c.g, c.b)
	return c
}

// ParseHex parses a "#RRGGBB" string. Hex digits are case-insensitive.
//
// The string must be exactly seven characters long and start with '#';
// anything else fails with ErrInvalidHexFormat.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, errors.Wrapf(ErrInvalidHexFormat, "%q", s)
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Color{}, errors.Wrapf(ErrInvalidHexFormat, "%q", s)
		}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(ErrInvalidHexFormat, "%q", s)
	}
	return FromRGB(int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF)), nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is intended for package-level tables and tests.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Red returns the red channel.
func (c Color) Red() int { return int(c.r) }

// Green returns the green channel.
func (c Color) Green() int { return int(c.g) }

// Blue returns the blue channel.
func (c Color) Blue() int { return int(c.b) }

// RGB returns the three channels as bytes.
func (c Color) RGB() (r, g, b uint8) { return c.r, c.g, c.b }

// Hex returns the uppercase "#RRGGBB" encoding.
func (c Color) Hex() string {
	if c.hex == "" {
		return encodeHex(c.r, c.g, c.b)
	}
	return c.hex
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// SetRed clamps v to [0,255] and stores it as the red channel.
func (c *Color) SetRed(v int) {
	c.r = clampChannel(v)
	c.hex = encodeHex(c.r, c.g, c.b)
}

// SetGreen clamps v to [0,255] and stores it as the green channel.
func (c *Color) SetGreen(v int) {
	c.g = clampChannel(v)
	c.hex = encodeHex(c.r, c.g, c.b)
}

// SetBlue clamps v to [0,255] and stores it as the blue channel.
func (c *Color) SetBlue(v int) {
	c.b = clampChannel(v)
	c.hex = encodeHex(c.r, c.g, c.b)
}

// Add returns the channel-wise sum of c and o, each channel clamped
// independently.
func (c Color) Add(o Color) Color {
	return FromRGB(int(c.r)+int(o.r), int(c.g)+int(o.g), int(c.b)+int(o.b))
}

// Subtract returns the channel-wise difference c - o, each channel clamped
// independently.
func (c Color) Subtract(o Color) Color {
	return FromRGB(int(c.r)-int(o.r), int(c.g)-int(o.g), int(c.b)-int(o.b))
}

// AddHex parses s and adds it to c.
func (c Color) AddHex(s string) (Color, error) {
	o, err := ParseHex(s)
	if err != nil {
		return c, err
	}
	return c.Add(o), nil
}

// SubtractHex parses s and subtracts it from c.
func (c Color) SubtractHex(s string) (Color, error) {
	o, err := ParseHex(s)
	if err != nil {
		return c, err
	}
	return c.Subtract(o), nil
}

// Equal reports whether c and o have the same channels.
func (c Color) Equal(o Color) bool {
	return c.r == o.r && c.g == o.g && c.b == o.b
}

// HSL converts c to hue in degrees [0,360), saturation and lightness in [0,1].
// Grays have hue 0 and saturation 0.
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.r) / 255.0,
		G: float64(c.g) / 255.0,
		B: float64(c.b) / 255.0,
	}
}

// DistanceRGB is the Euclidean distance over the three channels, truncated
// to an integer.
func (c Color) DistanceRGB(o Color) int {
	dr := float64(int(c.r) - int(o.r))
	dg := float64(int(c.g) - int(o.g))
	db := float64(int(c.b) - int(o.b))
	return int(math.Sqrt(dr*dr + dg*dg + db*db))
}

// DistanceHSL is a perceptual distance in HSL space:
//
//	100 * sqrt(4*dh² + 1.5*ds² + dl²)
//
// where dh is the shorter way around the hue circle divided by 180, and ds,
// dl are absolute saturation and lightness differences. The result is
// truncated to an integer.
func (c Color) DistanceHSL(o Color) int {
	h1, s1, l1 := c.HSL()
	h2, s2, l2 := o.HSL()

	dh := math.Abs(h1 - h2)
	dh = math.Min(dh, 360.0-dh) / 180.0
	ds := math.Abs(s1 - s2)
	dl := math.Abs(l1 - l2)

	return int(math.Sqrt(4.0*dh*dh+1.5*ds*ds+1.0*dl*dl) * 100)
}

// Distance dispatches to DistanceRGB or DistanceHSL.
func (c Color) Distance(o Color, m Metric) int {
	if m == MetricHSL {
		return c.DistanceHSL(o)
	}
	return c.DistanceRGB(o)
}

// Metric selects the distance used for nearest-color search.
type Metric int

const (
	// MetricRGB is plain Euclidean distance over (r, g, b).
	MetricRGB Metric = iota
	// MetricHSL is the weighted hue/saturation/lightness distance.
	MetricHSL
)

// ParseMetric maps "rgb" (or "") and "hsl" to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "rgb", "RGB":
		return MetricRGB, nil
	case "hsl", "HSL":
		return MetricHSL, nil
	default:
		return MetricRGB, errors.Errorf("unknown metric %q (want rgb or hsl)", s)
	}
}

func (m Metric) String() string {
	if m == MetricHSL {
		return "hsl"
	}
	return "rgb"
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func encodeHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
