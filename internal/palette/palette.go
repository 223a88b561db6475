package palette

import (
	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange is returned when a palette index is negative or
	// past the last entry.
	ErrIndexOutOfRange = errors.New("palette index out of range")

	// ErrColorNotFound is returned when removing a color the palette does
	// not contain.
	ErrColorNotFound = errors.New("color not found in palette")

	// ErrEmptyPalette is returned when a nearest-color query is made
	// against a palette with no entries.
	ErrEmptyPalette = errors.New("palette is empty")
)

// Palette is an ordered list of reference colors. Order is insertion order
// and duplicates are allowed.
//
// A Palette is not safe for concurrent mutation. Concurrent Closest calls are
// safe as long as nothing mutates the palette meanwhile; Remap relies on this.
type Palette struct {
	colors []Color
}

// New creates a palette holding colors in the given order.
func New(colors ...Color) *Palette {
	p := &Palette{colors: make([]Color, 0, len(colors))}
	p.colors = append(p.colors, colors...)
	return p
}

// FromHex parses every entry of hexes with ParseHex. The first malformed
// entry aborts construction with ErrInvalidHexFormat.
func FromHex(hexes []string) (*Palette, error) {
	p := &Palette{colors: make([]Color, 0, len(hexes))}
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, errors.Wrapf(err, "palette entry %d", i)
		}
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.colors) }

// Colors returns a copy of the entries in palette order.
func (p *Palette) Colors() []Color {
	out := make([]Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// Hexes returns the "#RRGGBB" encoding of every entry in palette order.
func (p *Palette) Hexes() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.Hex()
	}
	return out
}

// Get returns the entry at index i.
func (p *Palette) Get(i int) (Color, error) {
	if i < 0 || i >= len(p.colors) {
		return Color{}, errors.Wrapf(ErrIndexOutOfRange, "index %d, len %d", i, len(p.colors))
	}
	return p.colors[i], nil
}

// Add appends c.
func (p *Palette) Add(c Color) {
	p.colors = append(p.colors, c)
}

// AddHex parses s and appends it.
func (p *Palette) AddHex(s string) error {
	c, err := ParseHex(s)
	if err != nil {
		return err
	}
	p.Add(c)
	return nil
}

// RemoveAt deletes the entry at index i, preserving the order of the rest.
func (p *Palette) RemoveAt(i int) error {
	if i < 0 || i >= len(p.colors) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, len %d", i, len(p.colors))
	}
	p.colors = append(p.colors[:i], p.colors[i+1:]...)
	return nil
}

// Remove deletes the first entry whose hex equals c's hex.
func (p *Palette) Remove(c Color) error {
	for i, pc := range p.colors {
		if pc.Hex() == c.Hex() {
			return p.RemoveAt(i)
		}
	}
	return errors.Wrapf(ErrColorNotFound, "%s", c.Hex())
}

// RemoveHex parses s and removes the first matching entry.
func (p *Palette) RemoveHex(s string) error {
	c, err := ParseHex(s)
	if err != nil {
		return err
	}
	return p.Remove(c)
}

// Clear removes every entry.
func (p *Palette) Clear() {
	p.colors = p.colors[:0]
}

// Closest returns the entry nearest to c under metric m.
//
// An entry whose hex equals c's hex is returned immediately. Otherwise every
// entry is scanned and the minimum distance kept; among entries at the same
// minimal distance the lexicographically smaller hex wins, so the result does
// not depend on insertion order.
func (p *Palette) Closest(c Color, m Metric) (Color, error) {
	if len(p.colors) == 0 {
		return Color{}, ErrEmptyPalette
	}

	hex := c.Hex()
	for _, pc := range p.colors {
		if pc.Hex() == hex {
			return pc, nil
		}
	}

	best := p.colors[0]
	bestDist := best.Distance(c, m)
	for _, pc := range p.colors[1:] {
		d := pc.Distance(c, m)
		if d < bestDist || (d == bestDist && pc.Hex() < best.Hex()) {
			best = pc
			bestDist = d
		}
	}
	return best, nil
}
