package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func mustPalette(t *testing.T, hexes ...string) *Palette {
	t.Helper()
	p, err := FromHex(hexes)
	if err != nil {
		t.Fatalf("FromHex(%v) failed: %v", hexes, err)
	}
	return p
}

func TestFromHex_Invalid(t *testing.T) {
	_, err := FromHex([]string{"#FF0000", "#00FF0"})
	if !errors.Is(err, ErrInvalidHexFormat) {
		t.Fatalf("got %v, want ErrInvalidHexFormat", err)
	}
}

func TestPalette_Mutations(t *testing.T) {
	p := mustPalette(t, "#FF0000", "#00FF00", "#FF0000", "#0000FF")

	if err := p.AddHex("#ffffff"); err != nil {
		t.Fatalf("AddHex failed: %v", err)
	}
	if err := p.Remove(MustParseHex("#FF0000")); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	// Only the first duplicate goes.
	want := []string{"#00FF00", "#FF0000", "#0000FF", "#FFFFFF"}
	if diff := cmp.Diff(want, p.Hexes()); diff != "" {
		t.Errorf("after Remove (-want +got):\n%s", diff)
	}

	if err := p.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	want = []string{"#00FF00", "#0000FF", "#FFFFFF"}
	if diff := cmp.Diff(want, p.Hexes()); diff != "" {
		t.Errorf("after RemoveAt (-want +got):\n%s", diff)
	}

	c, err := p.Get(2)
	if err != nil || c.Hex() != "#FFFFFF" {
		t.Errorf("Get(2): got %s, %v", c.Hex(), err)
	}

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", p.Len())
	}
}

func TestPalette_Errors(t *testing.T) {
	p := mustPalette(t, "#FF0000", "#00FF00")

	for _, i := range []int{-1, 2, 100} {
		if err := p.RemoveAt(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d): got %v, want ErrIndexOutOfRange", i, err)
		}
		if _, err := p.Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d): got %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if err := p.RemoveHex("#123456"); !errors.Is(err, ErrColorNotFound) {
		t.Errorf("RemoveHex(absent): got %v, want ErrColorNotFound", err)
	}
	if err := p.RemoveHex("123456"); !errors.Is(err, ErrInvalidHexFormat) {
		t.Errorf("RemoveHex(malformed): got %v, want ErrInvalidHexFormat", err)
	}
	if p.Len() != 2 {
		t.Errorf("failed removals changed the palette: len %d", p.Len())
	}
}

func TestPalette_ColorsIsACopy(t *testing.T) {
	p := mustPalette(t, "#FF0000")
	cs := p.Colors()
	cs[0] = MustParseHex("#000000")
	if got, _ := p.Get(0); got.Hex() != "#FF0000" {
		t.Errorf("palette mutated through Colors(): got %s", got.Hex())
	}
}

func TestClosest_ExactMatch(t *testing.T) {
	p := mustPalette(t, "#000000", "#FFFFFF", "#7F7F7F")
	for _, m := range []Metric{MetricRGB, MetricHSL} {
		got, err := p.Closest(MustParseHex("#7f7f7f"), m)
		if err != nil {
			t.Fatalf("Closest failed: %v", err)
		}
		if got.Hex() != "#7F7F7F" {
			t.Errorf("%s: got %s, want #7F7F7F", m, got.Hex())
		}
	}
}

func TestClosest_TieBreakLexicographic(t *testing.T) {
	// (128,128,128) is equidistant from red and blue; "#0000FF" < "#FF0000".
	gray := FromRGB(128, 128, 128)
	orders := [][]string{
		{"#FF0000", "#0000FF"},
		{"#0000FF", "#FF0000"},
	}
	for _, order := range orders {
		p := mustPalette(t, order...)
		got, err := p.Closest(gray, MetricRGB)
		if err != nil {
			t.Fatalf("Closest failed: %v", err)
		}
		if got.Hex() != "#0000FF" {
			t.Errorf("order %v: got %s, want #0000FF", order, got.Hex())
		}
	}
}

func TestClosest_BlackWhite(t *testing.T) {
	for _, order := range [][]string{{"#000000", "#FFFFFF"}, {"#FFFFFF", "#000000"}} {
		p := mustPalette(t, order...)
		got, _ := p.Closest(MustParseHex("#7F7F7F"), MetricRGB)
		if got.Hex() != "#000000" {
			t.Errorf("order %v: got %s, want #000000", order, got.Hex())
		}
	}
}

func TestClosest_HSLPrefersHue(t *testing.T) {
	// A dark red is closer to bright red in hue than to a dark gray.
	p := mustPalette(t, "#FF0000", "#404040")
	darkRed := MustParseHex("#600000")

	got, _ := p.Closest(darkRed, MetricHSL)
	if got.Hex() != "#FF0000" {
		t.Errorf("HSL: got %s, want #FF0000", got.Hex())
	}
	got, _ = p.Closest(darkRed, MetricRGB)
	if got.Hex() != "#404040" {
		t.Errorf("RGB: got %s, want #404040", got.Hex())
	}
}

func TestClosest_EmptyPalette(t *testing.T) {
	_, err := New().Closest(FromRGB(1, 2, 3), MetricRGB)
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("got %v, want ErrEmptyPalette", err)
	}
}

func TestSuggest_TwoColorImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 20 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}

	for _, m := range []Method{MethodDominant, MethodKMeans} {
		t.Run(m.String(), func(t *testing.T) {
			p, err := Suggest(img, 2, m)
			if err != nil {
				t.Fatalf("Suggest failed: %v", err)
			}
			if p.Len() == 0 || p.Len() > 2 {
				t.Fatalf("Suggest returned %d colors, want 1..2", p.Len())
			}
			// Darkest first.
			first, _ := p.Get(0)
			last, _ := p.Get(p.Len() - 1)
			if first.Red() > last.Red() {
				t.Errorf("palette not sorted dark to bright: %v", p.Hexes())
			}
		})
	}
}

func TestSuggest_InvalidArgs(t *testing.T) {
	if _, err := Suggest(image.NewRGBA(image.Rect(0, 0, 0, 0)), 3, MethodDominant); err == nil {
		t.Error("Suggest on empty image should fail")
	}
	if _, err := Suggest(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, MethodDominant); err == nil {
		t.Error("Suggest with k=0 should fail")
	}
}

func TestParseMethod(t *testing.T) {
	if m, err := ParseMethod("kmeans"); err != nil || m != MethodKMeans {
		t.Errorf("ParseMethod(kmeans) = %v, %v", m, err)
	}
	if m, err := ParseMethod(""); err != nil || m != MethodDominant {
		t.Errorf("ParseMethod(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMethod("median-cut"); err == nil {
		t.Error("ParseMethod(median-cut) should fail")
	}
}
