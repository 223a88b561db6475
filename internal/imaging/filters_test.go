package imaging

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"landscape", 40, 20, 10, 10, 5},
		{"portrait", 20, 40, 10, 5, 10},
		{"already small", 8, 6, 10, 8, 6},
		{"disabled", 40, 20, 0, 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := NewBuffer(tt.w, tt.h, 4)
			out := Downscale(b, tt.max)
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", out.Width, out.Height, tt.wantW, tt.wantH)
			}
			if out.Channels != 4 {
				t.Errorf("Channels = %d, want 4", out.Channels)
			}
		})
	}
}

func TestDownscaleAveragesUniform(t *testing.T) {
	in := make([]string, 16)
	for i := range in {
		in[i] = "#336699"
	}
	out := Downscale(hexBuffer(t, 4, 4, in...), 2)
	if diff := cmp.Diff([]string{"#336699", "#336699", "#336699", "#336699"}, hexes(out)); diff != "" {
		t.Errorf("uniform image changed (-want +got):\n%s", diff)
	}
}

func TestFiltersKeepUniformImage(t *testing.T) {
	in := make([]string, 25)
	for i := range in {
		in[i] = "#808080"
	}
	b := hexBuffer(t, 5, 5, in...)

	for name, out := range map[string]*Buffer{
		"blur":    Blur(b, 1.5),
		"denoise": Denoise(b, 1),
	} {
		if out.Width != 5 || out.Height != 5 || out.Channels != 3 {
			t.Errorf("%s: got %dx%dx%d", name, out.Width, out.Height, out.Channels)
		}
		if diff := cmp.Diff(in, hexes(out)); diff != "" {
			t.Errorf("%s changed a uniform image (-want +got):\n%s", name, diff)
		}
	}
}

func TestDenoiseRemovesSpeck(t *testing.T) {
	in := make([]string, 25)
	for i := range in {
		in[i] = k
	}
	in[12] = w
	out := Denoise(hexBuffer(t, 5, 5, in...), 1)
	if got := out.Color(2, 2).Hex(); got != k {
		t.Errorf("speck survived median filter: %s", got)
	}
}

func TestFiltersNonPositiveParameter(t *testing.T) {
	b := hexBuffer(t, 2, 1, r, g)
	for name, out := range map[string]*Buffer{
		"blur":      Blur(b, 0),
		"denoise":   Denoise(b, -1),
		"downscale": Downscale(b, -5),
	} {
		if out == b {
			t.Errorf("%s returned its input, want a copy", name)
		}
		if diff := cmp.Diff(b, out); diff != "" {
			t.Errorf("%s changed pixels (-want +got):\n%s", name, diff)
		}
	}
}
