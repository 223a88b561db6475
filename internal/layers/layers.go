package layers

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
	"github.com/ironsheep/color-layers-mcp/internal/imaging"
	"github.com/ironsheep/color-layers-mcp/internal/mesh"
	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

// Options controls the pixel passes of one run. Zero values disable the
// optional passes.
type Options struct {
	// Metric selects the distance used to snap pixels to the palette.
	Metric palette.Metric

	// MaxSize caps the longer image side before mapping.
	MaxSize int

	// DenoiseRadius is the median filter radius applied before mapping.
	DenoiseRadius float64

	// BlurSigma is the Gaussian blur applied before mapping.
	BlurSigma float64

	// IslandSize is the largest island absorbed after mapping.
	IslandSize int
}

// DefaultOptions returns options seeded from cfg.
func DefaultOptions() Options {
	return Options{
		Metric:     palette.MetricRGB,
		MaxSize:    cfg.MaxImageSize,
		IslandSize: cfg.DefaultIslandSize,
	}
}

// Result is an image mapped to a palette, ready for layer export.
type Result struct {
	Palette *palette.Palette
	Mapped  *imaging.Buffer
	Census  []imaging.ColorCount
}

// Process runs the pixel passes on b in order: downscale, denoise, blur,
// remap, island smoothing. b is not modified.
func Process(b *imaging.Buffer, p *palette.Palette, opts Options) (*Result, error) {
	if b.Empty() {
		return nil, imaging.ErrEmptyImage
	}
	if p == nil || p.Len() == 0 {
		return nil, palette.ErrEmptyPalette
	}

	work := imaging.Downscale(b, opts.MaxSize)
	work = imaging.Denoise(work, opts.DenoiseRadius)
	work = imaging.Blur(work, opts.BlurSigma)
	work = imaging.Remap(work, p, opts.Metric)
	work = imaging.SmoothIslands(work, opts.IslandSize)

	if cfg.Debug {
		log.Printf("processed %dx%d -> %dx%d, %d colors", b.Width, b.Height, work.Width, work.Height, p.Len())
	}
	return &Result{
		Palette: p,
		Mapped:  work,
		Census:  imaging.ColorCounts(work, p),
	}, nil
}

// Pipeline loads images through a shared cache and processes them.
type Pipeline struct {
	cache *imaging.ImageCache
}

// New returns a pipeline reading through cache. A nil cache gets a private one.
func New(cache *imaging.ImageCache) *Pipeline {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Pipeline{cache: cache}
}

// Run loads the image at path and processes it with p and opts.
func (pl *Pipeline) Run(path string, p *palette.Palette, opts Options) (*Result, error) {
	b, err := pl.cache.LoadBuffer(path)
	if err != nil {
		return nil, err
	}
	return Process(b, p, opts)
}

// Pixels returns how many mapped pixels hold c.
func (r *Result) Pixels(c palette.Color) int {
	for _, cc := range r.Census {
		if cc.Hex == c.Hex() {
			return cc.Pixels
		}
	}
	return 0
}

// Layer extrudes the pixels of color c into a closed mesh.
func (r *Result) Layer(c palette.Color) *mesh.Mesh {
	return mesh.Build(imaging.ExtractOccupancy(r.Mapped, c))
}

// LayerFile describes one written layer.
type LayerFile struct {
	Color      string `json:"color"`
	Path       string `json:"path"`
	Pixels     int    `json:"pixels"`
	Vertices   int    `json:"vertices"`
	Faces      int    `json:"faces"`
	Watertight bool   `json:"watertight"`
}

// ExportLayer builds the layer for c and writes it to path as ASCII STL.
// A color with no pixels produces an empty solid.
func (r *Result) ExportLayer(c palette.Color, path string) (*LayerFile, error) {
	m := r.Layer(c)
	if err := mesh.SaveSTL(m, path); err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.Printf("layer %s: %d vertices, %d faces -> %s", c, len(m.Vertices()), len(m.Faces()), path)
	}
	return &LayerFile{
		Color:      c.Hex(),
		Path:       path,
		Pixels:     r.Pixels(c),
		Vertices:   len(m.Vertices()),
		Faces:      len(m.Faces()),
		Watertight: mesh.IsWatertight(m),
	}, nil
}

// ExportAll writes one STL per palette color into dir, named by
// LayerFileName. Colors with no pixels, and repeated palette entries, are
// skipped. Files are written in palette order; the first failure stops the
// export and is returned along with the layers already written.
func (r *Result) ExportAll(dir, prefix string) ([]LayerFile, error) {
	var out []LayerFile
	seen := make(map[string]bool)
	for _, c := range r.Palette.Colors() {
		if seen[c.Hex()] || r.Pixels(c) == 0 {
			continue
		}
		seen[c.Hex()] = true

		lf, err := r.ExportLayer(c, filepath.Join(dir, LayerFileName(prefix, c)))
		if err != nil {
			return out, errors.Wrapf(err, "layer %s", c)
		}
		out = append(out, *lf)
	}
	return out, nil
}

// LayerFileName returns "<prefix>_<RRGGBB>.stl", or "<RRGGBB>.stl" for an
// empty prefix.
func LayerFileName(prefix string, c palette.Color) string {
	hex := strings.TrimPrefix(c.Hex(), "#")
	if prefix == "" {
		return hex + ".stl"
	}
	return fmt.Sprintf("%s_%s.stl", prefix, hex)
}
