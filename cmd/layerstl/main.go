// Command layerstl maps an image onto a palette and writes one STL per
// palette color, plus a preview of the mapped image and a palette legend.
//
// The palette comes from -colors, or is suggested from the image with
// -suggest when -colors is empty.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
	"github.com/ironsheep/color-layers-mcp/internal/imaging"
	"github.com/ironsheep/color-layers-mcp/internal/layers"
	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

func main() {
	var colors, metric, method, outDir, prefix string
	var maxSize, islands, suggest int
	var blur, denoise float64
	flag.StringVar(&colors, "colors", "", "comma-separated #RRGGBB palette")
	flag.StringVar(&metric, "metric", "rgb", "color distance (rgb or hsl)")
	flag.IntVar(&maxSize, "max-size", cfg.MaxImageSize, "cap on the longer image side, 0 to keep")
	flag.Float64Var(&denoise, "denoise", 0, "median filter radius before mapping")
	flag.Float64Var(&blur, "blur", 0, "Gaussian blur sigma before mapping")
	flag.IntVar(&islands, "islands", cfg.DefaultIslandSize, "absorb islands of at most this many pixels")
	flag.StringVar(&outDir, "out", ".", "output directory")
	flag.StringVar(&prefix, "prefix", "", "output file prefix (default: image name)")
	flag.IntVar(&suggest, "suggest", 4, "palette size to suggest when -colors is empty")
	flag.StringVar(&method, "method", "dominant", "suggestion method (dominant or kmeans)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: layerstl [flags] <image>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	cfg.LoadEnv()
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)
	if prefix == "" {
		base := filepath.Base(inputPath)
		prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}

	cache := imaging.NewImageCache()
	p := loadPalette(cache, inputPath, colors, suggest, method)

	opts := layers.DefaultOptions()
	var err error
	opts.Metric, err = palette.ParseMetric(metric)
	essentials.Must(err)
	opts.MaxSize = maxSize
	opts.DenoiseRadius = denoise
	opts.BlurSigma = blur
	opts.IslandSize = islands

	log.Printf("Mapping %s onto %s...", inputPath, strings.Join(p.Hexes(), " "))
	res, err := layers.New(cache).Run(inputPath, p, opts)
	essentials.Must(err)

	essentials.Must(imaging.Save(res.Mapped, filepath.Join(outDir, prefix+"_mapped.png")))
	swatch, err := imaging.Swatch(p, res.Census)
	essentials.Must(err)
	essentials.Must(imaging.Save(swatch, filepath.Join(outDir, prefix+"_palette.png")))

	log.Println("Creating layers...")
	files, err := res.ExportAll(outDir, prefix)
	essentials.Must(err)
	for _, lf := range files {
		log.Printf("%s: %d pixels, %d faces -> %s", lf.Color, lf.Pixels, lf.Faces, lf.Path)
	}
}

func loadPalette(cache *imaging.ImageCache, path, colors string, k int, method string) *palette.Palette {
	if colors != "" {
		hexes := strings.Split(colors, ",")
		for i := range hexes {
			hexes[i] = strings.TrimSpace(hexes[i])
		}
		p, err := palette.FromHex(hexes)
		essentials.Must(err)
		return p
	}
	m, err := palette.ParseMethod(method)
	essentials.Must(err)
	img, err := cache.Load(path)
	essentials.Must(err)
	p, err := palette.Suggest(img, k, m)
	essentials.Must(err)
	return p
}
