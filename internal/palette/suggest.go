package palette

import (
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/pkg/errors"
)

// Method selects how Suggest extracts candidate colors from an image.
type Method int

const (
	// MethodDominant uses dominant-color bucketing.
	MethodDominant Method = iota
	// MethodKMeans clusters a subsample of the image in RGB.
	MethodKMeans
)

// ParseMethod maps "dominant" (or "") and "kmeans" to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "dominant", "dominantcolor":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	default:
		return MethodDominant, errors.Errorf("unknown palette method %q (want dominant or kmeans)", s)
	}
}

func (m Method) String() string {
	if m == MethodKMeans {
		return "kmeans"
	}
	return "dominant"
}

// kmeansMaxSamples bounds the number of pixels fed to k-means.
const kmeansMaxSamples = 12000

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// Suggest proposes up to k palette colors for img.
//
// Both methods over-extract candidates and then greedily pick a diverse
// subset: the heaviest candidate first, then whichever candidate is farthest
// (in Lab) from those already chosen, weighted by its pixel share. The
// result is sorted from darkest to brightest, which is a sensible stacking
// order for printed layers.
//
// If k-means yields nothing the dominant-color method is used instead.
func Suggest(img image.Image, k int, method Method) (*Palette, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("suggest palette: empty image")
	}
	if k <= 0 {
		return nil, errors.Errorf("suggest palette: count must be positive, got %d", k)
	}

	var cands []weightedColor
	if method == MethodKMeans {
		cands = kmeansCandidates(img, k)
		if len(cands) == 0 {
			log.Printf("palette: kmeans returned no clusters, falling back to dominant colors")
		}
	}
	if len(cands) == 0 {
		cands = dominantCandidates(img, k)
	}

	picked := selectDiverse(cands, k)
	slices.SortStableFunc(picked, func(a, b colorful.Color) int {
		la, _, _ := a.Lab()
		lb, _, _ := b.Lab()
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})

	p := New()
	for _, c := range picked {
		r, g, b := c.Clamped().RGB255()
		p.Add(FromRGB(int(r), int(g), int(b)))
	}
	return p, nil
}

func dominantCandidates(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	if len(found) == 0 {
		found = append(found, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1,
		})
	}
	out := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, weightedColor{col: col.Clamped(), weight: c.Weight})
	}
	return out
}

func kmeansCandidates(img image.Image, k int) []weightedColor {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	step := 1
	if n > kmeansMaxSamples {
		step = int(math.Sqrt(float64(n)/kmeansMaxSamples)) + 1
	}

	var data clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			data = append(data, clusters.Coordinates{
				float64(r) / 65535.0,
				float64(g) / 65535.0,
				float64(bl) / 65535.0,
			})
		}
	}
	if len(data) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(data))
	cc, err := kmeans.New().Partition(data, workK)
	if err != nil {
		log.Printf("palette: kmeans partition failed: %v", err)
		return nil
	}

	out := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, weightedColor{col: col, weight: float64(len(c.Observations))})
	}
	return out
}

func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.weight > maxW {
			maxW = c.weight
			seed = i
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	chosen := []int{seed}
	used := make([]bool, len(cands))
	used[seed] = true

	for len(chosen) < k {
		bestIdx, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, s := range chosen {
				if d := c.col.DistanceLab(cands[s].col); d < minD {
					minD = d
				}
			}
			w := math.Max(c.weight, 1e-6) / maxW
			if score := minD * (0.55 + 0.45*math.Sqrt(w)); score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx < 0 {
			break
		}
		used[bestIdx] = true
		chosen = append(chosen, bestIdx)
	}

	out := make([]colorful.Color, len(chosen))
	for i, idx := range chosen {
		out[i] = cands[idx].col
	}
	return out
}
