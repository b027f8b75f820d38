// Package utils holds the external collaborators of the core pipeline:
// image file I/O and quick palette suggestion. The core itself owns no
// file formats.
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/tawsifrm/autoart"
)

// PaletteMethod selects how SuggestPalette finds candidate colors.
type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// SuggestPalette proposes k distinct colors for an image without running
// the full quantization pipeline; useful for previewing a color count
// before committing to it.
func SuggestPalette(img image.Image, k int, method PaletteMethod) []autoart.RGB {
	var cands []weightedColor
	switch method {
	case PaletteMethodKMeans:
		cands = kmeansCandidates(img, k)
		if len(cands) == 0 {
			log.Println("palette warning: kmeans returned no candidates, falling back to dominantcolor")
			cands = dominantCandidates(img, k)
		}
	default:
		cands = dominantCandidates(img, k)
	}
	return selectDiverse(cands, k)
}

func dominantCandidates(img image.Image, k int) []weightedColor {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	out := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		out = append(out, weightedColor{col: col.Clamped(), weight: w})
	}
	return out
}

func kmeansCandidates(img image.Image, k int) []weightedColor {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if total := b.Dx() * b.Dy(); total > maxSamples {
		step = int(math.Sqrt(float64(total)/float64(maxSamples))) + 1
	}
	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}
	out := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		out = append(out, weightedColor{col: col, weight: w})
	}
	return out
}

// selectDiverse picks k colors maximizing Lab-space spread, weighted
// toward dominant tones.
func selectDiverse(cands []weightedColor, k int) []autoart.RGB {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	if k > len(cands) {
		k = len(cands)
	}
	labs := make([][3]float64, len(cands))
	maxW := 0.0
	for i, c := range cands {
		l, a, b := c.col.Lab()
		labs[i] = [3]float64{l, a, b}
		if c.weight > maxW {
			maxW = c.weight
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	selected := make([]bool, len(cands))
	picked := make([]int, 0, k)
	seed := 0
	for i := 1; i < len(cands); i++ {
		if cands[i].weight > cands[seed].weight {
			seed = i
		}
	}
	selected[seed] = true
	picked = append(picked, seed)

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i := range cands {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range picked {
				d0 := labs[i][0] - labs[s][0]
				d1 := labs[i][1] - labs[s][1]
				d2 := labs[i][2] - labs[s][2]
				if v := d0*d0 + d1*d1 + d2*d2; v < minD2 {
					minD2 = v
				}
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(cands[i].weight/maxW))
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		selected[best] = true
		picked = append(picked, best)
	}

	out := make([]autoart.RGB, 0, len(picked))
	for _, i := range picked {
		c := cands[i].col
		out = append(out, autoart.RGB{
			R: uint8(max(0, min(255, c.R*255))),
			G: uint8(max(0, min(255, c.G*255))),
			B: uint8(max(0, min(255, c.B*255))),
		})
	}
	return out
}

// SortByBrightness orders colors from darkest to brightest, so the
// first entry suits a background fill.
func SortByBrightness(palette []autoart.RGB) {
	slices.SortFunc(palette, func(a, b autoart.RGB) int {
		ya := relativeLuminance(a)
		yb := relativeLuminance(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		default:
			return 0
		}
	})
}

func relativeLuminance(c autoart.RGB) float64 {
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := col.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveMasks renders each layer's mask as a PNG in the layer color over
// transparency, one file per layer.
func SaveMasks(layers []autoart.Layer, dir string) error {
	for i, l := range layers {
		img := image.NewNRGBA(image.Rect(0, 0, l.Mask.W, l.Mask.H))
		for y := 0; y < l.Mask.H; y++ {
			for x := 0; x < l.Mask.W; x++ {
				if l.Mask.At(x, y) {
					img.SetNRGBA(x, y, color.NRGBA{R: l.Color.R, G: l.Color.G, B: l.Color.B, A: 255})
				}
			}
		}
		if err := SaveImage(img, dir+"layer_"+strconv.Itoa(i)+".png"); err != nil {
			return err
		}
	}
	return nil
}

// SavePalette writes the palette as a strip of solid tiles.
func SavePalette(palette []autoart.RGB, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		for y := 0; y < tileSize; y++ {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}
