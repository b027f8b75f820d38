package autoart

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is the full output of one pipeline invocation. Layers and
// Paths are parallel slices.
type Result struct {
	Quantized *QuantizeResult
	Layers    []Layer
	Paths     [][]ActionSet
}

// Process runs the whole pipeline over one image: quantization, layer
// extraction, then per-layer chunking, path generation and action-set
// optimization. Layers share no state, so they are traced concurrently.
// The invocation is atomic: it either completes or fails as a unit, and
// carries no state across calls.
func Process(img image.Image, opts Options, popts PathOptions) (*Result, error) {
	return ProcessBitmap(BitmapFromImage(img), opts, popts)
}

// ProcessBitmap is Process over an already-flattened pixel buffer.
func ProcessBitmap(b *Bitmap, opts Options, popts PathOptions) (*Result, error) {
	q, err := Quantize(b, opts)
	if err != nil {
		return nil, err
	}
	layers := ExtractLayers(q, opts)
	paths := make([][]ActionSet, len(layers))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range layers {
		i, l := i, l
		g.Go(func() error {
			paths[i] = TraceLayer(l, popts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Quantized: q, Layers: layers, Paths: paths}, nil
}
