package autoart

import (
	"errors"
	"fmt"
)

// Algorithm selects the palette quantization strategy.
type Algorithm int

const (
	KMeans Algorithm = iota
	MedianCut
)

func (a Algorithm) String() string {
	switch a {
	case KMeans:
		return "kmeans"
	case MedianCut:
		return "mediancut"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// Initializer selects how K-Means seeds its centroids.
type Initializer int

const (
	InitKMeansPlusPlus Initializer = iota
	InitMedianCut
)

func (i Initializer) String() string {
	switch i {
	case InitKMeansPlusPlus:
		return "kmeans++"
	case InitMedianCut:
		return "mediancut"
	default:
		return fmt.Sprintf("initializer(%d)", int(i))
	}
}

var (
	// ErrInvalidConfiguration reports an unsupported enum value or an
	// impossible color count.
	ErrInvalidConfiguration = errors.New("autoart: invalid configuration")
	// ErrDegenerateInput reports an input image with no opaque pixels.
	ErrDegenerateInput = errors.New("autoart: degenerate input")
)

// Options configures one quantization request. A zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// ColorCount is the palette size produced by quantization.
	ColorCount int
	Algorithm  Algorithm
	ColorSpace ColorSpace
	// Initializer is only consulted by the K-Means algorithm.
	Initializer Initializer
	// Iterations caps K-Means refinement passes.
	Iterations int
	// Superpixels enables presegmentation when positive: clustering then
	// runs over region mean colors and results are broadcast back to the
	// member pixels.
	Superpixels int
	// RemoveStrayPixels recolors isolated pixels before masks are cut.
	RemoveStrayPixels bool
	// SimplifiedSplit merges near-duplicate palette colors before layers
	// are cut.
	SimplifiedSplit bool
	// MergeThreshold is the maximum complete-linkage CIE76 distance
	// allowed for a simplification merge.
	MergeThreshold float64
	// MinPreservationRatio bounds how far simplification may shrink the
	// palette: at least ceil(paletteSize*ratio) colors survive.
	MinPreservationRatio float64
	// Seed drives centroid seeding and empty-cluster reseeding.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		ColorCount:           8,
		Algorithm:            KMeans,
		ColorSpace:           OKLab,
		Initializer:          InitKMeansPlusPlus,
		Iterations:           32,
		MergeThreshold:       2.5,
		MinPreservationRatio: 0.5,
		Seed:                 1,
	}
}

func (o Options) validate() error {
	if o.ColorCount < 1 {
		return fmt.Errorf("%w: color count %d", ErrInvalidConfiguration, o.ColorCount)
	}
	switch o.Algorithm {
	case KMeans, MedianCut:
	default:
		return fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfiguration, int(o.Algorithm))
	}
	switch o.ColorSpace {
	case OKLab, CIELab:
	default:
		return fmt.Errorf("%w: unknown color space %d", ErrInvalidConfiguration, int(o.ColorSpace))
	}
	switch o.Initializer {
	case InitKMeansPlusPlus, InitMedianCut:
	default:
		return fmt.Errorf("%w: unknown initializer %d", ErrInvalidConfiguration, int(o.Initializer))
	}
	if o.Iterations < 1 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfiguration, o.Iterations)
	}
	return nil
}

// PathAlgorithm selects how a chunk is turned into point paths.
type PathAlgorithm int

const (
	PathDFS PathAlgorithm = iota
	PathEdgeFollow
)

func (a PathAlgorithm) String() string {
	switch a {
	case PathDFS:
		return "dfs"
	case PathEdgeFollow:
		return "edgefollow"
	default:
		return fmt.Sprintf("pathalgorithm(%d)", int(a))
	}
}

// PathOptions configures path generation and action-set optimization.
type PathOptions struct {
	Algorithm PathAlgorithm
	// SmallSetThreshold is the maximum length of a set that the
	// optimizer may merge with its neighbors.
	SmallSetThreshold int
	// ClusterDistance is the centroid proximity under which small sets
	// join the same merge cluster (transitively).
	ClusterDistance float64
	// MinClusterSize is the member count a cluster needs before its sets
	// are merged.
	MinClusterSize int
	// MaxConnectedDistance bounds point adjacency when a merged pool is
	// re-split into connected components. 1.5 gives 8-connectivity.
	MaxConnectedDistance float64
	// SpatialOrdering reorders the final sets into a serpentine sweep of
	// horizontal bands.
	SpatialOrdering bool
}

func DefaultPathOptions() PathOptions {
	return PathOptions{
		Algorithm:            PathDFS,
		SmallSetThreshold:    10,
		ClusterDistance:      25,
		MinClusterSize:       3,
		MaxConnectedDistance: 1.5,
		SpatialOrdering:      true,
	}
}
