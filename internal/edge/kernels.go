package edge

import (
	"math"
	"sync"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// kernel is a 3×3 weight table indexed [dx+1][dy+1].
type kernel [3][3]int

// kernelSet groups the kernels of one operator with their shared quotient.
type kernelSet struct {
	kernels  []kernel
	quotient int
}

var (
	sobelKernels = kernelSet{
		kernels: []kernel{
			{{1, 2, 1}, {0, 0, 0}, {-1, -2, -1}},
			{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}},
		},
		quotient: 4,
	}

	prewittKernels = kernelSet{
		kernels: []kernel{
			{{1, 1, 1}, {0, 0, 0}, {-1, -1, -1}},
			{{1, 1, 0}, {1, 0, -1}, {0, -1, -1}},
			{{1, 0, -1}, {1, 0, -1}, {1, 0, -1}},
			{{0, -1, -1}, {1, 0, -1}, {1, 1, 0}},
		},
		quotient: 3,
	}

	kirschKernels = kernelSet{
		kernels: []kernel{
			{{5, 5, 5}, {-3, 0, -3}, {-3, -3, -3}},
			{{5, 5, -3}, {5, 0, -3}, {-3, -3, -3}},
			{{5, -3, -3}, {5, 0, -3}, {5, -3, -3}},
			{{-3, -3, -3}, {5, 0, -3}, {5, 5, -3}},
			{{-3, -3, -3}, {-3, 0, -3}, {5, 5, 5}},
			{{-3, -3, -3}, {-3, 0, 5}, {-3, 5, 5}},
			{{-3, -3, 5}, {-3, 0, 5}, {-3, -3, 5}},
			{{-3, 5, 5}, {-3, 0, 5}, {-3, -3, -3}},
		},
		quotient: 15,
	}

	laplacian4Kernels = kernelSet{
		kernels: []kernel{
			{{0, -1, 0}, {-1, 4, -1}, {0, -1, 0}},
		},
		quotient: 4,
	}

	laplacian8Kernels = kernelSet{
		kernels: []kernel{
			{{-1, -1, -1}, {-1, 8, -1}, {-1, -1, -1}},
		},
		quotient: 8,
	}
)

// apply returns the weighted sum of the 3×3 neighborhood of (x, y) divided by
// quotient. Taps outside src read as 0.
func (k *kernel) apply(src *raster.Int, x, y, quotient int) int {
	sum := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if w := k[i][j]; w != 0 {
				sum += w * src.At(x+i-1, y+j-1)
			}
		}
	}
	return sum / quotient
}

// fill computes every pixel of dst with fn in parallel row bands and stores
// the largest value as the running maximum, starting from 0.
func fill(dst *raster.Int, fn func(x, y int) int) {
	var mu sync.Mutex
	max := 0
	parallel.Line(dst.Height(), func(start, end int) {
		local := 0
		for y := start; y < end; y++ {
			row := dst.Row(y)
			for x := range row {
				v := fn(x, y)
				row[x] = v
				if v > local {
					local = v
				}
			}
		}
		mu.Lock()
		if local > max {
			max = local
		}
		mu.Unlock()
	})
	dst.SetMax(max)
}

func hypot(a, b int) int {
	return int(math.Sqrt(float64(a*a + b*b)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// naive computes backward differences along x and y.
func naive(src *raster.Int) *raster.Int {
	out := raster.NewInt(src.Width(), src.Height())
	fill(out, func(x, y int) int {
		c := src.At(x, y)
		return hypot(c-src.At(x-1, y), c-src.At(x, y-1))
	})
	return out
}

// roberts computes the two diagonal cross differences.
func roberts(src *raster.Int) *raster.Int {
	out := raster.NewInt(src.Width(), src.Height())
	fill(out, func(x, y int) int {
		k1 := src.At(x, y+1) - src.At(x+1, y)
		k2 := src.At(x+1, y+1) - src.At(x, y)
		return hypot(k1, k2)
	})
	return out
}

// euclidean combines the responses of a two-kernel set with the L2 norm.
func euclidean(src *raster.Int, set kernelSet) *raster.Int {
	out := raster.NewInt(src.Width(), src.Height())
	k1, k2 := &set.kernels[0], &set.kernels[1]
	fill(out, func(x, y int) int {
		return hypot(k1.apply(src, x, y, set.quotient), k2.apply(src, x, y, set.quotient))
	})
	return out
}

// strongest keeps the largest absolute response across every kernel in set.
func strongest(src *raster.Int, set kernelSet) *raster.Int {
	out := raster.NewInt(src.Width(), src.Height())
	fill(out, func(x, y int) int {
		best := 0
		for i := range set.kernels {
			if v := abs(set.kernels[i].apply(src, x, y, set.quotient)); v > best {
				best = v
			}
		}
		return best
	})
	return out
}
