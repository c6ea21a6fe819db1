package edge

import (
	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

var ring = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// threshold normalizes src to 0..255 and applies hysteresis.
//
// A normalized value below min is dropped. A value in [min, max) survives only
// when one of its 8 neighbors in the raw, un-normalized raster reaches max.
// Values at or above max always survive.
func threshold(src *raster.Int, min, max int, monochrome bool) (*raster.Int, error) {
	peak := src.Max()
	if peak == 0 {
		return nil, ErrDegenerateGradient
	}

	out := raster.NewInt(src.Width(), src.Height())
	fill(out, func(x, y int) int {
		g := src.At(x, y) * 255 / peak
		switch {
		case g < min:
			g = 0
		case g < max:
			if !strongNeighbor(src, x, y, max) {
				g = 0
			}
		}
		if monochrome && g != 0 {
			g = 255
		}
		return raster.Clamp8(g)
	})
	return out, nil
}

func strongNeighbor(src *raster.Int, x, y, level int) bool {
	for _, d := range ring {
		if src.At(x+d[0], y+d[1]) >= level {
			return true
		}
	}
	return false
}
