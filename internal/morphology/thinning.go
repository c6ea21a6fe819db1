package morphology

import (
	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// thinRing lists the 8 neighbors in ring order, starting below the pixel and
// turning toward +x.
var thinRing = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// Thin runs iterations rounds of two-pass thinning on a copy of src and
// reports whether any pixel was removed. Non-zero pixels are foreground.
func Thin(src *raster.Int, iterations int) (*raster.Int, bool) {
	img := raster.NewIntFrom(src)
	marks := raster.NewBool(img.Width(), img.Height())
	changed := false

	for i := 0; i < iterations; i++ {
		for pass := 1; pass <= 2; pass++ {
			marks.Reset()
			marked := false
			for y := 0; y < img.Height(); y++ {
				for x := 0; x < img.Width(); x++ {
					if img.At(x, y) != 0 && removable(img, x, y, pass) {
						marks.Set(x, y, true)
						marked = true
					}
				}
			}
			if !marked {
				continue
			}
			changed = true
			for y := 0; y < img.Height(); y++ {
				for x := 0; x < img.Width(); x++ {
					if marks.At(x, y) {
						img.Set(x, y, 0)
					}
				}
			}
		}
	}
	return img, changed
}

func removable(img *raster.Int, x, y, pass int) bool {
	var v [8]bool
	n := 0
	for i, d := range thinRing {
		if img.At(x+d[0], y+d[1]) != 0 {
			v[i] = true
			n++
		}
	}
	if n < 2 || n > 6 {
		return false
	}

	transitions := 0
	for i := 0; i < 8; i++ {
		if v[i] && !v[(i+1)%8] {
			transitions++
		}
	}
	if transitions != 1 {
		return false
	}

	if pass == 1 {
		return (!v[0] || !v[2] || !v[4]) && (!v[2] || !v[4] || !v[6])
	}
	return (!v[0] || !v[2] || !v[6]) && (!v[0] || !v[4] || !v[6])
}

// Skeletonize thins src one round at a time, re-binarizing between rounds,
// until a round removes nothing. It returns the skeleton and the number of
// rounds run, including the final one that made no change.
func Skeletonize(src *raster.Int) (*raster.Int, int) {
	img := raster.Threshold(src)
	rounds := 0
	for {
		next, changed := Thin(img, 1)
		img = raster.Threshold(next)
		rounds++
		if !changed {
			return img, rounds
		}
	}
}
