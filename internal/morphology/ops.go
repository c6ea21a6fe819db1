package morphology

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// Dilate returns max over b in se of src(p - b). Taps outside src are skipped.
func Dilate(src *raster.Int, se *Element) *raster.Int {
	out := raster.NewInt(src.Width(), src.Height())
	parallel.Line(src.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			row := out.Row(y)
			for x := range row {
				v := 0
				for _, b := range se.offsets {
					qx, qy := x-b[0], y-b[1]
					if src.In(qx, qy) {
						if s := src.At(qx, qy); s > v {
							v = s
						}
					}
				}
				row[x] = v
			}
		}
	})
	out.SetMax(src.Max())
	return out
}

// Erode returns min over b in se of src(p + b). Taps outside src are skipped,
// and a pixel with no tap left keeps raster.Foreground.
func Erode(src *raster.Int, se *Element) *raster.Int {
	out := raster.NewInt(src.Width(), src.Height())
	parallel.Line(src.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			row := out.Row(y)
			for x := range row {
				v := raster.Foreground
				for _, b := range se.offsets {
					qx, qy := x+b[0], y+b[1]
					if src.In(qx, qy) {
						if s := src.At(qx, qy); s < v {
							v = s
						}
					}
				}
				row[x] = v
			}
		}
	})
	out.SetMax(raster.Foreground)
	return out
}

// Negative returns Foreground - v for every pixel.
func Negative(src *raster.Int) *raster.Int {
	return combine(src, src, func(a, _ int) int { return raster.Foreground - a })
}

// Intersection returns the pixelwise minimum.
func Intersection(a, b *raster.Int) *raster.Int {
	return combine(a, b, func(x, y int) int {
		if x < y {
			return x
		}
		return y
	})
}

// Difference returns a - b saturated at 0.
func Difference(a, b *raster.Int) *raster.Int {
	return combine(a, b, func(x, y int) int {
		if d := x - y; d > 0 {
			return d
		}
		return 0
	})
}

func combine(a, b *raster.Int, fn func(x, y int) int) *raster.Int {
	out := raster.NewInt(a.Width(), a.Height())
	for y := 0; y < a.Height(); y++ {
		row := out.Row(y)
		ra := a.Row(y)
		for x := range row {
			row[x] = fn(ra[x], b.At(x, y))
		}
	}
	out.SetMax(raster.Foreground)
	return out
}

// Open is erosion followed by dilation.
func Open(src *raster.Int, se *Element) *raster.Int {
	return Dilate(Erode(src, se), se)
}

// Close is dilation followed by erosion.
func Close(src *raster.Int, se *Element) *raster.Int {
	return Erode(Dilate(src, se), se)
}

// HitOrMissTransform keeps the pixels whose neighborhood matches se on the
// foreground and the complement of se on the background.
func HitOrMissTransform(src *raster.Int, se *Element) *raster.Int {
	fg := Erode(src, se)
	bg := Erode(Negative(src), se.Complement())
	return Intersection(fg, bg)
}
