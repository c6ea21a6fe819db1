package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Downscale shrinks img so neither side exceeds maxDimension, keeping the
// aspect ratio. Images already within bounds, and maxDimension values below 1,
// return img unchanged. The second result is the applied scale factor.
func Downscale(img image.Image, maxDimension int) (image.Image, float64) {
	b := img.Bounds()
	if maxDimension < 1 || (b.Dx() <= maxDimension && b.Dy() <= maxDimension) {
		return img, 1
	}

	out := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	scale := float64(out.Bounds().Dx()) / float64(b.Dx())
	return out, scale
}
