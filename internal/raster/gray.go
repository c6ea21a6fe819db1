package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
)

// binarizeLevel is the luma value at and above which a pixel is foreground.
const binarizeLevel = 128

// Luma projects img to grayscale with integer BT.601 weights.
//
// The returned raster's running maximum is the largest intensity found.
// A nil image yields an empty raster.
func Luma(img image.Image) *Int {
	if img == nil {
		return NewInt(0, 0)
	}
	src := clone.AsRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := NewInt(w, h)

	max := 0
	for y := 0; y < h; y++ {
		row := out.Row(y)
		pos := y * src.Stride
		for x := 0; x < w; x++ {
			r := int(src.Pix[pos])
			g := int(src.Pix[pos+1])
			b := int(src.Pix[pos+2])
			v := (299*r + 587*g + 114*b) / 1000
			row[x] = v
			if v > max {
				max = v
			}
			pos += 4
		}
	}
	out.SetMax(max)
	return out
}

// Binarize projects img to grayscale and splits it into 0 and Foreground.
func Binarize(img image.Image) *Int {
	return Threshold(Luma(img))
}

// Threshold returns a copy of r where values below 128 become 0 and all
// others become Foreground.
func Threshold(r *Int) *Int {
	out := NewInt(r.Width(), r.Height())
	max := 0
	for i, v := range r.pix {
		if v >= binarizeLevel {
			out.pix[i] = Foreground
			max = Foreground
		}
	}
	out.SetMax(max)
	return out
}

// Clamp8 limits v to the 0..255 range.
func Clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ToImage renders r as an opaque image where every channel equals the
// clamped pixel value.
func ToImage(r *Int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
	for y := 0; y < r.Height(); y++ {
		row := r.Row(y)
		for x, v := range row {
			c := uint8(Clamp8(v))
			img.SetNRGBA(x, y, color.NRGBA{R: c, G: c, B: c, A: 255})
		}
	}
	return img
}
