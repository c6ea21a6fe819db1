package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// Colormap selects how scalar rasters are rendered.
type Colormap string

const (
	// ColormapGray sets every channel to the value clamped to 0..255.
	ColormapGray Colormap = "gray"

	// ColormapHeat maps values from 0 to the raster maximum onto a hue ramp
	// from blue to red. Zero stays black.
	ColormapHeat Colormap = "heat"
)

// ParseColormap accepts "gray", "grey" and "heat". An empty name selects gray.
func ParseColormap(name string) (Colormap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gray", "grey":
		return ColormapGray, nil
	case "heat":
		return ColormapHeat, nil
	}
	return "", fmt.Errorf("%w: unknown colormap %q", raster.ErrParameterOutOfRange, name)
}

// Render draws r with the given colormap.
func Render(r *raster.Int, cm Colormap) image.Image {
	if cm != ColormapHeat {
		return raster.ToImage(r)
	}

	out := image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
	max := r.Max()
	for y := 0; y < r.Height(); y++ {
		for x, v := range r.Row(y) {
			out.SetNRGBA(x, y, heat(v, max))
		}
	}
	return out
}

// heat maps v in (0, max] to a hue between 240 (blue) and 0 (red).
func heat(v, max int) color.NRGBA {
	if v <= 0 || max <= 0 {
		return color.NRGBA{A: 255}
	}
	t := float64(v) / float64(max)
	if t > 1 {
		t = 1
	}
	c := colorful.Hsv(240*(1-t), 1, 0.25+0.75*t)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
