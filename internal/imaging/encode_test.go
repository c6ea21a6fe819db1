package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

func TestEncodePNG(t *testing.T) {
	src := createInMemoryImage(10, 6, color.RGBA{0, 128, 255, 255})

	res, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if res.Width != 10 || res.Height != 6 {
		t.Errorf("dimensions: got %dx%d, want 10x6", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType = %s, want image/png", res.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	r, g, b, _ := decoded.At(3, 3).RGBA()
	if r>>8 != 0 || g>>8 != 128 || b>>8 != 255 {
		t.Errorf("pixel = (%d,%d,%d), want (0,128,255)", r>>8, g>>8, b>>8)
	}
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name          string
		w, h, max     int
		wantW, wantH  int
		wantUnchanged bool
	}{
		{"within bounds", 40, 30, 64, 40, 30, true},
		{"disabled", 400, 300, 0, 400, 300, true},
		{"landscape", 200, 100, 50, 50, 25, false},
		{"portrait", 60, 120, 30, 15, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := createInMemoryImage(tt.w, tt.h, color.White)
			out, scale := Downscale(src, tt.max)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if tt.wantUnchanged {
				if out != image.Image(src) || scale != 1 {
					t.Errorf("expected the source back with scale 1, got scale %v", scale)
				}
			} else if scale >= 1 {
				t.Errorf("scale = %v, want < 1", scale)
			}
		})
	}
}

func TestParseColormap(t *testing.T) {
	tests := []struct {
		in      string
		want    Colormap
		wantErr bool
	}{
		{"", ColormapGray, false},
		{"gray", ColormapGray, false},
		{"Grey", ColormapGray, false},
		{"heat", ColormapHeat, false},
		{"viridis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColormap(tt.in)
			if tt.wantErr {
				if !errors.Is(err, raster.ErrParameterOutOfRange) {
					t.Errorf("err = %v, want ErrParameterOutOfRange", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("got %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	r := raster.NewInt(3, 1)
	r.Set(1, 0, 5)
	r.Set(2, 0, 10)
	r.SetMax(10)

	t.Run("gray", func(t *testing.T) {
		img := Render(r, ColormapGray)
		got := color.NRGBAModel.Convert(img.At(2, 0)).(color.NRGBA)
		if got.R != 10 || got.G != 10 || got.B != 10 {
			t.Errorf("pixel = %v, want gray 10", got)
		}
	})

	t.Run("heat", func(t *testing.T) {
		img := Render(r, ColormapHeat)
		zero := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
		if zero.R != 0 || zero.G != 0 || zero.B != 0 || zero.A != 255 {
			t.Errorf("zero pixel = %v, want opaque black", zero)
		}
		hot := color.NRGBAModel.Convert(img.At(2, 0)).(color.NRGBA)
		if hot.R != 255 || hot.G != 0 || hot.B != 0 {
			t.Errorf("max pixel = %v, want red", hot)
		}
		mid := color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA)
		if mid == hot || mid == zero {
			t.Errorf("mid pixel = %v should differ from both ends", mid)
		}
	})
}
