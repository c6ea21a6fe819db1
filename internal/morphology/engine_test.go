package morphology

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"go.uber.org/multierr"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// imageFromGrid renders rows as a grayscale image: '#' white, anything else
// a dark gray that binarizes to background.
func imageFromGrid(rows ...string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			v := uint8(60)
			if c == '#' {
				v = 230
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestNewEngine_InvalidSource(t *testing.T) {
	if _, err := NewEngine(nil); !errors.Is(err, raster.ErrInvalidSource) {
		t.Errorf("nil image: err = %v", err)
	}
	if _, err := NewEngine(image.NewRGBA(image.Rect(0, 0, 4, 0))); !errors.Is(err, raster.ErrInvalidSource) {
		t.Errorf("empty image: err = %v", err)
	}
}

func TestApply_ErosionOfHole(t *testing.T) {
	e, err := NewEngine(imageFromGrid("###", "#.#", "###"))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	res, err := e.Apply(Erosion, 1, Connectivity8)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Foreground != 0 {
		t.Errorf("Foreground = %d, want 0", res.Foreground)
	}
}

func TestApply_AllOperations(t *testing.T) {
	e, _ := NewEngine(imageFromGrid(blockGrid()...))

	tests := []struct {
		op             Operation
		wantForeground int
		wantChanged    bool
	}{
		{Dilation, 63, false},
		{Erosion, 15, false},
		{Opening, 35, false},
		{Closing, 63, false},
		{InteriorGradient, 20, false},
		{ExteriorGradient, 28, false},
		{MorphologicalGradient, 48, false},
		{HitOrMiss, 15, false},
		{Thinning, 14, true},
		{Skeletonizing, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			res, err := e.Apply(tt.op, 1, Connectivity8)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if res.Foreground != tt.wantForeground {
				t.Errorf("Foreground = %d, want %d\n%q", res.Foreground, tt.wantForeground, render(res.Output))
			}
			if res.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", res.Changed, tt.wantChanged)
			}
			img := res.Image()
			if img.Bounds().Dx() != 9 || img.Bounds().Dy() != 7 {
				t.Errorf("image bounds = %v", img.Bounds())
			}
		})
	}
}

func TestApply_SkeletonPasses(t *testing.T) {
	e, _ := NewEngine(imageFromGrid(blockGrid()...))
	res, err := e.Apply(Skeletonizing, 50, Connectivity4)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Passes != 3 {
		t.Errorf("Passes = %d, want 3", res.Passes)
	}
}

func TestApply_SourceNotModified(t *testing.T) {
	e, _ := NewEngine(imageFromGrid(blockGrid()...))

	first, _ := e.Apply(Dilation, 0, Connectivity4)
	if _, err := e.Apply(Skeletonizing, 1, Connectivity8); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	again, _ := e.Apply(Dilation, 0, Connectivity4)
	if !first.Output.Equal(again.Output) {
		t.Error("a previous call changed the engine's source raster")
	}
}

func TestApply_InvalidParameters(t *testing.T) {
	e, _ := NewEngine(imageFromGrid("#"))

	_, err := e.Apply(Operation(99), -1, Connectivity8)
	if !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Fatalf("err = %v, want ErrParameterOutOfRange", err)
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}

	_, err = e.Apply(Erosion, 1, Neighborhood(-3))
	if !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Errorf("err = %v, want ErrParameterOutOfRange", err)
	}
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		got, err := ParseOperation(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOperation(%q) = %v, %v", op.String(), got, err)
		}
	}
	if op, err := ParseOperation("Hit-Or-Miss"); err != nil || op != HitOrMiss {
		t.Errorf("ParseOperation(Hit-Or-Miss) = %v, %v", op, err)
	}
	if _, err := ParseOperation("tophat"); !errors.Is(err, raster.ErrParameterOutOfRange) {
		t.Errorf("err = %v, want ErrParameterOutOfRange", err)
	}
}
