package morphology

import (
	"fmt"
	"image"
	"sync"

	"go.uber.org/multierr"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// Result is the outcome of one Apply call.
type Result struct {
	// Output is the binary (or gradient) raster, 0..255.
	Output *raster.Int

	// Foreground is the number of non-zero pixels in Output.
	Foreground int

	// Changed is set by Thinning and Skeletonizing when any pixel was removed.
	Changed bool

	// Passes is the number of thinning rounds run by Skeletonizing.
	Passes int
}

// Image renders Output as an opaque grayscale image.
func (r *Result) Image() *image.NRGBA {
	return raster.ToImage(r.Output)
}

// Engine runs morphological operations on the binarized form of one image.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	src image.Image

	once   sync.Once
	binary *raster.Int
}

// NewEngine binds an engine to img. It returns raster.ErrInvalidSource when
// img is nil or has zero width or height.
func NewEngine(img image.Image) (*Engine, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, raster.ErrInvalidSource
	}
	return &Engine{src: img}, nil
}

func (e *Engine) source() *raster.Int {
	e.once.Do(func() {
		e.binary = raster.Binarize(e.src)
	})
	return e.binary
}

// Apply runs op with a structuring element of the given half-width and
// shape. Thinning uses dimension as its iteration count and Skeletonizing
// ignores it.
//
// Invalid arguments are all reported together, each wrapping
// raster.ErrParameterOutOfRange.
func (e *Engine) Apply(op Operation, dimension int, n Neighborhood) (*Result, error) {
	var errs error
	if !op.Valid() {
		errs = multierr.Append(errs, fmt.Errorf("%w: unknown operation %d", raster.ErrParameterOutOfRange, int(op)))
	}
	se, err := NewElement(dimension, n)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, errs
	}

	src := e.source()
	res := &Result{}

	switch op {
	case Dilation:
		res.Output = Dilate(src, se)
	case Erosion:
		res.Output = Erode(src, se)
	case Opening:
		res.Output = Open(src, se)
	case Closing:
		res.Output = Close(src, se)
	case InteriorGradient:
		res.Output = Difference(src, Erode(src, se))
	case ExteriorGradient:
		res.Output = Difference(Dilate(src, se), src)
	case MorphologicalGradient:
		res.Output = Difference(Dilate(src, se), Erode(src, se))
	case HitOrMiss:
		res.Output = HitOrMissTransform(src, se)
	case Thinning:
		res.Output, res.Changed = Thin(src, dimension)
	case Skeletonizing:
		res.Output, res.Passes = Skeletonize(src)
		res.Changed = res.Passes > 1
	}

	res.Foreground = res.Output.CountNonZero()
	return res, nil
}
