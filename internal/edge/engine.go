package edge

import (
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"go.uber.org/multierr"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// Params selects the operator and the thresholding applied by Detect.
type Params struct {
	// Kind is the gradient operator.
	Kind Kind

	// ThresholdMin drops normalized responses below it (0-254).
	ThresholdMin int

	// ThresholdMax keeps normalized responses at or above it (1-255). Responses
	// between the two thresholds survive only next to a raw response >= ThresholdMax.
	ThresholdMax int

	// Monochrome forces every surviving pixel to 255.
	Monochrome bool

	// Alpha is the Deriche filter width. Ignored by the other kinds.
	Alpha float64
}

// Validate checks every field and reports all violations at once.
// Each violation wraps raster.ErrParameterOutOfRange.
func (p Params) Validate() error {
	var err error
	if !p.Kind.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: unknown kind %d", raster.ErrParameterOutOfRange, int(p.Kind)))
	}
	if p.ThresholdMin < 0 || p.ThresholdMin > 254 {
		err = multierr.Append(err, fmt.Errorf("%w: threshold_min %d not in 0..254", raster.ErrParameterOutOfRange, p.ThresholdMin))
	}
	if p.ThresholdMax < 1 || p.ThresholdMax > 255 {
		err = multierr.Append(err, fmt.Errorf("%w: threshold_max %d not in 1..255", raster.ErrParameterOutOfRange, p.ThresholdMax))
	}
	if p.ThresholdMin >= p.ThresholdMax {
		err = multierr.Append(err, fmt.Errorf("%w: threshold_min %d must be below threshold_max %d",
			raster.ErrParameterOutOfRange, p.ThresholdMin, p.ThresholdMax))
	}
	if math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) || p.Alpha < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: alpha %v must be a finite value >= 0", raster.ErrParameterOutOfRange, p.Alpha))
	}
	return err
}

// Result is the outcome of one Detect call.
type Result struct {
	// Output holds the thresholded intensities, 0..255.
	Output *raster.Int

	// Edges is the number of non-zero pixels in Output.
	Edges int

	// KernelMax is the running maximum of the kernel pass used for normalization.
	KernelMax int

	// Cached is true when the kernel pass was reused from a previous call.
	Cached bool
}

// Image renders Output as an opaque grayscale image.
func (r *Result) Image() *image.NRGBA {
	return raster.ToImage(r.Output)
}

// memoKey identifies a kernel pass. Alpha is zero for kinds that ignore it.
type memoKey struct {
	kind  Kind
	alpha float64
}

// Engine runs edge detection on one source image.
//
// The grayscale projection is computed on first use. The last kernel pass is
// kept and reused while the kind and alpha stay the same, so sweeping
// thresholds is cheap. Engine is safe for concurrent use.
type Engine struct {
	src     image.Image
	workers int

	mu     sync.Mutex
	gray   *raster.Int
	kernel *raster.Int
	key    memoKey
	primed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the goroutines used by the Deriche line filters.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// NewEngine binds an engine to img. It returns raster.ErrInvalidSource when
// img is nil or has zero width or height.
func NewEngine(img image.Image, opts ...Option) (*Engine, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, raster.ErrInvalidSource
	}
	e := &Engine{src: img, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Detect runs the kernel pass selected by p.Kind, reusing the previous pass
// when kind and alpha are unchanged, then thresholds it.
//
// Errors:
//   - raster.ErrParameterOutOfRange (possibly several, combined) for bad params
//   - ErrNotImplemented for LaplacianDoG and DericheLaplacian; the previous
//     kernel pass stays cached
//   - ErrDegenerateGradient when the kernel pass has a zero maximum
func (e *Engine) Detect(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.Kind.Implemented() {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, p.Kind)
	}

	key := memoKey{kind: p.Kind}
	if p.Kind.UsesAlpha() {
		key.alpha = p.Alpha
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gray == nil {
		e.gray = raster.Luma(e.src)
	}

	cached := e.primed && e.key == key
	if !cached {
		k, err := e.runKernel(key)
		if err != nil {
			return nil, err
		}
		e.kernel = k
		e.key = key
		e.primed = true
	}

	out, err := threshold(e.kernel, p.ThresholdMin, p.ThresholdMax, p.Monochrome)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Kind, err)
	}

	return &Result{
		Output:    out,
		Edges:     out.CountNonZero(),
		KernelMax: e.kernel.Max(),
		Cached:    cached,
	}, nil
}

func (e *Engine) runKernel(key memoKey) (*raster.Int, error) {
	switch key.kind {
	case Naive:
		return naive(e.gray), nil
	case Roberts:
		return roberts(e.gray), nil
	case Sobel:
		return euclidean(e.gray, sobelKernels), nil
	case Prewitt:
		return strongest(e.gray, prewittKernels), nil
	case Kirsch:
		return strongest(e.gray, kirschKernels), nil
	case Laplacian4:
		return strongest(e.gray, laplacian4Kernels), nil
	case Laplacian8:
		return strongest(e.gray, laplacian8Kernels), nil
	case DericheSmooth:
		return dericheSmooth(e.gray, key.alpha, e.workers)
	case DericheDerivative:
		return dericheDerivative(e.gray, key.alpha, e.workers)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, key.kind)
	}
}
