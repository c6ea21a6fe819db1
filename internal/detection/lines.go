package detection

import (
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// DefaultMaxCells bounds the accumulator size when no limit is configured.
const DefaultMaxCells = 1 << 22

// Peak is the accumulator cell with the most votes.
type Peak struct {
	// A is the slope of the line y = A*x + B.
	A int `json:"a"`

	// B is the intercept.
	B int `json:"b"`

	// Votes is the number of foreground pixels on the line.
	Votes int `json:"votes"`
}

// Accumulator is the vote space of the slope/intercept transform.
//
// Column i holds slope AMin+i and row j holds intercept BMin+j.
type Accumulator struct {
	Votes *raster.Int
	AMin  int
	AMax  int
	BMin  int
	BMax  int
}

// At returns the votes for the line y = a*x + b, or 0 outside the space.
func (acc *Accumulator) At(a, b int) int {
	return acc.Votes.At(a-acc.AMin, b-acc.BMin)
}

// VoteResult is the outcome of one Vote call.
type VoteResult struct {
	Accumulator *Accumulator

	// Peak is nil when the source has no foreground pixel.
	Peak *Peak

	// Voters is the number of foreground pixels that voted.
	Voters int
}

// Image renders the accumulator with every channel set to the clamped vote count.
func (r *VoteResult) Image() *image.NRGBA {
	return raster.ToImage(r.Accumulator.Votes)
}

// LineVoter runs the slope/intercept line transform on one image.
type LineVoter struct {
	src      image.Image
	workers  int
	maxCells int64
}

// VoterOption configures a LineVoter.
type VoterOption func(*LineVoter)

// WithWorkers sets the number of goroutines that share the slope range.
func WithWorkers(n int) VoterOption {
	return func(v *LineVoter) {
		if n >= 1 {
			v.workers = n
		}
	}
}

// WithMaxCells sets the accumulator size limit. Values below 1 keep the default.
func WithMaxCells(n int64) VoterOption {
	return func(v *LineVoter) {
		if n >= 1 {
			v.maxCells = n
		}
	}
}

// NewLineVoter binds a voter to img. It returns raster.ErrInvalidSource when
// img is nil or has zero width or height.
func NewLineVoter(img image.Image, opts ...VoterOption) (*LineVoter, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, raster.ErrInvalidSource
	}
	v := &LineVoter{src: img, workers: runtime.NumCPU(), maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// AccumulatorCells returns the number of cells needed for a width×height source.
func AccumulatorCells(width, height int) int64 {
	w, h := int64(width), int64(height)
	aRange := 3*h + 2
	bRange := h*w + (2*h+1)*(w-1)
	return aRange * bRange
}

// Vote binarizes the source and lets every foreground pixel (x, y) vote for
// each line y = a*x + b through it, with a in [-h, 2h+1].
//
// The peak is the first cell with the highest count in slope-major,
// intercept-minor order.
func (v *LineVoter) Vote() (*VoteResult, error) {
	b := v.src.Bounds()
	w, h := b.Dx(), b.Dy()

	if cells := AccumulatorCells(w, h); cells > v.maxCells {
		return nil, fmt.Errorf("%w: %dx%d source needs %d cells, limit is %d",
			ErrAccumulatorTooLarge, w, h, cells, v.maxCells)
	}

	bin := raster.Binarize(v.src)
	var points [][2]int
	for y := 0; y < h; y++ {
		for x, p := range bin.Row(y) {
			if p != 0 {
				points = append(points, [2]int{x, y})
			}
		}
	}

	acc := &Accumulator{
		AMin: -h,
		AMax: 2*h + 1,
		BMin: -(2*h + 1) * (w - 1),
		BMax: h*w - 1,
	}
	aRange := acc.AMax - acc.AMin + 1
	acc.Votes = raster.NewInt(aRange, acc.BMax-acc.BMin+1)

	// Each worker owns a contiguous run of slopes, i.e. whole columns.
	var g errgroup.Group
	for _, span := range slopeSpans(aRange, v.workers) {
		span := span
		g.Go(func() error {
			for _, p := range points {
				for i := span[0]; i < span[1]; i++ {
					a := acc.AMin + i
					acc.Votes.Inc(i, p[1]-a*p[0]-acc.BMin)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &VoteResult{Accumulator: acc, Voters: len(points)}
	if peak := findPeak(acc); peak.Votes > 0 {
		res.Peak = &peak
	}
	acc.Votes.SetMax(0)
	if res.Peak != nil {
		acc.Votes.SetMax(res.Peak.Votes)
	}
	return res, nil
}

func findPeak(acc *Accumulator) Peak {
	best := Peak{A: acc.AMin, B: acc.BMin}
	votes := acc.Votes
	for i := 0; i < votes.Width(); i++ {
		for j := 0; j < votes.Height(); j++ {
			if n := votes.At(i, j); n > best.Votes {
				best = Peak{A: acc.AMin + i, B: acc.BMin + j, Votes: n}
			}
		}
	}
	return best
}

// slopeSpans splits n slope columns into at most workers [start, end) runs.
func slopeSpans(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers
	spans := make([][2]int, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}
