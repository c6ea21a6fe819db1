package morphology

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// MaxDimension is the largest accepted element half-width.
const MaxDimension = 100

// Neighborhood names the shape of a structuring element.
type Neighborhood int

const (
	// Connectivity4 is the cross made of the center row and center column.
	Connectivity4 Neighborhood = iota
	// Connectivity8 is the full square.
	Connectivity8
	// Vertical is the center column.
	Vertical
	// Horizontal is the center row.
	Horizontal
	// Connectivity4Up is the center row plus the upper half of the center column.
	Connectivity4Up
	// Connectivity4Down is the center row plus the part of the center column
	// strictly below the center.
	Connectivity4Down
	// Connectivity4Left is the center column plus the left half of the center row.
	Connectivity4Left
	// Connectivity4Right is the center column plus the part of the center row
	// strictly right of the center.
	Connectivity4Right
	// Empty has no active offsets.
	Empty
)

var neighborhoodNames = [...]string{
	Connectivity4:      "connectivity4",
	Connectivity8:      "connectivity8",
	Vertical:           "vertical",
	Horizontal:         "horizontal",
	Connectivity4Up:    "connectivity4_up",
	Connectivity4Down:  "connectivity4_down",
	Connectivity4Left:  "connectivity4_left",
	Connectivity4Right: "connectivity4_right",
	Empty:              "empty",
}

func (n Neighborhood) String() string {
	if !n.Valid() {
		return fmt.Sprintf("neighborhood(%d)", int(n))
	}
	return neighborhoodNames[n]
}

// Valid reports whether n is a declared shape.
func (n Neighborhood) Valid() bool {
	return n >= Connectivity4 && int(n) < len(neighborhoodNames)
}

// ParseNeighborhood converts a name such as "connectivity8" or
// "connectivity4-up" into a Neighborhood.
func ParseNeighborhood(name string) (Neighborhood, error) {
	if i, ok := lookup(neighborhoodNames[:], name); ok {
		return Neighborhood(i), nil
	}
	return 0, fmt.Errorf("%w: unknown neighborhood %q", raster.ErrParameterOutOfRange, name)
}

// Neighborhoods returns every declared shape.
func Neighborhoods() []Neighborhood {
	out := make([]Neighborhood, len(neighborhoodNames))
	for i := range out {
		out[i] = Neighborhood(i)
	}
	return out
}

func lookup(names []string, name string) (int, bool) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for i, n := range names {
		if n == norm {
			return i, true
		}
	}
	return 0, false
}

// Element is an immutable square structuring element of side 2·dimension+1.
// Active cells hold raster.Foreground.
type Element struct {
	dim     int
	mask    *raster.Int
	offsets [][2]int
}

// NewElement builds the element for shape n with the given half-width.
func NewElement(dimension int, n Neighborhood) (*Element, error) {
	if dimension < 0 || dimension > MaxDimension {
		return nil, fmt.Errorf("%w: dimension %d not in 0..%d", raster.ErrParameterOutOfRange, dimension, MaxDimension)
	}
	if !n.Valid() {
		return nil, fmt.Errorf("%w: unknown neighborhood %d", raster.ErrParameterOutOfRange, int(n))
	}

	side := 2*dimension + 1
	mask := raster.NewInt(side, side)
	row := func(from, to int) {
		for x := from; x < to; x++ {
			mask.Set(x, dimension, raster.Foreground)
		}
	}
	col := func(from, to int) {
		for y := from; y < to; y++ {
			mask.Set(dimension, y, raster.Foreground)
		}
	}

	switch n {
	case Connectivity4:
		row(0, side)
		col(0, side)
	case Connectivity8:
		mask.Fill(raster.Foreground)
	case Vertical:
		col(0, side)
	case Horizontal:
		row(0, side)
	case Connectivity4Up:
		row(0, side)
		col(0, dimension+1)
	case Connectivity4Down:
		row(0, side)
		col(dimension+1, side)
	case Connectivity4Left:
		row(0, dimension+1)
		col(0, side)
	case Connectivity4Right:
		row(dimension+1, side)
		col(0, side)
	case Empty:
	}

	return newElementFromMask(dimension, mask), nil
}

func newElementFromMask(dimension int, mask *raster.Int) *Element {
	e := &Element{dim: dimension, mask: mask}
	max := 0
	for y := 0; y < mask.Height(); y++ {
		for x := 0; x < mask.Width(); x++ {
			if mask.At(x, y) != 0 {
				e.offsets = append(e.offsets, [2]int{x - dimension, y - dimension})
				max = raster.Foreground
			}
		}
	}
	mask.SetMax(max)
	return e
}

// Dimension returns the half-width.
func (e *Element) Dimension() int { return e.dim }

// Side returns the width and height of the square mask.
func (e *Element) Side() int { return 2*e.dim + 1 }

// Len returns the number of active offsets.
func (e *Element) Len() int { return len(e.offsets) }

// Active reports whether the offset (dx, dy) from the center is part of e.
func (e *Element) Active(dx, dy int) bool {
	return e.mask.At(dx+e.dim, dy+e.dim) != 0
}

// Mask returns a copy of the square mask.
func (e *Element) Mask() *raster.Int {
	return raster.NewIntFrom(e.mask)
}

// Complement returns the element whose active cells are the inactive cells
// of e inside the same square.
func (e *Element) Complement() *Element {
	side := e.Side()
	mask := raster.NewInt(side, side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if e.mask.At(x, y) == 0 {
				mask.Set(x, y, raster.Foreground)
			}
		}
	}
	return newElementFromMask(e.dim, mask)
}

// Reflect returns the element mirrored through its center.
func (e *Element) Reflect() *Element {
	side := e.Side()
	mask := raster.NewInt(side, side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			mask.Set(side-1-x, side-1-y, e.mask.At(x, y))
		}
	}
	return newElementFromMask(e.dim, mask)
}
