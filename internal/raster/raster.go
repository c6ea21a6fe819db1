package raster

// Foreground is the value written for set pixels in binary rasters and for
// active offsets in structuring elements.
const Foreground = 255

// Int is a width×height grid of signed integers.
//
// Pixels are stored row-major. The zero value is an empty 0×0 raster.
type Int struct {
	width  int
	height int
	pix    []int
	max    int
}

// NewInt allocates a zeroed raster. Negative dimensions are treated as zero.
func NewInt(width, height int) *Int {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Int{
		width:  width,
		height: height,
		pix:    make([]int, width*height),
	}
}

// NewIntFrom returns a deep copy of src, including its running maximum.
func NewIntFrom(src *Int) *Int {
	r := &Int{
		width:  src.width,
		height: src.height,
		pix:    make([]int, len(src.pix)),
		max:    src.max,
	}
	copy(r.pix, src.pix)
	return r
}

// Width returns the number of columns.
func (r *Int) Width() int { return r.width }

// Height returns the number of rows.
func (r *Int) Height() int { return r.height }

// Empty reports whether the raster has no pixels.
func (r *Int) Empty() bool { return r.width == 0 || r.height == 0 }

// In reports whether (x, y) lies inside the raster.
func (r *Int) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.width && y < r.height
}

// At returns the value at (x, y), or 0 outside the raster.
func (r *Int) At(x, y int) int {
	if !r.In(x, y) {
		return 0
	}
	return r.pix[y*r.width+x]
}

// Set writes v at (x, y). Writes outside the raster are ignored.
func (r *Int) Set(x, y, v int) {
	if !r.In(x, y) {
		return
	}
	r.pix[y*r.width+x] = v
}

// Inc adds one to the value at (x, y).
func (r *Int) Inc(x, y int) {
	if !r.In(x, y) {
		return
	}
	r.pix[y*r.width+x]++
}

// Row returns the backing slice of row y. Callers may write through it.
func (r *Int) Row(y int) []int {
	return r.pix[y*r.width : (y+1)*r.width]
}

// Max returns the running maximum last stored with SetMax.
func (r *Int) Max() int { return r.max }

// SetMax stores the running maximum.
func (r *Int) SetMax(v int) { r.max = v }

// Fill sets every pixel to v. The running maximum is left unchanged.
func (r *Int) Fill(v int) {
	for i := range r.pix {
		r.pix[i] = v
	}
}

// CountNonZero returns the number of pixels with a non-zero value.
func (r *Int) CountNonZero() int {
	n := 0
	for _, v := range r.pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both rasters have the same shape and pixels.
// The running maximum is not compared.
func (r *Int) Equal(o *Int) bool {
	if r.width != o.width || r.height != o.height {
		return false
	}
	for i, v := range r.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// Float is a width×height grid of float64 values used as filter scratch.
type Float struct {
	width  int
	height int
	pix    []float64
}

// NewFloat allocates a zeroed float raster.
func NewFloat(width, height int) *Float {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Float{
		width:  width,
		height: height,
		pix:    make([]float64, width*height),
	}
}

// Width returns the number of columns.
func (f *Float) Width() int { return f.width }

// Height returns the number of rows.
func (f *Float) Height() int { return f.height }

// At returns the value at (x, y), or 0 outside the raster.
func (f *Float) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return f.pix[y*f.width+x]
}

// Set writes v at (x, y). Writes outside the raster are ignored.
func (f *Float) Set(x, y int, v float64) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = v
}

// Row returns the backing slice of row y.
func (f *Float) Row(y int) []float64 {
	return f.pix[y*f.width : (y+1)*f.width]
}

// Column copies column x into dst, growing it if needed, and returns it.
func (f *Float) Column(x int, dst []float64) []float64 {
	if cap(dst) < f.height {
		dst = make([]float64, f.height)
	}
	dst = dst[:f.height]
	for y := range dst {
		dst[y] = f.pix[y*f.width+x]
	}
	return dst
}

// SetColumn writes src into column x.
func (f *Float) SetColumn(x int, src []float64) {
	for y := 0; y < f.height && y < len(src); y++ {
		f.pix[y*f.width+x] = src[y]
	}
}

// Bool is a width×height grid of flags.
type Bool struct {
	width  int
	height int
	pix    []bool
}

// NewBool allocates a raster with every flag cleared.
func NewBool(width, height int) *Bool {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Bool{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}
}

// At returns the flag at (x, y), or false outside the raster.
func (b *Bool) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.pix[y*b.width+x]
}

// Set writes the flag at (x, y). Writes outside the raster are ignored.
func (b *Bool) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = v
}

// Reset clears every flag.
func (b *Bool) Reset() {
	for i := range b.pix {
		b.pix[i] = false
	}
}
