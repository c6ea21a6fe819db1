package morphology

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// grid builds a binary raster from rows where '#' is foreground.
func grid(rows ...string) *raster.Int {
	r := raster.NewInt(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				r.Set(x, y, raster.Foreground)
			}
		}
	}
	r.SetMax(raster.Foreground)
	return r
}

// render converts a binary raster back to rows for readable failures.
func render(r *raster.Int) []string {
	out := make([]string, r.Height())
	for y := range out {
		b := make([]byte, r.Width())
		for x := range b {
			b[x] = '.'
			if r.At(x, y) != 0 {
				b[x] = '#'
			}
		}
		out[y] = string(b)
	}
	return out
}

func assertRaster(t *testing.T, got *raster.Int, want ...string) {
	t.Helper()
	if !got.Equal(grid(want...)) {
		t.Errorf("raster mismatch\n got: %q\nwant: %q", render(got), want)
	}
}

func TestNewElement_Shapes(t *testing.T) {
	tests := []struct {
		n    Neighborhood
		want []string
	}{
		{Connectivity4, []string{".#.", "###", ".#."}},
		{Connectivity8, []string{"###", "###", "###"}},
		{Vertical, []string{".#.", ".#.", ".#."}},
		{Horizontal, []string{"...", "###", "..."}},
		{Connectivity4Up, []string{".#.", "###", "..."}},
		{Connectivity4Down, []string{"...", "###", ".#."}},
		{Connectivity4Left, []string{".#.", "##.", ".#."}},
		{Connectivity4Right, []string{".#.", ".##", ".#."}},
		{Empty, []string{"...", "...", "..."}},
	}

	for _, tt := range tests {
		t.Run(tt.n.String(), func(t *testing.T) {
			se, err := NewElement(1, tt.n)
			if err != nil {
				t.Fatalf("NewElement failed: %v", err)
			}
			if se.Side() != 3 {
				t.Errorf("Side = %d, want 3", se.Side())
			}
			assertRaster(t, se.Mask(), tt.want...)
		})
	}
}

func TestNewElement_Dimension2(t *testing.T) {
	se, err := NewElement(2, Connectivity4Down)
	if err != nil {
		t.Fatalf("NewElement failed: %v", err)
	}
	assertRaster(t, se.Mask(),
		".....",
		".....",
		"#####",
		"..#..",
		"..#..",
	)
	if se.Len() != 7 {
		t.Errorf("Len = %d, want 7", se.Len())
	}
	if !se.Active(0, 2) || se.Active(0, -1) {
		t.Error("Active offsets do not match the mask")
	}
}

func TestNewElement_DimensionZero(t *testing.T) {
	for _, n := range Neighborhoods() {
		se, err := NewElement(0, n)
		if err != nil {
			t.Fatalf("%s: NewElement failed: %v", n, err)
		}
		want := 1
		if n == Empty {
			want = 0
		}
		if se.Len() != want {
			t.Errorf("%s: Len = %d, want %d", n, se.Len(), want)
		}
	}
}

func TestNewElement_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		n    Neighborhood
	}{
		{"negative dimension", -1, Connectivity8},
		{"dimension too large", MaxDimension + 1, Connectivity8},
		{"unknown neighborhood", 1, Neighborhood(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewElement(tt.dim, tt.n)
			if !errors.Is(err, raster.ErrParameterOutOfRange) {
				t.Errorf("err = %v, want ErrParameterOutOfRange", err)
			}
		})
	}
}

func TestElement_Complement(t *testing.T) {
	se, _ := NewElement(1, Connectivity4)
	assertRaster(t, se.Complement().Mask(), "#.#", "...", "#.#")

	full, _ := NewElement(1, Connectivity8)
	if full.Complement().Len() != 0 {
		t.Error("complement of the full square should be empty")
	}
}

func TestElement_Reflect(t *testing.T) {
	pairs := [][2]Neighborhood{
		{Connectivity4Up, Connectivity4Down},
		{Connectivity4Left, Connectivity4Right},
		{Connectivity4, Connectivity4},
		{Vertical, Vertical},
	}

	for _, p := range pairs {
		a, _ := NewElement(2, p[0])
		b, _ := NewElement(2, p[1])
		if !a.Reflect().Mask().Equal(b.Mask()) {
			t.Errorf("reflection of %s is not %s:\n%q", p[0], p[1], render(a.Reflect().Mask()))
		}
	}
}

func TestParseNeighborhood(t *testing.T) {
	tests := []struct {
		in      string
		want    Neighborhood
		wantErr bool
	}{
		{"connectivity8", Connectivity8, false},
		{"Connectivity4-Up", Connectivity4Up, false},
		{"connectivity4 right", Connectivity4Right, false},
		{"empty", Empty, false},
		{"diagonal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNeighborhood(tt.in)
			if tt.wantErr {
				if !errors.Is(err, raster.ErrParameterOutOfRange) {
					t.Errorf("err = %v, want ErrParameterOutOfRange", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("got %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}
