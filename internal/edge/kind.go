package edge

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// Kind selects the gradient operator applied by Detect.
type Kind int

const (
	// Naive uses backward differences along x and y.
	Naive Kind = iota
	// Roberts uses the two diagonal cross differences.
	Roberts
	// Sobel uses two 3×3 kernels combined with the Euclidean norm.
	Sobel
	// Prewitt uses four 3×3 kernels and keeps the strongest response.
	Prewitt
	// Kirsch uses eight compass kernels and keeps the strongest response.
	Kirsch
	// Laplacian4 is the 4-connected Laplacian.
	Laplacian4
	// Laplacian8 is the 8-connected Laplacian.
	Laplacian8
	// LaplacianDoG is reserved and reports ErrNotImplemented.
	LaplacianDoG
	// DericheSmooth is the recursive Deriche smoothing filter.
	DericheSmooth
	// DericheDerivative is the gradient magnitude of the Deriche derivative.
	DericheDerivative
	// DericheLaplacian is reserved and reports ErrNotImplemented.
	DericheLaplacian
)

var kindNames = [...]string{
	Naive:             "naive",
	Roberts:           "roberts",
	Sobel:             "sobel",
	Prewitt:           "prewitt",
	Kirsch:            "kirsch",
	Laplacian4:        "laplacian4",
	Laplacian8:        "laplacian8",
	LaplacianDoG:      "laplacian_dog",
	DericheSmooth:     "deriche_smooth",
	DericheDerivative: "deriche_derivative",
	DericheLaplacian:  "deriche_laplacian",
}

// String returns the lowercase name used by the tool interface.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Naive && int(k) < len(kindNames)
}

// Implemented reports whether Detect can compute k.
func (k Kind) Implemented() bool {
	return k.Valid() && k != LaplacianDoG && k != DericheLaplacian
}

// UsesAlpha reports whether the kernel pass of k depends on the Deriche alpha.
func (k Kind) UsesAlpha() bool {
	return k == DericheSmooth || k == DericheDerivative || k == DericheLaplacian
}

// ParseKind converts a name such as "sobel" or "Deriche-Derivative" into a Kind.
// Hyphens and spaces are accepted in place of underscores.
func ParseKind(name string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for k, n := range kindNames {
		if n == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown edge detection kind %q", raster.ErrParameterOutOfRange, name)
}

// Kinds returns every declared kind in menu order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}
