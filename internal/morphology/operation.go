package morphology

import (
	"fmt"

	"github.com/ironsheep/image-analysis-mcp/internal/raster"
)

// Operation selects the transform run by Apply.
type Operation int

const (
	Dilation Operation = iota
	Erosion
	Opening
	Closing
	InteriorGradient
	ExteriorGradient
	MorphologicalGradient
	HitOrMiss
	Thinning
	Skeletonizing
)

var operationNames = [...]string{
	Dilation:              "dilation",
	Erosion:               "erosion",
	Opening:               "opening",
	Closing:               "closing",
	InteriorGradient:      "interior_gradient",
	ExteriorGradient:      "exterior_gradient",
	MorphologicalGradient: "morphological_gradient",
	HitOrMiss:             "hit_or_miss",
	Thinning:              "thinning",
	Skeletonizing:         "skeletonizing",
}

func (o Operation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("operation(%d)", int(o))
	}
	return operationNames[o]
}

// Valid reports whether o is a declared operation.
func (o Operation) Valid() bool {
	return o >= Dilation && int(o) < len(operationNames)
}

// ParseOperation converts a name such as "opening" or "hit-or-miss" into an
// Operation.
func ParseOperation(name string) (Operation, error) {
	if i, ok := lookup(operationNames[:], name); ok {
		return Operation(i), nil
	}
	return 0, fmt.Errorf("%w: unknown morphology operation %q", raster.ErrParameterOutOfRange, name)
}

// Operations returns every declared operation in menu order.
func Operations() []Operation {
	out := make([]Operation, len(operationNames))
	for i := range out {
		out[i] = Operation(i)
	}
	return out
}
