package edge

import "errors"

var (
	// ErrDegenerateGradient is returned when the kernel pass produced no
	// positive response, so there is nothing to normalize.
	ErrDegenerateGradient = errors.New("no edges: gradient maximum is zero")

	// ErrNotImplemented is returned for kinds that are declared but not computed.
	ErrNotImplemented = errors.New("edge detection kind not implemented")
)
