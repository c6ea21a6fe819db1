package raster

import "errors"

var (
	// ErrInvalidSource is returned when an engine is given a nil or empty image.
	ErrInvalidSource = errors.New("invalid source image")

	// ErrParameterOutOfRange is returned when a call parameter is rejected at
	// the engine boundary.
	ErrParameterOutOfRange = errors.New("parameter out of range")
)
