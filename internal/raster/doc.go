// Package raster provides the pixel buffers shared by the analysis engines.
//
// Three buffer types cover every algorithm in this module:
//   - Int: signed integer grid with an explicit running maximum
//   - Float: float64 grid used as scratch by recursive filters
//   - Bool: per-pixel flags used to schedule removals
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner. X increases
// rightward and Y increases downward, matching the image package.
//
// # Border Convention
//
// Reading any coordinate outside [0,width)×[0,height) returns the zero value
// instead of panicking. Convolution-style kernels rely on this to treat the
// image as if it were padded with zeros. Writes outside the grid are ignored.
//
// # Running Maximum
//
// Int carries a maximum that is set by the algorithm that fills it. It is never
// derived automatically from the pixel data: a kernel pass resets it with
// SetMax(0) and raises it as it writes, and thresholding divides by it.
//
// # Grayscale Projection
//
// Luma converts an image to intensities using integer ITU-R BT.601 weights
// (299*R + 587*G + 114*B) / 1000 on 8-bit channels. Binarize splits that
// intensity at 128 into 0 and Foreground.
package raster
