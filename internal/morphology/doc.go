// Package morphology implements binary mathematical morphology on images.
//
// The source is binarized once (luma below 128 becomes 0, the rest
// raster.Foreground). A structuring Element is a square of side
// 2·dimension+1 holding one of the Neighborhood shapes.
//
// Dilation takes the maximum of src(p-b) and erosion the minimum of src(p+b)
// over the active offsets b. Taps that fall outside the image are skipped
// rather than read as 0, which keeps the two operators adjoint: opening and
// closing are idempotent and eroding the negative equals the negative of
// dilating by the reflected element.
//
// Thin implements two-pass Zhang-Suen style thinning. Removal candidates of a
// sub-pass are marked first and cleared afterwards, so every test in a
// sub-pass sees the image as it was when the sub-pass began.
package morphology
