// Package edge implements gradient-based edge detection over a grayscale
// projection of an image.
//
// # Operators
//
// The classic operators work on 3×3 neighborhoods:
//   - Naive and Roberts use two pixel differences combined with the L2 norm
//   - Sobel uses two kernels (quotient 4) combined with the L2 norm
//   - Prewitt (four kernels, quotient 3) and Kirsch (eight compass kernels,
//     quotient 15) keep the strongest absolute response
//   - Laplacian4 and Laplacian8 keep the absolute response of one kernel
//
// Every tap outside the image reads as 0, so uniform images still show a
// response along their border.
//
// The Deriche filters are separable recursive (IIR) filters controlled by
// alpha. Each image line runs a causal and an anticausal second-order
// recursion; rows are filtered first and then columns. DericheDerivative
// smooths each directional derivative along the other axis and returns the
// gradient magnitude. At alpha 0 the filter gain is 0 and the output is empty.
//
// # Thresholding
//
// The kernel pass is normalized to 0..255 against its running maximum.
// Values under ThresholdMin are dropped, values at or above ThresholdMax are
// kept, and values in between are kept only when a neighbor in the raw kernel
// output reaches ThresholdMax.
//
// # Memoization
//
// An Engine keeps its last kernel pass keyed by kind and alpha, so repeated
// calls that only change thresholds or monochrome skip the kernel pass.
package edge
