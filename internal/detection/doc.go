// Package detection finds straight lines in binary images by voting in
// slope/intercept space.
//
// # Line Voting
//
// Each foreground pixel (x, y) of the binarized source votes once for every
// line y = a*x + b that passes through it, with the slope a taking every
// integer in [-h, 2h+1]. The intercept b = y - a*x then always falls in
// [-(2h+1)(w-1), h*w-1], so the accumulator has (3h+2) columns, one per slope,
// and h*w + (2h+1)(w-1) rows, one per intercept.
//
// Vertical lines have no slope and are not represented.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// A line with positive slope therefore descends to the right on screen.
//
// # Peak
//
// The peak is the cell with the most votes. Ties go to the first cell found
// scanning slopes from lowest to highest and, within a slope, intercepts from
// lowest to highest.
//
// # Performance Considerations
//
// The accumulator grows with h²·w, so a 100×100 source already needs about
// 9 million cells. LineVoter refuses sources whose vote space exceeds its cell
// limit with ErrAccumulatorTooLarge; callers are expected to downscale first.
// Voting is split across goroutines by slope range, and each goroutine owns
// its accumulator columns outright.
package detection
